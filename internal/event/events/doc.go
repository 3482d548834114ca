// Package events defines the payloads carried by focus tracker events.
//
// Outbound payloads (published by the tracker) identify editables both by
// the element itself and by the stable ID the tracker assigned it, so
// consumers that only log can avoid holding DOM references.
package events
