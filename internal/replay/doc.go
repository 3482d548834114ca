// Package replay drives a focus tracker from a YAML scenario.
//
// A scenario describes an in-memory document and a list of steps (focus
// changes, selections, scrolls, bus events, pointer hits, facade calls and
// clock advances). Run builds the document, initializes a tracker over it,
// performs the steps and prints every notification the tracker publishes.
// It is the tool used to reproduce selection bugs reported from the field.
package replay
