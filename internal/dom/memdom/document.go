// Package memdom is an in-memory document implementing the dom interfaces.
//
// It is single-threaded: every method must be called from the goroutine
// that drives the focus tracker. Events fire synchronously from the method
// that caused them, the way a browser dispatches focus and selection events
// during the triggering call.
package memdom

import (
	"strings"
	"time"

	"github.com/dshills/focustrack/internal/dom"
)

const textNodeName = "#text"

// Option configures a Document.
type Option func(*Document)

// WithSelectionChange sets whether the document emits native
// selection-change notifications. Defaults to true.
func WithSelectionChange(supported bool) Option {
	return func(d *Document) {
		d.selectionChange = supported
	}
}

// WithClock sets the time source stamped on dispatched events.
func WithClock(now func() time.Time) Option {
	return func(d *Document) {
		if now != nil {
			d.clock = now
		}
	}
}

// Document is an in-memory document with a body, one active element and a
// single live selection.
type Document struct {
	Body *Node

	active          *Node
	selection       *Selection
	selectionChange bool
	bodyScrollTop   float64
	listeners       listenerSet
	clock           func() time.Time
}

var _ dom.Document = (*Document)(nil)

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{
		selectionChange: true,
		clock:           time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Body = d.CreateElement("body")
	d.selection = &Selection{doc: d}
	return d
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{doc: d, name: strings.ToLower(tag)}
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	return &Node{doc: d, name: textNodeName, text: text}
}

// Selection implements dom.Document.
func (d *Document) Selection() dom.Selection {
	return d.selection
}

// LiveSelection returns the concrete selection.
func (d *Document) LiveSelection() *Selection {
	return d.selection
}

// CreateRange implements dom.Document. The range starts collapsed at the
// start of the body.
func (d *Document) CreateRange() dom.Range {
	return d.NewRange(d.Body, 0, d.Body, 0)
}

// NewRange creates a range with the given boundaries.
func (d *Document) NewRange(startNode *Node, startOffset int, endNode *Node, endOffset int) *Range {
	r := &Range{}
	r.start = dom.Point{Container: startNode, Offset: startOffset}
	r.end = dom.Point{Container: endNode, Offset: endOffset}
	r.native = dom.Boundaries{Start: r.start, End: r.end}
	return r
}

// Query implements dom.Document. Supported selectors are comma-separated
// lists of ".class", "#id" and tag names.
func (d *Document) Query(selector string) []dom.Element {
	parts := strings.Split(selector, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	var out []dom.Element
	d.Body.walk(func(n *Node) {
		for _, p := range parts {
			if n.matches(p) {
				out = append(out, n)
				return
			}
		}
	})
	return out
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Node {
	var found *Node
	d.Body.walk(func(n *Node) {
		if found == nil && n.id == id {
			found = n
		}
	})
	return found
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Node {
	return d.active
}

// BodyScrollTop implements dom.Document.
func (d *Document) BodyScrollTop() float64 {
	return d.bodyScrollTop
}

// ScrollBody sets the body scroll offset and fires a window scroll event.
// The event fires even when the offset is unchanged, as some platforms do.
func (d *Document) ScrollBody(top float64) {
	d.bodyScrollTop = top
	d.fire(dom.EventWindowScroll, d.Body)
}

// Rotate fires an orientation change.
func (d *Document) Rotate() {
	d.fire(dom.EventOrientationChange, d.Body)
}

// SupportsSelectionChange implements dom.Document.
func (d *Document) SupportsSelectionChange() bool {
	return d.selectionChange
}

// On implements dom.Document.
func (d *Document) On(kind dom.EventKind, fn dom.Listener) dom.RemoveFunc {
	return d.listeners.add(kind, fn)
}

// ListenerCount returns the number of document listeners bound for kind.
func (d *Document) ListenerCount(kind dom.EventKind) int {
	return d.listeners.count(kind)
}

// Select replaces the live selection with r, as a user gesture would.
func (d *Document) Select(r *Range) {
	d.selection.SetSingleRange(r)
}

// SelectText selects [start, end) inside a text node.
func (d *Document) SelectText(text *Node, start, end int) *Range {
	r := d.NewRange(text, start, text, end)
	d.Select(r)
	return r
}

func (d *Document) setActive(n *Node) {
	if d.active == n {
		return
	}
	if prev := d.active; prev != nil {
		d.active = nil
		prev.fire(dom.EventBlur)
	}
	d.active = n
	n.fire(dom.EventFocus)
}

func (d *Document) selectionChanged() {
	if d.selectionChange {
		d.fire(dom.EventSelectionChange, d.Body)
	}
}

func (d *Document) fire(kind dom.EventKind, target *Node) {
	d.listeners.fire(dom.Event{Kind: kind, Target: target, Time: d.now()})
}

func (d *Document) now() time.Time {
	if d == nil || d.clock == nil {
		return time.Time{}
	}
	return d.clock()
}
