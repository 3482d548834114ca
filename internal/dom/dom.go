package dom

import "time"

// Node is a node in a document tree.
type Node interface {
	// Parent returns the parent node, or nil for a root.
	Parent() Node

	// Children returns the child nodes in document order.
	Children() []Node

	// NodeName returns the tag name for elements or "#text" for text nodes.
	NodeName() string
}

// Point is a range boundary point.
type Point struct {
	Container Node
	Offset    int
}

// Equal reports whether two points name the same container and offset.
func (p Point) Equal(o Point) bool {
	return p.Container == o.Container && p.Offset == o.Offset
}

// Boundaries is a start/end pair of boundary points.
type Boundaries struct {
	Start Point
	End   Point
}

// Equal reports whether both boundary points match.
func (b Boundaries) Equal(o Boundaries) bool {
	return b.Start.Equal(o.Start) && b.End.Equal(o.End)
}

// Collapsed reports whether start and end are the same point.
func (b Boundaries) Collapsed() bool {
	return b.Start.Equal(b.End)
}

// Range is a live selection range.
//
// Start and End return the normalized boundaries the range wrapper holds.
// Native returns the boundaries the platform itself holds for the same
// range. They normally agree; on some platforms they drift apart after a
// focus transition.
type Range interface {
	Start() Point
	End() Point
	Native() Boundaries

	SetStart(n Node, offset int)
	SetEnd(n Node, offset int)

	// Collapse collapses the range onto its start or end.
	Collapse(toStart bool)

	// Refresh re-reads the normalized boundaries from the native range.
	Refresh()
}

// BoundariesOf returns the normalized boundaries of r.
func BoundariesOf(r Range) Boundaries {
	return Boundaries{Start: r.Start(), End: r.End()}
}

// Selection is the document's live selection.
// Only the range at index 0 is ever consulted.
type Selection interface {
	RangeCount() int
	RangeAt(i int) Range
	SetSingleRange(r Range)
}

// FirstRange returns the first range of sel, or nil when sel is nil or empty.
func FirstRange(sel Selection) Range {
	if sel == nil || sel.RangeCount() == 0 {
		return nil
	}
	return sel.RangeAt(0)
}

// EventKind identifies a document or element event.
type EventKind int

const (
	EventFocus EventKind = iota
	EventBlur
	EventScroll
	EventSelectionChange
	EventOrientationChange
	EventWindowScroll
)

// String returns the DOM event name.
func (k EventKind) String() string {
	switch k {
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventScroll:
		return "scroll"
	case EventSelectionChange:
		return "selectionchange"
	case EventOrientationChange:
		return "orientationchange"
	case EventWindowScroll:
		return "window.scroll"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners.
type Event struct {
	Kind EventKind

	// Target is the node the event was dispatched on. For element
	// listeners it is the element the listener was bound to.
	Target Node

	Time time.Time
}

// Listener receives events.
type Listener func(Event)

// RemoveFunc detaches a listener. Calling it more than once is harmless.
type RemoveFunc func()

// Element is an element that can take focus and scroll.
type Element interface {
	Node

	Focus()
	Blur()
	ScrollTop() float64

	// On binds a focus, blur or scroll listener.
	On(kind EventKind, fn Listener) RemoveFunc
}

// Document is the document hosting the editable regions.
type Document interface {
	// Selection returns the live selection. It may be nil.
	Selection() Selection

	CreateRange() Range

	// Query returns the elements matching selector in document order.
	Query(selector string) []Element

	BodyScrollTop() float64

	// SupportsSelectionChange reports whether the document emits native
	// selection-change notifications.
	SupportsSelectionChange() bool

	// On binds a selectionchange, orientationchange or window scroll listener.
	On(kind EventKind, fn Listener) RemoveFunc
}
