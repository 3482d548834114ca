package memdom

import "github.com/dshills/focustrack/internal/dom"

// Selection holds at most one range.
type Selection struct {
	doc    *Document
	ranges []*Range
}

var _ dom.Selection = (*Selection)(nil)

// RangeCount implements dom.Selection.
func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// RangeAt implements dom.Selection.
func (s *Selection) RangeAt(i int) dom.Range {
	if i < 0 || i >= len(s.ranges) {
		return nil
	}
	return s.ranges[i]
}

// SetSingleRange implements dom.Selection. Ranges from another
// implementation are copied.
func (s *Selection) SetSingleRange(r dom.Range) {
	mr, ok := r.(*Range)
	if !ok {
		mr = &Range{start: r.Start(), end: r.End(), native: r.Native()}
	}
	s.ranges = []*Range{mr}
	s.doc.selectionChanged()
}

// RemoveAllRanges empties the selection.
func (s *Selection) RemoveAllRanges() {
	if len(s.ranges) == 0 {
		return
	}
	s.ranges = nil
	s.doc.selectionChanged()
}

// Range is a range whose native boundaries can be made to drift from its
// normalized ones.
type Range struct {
	start    dom.Point
	end      dom.Point
	native   dom.Boundaries
	setCalls int
}

var _ dom.Range = (*Range)(nil)

// Start implements dom.Range.
func (r *Range) Start() dom.Point { return r.start }

// End implements dom.Range.
func (r *Range) End() dom.Point { return r.end }

// Native implements dom.Range.
func (r *Range) Native() dom.Boundaries { return r.native }

// SetStart implements dom.Range. The native start follows.
func (r *Range) SetStart(n dom.Node, offset int) {
	r.setCalls++
	r.start = dom.Point{Container: n, Offset: offset}
	r.native.Start = r.start
	if r.end.Container == nil {
		r.end = r.start
		r.native.End = r.start
	}
}

// SetEnd implements dom.Range. The native end follows.
func (r *Range) SetEnd(n dom.Node, offset int) {
	r.setCalls++
	r.end = dom.Point{Container: n, Offset: offset}
	r.native.End = r.end
}

// Collapse implements dom.Range.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.end = r.start
	} else {
		r.start = r.end
	}
	r.native = dom.Boundaries{Start: r.start, End: r.end}
}

// Refresh implements dom.Range.
func (r *Range) Refresh() {
	r.start = r.native.Start
	r.end = r.native.End
}

// Drift overwrites only the native boundaries, reproducing the stale
// platform copy some mobile browsers keep after a blur.
func (r *Range) Drift(native dom.Boundaries) {
	r.native = native
}

// SetCalls returns how many SetStart and SetEnd calls the range received.
func (r *Range) SetCalls() int { return r.setCalls }
