package focus

import (
	"github.com/dshills/focustrack/internal/dom"
	"github.com/dshills/focustrack/internal/platform"
)

// IsWithin reports whether the start of r lies inside editable.
func IsWithin(r dom.Range, editable dom.Node) bool {
	if r == nil || editable == nil {
		return false
	}
	return dom.Contains(editable, r.Start().Container)
}

// Sanitize works around mobile browsers whose native copy of a range goes
// stale across a focus change. When probe flags the platform and the
// native boundaries disagree with r's own, the boundaries are written back
// so the platform re-derives them. It reports whether r was re-set.
func Sanitize(r dom.Range, probe platform.Probe) bool {
	if r == nil || probe == nil || !probe.IsKnownBuggyMobilePlatform() {
		return false
	}
	want := dom.BoundariesOf(r)
	if r.Native().Equal(want) {
		return false
	}
	r.SetStart(want.Start.Container, want.Start.Offset)
	r.SetEnd(want.End.Container, want.End.Offset)
	return true
}

// CaptureCurrentRange returns the first range of sel when it starts inside
// editable, and nil otherwise.
func CaptureCurrentRange(sel dom.Selection, editable dom.Node) dom.Range {
	r := dom.FirstRange(sel)
	if !IsWithin(r, editable) {
		return nil
	}
	return r
}
