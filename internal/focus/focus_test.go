package focus

import (
	"testing"

	"github.com/dshills/focustrack/internal/dom"
	"github.com/dshills/focustrack/internal/dom/memdom"
	"github.com/dshills/focustrack/internal/platform"
)

// page is a document with two editables and a toolbar:
//
//	body
//	  div#a.editable > p > "hello"
//	  div#b.editable > "world"
//	  div#toolbar > "bold"
type page struct {
	doc     *memdom.Document
	a, b    *memdom.Node
	aText   *memdom.Node
	bText   *memdom.Node
	toolbar *memdom.Node
	tbText  *memdom.Node
}

func newPage(opts ...memdom.Option) *page {
	d := memdom.New(opts...)
	p := &page{doc: d}
	p.a = d.Body.AppendChild(d.CreateElement("div").SetID("a").AddClass("editable"))
	p.aText = p.a.AppendChild(d.CreateElement("p")).AppendChild(d.CreateText("hello"))
	p.b = d.Body.AppendChild(d.CreateElement("div").SetID("b").AddClass("editable"))
	p.bText = p.b.AppendChild(d.CreateText("world"))
	p.toolbar = d.Body.AppendChild(d.CreateElement("div").SetID("toolbar"))
	p.tbText = p.toolbar.AppendChild(d.CreateText("bold"))
	return p
}

func TestStore_GetOrCreate(t *testing.T) {
	p := newPage()
	s := NewStore(p.doc)

	first := s.Get(p.a)
	if first.Range != nil {
		t.Error("new state should have no range")
	}
	if first.ID == "" {
		t.Error("new state should have an ID")
	}
	if first.Editable != dom.Element(p.a) {
		t.Error("state should reference its editable")
	}
	if again := s.Get(p.a); again != first {
		t.Error("Get should return the same entry for the same editable")
	}
	if other := s.Get(p.b); other == first || other.ID == first.ID {
		t.Error("different editables should get different entries")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	var ids []string
	s.Each(func(st *EditableState) { ids = append(ids, st.ID) })
	if len(ids) != 2 || ids[0] != first.ID {
		t.Errorf("Each visited %v, want creation order", ids)
	}
}

func TestStore_Capture(t *testing.T) {
	p := newPage()
	s := NewStore(p.doc)

	r := p.doc.SelectText(p.aText, 1, 3)
	p.a.ScrollTo(12)
	p.doc.ScrollBody(40)

	st := s.Capture(p.a)
	if st.Range != dom.Range(r) {
		t.Error("Capture should store the live range when it is inside the editable")
	}
	if st.ScrollTop != 12 || st.BodyScrollTop != 40 {
		t.Errorf("scroll = %v/%v, want 12/40", st.ScrollTop, st.BodyScrollTop)
	}

	if got := s.Capture(p.b); got.Range != nil {
		t.Error("Capture of an editable without the selection should store no range")
	}

	p.doc.SelectText(p.tbText, 0, 1)
	if got := s.Capture(p.a); got.Range != nil {
		t.Error("Capture should clear the range once the selection left the editable")
	}
}

func TestIsWithin(t *testing.T) {
	p := newPage()

	tests := []struct {
		name     string
		r        dom.Range
		editable dom.Node
		want     bool
	}{
		{"nil range", nil, p.a, false},
		{"nil editable", p.doc.NewRange(p.aText, 0, p.aText, 0), nil, false},
		{"inside", p.doc.NewRange(p.aText, 0, p.aText, 2), p.a, true},
		{"editable itself", p.doc.NewRange(p.a, 0, p.a, 0), p.a, true},
		{"other editable", p.doc.NewRange(p.bText, 0, p.bText, 1), p.a, false},
		{"outside", p.doc.NewRange(p.tbText, 0, p.tbText, 1), p.a, false},
		{"ends outside", p.doc.NewRange(p.aText, 2, p.tbText, 1), p.a, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithin(tt.r, tt.editable); got != tt.want {
				t.Errorf("IsWithin = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCaptureCurrentRange(t *testing.T) {
	p := newPage()

	if CaptureCurrentRange(nil, p.a) != nil {
		t.Error("nil selection should capture nothing")
	}
	if CaptureCurrentRange(p.doc.Selection(), p.a) != nil {
		t.Error("empty selection should capture nothing")
	}

	r := p.doc.SelectText(p.aText, 0, 5)
	if CaptureCurrentRange(p.doc.Selection(), p.a) != dom.Range(r) {
		t.Error("selection inside the editable should be captured")
	}
	if CaptureCurrentRange(p.doc.Selection(), p.b) != nil {
		t.Error("selection in another editable should not be captured")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name      string
		buggy     bool
		drift     bool
		wantReset bool
	}{
		{"buggy platform with drift", true, true, true},
		{"buggy platform in sync", true, false, false},
		{"normal platform with drift", false, true, false},
		{"normal platform in sync", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPage()
			r := p.doc.NewRange(p.aText, 1, p.aText, 4)
			want := dom.BoundariesOf(r)
			if tt.drift {
				r.Drift(dom.Boundaries{
					Start: dom.Point{Container: p.a, Offset: 0},
					End:   dom.Point{Container: p.a, Offset: 0},
				})
			}
			nativeBefore := r.Native()

			got := Sanitize(r, platform.Static{BuggyMobile: tt.buggy})
			if got != tt.wantReset {
				t.Errorf("Sanitize = %v, want %v", got, tt.wantReset)
			}
			if !dom.BoundariesOf(r).Equal(want) {
				t.Error("Sanitize must not change the normalized boundaries")
			}
			if tt.wantReset {
				if r.SetCalls() != 2 {
					t.Errorf("SetCalls = %d, want 2", r.SetCalls())
				}
				if !r.Native().Equal(want) {
					t.Error("native boundaries should be re-derived from the normalized ones")
				}
			} else {
				if r.SetCalls() != 0 {
					t.Errorf("SetCalls = %d, want 0", r.SetCalls())
				}
				if !r.Native().Equal(nativeBefore) {
					t.Error("Sanitize should not touch the range")
				}
			}
		})
	}

	if Sanitize(nil, platform.Static{BuggyMobile: true}) {
		t.Error("Sanitize(nil) = true")
	}
}

func TestLocationOf(t *testing.T) {
	p := newPage()

	tests := []struct {
		name string
		r    dom.Range
		want string
		ok   bool
	}{
		{"text selection", p.doc.NewRange(p.aText, 1, p.aText, 3), "0/0:1-0/0:3", true},
		{"caret on editable", p.doc.NewRange(p.a, 0, p.a, 0), ".:0-.:0", true},
		{"end outside", p.doc.NewRange(p.aText, 2, p.tbText, 1), "0/0:2-?:1", true},
		{"outside", p.doc.NewRange(p.tbText, 0, p.tbText, 1), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := LocationOf(p.a, tt.r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && loc.String() != tt.want {
				t.Errorf("String() = %q, want %q", loc.String(), tt.want)
			}
		})
	}

	caret, _ := LocationOf(p.b, p.doc.NewRange(p.bText, 2, p.bText, 2))
	if !caret.Collapsed() {
		t.Error("caret location should be collapsed")
	}
}
