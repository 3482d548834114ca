package focus

import (
	"github.com/google/uuid"

	"github.com/dshills/focustrack/internal/dom"
)

// EditableState is the remembered state of one editable region.
type EditableState struct {
	// Editable is the region the state belongs to.
	Editable dom.Element

	// ID identifies the region in logs and published events.
	ID string

	// Range is the last selection captured inside the region, or nil.
	Range dom.Range

	ScrollTop     float64
	BodyScrollTop float64
}

// Store maps editables to their state. Entries are created on first use
// and never removed.
type Store struct {
	doc     dom.Document
	entries map[dom.Element]*EditableState
	order   []*EditableState
}

// NewStore creates an empty store reading selection and scroll offsets
// from doc.
func NewStore(doc dom.Document) *Store {
	return &Store{
		doc:     doc,
		entries: make(map[dom.Element]*EditableState),
	}
}

// Get returns the state for editable, creating an empty one on first use.
func (s *Store) Get(editable dom.Element) *EditableState {
	if st, ok := s.entries[editable]; ok {
		return st
	}
	st := &EditableState{
		Editable: editable,
		ID:       uuid.NewString(),
	}
	s.entries[editable] = st
	s.order = append(s.order, st)
	return st
}

// Capture snapshots the selection and scroll offsets of editable into its
// state. The range becomes nil when the live selection is elsewhere.
func (s *Store) Capture(editable dom.Element) *EditableState {
	st := s.Get(editable)
	st.Range = CaptureCurrentRange(s.doc.Selection(), editable)
	st.ScrollTop = editable.ScrollTop()
	st.BodyScrollTop = s.doc.BodyScrollTop()
	return st
}

// Len returns the number of tracked editables.
func (s *Store) Len() int {
	return len(s.order)
}

// Each calls fn for every state in creation order.
func (s *Store) Each(fn func(*EditableState)) {
	for _, st := range s.order {
		fn(st)
	}
}
