package focus

import "github.com/dshills/focustrack/internal/dom"

// ListenerState is whether the selection listener is attached.
type ListenerState int

const (
	// ListenerDetached means no editable holds focus as far as the tracker
	// knows.
	ListenerDetached ListenerState = iota

	// ListenerAttached means an editable is focused and selection changes
	// are being followed.
	ListenerAttached
)

// String returns a human-readable state name.
func (s ListenerState) String() string {
	switch s {
	case ListenerDetached:
		return "detached"
	case ListenerAttached:
		return "attached"
	default:
		return "unknown"
	}
}

// attachListener starts following selection changes. Native notifications
// are bound only when the document has them; otherwise the bus fallback
// subscribed at Init drives the handler.
func (t *Tracker) attachListener(editable dom.Element) {
	if t.listener == ListenerAttached {
		t.report(&ListenerError{Transition: "focus", EditableID: t.store.Get(editable).ID, Err: ErrListenerAttached})
		return
	}
	t.listener = ListenerAttached
	if t.doc.SupportsSelectionChange() {
		t.removeSelectionListener = t.doc.On(dom.EventSelectionChange, func(dom.Event) {
			t.throttle.Call()
		})
	}
}

func (t *Tracker) detachListener(editable dom.Element) {
	if t.listener == ListenerDetached {
		t.report(&ListenerError{Transition: "blur", EditableID: t.store.Get(editable).ID, Err: ErrListenerNotAttached})
		return
	}
	t.listener = ListenerDetached
	if t.removeSelectionListener != nil {
		t.removeSelectionListener()
		t.removeSelectionListener = nil
	}
}

func (t *Tracker) onFocus(editable dom.Element) {
	t.attachListener(editable)
	t.current = editable
	t.last = editable

	st := t.store.Get(editable)
	if st.Range != nil {
		if Sanitize(st.Range, t.probe) {
			t.log.Debug("range sanitized", "editable", st.ID)
		}
		t.applyRange(st.Range)
	}

	t.log.Debug("editable focused", "editable", st.ID, "restored", st.Range != nil)
	t.publishFocused(st)
}

// onBlur detaches the listener before anything else so the empty
// selection a blur leaves behind is never captured.
func (t *Tracker) onBlur(editable dom.Element) {
	t.last = editable
	t.detachListener(editable)

	st := t.store.Get(editable)
	t.log.Debug("editable blurred", "editable", st.ID)
	t.publishBlurred(st)
}

func (t *Tracker) applyRange(r dom.Range) {
	if sel := t.doc.Selection(); sel != nil {
		sel.SetSingleRange(r)
	}
}

// CreateFocus focuses the last editable and guarantees it holds a
// selection. When none was stored, a collapsed range at the start of the
// editable is created and stored. It returns the applied range, or nil
// after Close.
func (t *Tracker) CreateFocus() dom.Range {
	if t.closed {
		return nil
	}
	editable := t.last
	editable.Focus()

	st := t.store.Get(editable)
	if st.Range == nil {
		r := t.doc.CreateRange()
		r.SetStart(editable, 0)
		r.Collapse(true)
		st.Range = r
		t.log.Debug("created collapsed range", "editable", st.ID)
	}
	t.applyRange(st.Range)
	return st.Range
}

// RestoreFocus focuses the last editable and re-applies its stored range.
// When no range is stored it does nothing and returns false.
func (t *Tracker) RestoreFocus() (dom.Range, bool) {
	if t.closed {
		return nil, false
	}
	st := t.store.Get(t.last)
	if st.Range == nil {
		return nil, false
	}
	t.last.Focus()
	t.applyRange(st.Range)
	return st.Range, true
}

// RemoveFocus captures the current editable and then blurs it.
func (t *Tracker) RemoveFocus() {
	if t.closed || t.current == nil {
		return
	}
	t.store.Capture(t.current)
	t.current.Blur()
}

// CurrentEditable returns the editable that last received focus. It is
// not cleared on blur.
func (t *Tracker) CurrentEditable() dom.Element {
	return t.current
}

// LastEditable returns the editable that CreateFocus and RestoreFocus
// target.
func (t *Tracker) LastEditable() dom.Element {
	return t.last
}

// Listener returns the selection listener state.
func (t *Tracker) Listener() ListenerState {
	return t.listener
}
