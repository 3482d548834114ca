package events

import "github.com/dshills/focustrack/internal/dom"

// EditableFocused is published after an editable gained focus and its
// stored selection, if any, was restored.
type EditableFocused struct {
	Editable   dom.Element
	EditableID string
}

// EditableBlurred is published after an editable lost focus.
type EditableBlurred struct {
	Editable   dom.Element
	EditableID string
}

// EditableScrolled is published for every scroll event of an editable.
type EditableScrolled struct {
	Editable   dom.Element
	EditableID string
	ScrollTop  float64
}

// WindowScrolled is published when the body scroll offset actually changed.
type WindowScrolled struct {
	ScrollTop         float64
	PreviousScrollTop float64
}

// OrientationChanged is published once an orientation change has settled.
type OrientationChanged struct {
	Source dom.Event
}

// SelectionChanged is published when the selection inside the current
// editable changed and was stored.
type SelectionChanged struct {
	Editable   dom.Element
	EditableID string

	// Location is the human-readable position of the selection.
	Location string

	Collapsed bool
}
