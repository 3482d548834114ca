package focus

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEditables is returned by Init when the selector matches nothing.
	ErrNoEditables = errors.New("no editable matches selector")

	// ErrMissingDependency is returned by Init when a required collaborator
	// is nil.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrInconsistentListener marks an illegal selection listener
	// transition.
	ErrInconsistentListener = errors.New("inconsistent selection listener state")

	// ErrListenerAttached is reported when a focus arrives while the
	// listener is already attached.
	ErrListenerAttached = fmt.Errorf("%w: already attached", ErrInconsistentListener)

	// ErrListenerNotAttached is reported when a blur arrives while the
	// listener is detached.
	ErrListenerNotAttached = fmt.Errorf("%w: not attached", ErrInconsistentListener)
)

// ListenerError records an illegal listener transition and the editable
// that triggered it.
type ListenerError struct {
	Transition string
	EditableID string
	Err        error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("%s of editable %s: %v", e.Transition, e.EditableID, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ListenerError) Unwrap() error {
	return e.Err
}
