// Package event provides the in-process event bus the focus tracker
// publishes to and subscribes on.
//
// Delivery is synchronous: Publish runs every matching handler in the
// publisher's goroutine, in priority order, before it returns. The focus
// tracker runs on a single logical thread, so synchronous delivery keeps
// handler side effects ordered with the event that caused them.
//
// # Topics
//
// Events carry a dotted topic (see package topic). Subscriptions may use
// wildcard patterns:
//
//	editable.*   - editable.focus, editable.blur, editable.scroll
//	insert.**    - insert.char, insert.text, insert.html
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	sub, err := bus.SubscribeFunc(topic.EditableFocused, func(ctx context.Context, ev any) error {
//	    e := ev.(event.Event[events.EditableFocused])
//	    fmt.Println("focused", e.Payload.EditableID)
//	    return nil
//	})
//
//	bus.Publish(ctx, event.NewEvent(topic.EditableFocused, payload, "focus"))
//
// # Errors
//
// Handler errors and panics do not stop delivery to the remaining
// handlers. Publish returns them joined, each wrapped in a HandlerError or
// PanicError.
package event
