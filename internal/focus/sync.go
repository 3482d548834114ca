package focus

import (
	"github.com/dshills/focustrack/internal/dom"
	"github.com/dshills/focustrack/internal/event"
	"github.com/dshills/focustrack/internal/event/events"
	"github.com/dshills/focustrack/internal/event/topic"
	"github.com/dshills/focustrack/internal/hit"
	"github.com/dshills/focustrack/internal/schedule"
)

// eventSource is stamped on every published event.
const eventSource = "focus"

// fallbackTopics stand in for native selection-change notifications.
var fallbackTopics = []topic.Topic{
	topic.CommandExecuted,
	topic.NavigationExecuted,
	topic.PluginExited,
	topic.ExternalRangeSupplied,
	topic.PluginSaved,
	topic.TextInserted,
	topic.HTMLInserted,
}

// insertTopics trigger a delayed capture regardless of native support.
var insertTopics = []topic.Topic{
	topic.CharInserted,
	topic.PluginSaved,
	topic.TextInserted,
	topic.HTMLInserted,
}

// onSelectionChange captures the current editable when the live selection
// starts inside it and publishes the new location.
func (t *Tracker) onSelectionChange() {
	if t.closed || t.current == nil {
		return
	}
	r := dom.FirstRange(t.doc.Selection())
	if !IsWithin(r, t.current) {
		return
	}
	r.Refresh()

	st := t.store.Capture(t.current)
	loc, _ := LocationOf(t.current, r)
	publish(t, topic.SelectionChanged, events.SelectionChanged{
		Editable:   t.current,
		EditableID: st.ID,
		Location:   loc.String(),
		Collapsed:  dom.BoundariesOf(r).Collapsed(),
	})
}

// onTextInsert captures the current editable once the insert has settled.
func (t *Tracker) onTextInsert() {
	t.timers.AfterFunc(t.opts.textInsertDelay, func() {
		if t.current == nil {
			return
		}
		st := t.store.Capture(t.current)
		t.log.Debug("captured after insert", "editable", st.ID, "has_range", st.Range != nil)
	})
}

func (t *Tracker) onWindowScroll(dom.Event) {
	top := t.doc.BodyScrollTop()
	if top == t.bodyScrollTop {
		return
	}
	prev := t.bodyScrollTop
	t.bodyScrollTop = top
	publish(t, topic.WindowScrolled, events.WindowScrolled{ScrollTop: top, PreviousScrollTop: prev})
}

func (t *Tracker) onEditableScroll(editable dom.Element) {
	st := t.store.Get(editable)
	publish(t, topic.EditableScrolled, events.EditableScrolled{
		Editable:   editable,
		EditableID: st.ID,
		ScrollTop:  editable.ScrollTop(),
	})
}

// onOrientationChange holds the notification back until the rotation has
// finished on screen.
func (t *Tracker) onOrientationChange(ev dom.Event) {
	t.timers.AfterFunc(t.opts.orientationDelay, func() {
		publish(t, topic.OrientationChanged, events.OrientationChanged{Source: ev})
	})
}

// HandleHit is registered with the hit registry. It polls until the
// editable under the hit holds a selection and captures it. Without native
// selection notifications it also runs the selection-change handler. It
// never claims the event.
func (t *Tracker) HandleHit(ev hit.Event) bool {
	if t.closed {
		return false
	}
	editable := dom.Closest(ev.Target, t.editables)
	if editable == nil {
		return false
	}
	if t.hitPoll != nil {
		t.hitPoll.Stop()
	}

	id := t.store.Get(editable).ID
	attempts := 0
	var p *schedule.Poll
	p = t.timers.PollUntil(func() bool {
		attempts++
		if CaptureCurrentRange(t.doc.Selection(), editable) == nil {
			return false
		}
		t.store.Capture(editable)
		if !t.doc.SupportsSelectionChange() {
			t.onSelectionChange()
		}
		return true
	}, t.opts.hitPollInterval,
		schedule.WithMaxDuration(t.opts.hitMaxDuration),
		schedule.WithOnDone(func(s schedule.PollState) {
			if s == schedule.PollExhausted {
				t.log.Debug("hit poll gave up", "editable", id, "attempts", attempts)
			}
			if p != nil && t.hitPoll == p {
				t.hitPoll = nil
			}
		}))
	if !p.Done() {
		t.hitPoll = p
	}
	return false
}

func (t *Tracker) publishFocused(st *EditableState) {
	publish(t, topic.EditableFocused, events.EditableFocused{Editable: st.Editable, EditableID: st.ID})
}

func (t *Tracker) publishBlurred(st *EditableState) {
	publish(t, topic.EditableBlurred, events.EditableBlurred{Editable: st.Editable, EditableID: st.ID})
}

// publish sends payload as an Event[T] so typed subscribers match it.
// Delivery errors are logged; they never reach the DOM side.
func publish[T any](t *Tracker, tp topic.Topic, payload T) {
	ev := event.NewEventAt(tp, payload, eventSource, t.timers.Now())
	if err := t.bus.Publish(t.opts.ctx, ev); err != nil {
		t.log.Warn("publish failed", "topic", tp.String(), "error", err)
	}
}
