package focus

import (
	"context"
	"fmt"

	"github.com/dshills/focustrack/internal/dom"
	"github.com/dshills/focustrack/internal/event"
	"github.com/dshills/focustrack/internal/event/topic"
	"github.com/dshills/focustrack/internal/hit"
	"github.com/dshills/focustrack/internal/logging"
	"github.com/dshills/focustrack/internal/platform"
	"github.com/dshills/focustrack/internal/schedule"
)

// Deps are the collaborators a Tracker works against.
type Deps struct {
	// Document hosts the editables. Required.
	Document dom.Document

	// Bus receives outbound notifications and delivers application events.
	// Required.
	Bus event.Bus

	// Clock runs deferred callbacks. Required; use a schedule.Loop in
	// production and a schedule.ManualClock in tests.
	Clock schedule.Clock

	// Hits, when set, offers pointer hits to the tracker.
	Hits *hit.Registry

	// Probe detects the buggy mobile platform. Defaults to a probe that
	// reports no bug.
	Probe platform.Probe
}

// Tracker follows focus and selection across a set of editables.
type Tracker struct {
	doc    dom.Document
	bus    event.Bus
	probe  platform.Probe
	log    logging.Logger
	opts   options
	timers *schedule.Group
	store  *Store

	editables []dom.Element
	current   dom.Element
	last      dom.Element

	listener                ListenerState
	removeSelectionListener dom.RemoveFunc
	throttle                *schedule.Throttler

	bodyScrollTop float64
	hitPoll       *schedule.Poll

	unbind []func()
	subs   []event.Subscription
	closed bool
}

// Init binds a Tracker to the editables matching selector. The first
// match becomes the current and last editable.
func Init(deps Deps, selector string, opts ...Option) (*Tracker, error) {
	switch {
	case deps.Document == nil:
		return nil, fmt.Errorf("%w: document", ErrMissingDependency)
	case deps.Bus == nil:
		return nil, fmt.Errorf("%w: bus", ErrMissingDependency)
	case deps.Clock == nil:
		return nil, fmt.Errorf("%w: clock", ErrMissingDependency)
	}

	editables := deps.Document.Query(selector)
	if len(editables) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoEditables, selector)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	probe := deps.Probe
	if probe == nil {
		probe = platform.Static{}
	}

	t := &Tracker{
		doc:       deps.Document,
		bus:       deps.Bus,
		probe:     probe,
		log:       logging.WithComponent(o.logger, "focus"),
		opts:      o,
		timers:    schedule.NewGroup(deps.Clock),
		store:     NewStore(deps.Document),
		editables: editables,
		current:   editables[0],
		last:      editables[0],
	}
	t.throttle = schedule.NewThrottler(t.timers, o.throttleInterval, t.onSelectionChange)

	t.bindDocument()
	for _, el := range editables {
		t.bindEditable(el)
	}
	if deps.Hits != nil {
		t.unbind = append(t.unbind, deps.Hits.RegisterWithPriority(hit.HandlerFunc(t.HandleHit), hit.PriorityObserver))
	}
	if err := t.subscribe(); err != nil {
		t.Close()
		return nil, err
	}

	t.log.Info("tracker initialized",
		"selector", selector,
		"editables", len(editables),
		"native_selection_change", deps.Document.SupportsSelectionChange(),
		"buggy_mobile", probe.IsKnownBuggyMobilePlatform())
	return t, nil
}

func (t *Tracker) bindDocument() {
	t.unbind = append(t.unbind,
		t.doc.On(dom.EventOrientationChange, t.onOrientationChange),
		t.doc.On(dom.EventWindowScroll, t.onWindowScroll),
	)
}

func (t *Tracker) bindEditable(el dom.Element) {
	t.unbind = append(t.unbind,
		el.On(dom.EventBlur, func(dom.Event) { t.onBlur(el) }),
		el.On(dom.EventFocus, func(dom.Event) { t.onFocus(el) }),
		el.On(dom.EventScroll, func(dom.Event) { t.onEditableScroll(el) }),
	)
}

// subscribe wires the application events. Tracker handlers run at high
// priority so stored state is current before other consumers react.
func (t *Tracker) subscribe() error {
	sub := func(tp topic.Topic, fn func()) error {
		s, err := t.bus.SubscribeFunc(tp, func(_ context.Context, _ any) error {
			if !t.closed {
				fn()
			}
			return nil
		}, event.WithPriority(event.PriorityHigh))
		if err != nil {
			return fmt.Errorf("subscribing %s: %w", tp, err)
		}
		t.subs = append(t.subs, s)
		return nil
	}

	if !t.doc.SupportsSelectionChange() {
		for _, tp := range fallbackTopics {
			if err := sub(tp, t.throttle.Call); err != nil {
				return err
			}
		}
		charInserted := func() {
			t.timers.AfterFunc(t.opts.charInsertDelay, t.throttle.Call)
		}
		if err := sub(topic.CharInserted, charInserted); err != nil {
			return err
		}
	}

	for _, tp := range insertTopics {
		if err := sub(tp, t.onTextInsert); err != nil {
			return err
		}
	}
	return nil
}

// Store returns the tracker's state store.
func (t *Tracker) Store() *Store {
	return t.store
}

// Editables returns the tracked editables in document order.
func (t *Tracker) Editables() []dom.Element {
	return append([]dom.Element(nil), t.editables...)
}

// Pending returns the number of live timers and polls the tracker owns.
func (t *Tracker) Pending() int {
	return t.timers.Active()
}

// Close unbinds every listener, drops bus subscriptions and cancels all
// pending timers and polls. Stored state stays readable.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true

	t.throttle.Cancel()
	t.timers.Stop()
	t.hitPoll = nil

	if t.removeSelectionListener != nil {
		t.removeSelectionListener()
		t.removeSelectionListener = nil
	}
	t.listener = ListenerDetached

	for _, fn := range t.unbind {
		fn()
	}
	t.unbind = nil
	for _, s := range t.subs {
		if err := t.bus.Unsubscribe(s); err != nil {
			t.log.Debug("unsubscribe failed", "topic", s.Topic().String(), "error", err)
		}
	}
	t.subs = nil
	t.log.Info("tracker closed", "editables", t.store.Len())
}

// report surfaces an internal consistency error without stopping the
// tracker.
func (t *Tracker) report(err error) {
	t.log.Warn("selection listener inconsistency", "error", err)
	if t.opts.errorHandler != nil {
		t.opts.errorHandler(err)
	}
}
