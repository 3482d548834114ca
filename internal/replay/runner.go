package replay

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dshills/focustrack/internal/config"
	"github.com/dshills/focustrack/internal/dom"
	"github.com/dshills/focustrack/internal/dom/memdom"
	"github.com/dshills/focustrack/internal/event"
	"github.com/dshills/focustrack/internal/event/events"
	"github.com/dshills/focustrack/internal/event/topic"
	"github.com/dshills/focustrack/internal/focus"
	"github.com/dshills/focustrack/internal/hit"
	"github.com/dshills/focustrack/internal/logging"
	"github.com/dshills/focustrack/internal/platform"
)

// Options configures Run.
type Options struct {
	// Config supplies the selector, timings and platform. The zero value
	// means config.Defaults().
	Config config.Config
	Logger logging.Logger

	// Out receives the replay transcript. Defaults to io.Discard.
	Out io.Writer

	// Realtime replays on a schedule.Loop with real waits instead of a
	// manual clock.
	Realtime bool
}

// Result summarizes a replay.
type Result struct {
	Steps         int
	Notifications int
	States        []StateSummary
}

// StateSummary is the stored state of one editable after the replay.
type StateSummary struct {
	Editable      string
	Location      string
	ScrollTop     float64
	BodyScrollTop float64
}

// epoch anchors manual-clock replays so transcripts are reproducible.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Run replays sc and writes a transcript to opts.Out.
func Run(ctx context.Context, sc *Scenario, opts Options) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	log = logging.WithComponent(log, "replay")
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if opts.Config == (config.Config{}) {
		opts.Config = config.Defaults()
	}

	var drv driver
	if opts.Realtime {
		drv = newLoopDriver(ctx)
	} else {
		drv = newManualDriver(epoch)
	}
	defer drv.stop()

	r := &runner{
		sc:     sc,
		cfg:    opts.Config,
		log:    log,
		drv:    drv,
		bus:    event.NewBus(),
		hits:   hit.NewRegistry(),
		result: &Result{},
	}
	r.printer = &printer{out: out, elapsed: drv.elapsed}

	var initErr error
	if err := drv.do(ctx, func() { initErr = r.init() }); err != nil {
		return nil, err
	}
	if initErr != nil {
		return nil, initErr
	}
	defer func() {
		_ = drv.do(context.WithoutCancel(ctx), r.tracker.Close)
	}()

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		var stepErr error
		if st.Advance != nil {
			stepErr = drv.advance(ctx, st.Advance.Std())
		} else if err := drv.do(ctx, func() { stepErr = r.step(st) }); err != nil {
			return r.result, err
		}
		if stepErr != nil {
			return r.result, fmt.Errorf("step %d (%s): %w", i+1, st.Name(), stepErr)
		}
		r.result.Steps++
	}

	if err := drv.do(ctx, r.summarize); err != nil {
		return r.result, err
	}
	return r.result, nil
}

type runner struct {
	sc      *Scenario
	cfg     config.Config
	log     logging.Logger
	drv     driver
	bus     event.Bus
	hits    *hit.Registry
	doc     *memdom.Document
	tracker *focus.Tracker
	printer *printer
	result  *Result
}

func (r *runner) init() error {
	native := true
	if r.sc.SelectionChange != nil {
		native = *r.sc.SelectionChange
	}
	clock := r.drv.clock()
	r.doc = memdom.New(memdom.WithSelectionChange(native), memdom.WithClock(clock.Now))
	buildDocument(r.doc, r.sc.Document)

	probe := r.cfg.Probe()
	if r.sc.BuggyMobile != nil {
		probe = platform.Static{BuggyMobile: *r.sc.BuggyMobile}
	}
	selector := r.cfg.Selector
	if r.sc.Selector != "" {
		selector = r.sc.Selector
	}

	if err := r.printer.subscribe(r.bus, func() { r.result.Notifications++ }); err != nil {
		return err
	}

	opts := append(r.cfg.TrackerOptions(),
		focus.WithLogger(r.log),
		focus.WithErrorHandler(func(err error) { r.printer.line("error", err.Error()) }),
	)
	t, err := focus.Init(focus.Deps{
		Document: r.doc,
		Bus:      r.bus,
		Clock:    clock,
		Hits:     r.hits,
		Probe:    probe,
	}, selector, opts...)
	if err != nil {
		return err
	}
	r.tracker = t
	r.printer.line("init", fmt.Sprintf("scenario=%q editables=%d native=%t buggy=%t",
		r.sc.Name, len(t.Editables()), native, probe.IsKnownBuggyMobilePlatform()))
	return nil
}

func (r *runner) step(st Step) error {
	switch {
	case st.Focus != "":
		n, err := resolve(r.doc, st.Focus)
		if err != nil {
			return err
		}
		n.Focus()
	case st.Blur != "":
		n, err := resolve(r.doc, st.Blur)
		if err != nil {
			return err
		}
		n.Blur()
	case st.Select != nil:
		return r.selectRange(*st.Select)
	case st.ClearSelection:
		r.doc.LiveSelection().RemoveAllRanges()
	case st.Scroll != nil:
		if st.Scroll.Target == "" || st.Scroll.Target == "body" {
			r.doc.ScrollBody(st.Scroll.Top)
			return nil
		}
		n, err := resolve(r.doc, st.Scroll.Target)
		if err != nil {
			return err
		}
		n.ScrollTo(st.Scroll.Top)
	case st.Publish != nil:
		return r.publish(*st.Publish)
	case st.Hit != "":
		n, err := resolve(r.doc, st.Hit)
		if err != nil {
			return err
		}
		claimed := r.hits.Dispatch(hit.Event{Target: n, Time: r.drv.clock().Now()})
		r.printer.line("hit", fmt.Sprintf("target=%s claimed=%t", label(n), claimed))
	case st.Drift != "":
		return r.drift(st.Drift)
	case st.Rotate:
		r.doc.Rotate()
	case st.RestoreFocus:
		rng, ok := r.tracker.RestoreFocus()
		if !ok {
			r.printer.line("restore_focus", "none")
			return nil
		}
		r.printer.line("restore_focus", r.describe(r.tracker.LastEditable(), rng))
	case st.CreateFocus:
		rng := r.tracker.CreateFocus()
		r.printer.line("create_focus", r.describe(r.tracker.LastEditable(), rng))
	case st.RemoveFocus:
		r.tracker.RemoveFocus()
	}
	return nil
}

func (r *runner) selectRange(s SelectStep) error {
	start, err := resolve(r.doc, s.Node)
	if err != nil {
		return err
	}
	end := start
	if s.EndNode != "" {
		if end, err = resolve(r.doc, s.EndNode); err != nil {
			return err
		}
	}
	r.doc.Select(r.doc.NewRange(start, s.Start, end, s.End))
	return nil
}

// publish sends an application event, choosing the payload by topic.
func (r *runner) publish(p PublishStep) error {
	tp := topic.Topic(p.Topic)
	if !tp.Valid() || tp.IsPattern() {
		return fmt.Errorf("%w: bad topic %q", ErrInvalidScenario, p.Topic)
	}
	ctx := context.Background()
	var ev any
	switch tp {
	case topic.CharInserted, topic.TextInserted:
		ev = event.NewEvent(tp, events.Inserted{Text: p.Value}, "replay")
	case topic.HTMLInserted:
		ev = event.NewEvent(tp, events.Inserted{Text: p.Value, HTML: true}, "replay")
	case topic.CommandExecuted, topic.NavigationExecuted:
		ev = event.NewEvent(tp, events.CommandExecuted{Name: p.Value}, "replay")
	case topic.PluginExited, topic.PluginSaved:
		ev = event.NewEvent(tp, events.PluginEvent{Plugin: p.Value}, "replay")
	case topic.ExternalRangeSupplied:
		ev = event.NewEvent(tp, events.RangeSupplied{Range: dom.FirstRange(r.doc.Selection())}, "replay")
	default:
		ev = event.NewEvent(tp, p.Value, "replay")
	}
	if err := r.bus.Publish(ctx, ev); err != nil {
		r.log.Warn("publish returned errors", "topic", p.Topic, "error", err)
	}
	return nil
}

// drift makes the native copy of the editable's stored range stale, the
// way the buggy mobile browser does after a blur.
func (r *runner) drift(ref string) error {
	n, err := resolve(r.doc, ref)
	if err != nil {
		return err
	}
	st := r.tracker.Store().Get(n)
	mr, ok := st.Range.(*memdom.Range)
	if !ok {
		r.printer.line("drift", label(n)+" has no stored range")
		return nil
	}
	origin := dom.Point{Container: n, Offset: 0}
	mr.Drift(dom.Boundaries{Start: origin, End: origin})
	r.printer.line("drift", label(n))
	return nil
}

func (r *runner) describe(editable dom.Element, rng dom.Range) string {
	loc, ok := focus.LocationOf(editable, rng)
	if !ok {
		return labelOf(editable) + " none"
	}
	return labelOf(editable) + " " + loc.String()
}

func (r *runner) summarize() {
	r.tracker.Store().Each(func(st *focus.EditableState) {
		s := StateSummary{
			Editable:      labelOf(st.Editable),
			Location:      "none",
			ScrollTop:     st.ScrollTop,
			BodyScrollTop: st.BodyScrollTop,
		}
		if loc, ok := focus.LocationOf(st.Editable, st.Range); ok {
			s.Location = loc.String()
		}
		r.result.States = append(r.result.States, s)
		r.printer.line("state", fmt.Sprintf("%s range=%s scroll=%g body=%g",
			s.Editable, s.Location, s.ScrollTop, s.BodyScrollTop))
	})
}

func labelOf(n dom.Node) string {
	mn, _ := n.(*memdom.Node)
	return label(mn)
}
