package replay

import (
	"context"
	"time"

	"github.com/dshills/focustrack/internal/schedule"
)

// driver runs scenario steps against a clock.
type driver interface {
	clock() schedule.Clock

	// do runs fn on the tracker's goroutine.
	do(ctx context.Context, fn func()) error

	// advance lets d of clock time pass.
	advance(ctx context.Context, d time.Duration) error

	// elapsed is the clock time since the replay started.
	elapsed() time.Duration

	stop()
}

// manualDriver replays instantly on a ManualClock.
type manualDriver struct {
	c     *schedule.ManualClock
	start time.Time
}

func newManualDriver(start time.Time) *manualDriver {
	return &manualDriver{c: schedule.NewManualClock(start), start: start}
}

func (d *manualDriver) clock() schedule.Clock { return d.c }

func (d *manualDriver) do(_ context.Context, fn func()) error {
	fn()
	return nil
}

func (d *manualDriver) advance(_ context.Context, by time.Duration) error {
	d.c.Advance(by)
	return nil
}

func (d *manualDriver) elapsed() time.Duration { return d.c.Now().Sub(d.start) }

func (d *manualDriver) stop() {}

// loopDriver replays in real time on a schedule.Loop.
type loopDriver struct {
	loop   *schedule.Loop
	start  time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

func newLoopDriver(ctx context.Context) *loopDriver {
	ctx, cancel := context.WithCancel(ctx)
	d := &loopDriver{
		loop:   schedule.NewLoop(64),
		start:  time.Now(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(d.done)
		_ = d.loop.Run(ctx)
	}()
	return d
}

func (d *loopDriver) clock() schedule.Clock { return d.loop }

func (d *loopDriver) do(ctx context.Context, fn func()) error {
	return d.loop.Do(ctx, fn)
}

func (d *loopDriver) advance(ctx context.Context, by time.Duration) error {
	t := time.NewTimer(by)
	defer t.Stop()
	select {
	case <-t.C:
		// Let callbacks due at the deadline drain before the next step.
		return d.loop.Do(ctx, func() {})
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *loopDriver) elapsed() time.Duration { return d.loop.Now().Sub(d.start) }

func (d *loopDriver) stop() {
	d.cancel()
	<-d.done
}
