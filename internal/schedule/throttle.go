package schedule

import "time"

// Throttler allows at most one callback run per interval.
//
// With the leading edge enabled a call after a quiet interval runs the
// callback immediately. With the trailing edge enabled calls that arrive
// inside the interval collapse into one run at the end of it.
//
// A Throttler is not safe for concurrent use; drive it from the goroutine
// that owns its Clock.
type Throttler struct {
	clock    Clock
	interval time.Duration
	callback func()
	leading  bool
	trailing bool

	lastRun time.Time
	hasRun  bool
	pending bool
	timer   Timer
}

// ThrottlerOption configures a Throttler.
type ThrottlerOption func(*Throttler)

// WithLeadingEdge configures the throttler to execute on the leading edge.
func WithLeadingEdge(leading bool) ThrottlerOption {
	return func(t *Throttler) {
		t.leading = leading
	}
}

// WithTrailingEdge configures the throttler to execute on the trailing edge.
func WithTrailingEdge(trailing bool) ThrottlerOption {
	return func(t *Throttler) {
		t.trailing = trailing
	}
}

// NewThrottler creates a throttler. Both edges are enabled by default.
func NewThrottler(clock Clock, interval time.Duration, callback func(), opts ...ThrottlerOption) *Throttler {
	t := &Throttler{
		clock:    clock,
		interval: interval,
		callback: callback,
		leading:  true,
		trailing: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Call requests a callback run, respecting the interval.
func (t *Throttler) Call() {
	now := t.clock.Now()
	elapsed := now.Sub(t.lastRun)

	if !t.hasRun || elapsed >= t.interval {
		if t.leading {
			t.run(now)
			return
		}
		t.pending = true
		t.scheduleTrailing(t.interval)
		return
	}

	t.pending = true
	t.scheduleTrailing(t.interval - elapsed)
}

// Pending reports whether a trailing run is scheduled.
func (t *Throttler) Pending() bool {
	return t.pending
}

// Cancel drops any scheduled trailing run.
func (t *Throttler) Cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
}

// Reset cancels pending work and forgets the last run.
func (t *Throttler) Reset() {
	t.Cancel()
	t.hasRun = false
	t.lastRun = time.Time{}
}

func (t *Throttler) scheduleTrailing(d time.Duration) {
	if !t.trailing || t.timer != nil {
		return
	}
	var timer Timer
	timer = t.clock.AfterFunc(d, func() {
		if t.timer != timer {
			return
		}
		t.timer = nil
		if t.pending {
			t.run(t.clock.Now())
		}
	})
	t.timer = timer
}

func (t *Throttler) run(now time.Time) {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
	t.lastRun = now
	t.hasRun = true
	t.callback()
}
