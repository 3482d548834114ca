package schedule

import "time"

// PollState is the lifecycle state of a Poll.
type PollState int

const (
	// PollRunning means another attempt is scheduled.
	PollRunning PollState = iota

	// PollSucceeded means the action reported success.
	PollSucceeded

	// PollExhausted means an attempt or duration limit was reached.
	PollExhausted

	// PollStopped means Stop was called before success.
	PollStopped
)

// String returns a human-readable state name.
func (s PollState) String() string {
	switch s {
	case PollRunning:
		return "running"
	case PollSucceeded:
		return "succeeded"
	case PollExhausted:
		return "exhausted"
	case PollStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// PollOption configures a Poll.
type PollOption func(*Poll)

// WithMaxAttempts bounds the number of action invocations. Zero means
// unbounded.
func WithMaxAttempts(n int) PollOption {
	return func(p *Poll) {
		if n >= 0 {
			p.maxAttempts = n
		}
	}
}

// WithMaxDuration bounds the time between the first attempt and the last.
// Zero means unbounded.
func WithMaxDuration(d time.Duration) PollOption {
	return func(p *Poll) {
		if d >= 0 {
			p.maxDuration = d
		}
	}
}

// WithOnDone registers a callback invoked once when the poll leaves the
// running state.
func WithOnDone(fn func(PollState)) PollOption {
	return func(p *Poll) {
		p.onDone = fn
	}
}

// Poll repeatedly invokes an action at a fixed interval until it reports
// success, a limit is hit or it is stopped.
type Poll struct {
	clock       Clock
	action      func() bool
	interval    time.Duration
	maxAttempts int
	maxDuration time.Duration
	onDone      func(PollState)

	started  time.Time
	attempts int
	state    PollState
	timer    Timer
}

// PollUntil invokes action synchronously, then again every interval until
// it returns true. The returned handle can stop the poll.
func PollUntil(clock Clock, action func() bool, interval time.Duration, opts ...PollOption) *Poll {
	p := &Poll{
		clock:    clock,
		action:   action,
		interval: interval,
		started:  clock.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.attempt()
	return p
}

// State returns the current state.
func (p *Poll) State() PollState { return p.state }

// Attempts returns how many times the action ran.
func (p *Poll) Attempts() int { return p.attempts }

// Done reports whether the poll has finished.
func (p *Poll) Done() bool { return p.state != PollRunning }

// Stop cancels the poll. It reports whether the poll was still running.
func (p *Poll) Stop() bool {
	if p.state != PollRunning {
		return false
	}
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.finish(PollStopped)
	return true
}

func (p *Poll) attempt() {
	p.timer = nil
	if p.state != PollRunning {
		return
	}

	p.attempts++
	if p.action() {
		p.finish(PollSucceeded)
		return
	}
	if p.state != PollRunning {
		// Stopped from inside the action.
		return
	}

	if p.maxAttempts > 0 && p.attempts >= p.maxAttempts {
		p.finish(PollExhausted)
		return
	}
	next := p.clock.Now().Add(p.interval)
	if p.maxDuration > 0 && next.Sub(p.started) > p.maxDuration {
		p.finish(PollExhausted)
		return
	}

	p.timer = p.clock.AfterFunc(p.interval, p.attempt)
}

func (p *Poll) finish(state PollState) {
	p.state = state
	if p.onDone != nil {
		fn := p.onDone
		p.onDone = nil
		fn(state)
	}
}
