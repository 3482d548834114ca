package schedule

import "time"

// Group is a Clock that remembers the timers and polls created through it
// so they can all be cancelled at once. After Stop, new timers and polls
// are refused.
//
// A Group is not safe for concurrent use.
type Group struct {
	clock  Clock
	timers map[*groupTimer]struct{}
	polls  map[*Poll]struct{}
	closed bool
}

var _ Clock = (*Group)(nil)

// NewGroup creates a group scheduling on clock.
func NewGroup(clock Clock) *Group {
	return &Group{
		clock:  clock,
		timers: make(map[*groupTimer]struct{}),
		polls:  make(map[*Poll]struct{}),
	}
}

// Now implements Clock.
func (g *Group) Now() time.Time {
	return g.clock.Now()
}

// AfterFunc implements Clock.
func (g *Group) AfterFunc(d time.Duration, fn func()) Timer {
	if g.closed {
		return stoppedTimer{}
	}
	t := &groupTimer{group: g}
	g.timers[t] = struct{}{}
	t.inner = g.clock.AfterFunc(d, func() {
		if _, live := g.timers[t]; !live {
			return
		}
		delete(g.timers, t)
		fn()
	})
	return t
}

// PollUntil starts a poll owned by the group. After Stop it returns a poll
// that has already stopped without running the action.
func (g *Group) PollUntil(action func() bool, interval time.Duration, opts ...PollOption) *Poll {
	if g.closed {
		return &Poll{clock: g.clock, state: PollStopped}
	}
	var p *Poll
	untrack := WithOnDone(func(PollState) {
		if p != nil {
			delete(g.polls, p)
		}
	})
	// Chain any caller supplied OnDone after untracking.
	opts = append(opts, chainOnDone(untrack))
	p = PollUntil(g.clock, action, interval, opts...)
	if !p.Done() {
		g.polls[p] = struct{}{}
	}
	return p
}

// Active returns the number of live timers and running polls.
func (g *Group) Active() int {
	return len(g.timers) + len(g.polls)
}

// Stop cancels every live timer and poll.
func (g *Group) Stop() {
	g.closed = true
	for p := range g.polls {
		p.Stop()
	}
	for t := range g.timers {
		t.inner.Stop()
	}
	clear(g.timers)
	clear(g.polls)
}

type groupTimer struct {
	group *Group
	inner Timer
}

func (t *groupTimer) Stop() bool {
	if _, live := t.group.timers[t]; !live {
		return false
	}
	delete(t.group.timers, t)
	return t.inner.Stop()
}

// chainOnDone wraps an option that sets onDone so that it runs before any
// callback already configured.
func chainOnDone(opt PollOption) PollOption {
	return func(p *Poll) {
		prev := p.onDone
		opt(p)
		first := p.onDone
		p.onDone = func(s PollState) {
			first(s)
			if prev != nil {
				prev(s)
			}
		}
	}
}
