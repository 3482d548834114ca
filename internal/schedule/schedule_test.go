package schedule

import (
	"context"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualClock_Order(t *testing.T) {
	c := NewManualClock(epoch)

	var got []string
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(50*time.Millisecond, func() { got = append(got, "late") })

	c.Advance(20 * time.Millisecond)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("ran %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if c.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", c.Pending())
	}
	if !c.Now().Equal(epoch.Add(20 * time.Millisecond)) {
		t.Errorf("Now = %v, want epoch+20ms", c.Now())
	}
}

func TestManualClock_NestedAndStop(t *testing.T) {
	c := NewManualClock(epoch)

	var at []time.Duration
	c.AfterFunc(10*time.Millisecond, func() {
		at = append(at, c.Now().Sub(epoch))
		c.AfterFunc(5*time.Millisecond, func() {
			at = append(at, c.Now().Sub(epoch))
		})
	})
	stopped := c.AfterFunc(12*time.Millisecond, func() {
		t.Error("stopped timer ran")
	})
	if !stopped.Stop() {
		t.Error("Stop() = false for a pending timer")
	}
	if stopped.Stop() {
		t.Error("second Stop() = true")
	}

	c.Advance(30 * time.Millisecond)

	if len(at) != 2 || at[0] != 10*time.Millisecond || at[1] != 15*time.Millisecond {
		t.Errorf("callbacks ran at %v, want [10ms 15ms]", at)
	}
}

func TestThrottler_LeadingAndTrailing(t *testing.T) {
	c := NewManualClock(epoch)
	calls := 0
	th := NewThrottler(c, 100*time.Millisecond, func() { calls++ })

	th.Call() // leading edge
	if calls != 1 {
		t.Fatalf("calls = %d after first Call, want 1", calls)
	}

	c.Advance(10 * time.Millisecond)
	th.Call()
	c.Advance(10 * time.Millisecond)
	th.Call()
	if calls != 1 {
		t.Errorf("calls = %d inside interval, want 1", calls)
	}
	if !th.Pending() {
		t.Error("expected a pending trailing run")
	}

	c.Advance(80 * time.Millisecond) // trailing edge at 100ms
	if calls != 2 {
		t.Errorf("calls = %d after trailing edge, want 2", calls)
	}

	c.Advance(500 * time.Millisecond)
	if calls != 2 {
		t.Errorf("calls = %d with no further Call, want 2", calls)
	}

	th.Call()
	if calls != 3 {
		t.Errorf("calls = %d after quiet interval, want 3", calls)
	}
}

func TestThrottler_NoTrailing(t *testing.T) {
	c := NewManualClock(epoch)
	calls := 0
	th := NewThrottler(c, 100*time.Millisecond, func() { calls++ }, WithTrailingEdge(false))

	th.Call()
	th.Call()
	th.Call()
	c.Advance(time.Second)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestThrottler_Cancel(t *testing.T) {
	c := NewManualClock(epoch)
	calls := 0
	th := NewThrottler(c, 100*time.Millisecond, func() { calls++ })

	th.Call()
	th.Call()
	th.Cancel()
	c.Advance(time.Second)

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (trailing run cancelled)", calls)
	}
}

func TestPollUntil_SucceedsImmediately(t *testing.T) {
	c := NewManualClock(epoch)
	p := PollUntil(c, func() bool { return true }, 10*time.Millisecond)

	if p.State() != PollSucceeded {
		t.Errorf("State = %v, want succeeded", p.State())
	}
	if p.Attempts() != 1 {
		t.Errorf("Attempts = %d, want 1", p.Attempts())
	}
	if c.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", c.Pending())
	}
}

func TestPollUntil_Retries(t *testing.T) {
	c := NewManualClock(epoch)
	ready := false
	var done PollState = -1

	p := PollUntil(c, func() bool { return ready }, 10*time.Millisecond,
		WithOnDone(func(s PollState) { done = s }))

	c.Advance(35 * time.Millisecond)
	if p.Attempts() != 4 {
		t.Errorf("Attempts = %d, want 4", p.Attempts())
	}
	if p.Done() {
		t.Fatal("poll finished before the action succeeded")
	}

	ready = true
	c.Advance(10 * time.Millisecond)
	if p.State() != PollSucceeded {
		t.Errorf("State = %v, want succeeded", p.State())
	}
	if done != PollSucceeded {
		t.Errorf("OnDone state = %v, want succeeded", done)
	}
}

func TestPollUntil_Limits(t *testing.T) {
	tests := []struct {
		name         string
		opts         []PollOption
		wantAttempts int
	}{
		{"max attempts", []PollOption{WithMaxAttempts(3)}, 3},
		{"max duration", []PollOption{WithMaxDuration(25 * time.Millisecond)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewManualClock(epoch)
			p := PollUntil(c, func() bool { return false }, 10*time.Millisecond, tt.opts...)
			c.Advance(time.Second)

			if p.State() != PollExhausted {
				t.Errorf("State = %v, want exhausted", p.State())
			}
			if p.Attempts() != tt.wantAttempts {
				t.Errorf("Attempts = %d, want %d", p.Attempts(), tt.wantAttempts)
			}
		})
	}
}

func TestPollUntil_Stop(t *testing.T) {
	c := NewManualClock(epoch)
	p := PollUntil(c, func() bool { return false }, 10*time.Millisecond)

	c.Advance(15 * time.Millisecond)
	if !p.Stop() {
		t.Error("Stop() = false for a running poll")
	}
	c.Advance(time.Second)

	if p.State() != PollStopped {
		t.Errorf("State = %v, want stopped", p.State())
	}
	if p.Attempts() != 2 {
		t.Errorf("Attempts = %d, want 2", p.Attempts())
	}
}

func TestGroup_Stop(t *testing.T) {
	c := NewManualClock(epoch)
	g := NewGroup(c)

	fired := 0
	g.AfterFunc(10*time.Millisecond, func() { fired++ })
	g.AfterFunc(20*time.Millisecond, func() { fired++ })
	p := g.PollUntil(func() bool { return false }, 5*time.Millisecond)

	c.Advance(10 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if g.Active() != 2 {
		t.Errorf("Active = %d, want 2", g.Active())
	}

	g.Stop()
	c.Advance(time.Second)

	if fired != 1 {
		t.Errorf("fired = %d after Stop, want 1", fired)
	}
	if p.State() != PollStopped {
		t.Errorf("poll state = %v, want stopped", p.State())
	}
	if g.Active() != 0 {
		t.Errorf("Active = %d after Stop, want 0", g.Active())
	}

	g.AfterFunc(time.Millisecond, func() { fired++ })
	c.Advance(time.Second)
	if fired != 1 {
		t.Error("timer scheduled after Stop should not run")
	}
	if p := g.PollUntil(func() bool { t.Error("action ran after Stop"); return true }, time.Millisecond); p.State() != PollStopped {
		t.Errorf("poll after Stop state = %v, want stopped", p.State())
	}
}

func TestGroup_PollSucceedsUntracks(t *testing.T) {
	c := NewManualClock(epoch)
	g := NewGroup(c)

	n := 0
	var done PollState = -1
	g.PollUntil(func() bool { n++; return n == 2 }, 5*time.Millisecond,
		WithOnDone(func(s PollState) { done = s }))

	c.Advance(5 * time.Millisecond)
	if g.Active() != 0 {
		t.Errorf("Active = %d, want 0", g.Active())
	}
	if done != PollSucceeded {
		t.Errorf("caller OnDone state = %v, want succeeded", done)
	}
}

func TestLoop_SerializesTimers(t *testing.T) {
	loop := NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	fired := make(chan struct{})
	loop.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer callback did not run")
	}

	stopped := loop.AfterFunc(time.Hour, func() { t.Error("stopped timer ran") })
	if !stopped.Stop() {
		t.Error("Stop() = false for a pending timer")
	}

	ran := false
	if err := loop.Do(ctx, func() { ran = true }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !ran {
		t.Error("Do() returned before fn ran")
	}

	cancel()
	if err := <-errc; err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if err := loop.Post(func() {}); err != ErrLoopStopped {
		t.Errorf("Post() after stop error = %v, want ErrLoopStopped", err)
	}
}
