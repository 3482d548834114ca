package memdom

import "github.com/dshills/focustrack/internal/dom"

type listener struct {
	fn      dom.Listener
	removed bool
}

// listenerSet holds listeners per event kind in registration order.
type listenerSet struct {
	byKind map[dom.EventKind][]*listener
}

func (s *listenerSet) add(kind dom.EventKind, fn dom.Listener) dom.RemoveFunc {
	if s.byKind == nil {
		s.byKind = make(map[dom.EventKind][]*listener)
	}
	l := &listener{fn: fn}
	s.byKind[kind] = append(s.byKind[kind], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		ls := s.byKind[kind]
		for i, cur := range ls {
			if cur == l {
				s.byKind[kind] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

// count returns the number of live listeners for kind.
func (s *listenerSet) count(kind dom.EventKind) int {
	return len(s.byKind[kind])
}

// fire calls every listener registered for ev.Kind. Listeners removed while
// firing are skipped; listeners added while firing wait for the next event.
func (s *listenerSet) fire(ev dom.Event) {
	ls := s.byKind[ev.Kind]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]*listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if !l.removed {
			l.fn(ev)
		}
	}
}
