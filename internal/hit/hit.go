// Package hit offers pointer and touch interactions to a chain of handlers
// until one of them claims the event.
package hit

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/focustrack/internal/dom"
)

// Standard handler priorities. Higher values run first.
const (
	PriorityObserver = 1000 // Observes every hit and never claims it
	PriorityDefault  = 500
)

// Event is an interaction delivered to hit handlers.
type Event struct {
	// Target is the node under the pointer.
	Target dom.Node

	X, Y float64
	Time time.Time
}

// Handler is offered hit events.
type Handler interface {
	// Handle reports whether the handler claimed the event. A claimed
	// event is not offered to later handlers.
	Handle(ev Event) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev Event) bool

// Handle implements Handler.
func (f HandlerFunc) Handle(ev Event) bool { return f(ev) }

type entry struct {
	handler  Handler
	priority int
	seq      uint64
}

// Registry holds hit handlers in priority order. Handlers with equal
// priority run in registration order.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	seq     uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds h at PriorityDefault and returns a function that removes
// it again.
func (r *Registry) Register(h Handler) (unregister func()) {
	return r.RegisterWithPriority(h, PriorityDefault)
}

// RegisterWithPriority adds h at the given priority and returns a function
// that removes it again.
func (r *Registry) RegisterWithPriority(h Handler, priority int) (unregister func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	seq := r.seq
	r.entries = append(r.entries, entry{handler: h, priority: priority, seq: seq})
	r.sort()

	return func() { r.remove(seq) }
}

func (r *Registry) remove(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.seq == seq {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Dispatch offers ev to each handler in order until one claims it.
// It reports whether any handler claimed the event.
func (r *Registry) Dispatch(ev Event) bool {
	r.mu.RLock()
	handlers := make([]Handler, len(r.entries))
	for i, e := range r.entries {
		handlers[i] = e.handler
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		if h.Handle(ev) {
			return true
		}
	}
	return false
}

func (r *Registry) sort() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority > r.entries[j].priority
		}
		return r.entries[i].seq < r.entries[j].seq
	})
}
