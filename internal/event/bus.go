package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/focustrack/internal/event/topic"
)

// Bus is the event bus interface.
type Bus interface {
	// Publish delivers event to every matching subscription before
	// returning. The event must implement TopicProvider.
	Publish(ctx context.Context, event any) error

	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error

	Stats() Stats
}

// BusOption configures a Bus.
type BusOption func(*bus)

// WithPanicHandler sets a callback invoked when a handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *bus) {
		b.panicHandler = h
	}
}

type bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription
	seq  uint64

	panicHandler PanicHandler

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates a synchronous event bus.
func NewBus(opts ...BusOption) Bus {
	b := &bus{
		subs: make(map[string]*subscription),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for events whose topic matches pattern.
// Handlers added while an event is being delivered see the next event.
func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	config := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	sub := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
		config:  config,
		seq:     b.seq,
	}
	b.subs[sub.id] = sub
	return sub, nil
}

// SubscribeFunc is Subscribe for a plain function.
func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes sub.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.subs[sub.ID()]
	if !ok {
		return ErrSubscriptionNotFound
	}
	s.Cancel()
	delete(b.subs, s.id)
	return nil
}

// Publish implements Bus.
func (b *bus) Publish(ctx context.Context, event any) error {
	eventTopic := TopicOf(event)
	if eventTopic == "" {
		return ErrInvalidEvent
	}

	subs := b.match(eventTopic)
	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range subs {
		if !sub.shouldDeliver(event) {
			continue
		}
		if sub.config.Once {
			sub.Cancel()
			b.remove(sub.id)
		}
		if err := b.dispatch(ctx, eventTopic, event, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stats implements Bus.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, s := range b.subs {
		if s.IsActive() {
			active++
		}
	}
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}

// match returns the active subscriptions for eventTopic ordered by
// priority, then by subscription order.
func (b *bus) match(eventTopic topic.Topic) []*subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*subscription
	for _, s := range b.subs {
		if s.IsActive() && eventTopic.Matches(s.pattern) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].config.Priority != out[j].config.Priority {
			return out[i].config.Priority < out[j].config.Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func (b *bus) remove(id string) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

func (b *bus) dispatch(ctx context.Context, eventTopic topic.Topic, event any, sub *subscription) (err error) {
	b.handlersExecuted.Add(1)

	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(event, sub, r)
			}
			err = &PanicError{
				SubscriptionID: sub.id,
				Topic:          eventTopic.String(),
				Value:          r,
				Stack:          string(debug.Stack()),
			}
		}
	}()

	if herr := sub.handler.Handle(ctx, event); herr != nil {
		b.handlerErrors.Add(1)
		return &HandlerError{
			SubscriptionID: sub.id,
			Topic:          eventTopic.String(),
			Err:            herr,
		}
	}
	return nil
}
