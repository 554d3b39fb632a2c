package chain

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// EventType categorizes chain lifecycle events.
type EventType string

const (
	// EventSuccess indicates a provider completed the operation
	EventSuccess EventType = "success"

	// EventError indicates a provider attempt failed (execution error or timeout)
	EventError EventType = "error"

	// EventFallback indicates control passed from a failed provider to the
	// structurally next provider in the sequence
	EventFallback EventType = "fallback"

	// EventSkipped indicates a provider was passed over without being attempted
	EventSkipped EventType = "skipped"
)

// String returns the string representation of the event type.
func (t EventType) String() string { return string(t) }

// ReasonUnhealthy is the skip reason for providers failing their health check.
const ReasonUnhealthy = "unhealthy"

// Event is a single chain lifecycle notification. Events are immutable after
// creation. Fields are populated per type: success carries Provider, Index and
// Latency; error carries Provider, Index, Err and Latency; fallback carries
// From and To; skipped carries Provider, Index and Reason.
type Event struct {
	Type EventType

	// ExecutionID correlates all events emitted by one Execute call
	ExecutionID string

	Provider string
	Index    int

	From string
	To   string

	Reason string
	Err    error

	Latency   time.Duration
	Timestamp time.Time
}

// Hook is a synchronous callback for chain events. Hooks are invoked inline
// during execution, so they should be fast; a slow hook delays the chain.
type Hook interface {
	// OnEvent is called for each chain event.
	OnEvent(ctx context.Context, event Event)

	// Name returns a human-readable name for logging and debugging.
	Name() string
}

// HookFunc adapts a bare function to the Hook interface.
type HookFunc func(ctx context.Context, event Event)

func (f HookFunc) OnEvent(ctx context.Context, event Event) { f(ctx, event) }
func (f HookFunc) Name() string                             { return "func" }

// HookID is a unique identifier for a registered hook.
type HookID string

// Subscription represents an active channel subscription to chain events.
// Subscriptions must be explicitly unsubscribed to free resources.
type Subscription interface {
	// Events returns the channel events are delivered on. The channel is
	// closed when the subscription is unsubscribed.
	Events() <-chan Event

	// Unsubscribe stops delivery and closes the Events channel. Idempotent.
	Unsubscribe()

	// ID returns a unique identifier for this subscription.
	ID() string

	// OverflowCount returns how many events were dropped because the buffer
	// was full. A growing value means the subscriber is not keeping up.
	OverflowCount() int64
}

// notifier fans chain events out to hooks and subscriptions. It is decoupled
// from the execution algorithm so the engine can be tested without a live
// subscriber. Delivery is fire-and-forget: no consumer can veto or alter
// execution.
type notifier struct {
	mu         sync.RWMutex
	hooks      map[HookID]Hook
	subs       map[string]*subscription
	nextHookID atomic.Int64
	nextSubID  atomic.Int64
}

func newNotifier() *notifier {
	return &notifier{
		hooks: make(map[HookID]Hook),
		subs:  make(map[string]*subscription),
	}
}

func (n *notifier) RegisterHook(h Hook) HookID {
	id := HookID(fmt.Sprintf("hook-%d", n.nextHookID.Add(1)))

	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks[id] = h
	return id
}

func (n *notifier) UnregisterHook(id HookID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.hooks, id)
}

func (n *notifier) Subscribe(bufferSize int) Subscription {
	if bufferSize < 0 {
		bufferSize = 0
	}

	sub := &subscription{
		id:       fmt.Sprintf("sub-%d", n.nextSubID.Add(1)),
		events:   make(chan Event, bufferSize),
		notifier: n,
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs[sub.id] = sub
	return sub
}

// publish delivers an event to all subscriptions (non-blocking) and then to
// all hooks (inline). Channel sends happen under the read lock so they cannot
// race a subscription's close, which requires the write lock.
func (n *notifier) publish(ctx context.Context, event Event) {
	n.mu.RLock()
	hooks := make([]Hook, 0, len(n.hooks))
	for _, h := range n.hooks {
		hooks = append(hooks, h)
	}
	for _, sub := range n.subs {
		select {
		case sub.events <- event:
		default:
			sub.overflow.Add(1)
		}
	}
	n.mu.RUnlock()

	for _, h := range hooks {
		h.OnEvent(ctx, event)
	}
}

type subscription struct {
	id       string
	events   chan Event
	overflow atomic.Int64
	notifier *notifier
	once     sync.Once
}

func (s *subscription) Events() <-chan Event { return s.events }

func (s *subscription) ID() string { return s.id }

func (s *subscription) OverflowCount() int64 { return s.overflow.Load() }

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.mu.Lock()
		delete(s.notifier.subs, s.id)
		close(s.events)
		s.notifier.mu.Unlock()
	})
}
