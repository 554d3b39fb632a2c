package chain

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Chain is an ordered, mutable collection of providers plus the execution
// engine operating over them. The sequence is always sorted ascending by
// priority after every mutation; equal priorities keep their insertion order.
//
// Registration and queries are safe for concurrent use. An Execute call takes
// a snapshot of the sequence at call start, so concurrent Add/Remove calls
// never tear an in-flight execution.
type Chain[Req, Resp any] struct {
	mu        sync.RWMutex
	providers []Provider

	timeoutPerItem  time.Duration
	continueOnError bool
	onFallback      func(from, to string)

	notifier *notifier
}

// New creates an empty chain with the given configuration.
func New[Req, Resp any](cfg Config) *Chain[Req, Resp] {
	return &Chain[Req, Resp]{
		timeoutPerItem:  cfg.timeout(),
		continueOnError: cfg.continueOnError(),
		onFallback:      cfg.OnFallback,
		notifier:        newNotifier(),
	}
}

// NewWithProviders creates a chain pre-populated with the given providers.
func NewWithProviders[Req, Resp any](cfg Config, providers ...Provider) *Chain[Req, Resp] {
	c := New[Req, Resp](cfg)
	for _, p := range providers {
		c.Add(p)
	}
	return c
}

// Add registers a provider and re-sorts the sequence by ascending priority.
// Duplicate names are accepted silently.
func (c *Chain[Req, Resp]) Add(p Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.providers = append(c.providers, p)
	sort.SliceStable(c.providers, func(i, j int) bool {
		return c.providers[i].Priority() < c.providers[j].Priority()
	})
}

// Remove deletes every provider whose name matches. Removing an unknown name
// is a no-op.
func (c *Chain[Req, Resp]) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.providers[:0]
	for _, p := range c.providers {
		if p.Name() != name {
			kept = append(kept, p)
		}
	}
	// Clear trailing slots so removed providers are not retained.
	for i := len(kept); i < len(c.providers); i++ {
		c.providers[i] = nil
	}
	c.providers = kept
}

// Get returns the first provider with the given name, or ErrProviderNotFound.
func (c *Chain[Req, Resp]) Get(name string) (Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.providers {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, ErrProviderNotFound
}

// List returns a snapshot of the current priority order. Mutating the
// returned slice does not affect the chain.
func (c *Chain[Req, Resp]) List() []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Count returns the number of registered providers.
func (c *Chain[Req, Resp]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.providers)
}

// FirstAvailable returns the first provider in priority order whose health
// check passes or that has no health check. It executes nothing. Returns
// ErrNoneAvailable when the chain is empty or every provider is unhealthy.
func (c *Chain[Req, Resp]) FirstAvailable(ctx context.Context) (Provider, error) {
	for _, p := range c.snapshot() {
		if hc, ok := p.(HealthChecker); ok {
			if err := hc.HealthCheck(ctx); err != nil {
				continue
			}
		}
		return p, nil
	}
	return nil, ErrNoneAvailable
}

// RegisterHook registers a synchronous callback for chain events. Hooks are
// invoked inline during execution and should be fast; their behavior never
// affects control flow.
func (c *Chain[Req, Resp]) RegisterHook(h Hook) HookID {
	return c.notifier.RegisterHook(h)
}

// UnregisterHook removes a previously registered hook. Safe to call with an
// unknown ID (no-op).
func (c *Chain[Req, Resp]) UnregisterHook(id HookID) {
	c.notifier.UnregisterHook(id)
}

// Subscribe creates a buffered subscription to chain events. Events that
// arrive while the buffer is full are dropped and counted, never blocking
// execution. Call Unsubscribe when done.
func (c *Chain[Req, Resp]) Subscribe(bufferSize int) Subscription {
	return c.notifier.Subscribe(bufferSize)
}

// snapshot copies the provider sequence under the read lock.
func (c *Chain[Req, Resp]) snapshot() []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Provider, len(c.providers))
	copy(out, c.providers)
	return out
}
