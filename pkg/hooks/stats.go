package hooks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cecil-the-coder/fallback-kit/pkg/chain"
)

// ProviderStats accumulates per-provider outcome counts.
type ProviderStats struct {
	Successes    int64
	Failures     int64
	Timeouts     int64
	Skips        int64
	TotalLatency time.Duration
}

// AverageLatency returns the mean latency across successes and failures, or
// zero when nothing was attempted.
func (s ProviderStats) AverageLatency() time.Duration {
	attempts := s.Successes + s.Failures
	if attempts == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(attempts)
}

// Stats is a hook that tracks per-provider outcomes and fallback transitions
// in memory. All methods are safe for concurrent use.
type Stats struct {
	mu        sync.Mutex
	providers map[string]*ProviderStats
	fallbacks map[string]int64 // "from->to"
}

// NewStats creates an empty stats hook.
func NewStats() *Stats {
	return &Stats{
		providers: make(map[string]*ProviderStats),
		fallbacks: make(map[string]int64),
	}
}

func (s *Stats) Name() string { return "stats" }

func (s *Stats) OnEvent(_ context.Context, event chain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Type {
	case chain.EventSuccess:
		ps := s.provider(event.Provider)
		ps.Successes++
		ps.TotalLatency += event.Latency
	case chain.EventError:
		ps := s.provider(event.Provider)
		ps.Failures++
		ps.TotalLatency += event.Latency
		var pe *chain.ProviderError
		if errors.As(event.Err, &pe) && pe.Timeout() {
			ps.Timeouts++
		}
	case chain.EventFallback:
		s.fallbacks[event.From+"->"+event.To]++
	case chain.EventSkipped:
		s.provider(event.Provider).Skips++
	}
}

// Provider returns a copy of the named provider's stats. Unknown names return
// the zero value.
func (s *Stats) Provider(name string) ProviderStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ps, ok := s.providers[name]; ok {
		return *ps
	}
	return ProviderStats{}
}

// Snapshot returns a copy of all per-provider stats keyed by provider name.
func (s *Stats) Snapshot() map[string]ProviderStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]ProviderStats, len(s.providers))
	for name, ps := range s.providers {
		out[name] = *ps
	}
	return out
}

// Fallbacks returns a copy of fallback transition counts keyed "from->to".
func (s *Stats) Fallbacks() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64, len(s.fallbacks))
	for k, v := range s.fallbacks {
		out[k] = v
	}
	return out
}

// Reset clears all accumulated counts.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.providers = make(map[string]*ProviderStats)
	s.fallbacks = make(map[string]int64)
}

func (s *Stats) provider(name string) *ProviderStats {
	ps, ok := s.providers[name]
	if !ok {
		ps = &ProviderStats{}
		s.providers[name] = ps
	}
	return ps
}
