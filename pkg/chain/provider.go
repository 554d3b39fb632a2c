package chain

import "context"

// Provider is one candidate implementation of an operation. Lower priority
// values are tried earlier; ties are broken by insertion order. Names are not
// required to be unique within a chain; lookups resolve to the first match.
type Provider interface {
	Name() string
	Priority() int
}

// Executor is the capability of actually performing the operation. A
// registered provider that does not implement Executor is inert: the engine
// advances past it without invoking anything and without recording a failure.
type Executor[Req, Resp any] interface {
	Provider
	Execute(ctx context.Context, req Req) (Resp, error)
}

// HealthChecker is an optional pre-flight probe. A nil return means the
// provider is healthy and may be attempted; a non-nil return means it is
// skipped for this call. Health failures are absorbed locally and never count
// toward the chain's failure accounting. Providers without this capability
// are treated as always healthy.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Func adapts plain functions to a chain provider, for callers that don't
// want to define a dedicated type.
type Func[Req, Resp any] struct {
	name     string
	priority int
	execute  func(ctx context.Context, req Req) (Resp, error)
	health   func(ctx context.Context) error
}

// NewFunc creates a function-backed provider with the given name and priority.
func NewFunc[Req, Resp any](name string, priority int, execute func(ctx context.Context, req Req) (Resp, error)) *Func[Req, Resp] {
	return &Func[Req, Resp]{
		name:     name,
		priority: priority,
		execute:  execute,
	}
}

// WithHealthCheck attaches a health probe and returns the provider for chaining.
func (f *Func[Req, Resp]) WithHealthCheck(health func(ctx context.Context) error) *Func[Req, Resp] {
	f.health = health
	return f
}

func (f *Func[Req, Resp]) Name() string  { return f.name }
func (f *Func[Req, Resp]) Priority() int { return f.priority }

func (f *Func[Req, Resp]) Execute(ctx context.Context, req Req) (Resp, error) {
	return f.execute(ctx, req)
}

// HealthCheck reports healthy when no probe was attached.
func (f *Func[Req, Resp]) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health(ctx)
}
