package chain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// attemptResult carries the outcome of one provider invocation across the
// execute-vs-timeout race.
type attemptResult[Resp any] struct {
	resp Resp
	err  error
}

// Execute walks the provider sequence in priority order until one provider
// succeeds or the sequence is exhausted.
//
// Per provider: a health check (if the provider has one) gates the attempt;
// an unhealthy provider is skipped without any failure accounting. A provider
// without an Executor capability is inert and silently advanced past. An
// attempted provider's operation is raced against the per-attempt timeout;
// a timeout counts as a failure. On failure the chain emits a fallback event
// naming the structurally next provider - even when that provider will itself
// be skipped by its health check - and invokes the OnFallback callback.
//
// The final outcome is either the successful provider's result, the last
// recorded failure, or ErrExhausted when no provider ever executed. If the
// caller's context is cancelled the call returns the context's error
// immediately.
func (c *Chain[Req, Resp]) Execute(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	providers := c.snapshot()
	execID := uuid.New().String()

	var lastErr error

	for i, p := range providers {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		if hc, ok := p.(HealthChecker); ok {
			if err := hc.HealthCheck(ctx); err != nil {
				c.notifier.publish(ctx, Event{
					Type:        EventSkipped,
					ExecutionID: execID,
					Provider:    p.Name(),
					Index:       i,
					Reason:      ReasonUnhealthy,
					Timestamp:   time.Now(),
				})
				continue
			}
		}

		exec, ok := p.(Executor[Req, Resp])
		if !ok {
			// Inert for this call: nothing to invoke, nothing to record.
			continue
		}

		start := time.Now()
		resp, err := c.invoke(ctx, exec, req)
		latency := time.Since(start)

		if err == nil {
			c.notifier.publish(ctx, Event{
				Type:        EventSuccess,
				ExecutionID: execID,
				Provider:    p.Name(),
				Index:       i,
				Latency:     latency,
				Timestamp:   time.Now(),
			})
			return resp, nil
		}

		// Caller abandoned the call; not a provider failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}

		lastErr = err
		c.notifier.publish(ctx, Event{
			Type:        EventError,
			ExecutionID: execID,
			Provider:    p.Name(),
			Index:       i,
			Err:         err,
			Latency:     latency,
			Timestamp:   time.Now(),
		})

		if i < len(providers)-1 {
			next := providers[i+1]
			c.notifier.publish(ctx, Event{
				Type:        EventFallback,
				ExecutionID: execID,
				From:        p.Name(),
				To:          next.Name(),
				Timestamp:   time.Now(),
			})
			if c.onFallback != nil {
				c.onFallback(p.Name(), next.Name())
			}
		}

		if !c.continueOnError {
			return zero, err
		}
	}

	if lastErr != nil {
		return zero, lastErr
	}
	return zero, ErrExhausted
}

// invoke races one provider's operation against the per-attempt timer. The
// losing branch is abandoned, not cancelled: the result channel is buffered so
// a late completion is discarded without blocking or leaking the goroutine,
// and the timer is stopped when execution settles first.
func (c *Chain[Req, Resp]) invoke(ctx context.Context, exec Executor[Req, Resp], req Req) (Resp, error) {
	var zero Resp

	timer := time.NewTimer(c.timeoutPerItem)
	defer timer.Stop()

	done := make(chan attemptResult[Resp], 1)
	go func() {
		resp, err := exec.Execute(ctx, req)
		done <- attemptResult[Resp]{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return zero, NewExecutionError(exec.Name(), r.err)
		}
		return r.resp, nil
	case <-timer.C:
		return zero, NewTimeoutError(exec.Name(), c.timeoutPerItem)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
