// Package chain implements a prioritized failover chain over interchangeable
// providers. It tries providers sequentially in priority order, skipping
// unhealthy ones and enforcing a per-attempt timeout, until one succeeds or
// the chain is exhausted. Lifecycle events (success, error, fallback, skipped)
// are published to registered hooks and channel subscriptions.
package chain
