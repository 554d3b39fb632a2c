package chain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode categorizes provider attempt failures
type ErrorCode string

const (
	// ErrCodeExecution indicates the provider's operation itself failed
	ErrCodeExecution ErrorCode = "execution"

	// ErrCodeTimeout indicates the operation did not settle within the
	// chain's per-attempt timeout
	ErrCodeTimeout ErrorCode = "timeout"
)

var (
	// ErrProviderNotFound is returned by Get when no provider matches the name
	ErrProviderNotFound = errors.New("provider not found")

	// ErrNoneAvailable is returned by FirstAvailable when the chain is empty
	// or every provider fails its health check
	ErrNoneAvailable = errors.New("no available provider")

	// ErrExhausted is returned by Execute when the chain completes without any
	// provider producing a success or a failure, i.e. every provider was
	// skipped or inert and none ever executed
	ErrExhausted = errors.New("all providers exhausted")
)

// ProviderError represents a failed attempt by a single provider.
type ProviderError struct {
	Code        ErrorCode // Categorized failure code
	Provider    string    // Which provider failed
	Message     string    // Human-readable message
	OriginalErr error     // Wrapped underlying cause (nil for timeouts)
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s (code=%s): %v", e.Provider, e.Message, e.Code, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s (code=%s)", e.Provider, e.Message, e.Code)
}

// Unwrap returns the underlying cause for errors.Is/As
func (e *ProviderError) Unwrap() error {
	return e.OriginalErr
}

// Timeout reports whether this failure was a per-attempt timeout
func (e *ProviderError) Timeout() bool {
	return e.Code == ErrCodeTimeout
}

// NewExecutionError wraps a provider's own failure
func NewExecutionError(provider string, err error) *ProviderError {
	return &ProviderError{
		Code:        ErrCodeExecution,
		Provider:    provider,
		Message:     "execution failed",
		OriginalErr: err,
	}
}

// NewTimeoutError creates a timeout failure for a provider attempt
func NewTimeoutError(provider string, timeout time.Duration) *ProviderError {
	return &ProviderError{
		Code:     ErrCodeTimeout,
		Provider: provider,
		Message:  fmt.Sprintf("execution did not settle within %s", timeout),
	}
}
