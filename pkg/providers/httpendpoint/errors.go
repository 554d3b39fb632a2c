package httpendpoint

import (
	"fmt"
	"net/http"
)

// EndpointError represents a non-2xx response from an endpoint.
type EndpointError struct {
	Provider   string
	StatusCode int
	Message    string
	RawBody    string
	Retryable  bool
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("endpoint %s returned %d: %s", e.Provider, e.StatusCode, e.Message)
}

// classifyStatus maps an HTTP status to an EndpointError with a retryability
// verdict. Rate limits and server errors are retryable; client errors are not.
func classifyStatus(provider string, statusCode int, body []byte) *EndpointError {
	err := &EndpointError{
		Provider:   provider,
		StatusCode: statusCode,
		RawBody:    string(body),
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		err.Message = "authentication failed"
	case statusCode == http.StatusNotFound:
		err.Message = "resource not found"
	case statusCode == http.StatusBadRequest:
		err.Message = "invalid request"
	case statusCode == http.StatusTooManyRequests:
		err.Message = "rate limit exceeded"
		err.Retryable = true
	case statusCode >= 500 && statusCode < 600:
		err.Message = "server error"
		err.Retryable = true
	default:
		err.Message = "unexpected status"
	}
	return err
}
