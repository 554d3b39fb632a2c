// Package testutil provides shared testing utilities, mocks, and fixtures
// for use across the fallback-kit test suite.
package testutil

import (
	"context"
	"sync"
	"time"
)

// MockProvider is a configurable mock chain provider operating on string
// payloads. It implements the execute capability but no health check.
type MockProvider struct {
	mu sync.Mutex

	name     string
	priority int

	// Behavior control
	response string
	err      error
	delay    time.Duration

	// Call tracking
	executeCalls int
}

// NewMockProvider creates a mock provider that returns the given response.
func NewMockProvider(name string, priority int, response string) *MockProvider {
	return &MockProvider{
		name:     name,
		priority: priority,
		response: response,
	}
}

// SetError configures the provider to fail every execution with err.
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetDelay makes every execution sleep for d before completing. The sleep
// deliberately ignores context cancellation so tests can observe abandoned
// attempts finishing late.
func (m *MockProvider) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// ExecuteCalls returns how many times Execute was invoked.
func (m *MockProvider) ExecuteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executeCalls
}

func (m *MockProvider) Name() string  { return m.name }
func (m *MockProvider) Priority() int { return m.priority }

func (m *MockProvider) Execute(ctx context.Context, req string) (string, error) {
	m.mu.Lock()
	m.executeCalls++
	response := m.response
	err := m.err
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return "", err
	}
	return response, nil
}

// MockHealthProvider is a MockProvider with a health probe.
type MockHealthProvider struct {
	*MockProvider

	hmu         sync.Mutex
	healthErr   error
	healthCalls int
}

// NewMockHealthProvider creates a healthy mock provider with both capabilities.
func NewMockHealthProvider(name string, priority int, response string) *MockHealthProvider {
	return &MockHealthProvider{
		MockProvider: NewMockProvider(name, priority, response),
	}
}

// SetHealthError configures the health check outcome; nil means healthy.
func (m *MockHealthProvider) SetHealthError(err error) {
	m.hmu.Lock()
	defer m.hmu.Unlock()
	m.healthErr = err
}

// HealthCalls returns how many times HealthCheck was invoked.
func (m *MockHealthProvider) HealthCalls() int {
	m.hmu.Lock()
	defer m.hmu.Unlock()
	return m.healthCalls
}

func (m *MockHealthProvider) HealthCheck(ctx context.Context) error {
	m.hmu.Lock()
	defer m.hmu.Unlock()
	m.healthCalls++
	return m.healthErr
}

// InertProvider carries neither an execute capability nor a health check.
// The chain should silently advance past it.
type InertProvider struct {
	name     string
	priority int
}

// NewInertProvider creates a provider with no capabilities.
func NewInertProvider(name string, priority int) *InertProvider {
	return &InertProvider{name: name, priority: priority}
}

func (p *InertProvider) Name() string  { return p.name }
func (p *InertProvider) Priority() int { return p.priority }

// HealthOnlyProvider has a health probe but no execute capability. Even when
// healthy it is inert for execution purposes.
type HealthOnlyProvider struct {
	*InertProvider
	healthErr error
}

// NewHealthOnlyProvider creates a provider exposing only a health check.
func NewHealthOnlyProvider(name string, priority int, healthErr error) *HealthOnlyProvider {
	return &HealthOnlyProvider{
		InertProvider: NewInertProvider(name, priority),
		healthErr:     healthErr,
	}
}

func (p *HealthOnlyProvider) HealthCheck(ctx context.Context) error {
	return p.healthErr
}
