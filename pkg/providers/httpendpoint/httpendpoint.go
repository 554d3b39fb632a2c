// Package httpendpoint provides a chain provider backed by a remote HTTP
// endpoint. The operation is a JSON POST; the optional health check is a GET
// against a separate URL. Client-side rate limiting and OAuth2 client
// credentials are supported per endpoint.
package httpendpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/cecil-the-coder/fallback-kit/pkg/chain"
)

const defaultRequestTimeoutMS = 30000

// OAuthConfig configures client-credentials authentication for an endpoint.
type OAuthConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	TokenURL     string   `yaml:"token_url"`
	Scopes       []string `yaml:"scopes,omitempty"`
}

// Config describes one HTTP endpoint provider.
type Config struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`

	// URL receives the operation as a JSON POST.
	URL string `yaml:"url"`

	// HealthURL, when set, is probed with a GET before each attempt. Any
	// 2xx response counts as healthy. Empty means no health check.
	HealthURL string `yaml:"health_url,omitempty"`

	// RequestTimeoutMS bounds each HTTP request. Defaults to 30000.
	RequestTimeoutMS int `yaml:"request_timeout_ms,omitempty"`

	// Headers are added to every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// RequestsPerMinute enables client-side rate limiting when positive.
	// Useful for endpoints that do not advertise limits in headers.
	RequestsPerMinute int `yaml:"requests_per_minute,omitempty"`

	// OAuth enables client-credentials token handling when set.
	OAuth *OAuthConfig `yaml:"oauth,omitempty"`
}

// Provider executes operations against a remote HTTP endpoint. It carries the
// execute capability always and the health-check capability only when a
// health URL is configured; the Healthier wrapper surfaces that split.
type Provider struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

// Healthier is a Provider with the health-check capability attached.
type Healthier struct {
	*Provider
}

var (
	_ chain.Executor[json.RawMessage, json.RawMessage] = (*Provider)(nil)
	_ chain.HealthChecker                              = (*Healthier)(nil)
)

// New creates an endpoint provider from the given configuration. When a
// health URL is configured the returned chain.Provider is a Healthier, so the
// chain sees the health-check capability; otherwise it is a bare Provider.
func New(cfg Config) (chain.Provider, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("endpoint name is required")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("endpoint %q: url is required", cfg.Name)
	}

	timeoutMS := cfg.RequestTimeoutMS
	if timeoutMS <= 0 {
		timeoutMS = defaultRequestTimeoutMS
	}

	client := &http.Client{Timeout: time.Duration(timeoutMS) * time.Millisecond}
	if cfg.OAuth != nil {
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			Scopes:       cfg.OAuth.Scopes,
		}
		// The token client reuses the timeout configured above.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		client = cc.Client(ctx)
		client.Timeout = time.Duration(timeoutMS) * time.Millisecond
	}

	p := &Provider{cfg: cfg, client: client}
	if cfg.RequestsPerMinute > 0 {
		n := cfg.RequestsPerMinute
		p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
	}

	if cfg.HealthURL != "" {
		return &Healthier{Provider: p}, nil
	}
	return p, nil
}

func (p *Provider) Name() string  { return p.cfg.Name }
func (p *Provider) Priority() int { return p.cfg.Priority }

// Execute posts the request body as JSON and returns the raw response body.
// Non-2xx responses become an *EndpointError.
func (p *Provider) Execute(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL, bytes.NewReader(req))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range p.cfg.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", p.cfg.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(p.cfg.Name, resp.StatusCode, body)
	}
	return body, nil
}

// HealthCheck probes the configured health URL. Any 2xx response is healthy.
func (h *Healthier) HealthCheck(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, h.cfg.HealthURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}
	for k, v := range h.cfg.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("health probe failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}
	return nil
}
