package chain

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeoutMS is the per-attempt timeout applied when none is configured.
const DefaultTimeoutMS = 30000

// Config configures a chain at construction. The zero value is valid and
// yields a 30s per-attempt timeout, continue-on-error behavior, and no
// fallback callback.
type Config struct {
	// TimeoutPerItemMS bounds each provider attempt in milliseconds. The
	// timer resets for every provider; it does not bound the whole chain.
	TimeoutPerItemMS int `yaml:"timeout_per_item_ms"`

	// ContinueOnError controls whether a provider failure advances to the
	// next provider (true, the default) or terminates the call immediately,
	// surfacing that failure (false).
	ContinueOnError *bool `yaml:"continue_on_error,omitempty"`

	// OnFallback is invoked synchronously with (from, to) whenever control
	// passes from a failed provider to the next one in sequence.
	OnFallback func(from, to string) `yaml:"-"`
}

// timeout resolves the per-attempt timeout as a duration.
func (c Config) timeout() time.Duration {
	ms := c.TimeoutPerItemMS
	if ms <= 0 {
		ms = DefaultTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

// continueOnError resolves the default (true) when the field is unset.
func (c Config) continueOnError() bool {
	if c.ContinueOnError == nil {
		return true
	}
	return *c.ContinueOnError
}

// LoadConfig reads a chain configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
