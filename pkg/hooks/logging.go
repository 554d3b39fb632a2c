// Package hooks provides ready-made chain event consumers: structured
// logging and in-memory statistics.
package hooks

import (
	"context"

	"go.uber.org/zap"

	"github.com/cecil-the-coder/fallback-kit/pkg/chain"
)

// Logging emits one structured log line per chain event. Successes and
// fallbacks log at info, failures at warn, skips at debug.
type Logging struct {
	logger *zap.Logger
}

// NewLogging creates a logging hook backed by the given zap logger. A nil
// logger falls back to zap.NewNop.
func NewLogging(logger *zap.Logger) *Logging {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logging{logger: logger}
}

func (l *Logging) Name() string { return "logging" }

func (l *Logging) OnEvent(_ context.Context, event chain.Event) {
	switch event.Type {
	case chain.EventSuccess:
		l.logger.Info("provider succeeded",
			zap.String("execution_id", event.ExecutionID),
			zap.String("provider", event.Provider),
			zap.Int("index", event.Index),
			zap.Duration("latency", event.Latency),
		)
	case chain.EventError:
		l.logger.Warn("provider failed",
			zap.String("execution_id", event.ExecutionID),
			zap.String("provider", event.Provider),
			zap.Int("index", event.Index),
			zap.Duration("latency", event.Latency),
			zap.Error(event.Err),
		)
	case chain.EventFallback:
		l.logger.Info("falling back",
			zap.String("execution_id", event.ExecutionID),
			zap.String("from", event.From),
			zap.String("to", event.To),
		)
	case chain.EventSkipped:
		l.logger.Debug("provider skipped",
			zap.String("execution_id", event.ExecutionID),
			zap.String("provider", event.Provider),
			zap.Int("index", event.Index),
			zap.String("reason", event.Reason),
		)
	}
}
