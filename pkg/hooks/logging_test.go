package hooks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cecil-the-coder/fallback-kit/internal/testutil"
	"github.com/cecil-the-coder/fallback-kit/pkg/chain"
	"github.com/cecil-the-coder/fallback-kit/pkg/hooks"
)

func TestLogging_EventLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hook := hooks.NewLogging(zap.New(core))
	ctx := context.Background()

	hook.OnEvent(ctx, chain.Event{
		Type:        chain.EventSuccess,
		ExecutionID: "exec-1",
		Provider:    "primary",
		Index:       0,
		Latency:     10 * time.Millisecond,
	})
	hook.OnEvent(ctx, chain.Event{
		Type:        chain.EventError,
		ExecutionID: "exec-1",
		Provider:    "primary",
		Err:         errors.New("boom"),
	})
	hook.OnEvent(ctx, chain.Event{
		Type:        chain.EventFallback,
		ExecutionID: "exec-1",
		From:        "primary",
		To:          "secondary",
	})
	hook.OnEvent(ctx, chain.Event{
		Type:        chain.EventSkipped,
		ExecutionID: "exec-1",
		Provider:    "secondary",
		Reason:      chain.ReasonUnhealthy,
	})

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "provider succeeded", entries[0].Message)
	assert.Equal(t, "primary", entries[0].ContextMap()["provider"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "provider failed", entries[1].Message)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, "falling back", entries[2].Message)
	assert.Equal(t, "primary", entries[2].ContextMap()["from"])
	assert.Equal(t, "secondary", entries[2].ContextMap()["to"])

	assert.Equal(t, zapcore.DebugLevel, entries[3].Level)
	assert.Equal(t, "provider skipped", entries[3].Message)
	assert.Equal(t, "unhealthy", entries[3].ContextMap()["reason"])
}

func TestLogging_NilLoggerIsSafe(t *testing.T) {
	hook := hooks.NewLogging(nil)
	assert.Equal(t, "logging", hook.Name())
	hook.OnEvent(context.Background(), chain.Event{Type: chain.EventSuccess})
}

func TestLogging_AttachedToChain(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	failing := testutil.NewMockProvider("failing", 1, "")
	failing.SetError(errors.New("boom"))
	winning := testutil.NewMockProvider("winning", 2, "ok")

	c := chain.NewWithProviders[string, string](chain.Config{}, failing, winning)
	c.RegisterHook(hooks.NewLogging(zap.New(core)))

	_, err := c.Execute(context.Background(), "req")
	require.NoError(t, err)

	var messages []string
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"provider failed", "falling back", "provider succeeded"}, messages)

	// Every line from one call carries the same correlation ID.
	ids := map[interface{}]struct{}{}
	for _, e := range logs.All() {
		ids[e.ContextMap()["execution_id"]] = struct{}{}
	}
	assert.Len(t, ids, 1)
}
