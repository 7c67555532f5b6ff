package utils

import (
	"errors"
	"testing"
	"time"

	"golang-stock-assistant/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-15 * time.Minute), "15m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.at, now))
		})
	}
}

func TestSafeCall(t *testing.T) {
	err := SafeCall(func() error { panic("boom") })
	assert.EqualError(t, err, "panic: boom")

	sentinel := errors.New("plain")
	assert.ErrorIs(t, SafeCall(func() error { return sentinel }), sentinel)
	assert.NoError(t, SafeCall(func() error { return nil }))
}

func TestGetWibTimeLocation(t *testing.T) {
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, GetWibTimeLocation()).Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestSafeText(t *testing.T) {
	assert.Equal(t, "Saham BBCA naik", SafeText("  Saham\n\tBBCA \x00naik\xff "))
}

func TestGoSafe_LogsRecoveredPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	log := logger.FromZap(zap.New(core))

	GoSafe(log, func() { panic("boom") })

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 10*time.Millisecond)
	entry := logs.All()[0]
	assert.Equal(t, "Recovered from panic", entry.Message)
	assert.Equal(t, "boom", entry.ContextMap()["panic"])
}
