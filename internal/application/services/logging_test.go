package services

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

	"fitback-api/internal/domain/logentry"
)

func newObservedLogService(capture *fakeCapture, now time.Time) (*LogService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewLogService(zap.New(core), capture, newTestCounter()).(*LogService)
	svc.now = func() time.Time { return now }
	return svc, logs
}

func TestLogService_Ingest_Dispatch(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name         string
		level        logentry.Level
		wantLevel    zapcore.Level
		wantSeverity logentry.Severity
		wantCaptured bool
	}{
		{"error is printed and captured", logentry.LevelError, zapcore.ErrorLevel, logentry.SeverityError, true},
		{"warn is printed and captured", logentry.LevelWarn, zapcore.WarnLevel, logentry.SeverityWarning, true},
		{"info is only printed", logentry.LevelInfo, zapcore.InfoLevel, "", false},
		{"debug is only printed", logentry.LevelDebug, zapcore.DebugLevel, "", false},
		{"unknown level prints as info", logentry.Level("trace"), zapcore.InfoLevel, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			capture := &fakeCapture{}
			svc, logs := newObservedLogService(capture, now)

			err := svc.Ingest(context.Background(), logentry.Entry{Level: tt.level, Message: "x"})
			require.NoError(t, err)

			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.wantLevel, logs.All()[0].Level)
			assert.Equal(t, "x", logs.All()[0].Message)

			if !tt.wantCaptured {
				assert.Empty(t, capture.calls)
				return
			}
			require.Len(t, capture.calls, 1)
			assert.Equal(t, tt.wantSeverity, capture.calls[0].severity)
			assert.Equal(t, "x", capture.calls[0].message)
		})
	}
}

func TestLogService_Ingest_ErrorCapturedOnce(t *testing.T) {
	capture := &fakeCapture{}
	svc, logs := newObservedLogService(capture, time.Now())

	require.NoError(t, svc.Ingest(context.Background(), logentry.Entry{Level: logentry.LevelError, Message: "x"}))

	require.Len(t, capture.calls, 1)
	assert.Equal(t, logentry.SeverityError, capture.calls[0].severity)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestLogService_Ingest_TimestampDefaults(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	capture := &fakeCapture{}
	svc, _ := newObservedLogService(capture, now)

	require.NoError(t, svc.Ingest(context.Background(), logentry.Entry{
		Level:   logentry.LevelWarn,
		Message: "slow render",
		Context: map[string]any{"page": "/try-on"},
	}))

	require.Len(t, capture.calls, 1)
	fields := capture.calls[0].fields
	assert.Equal(t, now.Format(time.RFC3339Nano), fields["timestamp"])
	assert.Equal(t, "/try-on", fields["page"])
	assert.Equal(t, "warn", fields["level"])
}

func TestLogService_Ingest_KeepsClientTimestamp(t *testing.T) {
	client := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	capture := &fakeCapture{}
	svc, _ := newObservedLogService(capture, time.Now())

	require.NoError(t, svc.Ingest(context.Background(), logentry.Entry{
		Level: logentry.LevelError, Message: "x", Timestamp: client,
	}))
	assert.Equal(t, client.Format(time.RFC3339Nano), capture.calls[0].fields["timestamp"])
}

func TestLogService_Ingest_CaptureFailure(t *testing.T) {
	capture := &fakeCapture{err: errors.New("broker down")}
	svc, _ := newObservedLogService(capture, time.Now())

	err := svc.Ingest(context.Background(), logentry.Entry{Level: logentry.LevelError, Message: "x"})
	require.ErrorContains(t, err, "broker down")
}
