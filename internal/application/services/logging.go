package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/domain/logentry"
)

type LogService struct {
	logger   *zap.Logger
	capture  ports.ErrorCapture
	mCounter *prometheus.CounterVec
	now      func() time.Time
}

func NewLogService(
	logger *zap.Logger,
	capture ports.ErrorCapture,
	mCounter *prometheus.CounterVec,
) ports.LogService {
	return &LogService{
		logger:   logger.Named("client"),
		capture:  capture,
		mCounter: mCounter,
		now:      time.Now,
	}
}

// Ingest prints the entry at its own level. Errors and warnings are also sent to
// error capture.
func (ls *LogService) Ingest(ctx context.Context, entry logentry.Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = ls.now().UTC()
	}

	fields := []zap.Field{
		zap.Time("client_ts", entry.Timestamp),
		zap.Any("context", entry.Context),
	}

	switch entry.Level {
	case logentry.LevelError:
		ls.logger.Error(entry.Message, fields...)
	case logentry.LevelWarn:
		ls.logger.Warn(entry.Message, fields...)
	case logentry.LevelDebug:
		ls.logger.Debug(entry.Message, fields...)
	default:
		ls.logger.Info(entry.Message, fields...)
	}

	ls.mCounter.WithLabelValues("client_logs_total").Inc()

	severity, ok := entry.Level.Severity()
	if !ok {
		return nil
	}

	captured := make(map[string]any, len(entry.Context)+2)
	for k, v := range entry.Context {
		captured[k] = v
	}
	captured["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
	captured["level"] = string(entry.Level)

	if err := ls.capture.CaptureError(ctx, entry.Message, captured, severity); err != nil {
		return fmt.Errorf("capture %s: %w", severity, err)
	}

	ls.mCounter.WithLabelValues("client_errors_captured_total").Inc()

	return nil
}
