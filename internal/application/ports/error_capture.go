package ports

import (
	"context"

	"fitback-api/internal/domain/logentry"
)

type ErrorCapture interface {
	CaptureError(ctx context.Context, message string, fields map[string]any, severity logentry.Severity) error
}
