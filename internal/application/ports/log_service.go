package ports

import (
	"context"

	"fitback-api/internal/domain/logentry"
)

type LogService interface {
	Ingest(ctx context.Context, entry logentry.Entry) error
}
