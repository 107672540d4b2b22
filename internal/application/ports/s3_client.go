package ports

import (
	"context"
	"io"

	"fitback-api/internal/domain/upload"
)

type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	GetObject(ctx context.Context, key string) (*upload.Object, error)
	NegotiateUpload(ctx context.Context, pathname, contentType string, constraints upload.Constraints) (*upload.Token, error)
}
