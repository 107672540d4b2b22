package ports

import (
	"context"

	"fitback-api/internal/domain/upload"
)

type UploadService interface {
	UploadChunk(ctx context.Context, chunk upload.Chunk) (*upload.ChunkResult, error)
	HandleDirectUpload(ctx context.Context, event upload.DirectUploadEvent) (*upload.DirectUploadResponse, error)
}

type ImageService interface {
	OpenImage(ctx context.Context, key string) (*upload.Object, error)
}
