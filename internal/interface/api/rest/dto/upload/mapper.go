package upload

import (
	"fitback-api/internal/domain/upload"
)

func ToChunkResponse(r upload.ChunkResult) ChunkResponse {
	return ChunkResponse{
		Success:     true,
		ChunkURL:    r.URL,
		ChunkIndex:  r.Index,
		TotalChunks: r.Total,
	}
}
