package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/domain/upload"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidChunk   = errors.New("invalid chunk parameters")
)

type UploadService struct {
	logger    *zap.Logger
	s3        ports.S3Client
	sessions  ports.SessionValidator
	mCounter  *prometheus.CounterVec
	uploadTTL time.Duration
}

func NewUploadService(
	logger *zap.Logger,
	s3 ports.S3Client,
	sessions ports.SessionValidator,
	mCounter *prometheus.CounterVec,
	uploadTTL time.Duration,
) ports.UploadService {
	return &UploadService{
		logger:    logger,
		s3:        s3,
		sessions:  sessions,
		mCounter:  mCounter,
		uploadTTL: uploadTTL,
	}
}

// UploadChunk stores one chunk after the session checks out. Reassembly happens elsewhere.
func (us *UploadService) UploadChunk(ctx context.Context, chunk upload.Chunk) (*upload.ChunkResult, error) {
	if chunk.Total <= 0 || chunk.Index < 0 || chunk.Index >= chunk.Total {
		return nil, fmt.Errorf("%w: index %d of %d", ErrInvalidChunk, chunk.Index, chunk.Total)
	}
	if !isSafeSegment(chunk.FeedbackID) {
		return nil, fmt.Errorf("%w: feedback id", ErrInvalidChunk)
	}

	res, err := us.sessions.ValidateSession(ctx, chunk.SessionID)
	if err != nil {
		return nil, err
	}
	if !res.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSession, res.Error)
	}

	key := chunkKey(chunk.FeedbackID, chunk.FileName, chunk.Index)
	chunkURL, err := us.s3.PutObject(ctx, key, chunk.Data, chunk.Size, chunk.ContentType)
	if err != nil {
		return nil, err
	}

	us.mCounter.WithLabelValues("video_chunks_uploaded_total").Inc()

	return &upload.ChunkResult{
		URL:   chunkURL,
		Index: chunk.Index,
		Total: chunk.Total,
	}, nil
}

func (us *UploadService) HandleDirectUpload(
	ctx context.Context,
	event upload.DirectUploadEvent,
) (*upload.DirectUploadResponse, error) {
	switch event.Type {
	case upload.EventGenerateClientToken:
		return us.generateClientToken(ctx, event.Payload)
	case upload.EventUploadCompleted:
		return us.uploadCompleted(event.Payload), nil
	default:
		return nil, fmt.Errorf("%w: %q", upload.ErrUnknownEvent, event.Type)
	}
}

func (us *UploadService) generateClientToken(
	ctx context.Context,
	p upload.DirectUploadPayload,
) (*upload.DirectUploadResponse, error) {
	pathname := cleanPathname(p.Pathname)
	if pathname == "" {
		return nil, upload.ErrMissingPathname
	}
	if !strings.HasPrefix(pathname, upload.DirectUploadPrefix) {
		return nil, upload.ErrPathnameNotAllowed
	}

	constraints := upload.Constraints{
		AllowedContentTypes: append([]string(nil), upload.AllowedVideoTypes...),
		MaximumSizeInBytes:  upload.MaxVideoSize,
		TTL:                 us.uploadTTL,
	}

	tok, err := us.s3.NegotiateUpload(ctx, pathname, p.ContentType, constraints)
	if err != nil {
		return nil, err
	}

	us.mCounter.WithLabelValues("video_upload_tokens_total").Inc()

	return &upload.DirectUploadResponse{
		Type:      upload.EventGenerateClientToken,
		UploadURL: tok.URL,
		FormData:  tok.FormData,
		ExpiresAt: &tok.ExpiresAt,
	}, nil
}

// uploadCompleted only records the event; the blob reference is persisted by a separate call.
func (us *UploadService) uploadCompleted(p upload.DirectUploadPayload) *upload.DirectUploadResponse {
	fields := []zap.Field{zap.String("token_payload", p.TokenPayload)}
	if p.Blob != nil {
		fields = append(fields,
			zap.String("url", p.Blob.URL),
			zap.String("pathname", p.Blob.Pathname),
			zap.String("content_type", p.Blob.ContentType),
		)
	}
	us.logger.Info("video blob upload completed", fields...)
	us.mCounter.WithLabelValues("video_uploads_completed_total").Inc()

	return &upload.DirectUploadResponse{
		Type:     upload.EventUploadCompleted,
		Response: "ok",
	}
}

// chunkKey: "feedback/<feedbackID>/chunks/<file-name>/<index>"
func chunkKey(feedbackID, fileName string, index int) string {
	return fmt.Sprintf("feedback/%s/chunks/%s/%d", feedbackID, sanitizeFileName(fileName), index)
}

func cleanPathname(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func isSafeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, "/\\\x00")
}
