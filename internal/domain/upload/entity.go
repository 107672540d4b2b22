package upload

import (
	"errors"
	"io"
	"time"
)

// MaxVideoSize caps direct uploads at 50 MiB.
const MaxVideoSize = int64(50 << 20)

// DirectUploadPrefix is the only key space browsers may presign into.
// Chunked uploads live under feedback/ and are written server-side only.
const DirectUploadPrefix = "videos/"

const (
	EventGenerateClientToken = "blob.generate-client-token"
	EventUploadCompleted     = "blob.upload-completed"
)

var AllowedVideoTypes = []string{
	"video/mp4",
	"video/webm",
	"video/quicktime",
	"video/x-msvideo",
}

var (
	ErrContentTypeNotAllowed = errors.New("content type is not allowed")
	ErrUnknownEvent          = errors.New("unknown upload event type")
	ErrMissingPathname       = errors.New("pathname is required")
	ErrPathnameNotAllowed    = errors.New("pathname must be under " + DirectUploadPrefix)
)

type (
	Chunk struct {
		Data        io.Reader
		Size        int64
		ContentType string
		Index       int
		Total       int
		FileName    string
		FeedbackID  string
		SessionID   string
	}
	ChunkResult struct {
		URL   string
		Index int
		Total int
	}

	Constraints struct {
		AllowedContentTypes []string
		MaximumSizeInBytes  int64
		TTL                 time.Duration
	}
	// Token is a presigned POST policy the browser uses to upload straight to blob storage.
	Token struct {
		URL       string
		FormData  map[string]string
		ExpiresAt time.Time
	}

	Blob struct {
		URL         string `json:"url"`
		Pathname    string `json:"pathname"`
		ContentType string `json:"contentType"`
	}
	DirectUploadEvent struct {
		Type    string              `json:"type"`
		Payload DirectUploadPayload `json:"payload"`
	}
	DirectUploadPayload struct {
		Pathname      string `json:"pathname,omitempty"`
		ContentType   string `json:"contentType,omitempty"`
		ClientPayload string `json:"clientPayload,omitempty"`
		Blob          *Blob  `json:"blob,omitempty"`
		TokenPayload  string `json:"tokenPayload,omitempty"`
	}
	DirectUploadResponse struct {
		Type      string            `json:"type"`
		UploadURL string            `json:"uploadUrl,omitempty"`
		FormData  map[string]string `json:"formData,omitempty"`
		ExpiresAt *time.Time        `json:"expiresAt,omitempty"`
		Response  string            `json:"response,omitempty"`
	}

	Object struct {
		Body        io.ReadCloser
		ContentType string
		Size        int64
	}
)

func (c Constraints) Allows(contentType string) bool {
	for _, ct := range c.AllowedContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}
