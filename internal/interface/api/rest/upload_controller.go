package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/application/services"
	"fitback-api/internal/domain/upload"
	uploadDTO "fitback-api/internal/interface/api/rest/dto/upload"
	"fitback-api/internal/interface/api/rest/validator"
)

// multipart overhead on top of a full-size chunk
const chunkFormSlack = int64(1 << 20)

type UploadController struct {
	uploadService ports.UploadService
	logger        *zap.Logger
	maxChunkBody  int64
}

func NewUploadController(
	r *gin.Engine,
	uploadService ports.UploadService,
	logger *zap.Logger,
) *UploadController {
	uc := &UploadController{
		uploadService: uploadService,
		logger:        logger,
		maxChunkBody:  upload.MaxVideoSize + chunkFormSlack,
	}

	r.POST(RouteUploadChunk, uc.UploadChunkHandler)
	r.POST(RouteUploadDirect, uc.DirectUploadHandler)

	return uc
}

func (uc *UploadController) UploadChunkHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uc.maxChunkBody)

	fh, fileErr := c.FormFile("chunk")
	var tooLarge *http.MaxBytesError
	if errors.As(fileErr, &tooLarge) {
		c.JSON(
			http.StatusRequestEntityTooLarge,
			gin.H{"success": false, "error": "Chunk too large"},
		)
		return
	}
	fields := map[string]string{
		"chunkIndex":  c.PostForm("chunkIndex"),
		"totalChunks": c.PostForm("totalChunks"),
		"fileName":    c.PostForm("fileName"),
		"feedbackId":  c.PostForm("feedbackId"),
		"sessionId":   c.PostForm("sessionId"),
	}
	if fileErr != nil || len(validator.MissingFields(fields)) > 0 {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "Missing required parameters"},
		)
		return
	}

	index, total, err := validator.ParseChunkPosition(fields["chunkIndex"], fields["totalChunks"])
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": err.Error()},
		)
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "cannot open chunk"},
		)
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := uc.uploadService.UploadChunk(c.Request.Context(), upload.Chunk{
		Data:        f,
		Size:        fh.Size,
		ContentType: contentType,
		Index:       index,
		Total:       total,
		FileName:    fields["fileName"],
		FeedbackID:  fields["feedbackId"],
		SessionID:   fields["sessionId"],
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSession):
			c.JSON(
				http.StatusUnauthorized,
				gin.H{"success": false, "error": "Invalid session"},
			)
		case errors.Is(err, services.ErrInvalidChunk):
			c.JSON(
				http.StatusBadRequest,
				gin.H{"success": false, "error": err.Error()},
			)
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"success": false, "error": err.Error()},
			)
			uc.logger.Error("UploadChunk() error", zap.Error(err),
				zap.String("feedback_id", fields["feedbackId"]),
				zap.Int("chunk_index", index),
			)
		}
		return
	}

	c.JSON(http.StatusOK, uploadDTO.ToChunkResponse(*res))
}

// DirectUploadHandler answers the browser's direct-upload handshake.
// Every failure is reported as 400 with the error message.
func (uc *UploadController) DirectUploadHandler(c *gin.Context) {
	var event upload.DirectUploadEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := uc.uploadService.HandleDirectUpload(c.Request.Context(), event)
	if err != nil {
		uc.logger.Warn("HandleDirectUpload() error", zap.Error(err), zap.String("type", event.Type))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
