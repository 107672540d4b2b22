package rest

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
)

//go:embed assets/image-fallback.svg
var fallbackImage []byte

const HeaderImageFallback = "X-Image-Fallback"

type ImageController struct {
	imageService ports.ImageService
	logger       *zap.Logger
}

func NewImageController(
	r *gin.Engine,
	imageService ports.ImageService,
	logger *zap.Logger,
) *ImageController {
	ic := &ImageController{
		imageService: imageService,
		logger:       logger,
	}

	r.GET(RouteImages, ic.GetImageHandler)

	return ic
}

// GetImageHandler never fails: a missing or unreadable image is replaced by the fallback.
func (ic *ImageController) GetImageHandler(c *gin.Context) {
	key := c.Param("key")

	obj, err := ic.imageService.OpenImage(c.Request.Context(), key)
	if err != nil {
		ic.logger.Warn("image load failed, serving fallback", zap.String("key", key), zap.Error(err))
		c.Header(HeaderImageFallback, "1")
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/svg+xml", fallbackImage)
		return
	}
	defer obj.Body.Close()

	c.Header("Cache-Control", "public, max-age=3600")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}
