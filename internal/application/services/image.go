package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/domain/upload"
)

var (
	ErrInvalidImageKey = errors.New("invalid image key")
	ErrNotAnImage      = errors.New("object is not an image")
)

type ImageService struct {
	s3 ports.S3Client
}

func NewImageService(s3 ports.S3Client) ports.ImageService {
	return &ImageService{s3: s3}
}

// OpenImage returns the stored image under key. The caller closes Body.
func (is *ImageService) OpenImage(ctx context.Context, key string) (*upload.Object, error) {
	clean := cleanPathname(key)
	if clean == "" {
		return nil, ErrInvalidImageKey
	}

	obj, err := is.s3.GetObject(ctx, clean)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(obj.ContentType, "image/") {
		_ = obj.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, obj.ContentType)
	}

	return obj, nil
}
