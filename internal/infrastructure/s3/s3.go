package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"fitback-api/config"
	"fitback-api/internal/domain/upload"
)

// objectAPI is the slice of *minio.Client used here; tests swap in a fake.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PresignedPostPolicy(ctx context.Context, policy *minio.PostPolicy) (*url.URL, map[string]string, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
func (w minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}
func (w minioClientWrapper) PresignedPostPolicy(ctx context.Context, policy *minio.PostPolicy) (*url.URL, map[string]string, error) {
	return w.c.PresignedPostPolicy(ctx, policy)
}

type Client struct {
	logger        *zap.Logger
	api           objectAPI
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Blob,
) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return NewWithAPI(ctx, logger, minioClientWrapper{c: mc}, cfg.Bucket, base)
}

// NewWithAPI makes sure the bucket exists before returning the client.
func NewWithAPI(ctx context.Context, logger *zap.Logger, api objectAPI, bucket, publicBaseURL string) (*Client, error) {
	c := &Client{
		logger:        logger,
		api:           api,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}

	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("blob bucket created", zap.String("bucket", c.bucket))
	}

	return c, nil
}

func (c *Client) GetPublicURL(key string) string {
	return c.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}

// PutObject stores the object under key and returns its public URL.
func (c *Client) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := c.api.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return c.GetPublicURL(key), nil
}

// GetObject opens key for reading. The caller closes Body.
func (c *Client) GetObject(ctx context.Context, key string) (*upload.Object, error) {
	info, err := c.api.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	body, err := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	return &upload.Object{
		Body:        body,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

// NegotiateUpload issues a presigned POST policy for pathname. The policy pins the
// content type and the size range, so the store itself rejects anything else.
func (c *Client) NegotiateUpload(
	ctx context.Context,
	pathname, contentType string,
	constraints upload.Constraints,
) (*upload.Token, error) {
	if !constraints.Allows(contentType) {
		return nil, fmt.Errorf("%w: %q", upload.ErrContentTypeNotAllowed, contentType)
	}

	expiresAt := c.now().UTC().Add(constraints.TTL)

	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(c.bucket); err != nil {
		return nil, err
	}
	if err := policy.SetKey(pathname); err != nil {
		return nil, err
	}
	if err := policy.SetExpires(expiresAt); err != nil {
		return nil, err
	}
	if err := policy.SetContentType(contentType); err != nil {
		return nil, err
	}
	if err := policy.SetContentLengthRange(1, constraints.MaximumSizeInBytes); err != nil {
		return nil, err
	}

	u, formData, err := c.api.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload policy: %w", err)
	}

	return &upload.Token{
		URL:       u.String(),
		FormData:  formData,
		ExpiresAt: expiresAt,
	}, nil
}
