package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"fitback-api/internal/domain/identity"
	"fitback-api/internal/domain/logentry"
	"fitback-api/internal/domain/session"
	"fitback-api/internal/domain/upload"
	domain "fitback-api/internal/domain/user"
	jwtSvc "fitback-api/internal/infrastructure/jwt"
)

const (
	testSecret     = "test-secret"
	testRemoteAddr = "192.0.2.1:1234"
)

type FakeUserService struct {
	FindUserByExternalIDFunc func(ctx context.Context, externalID string) (*domain.User, error)
	FindUsersFunc            func(ctx context.Context, page int) (domain.Users, error)
	CountUsersFunc           func(ctx context.Context) (int64, error)
}

func (f *FakeUserService) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	if f.FindUserByExternalIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByExternalIDFunc(ctx, externalID)
}
func (f *FakeUserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	if f.FindUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUsersFunc(ctx, page)
}
func (f *FakeUserService) CountUsers(ctx context.Context) (int64, error) {
	if f.CountUsersFunc == nil {
		return 0, errors.New("not used")
	}
	return f.CountUsersFunc(ctx)
}

type FakeAuthLinkService struct {
	calls           int
	LinkAccountFunc func(ctx context.Context, ident *identity.Identity, id domain.UUID) (*domain.User, error)
}

func (f *FakeAuthLinkService) LinkAccount(ctx context.Context, ident *identity.Identity, id domain.UUID) (*domain.User, error) {
	f.calls++
	if f.LinkAccountFunc == nil {
		return nil, errors.New("not used")
	}
	return f.LinkAccountFunc(ctx, ident, id)
}

type FakeSessionValidator struct {
	ValidateSessionFunc func(ctx context.Context, id string) (session.ValidationResult, error)
}

func (f *FakeSessionValidator) ValidateSession(ctx context.Context, id string) (session.ValidationResult, error) {
	if f.ValidateSessionFunc == nil {
		return session.ValidationResult{}, errors.New("not used")
	}
	return f.ValidateSessionFunc(ctx, id)
}

type FakeLogService struct {
	entries    []logentry.Entry
	IngestFunc func(ctx context.Context, e logentry.Entry) error
}

func (f *FakeLogService) Ingest(ctx context.Context, e logentry.Entry) error {
	f.entries = append(f.entries, e)
	if f.IngestFunc == nil {
		return nil
	}
	return f.IngestFunc(ctx, e)
}

type FakeUploadService struct {
	chunks                 []upload.Chunk
	UploadChunkFunc        func(ctx context.Context, c upload.Chunk) (*upload.ChunkResult, error)
	HandleDirectUploadFunc func(ctx context.Context, e upload.DirectUploadEvent) (*upload.DirectUploadResponse, error)
}

func (f *FakeUploadService) UploadChunk(ctx context.Context, c upload.Chunk) (*upload.ChunkResult, error) {
	f.chunks = append(f.chunks, c)
	if f.UploadChunkFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadChunkFunc(ctx, c)
}
func (f *FakeUploadService) HandleDirectUpload(ctx context.Context, e upload.DirectUploadEvent) (*upload.DirectUploadResponse, error) {
	if f.HandleDirectUploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.HandleDirectUploadFunc(ctx, e)
}

type FakeS3Client struct {
	negotiateCalls      int
	NegotiateUploadFunc func(ctx context.Context, pathname, contentType string, c upload.Constraints) (*upload.Token, error)
}

func (f *FakeS3Client) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	return "", errors.New("not used")
}
func (f *FakeS3Client) GetObject(ctx context.Context, key string) (*upload.Object, error) {
	return nil, errors.New("not used")
}
func (f *FakeS3Client) NegotiateUpload(ctx context.Context, pathname, contentType string, c upload.Constraints) (*upload.Token, error) {
	f.negotiateCalls++
	if f.NegotiateUploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.NegotiateUploadFunc(ctx, pathname, contentType, c)
}

type FakeImageService struct {
	OpenImageFunc func(ctx context.Context, key string) (*upload.Object, error)
}

func (f *FakeImageService) OpenImage(ctx context.Context, key string) (*upload.Object, error) {
	if f.OpenImageFunc == nil {
		return nil, errors.New("not used")
	}
	return f.OpenImageFunc(ctx, key)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func signToken(t *testing.T, sub, email string) string {
	t.Helper()
	tok, err := jwtSvc.New(testSecret).GenerateJWT(sub, email, "", time.Hour)
	require.NoError(t, err)
	return tok
}

func bearer(t *testing.T, sub, email string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + signToken(t, sub, email)}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	req.RemoteAddr = testRemoteAddr
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type multipartFile struct {
	field       string
	name        string
	contentType string
	data        []byte
}

func doMultipartReq(t *testing.T, r *gin.Engine, path string, fields map[string]string, file *multipartFile) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(file.data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, path, &body)
	require.NoError(t, err)
	req.RemoteAddr = testRemoteAddr
	req.Header.Set("Content-Type", w.FormDataContentType())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
