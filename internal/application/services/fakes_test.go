package services

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"fitback-api/internal/domain/logentry"
	"fitback-api/internal/domain/session"
	"fitback-api/internal/domain/upload"
	"fitback-api/internal/domain/user"
)

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

type fakeUserRepo struct {
	linkCalls        int
	LinkIdentityFunc func(ctx context.Context, id user.UUID, externalID, email string) (*user.User, error)
	FetchByExtFunc   func(ctx context.Context, externalID string) (*user.User, error)
}

func (f *fakeUserRepo) FetchUserByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	if f.FetchByExtFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByExtFunc(ctx, externalID)
}
func (f *fakeUserRepo) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	return nil, errors.New("not used")
}
func (f *fakeUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return 0, errors.New("not used")
}
func (f *fakeUserRepo) LinkIdentity(ctx context.Context, id user.UUID, externalID, email string) (*user.User, error) {
	f.linkCalls++
	if f.LinkIdentityFunc == nil {
		return nil, errors.New("not used")
	}
	return f.LinkIdentityFunc(ctx, id, externalID, email)
}

type fakeSessionRepo struct {
	FetchFunc func(ctx context.Context, id string) (*session.Session, error)
}

func (f *fakeSessionRepo) FetchSessionByID(ctx context.Context, id string) (*session.Session, error) {
	return f.FetchFunc(ctx, id)
}

type captureCall struct {
	message  string
	fields   map[string]any
	severity logentry.Severity
}

type fakeCapture struct {
	calls []captureCall
	err   error
}

func (f *fakeCapture) CaptureError(_ context.Context, message string, fields map[string]any, severity logentry.Severity) error {
	f.calls = append(f.calls, captureCall{message: message, fields: fields, severity: severity})
	return f.err
}

type fakeSessionValidator struct {
	calls  int
	result session.ValidationResult
	err    error
}

func (f *fakeSessionValidator) ValidateSession(_ context.Context, _ string) (session.ValidationResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeS3 struct {
	putCalls int
	putKey   string
	putBody  []byte
	putErr   error

	negotiatePath        string
	negotiateType        string
	negotiateConstraints *upload.Constraints
	negotiateToken       *upload.Token
	negotiateErr         error

	getObj *upload.Object
	getErr error
}

func (f *fakeS3) publicURL(key string) string { return "https://cdn.test/" + key }
func (f *fakeS3) PutObject(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	f.putCalls++
	f.putKey = key
	f.putBody, _ = io.ReadAll(r)
	if f.putErr != nil {
		return "", f.putErr
	}
	return f.publicURL(key), nil
}
func (f *fakeS3) GetObject(_ context.Context, _ string) (*upload.Object, error) {
	return f.getObj, f.getErr
}
func (f *fakeS3) NegotiateUpload(_ context.Context, pathname, contentType string, c upload.Constraints) (*upload.Token, error) {
	f.negotiatePath = pathname
	f.negotiateType = contentType
	f.negotiateConstraints = &c
	return f.negotiateToken, f.negotiateErr
}

func nopBody(b []byte) io.ReadCloser { return io.NopCloser(bytes.NewReader(b)) }
