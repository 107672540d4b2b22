package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxLogBodySize = 1 << 12 // 4 KB

// RequestLogGin logs one line per request. The level follows the response status.
func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	logger = logger.Named("http")

	return func(c *gin.Context) {
		if skipRequestLog(c.Request) {
			c.Next()
			return
		}

		start := time.Now()
		body := peekBody(c)

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if ce := logger.Check(statusLevel(status), "HTTP request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func skipRequestLog(r *http.Request) bool {
	return r.Method == http.MethodOptions ||
		r.URL.Path == "/favicon.ico" ||
		strings.HasSuffix(r.URL.Path, "/metrics") ||
		strings.HasSuffix(r.URL.Path, "/healthz")
}

// peekBody reads up to maxLogBodySize bytes of a JSON body and restores it for the handler.
// Binary and multipart bodies are not captured.
func peekBody(c *gin.Context) string {
	if c.Request == nil || c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}

	ct := c.GetHeader("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		return "<multipart/form-data omitted>"
	case ct != "" && !strings.HasPrefix(ct, "application/json"):
		return "<" + ct + " omitted>"
	}

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
	c.Request.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body),
		Closer: c.Request.Body,
	}

	return buf.String()
}

type readCloser struct {
	io.Reader
	io.Closer
}

func statusLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
