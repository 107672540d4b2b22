package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fitback-api/internal/interface/api/rest/middleware"
)

// NewRouter builds the engine every controller registers on.
// Forwarding headers are honored only for trustedProxies; with none,
// ClientIP is the peer address, which is what the ingest rate limit keys on.
func NewRouter(logger *zap.Logger, mCounter *prometheus.CounterVec, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	return r, nil
}
