package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/interface/api/rest/dto/logging"
	"fitback-api/internal/interface/api/rest/validator"
)

type LoggingController struct {
	logService ports.LogService
	logger     *zap.Logger
}

func NewLoggingController(
	r *gin.Engine,
	logService ports.LogService,
	logger *zap.Logger,
	limiter gin.HandlerFunc,
) *LoggingController {
	lc := &LoggingController{
		logService: logService,
		logger:     logger,
	}

	r.POST(RouteLogging, limiter, lc.IngestHandler)

	return lc
}

func (lc *LoggingController) IngestHandler(c *gin.Context) {
	var req logging.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "Invalid JSON body"},
		)
		return
	}
	if !validator.ValidateLogRequest(req) {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "Missing required fields"},
		)
		return
	}

	if err := lc.logService.Ingest(c.Request.Context(), logging.ToDomainEntry(req)); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "error": err.Error()},
		)
		lc.logger.Error("Ingest() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
