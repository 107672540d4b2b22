package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/interface/api/rest/dto/session"
)

type SessionController struct {
	sessions ports.SessionValidator
	logger   *zap.Logger
}

func NewSessionController(
	r *gin.Engine,
	sessions ports.SessionValidator,
	logger *zap.Logger,
) *SessionController {
	sc := &SessionController{
		sessions: sessions,
		logger:   logger,
	}

	r.GET(RouteDebugSession, sc.DebugSessionHandler)

	return sc
}

func (sc *SessionController) DebugSessionHandler(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "sessionId is required"},
		)
		return
	}

	res, err := sc.sessions.ValidateSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": err.Error()},
		)
		sc.logger.Error("ValidateSession() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, session.ToResponse(res))
}
