package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
	"fitback-api/internal/application/services"
	"fitback-api/internal/interface/api/rest/dto/auth"
	"fitback-api/internal/interface/api/rest/middleware"
	"fitback-api/internal/interface/api/rest/validator"
)

const msgNoSession = "No authenticated session found"

type AuthController struct {
	linkService ports.AuthLinkService
	logger      *zap.Logger
}

func NewAuthController(
	r *gin.Engine,
	linkService ports.AuthLinkService,
	logger *zap.Logger,
	verifier middleware.IdentityVerifier,
) *AuthController {
	ac := &AuthController{
		linkService: linkService,
		logger:      logger,
	}

	r.POST(RouteAuthLink, middleware.OptionalIdentity(verifier), ac.LinkHandler)

	return ac
}

func (ac *AuthController) LinkHandler(c *gin.Context) {
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"success": false, "error": msgNoSession},
		)
		return
	}

	var req auth.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "invalid json"},
		)
		return
	}
	ok, userUUID := validator.IsUUID(req.UserID)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "userId must be a valid UUID"},
		)
		return
	}

	if _, err := ac.linkService.LinkAccount(c.Request.Context(), ident, userUUID); err != nil {
		switch {
		case errors.Is(err, services.ErrNoSession):
			c.JSON(
				http.StatusUnauthorized,
				gin.H{"success": false, "error": msgNoSession},
			)
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(
				http.StatusNotFound,
				gin.H{"success": false, "error": "user not found"},
			)
		default:
			ac.logger.Error("LinkAccount() error", zap.Error(err), zap.Stringer("user_uuid", userUUID))
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"success": false, "error": err.Error()},
			)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
