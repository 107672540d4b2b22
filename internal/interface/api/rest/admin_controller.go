package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitback-api/internal/application/ports"
	domain "fitback-api/internal/domain/user"
	"fitback-api/internal/interface/api/rest/dto/user"
	"fitback-api/internal/interface/api/rest/middleware"
	"fitback-api/internal/interface/api/rest/validator"
)

type AdminController struct {
	userService ports.UserService
	logger      *zap.Logger
}

// NewAdminController mounts the admin views. The user list is gated by the admin
// role and the overview by the email allow-list.
func NewAdminController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	verifier middleware.IdentityVerifier,
	allowList domain.EmailAllowList,
) *AdminController {
	ac := &AdminController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteAdminUsers,
		middleware.RequireIdentity(verifier),
		middleware.RequireAdminRole(userService, logger),
		ac.GetUsersHandler,
	)
	r.GET(RouteAdminOverview,
		middleware.RequireIdentity(verifier),
		middleware.RequireAllowListedEmail(allowList),
		ac.OverviewHandler,
	)

	return ac
}

func (ac *AdminController) GetUsersHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	users, err := ac.userService.FindUsers(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		ac.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
		Page: page,
	})
}

func (ac *AdminController) OverviewHandler(c *gin.Context) {
	total, err := ac.userService.CountUsers(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to count users"},
		)
		ac.logger.Error("CountUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.Overview{
		Email:      middleware.IdentityFrom(c).Email,
		UsersTotal: total,
	})
}
