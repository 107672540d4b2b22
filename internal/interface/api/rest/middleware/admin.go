package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitback-api/internal/domain/user"
)

type UserLookup interface {
	FindUserByExternalID(ctx context.Context, externalID string) (*user.User, error)
}

// RequireAdminRole admits identities whose linked local user has the admin role.
// Must run after RequireIdentity.
func RequireAdminRole(users UserLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := IdentityFrom(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := users.FindUserByExternalID(c.Request.Context(), ident.ExternalID)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to check access"},
			)
			logger.Error("FindUserByExternalID() error", zap.Error(err))
			return
		}
		if !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

// RequireAllowListedEmail admits identities whose email is in allowList.
// Must run after RequireIdentity.
func RequireAllowListedEmail(allowList user.EmailAllowList) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := IdentityFrom(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !allowList.Contains(ident.Email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
