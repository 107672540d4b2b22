package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fitback-api/internal/domain/identity"
)

const CtxIdentity = "identity"

type IdentityVerifier interface {
	Identity(tokenStr string) (*identity.Identity, error)
}

// OptionalIdentity attaches the hosted session when the request carries a valid
// bearer token and otherwise lets the request through without one.
func OptionalIdentity(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if ident, err := verifier.Identity(tokenStr); err == nil {
				c.Set(CtxIdentity, ident)
			}
		}

		c.Next()
	}
}

func RequireIdentity(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		ident, err := verifier.Identity(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxIdentity, ident)

		c.Next()
	}
}

// IdentityFrom returns nil when no session was attached.
func IdentityFrom(c *gin.Context) *identity.Identity {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil
	}
	ident, _ := v.(*identity.Identity)
	return ident
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader || strings.TrimSpace(tokenStr) == "" {
		return "", false
	}
	return tokenStr, true
}
