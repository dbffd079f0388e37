package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/security"
)

const identityKey = "identity"

// Auth extracts and verifies the bearer token, attaching the caller's
// identity to the request context. Verification is stateless: no database
// lookup happens here.
func Auth(tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			httpapi.AbortError(c, http.StatusUnauthorized, "No token provided", "Authentication required")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := tokens.VerifyAccess(tokenStr)
		if err != nil {
			httpapi.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", "Authentication failed")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid bearer token is present and
// passes the request through anonymously otherwise. Public content GETs use
// this so admins get the privileged view of the same endpoints.
func OptionalAuth(tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if identity, err := tokens.VerifyAccess(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, if any.
func CurrentIdentity(c *gin.Context) (security.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return security.Identity{}, false
	}
	identity, ok := val.(security.Identity)
	return identity, ok
}
