package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campaignhub/api/internal/httpapi"
	"campaignhub/api/internal/models"
)

// RequireRoles enforces a per-endpoint role allow-list. The 403 names the
// acceptable roles so API consumers can tell a role gap from an ownership
// rejection.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]struct{}, len(roles))
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
		names = append(names, string(role))
	}
	requirement := fmt.Sprintf("This action requires one of the following roles: %s", strings.Join(names, ", "))

	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			httpapi.AbortError(c, http.StatusUnauthorized, "Authentication required", "")
			return
		}

		if _, allowed := roleSet[models.UserRole(identity.Role)]; !allowed {
			httpapi.AbortError(c, http.StatusForbidden, "Insufficient permissions", requirement)
			return
		}

		c.Next()
	}
}
