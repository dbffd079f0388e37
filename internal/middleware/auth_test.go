package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/api/internal/models"
	"campaignhub/api/internal/security"
)

func newAuthRouter(t *testing.T, tokens *security.TokenService, roles ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	group := router.Group("/")
	group.Use(Auth(tokens))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "role": identity.Role})
	})
	return router
}

func TestAuthRejectsMissingToken(t *testing.T) {
	tokens := security.NewTokenService("a", "r", time.Minute, time.Hour)
	router := newAuthRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	tokens := security.NewTokenService("a", "r", time.Minute, time.Hour)
	router := newAuthRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAttachesIdentity(t *testing.T) {
	tokens := security.NewTokenService("a", "r", time.Minute, time.Hour)
	router := newAuthRouter(t, tokens)

	token, err := tokens.IssueAccess(security.Identity{ID: "usr_1", Email: "x@y.z", Role: "viewer"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "usr_1")
}

func TestRequireRolesForbidsOutsiders(t *testing.T) {
	tokens := security.NewTokenService("a", "r", time.Minute, time.Hour)
	router := newAuthRouter(t, tokens, models.UserRoleAdmin, models.UserRoleCampaignManager)

	token, err := tokens.IssueAccess(security.Identity{ID: "usr_2", Role: "viewer"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	// the 403 names the acceptable roles
	assert.Contains(t, w.Body.String(), "admin, campaign_manager")
}

func TestRequireRolesAdmitsMembers(t *testing.T) {
	tokens := security.NewTokenService("a", "r", time.Minute, time.Hour)
	router := newAuthRouter(t, tokens, models.UserRoleAdmin)

	token, err := tokens.IssueAccess(security.Identity{ID: "usr_3", Role: "admin"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthPassesAnonymously(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := security.NewTokenService("a", "r", time.Minute, time.Hour)

	router := gin.New()
	router.Use(OptionalAuth(tokens))
	router.GET("/public", func(c *gin.Context) {
		if identity, ok := CurrentIdentity(c); ok {
			c.JSON(http.StatusOK, gin.H{"role": identity.Role})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": "anonymous"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Contains(t, w.Body.String(), "anonymous")

	token, err := tokens.IssueAccess(security.Identity{ID: "usr_4", Role: "admin"})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "admin")
}
