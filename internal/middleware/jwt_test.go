package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/adstack/admin-backend/internal/auth"
	"github.com/adstack/admin-backend/internal/models"
)

func newProtectedRouter(t *testing.T, jwtService *auth.JWTService) (*gin.Engine, *models.Actor) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var seen models.Actor
	r := gin.New()
	r.GET("/protected", JWT(jwtService), func(c *gin.Context) {
		seen = ActorFrom(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestJWTMissingHeader(t *testing.T) {
	r, _ := newProtectedRouter(t, auth.NewJWTService("secret", 1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	r, _ := newProtectedRouter(t, auth.NewJWTService("secret", 1))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTResolvesActor(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	orgID := int64(3)
	token, err := svc.Generate(&models.User{ID: 10, Role: models.RoleAgency, OrganizationID: &orgID})
	require.NoError(t, err)

	r, seen := newProtectedRouter(t, svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(10), seen.ID)
	require.Equal(t, models.RoleAgency, seen.Role)
	require.NotNil(t, seen.OrganizationID)
	require.Equal(t, orgID, *seen.OrganizationID)
}

func TestRequireCapability(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(ContextActor, models.Actor{ID: 3, Role: models.RoleAdvertiser}) })
	r.POST("/notices", RequireCapability(models.Role.CanManageNotices), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notices", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}
