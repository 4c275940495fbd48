package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reservaon/api/internal/config"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(cfg *config.Config) (*gin.Engine, *utils.Claims) {
	gin.SetMode(gin.TestMode)

	captured := &utils.Claims{}
	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		captured.UserID = UserID(c)
		captured.CompanyID = CompanyID(c)
		captured.Role = Role(c)
		c.Status(http.StatusOK)
	})
	return router, captured
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	router, captured := setupRouter(cfg)

	user := &models.User{ID: uuid.New(), CompanyID: uuid.New(), Role: models.RoleOwner}
	token, err := utils.GenerateJWT(user, cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, captured.UserID)
	assert.Equal(t, user.CompanyID, captured.CompanyID)
	assert.Equal(t, models.RoleOwner, captured.Role)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router, _ := setupRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	router, _ := setupRouter(testConfig())

	for _, header := range []string{"token-sem-esquema", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	cfg := testConfig()
	router, _ := setupRouter(cfg)

	forger := testConfig()
	forger.JWT.Secret = "attacker-secret"
	user := &models.User{ID: uuid.New(), CompanyID: uuid.New(), Role: models.RoleOwner}
	token, err := utils.GenerateJWT(user, forger)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/owner-only", func(c *gin.Context) {
		c.Set(CtxRole, models.RoleProfessional)
	}, RequireOwner(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/owner-only", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
