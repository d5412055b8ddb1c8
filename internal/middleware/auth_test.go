package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/aviseihq/avisei-api/internal/config"
	"github.com/aviseihq/avisei-api/internal/domain/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret-key-for-unit-tests"}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func setupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()

	secured := r.Group("/api")
	secured.Use(AuthMiddleware(cfg))
	secured.GET("/test", func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})

	admin := secured.Group("/admin")
	admin.Use(RequireRoles(identity.RoleSuperAdmin))
	admin.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func request(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "client",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := request(r, "/api/test", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := setupRouter(testConfig())

	w := request(r, "/api/test", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := setupRouter(testConfig())

	w := request(r, "/api/test", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_authorization_header")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := setupRouter(testConfig())

	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub":  float64(42),
		"role": "client",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := request(r, "/api/test", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "client",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	w := request(r, "/api/test", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_UnknownRole(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "barber",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := request(r, "/api/test", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token_payload")
}

func TestRequireRoles(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	clientToken := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(1),
		"role": "client",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	adminToken := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(9),
		"role": "super_admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := request(r, "/api/admin/test", "Bearer "+clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, "/api/admin/test", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
