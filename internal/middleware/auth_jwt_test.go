package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Raj6578/arpita-shop-mbone-3/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	g := e.Group("/secure", mw...)
	g.GET("", func(c echo.Context) error {
		id, _ := c.Get(CtxUserIDKey).(int64)
		role, _ := c.Get(CtxUserRoleKey).(string)
		return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "role": role})
	})
	return e
}

func doGet(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWTAcceptsValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	e := protectedEcho(AuthJWT(cfg))

	token := signedToken(t, jwt.MapClaims{
		"sub":  int64(42),
		"role": "USER",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec := doGet(e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
}

func TestAuthJWTRejectsBadTokens(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	e := protectedEcho(AuthJWT(cfg))

	expired := signedToken(t, jwt.MapClaims{
		"sub":  int64(42),
		"role": "USER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": int64(1), "role": "USER"})
	wrongSig, err := otherKey.SignedString([]byte("not_the_secret"))
	require.NoError(t, err)

	for _, authz := range []string{
		"",
		"Bearer",
		"Basic abc",
		"Bearer not.a.jwt",
		"Bearer " + expired,
		"Bearer " + wrongSig,
	} {
		rec := doGet(e, authz)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "authz %q", authz)
	}
}

func TestAdminRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	e := protectedEcho(AuthJWT(cfg), AdminRoleGuard())

	userToken := signedToken(t, jwt.MapClaims{
		"sub":  int64(1),
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	adminToken := signedToken(t, jwt.MapClaims{
		"sub":  int64(2),
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	assert.Equal(t, http.StatusForbidden, doGet(e, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doGet(e, "Bearer "+adminToken).Code)
}
