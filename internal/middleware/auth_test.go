package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func testToken(t *testing.T, userID, role string) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")
	token, err := utils.GenerateToken(userID, userID+"@college.edu", role)
	require.NoError(t, err)
	return token
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth()(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth()(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthSetsIdentity(t *testing.T) {
	token := testToken(t, "s001", domain.RoleStudent)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth()(func(c echo.Context) error {
		assert.Equal(t, "s001", c.Get("user_id"))
		assert.Equal(t, domain.RoleStudent, c.Get("role"))
		return okHandler(c)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role string, mw echo.MiddlewareFunc) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("role", role)
		require.NoError(t, mw(okHandler)(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(domain.RoleAdmin, RequireAdmin()))
	assert.Equal(t, http.StatusForbidden, run(domain.RoleStudent, RequireAdmin()))
	assert.Equal(t, http.StatusOK, run(domain.RoleStudent, RequireRole(domain.RoleStudent, domain.RoleTA)))
	assert.Equal(t, http.StatusForbidden, run(domain.RoleDoctor, RequireStudent()))
	assert.Equal(t, http.StatusForbidden, run("", RequireAdmin()))
}

func TestSelfScopeOverridesPathParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("someone-else")
	c.Set("role", domain.RoleStudent)
	c.Set("user_id", "s001")

	err := SelfScope("userId")(func(c echo.Context) error {
		assert.Equal(t, "s001", c.Param("userId"))
		return okHandler(c)
	})(c)
	require.NoError(t, err)
}

func TestSelfScopeLeavesAdminAlone(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("someone-else")
	c.Set("role", domain.RoleAdmin)
	c.Set("user_id", "admin1")

	err := SelfScope("userId")(func(c echo.Context) error {
		assert.Equal(t, "someone-else", c.Param("userId"))
		return okHandler(c)
	})(c)
	require.NoError(t, err)
}
