//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"dorm-services/internal/handler/dto/request"
	"dorm-services/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginAdmin logs in with the default test credentials and returns the cookie token.
func LoginAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Username: AdminUser, Password: AdminPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return accessCookie.Value
}

func LogoutAdmin(t *testing.T, router *gin.Engine, token string) {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
