package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"dorm-services/internal/handler/httperr"
	"dorm-services/internal/pkg/cookie"
	"dorm-services/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxSessionKey = "session"
	ctxTokenKey   = "access_token"
)

var errUnauthenticated = errors.New("unauthenticated")

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, httperr.KindUnauthenticated,
				errUnauthenticated, "Access token required", nil)
			return
		}

		session, err := m.tokenValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, httperr.KindUnauthenticated,
				err, "Invalid or expired token", nil)
			return
		}
		setSession(c, session, token)
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := m.tokenValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		setSession(c, session, token)
		c.Next()
	}
}

// The cookie wins over the Authorization header.
func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func setSession(c *gin.Context, session *usecase.Session, token string) {
	c.Set(ctxSessionKey, session)
	c.Set(ctxTokenKey, token)
	c.Set("jwt_claims", map[string]any{
		"username": session.Username,
		"role":     session.Role.String(),
	})
}

func GetSession(c *gin.Context) (*usecase.Session, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*usecase.Session)
	return session, ok
}

// GetAccessToken returns the raw token RequireAuth accepted.
func GetAccessToken(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxTokenKey)
	if !exists {
		return "", false
	}
	token, ok := v.(string)
	return token, ok && token != ""
}
