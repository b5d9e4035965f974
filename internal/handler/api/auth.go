package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "dorm-services/internal/handler/dto/request"
	resdto "dorm-services/internal/handler/dto/response"
	"dorm-services/internal/handler/httperr"
	"dorm-services/internal/handler/middleware"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/pkg/cookie"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

var errMissingToken = errors.New("missing access token")

type AuthHandler struct {
	cmds      commands.AuthCommands
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:      cmds,
		cookieCfg: cfg.Cookie,
	}
}

// @Summary Admin login
// @Description Login with the administrator account; the token is also set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCredentials), errs.Is(err, commands.ErrAuthenticationFailed):
			// Same message for unknown user and wrong password
			httperr.AbortWithError(c, http.StatusUnauthorized, httperr.KindUnauthenticated, err,
				"아이디 또는 비밀번호가 올바르지 않습니다.", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, httperr.KindInternal, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetAccessToken(c, h.cookieCfg, result.AccessToken, time.Until(result.ExpiresAt))
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		Username:    result.Username,
		ExpiresAt:   result.ExpiresAt,
	})
}

// @Summary Admin logout
// @Description Revoke the current token and clear the cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.KindUnauthenticated, errMissingToken, "Access token required", nil)
		return
	}

	if err := h.cmds.Logout(c.Request.Context(), token); err != nil {
		if errs.Is(err, commands.ErrTokenValidation) {
			httperr.AbortWithError(c, http.StatusUnauthorized, httperr.KindUnauthenticated, err, "Invalid or expired token", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusServiceUnavailable, httperr.KindStorageUnavailable, err, "로그아웃 실패", nil)
		return
	}

	cookie.ClearAccessToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Session status
// @Description Whether the caller holds a valid admin session
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.AuthStatusResponse
// @Router /auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusOK, resdto.AuthStatusResponse{IsLoggedIn: false})
		return
	}
	c.JSON(http.StatusOK, resdto.AuthStatusResponse{IsLoggedIn: true, Username: session.Username})
}
