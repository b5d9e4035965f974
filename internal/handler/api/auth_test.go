//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"dorm-services/internal/domain/user"
	"dorm-services/internal/handler/api"
	reqdto "dorm-services/internal/handler/dto/request"
	resdto "dorm-services/internal/handler/dto/response"
	"dorm-services/internal/handler/httperr"
	"dorm-services/internal/handler/middleware"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase"
	"dorm-services/internal/usecase/commands"
	"dorm-services/tests/common/httptest"
	"dorm-services/tests/common/testutil"
	commandsmock "dorm-services/tests/mock/commands"
	usecasemock "dorm-services/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCommands  *commandsmock.MockAuthCommands
	mockValidator *usecasemock.MockTokenValidator
	handler       *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, config.NewTestConfig())
	authMiddleware := middleware.NewAuthMiddleware(s.mockValidator)

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", authMiddleware.RequireAuth(), s.handler.Logout)
	s.router.GET("/auth/status", authMiddleware.OptionalAuth(), s.handler.Status)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := reqdto.LoginRequest{Username: "admin", Password: "password123"}
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	s.Run("success: sets the cookie and returns the token", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).Return(&commands.LoginResult{
			AccessToken: "test-jwt-token",
			Username:    "admin",
			ExpiresAt:   expiresAt,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("test-jwt-token", resp.AccessToken)
		s.Equal("admin", resp.Username)

		cookie := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(cookie)
		s.Equal("test-jwt-token", cookie.Value)
		s.True(cookie.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "missing field: username (required)", mutate: testutil.Field("username", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, httperr.KindBadRequest)
			})
		}
	})

	s.Run("error: 401 on bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).Return(nil, errs.Mark(errs.New("mismatch"), commands.ErrInvalidCredentials))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, httperr.KindUnauthenticated)
		s.Nil(httptest.ExtractCookie(rec, "access_token"))
	})

	s.Run("error: 500 on token generation failure", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).Return(nil, commands.ErrTokenGeneration)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, httperr.KindInternal)
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	url := "/auth/logout"
	session := &usecase.Session{Username: "admin", Role: user.RoleAdmin, TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

	s.Run("success: revokes and clears the cookie", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "tok").Return(session, nil)
		s.mockCommands.EXPECT().Logout(gomock.Any(), "tok").Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "tok")

		s.Equal(http.StatusNoContent, rec.Code)
		cookie := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(cookie)
		s.Empty(cookie.Value)
		s.Negative(cookie.MaxAge)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, httperr.KindUnauthenticated)
	})

	s.Run("error: 401 with a revoked token", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "old").Return(nil, usecase.ErrTokenRevoked)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "old")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, httperr.KindUnauthenticated)
	})

	s.Run("error: 503 when the denylist is down", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "tok").Return(session, nil)
		s.mockCommands.EXPECT().Logout(gomock.Any(), "tok").Return(errs.Mark(errs.New("redis down"), commands.ErrTokenRevocation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "tok")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, httperr.KindStorageUnavailable)
	})
}

func (s *AuthHandlerTestSuite) TestStatus() {
	url := "/auth/status"

	s.Run("anonymous", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.AuthStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.False(resp.IsLoggedIn)
		s.Empty(resp.Username)
	})

	s.Run("invalid token is treated as anonymous", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "bad").Return(nil, errs.New("invalid"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bad")

		var resp resdto.AuthStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.False(resp.IsLoggedIn)
	})

	s.Run("logged in", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "tok").
			Return(&usecase.Session{Username: "admin", Role: user.RoleAdmin}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "tok")

		var resp resdto.AuthStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.IsLoggedIn)
		s.Equal("admin", resp.Username)
	})
}
