package commands

import (
	"context"
	"log/slog"
	"time"

	"dorm-services/internal/domain/user"
	reqdto "dorm-services/internal/handler/dto/request"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/pkg/jwt"
	"dorm-services/internal/pkg/password"
	"dorm-services/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
	ErrTokenRevocation      = errs.New("token revocation failed")
)

type LoginResult struct {
	AccessToken string
	Username    string
	ExpiresAt   time.Time
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	// Logout denylists the token until it expires.
	Logout(ctx context.Context, token string) error
}

type authCommandsImpl struct {
	admin      *user.Admin
	jwtService *jwt.Service
	denylist   shared.TokenDenylist
}

func NewAuthCommands(admin *user.Admin, jwtService *jwt.Service, denylist shared.TokenDenylist) AuthCommands {
	return &authCommandsImpl{
		admin:      admin,
		jwtService: jwtService,
		denylist:   denylist,
	}
}

func (a *authCommandsImpl) Login(_ context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	// Same error for unknown user and wrong password to prevent account enumeration
	if !a.admin.Matches(credentials) {
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(a.admin.PasswordHash(), credentials.Password()); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	token, claims, err := a.jwtService.GenerateToken(a.admin.Username(), a.admin.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	slog.Info("admin logged in", "username", a.admin.Username(), "jti", claims.ID)

	return &LoginResult{
		AccessToken: token,
		Username:    a.admin.Username(),
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func (a *authCommandsImpl) Logout(ctx context.Context, token string) error {
	claims, err := a.jwtService.ValidateToken(token)
	if err != nil {
		return errs.Mark(err, ErrTokenValidation)
	}

	if err := a.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return errs.Mark(err, ErrTokenRevocation)
	}

	slog.Info("admin logged out", "username", claims.Subject, "jti", claims.ID)
	return nil
}
