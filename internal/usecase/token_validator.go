package usecase

import (
	"context"
	"time"

	"dorm-services/internal/domain/user"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/pkg/jwt"
	"dorm-services/internal/usecase/shared"
)

var ErrTokenRevoked = errs.New("token revoked")

// Session is what the auth middleware learns from a valid token
type Session struct {
	Username  string
	Role      user.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*Session, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	denylist   shared.TokenDenylist
}

func NewTokenValidator(jwtService *jwt.Service, denylist shared.TokenDenylist) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		denylist:   denylist,
	}
}

// ValidateToken fails closed when the denylist cannot be consulted.
func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, err
	}

	revoked, err := t.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errs.Wrap(err, "check token denylist")
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &Session{
		Username:  claims.Subject,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
