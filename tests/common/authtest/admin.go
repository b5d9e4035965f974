//go:build unit || e2e

package authtest

import (
	"testing"

	"dorm-services/internal/domain/user"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/pkg/jwt"
	"dorm-services/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminUser     = "admin"
	AdminPassword = "password123"
)

// HashPassword hashes with the minimum bcrypt cost to keep tests fast.
func HashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := password.HashPasswordWithCost(plain, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func NewAdmin(t *testing.T) *user.Admin {
	t.Helper()
	admin, err := user.NewAdmin(AdminUser, HashPassword(t, AdminPassword))
	require.NoError(t, err)
	return admin
}

// WithAdmin fills the admin section of a test config.
func WithAdmin(t *testing.T, cfg config.Config) config.Config {
	t.Helper()
	cfg.Admin.User = AdminUser
	cfg.Admin.PasswordHash = HashPassword(t, AdminPassword)
	return cfg
}

func GenerateToken(t *testing.T, cfg config.JWTConfig) string {
	t.Helper()
	token, _, err := jwt.NewService(cfg.Secret, cfg.Duration).GenerateToken(AdminUser, user.RoleAdmin)
	require.NoError(t, err)
	return token
}
