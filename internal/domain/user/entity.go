package user

import "strings"

// Admin is the single operator account configured through the environment.
type Admin struct {
	username     string
	passwordHash string
	role         Role
}

func NewAdmin(username, passwordHash string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || passwordHash == "" {
		return nil, ErrAccountMisconfig
	}
	return &Admin{username: username, passwordHash: passwordHash, role: RoleAdmin}, nil
}

func (a *Admin) Username() string     { return a.username }
func (a *Admin) PasswordHash() string { return a.passwordHash }
func (a *Admin) Role() Role           { return a.role }

// Matches compares usernames exactly; the password is checked separately against the hash.
func (a *Admin) Matches(c Credentials) bool {
	return a.username == c.Username()
}
