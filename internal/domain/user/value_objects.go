package user

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrEmptyUsername    = errors.New("username must not be empty")
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrAccountMisconfig = errors.New("admin account is not configured")
)

type Credentials struct {
	username string
	password string
}

func NewCredentials(username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Credentials{}, ErrEmptyUsername
	}
	if password == "" {
		return Credentials{}, ErrEmptyPassword
	}
	return Credentials{username: username, password: password}, nil
}

func (c Credentials) Username() string { return c.username }
func (c Credentials) Password() string { return c.password }
