package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountArchived    = errors.New("account is archived")
)
