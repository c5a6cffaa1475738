package users_services

import "errors"

var (
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("too many failed sign-in attempts")
	ErrInvalidToken       = errors.New("verification token is invalid or expired")
	ErrImmutableField     = errors.New("role is fixed at registration and cannot be changed")
	ErrUnverifiedAccount  = errors.New("email address is not verified yet")
	ErrUserNotFound       = errors.New("user not found")
)
