package identity

import "errors"

// Credential store errors.
var (
	ErrEmailExists        = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotAllowed     = errors.New("self-registration only supports member role")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Session errors.
var (
	ErrInvalidToken = errors.New("invalid or expired session token")
)
