package domain

import (
	"errors"
	"strings"
	"time"
)

// Role determines which operations and whose records a user may act upon.
type Role string

const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
)

// ErrInvalidRole is returned when a role value is not one of the known roles.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole normalizes and validates a role value.
// An empty value defaults to RoleMember.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(s)) {
	case "":
		return RoleMember, nil
	case RoleMember:
		return RoleMember, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSupervisor:
		return RoleSupervisor, nil
	default:
		return "", ErrInvalidRole
	}
}

// In returns true if the role is present in the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

type User struct {
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NormalizeEmail lowercases an email address. Emails are compared
// case-insensitively everywhere, so normalization happens once at the
// boundary of each store operation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
