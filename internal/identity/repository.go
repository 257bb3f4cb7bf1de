package identity

import (
	"context"

	"github.com/mergington/activities-api/internal/domain"
)

// Repository defines the interface for user credential storage.
type Repository interface {
	// CreateUser stores a new user. Returns ErrEmailExists if the
	// (lowercased) email is already taken. The existence check and the
	// insert are a single atomic step.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByEmail looks up a user by lowercased email.
	// Returns ErrUserNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
