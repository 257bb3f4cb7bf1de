// Package memory provides an in-memory user repository.
//
// All registered users live for the process lifetime only; a restart
// loses them and reseeds the defaults.
package memory

import (
	"context"
	"sync"

	"github.com/mergington/activities-api/internal/domain"
	"github.com/mergington/activities-api/internal/identity"
)

// Repository is a mutex-guarded in-memory user store keyed by
// lowercased email.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewRepository creates an empty user repository.
func NewRepository() *Repository {
	return &Repository{
		users: make(map[string]*domain.User),
	}
}

// CreateUser stores a new user, failing if the email is taken.
// Check and insert happen under one write lock so concurrent
// registrations cannot race on the uniqueness invariant.
func (r *Repository) CreateUser(_ context.Context, user *domain.User) error {
	email := domain.NormalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[email]; exists {
		return identity.ErrEmailExists
	}

	stored := *user
	stored.Email = email
	r.users[email] = &stored
	return nil
}

// GetUserByEmail returns a copy of the stored user.
func (r *Repository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, identity.ErrUserNotFound
	}

	u := *user
	return &u, nil
}
