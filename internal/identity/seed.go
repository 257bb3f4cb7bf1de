package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/mergington/activities-api/internal/domain"
)

// seedUser describes one default account created at startup.
type seedUser struct {
	email    string
	password string
	role     domain.Role
}

var seedUsers = []seedUser{
	{"member@mergington.edu", "member123", domain.RoleMember},
	{"admin@mergington.edu", "admin123", domain.RoleAdmin},
	{"supervisor@mergington.edu", "supervisor123", domain.RoleSupervisor},
}

// SeedUsers creates the default accounts. It bypasses the self-registration
// role restriction since admin and supervisor accounts cannot be created
// through the public API.
func SeedUsers(ctx context.Context, repo Repository) error {
	for _, su := range seedUsers {
		hash, err := HashPassword(su.password)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", su.email, err)
		}

		err = repo.CreateUser(ctx, &domain.User{
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
	}
	return nil
}
