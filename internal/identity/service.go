// Package identity provides user registration, login, and session
// resolution for the activity signup portal.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mergington/activities-api/internal/domain"
	"github.com/mergington/activities-api/internal/pkg/ctxlog"
	"golang.org/x/crypto/bcrypt"
)

// TokenStore manages opaque session tokens.
type TokenStore interface {
	Create(email string) (string, error)
	Lookup(token string) (string, bool)
	Revoke(token string)
	Count() int
}

// Service implements identity business logic.
type Service struct {
	repo     Repository
	sessions TokenStore
}

// NewService creates a new identity service.
func NewService(repo Repository, sessions TokenStore) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
	}
}

// RegisterInput holds data for registering a user.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// Register creates a new user account. Self-registration only permits the
// member role; admin and supervisor accounts are seeded at startup.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	if role != domain.RoleMember {
		return nil, ErrRoleNotAllowed
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        domain.NormalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("user registered", "email", user.Email, "role", user.Role)

	return user, nil
}

// LoginInput holds credentials for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a session token. Unknown users and
// wrong passwords fail identically so the response does not leak which
// emails are registered.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			recordLogin("failure")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		recordLogin("failure")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(user.Email)
	if err != nil {
		return nil, "", err
	}

	recordLogin("success")
	setActiveSessions(s.sessions.Count())

	ctxlog.FromContext(ctx).Info("user logged in", "email", user.Email)

	return user, token, nil
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (s *Service) Logout(_ context.Context, token string) {
	s.sessions.Revoke(token)
	setActiveSessions(s.sessions.Count())
}

// ResolveToken maps a session token back to its user. A token whose user no
// longer exists in the credential store counts as an invalidated session.
func (s *Service) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	email, ok := s.sessions.Lookup(token)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// HashPassword derives a salted bcrypt digest from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
