// Package roster provides the activity roster: listings plus the signup
// and unregister business rules.
package roster

import (
	"context"

	"github.com/mergington/activities-api/internal/domain"
	"github.com/mergington/activities-api/internal/pkg/ctxlog"
)

// AllowedRoles returns the role allow-list for the mutating roster
// operations. Every role may sign up and unregister; the member-only-self
// refinement is enforced per operation in the service.
func AllowedRoles() []domain.Role {
	return []domain.Role{domain.RoleMember, domain.RoleAdmin, domain.RoleSupervisor}
}

// Service implements roster business logic.
type Service struct {
	repo Repository
}

// NewService creates a new roster service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a snapshot of all activities in seed order.
func (s *Service) List(ctx context.Context) ([]*domain.Activity, error) {
	return s.repo.List(ctx)
}

// Signup registers targetEmail for an activity on behalf of actor.
// Members may only sign themselves up; admins and supervisors may sign
// up anyone. Checks run in a fixed order so an unknown activity reports
// 404 before any permission refinement applies.
func (s *Service) Signup(ctx context.Context, activityName, targetEmail string, actor *domain.User) error {
	target := domain.NormalizeEmail(targetEmail)

	if _, err := s.repo.Get(ctx, activityName); err != nil {
		recordSignup(activityName, "not_found")
		return err
	}

	if actor.Role == domain.RoleMember && target != actor.Email {
		recordSignup(activityName, "denied")
		return ErrPermissionDenied
	}

	if err := s.repo.AddParticipant(ctx, activityName, target); err != nil {
		recordSignup(activityName, "rejected")
		return err
	}

	recordSignup(activityName, "success")
	ctxlog.FromContext(ctx).Info("signup",
		"activity", activityName,
		"email", target,
		"actor", actor.Email,
	)
	return nil
}

// Unregister removes targetEmail from an activity on behalf of actor,
// under the same actor-vs-target restriction as Signup.
func (s *Service) Unregister(ctx context.Context, activityName, targetEmail string, actor *domain.User) error {
	target := domain.NormalizeEmail(targetEmail)

	if _, err := s.repo.Get(ctx, activityName); err != nil {
		recordUnregister(activityName, "not_found")
		return err
	}

	if actor.Role == domain.RoleMember && target != actor.Email {
		recordUnregister(activityName, "denied")
		return ErrPermissionDenied
	}

	if err := s.repo.RemoveParticipant(ctx, activityName, target); err != nil {
		recordUnregister(activityName, "rejected")
		return err
	}

	recordUnregister(activityName, "success")
	ctxlog.FromContext(ctx).Info("unregister",
		"activity", activityName,
		"email", target,
		"actor", actor.Email,
	)
	return nil
}
