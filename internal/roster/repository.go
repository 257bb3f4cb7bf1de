package roster

import (
	"context"

	"github.com/mergington/activities-api/internal/domain"
)

// Repository defines the interface for activity roster storage.
//
// AddParticipant and RemoveParticipant are atomic check-then-mutate
// operations: the capacity and membership checks happen under the same
// exclusion as the mutation, so concurrent signups cannot jointly
// overflow an activity or duplicate an entry.
type Repository interface {
	// List returns all activities in seed insertion order.
	List(ctx context.Context) ([]*domain.Activity, error)

	// Get returns one activity by name. Returns ErrActivityNotFound
	// if absent.
	Get(ctx context.Context, name string) (*domain.Activity, error)

	// AddParticipant appends email to the activity's roster.
	// Returns ErrActivityNotFound, ErrAlreadySignedUp, or ErrActivityFull.
	AddParticipant(ctx context.Context, name, email string) error

	// RemoveParticipant removes email from the activity's roster.
	// Returns ErrActivityNotFound or ErrNotSignedUp.
	RemoveParticipant(ctx context.Context, name, email string) error
}
