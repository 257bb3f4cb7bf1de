// Package memory provides an in-memory activity repository.
package memory

import (
	"context"
	"sync"

	"github.com/mergington/activities-api/internal/domain"
	"github.com/mergington/activities-api/internal/roster"
)

// Repository is a mutex-guarded in-memory activity store. Insertion
// order is preserved separately from the lookup map so listings match
// the seed order.
type Repository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
	order      []string
}

// NewRepository creates a repository holding the given activities in order.
func NewRepository(activities []*domain.Activity) *Repository {
	r := &Repository{
		activities: make(map[string]*domain.Activity, len(activities)),
		order:      make([]string, 0, len(activities)),
	}
	for _, a := range activities {
		r.activities[a.Name] = a.Clone()
		r.order = append(r.order, a.Name)
	}
	return r
}

// List returns copies of all activities in insertion order.
func (r *Repository) List(_ context.Context) ([]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Activity, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.activities[name].Clone())
	}
	return out, nil
}

// Get returns a copy of one activity.
func (r *Repository) Get(_ context.Context, name string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, roster.ErrActivityNotFound
	}
	return a.Clone(), nil
}

// AddParticipant appends email to the activity's roster. Membership and
// capacity checks run under the write lock together with the append, so
// two concurrent signups cannot both pass the capacity check.
func (r *Repository) AddParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return roster.ErrActivityNotFound
	}

	if a.HasParticipant(email) {
		return roster.ErrAlreadySignedUp
	}

	if a.IsFull() {
		return roster.ErrActivityFull
	}

	a.Participants = append(a.Participants, email)
	return nil
}

// RemoveParticipant removes email from the activity's roster, preserving
// the signup order of the remaining participants.
func (r *Repository) RemoveParticipant(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return roster.ErrActivityNotFound
	}

	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return nil
		}
	}
	return roster.ErrNotSignedUp
}
