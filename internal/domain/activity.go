package domain

// Activity is a named extracurricular offering with schedule, capacity,
// and participant roster. Participants are kept in signup order.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// HasParticipant reports whether email is on the roster.
// The caller is expected to have normalized the email already.
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// IsFull reports whether the activity reached its capacity.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// Clone returns a deep copy so callers can hand out snapshots without
// aliasing the store's participant slice. The copy is never nil so an
// emptied roster still marshals as [].
func (a *Activity) Clone() *Activity {
	c := *a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return &c
}
