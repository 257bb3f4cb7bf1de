package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomEmail returns a unique student email for test registrations.
func RandomEmail() string {
	return fmt.Sprintf("student-%s@mergington.edu", uuid.NewString()[:8])
}
