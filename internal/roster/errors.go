package roster

import "errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up")
	ErrActivityFull     = errors.New("activity is full")
	ErrNotSignedUp      = errors.New("student is not signed up for this activity")
	ErrPermissionDenied = errors.New("members can only act on their own registration")
)
