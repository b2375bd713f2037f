// Package apperr defines the error taxonomy shared by services and
// handlers. All of these are terminal per-request outcomes; none are
// retried and none are process-fatal.
package apperr

import "errors"

var (
	// ErrCredentialConflict means a registration username is already taken.
	ErrCredentialConflict = errors.New("username is already in use")

	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAuthenticationRequired means a protected route was reached
	// without a valid principal.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrNotAuthorized means the principal does not own the targeted
	// resource. The message reveals nothing about the resource or its
	// owner.
	ErrNotAuthorized = errors.New("not permitted")

	// ErrNotFound means the referenced resource id does not exist.
	ErrNotFound = errors.New("resource not found")
)
