package domain

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrSyncInProgress is returned when a reconciliation run is requested
	// while another run holds the sync lock.
	ErrSyncInProgress = errors.New("notebook sync already in progress")

	// ErrDuplicate is returned when an insert collides with a uniqueness rule,
	// such as a receipt number reused by the same collector.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
