package store

import "errors"

var (
	// ErrStoreUnavailable wraps a failure to open or reach the backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStoreBlocked means another session holds the store open in a way
	// that prevents schema upgrade (sqlite file lock).
	ErrStoreBlocked = errors.New("store blocked by another session")

	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
