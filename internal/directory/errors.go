package directory

import "errors"

// Domain errors surfaced to the HTTP boundary.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already in use")
	ErrInvalidPage     = errors.New("page must be >= 0")
	ErrInvalidPageSize = errors.New("size must be >= 1")
	ErrInvalidSortBy   = errors.New("unsupported sort field")
)
