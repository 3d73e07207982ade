// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrDuplicateBook indicates a book with the same title already exists under the author.
	ErrDuplicateBook = errors.New("book title already exists within this author")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("wrong credentials")

	// ErrVersionConflict indicates optimistic concurrency failure (document changed since read).
	ErrVersionConflict = errors.New("version conflict")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
