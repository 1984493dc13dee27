package resumes

import "errors"

var (
	// ErrNotFound covers both a missing resume and one owned by someone else.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
