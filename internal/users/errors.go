package users

import "errors"

var (
	// ErrNotFound indicates no user exists for the given id or email.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAuthFailure covers both unknown emails and wrong passwords.
	ErrAuthFailure = errors.New("incorrect email or password")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
