// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "errors"

// Typed failures recovered at the router boundary. Handlers match these
// with errors.Is and translate them into HTTP statuses.
var (
	// ErrNotFound: unknown account or problem id
	ErrNotFound = errors.New("not found")

	// ErrConflict: username or email already registered
	ErrConflict = errors.New("username or email already registered")

	// ErrForbidden: actor lacks the host role
	ErrForbidden = errors.New("host role required")

	// ErrValidation: malformed input (empty title, description, or options)
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyVoted: a vote for this (account, problem) pair already
	// exists. Non-fatal; the earlier vote stands.
	ErrAlreadyVoted = errors.New("vote already cast for this problem")

	// ErrInvalidOption: selected option is not in the problem's option set
	ErrInvalidOption = errors.New("selected option is not one of the problem's options")

	// ErrNoSession: token unknown or expired
	ErrNoSession = errors.New("no active session")
)
