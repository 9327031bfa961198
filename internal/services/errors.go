package services

import "errors"

// Sentinel errors for business-rule failures. Handlers translate these to
// status codes and wire messages; anything else is treated as a store
// failure.
var (
	// ErrUserExists is returned when registering an email that is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUnknownUser is returned when no account matches the login email.
	ErrUnknownUser = errors.New("unknown user")

	// ErrWrongPassword is returned when the login password does not match.
	ErrWrongPassword = errors.New("wrong password")

	// ErrEntryNotFound is returned when a nested entry's identity does
	// not resolve within its parent record. It is distinct from
	// store.ErrNotFound, which covers the parent itself.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrForbidden is returned when the requester does not own the
	// resource being mutated.
	ErrForbidden = errors.New("not resource owner")

	// ErrAlreadyLiked is returned when a user likes a post twice.
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrNotLiked is returned when a user unlikes a post without a like.
	ErrNotLiked = errors.New("post not liked")
)
