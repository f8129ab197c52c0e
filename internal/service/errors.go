package service

import "errors"

// Service-level error taxonomy. Handlers translate these to HTTP statuses;
// anything not listed here surfaces as an internal error.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrEntryNotFound     = errors.New("entry not found")
	ErrLifeEventNotFound = errors.New("life event not found")

	// ErrPermissionDenied is returned when a requester mutates an entry they
	// do not own. Kept distinct from the not-found errors so the API layer
	// can avoid leaking existence.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrPrivateProfile blocks the entire profile read, unlike section
	// filtering which degrades field by field.
	ErrPrivateProfile = errors.New("this profile is private")

	ErrInvalidVisibility = errors.New("invalid visibility value")
	ErrSelfBlock         = errors.New("cannot block yourself")
	ErrSelfFollow        = errors.New("cannot follow yourself")
	ErrNotBlocked        = errors.New("user is not blocked")

	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
)
