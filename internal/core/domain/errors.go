package domain

import "errors"

// ErrInvalidCredentials covers both an unknown identity and a wrong secret.
// Login must never reveal which of the two failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrAccountBanned = errors.New("account banned")

// ErrAccessDenied is returned when an authenticated actor lacks the tier the
// operation requires, including cross-tier moderation attempts.
var ErrAccessDenied = errors.New("access denied")

// ErrSelfAction is returned when an actor targets their own account with a
// restricted moderation action.
var ErrSelfAction = errors.New("action not permitted on own account")

// ErrInvalidToken is returned when a refresh token fails verification, is of
// the wrong kind, or has been revoked.
var ErrInvalidToken = errors.New("invalid token")
