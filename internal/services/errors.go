package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service that is not an
// infrastructure failure wraps exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrUserNotFound         = kindError(ErrNotFound, "user not found")
	ErrListingNotFound      = kindError(ErrNotFound, "listing not found")
	ErrSavedListingNotFound = kindError(ErrNotFound, "saved listing not found")
	ErrReviewNotFound       = kindError(ErrNotFound, "review not found")
	ErrProfileNotFound      = kindError(ErrNotFound, "roommate profile not found")

	ErrEmailTaken      = kindError(ErrConflict, "email already exists")
	ErrAlreadySaved    = kindError(ErrConflict, "listing is already saved")
	ErrAlreadyReviewed = kindError(ErrConflict, "you have already reviewed this listing")
	ErrProfileExists   = kindError(ErrConflict, "roommate profile already exists")

	ErrInvalidCredentials = kindError(ErrUnauthorized, "invalid credentials")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }

func (e *serviceError) Unwrap() error { return e.kind }

func kindError(kind error, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

func invalid(format string, args ...interface{}) error {
	return kindError(ErrValidation, fmt.Sprintf(format, args...))
}
