// Package domain defines domain-level errors shared by the auth and onboarding features.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for authentication and onboarding.
// Handlers translate them to HTTP statuses; anything else is treated as an internal error.
var (
	// ErrValidation indicates that a required input field is missing or empty.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong password,
	// so callers cannot tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned by login after the credentials were verified.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrEmailAlreadyExists is returned by the pre-check and by the store's unique index.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrPasswordTooLong is a validation error for passwords the hasher cannot take.
	ErrPasswordTooLong = fmt.Errorf("%w: password exceeds 72 bytes", ErrValidation)

	// ErrUserNotFound indicates that no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
)
