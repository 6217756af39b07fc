package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Directory errors
var (
	ErrUserNotFound         = errors.New("user not found in directory")
	ErrDirectoryUnavailable = errors.New("directory unavailable")
)

// KYC form errors
var (
	ErrReadOnly           = errors.New("form is read-only for this viewer")
	ErrUnknownSection     = errors.New("unknown form section")
	ErrRowIndexOutOfRange = errors.New("row index out of range")
	ErrInvalidStatus      = errors.New("invalid review status")
)
