// Package common defines shared constants and sentinel errors used across
// client and server layers of DataCleaner. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration and login failures, reported with the exact detail text
	// the client surfaces verbatim.
	ErrorEmailTaken         = errors.New("Email already registered")
	ErrorUsernameTaken      = errors.New("Username already taken")
	ErrorInvalidCredentials = errors.New("Incorrect email or password")

	// Upload payload rejection.
	ErrorNotImage = errors.New("Only image files are allowed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Quota enforcement.
	ErrorQuotaExceeded = errors.New("upload limit reached")

	// Validation of incoming payloads.
	ErrorValidation = errors.New("validation error")
)
