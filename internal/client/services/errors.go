package services

import "errors"

// Local precondition failures. These never reach the network; callers match
// them with errors.Is.
var (
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrQuotaExceeded      = errors.New("upload quota exceeded")
	ErrNoFileSelected     = errors.New("no file selected")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrNotAuthenticated   = errors.New("not authenticated")
)
