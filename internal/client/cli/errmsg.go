package cli

import (
	"errors"
	"strings"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/services"
)

// userMessage converts a classified failure into the single transient
// message shown to the user. Server detail text is surfaced verbatim where
// the taxonomy allows it; Unauthorized additionally means the session was
// already torn down by the issuing service.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrUnauthorized):
		return "Session expired. Please log in again."
	case errors.Is(err, api.ErrForbidden):
		return trimKind(err, api.ErrForbidden, "Operation not allowed for your account.")
	case errors.Is(err, api.ErrBadRequest):
		return trimKind(err, api.ErrBadRequest, "The server rejected the request.")
	case errors.Is(err, api.ErrServer):
		return "Server error. Please try again later."
	case errors.Is(err, api.ErrUnavailable):
		return "No connection to the server."
	case errors.Is(err, services.ErrQuotaExceeded):
		return "Upload limit reached. Upgrade your plan."
	case errors.Is(err, services.ErrPasswordTooShort):
		return "Password must be at least 6 characters."
	case errors.Is(err, services.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, services.ErrNoFileSelected):
		return "Select a file before uploading."
	case errors.Is(err, services.ErrSubmissionInFlight):
		return "An upload is already in progress."
	default:
		return err.Error()
	}
}

// trimKind extracts the detail text appended after the sentinel, falling
// back when the server sent none.
func trimKind(err, kind error, fallback string) string {
	msg := err.Error()
	marker := kind.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return fallback
}
