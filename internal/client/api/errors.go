package api

import "errors"

// Classified remote failures. Callers match with errors.Is; the wrapped
// message carries the server's detail text when one was provided.
var (
	// ErrUnavailable: no response was received (connectivity problem).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized: the server rejected the token. The session must be
	// torn down and the user re-authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: the operation was denied for the authenticated
	// role/quota. The session is retained.
	ErrForbidden = errors.New("forbidden")

	// ErrBadRequest: the server reported an input problem (duplicate
	// email, unsupported file type, ...).
	ErrBadRequest = errors.New("bad request")

	// ErrServer: the server failed (5xx). Retry later.
	ErrServer = errors.New("server error")
)
