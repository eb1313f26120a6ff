// Package api defines the client-side boundary to the DataCleaner service:
// a transport-agnostic Client interface, the error taxonomy every remote
// failure is classified into, and an HTTP implementation.
package api

import (
	"context"

	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// AuthResult is what a successful login or registration exchange yields.
// The caller decides whether to persist it; the gateway never does.
type AuthResult struct {
	Token   string
	Profile *models.Profile
}

// Client is the remote service boundary. Every method returns either a
// decoded result or an error classified into one of the sentinels in
// errors.go; no raw transport or status-code errors escape.
type Client interface {
	Close() error

	// SetToken replaces the bearer token attached to subsequent calls.
	// An empty token detaches authentication. Each outbound request
	// observes a consistent token value.
	SetToken(token string)

	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, name, email, username, password string) (*AuthResult, error)
	Profile(ctx context.Context) (*models.Profile, error)

	ListArtifacts(ctx context.Context) ([]*models.Artifact, error)
	Upload(ctx context.Context, path string, mode models.ProcessMode) (*models.Artifact, error)

	ListUsers(ctx context.Context) ([]*models.AdminUser, error)
	UpdateUserRole(ctx context.Context, userID int64, role models.Role) (*models.AdminUser, error)
}
