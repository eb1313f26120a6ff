// Package services contains the application services behind the DataCleaner
// client: the authentication gateway, the capability predicate guarding
// views, the quota-gated submission state machine, the history synchronizer,
// and the admin role editor.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// MinPasswordLength is enforced locally before any registration round-trip.
const MinPasswordLength = 6

// SessionStore is the slice of the session store the services depend on.
// *session.Store satisfies it.
type SessionStore interface {
	Current() *models.Session
	Set(ctx context.Context, sess *models.Session) error
	ClearOnce(ctx context.Context) (bool, error)
	UpdateProfile(ctx context.Context, fn func(p *models.Profile)) error
}

// teardownIfUnauthorized enforces the forced-logout rule: any call that
// observes an authorization rejection clears the session exactly once.
func teardownIfUnauthorized(ctx context.Context, store SessionStore, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		_, _ = store.ClearOnce(ctx)
	}
}

// AuthGateway executes login and registration exchanges. It never persists
// the resulting session itself; the session store is the single writer.
type AuthGateway struct {
	client api.Client
}

func NewAuthGateway(client api.Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// Login authenticates with the remote service and returns the resulting
// session. No partial state is left behind on failure.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*models.Session, error) {
	res, err := g.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return &models.Session{Token: res.Token, Profile: res.Profile}, nil
}

// Register creates an account and returns the authenticated session.
// Password length and confirmation are checked locally first; a validation
// failure costs no network round-trip.
func (g *AuthGateway) Register(ctx context.Context, name, email, password, confirm string) (*models.Session, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	// the service identifies accounts by email; username mirrors it
	res, err := g.client.Register(ctx, name, email, email, password)
	if err != nil {
		return nil, fmt.Errorf("registration error: %w", err)
	}
	return &models.Session{Token: res.Token, Profile: res.Profile}, nil
}
