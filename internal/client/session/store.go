// Package session owns the client's authenticated state: the durable
// credential token, the cached profile, and the single live Session value
// every other component reads through.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
	"github.com/datacleaner-ai/datacleaner/internal/dbx"
)

const (
	keyToken   = "token"
	keyProfile = "profile"
)

// Store is the single writer of session state. Exactly one Session may be
// live per process; Set replaces it atomically from any reader's view.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	client  api.Client
	current *models.Session
}

// NewStore binds the store to its durable database and the API client whose
// token it manages.
func NewStore(db *sql.DB, client api.Client) *Store {
	return &Store{db: db, client: client}
}

// Current returns the live session, or nil when unauthenticated.
func (s *Store) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Load restores a persisted token at startup. The token is never trusted as
// is: it is validated by fetching the profile. On an authorization rejection
// the token is purged and Load reports an unauthenticated start; on a
// connectivity failure the token is kept and the error is returned.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	token, err := s.getMeta(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}

	s.client.SetToken(string(token))

	profile, err := s.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			if err := s.Clear(ctx); err != nil {
				return nil, err
			}
			return nil, nil
		}
		s.client.SetToken("")
		return nil, err
	}

	sess := &models.Session{Token: string(token), Profile: profile}
	if err := s.Set(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Set persists the session and makes it the live one. Token and profile are
// written in a single transaction.
func (s *Store) Set(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("profile encode error: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := setMeta(ctx, tx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return setMeta(ctx, tx, keyProfile, data)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.client.SetToken(sess.Token)
	return nil
}

// Clear purges the persisted token and profile and drops the live session.
// It reports whether a session was actually cleared, so the forced-logout
// path runs its teardown exactly once even if several failing calls race.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.ClearOnce(ctx)
	return err
}

// ClearOnce is Clear with an indication of whether anything was live.
func (s *Store) ClearOnce(ctx context.Context) (bool, error) {
	s.mu.Lock()
	wasLive := s.current != nil
	s.current = nil
	s.mu.Unlock()

	s.client.SetToken("")

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, keyToken, keyProfile); err != nil {
			return fmt.Errorf("metadata delete error: %w", err)
		}
		return nil
	})
	if err != nil {
		return wasLive, err
	}
	return wasLive, nil
}

// UpdateProfile replaces the cached profile of the live session, keeping the
// token. Used for the optimistic upload-count increment and for
// reconciliation after a full profile fetch.
func (s *Store) UpdateProfile(ctx context.Context, fn func(p *models.Profile)) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return errors.New("no live session")
	}
	p := *s.current.Profile
	fn(&p)
	s.current = &models.Session{Token: s.current.Token, Profile: &p}
	s.mu.Unlock()

	data, err := json.Marshal(&p)
	if err != nil {
		return fmt.Errorf("profile encode error: %w", err)
	}
	return setMeta(ctx, s.db, keyProfile, data)
}

func (s *Store) getMeta(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("metadata get error [%s]: %w", key, err)
	}
	return value, nil
}

func setMeta(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("metadata set error [%s]: %w", key, err)
	}
	return nil
}
