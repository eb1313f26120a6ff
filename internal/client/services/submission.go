package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// FreeUserLimit is the number of uploads a free_user may submit in total.
const FreeUserLimit = 3

// Refresher is what the submission controller asks to refresh after a
// successful upload. *HistorySynchronizer satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// SubmissionController owns the upload state machine. One attempt is
// tracked at a time; a new attempt may begin from idle, succeeded or
// failed, never while a submission is in flight.
type SubmissionController struct {
	client  api.Client
	store   SessionStore
	history Refresher

	mu      sync.Mutex
	attempt models.Attempt
}

func NewSubmissionController(client api.Client, store SessionStore, history Refresher) *SubmissionController {
	return &SubmissionController{client: client, store: store, history: history}
}

// Attempt returns a snapshot of the tracked attempt.
func (c *SubmissionController) Attempt() models.Attempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// Remaining derives the upload quota for the live session. Unlimited roles
// report limited == false.
func (c *SubmissionController) Remaining() (remaining int, limited bool) {
	sess := c.store.Current()
	if sess == nil || sess.Profile.Role != models.RoleFreeUser {
		return 0, false
	}
	r := FreeUserLimit - sess.Profile.UploadCount
	if r < 0 {
		r = 0
	}
	return r, true
}

// Select transitions the attempt to selected, clearing any previous result
// and preview. Selecting is refused while a submission is in flight.
func (c *SubmissionController) Select(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt.Status == models.StatusSubmitting {
		return ErrSubmissionInFlight
	}

	c.attempt = models.Attempt{File: path, Status: models.StatusSelected}
	return nil
}

// Submit drives selected → submitting → terminal state. The quota gate runs
// locally first: a free_user with no remaining uploads fails with
// ErrQuotaExceeded and no request is sent. On success the free_user upload
// count is incremented by exactly one (optimistically; the server count is
// reconciled on the next profile fetch) and a history refresh is requested.
func (c *SubmissionController) Submit(ctx context.Context, mode models.ProcessMode) (*models.Artifact, error) {
	c.mu.Lock()
	switch c.attempt.Status {
	case models.StatusSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case models.StatusSelected, models.StatusSucceeded, models.StatusFailed:
		if c.attempt.File == "" {
			c.mu.Unlock()
			return nil, ErrNoFileSelected
		}
	default:
		c.mu.Unlock()
		return nil, ErrNoFileSelected
	}

	sess := c.store.Current()
	if sess == nil {
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	if sess.Profile.Role == models.RoleFreeUser && sess.Profile.UploadCount >= FreeUserLimit {
		c.mu.Unlock()
		return nil, ErrQuotaExceeded
	}

	file := c.attempt.File
	c.attempt.Status = models.StatusSubmitting
	c.attempt.Mode = mode
	c.attempt.Artifact = nil
	c.attempt.Err = nil
	c.mu.Unlock()

	artifact, err := c.client.Upload(ctx, file, mode)

	c.mu.Lock()
	if err != nil {
		c.attempt.Status = models.StatusFailed
		c.attempt.Err = err
		c.mu.Unlock()
		teardownIfUnauthorized(ctx, c.store, err)
		return nil, fmt.Errorf("upload error: %w", err)
	}
	c.attempt.Status = models.StatusSucceeded
	c.attempt.Artifact = artifact
	c.mu.Unlock()

	if sess.Profile.Role == models.RoleFreeUser {
		_ = c.store.UpdateProfile(ctx, func(p *models.Profile) {
			p.UploadCount++
		})
	}

	if c.history != nil {
		_ = c.history.Refresh(ctx)
	}

	return artifact, nil
}
