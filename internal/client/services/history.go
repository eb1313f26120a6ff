package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// HistorySynchronizer caches the viewer's artifact list. The server is the
// source of truth: every refresh fully replaces the cache, and the viewer's
// role decides the scope server-side (admins see all users' artifacts).
type HistorySynchronizer struct {
	client api.Client
	store  SessionStore

	mu        sync.Mutex
	seq       uint64
	artifacts []*models.Artifact
}

func NewHistorySynchronizer(client api.Client, store SessionStore) *HistorySynchronizer {
	return &HistorySynchronizer{client: client, store: store}
}

// Refresh fetches the artifact list and replaces the cache. Refreshes are
// not sequenced against each other: each one takes a sequence number, and a
// response that finishes after a newer refresh has started is discarded, so
// a slow response can never overwrite a fresher list.
func (h *HistorySynchronizer) Refresh(ctx context.Context) error {
	h.mu.Lock()
	h.seq++
	id := h.seq
	h.mu.Unlock()

	list, err := h.client.ListArtifacts(ctx)
	if err != nil {
		teardownIfUnauthorized(ctx, h.store, err)
		return fmt.Errorf("history refresh error: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if id != h.seq {
		// a newer refresh is in flight or already landed
		return nil
	}
	h.artifacts = list
	return nil
}

// Artifacts returns a snapshot of the cached list.
func (h *HistorySynchronizer) Artifacts() []*models.Artifact {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*models.Artifact, len(h.artifacts))
	copy(out, h.artifacts)
	return out
}
