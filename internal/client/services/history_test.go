package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

func TestRefresh_ReplacesCache(t *testing.T) {
	fc := &fakeClient{artifacts: []*models.Artifact{{ID: 1}, {ID: 2}}}
	store := sessionWith(models.RoleProUser, 0)
	h := NewHistorySynchronizer(fc, store)

	require.NoError(t, h.Refresh(context.Background()))
	require.Len(t, h.Artifacts(), 2)

	// a later refresh fully replaces, never merges
	fc.artifacts = []*models.Artifact{{ID: 3}}
	require.NoError(t, h.Refresh(context.Background()))

	got := h.Artifacts()
	require.Len(t, got, 1)
	require.Equal(t, int64(3), got[0].ID)
}

func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	store := sessionWith(models.RoleProUser, 0)
	fc := &fakeClient{artifacts: []*models.Artifact{{ID: 1}}}
	h := NewHistorySynchronizer(fc, store)

	// while the first refresh is fetching, a newer one starts and lands
	first := true
	fc.onList = func() {
		if first {
			first = false
			fresh := &fakeClient{artifacts: []*models.Artifact{{ID: 99}}}
			h.client = fresh
			require.NoError(t, h.Refresh(context.Background()))
		}
	}

	require.NoError(t, h.Refresh(context.Background()))

	got := h.Artifacts()
	require.Len(t, got, 1)
	require.Equal(t, int64(99), got[0].ID, "the stale response must not overwrite the fresher list")
}

func TestRefresh_UnauthorizedTearsDownSession(t *testing.T) {
	fc := &fakeClient{artifactsErr: api.ErrUnauthorized}
	store := sessionWith(models.RoleProUser, 0)
	h := NewHistorySynchronizer(fc, store)

	err := h.Refresh(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.Nil(t, store.Current())
	require.Equal(t, 1, store.clearCount)
}

func TestRefresh_ErrorLeavesCacheUntouched(t *testing.T) {
	fc := &fakeClient{artifacts: []*models.Artifact{{ID: 1}}}
	store := sessionWith(models.RoleProUser, 0)
	h := NewHistorySynchronizer(fc, store)
	require.NoError(t, h.Refresh(context.Background()))

	fc.artifactsErr = api.ErrServer
	require.ErrorIs(t, h.Refresh(context.Background()), api.ErrServer)
	require.Len(t, h.Artifacts(), 1)
}
