package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

func TestSubmit_QuotaRefusedLocally(t *testing.T) {
	fc := &fakeClient{}
	store := sessionWith(models.RoleFreeUser, FreeUserLimit)
	c := NewSubmissionController(fc, store, nil)

	require.NoError(t, c.Select("photo.jpg"))
	_, err := c.Submit(context.Background(), models.ModeBlur)

	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.Zero(t, fc.uploadCalls, "quota violations must not reach the network")

	remaining, limited := c.Remaining()
	require.True(t, limited)
	require.Zero(t, remaining)
}

func TestSubmit_GateNeverBlocksOtherRoles(t *testing.T) {
	for _, role := range []models.Role{models.RoleProUser, models.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			fc := &fakeClient{uploadRes: &models.Artifact{ID: 1}}
			// well past the free limit
			store := sessionWith(role, 99)
			c := NewSubmissionController(fc, store, nil)

			require.NoError(t, c.Select("photo.jpg"))
			_, err := c.Submit(context.Background(), models.ModeNone)
			require.NoError(t, err)
			require.Equal(t, 1, fc.uploadCalls)

			_, limited := c.Remaining()
			require.False(t, limited)
		})
	}
}

func TestSubmit_IncrementsFreeUserCountExactlyOnce(t *testing.T) {
	fc := &fakeClient{uploadRes: &models.Artifact{ID: 1}}
	store := sessionWith(models.RoleFreeUser, 1)
	c := NewSubmissionController(fc, store, nil)

	require.NoError(t, c.Select("photo.jpg"))
	_, err := c.Submit(context.Background(), models.ModeBlur)
	require.NoError(t, err)

	require.Equal(t, 2, store.Current().Profile.UploadCount)
	require.Equal(t, models.StatusSucceeded, c.Attempt().Status)
}

func TestSubmit_NoIncrementOnFailure(t *testing.T) {
	fc := &fakeClient{uploadErr: api.ErrServer}
	store := sessionWith(models.RoleFreeUser, 1)
	c := NewSubmissionController(fc, store, nil)

	require.NoError(t, c.Select("photo.jpg"))
	_, err := c.Submit(context.Background(), models.ModeBlur)
	require.ErrorIs(t, err, api.ErrServer)

	require.Equal(t, 1, store.Current().Profile.UploadCount)
	require.Equal(t, models.StatusFailed, c.Attempt().Status)
}

func TestSubmit_WithoutSelection(t *testing.T) {
	fc := &fakeClient{}
	c := NewSubmissionController(fc, sessionWith(models.RoleProUser, 0), nil)

	_, err := c.Submit(context.Background(), models.ModeBlur)
	require.ErrorIs(t, err, ErrNoFileSelected)
	require.Zero(t, fc.uploadCalls)
}

func TestSubmit_PassesModeThrough(t *testing.T) {
	fc := &fakeClient{uploadRes: &models.Artifact{ID: 1}}
	c := NewSubmissionController(fc, sessionWith(models.RoleProUser, 0), nil)

	require.NoError(t, c.Select("photo.jpg"))
	_, err := c.Submit(context.Background(), models.ModePixelate)
	require.NoError(t, err)
	require.Equal(t, models.ModePixelate, fc.lastUploadMode)
	require.Equal(t, "photo.jpg", fc.lastUploadPath)
}

func TestSubmit_UnauthorizedTearsDownSessionOnce(t *testing.T) {
	fc := &fakeClient{uploadErr: api.ErrUnauthorized}
	store := sessionWith(models.RoleProUser, 0)
	c := NewSubmissionController(fc, store, nil)

	require.NoError(t, c.Select("photo.jpg"))
	_, err := c.Submit(context.Background(), models.ModeBlur)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	require.Nil(t, store.Current())
	require.Equal(t, 1, store.clearCount)
}

func TestSelect_ClearsPreviousResult(t *testing.T) {
	fc := &fakeClient{uploadRes: &models.Artifact{ID: 1}}
	c := NewSubmissionController(fc, sessionWith(models.RoleProUser, 0), nil)

	require.NoError(t, c.Select("a.jpg"))
	_, err := c.Submit(context.Background(), models.ModeBlur)
	require.NoError(t, err)
	require.NotNil(t, c.Attempt().Artifact)

	require.NoError(t, c.Select("b.jpg"))
	at := c.Attempt()
	require.Equal(t, models.StatusSelected, at.Status)
	require.Nil(t, at.Artifact)
	require.NoError(t, at.Err)
}

func TestSubmit_RefreshesHistoryOnSuccess(t *testing.T) {
	fc := &fakeClient{uploadRes: &models.Artifact{ID: 1}}
	store := sessionWith(models.RoleProUser, 0)
	h := NewHistorySynchronizer(fc, store)
	c := NewSubmissionController(fc, store, h)

	require.NoError(t, c.Select("a.jpg"))
	_, err := c.Submit(context.Background(), models.ModeBlur)
	require.NoError(t, err)
	require.Equal(t, 1, fc.listCalls)
}
