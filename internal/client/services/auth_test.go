package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

func TestRegister_LocalValidation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		want     error
	}{
		{"short password", "12345", "12345", ErrPasswordTooShort},
		{"mismatch", "123456", "654321", ErrPasswordMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fc := &fakeClient{}
			g := NewAuthGateway(fc)

			_, err := g.Register(context.Background(), "U", "u@x.y", tc.password, tc.confirm)
			require.ErrorIs(t, err, tc.want)
			require.Zero(t, fc.registerCalls, "validation failures must not reach the network")
		})
	}
}

func TestRegister_Success(t *testing.T) {
	fc := &fakeClient{registerRes: &api.AuthResult{
		Token:   "tok",
		Profile: &models.Profile{ID: 5, Name: "U", Role: models.RoleFreeUser},
	}}
	g := NewAuthGateway(fc)

	sess, err := g.Register(context.Background(), "U", "u@x.y", "123456", "123456")
	require.NoError(t, err)
	require.Equal(t, "tok", sess.Token)
	require.Equal(t, models.RoleFreeUser, sess.Profile.Role)
	require.Equal(t, 1, fc.registerCalls)
}

func TestLogin_Success(t *testing.T) {
	fc := &fakeClient{loginRes: &api.AuthResult{
		Token:   "tok",
		Profile: &models.Profile{ID: 1, Role: models.RoleProUser},
	}}
	g := NewAuthGateway(fc)

	sess, err := g.Login(context.Background(), "u@x.y", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok", sess.Token)
	require.Equal(t, models.RoleProUser, sess.Profile.Role)
}

func TestLogin_ClassifiedFailurePassedThrough(t *testing.T) {
	fc := &fakeClient{loginErr: api.ErrUnauthorized}
	g := NewAuthGateway(fc)

	_, err := g.Login(context.Background(), "u@x.y", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)
}
