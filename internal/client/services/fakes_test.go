package services

import (
	"context"
	"sync"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// fakeClient implements api.Client for service tests. Zero values mean
// "succeed with the configured results".
type fakeClient struct {
	mu sync.Mutex

	loginRes *api.AuthResult
	loginErr error

	registerRes *api.AuthResult
	registerErr error

	profileRes *models.Profile
	profileErr error

	artifacts    []*models.Artifact
	artifactsErr error

	uploadRes *models.Artifact
	uploadErr error

	users    []*models.AdminUser
	usersErr error

	updatedUser   *models.AdminUser
	updateRoleErr error

	// call counters; the quota and validation tests assert zero network calls
	loginCalls    int
	registerCalls int
	uploadCalls   int
	listCalls     int

	// hook invoked inside ListArtifacts, before returning (for race tests)
	onList func()

	lastUploadPath string
	lastUploadMode models.ProcessMode
	lastRoleID     int64
	lastRole       models.Role
}

func (f *fakeClient) Close() error        { return nil }
func (f *fakeClient) SetToken(tok string) {}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	f.mu.Lock()
	f.loginCalls++
	f.mu.Unlock()
	return f.loginRes, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email, username, password string) (*api.AuthResult, error) {
	f.mu.Lock()
	f.registerCalls++
	f.mu.Unlock()
	return f.registerRes, f.registerErr
}

func (f *fakeClient) Profile(ctx context.Context) (*models.Profile, error) {
	return f.profileRes, f.profileErr
}

func (f *fakeClient) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	f.mu.Lock()
	f.listCalls++
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return f.artifacts, f.artifactsErr
}

func (f *fakeClient) Upload(ctx context.Context, path string, mode models.ProcessMode) (*models.Artifact, error) {
	f.mu.Lock()
	f.uploadCalls++
	f.lastUploadPath = path
	f.lastUploadMode = mode
	f.mu.Unlock()
	return f.uploadRes, f.uploadErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]*models.AdminUser, error) {
	return f.users, f.usersErr
}

func (f *fakeClient) UpdateUserRole(ctx context.Context, id int64, role models.Role) (*models.AdminUser, error) {
	f.mu.Lock()
	f.lastRoleID = id
	f.lastRole = role
	f.mu.Unlock()
	return f.updatedUser, f.updateRoleErr
}

// fakeStore implements SessionStore in memory.
type fakeStore struct {
	mu         sync.Mutex
	current    *models.Session
	clearCount int
}

func (s *fakeStore) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *fakeStore) Set(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
	return nil
}

func (s *fakeStore) ClearOnce(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, nil
	}
	s.current = nil
	s.clearCount++
	return true, nil
}

func (s *fakeStore) UpdateProfile(ctx context.Context, fn func(p *models.Profile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNotAuthenticated
	}
	p := *s.current.Profile
	fn(&p)
	s.current = &models.Session{Token: s.current.Token, Profile: &p}
	return nil
}

func sessionWith(role models.Role, uploads int) *fakeStore {
	return &fakeStore{current: &models.Session{
		Token:   "tok",
		Profile: &models.Profile{ID: 1, Name: "u", Email: "u@x.y", Role: role, UploadCount: uploads},
	}}
}
