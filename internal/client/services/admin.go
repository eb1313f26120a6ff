package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// AdminRoleEditor is the privileged mutation path for other users' roles.
// Reaching it is gated at the view level by CanAccess; authorization
// correctness is delegated to the remote boundary, which re-checks the
// caller's role on every request.
type AdminRoleEditor struct {
	client api.Client
	store  SessionStore
	notice *Notice

	mu    sync.Mutex
	users []*models.AdminUser
}

func NewAdminRoleEditor(client api.Client, store SessionStore, notice *Notice) *AdminRoleEditor {
	if notice == nil {
		notice = NewNotice(NoticeTTL)
	}
	return &AdminRoleEditor{client: client, store: store, notice: notice}
}

// LoadUsers fetches the user records and replaces the local cache.
func (a *AdminRoleEditor) LoadUsers(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		teardownIfUnauthorized(ctx, a.store, err)
		return fmt.Errorf("user list error: %w", err)
	}

	a.mu.Lock()
	a.users = users
	a.mu.Unlock()
	return nil
}

// ChangeRole asks the server to change a user's role. Only a confirmed
// success mutates the cached record; on failure the cache is untouched and
// a transient notification is surfaced.
func (a *AdminRoleEditor) ChangeRole(ctx context.Context, userID int64, role models.Role) error {
	updated, err := a.client.UpdateUserRole(ctx, userID, role)
	if err != nil {
		teardownIfUnauthorized(ctx, a.store, err)
		a.notice.Set(fmt.Sprintf("role change failed: %v", err))
		return fmt.Errorf("role change error: %w", err)
	}

	a.mu.Lock()
	for i, u := range a.users {
		if u.ID == userID {
			a.users[i] = updated
			break
		}
	}
	a.mu.Unlock()

	a.notice.Set(fmt.Sprintf("role of user %d changed to %q", userID, role))
	return nil
}

// Users returns a snapshot of the cached records.
func (a *AdminRoleEditor) Users() []*models.AdminUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*models.AdminUser, len(a.users))
	copy(out, a.users)
	return out
}

// Notice exposes the transient message surface for the view layer.
func (a *AdminRoleEditor) Notice() string {
	return a.notice.Get()
}
