package cli

import (
	"context"
	"log"
	"strconv"

	"github.com/datacleaner-ai/datacleaner/internal/client/models"
)

// Users lists all user records. Reachable only under the administrative
// capability; the server re-checks the caller's role on every request.
func (a *App) Users(ctx context.Context) error {
	if !a.guard("user management", models.RoleAdmin) {
		return nil
	}

	if err := a.admin.LoadUsers(ctx); err != nil {
		log.Println(userMessage(err))
		return err
	}

	for _, u := range a.admin.Users() {
		log.Printf("#%d  %-25s  %-10s  %s", u.ID, u.Email, u.Role, u.Name)
	}
	return nil
}

// SetRole changes another user's role: setrole <id> <role>.
func (a *App) SetRole(ctx context.Context, args []string) error {
	if !a.guard("user management", models.RoleAdmin) {
		return nil
	}

	if len(args) != 2 {
		log.Println("Usage: setrole <id> <free_user|pro_user|admin>")
		return nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		log.Printf("Invalid user id %q", args[0])
		return nil
	}
	role := models.Role(args[1])
	if !role.Valid() || role == models.RoleGuest {
		log.Printf("Invalid role %q", args[1])
		return nil
	}

	if err := a.admin.ChangeRole(ctx, id, role); err != nil {
		log.Println(userMessage(err))
		return err
	}

	log.Println(a.admin.Notice())
	return nil
}
