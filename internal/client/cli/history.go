package cli

import (
	"context"
	"log"
)

// History refreshes and prints the viewer's artifact list. The refresh runs
// on navigation into the view; the server scopes the list by role (admins
// see every user's artifacts).
func (a *App) History(ctx context.Context) error {
	if !a.guard("history", allRoles...) {
		return nil
	}

	if err := a.history.Refresh(ctx); err != nil {
		log.Println(userMessage(err))
		return err
	}

	artifacts := a.history.Artifacts()
	if len(artifacts) == 0 {
		log.Println("No uploaded images yet")
		return nil
	}

	for _, art := range artifacts {
		status := "stored"
		if art.Processed {
			status = "processed"
		}
		log.Printf("#%d  %-30s  %s  %s", art.ID, art.OriginalName, status, art.CreatedAt)
	}
	return nil
}
