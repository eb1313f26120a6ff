// Package cli implements the interactive DataCleaner client: a small REPL
// over the application services, with role-gated command surfaces.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/datacleaner-ai/datacleaner/internal/client/api"
	"github.com/datacleaner-ai/datacleaner/internal/client/config"
	"github.com/datacleaner-ai/datacleaner/internal/client/models"
	"github.com/datacleaner-ai/datacleaner/internal/client/services"
	"github.com/datacleaner-ai/datacleaner/internal/client/session"
)

type App struct {
	config     *config.Config
	client     api.Client
	store      *session.Store
	gateway    *services.AuthGateway
	submission *services.SubmissionController
	history    *services.HistorySynchronizer
	admin      *services.AdminRoleEditor
	reader     *bufio.Reader
	mode       models.ProcessMode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := session.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		log.Printf("error initializing state database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	store := session.NewStore(db, apiClient)

	history := services.NewHistorySynchronizer(apiClient, store)

	return &App{
		config:     c,
		client:     apiClient,
		store:      store,
		gateway:    services.NewAuthGateway(apiClient),
		submission: services.NewSubmissionController(apiClient, store, history),
		history:    history,
		admin:      services.NewAdminRoleEditor(apiClient, store, nil),
		reader:     bufio.NewReader(os.Stdin),
		mode:       models.ModeBlur,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.client.Close() }()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.store.Current() != nil
}

// guard re-evaluates the capability predicate on every navigation. A denied
// view redirects: to authentication when there is no session, otherwise back
// to the default view.
func (a *App) guard(view string, allowed ...models.Role) bool {
	sess := a.store.Current()
	if services.CanAccess(sess, allowed...) {
		return true
	}
	if sess == nil {
		log.Println("Please log in first (command: login)")
	} else {
		log.Printf("Access to %s denied for role %q", view, sess.Profile.Role)
	}
	return false
}
