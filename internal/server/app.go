// Package server initializes and runs the DataCleaner API server. It wires
// the database, object storage and HTTP endpoint, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/datacleaner-ai/datacleaner/internal/logging"
	"github.com/datacleaner-ai/datacleaner/internal/server/config"
	"github.com/datacleaner-ai/datacleaner/internal/server/db"
	"github.com/datacleaner-ai/datacleaner/internal/server/rest"
	"github.com/datacleaner-ai/datacleaner/internal/server/services"
	"github.com/datacleaner-ai/datacleaner/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *rest.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON()

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := storage.NewS3Store(context.Background(), c)
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	userService := services.NewUserService(rm.Users(), c)
	imageService := services.NewImageService(rm.Images(), rm.Users(), store, services.PassthroughProcessor{})

	server := rest.NewServer(c.EndpointAddr, c.SecretKey, logger, userService, imageService)

	return &App{config: c, logger: logger, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
