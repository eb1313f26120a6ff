package main

import (
	"context"
	"log"

	"github.com/datacleaner-ai/datacleaner/internal/server"
	"github.com/datacleaner-ai/datacleaner/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
