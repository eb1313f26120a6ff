package main

import (
	"context"
	"log"
	"os"

	"github.com/datacleaner-ai/datacleaner/internal/buildinfo"
	"github.com/datacleaner-ai/datacleaner/internal/client/cli"
	"github.com/datacleaner-ai/datacleaner/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
