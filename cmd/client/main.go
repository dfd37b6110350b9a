package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/agrilink/internal/buildinfo"
	"github.com/dmitrijs2005/agrilink/internal/client/cli"
	"github.com/dmitrijs2005/agrilink/internal/client/config"
	"github.com/dmitrijs2005/agrilink/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextSlogLogger(os.Stderr, cfg.Debug)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "client stopped", "error", err)
	}
}
