package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/agrilink/internal/buildinfo"
	"github.com/dmitrijs2005/agrilink/internal/logging"
	"github.com/dmitrijs2005/agrilink/internal/shell"
	"github.com/dmitrijs2005/agrilink/internal/shell/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	zl, err := logging.NewRotatingZap(cfg.LogDir, "shell.log", cfg.Debug)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	logger := logging.NewZapLogger(zl)

	app, err := shell.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "shell init failed", "error", err)
		return
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "shell stopped", "error", err)
	}
}
