package main

import (
	"log/slog"
	"os"

	"github.com/odyssey-erp/stackchart/cmd/stackchart/cli"
	"github.com/odyssey-erp/stackchart/internal/app"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, os.Stderr)

	if err := cli.NewRootCommand(cfg, logger).Execute(); err != nil {
		logger.Error("stackchart", slog.Any("error", err))
		os.Exit(1)
	}
}
