package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/ngwp/pkg/api"
	"github.com/mchmarny/ngwp/pkg/config"
	"github.com/mchmarny/ngwp/pkg/logger"
)

var (
	version = "v0.0.0"  // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"

	configPath = flag.String("config", "", "Path to the YAML config file")
	port       = flag.Int("port", 0, "Port to run the server on, overrides the config")
	dataPath   = flag.String("data", "", "Path to the site snapshot, overrides the config")
)

func main() {
	flag.Parse()

	// used until the configured logger is installed
	logger.SetDefaultLogger("ngwp", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Run(ctx, cfg, api.BuildInfo{Version: version, Commit: commit, Date: date}); err != nil {
		slog.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}
