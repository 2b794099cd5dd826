package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/ngwp/pkg/config"
	"github.com/mchmarny/ngwp/pkg/logger"
	"github.com/mchmarny/ngwp/pkg/server"
	"github.com/mchmarny/ngwp/pkg/site"
	"github.com/mchmarny/ngwp/pkg/widget"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Run loads the site snapshot and serves the REST routes until ctx is canceled.
// SIGHUP reloads the snapshot.
func Run(ctx context.Context, cfg *config.Config, info BuildInfo) error {
	logger.SetDefaultLoggerWithFormat("ngwp", info.Version, cfg.Log.Level, cfg.Log.Format)
	slog.Info("starting ngwp", "commit", info.Commit, "date", info.Date, "data", cfg.Data.Path)

	store, err := site.Open(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("failed to open site data: %w", err)
	}

	renderer, err := widget.NewTemplateRenderer(cfg.Widget.Templates)
	if err != nil {
		return fmt.Errorf("failed to load widget templates: %w", err)
	}

	reg := prometheus.NewRegistry()
	srv := server.New(serverOptions(cfg, reg, store, NewHandler(store, cfg.Server.BaseURL, renderer, reg))...)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(gCtx)
	})

	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		reloadLoop(gCtx, hup, store)
		return nil
	})

	return g.Wait()
}

func serverOptions(cfg *config.Config, reg *prometheus.Registry, ready server.ReadinessChecker, h *Handler) []server.Option {
	opts := []server.Option{
		server.WithPort(cfg.Server.Port),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithIdleTimeout(cfg.Server.IdleTimeout),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithMaxHeaderBytes(cfg.Server.MaxHeaderBytes),
		server.WithErrorLog(logger.NewLogLogger(logger.ParseLogLevel(cfg.Log.Level))),
		server.WithRegistry(reg),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
		server.WithReadiness(ready),
		server.WithCORS(cfg.Security.CORSOrigins),
		server.WithRoutes(h.Routes),
	}

	if !cfg.Security.RateLimitDisabled {
		opts = append(opts, server.WithRateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow))
	}

	if cfg.Server.TLSEnabled() {
		opts = append(opts, server.WithTLS(server.TLSConfig{
			CertFile: cfg.Server.TLSCertFile,
			KeyFile:  cfg.Server.TLSKeyFile,
		}))
	}

	return opts
}

type reloader interface {
	Reload() error
}

// reloadLoop reloads r on every signal until ctx is done.
func reloadLoop(ctx context.Context, sig <-chan os.Signal, r reloader) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := r.Reload(); err != nil {
				slog.Error("site reload failed, keeping previous snapshot", "error", err)
				continue
			}
			slog.Info("site reloaded")
		}
	}
}
