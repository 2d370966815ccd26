package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"taskboard/internal/api"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/services"
)

// ShutdownWaiter blocks until the process is asked to stop, runs ops and
// returns the exit code.
type ShutdownWaiter func(ctx context.Context, timeout time.Duration, ops map[string]gfshutdown.Operation) int

// waitForSignal waits for SIGINT or SIGTERM.
func waitForSignal(ctx context.Context, timeout time.Duration, ops map[string]gfshutdown.Operation) int {
	return <-gfshutdown.GracefulShutdown(ctx, timeout, ops)
}

// ServeCommand runs the HTTP API until interrupted
type ServeCommand struct {
	*App
	wait ShutdownWaiter
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{
		App:  app,
		wait: waitForSignal,
	}
}

// Execute opens the store, starts the server and blocks until shutdown
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	cfg := c.Config

	logger, logCloser, err := c.Logger(c.Stderr)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logCloser.Close()

	repo, err := config.CreateRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}

	tasks := services.NewTaskService(repo, services.Timeouts{
		Query: cfg.GetQueryTimeout(),
		Write: cfg.GetWriteTimeout(),
	})
	opts := api.Options{
		AllowOrigins:  cfg.Server.AllowOrigins,
		HealthTimeout: cfg.GetQueryTimeout(),
	}
	if cached, ok := repo.(*cache.CachedRepository); ok {
		opts.Checks = map[string]func(context.Context) error{"cache": cached.PingCache}
	}
	server := api.New(tasks, logger, opts)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		repo.Close()
		return fmt.Errorf("create application: %w", err)
	}
	app.Register(api.NewModule(server, cfg.Server.Addr))

	if err := app.Start(ctx); err != nil {
		// Start may have brought up part of the framework before failing.
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return fmt.Errorf("start application: %w", stderrors.Join(err, app.Stop(stopCtx), repo.Close()))
	}

	logger.Info("taskboard API ready", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver, "cache", cfg.CacheEnabled())

	exitCode := c.wait(context.Background(), cfg.Server.ShutdownTimeout, map[string]gfshutdown.Operation{
		"mono-app": func(ctx context.Context) error {
			logger.Info("graceful shutdown initiated")
			if cached, ok := repo.(*cache.CachedRepository); ok {
				stats := cached.Stats()
				logger.Info("cache stats", "hits", stats.Hits, "misses", stats.Misses, "hit_rate", stats.HitRate)
			}
			return stderrors.Join(app.Stop(ctx), repo.Close())
		},
	})
	if exitCode != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", exitCode)
	}

	logger.Info("taskboard API stopped")
	return nil
}
