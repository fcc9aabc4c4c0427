package bootstrap

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/IRIS-LABS/social-wallat-app-back-end/config"
)

// RunConfig groups dependencies for Run.
type RunConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// Run starts the HTTP server and the handoff sweeper, then blocks until ctx
// is cancelled and everything has shut down.
func Run(ctx context.Context, cfg *RunConfig) error {
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   cfg.Logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Services.Sweepable != nil {
		g.Go(func() error {
			cfg.Services.Sweepable.RunSweeper(gctx, cfg.Config.Auth.HandoffSweepInterval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		// Detach from gctx: it is already cancelled and would abort the
		// shutdown grace period immediately.
		return ShutdownHTTPServer(context.WithoutCancel(gctx), server, cfg.Logger)
	})

	return g.Wait()
}
