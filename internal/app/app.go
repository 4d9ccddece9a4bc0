package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/heyymateen/CodeSync/internal/config"
	"github.com/heyymateen/CodeSync/internal/core"
	"github.com/heyymateen/CodeSync/internal/exec/piston"
	"github.com/heyymateen/CodeSync/internal/keepalive"
	transporthttp "github.com/heyymateen/CodeSync/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	pinger          *keepalive.Pinger
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	runner := piston.New(cfg.ExecBaseURL, cfg.ExecTimeout, logger)
	hub := core.NewHub(core.NewRegistry(), runner, logger)
	server := transporthttp.NewServer(hub, cfg, logger)
	pinger := keepalive.New(cfg.KeepAliveURL, cfg.KeepAliveInterval, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		pinger:          pinger,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)
	go a.pinger.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
