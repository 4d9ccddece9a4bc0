package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heyymateen/CodeSync/internal/app"
	"github.com/heyymateen/CodeSync/internal/config"
	"github.com/heyymateen/CodeSync/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	root := &cobra.Command{
		Use:           "codesync-server",
		Short:         "Realtime collaborative code editor server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := log.New(overrides.LogLevel)

			cfg, path, err := config.Load(bootLog, configPath)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(overrides)

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("addr", cfg.Addr).Str("config", path).Msg("starting codesync server")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.New(cfg, logger).Run(ctx); err != nil {
				logger.Error().Err(err).Msg("server exited with error")
				return err
			}

			logger.Info().Msg("server stopped")
			return nil
		},
	}

	serve.Flags().StringVar(&configPath, "config", "", "path to config file")
	serve.Flags().StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	serve.Flags().StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	serve.Flags().StringVar(&overrides.ExecBaseURL, "exec-base-url", "", "base URL of the Piston execution service")

	root.AddCommand(serve)
	return root
}
