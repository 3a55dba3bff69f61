package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/workyard-lab/workyard/pkg/cli/config"
	httpctrl "github.com/workyard-lab/workyard/pkg/controller/http"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/service/worker"
	"github.com/workyard-lab/workyard/pkg/usecase"
	"github.com/workyard-lab/workyard/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var sweepInterval time.Duration
	var sessionMaxAge time.Duration
	var orgCfg config.Org
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("WORKYARD_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL for notification deep links (e.g., https://workyard.example.com)",
			Sources:     cli.EnvVars("WORKYARD_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.DurationFlag{
			Name:        "session-sweep-interval",
			Usage:       "How often to sweep for forgotten time sessions",
			Value:       worker.DefaultSweepInterval,
			Sources:     cli.EnvVars("WORKYARD_SESSION_SWEEP_INTERVAL"),
			Destination: &sweepInterval,
		},
		&cli.DurationFlag{
			Name:        "session-max-age",
			Usage:       "How long a time session may stay open before force-close",
			Value:       worker.DefaultMaxSessionAge,
			Sources:     cli.EnvVars("WORKYARD_SESSION_MAX_AGE"),
			Destination: &sessionMaxAge,
		},
	}

	// Add shared config flags
	flags = append(flags, orgCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := orgCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load org configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Sync directory from config (replace strategy)
			if err := cfg.Sync(ctx, repo); err != nil {
				return goerr.Wrap(err, "failed to sync org directory")
			}

			notifier, err := slackCfg.Configure(repo)
			if err != nil {
				return goerr.Wrap(err, "failed to configure notifications")
			}

			uc := usecase.New(repo,
				usecase.WithNotifier(notifier),
				usecase.WithBaseURL(baseURL),
				usecase.WithWorkTypes(cfg.WorkTypeIDs()),
			)

			sweeper := worker.NewSessionSweepWorker(repo,
				[]types.OrgID{cfg.OrgID()}, sweepInterval, sessionMaxAge)
			if err := sweeper.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start session sweep worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "org_id", cfg.ID)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				sweeper.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
