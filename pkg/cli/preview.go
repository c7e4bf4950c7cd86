package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/cli/config"
	controller "github.com/m-mizutani/relmake/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

func cmdPreview(e *env) *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "preview",
		Aliases: []string{"p"},
		Usage:   "Serve the published documentation locally",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			if err := noArgs(c); err != nil {
				return err
			}

			settings, err := config.LoadSettings(e.project.SettingsFile)
			if err != nil {
				return err
			}
			if _, err := os.Stat(settings.Docs.PublishDir); err != nil {
				return goerr.Wrap(err, "publish directory not found, run `build docs` first",
					goerr.V("publish_dir", settings.Docs.PublishDir))
			}

			server, err := controller.NewServer(
				ctx,
				settings.Docs.PublishDir,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create preview server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Preview server starting",
					slog.String("addr", serverCfg.Addr),
					slog.String("root", settings.Docs.PublishDir),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case err := <-errCh:
				return goerr.Wrap(err, "preview server failed")
			}

			// ctx may already be cancelled
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Preview server stopped")
			return nil
		},
	}
}
