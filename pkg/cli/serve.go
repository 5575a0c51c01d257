package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/cli/config"
	controller "github.com/m-mizutani/imgpress/pkg/controller/http"
	"github.com/m-mizutani/imgpress/pkg/infra/archive"
	"github.com/m-mizutani/imgpress/pkg/infra/webp"
	"github.com/m-mizutani/imgpress/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg      config.Server
		compressionCfg config.Compression
		sentryCfg      config.Sentry
		slackCfg       config.Slack
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, compressionCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			compression, err := compressionCfg.Configure(c)
			if err != nil {
				return err
			}

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			logger.Info("Starting imgpress server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("compression", compression),
				slog.Bool("sentry", sentryCfg.Enabled()),
				slog.Any("slack", slackCfg),
			)

			workflowUC := usecase.NewWorkflow(
				webp.NewEncoder(),
				archive.NewZip(),
				usecase.WithConfig(compression),
				usecase.WithNotifier(slackCfg.Notifier()),
			)
			defer workflowUC.Wait()

			opts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
				controller.WithMaxUploadSize(serverCfg.MaxUploadSize()),
			}
			if sentryCfg.Enabled() {
				opts = append(opts, controller.WithSentry())
			}

			server, err := controller.NewServer(ctx, workflowUC, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
