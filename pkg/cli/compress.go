package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/cli/config"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/infra/archive"
	"github.com/m-mizutani/imgpress/pkg/infra/webp"
	"github.com/m-mizutani/imgpress/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdCompress() *cli.Command {
	var (
		compressionCfg config.Compression
		storageCfg     config.Storage
		sentryCfg      config.Sentry
		slackCfg       config.Slack
		withArchive    bool
		archiveOnly    bool
	)

	var flags []cli.Flag
	flags = append(flags, compressionCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:        "archive",
			Aliases:     []string{"z"},
			Usage:       "Also export all compressed files as " + model.ArchiveName,
			Destination: &withArchive,
			Sources:     cli.EnvVars("IMGPRESS_ARCHIVE"),
		},
		&cli.BoolFlag{
			Name:        "archive-only",
			Usage:       "Export only " + model.ArchiveName + ", not the individual files",
			Destination: &archiveOnly,
			Sources:     cli.EnvVars("IMGPRESS_ARCHIVE_ONLY"),
		},
	)

	return &cli.Command{
		Name:      "compress",
		Aliases:   []string{"c"},
		Usage:     "Compress image files (or directories of images) to WebP",
		ArgsUsage: "FILE|DIR...",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			paths := c.Args().Slice()
			if len(paths) == 0 {
				return goerr.New("no input files given", goerr.T(model.ErrTagInvalidInput))
			}

			compression, err := compressionCfg.Configure(c)
			if err != nil {
				return err
			}

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			exporters, cleanup, err := storageCfg.Exporters(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			files, err := usecase.LoadFiles(ctx, paths)
			if err != nil {
				return err
			}

			workflowUC := usecase.NewWorkflow(
				webp.NewEncoder(),
				archive.NewZip(),
				usecase.WithConfig(compression),
				usecase.WithNotifier(slackCfg.Notifier()),
			)
			defer workflowUC.Wait()

			state, err := workflowUC.Compress(ctx, files)
			if err != nil {
				writeFailure(os.Stderr, workflowUC.State().Error)
				return err
			}

			writeReport(os.Stdout, state)
			if state.Error != "" {
				writeFailure(os.Stderr, state.Error)
			}

			if len(exporters) == 0 {
				logger.Warn("No output destination configured, compressed files are not saved",
					slog.Int("files", len(state.Results)))
				return nil
			}

			opts := model.ExportOptions{
				Files:   !archiveOnly,
				Archive: withArchive || archiveOnly,
			}
			for _, exporter := range exporters {
				if err := workflowUC.Export(ctx, exporter, opts); err != nil {
					if goerr.HasTag(err, model.ErrTagArchive) {
						writeFailure(os.Stderr, model.MsgArchiveFailed)
					}
					return err
				}
			}

			logger.Info("Exported compressed files",
				slog.String("batch_id", state.BatchID),
				slog.Int("files", len(state.Results)),
				slog.Bool("archive", opts.Archive),
				slog.Int("destinations", len(exporters)),
			)
			return nil
		},
	}
}
