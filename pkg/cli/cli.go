package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/DevMountain/dmget/pkg/cli/config"
	"github.com/DevMountain/dmget/pkg/cli/render"
	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/DevMountain/dmget/pkg/domain/types"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

type runConfig struct {
	stdout io.Writer
	stderr io.Writer
}

// Option is a functional option for Run
type Option func(*runConfig)

// WithWriter sets where progress and help are printed
func WithWriter(w io.Writer) Option {
	return func(c *runConfig) {
		c.stdout = w
	}
}

// WithErrWriter sets where errors and logs are printed
func WithErrWriter(w io.Writer) Option {
	return func(c *runConfig) {
		c.stderr = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	cfg := &runConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		loggerCfg    config.Logger
		sentryCfg    config.Sentry
		fileCfg      config.File
		materialsCfg config.Materials
	)
	loggerCfg.Output = cfg.stderr

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	flush := func() {}
	out := render.New(cfg.stdout, cfg.stderr)

	var flags []cli.Flag
	flags = append(flags, materialsCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:      "dmget",
		Usage:     "A CLI helper to download Devmountain exercises, homework, and lecture demos.",
		Version:   types.Version,
		ArgsUsage: "<slug>",
		Flags:     flags,
		Writer:    cfg.stdout,
		ErrWriter: cfg.stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			configured, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			runID := uuid.NewString()
			logger = configured.With("run_id", runID)
			slog.SetDefault(logger)

			flushSentry, err := sentryCfg.Configure(runID)
			if err != nil {
				return nil, err
			}
			flush = flushSentry

			return ctxlog.With(ctx, logger), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return cmdGet(ctx, c, out, &materialsCfg, &fileCfg)
		},
	}

	err := app.Run(ctx, args)
	if err != nil {
		out.Error(err)
		if isMissingSlug(err) {
			out.HelpHint()
		}

		logger.Debug("CLI execution failed",
			slog.String("kind", model.KindOf(err)),
			slog.Any("error", err),
		)
		if !model.IsUserError(err) {
			sentry.CaptureException(err)
		}
	}

	flush()
	return err
}
