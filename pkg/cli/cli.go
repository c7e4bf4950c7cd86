package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/cli/config"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// AbortMessage is printed once when the user interrupts a run
const AbortMessage = "\n\nScript aborted by user."

// ErrUsage is returned when the arguments do not match the command grammar
var ErrUsage = errors.New("invalid usage")

// requireSubcommand is the action of commands that only group subcommands
func requireSubcommand(ctx context.Context, c *cli.Command) error {
	_ = cli.ShowSubcommandHelp(c)
	return goerr.Wrap(ErrUsage, "a subcommand is required", goerr.V("command", c.FullName()))
}

// noArgs rejects positional arguments on commands that take none
func noArgs(c *cli.Command) error {
	if c.Args().Len() > 0 {
		_ = cli.ShowSubcommandHelp(c)
		return goerr.Wrap(ErrUsage, "unexpected arguments",
			goerr.V("command", c.FullName()),
			goerr.V("args", c.Args().Slice()))
	}
	return nil
}

type options struct {
	stdout     io.Writer
	logOutput  io.Writer
	newUseCase UseCaseFactory
}

// Option is a functional option for Run
type Option func(*options)

// WithStdout sets where usage, summary and abort messages are written
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithLogOutput sets where logs are written
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}

// WithUseCaseFactory replaces the default collaborator wiring
func WithUseCaseFactory(f UseCaseFactory) Option {
	return func(o *options) {
		o.newUseCase = f
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	o := &options{
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	var (
		loggerCfg = config.Logger{Output: o.logOutput}
		sentryCfg config.Sentry
		logger    *slog.Logger
	)
	e := &env{stdout: o.stdout}

	newUseCase := o.newUseCase
	if newUseCase == nil {
		newUseCase = func(ctx context.Context, settings model.Settings) (interfaces.ReleaseUseCase, error) {
			return newReleaseUseCase(ctx, e, settings)
		}
	}

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, e.project.Flags()...)
	flags = append(flags, e.github.Flags()...)
	flags = append(flags, e.slack.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "relmake",
		Usage:   "Build, publish and tag releases of a Python project",
		Version: types.Version,
		Flags:   flags,
		Writer:  o.stdout,
		Action:  requireSubcommand,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			logger = logger.With("run_id", uuid.NewString())

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdBuild(e, newUseCase),
			cmdDeploy(e, newUseCase),
			cmdTest(e, newUseCase),
			cmdBump(e, newUseCase),
			cmdGit(e, newUseCase),
			cmdPreview(e),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(o.stdout, AbortMessage)
			return err
		}

		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))

		if sentryCfg.DSN != "" {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
		}
		return err
	}

	return nil
}
