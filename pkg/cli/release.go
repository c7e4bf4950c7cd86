package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relmake/pkg/cli/config"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/infra/report"
	"github.com/urfave/cli/v3"
)

// env carries the flag-bound configuration shared by all commands
type env struct {
	project config.Project
	github  config.GitHub
	slack   config.Slack
	stdout  io.Writer
}

// releaseAction runs fn against a freshly loaded config and prints the collected results on success
func releaseAction(e *env, newUseCase UseCaseFactory, fn func(ctx context.Context, uc interfaces.ReleaseUseCase, cfg model.Config) ([]*model.Result, error)) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if err := noArgs(c); err != nil {
			return err
		}

		settings, err := config.LoadSettings(e.project.SettingsFile)
		if err != nil {
			return err
		}

		cfg, err := e.project.Load()
		if err != nil {
			return err
		}
		ctxlog.From(ctx).Debug("Loaded project", "version", cfg.Version, "registry", cfg.Registry)

		uc, err := newUseCase(ctx, settings)
		if err != nil {
			return err
		}

		results, err := fn(ctx, uc, cfg)
		if err != nil {
			return err
		}
		if len(results) > 0 {
			report.PrintSummary(e.stdout, results)
		}
		return nil
	}
}

func single(r *model.Result, err error) ([]*model.Result, error) {
	if r == nil {
		return nil, err
	}
	return []*model.Result{r}, err
}

func cmdBuild(e *env, f UseCaseFactory) *cli.Command {
	return &cli.Command{
		Name:   "build",
		Usage:  "Build the wheel or the documentation",
		Action: requireSubcommand,
		Commands: []*cli.Command{
			{
				Name:  "wheel",
				Usage: "Clean the build directories and build the wheel",
				Action: releaseAction(e, f, func(ctx context.Context, uc interfaces.ReleaseUseCase, cfg model.Config) ([]*model.Result, error) {
					return single(uc.BuildWheel(ctx, cfg))
				}),
			},
			{
				Name:  "docs",
				Usage: "Regenerate and publish the documentation pages",
				Action: releaseAction(e, f, func(ctx context.Context, uc interfaces.ReleaseUseCase, cfg model.Config) ([]*model.Result, error) {
					return single(uc.BuildDocs(ctx, cfg))
				}),
			},
		},
	}
}

func cmdDeploy(e *env, f UseCaseFactory) *cli.Command {
	return &cli.Command{
		Name:  "deploy",
		Usage: "Push the wheel to the configured registry",
		Action: releaseAction(e, f, func(ctx context.Context, uc interfaces.ReleaseUseCase, cfg model.Config) ([]*model.Result, error) {
			return single(uc.Deploy(ctx, cfg))
		}),
	}
}

func cmdTest(e *env, f UseCaseFactory) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Run the test suite",
		Action: releaseAction(e, f, func(ctx context.Context, uc interfaces.ReleaseUseCase, cfg model.Config) ([]*model.Result, error) {
			return nil, uc.Test(ctx, cfg)
		}),
	}
}

func cmdBump(e *env, f UseCaseFactory) *cli.Command {
	return &cli.Command{
		Name:  "bump",
		Usage: "Interactive release: bump version, build, push, docs and git",
		Action: releaseAction(e, f, func(ctx context.Context, uc interfaces.ReleaseUseCase, cfg model.Config) ([]*model.Result, error) {
			return uc.Bump(ctx, cfg)
		}),
	}
}

func cmdGit(e *env, f UseCaseFactory) *cli.Command {
	return &cli.Command{
		Name:  "git",
		Usage: "Run the post-release git commands (not as a new release)",
		Action: releaseAction(e, f, func(ctx context.Context, uc interfaces.ReleaseUseCase, cfg model.Config) ([]*model.Result, error) {
			return uc.Git(ctx, cfg)
		}),
	}
}
