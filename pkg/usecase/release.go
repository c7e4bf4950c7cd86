package usecase

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/domain/types"
)

// Deps holds the collaborators the release workflow delegates to
type Deps struct {
	Prompter  interfaces.Prompter
	Wheel     interfaces.WheelBuilder
	Docs      interfaces.DocGenerator
	Tests     interfaces.TestRunner
	Bumper    interfaces.VersionBumper
	Git       interfaces.GitSequencer
	Notifier  interfaces.Notifier // optional
	DocsPaths model.DocsSettings
}

type releaseUseCase struct {
	deps Deps
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(deps Deps) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		deps: deps,
	}
}

// BuildWheel always cleans before building
func (uc *releaseUseCase) BuildWheel(ctx context.Context, cfg model.Config) (*model.Result, error) {
	result, err := uc.deps.Wheel.Build(ctx, true)
	if err != nil {
		return nil, goerr.Wrap(err, "build wheel failed", goerr.V("version", cfg.Version))
	}
	return result, nil
}

var warning = color.New(color.FgRed).SprintFunc()

// BuildDocs asks for confirmation, generates the docs and publishes them
func (uc *releaseUseCase) BuildDocs(ctx context.Context, cfg model.Config) (*model.Result, error) {
	q := warning("WARNING") + "\n" +
		"Documentation changes and code changes should use separate commits.\n" +
		"Only proceed if there are no uncommitted code changes.\n\n" +
		"Do you want to build the documentation pages?"

	ok, err := uc.deps.Prompter.Confirm(ctx, q, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		ctxlog.From(ctx).Debug("Documentation build declined")
		return nil, nil
	}

	if err := uc.deps.Docs.Generate(ctx); err != nil {
		return nil, goerr.Wrap(err, "build docs failed")
	}

	published, err := PublishDocs(ctx, uc.deps.DocsPaths)
	if err != nil {
		return nil, err
	}

	result := model.NewResult("build docs")
	if published == 0 {
		result.Value = "no generated pages"
	} else {
		result.Value = fmt.Sprintf("%d pages published to %s", published, uc.deps.DocsPaths.PublishDir)
	}
	return result, nil
}

// Deploy pushes the package to the configured registry
func (uc *releaseUseCase) Deploy(ctx context.Context, cfg model.Config) (*model.Result, error) {
	result, err := uc.deps.Wheel.Push(ctx, true, cfg.Registry)
	if err != nil {
		return nil, goerr.Wrap(err, "deploy failed", goerr.V("registry", cfg.Registry))
	}
	return result, nil
}

// Test runs the test suite. There is no result to collect.
func (uc *releaseUseCase) Test(ctx context.Context, cfg model.Config) error {
	if err := uc.deps.Tests.Run(ctx); err != nil {
		return goerr.Wrap(err, "test failed")
	}
	return nil
}

// Git runs the git sequence outside of a bump, which is never a new release
func (uc *releaseUseCase) Git(ctx context.Context, cfg model.Config) ([]*model.Result, error) {
	results, err := uc.deps.Git.BumpGit(ctx, cfg.Version, false)
	if err != nil {
		return results, goerr.Wrap(err, "git sequence failed")
	}
	return results, nil
}

// Bump runs the interactive release workflow. Each gate defaults to no.
func (uc *releaseUseCase) Bump(ctx context.Context, cfg model.Config) ([]*model.Result, error) {
	logger := ctxlog.From(ctx)
	loaded := cfg
	var results []*model.Result

	ok, err := uc.deps.Prompter.Confirm(ctx, "Do you want to BUMP VERSION number?", false)
	if err != nil {
		return results, err
	}
	if ok {
		result, err := uc.deps.Bumper.BumpVersion(ctx)
		if err != nil {
			return results, goerr.Wrap(err, "bump version failed")
		}
		cfg = cfg.WithVersion(result.Value)
		results = append(results, result)
	}

	ok, err = uc.deps.Prompter.Confirm(ctx, "Do you want to BUILD WHEEL?", false)
	if err != nil {
		return results, err
	}
	if ok {
		result, err := uc.BuildWheel(ctx, cfg)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	ok, err = uc.deps.Prompter.Confirm(ctx, fmt.Sprintf("Do you want to PUSH WHEEL to %s?", registryLabel(cfg.Registry)), false)
	if err != nil {
		return results, err
	}
	if ok {
		result, err := uc.Deploy(ctx, cfg)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	ok, err = uc.deps.Prompter.Confirm(ctx, "Do you want to BUILD DOCUMENTATION PAGES?", false)
	if err != nil {
		return results, err
	}
	if ok {
		result, err := uc.BuildDocs(ctx, cfg)
		if err != nil {
			return results, err
		}
		if result != nil {
			results = append(results, result)
		}
	}

	newRelease := cfg.Version != loaded.Version
	logger.Debug("Release state", "version", cfg.Version, "loaded_version", loaded.Version, "new_release", newRelease)

	ok, err = uc.deps.Prompter.Confirm(ctx, "Do you want to RUN GIT COMMANDS?", false)
	if err != nil {
		return results, err
	}
	if !ok {
		return results, nil
	}

	gitResults, err := uc.deps.Git.BumpGit(ctx, cfg.Version, newRelease)
	results = append(results, gitResults...)
	if err != nil {
		return results, goerr.Wrap(err, "git sequence failed")
	}

	if newRelease && uc.deps.Notifier != nil {
		result, err := uc.deps.Notifier.NotifyRelease(ctx, cfg.Version)
		if err != nil {
			return results, goerr.Wrap(err, "release notification failed")
		}
		results = append(results, result)
	}

	return results, nil
}

func registryLabel(r types.Registry) string {
	switch r {
	case types.RegistryPyPI:
		return "PYPI"
	case types.RegistryTestPyPI:
		return "TESTPYPI"
	default:
		return string(r)
	}
}
