package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/infra/git"
	githubinfra "github.com/m-mizutani/relmake/pkg/infra/github"
	"github.com/m-mizutani/relmake/pkg/infra/project"
	"github.com/m-mizutani/relmake/pkg/infra/prompt"
	"github.com/m-mizutani/relmake/pkg/infra/shell"
	"github.com/m-mizutani/relmake/pkg/infra/slack"
	"github.com/m-mizutani/relmake/pkg/infra/sphinx"
	"github.com/m-mizutani/relmake/pkg/infra/testsuite"
	"github.com/m-mizutani/relmake/pkg/infra/wheel"
	"github.com/m-mizutani/relmake/pkg/usecase"
)

// UseCaseFactory builds the release use case for one invocation
type UseCaseFactory func(ctx context.Context, settings model.Settings) (interfaces.ReleaseUseCase, error)

func newReleaseUseCase(ctx context.Context, e *env, settings model.Settings) (interfaces.ReleaseUseCase, error) {
	runner := shell.NewRunner()
	prompter := prompt.NewTerminal(prompt.WithOutput(e.stdout))

	var gitOpts []git.Option
	if e.github.Enabled() {
		var ghOpts []githubinfra.Option
		if e.github.BaseURL != "" {
			ghOpts = append(ghOpts, githubinfra.WithBaseURL(e.github.BaseURL))
		}
		publisher, err := githubinfra.NewClient(e.github.Token, e.github.Repository, ghOpts...)
		if err != nil {
			return nil, err
		}
		gitOpts = append(gitOpts, git.WithPublisher(publisher))
	}

	deps := usecase.Deps{
		Prompter:  prompter,
		Wheel:     wheel.NewBuilder(runner, settings.Wheel),
		Docs:      sphinx.NewGenerator(runner, settings.Docs),
		Tests:     testsuite.NewRunner(runner, settings.Test),
		Bumper:    project.NewBumper(e.project.File, prompter),
		Git:       git.NewSequencer(runner, prompter, settings.Git, gitOpts...),
		DocsPaths: settings.Docs,
	}

	if e.slack.WebhookURL != "" {
		name, err := projectName(e.project.File)
		if err != nil {
			return nil, err
		}
		deps.Notifier = slack.NewNotifier(e.slack.WebhookURL, name)
	}

	return usecase.NewRelease(deps), nil
}

// projectName prefers the name in the metadata file and falls back to the working directory name
func projectName(projectFile string) (string, error) {
	name, err := project.LoadName(projectFile)
	if err != nil {
		return "", err
	}
	if name != "" {
		return name, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Base(wd), nil
}
