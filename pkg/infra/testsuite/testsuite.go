package testsuite

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

// Runner runs the project's test suite as a subprocess
type Runner struct {
	runner   interfaces.CommandRunner
	settings model.TestSettings
}

var _ interfaces.TestRunner = (*Runner)(nil)

// NewRunner creates a new test suite Runner
func NewRunner(runner interfaces.CommandRunner, settings model.TestSettings) *Runner {
	return &Runner{
		runner:   runner,
		settings: settings,
	}
}

// Run executes the test command. Output is streamed, not captured.
func (r *Runner) Run(ctx context.Context) error {
	cmd := model.NewCommand(r.settings.Command)
	ctxlog.From(ctx).Info("Running test suite", "command", cmd.String())

	if _, err := r.runner.Run(ctx, cmd); err != nil {
		return goerr.Wrap(err, "test suite failed")
	}
	return nil
}
