package interfaces

import (
	"context"

	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/domain/types"
)

// CommandRunner executes subprocesses
type CommandRunner interface {
	// Run executes cmd and returns an error if it exits non-zero
	Run(ctx context.Context, cmd model.Command) (*model.CommandOutput, error)
}

// Prompter asks the user questions on the terminal
type Prompter interface {
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
	Select(ctx context.Context, question string, options []string, defaultIndex int) (int, error)
	Input(ctx context.Context, question string, defaultValue string) (string, error)
}

// WheelBuilder builds and pushes the distributable package
type WheelBuilder interface {
	Build(ctx context.Context, cleanDir bool) (*model.Result, error)
	Push(ctx context.Context, cleanDir bool, registry types.Registry) (*model.Result, error)
}

// DocGenerator renders the documentation site into its build directory
type DocGenerator interface {
	Generate(ctx context.Context) error
}

// TestRunner runs the project's test suite
type TestRunner interface {
	Run(ctx context.Context) error
}

// VersionBumper computes and stores the next project version.
// The returned result carries the new version in Value.
type VersionBumper interface {
	BumpVersion(ctx context.Context) (*model.Result, error)
}

// GitSequencer runs the standard post-bump git commands
type GitSequencer interface {
	BumpGit(ctx context.Context, version string, newRelease bool) ([]*model.Result, error)
}
