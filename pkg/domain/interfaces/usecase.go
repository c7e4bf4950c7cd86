package interfaces

import (
	"context"

	"github.com/m-mizutani/relmake/pkg/domain/model"
)

// ReleaseUseCase defines the operations reachable from the command line
type ReleaseUseCase interface {
	// BuildWheel cleans the build directories and builds the package
	BuildWheel(ctx context.Context, cfg model.Config) (*model.Result, error)

	// BuildDocs regenerates and publishes documentation. Returns nil result if the user declines.
	BuildDocs(ctx context.Context, cfg model.Config) (*model.Result, error)

	// Deploy pushes the built package to the configured registry
	Deploy(ctx context.Context, cfg model.Config) (*model.Result, error)

	// Test runs the project's test suite
	Test(ctx context.Context, cfg model.Config) error

	// Git runs the post-bump git sequence as a non-release
	Git(ctx context.Context, cfg model.Config) ([]*model.Result, error)

	// Bump runs the interactive release workflow
	Bump(ctx context.Context, cfg model.Config) ([]*model.Result, error)
}
