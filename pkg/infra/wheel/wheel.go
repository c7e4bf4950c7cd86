package wheel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/domain/types"
)

// ErrEmptyDist is returned when there is nothing to push
var ErrEmptyDist = errors.New("no distribution files to push")

// Builder builds and pushes wheels through external packaging tools
type Builder struct {
	runner   interfaces.CommandRunner
	settings model.WheelSettings
}

var _ interfaces.WheelBuilder = (*Builder)(nil)

// NewBuilder creates a new wheel Builder
func NewBuilder(runner interfaces.CommandRunner, settings model.WheelSettings) *Builder {
	return &Builder{
		runner:   runner,
		settings: settings,
	}
}

// Build builds the package, removing previous build output first if cleanDir is set
func (b *Builder) Build(ctx context.Context, cleanDir bool) (*model.Result, error) {
	logger := ctxlog.From(ctx)

	if cleanDir {
		if err := b.clean(ctx); err != nil {
			return nil, err
		}
	}

	cmd := model.NewCommand(b.settings.BuildCommand)
	logger.Info("Building wheel", "command", cmd.String())

	out, err := b.runner.Run(ctx, cmd)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build wheel")
	}

	files, err := b.distFiles()
	if err != nil {
		return nil, err
	}
	logger.Info("Built wheel", "files", files)

	return &model.Result{
		Name:   "build wheel",
		Status: types.StatusOK,
		Code:   out.Code,
		Output: out.Stdout,
	}, nil
}

// Push uploads the dist files to registry. With cleanDir the package is rebuilt from scratch first.
func (b *Builder) Push(ctx context.Context, cleanDir bool, registry types.Registry) (*model.Result, error) {
	logger := ctxlog.From(ctx)

	if cleanDir {
		if _, err := b.Build(ctx, true); err != nil {
			return nil, goerr.Wrap(err, "failed to rebuild wheel before push")
		}
	}

	files, err := b.distFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, goerr.Wrap(ErrEmptyDist, "nothing to push", goerr.V("dist_dir", b.settings.DistDir))
	}

	args := append([]string{"--repository", registry.String()}, files...)
	cmd := model.NewCommand(b.settings.PushCommand, args...)
	logger.Info("Pushing wheel", "registry", registry, "files", files)

	out, err := b.runner.Run(ctx, cmd)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to push wheel", goerr.V("registry", registry))
	}

	return &model.Result{
		Name:   "push wheel to " + registry.String(),
		Status: types.StatusOK,
		Code:   out.Code,
		Output: out.Stdout,
	}, nil
}

func (b *Builder) clean(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	for _, dir := range b.settings.CleanDirs {
		logger.Debug("Removing build directory", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return goerr.Wrap(err, "failed to clean build directory", goerr.V("dir", dir))
		}
	}
	return nil
}

func (b *Builder) distFiles() ([]string, error) {
	entries, err := os.ReadDir(b.settings.DistDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read dist directory", goerr.V("dist_dir", b.settings.DistDir))
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(b.settings.DistDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
