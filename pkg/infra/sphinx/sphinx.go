package sphinx

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

// Generator renders documentation by running the doc tool in its source directory
type Generator struct {
	runner   interfaces.CommandRunner
	settings model.DocsSettings
}

var _ interfaces.DocGenerator = (*Generator)(nil)

// NewGenerator creates a new documentation Generator
func NewGenerator(runner interfaces.CommandRunner, settings model.DocsSettings) *Generator {
	return &Generator{
		runner:   runner,
		settings: settings,
	}
}

// Generate runs the documentation build
func (g *Generator) Generate(ctx context.Context) error {
	cmd := model.NewCommand(g.settings.Command).InDir(g.settings.SourceDir)
	ctxlog.From(ctx).Info("Generating documentation", "command", cmd.String(), "dir", cmd.Dir)

	if _, err := g.runner.Run(ctx, cmd); err != nil {
		return goerr.Wrap(err, "failed to generate documentation", goerr.V("source_dir", g.settings.SourceDir))
	}
	return nil
}
