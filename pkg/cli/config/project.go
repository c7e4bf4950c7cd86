package config

import (
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/domain/types"
	"github.com/m-mizutani/relmake/pkg/infra/project"
	"github.com/urfave/cli/v3"
)

// Project holds the location of project metadata and the target registry
type Project struct {
	File         string
	SettingsFile string
	Registry     string
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project-file",
			Usage:       "Project metadata file (YAML) holding the version",
			Value:       "Project",
			Destination: &c.File,
			Sources:     cli.EnvVars("RELMAKE_PROJECT_FILE"),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "relmake settings file (TOML); defaults apply if it does not exist",
			Value:       "relmake.toml",
			Destination: &c.SettingsFile,
			Sources:     cli.EnvVars("RELMAKE_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "registry",
			Usage:       "Registry to push wheels to",
			Value:       string(types.RegistryPyPI),
			Destination: &c.Registry,
			Sources:     cli.EnvVars("RELMAKE_REGISTRY"),
		},
	}
}

// Load reads the project version and builds the invocation config
func (c *Project) Load() (model.Config, error) {
	version, err := project.LoadVersion(c.File)
	if err != nil {
		return model.Config{}, err
	}
	return model.Config{
		Version:  version,
		Registry: types.Registry(c.Registry),
	}, nil
}
