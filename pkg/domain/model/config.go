package model

import "github.com/m-mizutani/relmake/pkg/domain/types"

// Config holds per-invocation project configuration
type Config struct {
	Version  string         // Project version as read from metadata
	Registry types.Registry // Registry that receives pushed wheels
}

// WithVersion returns a copy of the config carrying a new version
func (c Config) WithVersion(version string) Config {
	c.Version = version
	return c
}
