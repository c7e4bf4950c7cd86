package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
)

// LoadSettings reads tool settings from a TOML file. A missing file yields
// the defaults; keys present in the file override them.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, goerr.Wrap(err, "failed to read settings file", goerr.V("path", path))
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		return settings, goerr.Wrap(err, "failed to parse settings file", goerr.V("path", path))
	}

	if len(settings.Wheel.BuildCommand) == 0 || len(settings.Wheel.PushCommand) == 0 ||
		len(settings.Docs.Command) == 0 || len(settings.Test.Command) == 0 {
		return settings, goerr.New("commands must not be empty", goerr.V("path", path))
	}
	return settings, nil
}
