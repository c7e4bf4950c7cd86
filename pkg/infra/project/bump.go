package project

import (
	"context"
	"errors"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

// ErrInvalidVersion is returned for versions that are not semantic versions
var ErrInvalidVersion = errors.New("invalid semantic version")

// Part names the version component to increment
type Part string

const (
	PartPatch  Part = "patch"
	PartMinor  Part = "minor"
	PartMajor  Part = "major"
	PartCustom Part = "custom"
)

var parts = []Part{PartPatch, PartMinor, PartMajor, PartCustom}

// NextVersion increments current by part
func NextVersion(current string, part Part) (string, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidVersion, err.Error(), goerr.V("version", current))
	}

	var next semver.Version
	switch part {
	case PartPatch:
		next = v.IncPatch()
	case PartMinor:
		next = v.IncMinor()
	case PartMajor:
		next = v.IncMajor()
	default:
		return "", goerr.New("unknown version part", goerr.V("part", part))
	}
	return next.String(), nil
}

// Bumper asks which part to bump and writes the new version to the metadata file
type Bumper struct {
	path     string
	prompter interfaces.Prompter
}

var _ interfaces.VersionBumper = (*Bumper)(nil)

// NewBumper creates a Bumper for the metadata file at path
func NewBumper(path string, prompter interfaces.Prompter) *Bumper {
	return &Bumper{
		path:     path,
		prompter: prompter,
	}
}

// BumpVersion updates the project version. The new version is the result's Value.
func (b *Bumper) BumpVersion(ctx context.Context) (*model.Result, error) {
	logger := ctxlog.From(ctx)

	current, err := LoadVersion(b.path)
	if err != nil {
		return nil, err
	}

	options := make([]string, len(parts))
	for i, p := range parts {
		options[i] = string(p)
	}
	idx, err := b.prompter.Select(ctx, "Current version is "+current+". Which part do you want to bump?", options, 0)
	if err != nil {
		return nil, err
	}

	var next string
	if parts[idx] == PartCustom {
		input, err := b.prompter.Input(ctx, "Enter new version", current)
		if err != nil {
			return nil, err
		}
		v, err := semver.NewVersion(input)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidVersion, err.Error(), goerr.V("version", input))
		}
		next = v.String()
	} else {
		next, err = NextVersion(current, parts[idx])
		if err != nil {
			return nil, err
		}
	}

	if next != current {
		if err := SaveVersion(b.path, next); err != nil {
			return nil, err
		}
	}
	logger.Info("Bumped version", "from", current, "to", next, "path", b.path)

	return model.NewResult("bump version").WithValue(next), nil
}
