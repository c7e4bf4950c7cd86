package git

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

// Sequencer runs the post-bump git commands, asking before each one
type Sequencer struct {
	runner    interfaces.CommandRunner
	prompter  interfaces.Prompter
	settings  model.GitSettings
	publisher interfaces.ReleasePublisher
}

var _ interfaces.GitSequencer = (*Sequencer)(nil)

// Option is a functional option for Sequencer
type Option func(*Sequencer)

// WithPublisher adds a hosted-release step after the tag is pushed
func WithPublisher(p interfaces.ReleasePublisher) Option {
	return func(s *Sequencer) {
		s.publisher = p
	}
}

// NewSequencer creates a new git Sequencer
func NewSequencer(runner interfaces.CommandRunner, prompter interfaces.Prompter, settings model.GitSettings, opts ...Option) *Sequencer {
	s := &Sequencer{
		runner:   runner,
		prompter: prompter,
		settings: settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tag returns the tag name for version
func (s *Sequencer) Tag(version string) string {
	return s.settings.TagPrefix + version
}

// BumpGit stages, commits, tags (new releases only) and pushes
func (s *Sequencer) BumpGit(ctx context.Context, version string, newRelease bool) ([]*model.Result, error) {
	logger := ctxlog.From(ctx)
	logger.Debug("Starting git sequence", "version", version, "new_release", newRelease)

	var results []*model.Result

	if _, err := s.git(ctx, "status", "--short"); err != nil {
		return results, err
	}

	ok, err := s.prompter.Confirm(ctx, "Do you want to ADD all files to git?", false)
	if err != nil {
		return results, err
	}
	if ok {
		r, err := s.step(ctx, "git add", "add", "--all")
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}

	defaultMsg := "Update"
	if newRelease {
		defaultMsg = "Bump version to " + version
	}
	ok, err = s.prompter.Confirm(ctx, "Do you want to COMMIT?", false)
	if err != nil {
		return results, err
	}
	if ok {
		msg, err := s.prompter.Input(ctx, "Commit message", defaultMsg)
		if err != nil {
			return results, err
		}
		r, err := s.step(ctx, "git commit", "commit", "-m", msg)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}

	tag := s.Tag(version)
	tagged := false
	if newRelease {
		ok, err = s.prompter.Confirm(ctx, fmt.Sprintf("Do you want to TAG this commit with %s?", tag), false)
		if err != nil {
			return results, err
		}
		if ok {
			r, err := s.step(ctx, "git tag "+tag, "tag", "-a", tag, "-m", tag)
			if err != nil {
				return results, err
			}
			results = append(results, r.WithValue(tag))
			tagged = true
		}
	}

	ok, err = s.prompter.Confirm(ctx, fmt.Sprintf("Do you want to PUSH to %s?", s.settings.Remote), false)
	if err != nil {
		return results, err
	}
	if !ok {
		return results, nil
	}

	r, err := s.step(ctx, "git push", "push", s.settings.Remote, "HEAD")
	if err != nil {
		return results, err
	}
	results = append(results, r)

	if !tagged {
		return results, nil
	}

	r, err = s.step(ctx, "git push "+tag, "push", s.settings.Remote, tag)
	if err != nil {
		return results, err
	}
	results = append(results, r)

	if s.publisher == nil {
		return results, nil
	}
	ok, err = s.prompter.Confirm(ctx, fmt.Sprintf("Do you want to PUBLISH a GitHub release for %s?", tag), false)
	if err != nil {
		return results, err
	}
	if ok {
		r, err := s.publisher.PublishRelease(ctx, tag)
		if err != nil {
			return results, goerr.Wrap(err, "failed to publish release", goerr.V("tag", tag))
		}
		results = append(results, r)
	}

	return results, nil
}

func (s *Sequencer) git(ctx context.Context, args ...string) (*model.CommandOutput, error) {
	cmd := model.NewCommand(append([]string{"git"}, args...))
	out, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return nil, goerr.Wrap(err, "git command failed", goerr.V("command", cmd.String()))
	}
	return out, nil
}

func (s *Sequencer) step(ctx context.Context, name string, args ...string) (*model.Result, error) {
	out, err := s.git(ctx, args...)
	if err != nil {
		return nil, err
	}
	r := model.NewResult(name)
	r.Code = out.Code
	r.Output = out.Stdout
	return r, nil
}
