package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

// ErrCommandFailed is returned when a subprocess exits non-zero
var ErrCommandFailed = errors.New("command failed")

type config struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option is a functional option for Runner
type Option func(*config)

// WithStdout sets where subprocess stdout is streamed in addition to being captured
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithStderr sets where subprocess stderr is streamed
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

// WithStdin sets the subprocess stdin
func WithStdin(r io.Reader) Option {
	return func(c *config) {
		c.stdin = r
	}
}

// Runner executes commands with os/exec
type Runner struct {
	cfg config
}

// NewRunner creates a Runner streaming to the process's terminal by default
func NewRunner(opts ...Option) *Runner {
	cfg := config{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runner{cfg: cfg}
}

// Run executes cmd, streaming its output and capturing stdout
func (r *Runner) Run(ctx context.Context, cmd model.Command) (*model.CommandOutput, error) {
	logger := ctxlog.From(ctx)
	logger.Debug("Running command", "command", cmd.String(), "dir", cmd.Dir)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = r.cfg.stdin

	var buf bytes.Buffer
	c.Stdout = io.MultiWriter(r.cfg.stdout, &buf)
	c.Stderr = r.cfg.stderr

	err := c.Run()
	out := &model.CommandOutput{Stdout: buf.String()}
	if err == nil {
		return out, nil
	}

	if ctx.Err() != nil {
		return nil, goerr.Wrap(ctx.Err(), "command interrupted", goerr.V("command", cmd.String()))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.Code = exitErr.ExitCode()
		// the terminal delivers SIGINT to the child too, often before ctx is cancelled
		if interrupted(exitErr) {
			return nil, goerr.Wrap(context.Canceled, "command interrupted",
				goerr.V("command", cmd.String()),
				goerr.V("code", out.Code),
			)
		}
		return out, goerr.Wrap(ErrCommandFailed, "command exited with non-zero status",
			goerr.V("command", cmd.String()),
			goerr.V("dir", cmd.Dir),
			goerr.V("code", out.Code),
		)
	}

	return nil, goerr.Wrap(err, "failed to start command",
		goerr.V("command", cmd.String()),
		goerr.V("dir", cmd.Dir),
	)
}

// interruptExitCode is what shells exit with after SIGINT (128 + 2)
const interruptExitCode = 130

func interrupted(exitErr *exec.ExitError) bool {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() && status.Signal() == syscall.SIGINT {
		return true
	}
	return exitErr.ExitCode() == interruptExitCode
}
