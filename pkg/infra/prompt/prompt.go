package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/interfaces"
	"github.com/mattn/go-isatty"
)

type config struct {
	in          io.Reader
	out         io.Writer
	interactive *bool
}

// Option is a functional option for Terminal
type Option func(*config)

// WithInput sets the reader answers are read from
func WithInput(r io.Reader) Option {
	return func(c *config) {
		c.in = r
	}
}

// WithOutput sets the writer questions are written to
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithInteractive overrides terminal detection
func WithInteractive(interactive bool) Option {
	return func(c *config) {
		c.interactive = &interactive
	}
}

// Terminal asks questions on a line-oriented terminal
type Terminal struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

var _ interfaces.Prompter = (*Terminal)(nil)

// NewTerminal creates a Terminal on stdin/stdout. If stdin is not a terminal,
// every question is answered with its default.
func NewTerminal(opts ...Option) *Terminal {
	cfg := config{
		in:  os.Stdin,
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	interactive := false
	if cfg.interactive != nil {
		interactive = *cfg.interactive
	} else if f, ok := cfg.in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &Terminal{
		reader:      bufio.NewReader(cfg.in),
		out:         cfg.out,
		interactive: interactive,
	}
}

var mark = color.New(color.FgCyan, color.Bold).SprintFunc()

// Confirm asks a yes/no question. An empty answer selects the default.
func (t *Terminal) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	for {
		answer, ok, err := t.ask(ctx, fmt.Sprintf("%s %s [%s]: ", mark("?"), question, hint))
		if err != nil {
			return false, err
		}
		if !ok {
			return defaultYes, nil
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "Please answer y or n.")
	}
}

// Select asks the user to pick one of options and returns its index
func (t *Terminal) Select(ctx context.Context, question string, options []string, defaultIndex int) (int, error) {
	if defaultIndex < 0 || defaultIndex >= len(options) {
		return 0, goerr.New("default index out of range",
			goerr.V("default", defaultIndex),
			goerr.V("options", len(options)))
	}

	fmt.Fprintf(t.out, "%s %s\n", mark("?"), question)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}

	for {
		answer, ok, err := t.ask(ctx, fmt.Sprintf("Choose [%d]: ", defaultIndex+1))
		if err != nil {
			return 0, err
		}
		if !ok || answer == "" {
			return defaultIndex, nil
		}

		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		for i, opt := range options {
			if strings.EqualFold(answer, opt) {
				return i, nil
			}
		}
		fmt.Fprintf(t.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// Input asks for free text. An empty answer selects defaultValue.
func (t *Terminal) Input(ctx context.Context, question string, defaultValue string) (string, error) {
	text := fmt.Sprintf("%s %s: ", mark("?"), question)
	if defaultValue != "" {
		text = fmt.Sprintf("%s %s [%s]: ", mark("?"), question, defaultValue)
	}

	answer, ok, err := t.ask(ctx, text)
	if err != nil {
		return "", err
	}
	if !ok || answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

type line struct {
	text string
	err  error
}

// ask writes text and reads one line. ok is false when no answer could be
// read (non-interactive or EOF) and the caller should use its default.
func (t *Terminal) ask(ctx context.Context, text string) (string, bool, error) {
	logger := ctxlog.From(ctx)
	fmt.Fprint(t.out, text)

	if !t.interactive {
		fmt.Fprintln(t.out)
		logger.Warn("stdin is not a terminal, using default answer")
		return "", false, nil
	}

	ch := make(chan line, 1)
	go func() {
		s, err := t.reader.ReadString('\n')
		ch <- line{text: s, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", false, goerr.Wrap(ctx.Err(), "prompt interrupted")
	case l := <-ch:
		if l.err != nil && !errors.Is(l.err, io.EOF) {
			return "", false, goerr.Wrap(l.err, "failed to read answer")
		}
		if errors.Is(l.err, io.EOF) && l.text == "" {
			fmt.Fprintln(t.out)
			logger.Warn("no input available, using default answer")
			return "", false, nil
		}
		return strings.TrimSpace(l.text), true, nil
	}
}
