package prompt_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relmake/pkg/infra/prompt"
)

func init() {
	color.NoColor = true
}

func newTerminal(input string) (*prompt.Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	term := prompt.NewTerminal(
		prompt.WithInput(strings.NewReader(input)),
		prompt.WithOutput(&out),
		prompt.WithInteractive(true),
	)
	return term, &out
}

func TestTerminal_Confirm(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "YES uppercase", input: "YES\n", want: true},
		{name: "no", input: "n\n", defaultYes: true, want: false},
		{name: "empty selects default no", input: "\n", want: false},
		{name: "empty selects default yes", input: "\n", defaultYes: true, want: true},
		{name: "EOF selects default", input: "", want: false},
		{name: "invalid answer asks again", input: "maybe\ny\n", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTerminal(tt.input)
			got, err := term.Confirm(ctx, "Proceed?", tt.defaultYes)
			gt.NoError(t, err)
			gt.V(t, got).Equal(tt.want)
		})
	}

	t.Run("shows default hint", func(t *testing.T) {
		term, out := newTerminal("\n")
		_, err := term.Confirm(ctx, "Proceed?", false)
		gt.NoError(t, err)
		gt.S(t, out.String()).Contains("Proceed? [y/N]")
	})

	t.Run("answers are read sequentially from one stream", func(t *testing.T) {
		term, _ := newTerminal("y\nn\ny\n")
		var got []bool
		for range 3 {
			v, err := term.Confirm(ctx, "Proceed?", false)
			gt.NoError(t, err)
			got = append(got, v)
		}
		gt.V(t, got).Equal([]bool{true, false, true})
	})
}

func TestTerminal_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	term := prompt.NewTerminal(
		prompt.WithInput(strings.NewReader("y\n")),
		prompt.WithOutput(&out),
		prompt.WithInteractive(false),
	)

	got, err := term.Confirm(context.Background(), "Proceed?", false)
	gt.NoError(t, err)
	gt.B(t, got).False()
}

func TestTerminal_Select(t *testing.T) {
	ctx := context.Background()
	options := []string{"patch", "minor", "major"}

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "by number", input: "2\n", want: 1},
		{name: "by name", input: "major\n", want: 2},
		{name: "default", input: "\n", want: 0},
		{name: "out of range asks again", input: "7\n3\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTerminal(tt.input)
			got, err := term.Select(ctx, "Which part?", options, 0)
			gt.NoError(t, err)
			gt.V(t, got).Equal(tt.want)
		})
	}

	t.Run("invalid default", func(t *testing.T) {
		term, _ := newTerminal("")
		_, err := term.Select(ctx, "Which part?", options, 5)
		gt.Error(t, err)
	})
}

func TestTerminal_Input(t *testing.T) {
	ctx := context.Background()

	term, _ := newTerminal("custom message\n\n")
	got, err := term.Input(ctx, "Commit message", "Bump version")
	gt.NoError(t, err)
	gt.V(t, got).Equal("custom message")

	got, err = term.Input(ctx, "Commit message", "Bump version")
	gt.NoError(t, err)
	gt.V(t, got).Equal("Bump version")
}

func TestTerminal_Interrupted(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	term := prompt.NewTerminal(
		prompt.WithInput(pr),
		prompt.WithOutput(&bytes.Buffer{}),
		prompt.WithInteractive(true),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := term.Confirm(ctx, "Proceed?", false)
	gt.Error(t, err)
	gt.B(t, errors.Is(err, context.Canceled)).True()
}
