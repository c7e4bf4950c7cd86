package model

import "strings"

// Command describes a subprocess invocation
type Command struct {
	Name string   // Executable
	Args []string // Arguments
	Dir  string   // Working directory; empty means current directory
}

// NewCommand builds a Command from an argv slice
func NewCommand(argv []string, extra ...string) Command {
	cmd := Command{}
	if len(argv) > 0 {
		cmd.Name = argv[0]
		cmd.Args = append(append([]string{}, argv[1:]...), extra...)
	}
	return cmd
}

// InDir returns a copy of the command that runs in dir
func (c Command) InDir(dir string) Command {
	c.Dir = dir
	return c
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandOutput is the outcome of a subprocess invocation
type CommandOutput struct {
	Code   int
	Stdout string
}
