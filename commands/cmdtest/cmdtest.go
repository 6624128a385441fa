// Package cmdtest runs builtin commands against a deterministic
// in-memory environment for testing.
package cmdtest

import (
	"bytes"
	"io"

	"github.com/spf13/afero"
	"josephlewis.net/picosh/core/interp"
)

// NewEnv returns an environment backed by an in-memory filesystem with
// a fixed set of variables so command output is reproducible.
func NewEnv() *interp.Environment {
	return interp.NewEnvironmentFromList([]string{
		"HOME=/home/user",
		"PATH=/usr/local/bin:/usr/bin:/bin",
		"SHELL=/bin/sh",
		"USER=user",
	}, "/home/user", afero.NewMemMapFs())
}

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Builtin function under test.
	Fn interp.BuiltinFunc
	// Process arguments, the first argument should be the command name.
	Argv []string
	// Environment the command runs in. If nil, NewEnv is used.
	Env *interp.Environment

	Stdin  io.Reader
	Stdout io.Writer

	ExitStatus int

	Setup func(*interp.Environment) error
}

func Command(fn interp.BuiltinFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Fn:   fn,
		Argv: append([]string{name}, arg...),
	}
}

// Output runs the command and returns its standard output.
func (c *Cmd) Output() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf

	if err := c.Run(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the command and waits for it to complete. Errors the
// builtin reports are surfaced directly rather than being rendered to
// standard output.
func (c *Cmd) Run() error {
	if c.Env == nil {
		c.Env = NewEnv()
	}
	if c.Stdin == nil {
		c.Stdin = &bytes.Reader{}
	}
	if c.Stdout == nil {
		c.Stdout = io.Discard
	}

	if c.Setup != nil {
		if err := c.Setup(c.Env); err != nil {
			return err
		}
	}

	code, err := c.Fn(&interp.Invocation{
		Name:   c.Argv[0],
		Args:   c.Argv,
		Stdin:  c.Stdin,
		Stdout: c.Stdout,
		Env:    c.Env,
	})
	c.ExitStatus = code
	return err
}
