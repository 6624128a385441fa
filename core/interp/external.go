package interp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// ExternalCommand launches a resolved executable as a child process.
// The engine blocks on the child's completion; stdout is captured by
// the writer it is handed, stderr passes through to the shell's own.
type ExternalCommand struct {
	// Path is the resolved executable path.
	Path string
	// Args holds the arguments, not including the command name.
	Args []string
}

// ExternalLauncher returns the last-resort factory: it recognizes any
// name that resolves through a PATH-style search.
func ExternalLauncher() Factory {
	return FactoryFunc(func(env *Environment, name string, args []string) (Unit, bool) {
		path, err := LookPath(env, name)
		if err != nil {
			return nil, false
		}
		return &ExternalCommand{Path: path, Args: args}, true
	})
}

// Execute spawns the process and waits for it. A spawn failure is
// returned as an error; a non-zero exit (or signal termination) comes
// back as the exit code.
func (c *ExternalCommand) Execute(stdin io.Reader, stdout io.Writer, env *Environment) (int, error) {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env.Environ()
	cmd.Dir = env.Dir

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitStatus(exitErr), nil
		}
		return 0, fmt.Errorf("spawn %s: %w", c.Path, err)
	}
	return 0, nil
}

// exitStatus maps a child's wait status to a shell exit code, with
// 128+signal for signal-terminated processes. -1 is the sentinel when
// the platform exposes neither a code nor a signal.
func exitStatus(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok {
		if ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return ws.ExitStatus()
	}
	return -1
}
