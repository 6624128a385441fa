package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Environment is the mutable state a command line executes against:
// variable bindings, the working directory, and the exit-requested
// flag set by the exit builtin. All file access by the shell goes
// through FS so the whole interpreter can run against an in-memory
// filesystem in tests.
//
// The interpreter is single threaded; Clone exists for pipeline-stage
// variable scoping, not for thread safety.
type Environment struct {
	vars map[string]string

	// Dir is the current working directory, always absolute and clean.
	Dir string

	// ExitRequested is set when a command asked the interpreter session
	// to terminate.
	ExitRequested bool

	// FS backs every file operation.
	FS afero.Fs
}

// NewEnvironment captures the calling process's environment variables
// and working directory onto the real filesystem.
func NewEnvironment() *Environment {
	dir, err := os.Getwd()
	if err != nil {
		dir = "/"
	}
	return NewEnvironmentFromList(os.Environ(), dir, afero.NewOsFs())
}

// NewEnvironmentFromList builds an environment from "key=value"
// entries, as returned by Environ.
func NewEnvironmentFromList(environ []string, dir string, fs afero.Fs) *Environment {
	env := &Environment{
		vars: make(map[string]string, len(environ)),
		Dir:  filepath.Clean(dir),
		FS:   fs,
	}
	for _, e := range environ {
		key, value, _ := strings.Cut(e, "=")
		env.vars[key] = value
	}
	return env
}

// Clone returns an independent copy sharing the same filesystem.
// Mutations on the copy are invisible to the original; pipeline stages
// get one each so stage-local assignments don't leak.
func (e *Environment) Clone() *Environment {
	vars := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &Environment{
		vars:          vars,
		Dir:           e.Dir,
		ExitRequested: e.ExitRequested,
		FS:            e.FS,
	}
}

// Getenv retrieves the value of the variable named by the key, empty
// if unset.
func (e *Environment) Getenv(key string) string {
	return e.vars[key]
}

// LookupEnv retrieves a variable and whether it is set, so an empty
// value can be told apart from an unset one.
func (e *Environment) LookupEnv(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Setenv sets the value of the variable named by the key.
func (e *Environment) Setenv(key, value string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	e.vars[key] = value
}

// Unsetenv removes a variable.
func (e *Environment) Unsetenv(key string) {
	delete(e.vars, key)
}

// Environ returns the bindings as sorted "key=value" entries, the form
// os/exec expects.
func (e *Environment) Environ() []string {
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

// UserHomeDir returns the current user's home directory.
func (e *Environment) UserHomeDir() (string, error) {
	return e.Getenv("HOME"), nil
}

// Resolve turns a path relative to the working directory into an
// absolute clean path. Absolute paths only get cleaned.
func (e *Environment) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.Dir, path)
}

// Chdir changes the working directory, verifying the target exists and
// is a directory.
func (e *Environment) Chdir(path string) error {
	target := e.Resolve(path)
	info, err := e.FS.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", path)
	}
	e.Dir = target
	return nil
}

// Open opens a file for reading, resolving relative paths against the
// working directory.
func (e *Environment) Open(path string) (afero.File, error) {
	return e.FS.Open(e.Resolve(path))
}

// Stat stats a path, resolving relative paths against the working
// directory.
func (e *Environment) Stat(path string) (os.FileInfo, error) {
	return e.FS.Stat(e.Resolve(path))
}
