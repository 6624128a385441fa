package interp

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound is the error resulting if a path search failed to find
// an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(env *Environment, file string) error {
	d, err := env.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if d.IsDir() {
		return fs.ErrPermission
	}
	return nil
}

// LookPath resolves a command the way a shell does. An absolute path
// resolves only if it exists. A path containing a slash (./tool,
// bin/tool) resolves only if it exists relative to the working
// directory. A bare name is searched across each PATH entry in order,
// and the first existing match wins. An empty name resolves to
// nothing.
func LookPath(env *Environment, file string) (string, error) {
	if file == "" {
		return "", ErrNotFound
	}

	if strings.Contains(file, "/") {
		if err := findExecutable(env, file); err != nil {
			return "", err
		}
		return env.Resolve(file), nil
	}

	path := env.Getenv("PATH")
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(env, candidate); err == nil {
			return env.Resolve(candidate), nil
		}
	}
	return "", ErrNotFound
}
