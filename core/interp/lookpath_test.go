package interp

import (
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookPathEnv(t *testing.T, path string) *Environment {
	t.Helper()

	memFS := afero.NewMemMapFs()
	for _, file := range []string{
		"/bin/ls",
		"/usr/bin/ls",
		"/usr/bin/env",
		"/home/user/tool",
		"/home/user/bin/run",
	} {
		require.NoError(t, afero.WriteFile(memFS, file, []byte("#!"), 0755))
	}
	require.NoError(t, memFS.MkdirAll("/bin/dir", 0755))

	return NewEnvironmentFromList([]string{"PATH=" + path}, "/home/user", memFS)
}

func TestLookPath(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		file     string
		expected string
	}{
		{
			name:     "absolute path",
			path:     "",
			file:     "/bin/ls",
			expected: "/bin/ls",
		},
		{
			name:     "relative path with slash ignores PATH",
			path:     "/bin",
			file:     "bin/run",
			expected: "/home/user/bin/run",
		},
		{
			name:     "dot slash prefix",
			path:     "/bin",
			file:     "./tool",
			expected: "/home/user/tool",
		},
		{
			name:     "first PATH entry wins",
			path:     "/bin:/usr/bin",
			file:     "ls",
			expected: "/bin/ls",
		},
		{
			name:     "later PATH entries are searched",
			path:     "/bin:/usr/bin",
			file:     "env",
			expected: "/usr/bin/env",
		},
		{
			name:     "empty PATH entry means the working directory",
			path:     ":/bin",
			file:     "tool",
			expected: "/home/user/tool",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LookPath(lookPathEnv(t, tc.path), tc.file)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestLookPathErrors(t *testing.T) {
	env := lookPathEnv(t, "/bin:/usr/bin")

	t.Run("empty name", func(t *testing.T) {
		_, err := LookPath(env, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing bare name", func(t *testing.T) {
		_, err := LookPath(env, "definitely-not-here")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing absolute path", func(t *testing.T) {
		_, err := LookPath(env, "/bin/definitely-not-here")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("directory is not executable", func(t *testing.T) {
		_, err := LookPath(env, "/bin/dir")
		assert.ErrorIs(t, err, fs.ErrPermission)
	})
}
