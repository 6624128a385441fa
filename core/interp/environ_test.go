package interp

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironmentFromList(t *testing.T) {
	env := NewEnvironmentFromList([]string{"A=B", "C", "F=G=H"}, "/home/user/", afero.NewMemMapFs())

	assert.Equal(t, "/home/user", env.Dir, "directory is cleaned")
	assert.Equal(t, "B", env.Getenv("A"))
	assert.Equal(t, "G=H", env.Getenv("F"), "value keeps everything after the first =")

	val, ok := env.LookupEnv("C")
	assert.True(t, ok, "valueless entries are still set")
	assert.Equal(t, "", val)
}

func TestEnvironment_Environ(t *testing.T) {
	env := NewEnvironmentFromList(nil, "/", afero.NewMemMapFs())
	env.Setenv("Z", "1")
	env.Setenv("A", "2")

	assert.Equal(t, []string{"A=2", "Z=1"}, env.Environ(), "entries are sorted")
}

func TestEnvironment_Unsetenv(t *testing.T) {
	env := NewEnvironmentFromList([]string{"A=B"}, "/", afero.NewMemMapFs())
	env.Unsetenv("A")

	_, ok := env.LookupEnv("A")
	assert.False(t, ok)
	assert.Equal(t, "", env.Getenv("A"))
}

func TestEnvironment_Clone(t *testing.T) {
	parent := NewEnvironmentFromList([]string{"A=1"}, "/home/user", afero.NewMemMapFs())

	child := parent.Clone()
	child.Setenv("A", "2")
	child.Setenv("B", "3")
	child.Dir = "/tmp"
	child.ExitRequested = true

	assert.Equal(t, "1", parent.Getenv("A"), "child writes don't leak")
	assert.Equal(t, "", parent.Getenv("B"))
	assert.Equal(t, "/home/user", parent.Dir)
	assert.False(t, parent.ExitRequested)
	assert.Same(t, parent.FS, child.FS, "the filesystem is shared")
}

func TestEnvironment_Resolve(t *testing.T) {
	env := NewEnvironmentFromList(nil, "/home/user", afero.NewMemMapFs())

	cases := []struct {
		path     string
		expected string
	}{
		{"/etc/passwd", "/etc/passwd"},
		{"/a/../b", "/b"},
		{"notes.txt", "/home/user/notes.txt"},
		{"./notes.txt", "/home/user/notes.txt"},
		{"../other", "/home/other"},
		{"../..", "/"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, env.Resolve(tc.path))
		})
	}
}

func TestEnvironment_Chdir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/user/docs", 0755))
	require.NoError(t, afero.WriteFile(fs, "/home/user/file.txt", []byte("x"), 0644))

	env := NewEnvironmentFromList(nil, "/home/user", fs)

	t.Run("relative", func(t *testing.T) {
		require.NoError(t, env.Chdir("docs"))
		assert.Equal(t, "/home/user/docs", env.Dir)
	})

	t.Run("dot dot", func(t *testing.T) {
		require.NoError(t, env.Chdir(".."))
		assert.Equal(t, "/home/user", env.Dir)
	})

	t.Run("missing target", func(t *testing.T) {
		assert.Error(t, env.Chdir("nope"))
		assert.Equal(t, "/home/user", env.Dir, "directory is unchanged on failure")
	})

	t.Run("target is a file", func(t *testing.T) {
		err := env.Chdir("file.txt")
		assert.ErrorContains(t, err, "not a directory")
	})
}
