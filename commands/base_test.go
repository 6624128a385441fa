package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"josephlewis.net/picosh/commands/cmdtest"
	"josephlewis.net/picosh/core/interp"
)

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
}

func (gts goldenTestSuite) Run(t *testing.T, fn interp.BuiltinFunc) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			cmd := cmdtest.Command(fn, tc.Args[0], tc.Args[1:]...)
			out, err := cmd.Output()
			if err != nil {
				t.Fatal(err)
			}

			g.Assert(t, tn, out)
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()

	for _, expected := range []string{"cat", "cd", "echo", "exit", "grep", "pwd", "wc"} {
		assert.Contains(t, names, expected)
	}
	assert.IsIncreasing(t, names, "names are sorted")
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()
	env := cmdtest.NewEnv()

	t.Run("resolves builtins", func(t *testing.T) {
		_, ok := registry.Resolve(env, "echo", nil)
		assert.True(t, ok)
	})

	t.Run("misses unknown names", func(t *testing.T) {
		// The in-memory filesystem has no executables to fall back to.
		_, ok := registry.Resolve(env, "no-such-command", nil)
		assert.False(t, ok)
	})
}

func TestSimpleCommand_Help(t *testing.T) {
	cmd := cmdtest.Command(Echo, "echo", "--help")
	out, err := cmd.Output()

	require.NoError(t, err)
	assert.Equal(t, 0, cmd.ExitStatus)
	assert.True(t, strings.HasPrefix(string(out), "usage: echo"), "got: %q", out)
	assert.Contains(t, string(out), "Flags:")
}

func TestSimpleCommand_BadFlag(t *testing.T) {
	cmd := cmdtest.Command(Echo, "echo", "--no-such-flag")
	out, err := cmd.Output()

	require.NoError(t, err)
	assert.Equal(t, 1, cmd.ExitStatus, "flag errors are not fatal to the shell")
	assert.Contains(t, string(out), "error:")
}
