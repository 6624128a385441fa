package commands

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"josephlewis.net/picosh/commands/cmdtest"
	"josephlewis.net/picosh/core/interp"
)

func TestWc(t *testing.T) {
	cases := goldenTestSuite{
		"empty-stdin": {[]string{"wc"}},
		"lines-only":  {[]string{"wc", "-l"}},
	}

	cases.Run(t, Wc)
}

func TestWc_stdin(t *testing.T) {
	cmd := cmdtest.Command(Wc, "wc")
	cmd.Stdin = strings.NewReader("22\n")

	out, err := cmd.Output()

	require.NoError(t, err)
	assert.Equal(t, 0, cmd.ExitStatus)
	assert.Equal(t, "1 1 3\n", string(out))
}

func TestWc_single_file(t *testing.T) {
	cmd := cmdtest.Command(Wc, "wc", "/foo.txt")
	cmd.Setup = func(env *interp.Environment) error {
		return afero.WriteFile(env.FS, "/foo.txt", []byte("Hello,\nworld !"), 0600)
	}

	out, err := cmd.Output()

	require.NoError(t, err)
	assert.Equal(t, 0, cmd.ExitStatus)
	assert.Equal(t, "1 3 14 /foo.txt\n", string(out))
}

func TestWc_multiple_files(t *testing.T) {
	cmd := cmdtest.Command(Wc, "wc", "/a.txt", "/b.txt")
	cmd.Setup = func(env *interp.Environment) error {
		if err := afero.WriteFile(env.FS, "/a.txt", []byte("one\n"), 0600); err != nil {
			return err
		}
		return afero.WriteFile(env.FS, "/b.txt", []byte("two three\n"), 0600)
	}

	out, err := cmd.Output()

	require.NoError(t, err)
	assert.Equal(t, 0, cmd.ExitStatus)
	assert.Equal(t, "1 1 4 /a.txt\n1 2 10 /b.txt\n2 3 14 total\n", string(out))
}

func TestWc_flags(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		stdin    string
		expected string
	}{
		{"lines", []string{"wc", "-l"}, "a\nb\nc\n", "3\n"},
		{"words", []string{"wc", "-w"}, "a b  c\n", "3\n"},
		{"bytes", []string{"wc", "-c"}, "abcd", "4\n"},
		{"lines and words", []string{"wc", "-lw"}, "a b\n", "1 2\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := cmdtest.Command(Wc, tc.args[0], tc.args[1:]...)
			cmd.Stdin = strings.NewReader(tc.stdin)

			out, err := cmd.Output()

			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(out))
		})
	}
}

func TestWc_missing_file(t *testing.T) {
	cmd := cmdtest.Command(Wc, "wc", "/does-not-exist.txt")
	err := cmd.Run()

	assert.Error(t, err)
}
