package commands

import (
	"io"

	"josephlewis.net/picosh/core/interp"
)

// Cat concatenates the named files, or its input stream, to standard
// output.
func Cat(inv *interp.Invocation) (int, error) {
	cmd := &SimpleCommand{
		Use:   "cat [FILE]...",
		Short: "Concatenate FILE(s) to standard output.",
	}

	return cmd.RunE(inv, func() error {
		return RunEachFileOrStdin(inv, cmd.Flags().Args(), func(name string, fd io.Reader) error {
			_, err := io.Copy(inv.Stdout, fd)
			return err
		})
	})
}

var _ interp.BuiltinFunc = Cat

func init() {
	register("cat", Cat)
}
