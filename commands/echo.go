package commands

import (
	"fmt"

	"josephlewis.net/picosh/core/interp"
)

// Echo writes its arguments to standard output separated by spaces.
func Echo(inv *interp.Invocation) (int, error) {
	cmd := &SimpleCommand{
		Use:   "echo [-n] [ARG]...",
		Short: "Display a line of text.",
	}

	opts := cmd.Flags()
	noNewline := opts.Bool('n', "do not output the trailing newline")

	return cmd.Run(inv, func() int {
		w := inv.Stdout
		for i, arg := range opts.Args() {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, arg)
		}

		if !*noNewline {
			fmt.Fprintln(w)
		}
		return 0
	})
}

var _ interp.BuiltinFunc = Echo

func init() {
	register("echo", Echo)
}
