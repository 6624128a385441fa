package commands

import (
	"flag"
	"fmt"

	"josephlewis.net/picosh/core/interp"
)

// Pwd prints the working directory tracked by the environment.
func Pwd(inv *interp.Invocation) (int, error) {
	flags := flag.NewFlagSet("pwd", flag.ContinueOnError)
	flags.SetOutput(inv.Stdout)
	if err := flags.Parse(inv.Args[1:]); err != nil {
		fmt.Fprintln(inv.Stdout, "Usage: pwd")
		fmt.Fprintln(inv.Stdout, "Print the name of the current working directory.")
		return 1, nil
	}

	fmt.Fprintln(inv.Stdout, inv.Env.Dir)
	return 0, nil
}

var _ interp.BuiltinFunc = Pwd

func init() {
	register("pwd", Pwd)
}
