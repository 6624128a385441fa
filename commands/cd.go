package commands

import (
	"fmt"

	"josephlewis.net/picosh/core/interp"
)

// Cd changes the environment's working directory. With no argument it
// goes to $HOME.
func Cd(inv *interp.Invocation) (int, error) {
	args := inv.Args
	switch len(args) {
	case 1:
		home, _ := inv.Env.UserHomeDir()
		if home == "" {
			return 0, fmt.Errorf("no target directory and HOME not set")
		}
		args = append(args, home)
		fallthrough
	case 2:
		if err := inv.Env.Chdir(args[1]); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("too many arguments")
	}
	return 0, nil
}

var _ interp.BuiltinFunc = Cd

func init() {
	register("cd", Cd)
}
