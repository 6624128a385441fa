package commands

import (
	"fmt"
	"strconv"

	"josephlewis.net/picosh/core/interp"
)

// Exit asks the interpreter session to terminate, optionally with a
// specific status.
func Exit(inv *interp.Invocation) (int, error) {
	code := 0
	if len(inv.Args) > 1 {
		parsed, err := strconv.Atoi(inv.Args[1])
		if err != nil {
			return 0, fmt.Errorf("%s: numeric argument required", inv.Args[1])
		}
		code = parsed
	}

	inv.Env.ExitRequested = true
	return code, nil
}

var _ interp.BuiltinFunc = Exit

func init() {
	register("exit", Exit)
}
