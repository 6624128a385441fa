package commands

import (
	"fmt"
	"io"
	"sort"

	getopt "github.com/pborman/getopt/v2"
	"josephlewis.net/picosh/core/interp"
)

// builtins holds every registered builtin factory in registration
// order; the registry tries them in this order and the first match
// wins.
var builtins []interp.Factory

var builtinNames []string

func register(name string, fn interp.BuiltinFunc) {
	builtins = append(builtins, interp.NewBuiltinFactory(name, fn))
	builtinNames = append(builtinNames, name)
	sort.Strings(builtinNames)
}

// Names lists the registered builtin command names, sorted.
func Names() []string {
	return append([]string(nil), builtinNames...)
}

// Factories returns the builtin factories in registration order.
func Factories() []interp.Factory {
	return append([]interp.Factory(nil), builtins...)
}

// DefaultRegistry builds the standard registry: every builtin, then
// the external-process launcher as the last resort.
func DefaultRegistry() *interp.Registry {
	return interp.NewRegistry(append(Factories(), interp.ExternalLauncher())...)
}

// SimpleCommand knows how to parse flags and print help for a builtin.
type SimpleCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help
	// flag isn't added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}
	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses flags and, if parsing succeeded, calls the callback.
func (s *SimpleCommand) Run(inv *interp.Invocation, callback func() int) (int, error) {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(inv.Args, nil); err != nil {
		fmt.Fprintf(inv.Stdout, "error: %s\n\n", err)
		s.PrintHelp(inv.Stdout)
		return 1, nil
	}

	if *s.ShowHelp {
		s.PrintHelp(inv.Stdout)
		return 0, nil
	}

	return callback(), nil
}

// RunE is Run for callbacks that report failure as an error; the
// calling layer turns the error into exit code 1 with the message on
// the output stream.
func (s *SimpleCommand) RunE(inv *interp.Invocation, callback func() error) (int, error) {
	var cbErr error
	code, err := s.Run(inv, func() int {
		cbErr = callback()
		return 0
	})
	switch {
	case err != nil:
		return code, err
	case cbErr != nil:
		return 0, cbErr
	default:
		return code, nil
	}
}

// RunEachFileOrStdin invokes the callback once per named file, or once
// with the invocation's input stream when no files are given. The
// first failure stops the walk.
func RunEachFileOrStdin(inv *interp.Invocation, files []string, callback func(name string, fd io.Reader) error) error {
	if len(files) == 0 {
		return callback("", inv.Stdin)
	}

	for _, path := range files {
		fd, err := inv.Env.Open(path)
		if err != nil {
			return err
		}
		if err := callback(path, fd); err != nil {
			fd.Close()
			return err
		}
		fd.Close()
	}
	return nil
}
