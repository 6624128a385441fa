package interp

import (
	"fmt"
	"io"
)

// Unit is a command resolved and ready to run once: an in-process
// builtin or an external process launcher. It reads from stdin, writes
// to stdout, and may mutate the environment it is given.
type Unit interface {
	Execute(stdin io.Reader, stdout io.Writer, env *Environment) (int, error)
}

// Factory recognizes command names and produces executable units.
// Returning false means "not my command" and lets the registry try the
// next factory.
type Factory interface {
	TryCreate(env *Environment, name string, args []string) (Unit, bool)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(env *Environment, name string, args []string) (Unit, bool)

func (f FactoryFunc) TryCreate(env *Environment, name string, args []string) (Unit, bool) {
	return f(env, name, args)
}

// Registry is an ordered list of factories. Resolution queries them in
// registration order and the first match wins, so earlier factories
// shadow later ones.
type Registry struct {
	factories []Factory
}

// NewRegistry builds a registry trying the given factories in order.
func NewRegistry(factories ...Factory) *Registry {
	return &Registry{factories: factories}
}

// Resolve finds the first factory that recognizes name.
func (r *Registry) Resolve(env *Environment, name string, args []string) (Unit, bool) {
	for _, f := range r.factories {
		if unit, ok := f.TryCreate(env, name, args); ok {
			return unit, true
		}
	}
	return nil, false
}

// Invocation carries everything a builtin needs for a single run.
// Args includes the command name at index 0, getopt-style.
type Invocation struct {
	Name   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Env    *Environment
}

// BuiltinFunc is the body of an in-process command. A non-nil error is
// not fatal to the pipeline: the calling adapter converts it to exit
// code 1 with the message on the output stream.
type BuiltinFunc func(inv *Invocation) (int, error)

// NewBuiltinFactory wraps a builtin body as a registry factory
// recognizing exactly one name.
func NewBuiltinFactory(name string, fn BuiltinFunc) Factory {
	return FactoryFunc(func(env *Environment, cmdName string, args []string) (Unit, bool) {
		if cmdName != name {
			return nil, false
		}
		return &builtinUnit{
			name: name,
			args: append([]string{name}, args...),
			fn:   fn,
		}, true
	})
}

type builtinUnit struct {
	name string
	args []string
	fn   BuiltinFunc
}

func (u *builtinUnit) Execute(stdin io.Reader, stdout io.Writer, env *Environment) (int, error) {
	code, err := u.fn(&Invocation{
		Name:   u.name,
		Args:   u.args,
		Stdin:  stdin,
		Stdout: stdout,
		Env:    env,
	})
	if err != nil {
		// Builtin failures don't unwind the pipeline.
		fmt.Fprintf(stdout, "%s: %v\n", u.name, err)
		return 1, nil
	}
	return code, nil
}
