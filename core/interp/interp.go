package interp

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"josephlewis.net/picosh/core/shell"
)

// CommandNotFoundError aborts a pipeline when no factory recognizes a
// command name.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Name)
}

// Interpreter executes parsed command lines against an environment and
// a command registry. It is the owner of the environment for the
// lifetime of one session.
type Interpreter struct {
	Env      *Environment
	Registry *Registry

	// Stdin is handed to the first pipeline stage when there is no
	// upstream buffer.
	Stdin io.Reader
}

// New builds an interpreter reading inherited input from the process's
// standard input.
func New(env *Environment, registry *Registry) *Interpreter {
	return &Interpreter{
		Env:      env,
		Registry: registry,
		Stdin:    os.Stdin,
	}
}

// Run tokenizes, parses and executes one line, writing the final
// output to out. Lex and parse errors abort the line before any
// execution happens.
func (in *Interpreter) Run(line string, out io.Writer) (int, error) {
	tokens, err := shell.Tokenize(line)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, nil
	}
	node, err := shell.Parse(tokens)
	if err != nil {
		return 0, err
	}
	return in.Execute(node, out)
}

// Execute walks the AST and returns the exit code of the last command
// run. Output of a pipeline is flushed to out exactly once, after the
// whole pipeline completes.
func (in *Interpreter) Execute(node shell.Node, out io.Writer) (int, error) {
	switch n := node.(type) {
	case *shell.Command:
		return in.execCommand(n, out)
	case *shell.Pipeline:
		return in.execPipeline(n, out)
	default:
		return 0, fmt.Errorf("unsupported syntax node %T", node)
	}
}

// execCommand runs a bare command outside any pipeline. Its
// assignments apply to the shared environment and persist.
func (in *Interpreter) execCommand(cmd *shell.Command, out io.Writer) (int, error) {
	if err := applyAssignments(in.Env, cmd.Assignments); err != nil {
		return 0, err
	}
	if len(cmd.Argv) == 0 {
		// Assignment-only line: nothing to look up.
		return 0, nil
	}

	name, args, err := resolveArgv(in.Env, cmd.Argv)
	if err != nil {
		return 0, err
	}

	unit, ok := in.Registry.Resolve(in.Env, name, args)
	if !ok {
		return 0, &CommandNotFoundError{Name: name}
	}
	return unit.Execute(in.stdin(), out, in.Env)
}

// execPipeline runs stages strictly left to right, buffering each
// stage's full output before starting the next. Stage environments are
// clones, so stage-local assignments never leak to siblings or to the
// parent.
func (in *Interpreter) execPipeline(p *shell.Pipeline, out io.Writer) (int, error) {
	var prev *bytes.Buffer
	last := 0

	for _, cmd := range p.Cmds {
		stageEnv := in.Env.Clone()
		if err := applyAssignments(stageEnv, cmd.Assignments); err != nil {
			return 0, err
		}
		if len(cmd.Argv) == 0 {
			// Assignment-only stage: succeeds, produces no bytes.
			last = 0
			prev = &bytes.Buffer{}
			continue
		}

		name, args, err := resolveArgv(stageEnv, cmd.Argv)
		if err != nil {
			return 0, err
		}

		unit, ok := in.Registry.Resolve(stageEnv, name, args)
		if !ok {
			// Abort before flushing anything to out.
			return 0, &CommandNotFoundError{Name: name}
		}

		var stdin io.Reader
		if prev != nil {
			stdin = bytes.NewReader(prev.Bytes())
		} else {
			stdin = in.stdin()
		}

		var buf bytes.Buffer
		code, err := unit.Execute(stdin, &buf, stageEnv)
		if err != nil {
			return 0, err
		}
		last = code
		prev = &buf
	}

	if prev != nil {
		if _, err := out.Write(prev.Bytes()); err != nil {
			return 0, fmt.Errorf("flushing pipeline output: %w", err)
		}
	}
	return last, nil
}

func (in *Interpreter) stdin() io.Reader {
	if in.Stdin == nil {
		return strings.NewReader("")
	}
	return in.Stdin
}

func applyAssignments(env *Environment, assignments []*shell.Assignment) error {
	for _, a := range assignments {
		value := ""
		if a.Value != nil {
			v, err := wordString(env, *a.Value)
			if err != nil {
				return err
			}
			value = v
		}
		env.Setenv(a.Name, value)
	}
	return nil
}

func resolveArgv(env *Environment, argv []shell.Word) (string, []string, error) {
	name, err := wordString(env, argv[0])
	if err != nil {
		return "", nil, err
	}
	args := make([]string, 0, len(argv)-1)
	for _, w := range argv[1:] {
		s, err := wordString(env, w)
		if err != nil {
			return "", nil, err
		}
		args = append(args, s)
	}
	return name, args, nil
}

// wordString resolves a word against the environment. Unset parameters
// substitute as the empty string; command substitutions are rejected
// rather than silently dropped.
func wordString(env *Environment, w shell.Word) (string, error) {
	if w.IsLiteral() {
		return w.Literal(), nil
	}

	var sb strings.Builder
	for _, part := range w.Parts() {
		switch part.Kind {
		case shell.PartLiteral:
			sb.WriteString(part.Text)
		case shell.PartParameter:
			sb.WriteString(env.Getenv(part.Text))
		case shell.PartCommand:
			return "", shell.ErrUnsupportedSubstitution
		}
	}
	return sb.String(), nil
}
