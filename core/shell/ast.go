package shell

import "strings"

// Word is one shell argument after parsing. It is either a plain
// literal or a compound of parts that still need expansion. A compound
// is never empty, and a compound with a single literal part is always
// normalized back to a plain literal.
type Word struct {
	lit   string
	parts []WordPart
}

// LiteralWord builds a Word holding verbatim text.
func LiteralWord(text string) Word {
	return Word{lit: text}
}

// CompoundWord normalizes a part sequence into a Word.
func CompoundWord(parts []WordPart) Word {
	if len(parts) == 1 && parts[0].Kind == PartLiteral {
		return Word{lit: parts[0].Text}
	}
	return Word{parts: parts}
}

// IsLiteral reports whether the word needs no expansion.
func (w Word) IsLiteral() bool {
	return w.parts == nil
}

// Literal returns the verbatim text of a literal word. It is only
// meaningful when IsLiteral is true.
func (w Word) Literal() string {
	return w.lit
}

// Parts returns the part sequence of a compound word.
func (w Word) Parts() []WordPart {
	return w.parts
}

func (w Word) String() string {
	if w.IsLiteral() {
		return w.lit
	}
	var sb strings.Builder
	for _, p := range w.parts {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// Node is a parsed command line element. The variant set is closed:
// *Pipeline, *Command, *Assignment and *Redirect.
type Node interface {
	node()
}

// Pipeline chains two or more commands, each stage's output feeding the
// next stage's input. A parse never produces a pipeline with a single
// stage; that collapses to the bare *Command.
type Pipeline struct {
	Cmds []*Command
}

// Command is one simple command: argument words (the first is the
// command name), variable assignments scoped to it, and redirections.
// At least one of the three lists is non-empty.
type Command struct {
	Argv        []Word
	Assignments []*Assignment
	Redirects   []*Redirect
}

// Assignment is `name=value`. Value is nil for a bare `name=`.
type Assignment struct {
	Name  string
	Value *Word
}

// RedirectKind is the direction of a redirection.
type RedirectKind int

const (
	// RedirectInput is `< file`.
	RedirectInput RedirectKind = iota
	// RedirectOutput is `> file`.
	RedirectOutput
	// RedirectAppend is `>> file`.
	RedirectAppend
)

func (k RedirectKind) String() string {
	switch k {
	case RedirectInput:
		return "<"
	case RedirectOutput:
		return ">"
	default:
		return ">>"
	}
}

// Redirect attaches a file target to a command's input or output. The
// parser records redirects; opening the target is left to callers.
type Redirect struct {
	Kind   RedirectKind
	Target Word
}

func (*Pipeline) node()   {}
func (*Command) node()    {}
func (*Assignment) node() {}
func (*Redirect) node()   {}
