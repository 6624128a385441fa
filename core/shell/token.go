package shell

import (
	"fmt"
	"strings"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	// TokenWord is a shell word, possibly built from several parts.
	TokenWord TokenKind = iota
	// TokenPipe is the `|` operator.
	TokenPipe
	// TokenEqual is the `=` operator.
	TokenEqual
	// TokenSlash is the `/` path separator.
	TokenSlash
	// TokenRedirectIn is the `<` operator.
	TokenRedirectIn
	// TokenRedirectOut is the `>` operator.
	TokenRedirectOut
)

func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenPipe:
		return "|"
	case TokenEqual:
		return "="
	case TokenSlash:
		return "/"
	case TokenRedirectIn:
		return "<"
	case TokenRedirectOut:
		return ">"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// PartKind identifies what a WordPart expands to.
type PartKind int

const (
	// PartLiteral is text used verbatim.
	PartLiteral PartKind = iota
	// PartParameter is a parameter reference such as $name or ${name},
	// replaced with the variable's value at execution time.
	PartParameter
	// PartCommand is a command substitution $(...). The shell records it
	// but does not execute it yet.
	PartCommand
)

// WordPart is one segment of a word. Quoting and substitution syntax
// determine where one part ends and the next begins; the segments of
// `a'b'$c` are Literal("a"), Literal("b"), Parameter("c").
type WordPart struct {
	Kind PartKind
	// Text is the literal text, the referenced parameter name, or the raw
	// command substitution body depending on Kind.
	Text string
}

func (p WordPart) String() string {
	switch p.Kind {
	case PartParameter:
		return "${" + p.Text + "}"
	case PartCommand:
		return "$(" + p.Text + ")"
	default:
		return p.Text
	}
}

// Token is the smallest lexical unit of a command line. Parts is only
// populated for TokenWord.
type Token struct {
	Kind  TokenKind
	Parts []WordPart
}

func (t Token) String() string {
	if t.Kind != TokenWord {
		return t.Kind.String()
	}

	var sb strings.Builder
	for _, p := range t.Parts {
		sb.WriteString(p.String())
	}
	return sb.String()
}

func wordToken(parts []WordPart) Token {
	return Token{Kind: TokenWord, Parts: parts}
}

func opToken(kind TokenKind) Token {
	return Token{Kind: kind}
}
