package shell

import (
	"errors"
	"fmt"
)

// Parsing errors. All of them abort AST construction for the line.
var (
	// ErrUnexpectedEnd indicates the token stream ran out mid-construct.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	// ErrEmptyPipeline indicates a command position with nothing in it,
	// such as `| wc` or `echo |`.
	ErrEmptyPipeline = errors.New("empty command in pipeline")
	// ErrExpectedAssignmentName indicates an assignment with an empty name.
	ErrExpectedAssignmentName = errors.New("expected assignment name")
	// ErrInvalidAssignment indicates an assignment target that is not a
	// plain name.
	ErrInvalidAssignment = errors.New("invalid assignment target")
	// ErrUnsupportedSubstitution indicates a substitution form the shell
	// refuses to evaluate rather than silently dropping.
	ErrUnsupportedSubstitution = errors.New("command substitution is not supported")
)

// UnexpectedTokenError reports a token that does not fit the grammar at
// its position.
type UnexpectedTokenError struct {
	Token Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %q", e.Token.String())
}

func unexpected(tok Token) error {
	return &UnexpectedTokenError{Token: tok}
}

// Parse builds the AST for one tokenized line.
//
// The grammar is `pipeline := command ('|' command)*` with
// `command := (assignment | redirect | word-or-path)*`. The parser is
// recursive descent with one token of lookahead, plus a second
// lookahead slot to tell assignments from arguments and to consolidate
// path fragments.
func Parse(tokens []Token) (Node, error) {
	b := &astBuilder{tokens: tokens}

	node, err := b.parsePipeline()
	if err != nil {
		return nil, err
	}
	if tok, ok := b.peek(); ok {
		return nil, unexpected(tok)
	}
	return node, nil
}

type astBuilder struct {
	tokens []Token
	pos    int
}

func (b *astBuilder) peek() (Token, bool) {
	return b.peekN(0)
}

func (b *astBuilder) peekN(n int) (Token, bool) {
	if b.pos+n >= len(b.tokens) {
		return Token{}, false
	}
	return b.tokens[b.pos+n], true
}

func (b *astBuilder) consume() (Token, bool) {
	tok, ok := b.peek()
	if ok {
		b.pos++
	}
	return tok, ok
}

func (b *astBuilder) peekKind(n int, kind TokenKind) bool {
	tok, ok := b.peekN(n)
	return ok && tok.Kind == kind
}

func (b *astBuilder) parsePipeline() (Node, error) {
	var cmds []*Command

	cmd, err := b.parseCommand()
	if err != nil {
		return nil, err
	}
	cmds = append(cmds, cmd)

	for b.peekKind(0, TokenPipe) {
		b.consume()
		cmd, err := b.parseCommand()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	// No singleton pipelines in the tree.
	if len(cmds) == 1 {
		return cmds[0], nil
	}
	return &Pipeline{Cmds: cmds}, nil
}

func (b *astBuilder) parseCommand() (*Command, error) {
	cmd := &Command{}

loop:
	for {
		tok, ok := b.peek()
		if !ok {
			break
		}

		switch tok.Kind {
		case TokenPipe:
			break loop

		case TokenEqual:
			return nil, unexpected(tok)

		case TokenWord:
			nextIsEqual := b.peekKind(1, TokenEqual)
			nextIsSlash := b.peekKind(1, TokenSlash)

			switch {
			case len(cmd.Argv) == 0 && nextIsEqual && isAssignmentName(tok):
				assign, err := b.parseAssignment()
				if err != nil {
					return nil, err
				}
				cmd.Assignments = append(cmd.Assignments, assign)

			case nextIsEqual || nextIsSlash:
				// Things like -DFLAG=value or ../.. stay one argument.
				word, err := b.parseWordOrPath()
				if err != nil {
					return nil, err
				}
				cmd.Argv = append(cmd.Argv, word)

			default:
				word, err := b.parseWord()
				if err != nil {
					return nil, err
				}
				cmd.Argv = append(cmd.Argv, word)
			}

		case TokenSlash:
			// Start of an absolute path.
			word, err := b.parseWordOrPath()
			if err != nil {
				return nil, err
			}
			cmd.Argv = append(cmd.Argv, word)

		case TokenRedirectIn, TokenRedirectOut:
			redir, err := b.parseRedirect()
			if err != nil {
				return nil, err
			}
			cmd.Redirects = append(cmd.Redirects, redir)

		default:
			break loop
		}
	}

	if len(cmd.Argv) == 0 && len(cmd.Assignments) == 0 && len(cmd.Redirects) == 0 {
		return nil, ErrEmptyPipeline
	}
	return cmd, nil
}

// isAssignmentName reports whether a word token can be the name in
// `name=value`: a single literal starting with an ASCII letter.
// Anything else in front of `=` folds into a regular argument, so
// `1=x` becomes the argument "1=x" instead of an error.
func isAssignmentName(tok Token) bool {
	if len(tok.Parts) != 1 || tok.Parts[0].Kind != PartLiteral {
		return false
	}
	text := tok.Parts[0].Text
	if text == "" {
		return false
	}
	c := text[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// parseWordOrPath consumes a run of Word and Slash tokens as one
// compound argument, and folds a trailing `=value` into it. This keeps
// `../..` and `-DFLAG=value` as single words.
func (b *astBuilder) parseWordOrPath() (Word, error) {
	var parts []WordPart

loop:
	for {
		tok, ok := b.peek()
		if !ok {
			break
		}

		switch tok.Kind {
		case TokenWord:
			parts = append(parts, tok.Parts...)
			b.consume()

		case TokenSlash:
			parts = append(parts, WordPart{Kind: PartLiteral, Text: "/"})
			b.consume()

		case TokenEqual:
			if len(parts) == 0 {
				b.consume()
				return Word{}, unexpected(tok)
			}
			b.consume()
			parts = append(parts, WordPart{Kind: PartLiteral, Text: "="})

			// Fold the value, if any, and stop: the argument is complete
			// after name=value.
			if value, ok := b.peek(); ok && value.Kind == TokenWord {
				parts = append(parts, value.Parts...)
				b.consume()
			}
			break loop

		default:
			break loop
		}
	}

	if len(parts) == 0 {
		return Word{}, ErrUnexpectedEnd
	}
	return CompoundWord(parts), nil
}

func (b *astBuilder) parseAssignment() (*Assignment, error) {
	tok, ok := b.consume()
	if !ok {
		return nil, ErrUnexpectedEnd
	}
	if tok.Kind != TokenWord {
		return nil, unexpected(tok)
	}

	nameWord := CompoundWord(tok.Parts)
	if !nameWord.IsLiteral() {
		return nil, ErrInvalidAssignment
	}
	name := nameWord.Literal()
	if name == "" {
		return nil, ErrExpectedAssignmentName
	}

	eq, ok := b.consume()
	if !ok {
		return nil, ErrUnexpectedEnd
	}
	if eq.Kind != TokenEqual {
		return nil, unexpected(eq)
	}

	assign := &Assignment{Name: name}

	tok, ok = b.peek()
	switch {
	case !ok, tok.Kind == TokenPipe:
		// Bare `name=` assigns the empty string.
	case tok.Kind == TokenWord:
		value, err := b.parseWord()
		if err != nil {
			return nil, err
		}
		// Assignment values must resolve to a string now, so a command
		// substitution here fails closed.
		if err := rejectCommandSubst(value); err != nil {
			return nil, err
		}
		assign.Value = &value
	default:
		return nil, unexpected(tok)
	}

	return assign, nil
}

func (b *astBuilder) parseRedirect() (*Redirect, error) {
	tok, ok := b.consume()
	if !ok {
		return nil, ErrUnexpectedEnd
	}

	var kind RedirectKind
	switch tok.Kind {
	case TokenRedirectIn:
		kind = RedirectInput
	case TokenRedirectOut:
		kind = RedirectOutput
		// Two `>` in a row form the append operator.
		if b.peekKind(0, TokenRedirectOut) {
			b.consume()
			kind = RedirectAppend
		}
	default:
		return nil, unexpected(tok)
	}

	target, err := b.parseWordOrPath()
	if err != nil {
		return nil, err
	}
	if err := rejectCommandSubst(target); err != nil {
		return nil, err
	}

	return &Redirect{Kind: kind, Target: target}, nil
}

func (b *astBuilder) parseWord() (Word, error) {
	tok, ok := b.consume()
	if !ok {
		return Word{}, ErrUnexpectedEnd
	}
	switch tok.Kind {
	case TokenWord:
		return CompoundWord(tok.Parts), nil
	case TokenSlash:
		return LiteralWord("/"), nil
	default:
		return Word{}, unexpected(tok)
	}
}

func rejectCommandSubst(w Word) error {
	for _, p := range w.Parts() {
		if p.Kind == PartCommand {
			return ErrUnsupportedSubstitution
		}
	}
	return nil
}
