package shell

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexing errors. All of them are fatal for the current line.
var (
	// ErrUnfinishedQuote indicates input ended inside a single or double
	// quoted string.
	ErrUnfinishedQuote = errors.New("unterminated quoted string")
	// ErrUnfinishedCommandSubst indicates input ended inside $(...).
	ErrUnfinishedCommandSubst = errors.New("unterminated command substitution")
	// ErrUnfinishedParameterSubst indicates input ended inside ${...}.
	ErrUnfinishedParameterSubst = errors.New("unterminated parameter substitution")
)

const eof rune = -1

type lexState int

const (
	lexStart lexState = iota
	lexWord
	lexSingleQuote
	lexDoubleQuote
	lexCommandSubst
	lexParameterSubst
)

// lexer is a finite-state machine over the runes of a single input line.
// It looks ahead at most one rune, to tell `$(` and `${` apart from a
// bare `$name`.
type lexer struct {
	input string
	pos   int
	width int

	state lexState
	// depth tracks nested parentheses or braces while inside a
	// substitution so `$(a (b) c)` closes at the right spot.
	depth int
	// ret is the state to restore once a substitution closes; a
	// substitution may appear bare in a word or inside double quotes.
	ret lexState

	parts []WordPart
	buf   strings.Builder
	out   []Token
}

// Tokenize splits one line of input into tokens. Token order matches
// source order. An unterminated quote or substitution aborts the whole
// line with the corresponding error.
func Tokenize(line string) ([]Token, error) {
	l := &lexer{input: line, state: lexStart}
	return l.run()
}

func (l *lexer) run() ([]Token, error) {
	for {
		r := l.next()
		if r == eof {
			break
		}

		switch l.state {
		case lexStart:
			l.lexStart(r)
		case lexWord:
			l.lexWord(r)
		case lexSingleQuote:
			l.lexSingleQuote(r)
		case lexDoubleQuote:
			l.lexDoubleQuote(r)
		case lexCommandSubst:
			l.lexSubst(r, '(', ')', PartCommand)
		case lexParameterSubst:
			l.lexSubst(r, '{', '}', PartParameter)
		}
	}

	switch l.state {
	case lexSingleQuote, lexDoubleQuote:
		return nil, ErrUnfinishedQuote
	case lexCommandSubst:
		return nil, ErrUnfinishedCommandSubst
	case lexParameterSubst:
		return nil, ErrUnfinishedParameterSubst
	}

	l.flushPart()
	l.flushWord()
	return l.out, nil
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	return r
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) lexStart(r rune) {
	switch r {
	case ' ', '\t':
		// Consecutive whitespace collapses.
	case '|':
		l.out = append(l.out, opToken(TokenPipe))
	case '=':
		l.out = append(l.out, opToken(TokenEqual))
	case '/':
		l.out = append(l.out, opToken(TokenSlash))
	case '<':
		l.out = append(l.out, opToken(TokenRedirectIn))
	case '>':
		l.out = append(l.out, opToken(TokenRedirectOut))
	case '\'':
		l.state = lexSingleQuote
	case '"':
		l.state = lexDoubleQuote
	case '$':
		l.startDollar(lexWord)
	default:
		l.buf.WriteRune(r)
		l.state = lexWord
	}
}

func (l *lexer) lexWord(r rune) {
	switch r {
	case ' ', '\t':
		l.flushPart()
		l.flushWord()
		l.state = lexStart
	case '|', '=', '/', '<', '>':
		l.flushPart()
		l.flushWord()
		l.state = lexStart
		l.lexStart(r)
	case '\'':
		l.flushPart()
		l.state = lexSingleQuote
	case '"':
		l.flushPart()
		l.state = lexDoubleQuote
	case '$':
		l.startDollar(lexWord)
	default:
		l.buf.WriteRune(r)
	}
}

func (l *lexer) lexSingleQuote(r rune) {
	if r != '\'' {
		l.buf.WriteRune(r)
		return
	}
	l.flushQuoted()
	l.state = lexWord
}

func (l *lexer) lexDoubleQuote(r rune) {
	switch r {
	case '"':
		l.flushQuoted()
		l.state = lexWord
	case '$':
		// Only $( and ${ are special inside double quotes; a bare $name
		// stays literal.
		switch l.peek() {
		case '(':
			l.next()
			l.flushQuotedPending()
			l.enterSubst(lexCommandSubst, lexDoubleQuote)
		case '{':
			l.next()
			l.flushQuotedPending()
			l.enterSubst(lexParameterSubst, lexDoubleQuote)
		default:
			l.buf.WriteRune(r)
		}
	default:
		l.buf.WriteRune(r)
	}
}

func (l *lexer) lexSubst(r rune, open, close rune, kind PartKind) {
	switch r {
	case open:
		l.depth++
		l.buf.WriteRune(r)
	case close:
		l.depth--
		if l.depth == 0 {
			text := l.buf.String()
			l.buf.Reset()
			l.parts = append(l.parts, WordPart{Kind: kind, Text: text})
			l.state = l.ret
			return
		}
		l.buf.WriteRune(r)
	default:
		l.buf.WriteRune(r)
	}
}

// startDollar handles a `$` seen outside quotes. With one rune of
// lookahead it either enters a substitution state or begins collecting a
// bare $name reference into the buffer.
func (l *lexer) startDollar(ret lexState) {
	switch l.peek() {
	case '(':
		l.next()
		l.flushPart()
		l.enterSubst(lexCommandSubst, ret)
	case '{':
		l.next()
		l.flushPart()
		l.enterSubst(lexParameterSubst, ret)
	default:
		l.flushPart()
		l.buf.WriteRune('$')
		l.state = lexWord
	}
}

func (l *lexer) enterSubst(state, ret lexState) {
	l.state = state
	l.ret = ret
	l.depth = 1
}

// flushPart converts the pending unquoted buffer into a word part. A
// buffer of the form $name where name starts with a letter or
// underscore becomes a parameter reference; anything else is literal.
func (l *lexer) flushPart() {
	if l.buf.Len() == 0 {
		return
	}
	text := l.buf.String()
	l.buf.Reset()

	if len(text) > 1 && text[0] == '$' && isNameStart(firstRune(text[1:])) {
		l.parts = append(l.parts, WordPart{Kind: PartParameter, Text: text[1:]})
		return
	}
	l.parts = append(l.parts, WordPart{Kind: PartLiteral, Text: text})
}

// flushQuoted ends a quoted region. Quoted text is always literal, and
// an empty quoted region still forms a word, so a pair of bare quotes
// expands to one empty argument.
func (l *lexer) flushQuoted() {
	if l.buf.Len() == 0 && len(l.parts) > 0 {
		return
	}
	text := l.buf.String()
	l.buf.Reset()
	l.parts = append(l.parts, WordPart{Kind: PartLiteral, Text: text})
}

// flushQuotedPending flushes quoted text accumulated before a
// substitution begins mid-quote.
func (l *lexer) flushQuotedPending() {
	if l.buf.Len() == 0 {
		return
	}
	text := l.buf.String()
	l.buf.Reset()
	l.parts = append(l.parts, WordPart{Kind: PartLiteral, Text: text})
}

func (l *lexer) flushWord() {
	if len(l.parts) == 0 {
		return
	}
	l.out = append(l.out, wordToken(l.parts))
	l.parts = nil
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
