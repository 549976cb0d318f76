package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans Swift-style source into tokens. It never fails: anything
// it cannot classify becomes an operator or identifier token, and
// unterminated literals run to the end of the input.
type Lexer struct {
	input    string
	position int
	line     int
	column   int
	tokens   []Token
	comments []Comment
}

// NewLexer returns a new Lexer with the given input and initializes state.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
		tokens: make([]Token, 0),
	}
}

// declKeywords are the only tokens lexed as TokenKeyword; every other
// word stays an identifier so that unsupported constructs degrade to
// raw statements instead of misparses.
var declKeywords = map[string]bool{
	"let": true,
	"var": true,
}

const operatorChars = "+-*/%=!<>&|^~?."

// Tokenize scans the whole input. The final token is always TokenEOF,
// whose leading trivia holds any trailing whitespace or comments.
func (l *Lexer) Tokenize() ([]Token, []Comment) {
	for {
		leading := l.scanTrivia()
		if l.position >= len(l.input) {
			l.tokens = append(l.tokens, Token{
				Kind:    TokenEOF,
				Leading: leading,
				Pos:     l.pos(),
			})
			return l.tokens, l.comments
		}

		start := l.pos()
		c := l.input[l.position]
		switch {
		case c == '"':
			l.addToken(TokenString, l.scanString(), leading, start)
		case c >= '0' && c <= '9':
			l.addToken(TokenNumber, l.scanNumber(), leading, start)
		case isIdentStart(c):
			word := l.scanIdent()
			kind := TokenIdent
			if declKeywords[word] {
				kind = TokenKeyword
			}
			l.addToken(kind, word, leading, start)
		case strings.IndexByte(operatorChars, c) >= 0:
			l.addToken(l.scanOperator(leading))
		default:
			kind := punctKind(c)
			l.advance(1)
			l.addToken(kind, string(c), leading, start)
		}
	}
}

func (l *Lexer) addToken(kind TokenKind, text, leading string, pos Position) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Leading: leading, Pos: pos})
}

func punctKind(c byte) TokenKind {
	switch c {
	case '@':
		return TokenAt
	case ':':
		return TokenColon
	case ',':
		return TokenComma
	case ';':
		return TokenSemicolon
	case '(':
		return TokenLParen
	case ')':
		return TokenRParen
	case '{':
		return TokenLBrace
	case '}':
		return TokenRBrace
	case '[':
		return TokenLBracket
	case ']':
		return TokenRBracket
	default:
		return TokenOperator
	}
}

// scanTrivia consumes whitespace and comments, recording comments as it goes.
func (l *Lexer) scanTrivia() string {
	start := l.position
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance(1)
		case c == '/' && l.position+1 < len(l.input) && l.input[l.position+1] == '/':
			pos := l.pos()
			text := l.scanLineComment()
			l.comments = append(l.comments, Comment{Text: text, Pos: pos})
		case c == '/' && l.position+1 < len(l.input) && l.input[l.position+1] == '*':
			pos := l.pos()
			text := l.scanBlockComment()
			l.comments = append(l.comments, Comment{Text: text, Pos: pos})
		default:
			return l.input[start:l.position]
		}
	}
	return l.input[start:l.position]
}

func (l *Lexer) scanLineComment() string {
	start := l.position
	for l.position < len(l.input) && l.input[l.position] != '\n' {
		l.advance(1)
	}
	return l.input[start:l.position]
}

// scanBlockComment consumes a /* ... */ comment. Block comments nest.
func (l *Lexer) scanBlockComment() string {
	start := l.position
	l.advance(2)
	depth := 1
	for l.position < len(l.input) && depth > 0 {
		if l.input[l.position] == '/' && l.position+1 < len(l.input) && l.input[l.position+1] == '*' {
			depth++
			l.advance(2)
		} else if l.input[l.position] == '*' && l.position+1 < len(l.input) && l.input[l.position+1] == '/' {
			depth--
			l.advance(2)
		} else {
			l.advance(1)
		}
	}
	return l.input[start:l.position]
}

func (l *Lexer) scanString() string {
	start := l.position
	l.advance(1) // opening quote
	for l.position < len(l.input) {
		c := l.input[l.position]
		if c == '\\' && l.position+1 < len(l.input) {
			l.advance(2)
			continue
		}
		l.advance(1)
		if c == '"' {
			break
		}
	}
	return l.input[start:l.position]
}

func (l *Lexer) scanNumber() string {
	start := l.position
	for l.position < len(l.input) {
		c := l.input[l.position]
		if (c >= '0' && c <= '9') || c == '.' || c == '_' || c == 'x' || c == 'b' || c == 'o' ||
			(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			// a trailing range operator (0...n) must not be eaten
			if c == '.' && l.position+1 < len(l.input) && l.input[l.position+1] == '.' {
				break
			}
			l.advance(1)
			continue
		}
		break
	}
	return l.input[start:l.position]
}

func (l *Lexer) scanIdent() string {
	start := l.position
	for l.position < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if !isIdentPart(r) {
			break
		}
		l.advance(size)
	}
	return l.input[start:l.position]
}

// scanOperator lexes operator characters. Single-character occurrences
// of structurally meaningful operators keep their own kinds so that the
// parser can see assignment, member access, force unwrap, and generic
// angle brackets; longer runs collapse into one TokenOperator.
func (l *Lexer) scanOperator(leading string) (TokenKind, string, string, Position) {
	start := l.pos()
	begin := l.position
	for l.position < len(l.input) && strings.IndexByte(operatorChars, l.input[l.position]) >= 0 {
		// comments interrupt an operator run
		if l.input[l.position] == '/' && l.position+1 < len(l.input) &&
			(l.input[l.position+1] == '/' || l.input[l.position+1] == '*') {
			break
		}
		l.advance(1)
	}
	text := l.input[begin:l.position]
	switch text {
	case "=":
		return TokenAssign, text, leading, start
	case "!":
		return TokenBang, text, leading, start
	case "?":
		return TokenQuestion, text, leading, start
	case ".":
		return TokenDot, text, leading, start
	case "<":
		return TokenLAngle, text, leading, start
	case ">":
		return TokenRAngle, text, leading, start
	case "->":
		return TokenArrow, text, leading, start
	default:
		return TokenOperator, text, leading, start
	}
}

func (l *Lexer) pos() Position {
	return Position{Offset: l.position, Line: l.line, Column: l.column}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.position < len(l.input); i++ {
		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.position++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c == '`' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || r == '`' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
