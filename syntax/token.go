package syntax

import "fmt"

// Position locates a byte in the original source.
// Line and Column are 1-based; Column counts bytes, not runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TokenKind classifies the tokens produced by the lexer.
type TokenKind int

const (
	TokenIdent    TokenKind = iota // identifiers and contextual keywords
	TokenKeyword                   // let, var
	TokenAt                        // @
	TokenColon                     // :
	TokenComma                     // ,
	TokenSemicolon                 // ;
	TokenAssign                    // =
	TokenLParen                    // (
	TokenRParen                    // )
	TokenLBrace                    // {
	TokenRBrace                    // }
	TokenLBracket                  // [
	TokenRBracket                  // ]
	TokenLAngle                    // <
	TokenRAngle                    // >
	TokenDot                       // .
	TokenBang                      // !
	TokenQuestion                  // ?
	TokenArrow                     // ->
	TokenOperator                  // any other operator-character run
	TokenString                    // string literal, quotes included
	TokenNumber                    // numeric literal
	TokenEOF
)

// Token is a lexical token plus the trivia (whitespace and comments)
// that precedes it. Printing Leading followed by Text for every token
// in order reproduces the source byte for byte.
type Token struct {
	Kind    TokenKind
	Text    string
	Leading string
	Pos     Position // position of Text, after the leading trivia
}

// End returns the position one past the last byte of the token text.
func (t Token) End() Position {
	end := t.Pos
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
	}
	end.Offset += len(t.Text)
	return end
}

// Comment is a single line or block comment with its position.
// Comments also live inside token trivia; this list exists so that
// suppression directives can be resolved without re-scanning trivia.
type Comment struct {
	Text string
	Pos  Position
}
