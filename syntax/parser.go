package syntax

import "strings"

// Parse lexes and parses src into a SourceFile. Parsing never fails:
// constructs outside the declaration subset are preserved as raw
// statements, and malformed declarations degrade to raw token runs so
// they can never be misclassified or corrupted by a rewrite.
func Parse(filename string, src []byte) *SourceFile {
	tokens, comments := NewLexer(string(src)).Tokenize()
	p := &parser{tokens: tokens}
	stmts := p.parseStmts(false)
	return &SourceFile{
		Filename: filename,
		Stmts:    stmts,
		EOFToken: p.tokens[len(p.tokens)-1],
		Comments: comments,
	}
}

// ParseFile is a convenience wrapper over Parse for in-memory sources
// that carry their own filename.
func ParseFile(filename string, src []byte) (*SourceFile, error) {
	return Parse(filename, src), nil
}

type parser struct {
	tokens []Token
	pos    int
}

// declModifiers may appear between attributes and the let/var keyword.
var declModifiers = map[string]bool{
	"public":      true,
	"private":     true,
	"internal":    true,
	"fileprivate": true,
	"open":        true,
	"static":      true,
	"class":       true,
	"final":       true,
	"lazy":        true,
	"weak":        true,
	"unowned":     true,
	"override":    true,
	"nonisolated": true,
}

func (p *parser) cur() Token { return p.tokens[p.pos] }

func (p *parser) parseStmts(inBlock bool) []Stmt {
	var stmts []Stmt
	var raw []Token

	flush := func() {
		if len(raw) > 0 {
			stmts = append(stmts, &RawStmt{Tokens: raw})
			raw = nil
		}
	}

	for {
		t := p.cur()
		switch {
		case t.Kind == TokenEOF:
			flush()
			return stmts
		case t.Kind == TokenRBrace:
			if inBlock {
				flush()
				return stmts
			}
			// stray closing brace at top level
			raw = append(raw, t)
			p.pos++
		case t.Kind == TokenLBrace:
			flush()
			stmts = append(stmts, p.parseBlock())
		case p.declStart(p.pos):
			flush()
			stmts = append(stmts, p.parseVarDecl())
		default:
			raw = append(raw, t)
			p.pos++
		}
	}
}

func (p *parser) parseBlock() *BlockStmt {
	lbrace := p.cur()
	p.pos++
	stmts := p.parseStmts(true)
	var rbrace Token
	if p.cur().Kind == TokenRBrace {
		rbrace = p.cur()
		p.pos++
	} else {
		// unclosed block at EOF: synthesize an empty brace so printing
		// still reproduces the input
		rbrace = Token{Kind: TokenRBrace, Pos: p.cur().Pos}
	}
	return &BlockStmt{LBrace: lbrace, Stmts: stmts, RBrace: rbrace}
}

// declStart reports whether the tokens at i begin a let/var declaration,
// allowing attributes and modifiers before the keyword.
func (p *parser) declStart(i int) bool {
	for {
		switch {
		case p.tokens[i].Kind == TokenKeyword:
			return true
		case p.tokens[i].Kind == TokenAt:
			if p.tokens[i+1].Kind != TokenIdent {
				return false
			}
			i += 2
			if p.tokens[i].Kind == TokenLParen && p.tokens[i].Leading == "" {
				j, ok := p.skipBalanced(i)
				if !ok {
					return false
				}
				i = j
			}
		case p.tokens[i].Kind == TokenIdent && declModifiers[p.tokens[i].Text]:
			i++
		default:
			return false
		}
	}
}

// skipBalanced returns the index just past the bracketed run opening at
// i, or false if it never closes.
func (p *parser) skipBalanced(i int) (int, bool) {
	depth := 0
	for ; p.tokens[i].Kind != TokenEOF; i++ {
		switch p.tokens[i].Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return i, false
}

func (p *parser) parseVarDecl() Stmt {
	mark := p.pos
	decl := &VarDecl{}

	for p.cur().Kind == TokenAt {
		attr := Attribute{At: p.cur()}
		p.pos++
		attr.Name = p.cur()
		p.pos++
		if p.cur().Kind == TokenLParen && p.cur().Leading == "" {
			end, ok := p.skipBalanced(p.pos)
			if !ok {
				return p.rawFrom(mark)
			}
			attr.Args = p.tokens[p.pos:end]
			p.pos = end
		}
		decl.Attributes = append(decl.Attributes, attr)
	}

	for p.cur().Kind == TokenIdent && declModifiers[p.cur().Text] {
		decl.Modifiers = append(decl.Modifiers, p.cur())
		p.pos++
	}

	if p.cur().Kind != TokenKeyword {
		return p.rawFrom(mark)
	}
	decl.Keyword = p.cur()
	p.pos++

	for {
		if p.cur().Kind != TokenIdent {
			// tuple patterns and anything else we do not model
			return p.rawFrom(mark)
		}
		binding := Binding{Name: p.cur()}
		p.pos++

		if p.cur().Kind == TokenColon {
			colon := p.cur()
			p.pos++
			typeToks := p.collectTypeTokens()
			if len(typeToks) == 0 {
				return p.rawFrom(mark)
			}
			binding.Type = &TypeAnnotation{Colon: colon, Type: classifyType(typeToks)}
		}

		if p.cur().Kind == TokenAssign {
			assign := p.cur()
			p.pos++
			exprToks := p.collectExprTokens()
			if len(exprToks) == 0 {
				return p.rawFrom(mark)
			}
			binding.Init = &Initializer{Assign: assign, Value: ClassifyExpr(exprToks)}
		}

		if p.cur().Kind == TokenComma {
			comma := p.cur()
			p.pos++
			binding.Comma = &comma
			decl.Bindings = append(decl.Bindings, binding)
			continue
		}
		decl.Bindings = append(decl.Bindings, binding)
		return decl
	}
}

// rawFrom rewinds to mark and consumes up to the end of the statement
// as an uninterpreted token run.
func (p *parser) rawFrom(mark int) Stmt {
	p.pos = mark
	var toks []Token
	for {
		t := p.cur()
		if t.Kind == TokenEOF || t.Kind == TokenRBrace || t.Kind == TokenLBrace {
			break
		}
		if len(toks) > 0 && strings.Contains(t.Leading, "\n") {
			break
		}
		toks = append(toks, t)
		p.pos++
		if t.Kind == TokenSemicolon {
			break
		}
	}
	return &RawStmt{Tokens: toks}
}

// collectTypeTokens gathers the tokens of one type annotation. The run
// ends at an assignment, comma, semicolon, brace, or newline outside of
// any bracket or generic nesting.
func (p *parser) collectTypeTokens() []Token {
	var toks []Token
	depth, angle := 0, 0
	for {
		t := p.cur()
		if t.Kind == TokenEOF {
			return toks
		}
		if depth == 0 && angle == 0 {
			switch t.Kind {
			case TokenAssign, TokenComma, TokenSemicolon, TokenLBrace, TokenRBrace,
				TokenRParen, TokenRBracket:
				return toks
			}
			if len(toks) > 0 && strings.Contains(t.Leading, "\n") {
				return toks
			}
		}
		switch t.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth > 0 {
				depth--
			}
		case TokenLAngle:
			angle++
		case TokenRAngle:
			if angle > 0 {
				angle--
			}
		case TokenOperator:
			// nested generics close with a ">>" operator run
			angle -= closingAngles(t, angle)
		}
		toks = append(toks, t)
		p.pos++
	}
}

// collectExprTokens gathers the tokens of one initializer expression.
// Angle brackets only nest when they open a generic clause attached to
// an identifier, so comparison chains do not swallow commas. A brace
// opening mid-run ends the expression and is parsed as a block, which
// keeps declarations inside control-flow bodies reachable; a brace
// opening the run is a closure literal and is consumed whole.
func (p *parser) collectExprTokens() []Token {
	var toks []Token
	depth, angle := 0, 0
	for {
		t := p.cur()
		if t.Kind == TokenEOF {
			return toks
		}
		if depth == 0 && angle == 0 {
			switch t.Kind {
			case TokenComma, TokenSemicolon:
				if len(toks) > 0 {
					return toks
				}
			case TokenRBrace, TokenRParen, TokenRBracket:
				return toks
			case TokenLBrace:
				if len(toks) > 0 {
					return toks
				}
			}
			if len(toks) > 0 && strings.Contains(t.Leading, "\n") {
				return toks
			}
		}
		switch t.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth > 0 {
				depth--
			}
		case TokenLAngle:
			if t.Leading == "" && len(toks) > 0 && toks[len(toks)-1].Kind == TokenIdent {
				angle++
			}
		case TokenRAngle:
			if angle > 0 {
				angle--
			}
		case TokenOperator:
			angle -= closingAngles(t, angle)
		}
		toks = append(toks, t)
		p.pos++
	}
}

// closingAngles reports how many of the pending angle brackets an
// all-'>' operator run closes.
func closingAngles(t Token, open int) int {
	if open == 0 || t.Text != strings.Repeat(">", len(t.Text)) {
		return 0
	}
	if len(t.Text) < open {
		return len(t.Text)
	}
	return open
}

func classifyType(toks []Token) Type {
	if len(toks) == 0 {
		return &OpaqueType{}
	}
	last := toks[len(toks)-1]
	if len(toks) > 1 && (last.Kind == TokenQuestion || last.Kind == TokenBang) && last.Leading == "" {
		return &OptionalType{Wrapped: classifyType(toks[:len(toks)-1]), Mark: last}
	}
	if toks[0].Kind == TokenIdent {
		if len(toks) == 1 {
			return &IdentType{Name: toks[0]}
		}
		if toks[1].Kind == TokenLAngle && toks[1].Leading == "" && balancedAngles(toks[1:]) {
			return &IdentType{Name: toks[0], Generic: toks[1:]}
		}
	}
	return &OpaqueType{Tokens: toks}
}

// ClassifyExpr builds the expression sum for a token run. Shapes the
// redundancy rule cannot reason about collapse into OpaqueExpr.
func ClassifyExpr(toks []Token) Expr {
	n := len(toks)
	if n == 0 {
		return &OpaqueExpr{}
	}
	last := toks[n-1]

	if n > 1 && last.Kind == TokenBang && last.Leading == "" {
		return &ForceUnwrapExpr{Operand: ClassifyExpr(toks[:n-1]), Bang: last}
	}

	if toks[0].Kind == TokenIdent {
		if n == 1 {
			if toks[0].Text == "true" || toks[0].Text == "false" {
				return &BoolLiteralExpr{Lit: toks[0]}
			}
			return &IdentExpr{Name: toks[0]}
		}
		if toks[1].Kind == TokenLAngle && toks[1].Leading == "" && balancedAngles(toks[1:]) {
			return &IdentExpr{Name: toks[0], Generic: toks[1:]}
		}
	}

	if last.Kind == TokenRParen {
		if open := matchingOpen(toks); open > 0 {
			callee := ClassifyExpr(toks[:open])
			switch callee.(type) {
			case *IdentExpr, *MemberAccessExpr:
				return &CallExpr{
					Callee: callee,
					LParen: toks[open],
					Args:   toks[open+1 : n-1],
					RParen: last,
				}
			}
		}
		return &OpaqueExpr{Tokens: toks}
	}

	if dot := lastTopLevelDot(toks); dot >= 0 && dot == n-2 && last.Kind == TokenIdent {
		if dot == 0 {
			return &MemberAccessExpr{Dot: toks[0], Name: toks[1]}
		}
		return &MemberAccessExpr{Base: ClassifyExpr(toks[:dot]), Dot: toks[dot], Name: last}
	}

	return &OpaqueExpr{Tokens: toks}
}

// matchingOpen finds the index of the opening paren matching the final
// closing paren, or -1 if the run in between is unbalanced.
func matchingOpen(toks []Token) int {
	depth := 1
	for i := len(toks) - 2; i >= 0; i-- {
		switch toks[i].Kind {
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth++
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth--
			if depth == 0 {
				if toks[i].Kind == TokenLParen {
					return i
				}
				return -1
			}
		}
	}
	return -1
}

func lastTopLevelDot(toks []Token) int {
	depth, angle := 0, 0
	dot := -1
	for i, t := range toks {
		switch t.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth > 0 {
				depth--
			}
		case TokenLAngle:
			if t.Leading == "" && i > 0 && toks[i-1].Kind == TokenIdent {
				angle++
			}
		case TokenRAngle:
			if angle > 0 {
				angle--
			}
		case TokenOperator:
			angle -= closingAngles(t, angle)
		case TokenDot:
			if depth == 0 && angle == 0 {
				dot = i
			}
		}
	}
	return dot
}

func balancedAngles(toks []Token) bool {
	if len(toks) < 2 || toks[0].Kind != TokenLAngle || toks[len(toks)-1].Kind != TokenRAngle {
		return false
	}
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case TokenLAngle:
			depth++
		case TokenRAngle:
			depth--
			if depth == 0 {
				return i == len(toks)-1
			}
		}
	}
	return false
}
