package syntax

import "strings"

// Print reproduces the source for a file. For an unmodified tree the
// output is byte-identical to the parsed input; after a rewrite it is
// the corrected source.
func Print(f *SourceFile) string {
	var b strings.Builder
	for _, s := range f.Stmts {
		printStmt(&b, s)
	}
	printToken(&b, f.EOFToken)
	return b.String()
}

// PrintStmt renders a single statement, including its leading trivia.
func PrintStmt(s Stmt) string {
	var b strings.Builder
	printStmt(&b, s)
	return b.String()
}

func printToken(b *strings.Builder, t Token) {
	b.WriteString(t.Leading)
	b.WriteString(t.Text)
}

func printTokens(b *strings.Builder, toks []Token) {
	for _, t := range toks {
		printToken(b, t)
	}
}

func printStmt(b *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *VarDecl:
		for _, attr := range s.Attributes {
			printToken(b, attr.At)
			printToken(b, attr.Name)
			printTokens(b, attr.Args)
		}
		printTokens(b, s.Modifiers)
		printToken(b, s.Keyword)
		for _, binding := range s.Bindings {
			printToken(b, binding.Name)
			if binding.Type != nil {
				printToken(b, binding.Type.Colon)
				printType(b, binding.Type.Type)
			}
			if binding.Init != nil {
				printToken(b, binding.Init.Assign)
				printExpr(b, binding.Init.Value)
			}
			if binding.Comma != nil {
				printToken(b, *binding.Comma)
			}
		}
	case *BlockStmt:
		printToken(b, s.LBrace)
		for _, inner := range s.Stmts {
			printStmt(b, inner)
		}
		printToken(b, s.RBrace)
	case *RawStmt:
		printTokens(b, s.Tokens)
	}
}

func printType(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case *IdentType:
		printToken(b, t.Name)
		printTokens(b, t.Generic)
	case *OptionalType:
		printType(b, t.Wrapped)
		printToken(b, t.Mark)
	case *OpaqueType:
		printTokens(b, t.Tokens)
	}
}

func printExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *IdentExpr:
		printToken(b, e.Name)
		printTokens(b, e.Generic)
	case *CallExpr:
		printExpr(b, e.Callee)
		printToken(b, e.LParen)
		printTokens(b, e.Args)
		printToken(b, e.RParen)
	case *MemberAccessExpr:
		if e.Base != nil {
			printExpr(b, e.Base)
		}
		printToken(b, e.Dot)
		printToken(b, e.Name)
	case *BoolLiteralExpr:
		printToken(b, e.Lit)
	case *ForceUnwrapExpr:
		printExpr(b, e.Operand)
		printToken(b, e.Bang)
	case *OpaqueExpr:
		printTokens(b, e.Tokens)
	}
}

// TokensText renders a token run without the run's own leading trivia,
// preserving the spacing between tokens. It backs the textual matching
// of generic clauses.
func TokensText(toks []Token) string {
	if len(toks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(toks[0].Text)
	for _, t := range toks[1:] {
		printToken(&b, t)
	}
	return b.String()
}
