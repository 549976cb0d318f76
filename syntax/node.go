package syntax

// Node is implemented by every element of the tree.
type Node interface {
	Pos() Position
	End() Position
}

// Stmt is a top-level or block-level statement.
type Stmt interface {
	Node
	stmtNode()
}

// Type is the closed set of type-annotation shapes. Only IdentType is
// ever considered by the redundancy rule; everything else is carried
// verbatim for printing.
type Type interface {
	Node
	typeNode()
}

// Expr is the closed set of initializer shapes the rule can match,
// plus OpaqueExpr for everything else.
type Expr interface {
	Node
	exprNode()
}

var (
	_ Stmt = (*VarDecl)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*RawStmt)(nil)

	_ Type = (*IdentType)(nil)
	_ Type = (*OptionalType)(nil)
	_ Type = (*OpaqueType)(nil)

	_ Expr = (*IdentExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*MemberAccessExpr)(nil)
	_ Expr = (*BoolLiteralExpr)(nil)
	_ Expr = (*ForceUnwrapExpr)(nil)
	_ Expr = (*OpaqueExpr)(nil)
)

// SourceFile is the root of a parsed file.
type SourceFile struct {
	Filename string
	Stmts    []Stmt
	EOFToken Token // carries trailing trivia
	Comments []Comment
}

// VarDecl is a let/var declaration introducing one or more bindings.
type VarDecl struct {
	Attributes []Attribute
	Modifiers  []Token // access-control and storage modifiers, verbatim
	Keyword    Token   // let or var
	Bindings   []Binding
}

// Attribute is an @Name marker, optionally with parenthesized arguments.
type Attribute struct {
	At   Token
	Name Token
	Args []Token // includes the surrounding parens; nil when absent
}

// Binding is one name within a declaration, with optional annotation
// and initializer. Comma separates it from the next binding.
type Binding struct {
	Name  Token
	Type  *TypeAnnotation
	Init  *Initializer
	Comma *Token
}

// TypeAnnotation is ": Type".
type TypeAnnotation struct {
	Colon Token
	Type  Type
}

// Initializer is "= expression".
type Initializer struct {
	Assign Token
	Value  Expr
}

// BlockStmt is a braced region. Declarations nested inside type or
// function bodies live here, which is how the rule reaches them.
type BlockStmt struct {
	LBrace Token
	Stmts  []Stmt
	RBrace Token
}

// RawStmt is a run of tokens the declaration grammar does not model.
// It is preserved verbatim and never inspected.
type RawStmt struct {
	Tokens []Token
}

// IdentType is a plain type name with an optional generic clause.
type IdentType struct {
	Name    Token
	Generic []Token // balanced <...> clause, nil when absent
}

// OptionalType is the ? or ! suffix sugar around another type.
type OptionalType struct {
	Wrapped Type
	Mark    Token
}

// OpaqueType covers tuples, functions, collection sugar, and any other
// type form the rule never flags.
type OpaqueType struct {
	Tokens []Token
}

// IdentExpr is a bare name, optionally with an explicit generic clause.
type IdentExpr struct {
	Name    Token
	Generic []Token
}

// CallExpr is callee(arguments...). Arguments are kept as raw tokens;
// the rule only ever looks at the callee.
type CallExpr struct {
	Callee Expr
	LParen Token
	Args   []Token
	RParen Token
}

// MemberAccessExpr is Base.Name. A nil Base is an implicit member
// expression like ".white".
type MemberAccessExpr struct {
	Base Expr
	Dot  Token
	Name Token
}

// BoolLiteralExpr is the literal true or false.
type BoolLiteralExpr struct {
	Lit Token
}

// ForceUnwrapExpr is operand! .
type ForceUnwrapExpr struct {
	Operand Expr
	Bang    Token
}

// OpaqueExpr is any initializer shape the rule does not match.
type OpaqueExpr struct {
	Tokens []Token
}

func (*VarDecl) stmtNode()   {}
func (*BlockStmt) stmtNode() {}
func (*RawStmt) stmtNode()   {}

func (*IdentType) typeNode()    {}
func (*OptionalType) typeNode() {}
func (*OpaqueType) typeNode()   {}

func (*IdentExpr) exprNode()        {}
func (*CallExpr) exprNode()         {}
func (*MemberAccessExpr) exprNode() {}
func (*BoolLiteralExpr) exprNode()  {}
func (*ForceUnwrapExpr) exprNode()  {}
func (*OpaqueExpr) exprNode()       {}

func (d *VarDecl) Pos() Position {
	if len(d.Attributes) > 0 {
		return d.Attributes[0].At.Pos
	}
	if len(d.Modifiers) > 0 {
		return d.Modifiers[0].Pos
	}
	return d.Keyword.Pos
}

func (d *VarDecl) End() Position {
	if len(d.Bindings) == 0 {
		return d.Keyword.End()
	}
	return d.Bindings[len(d.Bindings)-1].End()
}

func (b Binding) Pos() Position { return b.Name.Pos }

func (b Binding) End() Position {
	switch {
	case b.Comma != nil:
		return b.Comma.End()
	case b.Init != nil:
		return b.Init.Value.End()
	case b.Type != nil:
		return b.Type.Type.End()
	default:
		return b.Name.End()
	}
}

func (t *TypeAnnotation) Pos() Position { return t.Colon.Pos }
func (t *TypeAnnotation) End() Position { return t.Type.End() }

func (s *BlockStmt) Pos() Position { return s.LBrace.Pos }
func (s *BlockStmt) End() Position { return s.RBrace.End() }

func (s *RawStmt) Pos() Position { return firstTokenPos(s.Tokens) }
func (s *RawStmt) End() Position { return lastTokenEnd(s.Tokens) }

func (t *IdentType) Pos() Position { return t.Name.Pos }
func (t *IdentType) End() Position {
	if len(t.Generic) > 0 {
		return t.Generic[len(t.Generic)-1].End()
	}
	return t.Name.End()
}

func (t *OptionalType) Pos() Position { return t.Wrapped.Pos() }
func (t *OptionalType) End() Position { return t.Mark.End() }

func (t *OpaqueType) Pos() Position { return firstTokenPos(t.Tokens) }
func (t *OpaqueType) End() Position { return lastTokenEnd(t.Tokens) }

func (e *IdentExpr) Pos() Position { return e.Name.Pos }
func (e *IdentExpr) End() Position {
	if len(e.Generic) > 0 {
		return e.Generic[len(e.Generic)-1].End()
	}
	return e.Name.End()
}

func (e *CallExpr) Pos() Position { return e.Callee.Pos() }
func (e *CallExpr) End() Position { return e.RParen.End() }

func (e *MemberAccessExpr) Pos() Position {
	if e.Base != nil {
		return e.Base.Pos()
	}
	return e.Dot.Pos
}
func (e *MemberAccessExpr) End() Position { return e.Name.End() }

func (e *BoolLiteralExpr) Pos() Position { return e.Lit.Pos }
func (e *BoolLiteralExpr) End() Position { return e.Lit.End() }

func (e *ForceUnwrapExpr) Pos() Position { return e.Operand.Pos() }
func (e *ForceUnwrapExpr) End() Position { return e.Bang.End() }

func (e *OpaqueExpr) Pos() Position { return firstTokenPos(e.Tokens) }
func (e *OpaqueExpr) End() Position { return lastTokenEnd(e.Tokens) }

func firstTokenPos(toks []Token) Position {
	if len(toks) == 0 {
		return Position{}
	}
	return toks[0].Pos
}

func lastTokenEnd(toks []Token) Position {
	if len(toks) == 0 {
		return Position{}
	}
	return toks[len(toks)-1].End()
}

// Inspect walks every statement in document order, recursing into
// blocks, and calls fn for each. If fn returns false for a block, its
// children are skipped.
func Inspect(f *SourceFile, fn func(Stmt) bool) {
	inspectStmts(f.Stmts, fn)
}

func inspectStmts(stmts []Stmt, fn func(Stmt) bool) {
	for _, s := range stmts {
		if !fn(s) {
			continue
		}
		if block, ok := s.(*BlockStmt); ok {
			inspectStmts(block.Stmts, fn)
		}
	}
}
