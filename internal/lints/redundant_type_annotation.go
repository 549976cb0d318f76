package lints

import (
	"strings"

	"github.com/slinlang/slin/internal/nolint"
	tt "github.com/slinlang/slin/internal/types"
	"github.com/slinlang/slin/syntax"
)

// RedundantTypeAnnotationRuleName identifies the rule in configuration,
// reports, and suppression directives.
const RedundantTypeAnnotationRuleName = "redundant-type-annotation"

const boolTypeName = "Bool"

// RuleConfig holds the user-tunable knobs of the rule. Declarations
// carrying any attribute named in IgnoredAnnotations are exempt, e.g.
// UI-binding markers that need an explicit type for tooling.
type RuleConfig struct {
	IgnoredAnnotations map[string]struct{}
}

// NewRuleConfig builds a RuleConfig from an attribute-name list.
func NewRuleConfig(ignoredAnnotations []string) RuleConfig {
	cfg := RuleConfig{IgnoredAnnotations: make(map[string]struct{}, len(ignoredAnnotations))}
	for _, name := range ignoredAnnotations {
		cfg.IgnoredAnnotations[name] = struct{}{}
	}
	return cfg
}

// IsExempt reports whether any attribute on the declaration is listed
// in IgnoredAnnotations.
func (c RuleConfig) IsExempt(decl *syntax.VarDecl) bool {
	for _, attr := range decl.Attributes {
		if _, ok := c.IgnoredAnnotations[attr.Name.Text]; ok {
			return true
		}
	}
	return false
}

// IsRedundant reports whether the declaration's type annotation repeats
// information already visible in the initializer. The decision is
// purely syntactic: only the last binding is inspected, only plain
// identifier annotations qualify, and any shape the rule cannot reason
// about resolves to false. A wrong false costs a missed report; a
// wrong true would produce a behavior-changing fix.
func IsRedundant(decl *syntax.VarDecl, cfg RuleConfig) bool {
	if cfg.IsExempt(decl) {
		return false
	}
	if len(decl.Bindings) == 0 {
		return false
	}
	binding := decl.Bindings[len(decl.Bindings)-1]
	if binding.Type == nil || binding.Init == nil {
		return false
	}
	annotation, ok := binding.Type.Type.(*syntax.IdentType)
	if !ok {
		return false
	}

	value := binding.Init.Value
	// a single trailing force unwrap carries its operand's type
	if unwrap, ok := value.(*syntax.ForceUnwrapExpr); ok {
		value = unwrap.Operand
	}

	switch value := value.(type) {
	case *syntax.CallExpr:
		switch callee := value.Callee.(type) {
		case *syntax.IdentExpr:
			// constructor call: the callee text, generic clause
			// included, must equal the annotation text
			return identText(callee.Name, callee.Generic) == identText(annotation.Name, annotation.Generic)
		case *syntax.MemberAccessExpr:
			// static factory: match the member access base instead
			return memberBaseMatches(callee, annotation)
		}
		return false
	case *syntax.MemberAccessExpr:
		return memberBaseMatches(value, annotation)
	case *syntax.BoolLiteralExpr:
		return annotation.Generic == nil && annotation.Name.Text == boolTypeName
	}
	return false
}

// memberBaseMatches reports whether the base of a member access is a
// plain name equal to the annotation's type name. Implicit bases
// (".white") carry nothing to compare.
func memberBaseMatches(member *syntax.MemberAccessExpr, annotation *syntax.IdentType) bool {
	base, ok := member.Base.(*syntax.IdentExpr)
	if !ok || base.Generic != nil {
		return false
	}
	return base.Name.Text == annotation.Name.Text
}

// identText renders a name plus generic clause for textual matching.
// This is a syntactic heuristic, not type resolution: aliased generic
// arguments compare unequal even when they resolve to the same type.
func identText(name syntax.Token, generic []syntax.Token) string {
	return name.Text + strings.TrimSpace(syntax.TokensText(generic))
}

// DetectRedundantTypeAnnotation walks every declaration in document
// order and reports one issue per redundant annotation, anchored at the
// annotation's colon. The tree is not modified.
func DetectRedundantTypeAnnotation(
	filename string,
	file *syntax.SourceFile,
	cfg RuleConfig,
	suppressions *nolint.Manager,
	severity tt.Severity,
) ([]tt.Issue, error) {
	var issues []tt.Issue
	syntax.Inspect(file, func(s syntax.Stmt) bool {
		decl, ok := s.(*syntax.VarDecl)
		if !ok {
			return true
		}
		if !IsRedundant(decl, cfg) {
			return true
		}
		annotation := decl.Bindings[len(decl.Bindings)-1].Type
		if suppressions.IsSuppressed(annotation.Colon.Pos, RedundantTypeAnnotationRuleName) {
			return true
		}
		issues = append(issues, newIssue(filename, decl, annotation, severity))
		return true
	})
	return issues, nil
}

// RewriteRedundantTypeAnnotation rebuilds the tree bottom-up, replacing
// every redundant declaration with a copy whose last binding has no
// type annotation and whose initializer is re-anchored with a single
// leading space. The input tree is never mutated; untouched statements
// are shared between input and output.
func RewriteRedundantTypeAnnotation(
	filename string,
	file *syntax.SourceFile,
	cfg RuleConfig,
	suppressions *nolint.Manager,
	severity tt.Severity,
) (*syntax.SourceFile, []tt.Issue) {
	stmts, issues := rewriteStmts(filename, file.Stmts, cfg, suppressions, severity)
	out := *file
	out.Stmts = stmts
	return &out, issues
}

func rewriteStmts(
	filename string,
	in []syntax.Stmt,
	cfg RuleConfig,
	suppressions *nolint.Manager,
	severity tt.Severity,
) ([]syntax.Stmt, []tt.Issue) {
	out := make([]syntax.Stmt, 0, len(in))
	var issues []tt.Issue
	for _, s := range in {
		switch s := s.(type) {
		case *syntax.BlockStmt:
			children, childIssues := rewriteStmts(filename, s.Stmts, cfg, suppressions, severity)
			block := *s
			block.Stmts = children
			out = append(out, &block)
			issues = append(issues, childIssues...)
		case *syntax.VarDecl:
			if !IsRedundant(s, cfg) {
				out = append(out, s)
				continue
			}
			annotation := s.Bindings[len(s.Bindings)-1].Type
			if suppressions.IsSuppressed(annotation.Colon.Pos, RedundantTypeAnnotationRuleName) {
				out = append(out, s)
				continue
			}
			issues = append(issues, newIssue(filename, s, annotation, severity))
			out = append(out, removeAnnotation(s))
		default:
			out = append(out, s)
		}
	}
	return out, issues
}

// removeAnnotation returns a copy of the declaration whose last binding
// lost its type annotation. Binding count and order never change; only
// the last binding's annotation field and the spacing in front of its
// `=` are touched.
func removeAnnotation(decl *syntax.VarDecl) *syntax.VarDecl {
	bindings := make([]syntax.Binding, len(decl.Bindings))
	copy(bindings, decl.Bindings)

	last := bindings[len(bindings)-1]
	init := *last.Init
	assign := init.Assign
	assign.Leading = " "
	init.Assign = assign
	last.Type = nil
	last.Init = &init
	bindings[len(bindings)-1] = last

	out := *decl
	out.Bindings = bindings
	return &out
}

func newIssue(filename string, decl *syntax.VarDecl, annotation *syntax.TypeAnnotation, severity tt.Severity) tt.Issue {
	return tt.Issue{
		Rule:       RedundantTypeAnnotationRuleName,
		Filename:   filename,
		Message:    "type annotation is redundant, the type can be inferred from the initializer",
		Suggestion: strings.TrimSpace(syntax.PrintStmt(removeAnnotation(decl))),
		Start:      annotation.Colon.Pos,
		End:        annotation.Type.End(),
		Severity:   severity,
		Confidence: 1.0,
	}
}
