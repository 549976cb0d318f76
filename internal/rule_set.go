package internal

import (
	"github.com/slinlang/slin/internal/lints"
	"github.com/slinlang/slin/internal/nolint"
	tt "github.com/slinlang/slin/internal/types"
	"github.com/slinlang/slin/syntax"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given file and returns a slice of Issues.
	Check(filename string, file *syntax.SourceFile, suppressions *nolint.Manager) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

// FixableRule is implemented by rules that can rewrite the tree to
// correct their own findings.
type FixableRule interface {
	LintRule

	// Fix returns a corrected copy of the file plus one issue per
	// applied correction. The input file is left untouched.
	Fix(filename string, file *syntax.SourceFile, suppressions *nolint.Manager) (*syntax.SourceFile, []tt.Issue)
}

// configurableRule is implemented by rules with settings beyond severity.
type configurableRule interface {
	configure(tt.ConfigRule)
}

type RedundantTypeAnnotationRule struct {
	severity tt.Severity
	cfg      lints.RuleConfig
}

func NewRedundantTypeAnnotationRule() LintRule {
	return &RedundantTypeAnnotationRule{
		severity: tt.SeverityWarning,
		cfg:      lints.NewRuleConfig(nil),
	}
}

func (r *RedundantTypeAnnotationRule) Check(filename string, file *syntax.SourceFile, suppressions *nolint.Manager) ([]tt.Issue, error) {
	return lints.DetectRedundantTypeAnnotation(filename, file, r.cfg, suppressions, r.severity)
}

func (r *RedundantTypeAnnotationRule) Fix(filename string, file *syntax.SourceFile, suppressions *nolint.Manager) (*syntax.SourceFile, []tt.Issue) {
	return lints.RewriteRedundantTypeAnnotation(filename, file, r.cfg, suppressions, r.severity)
}

func (r *RedundantTypeAnnotationRule) Name() string {
	return lints.RedundantTypeAnnotationRuleName
}

func (r *RedundantTypeAnnotationRule) Severity() tt.Severity {
	return r.severity
}

func (r *RedundantTypeAnnotationRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

func (r *RedundantTypeAnnotationRule) configure(rule tt.ConfigRule) {
	r.cfg = lints.NewRuleConfig(rule.IgnoredAnnotations)
}
