package fixer

import (
	"bytes"
	"fmt"
	"os"

	tt "github.com/slinlang/slin/internal/types"
)

// RewriteFunc produces the corrected source for a file plus one issue
// per applied correction. The engine's Fix method satisfies it.
type RewriteFunc func(filename string, source []byte) ([]byte, []tt.Issue, error)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
	rewrite       RewriteFunc
}

func New(dryRun bool, threshold float64, rewrite RewriteFunc) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
		rewrite:       rewrite,
	}
}

// Fix rewrites a single file in place. The rewrite is structural: the
// file is re-parsed and corrected as a tree, so surrounding formatting
// survives untouched.
func (f *Fixer) Fix(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fixed, issues, err := f.rewrite(filename, content)
	if err != nil {
		return fmt.Errorf("failed to rewrite file: %w", err)
	}

	applicable := issues[:0:0]
	for _, issue := range issues {
		if issue.Confidence >= f.MinConfidence {
			applicable = append(applicable, issue)
		}
	}
	if len(applicable) == 0 {
		return nil
	}

	if f.DryRun {
		for _, issue := range applicable {
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Printf("Suggestion:\n%s\n", issue.Suggestion)
		}
		return nil
	}

	// partial-confidence skips would need a second rewrite pass; with
	// every correction applicable the full rewrite is the fix
	if len(applicable) != len(issues) {
		return fmt.Errorf("mixed-confidence corrections in %s are not supported", filename)
	}

	if bytes.Equal(fixed, content) {
		return nil
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if err := os.WriteFile(filename, fixed, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed %d issue(s) in %s\n", len(applicable), filename)
	return nil
}
