package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/slinlang/slin/internal/nolint"
	tt "github.com/slinlang/slin/internal/types"
	"github.com/slinlang/slin/syntax"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule

	// watch mode
	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
	report     func(filename string, issues []tt.Issue)
}

// NewEngine creates a new lint engine with the given per-rule configuration.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{
		ignoredRules: make(map[string]bool),
	}
	engine.applyRules(rules)

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"redundant-type-annotation": NewRedundantTypeAnnotationRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity and rule settings
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			r = newRuleCstr()
			e.rules[key] = r
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
		if cr, ok := r.(configurableRule); ok {
			cr.configure(rule)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// IgnoreRule disables a rule for the rest of the engine's lifetime.
func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// IgnorePath excludes a path prefix from linting.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

// IsPathIgnored reports whether the path falls under an ignored prefix.
func (e *Engine) IsPathIgnored(path string) bool {
	cleaned := filepath.Clean(path)
	for _, ignored := range e.ignoredPaths {
		if cleaned == ignored || strings.HasPrefix(cleaned, ignored+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.IsPathIgnored(filename) {
		return nil, nil
	}
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return e.runSource(filename, source)
}

// RunSource applies all lint rules to an in-memory source.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.runSource("source.swift", source)
}

func (e *Engine) runSource(filename string, source []byte) ([]tt.Issue, error) {
	file := syntax.Parse(filename, source)
	suppressions := nolint.ParseComments(file.Comments)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] {
				return
			}
			issues, err := r.Check(filename, file, suppressions)
			if err != nil {
				return
			}

			mu.Lock()
			allIssues = append(allIssues, issues...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	sortIssues(allIssues)
	return allIssues, nil
}

// Fix runs every fixable rule over the source and returns the corrected
// source together with one issue per applied correction. When nothing
// is fixable the original source comes back unchanged.
func (e *Engine) Fix(filename string, source []byte) ([]byte, []tt.Issue, error) {
	file := syntax.Parse(filename, source)
	suppressions := nolint.ParseComments(file.Comments)

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		fixable, ok := rule.(FixableRule)
		if !ok {
			continue
		}
		fixed, issues := fixable.Fix(filename, file, suppressions)
		file = fixed
		allIssues = append(allIssues, issues...)
	}

	sortIssues(allIssues)
	if len(allIssues) == 0 {
		return source, nil, nil
	}
	return []byte(syntax.Print(file)), allIssues, nil
}

func sortIssues(issues []tt.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Filename != issues[j].Filename {
			return issues[i].Filename < issues[j].Filename
		}
		return issues[i].Start.Offset < issues[j].Start.Offset
	})
}
