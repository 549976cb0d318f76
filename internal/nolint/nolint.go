package nolint

import (
	"strings"

	"github.com/slinlang/slin/syntax"
)

const directivePrefix = "slin:"

// Manager resolves suppression comments into line-range scopes and
// answers whether a position is suppressed for a rule. A nil Manager
// suppresses nothing.
type Manager struct {
	scopes []scope
}

// scope is a line range in which one or more rules are suppressed.
// An empty rule set suppresses every rule.
type scope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// ParseComments resolves the suppression directives of one file:
//
//	// slin:disable [rules...]        from here until a matching enable
//	// slin:enable [rules...]         closes open disables
//	// slin:disable:next [rules...]   the following line only
//	// slin:disable:this [rules...]   the directive's own line only
func ParseComments(comments []syntax.Comment) *Manager {
	m := &Manager{}

	// open region per rule name; "" is the all-rules region
	open := make(map[string]int)

	for _, c := range comments {
		action, ruleList, ok := parseDirective(c.Text)
		if !ok {
			continue
		}
		switch action {
		case "disable":
			if len(ruleList) == 0 {
				open[""] = c.Pos.Line
				continue
			}
			for _, rule := range ruleList {
				open[rule] = c.Pos.Line
			}
		case "enable":
			if len(ruleList) == 0 {
				for rule, start := range open {
					m.close(rule, start, c.Pos.Line)
					delete(open, rule)
				}
				continue
			}
			for _, rule := range ruleList {
				if start, exists := open[rule]; exists {
					m.close(rule, start, c.Pos.Line)
					delete(open, rule)
				}
			}
		case "disable:next":
			m.add(ruleList, c.Pos.Line+1, c.Pos.Line+1)
		case "disable:this":
			m.add(ruleList, c.Pos.Line, c.Pos.Line)
		}
	}

	// disables never closed run to the end of the file
	for rule, start := range open {
		m.close(rule, start, int(^uint(0)>>1))
	}
	return m
}

func (m *Manager) add(ruleList []string, start, end int) {
	rules := make(map[string]struct{}, len(ruleList))
	for _, rule := range ruleList {
		rules[rule] = struct{}{}
	}
	m.scopes = append(m.scopes, scope{rules: rules, startLine: start, endLine: end})
}

func (m *Manager) close(rule string, start, end int) {
	s := scope{startLine: start, endLine: end, rules: map[string]struct{}{}}
	if rule != "" {
		s.rules[rule] = struct{}{}
	}
	m.scopes = append(m.scopes, s)
}

// parseDirective extracts the action and rule list from a comment, or
// reports that the comment is not a suppression directive.
func parseDirective(text string) (string, []string, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, directivePrefix) {
		return "", nil, false
	}
	text = text[len(directivePrefix):]

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil, false
	}
	action := fields[0]
	switch action {
	case "disable", "enable", "disable:next", "disable:this":
		return action, fields[1:], true
	}
	return "", nil, false
}

// IsSuppressed checks if a given position and rule are suppressed.
func (m *Manager) IsSuppressed(pos syntax.Position, rule string) bool {
	if m == nil {
		return false
	}
	for _, s := range m.scopes {
		if pos.Line < s.startLine || pos.Line > s.endLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, exists := s.rules[rule]; exists {
			return true
		}
	}
	return false
}
