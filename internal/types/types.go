package types

import (
	"fmt"

	"github.com/slinlang/slin/syntax"
)

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      syntax.Position
	End        syntax.Position
	Severity   Severity
	Confidence float64
}

// Severity is the reporting level of a rule or an issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) MarshalYAML() (interface{}, error) {
	switch s {
	case SeverityError:
		return "error", nil
	case SeverityWarning:
		return "warning", nil
	case SeverityInfo:
		return "info", nil
	case SeverityOff:
		return "off", nil
	}
	return nil, fmt.Errorf("unknown severity: %d", s)
}

func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch raw {
	case "error", "":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity: %q", raw)
	}
	return nil
}

// ConfigRule is the per-rule block of the configuration file.
type ConfigRule struct {
	Severity           Severity `yaml:"severity"`
	IgnoredAnnotations []string `yaml:"ignored-annotations,omitempty"`
}
