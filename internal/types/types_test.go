package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSeverityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ERROR", SeverityError.String())
	assert.Equal(t, "WARNING", SeverityWarning.String())
	assert.Equal(t, "INFO", SeverityInfo.String())
	assert.Equal(t, "OFF", SeverityOff.String())
	assert.Equal(t, "UNKNOWN", Severity(42).String())
}

func TestConfigRuleYAML(t *testing.T) {
	t.Parallel()

	var rule ConfigRule
	src := "severity: warning\nignored-annotations:\n  - IBOutlet\n  - Published\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &rule))
	assert.Equal(t, SeverityWarning, rule.Severity)
	assert.Equal(t, []string{"IBOutlet", "Published"}, rule.IgnoredAnnotations)

	// missing severity falls back to error
	var bare ConfigRule
	require.NoError(t, yaml.Unmarshal([]byte("severity: \"\"\n"), &bare))
	assert.Equal(t, SeverityError, bare.Severity)

	var bad ConfigRule
	assert.Error(t, yaml.Unmarshal([]byte("severity: loud\n"), &bad))
}
