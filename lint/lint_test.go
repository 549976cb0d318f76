package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/slinlang/slin/internal/types"
)

func TestNewWithMissingConfiguration(t *testing.T) {
	t.Parallel()

	engine, err := New("")
	require.NoError(t, err)
	require.NotNil(t, engine)

	engine, err = New(filepath.Join(t.TempDir(), ".slin.yaml"))
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestNewAppliesConfiguration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".slin.yaml")
	config := `name: slin
rules:
  redundant-type-annotation:
    severity: error
    ignored-annotations:
      - IBOutlet
`
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	engine, err := New(configPath)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("@IBOutlet var label: Label = Label()\nvar url: URL = URL()\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Start.Line)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestNewRejectsMalformedConfiguration(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), ".slin.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("rules: [not, a, map]\n"), 0o644))

	_, err := New(configPath)
	assert.Error(t, err)
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.swift")
	require.NoError(t, os.WriteFile(path, []byte("var url: URL = URL()\n"), 0o644))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessFile(engine, path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
}

func TestProcessPathWalksDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.swift"), []byte("var url: URL = URL()\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.swift"), []byte("var enabled: Bool = true\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("var x: Bool = true\n"), 0o644))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestProcessPathSkipsOtherExtensions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("var x: Bool = true\n"), 0o644))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestProcessPathMissing(t *testing.T) {
	t.Parallel()

	engine, err := New("")
	require.NoError(t, err)

	_, err = ProcessPath(context.Background(), nil, engine, filepath.Join(t.TempDir(), "absent"), ProcessFile)
	assert.Error(t, err)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.swift")
	second := filepath.Join(dir, "b.swift")
	require.NoError(t, os.WriteFile(first, []byte("var url: URL = URL()\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("let n = 3\n"), 0o644))

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{first, second}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, first, issues[0].Filename)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()

	engine, err := New("")
	require.NoError(t, err)

	sources := [][]byte{
		[]byte("var url: URL = URL()\n"),
		[]byte("let n = 3\n"),
	}
	issues, err := ProcessSources(context.Background(), nil, engine, sources, ProcessSource)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}
