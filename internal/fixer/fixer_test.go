package fixer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slinlang/slin/internal"
	tt "github.com/slinlang/slin/internal/types"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.swift")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func engineRewrite(t *testing.T) RewriteFunc {
	t.Helper()
	engine, err := internal.NewEngine(nil)
	require.NoError(t, err)
	return engine.Fix
}

func TestFixRewritesFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "var url: URL = URL()\nvar n: Int = 3\n")

	f := New(false, 0.8, engineRewrite(t))
	require.NoError(t, f.Fix(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var url = URL()\nvar n: Int = 3\n", string(content))
}

func TestFixDryRunLeavesFileAlone(t *testing.T) {
	t.Parallel()

	src := "var url: URL = URL()\n"
	path := writeTemp(t, src)

	f := New(true, 0.8, engineRewrite(t))
	require.NoError(t, f.Fix(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestFixConfidenceThreshold(t *testing.T) {
	t.Parallel()

	src := "var url: URL = URL()\n"
	path := writeTemp(t, src)

	rewrite := func(filename string, source []byte) ([]byte, []tt.Issue, error) {
		return []byte("var url = URL()\n"), []tt.Issue{{
			Rule:       "redundant-type-annotation",
			Filename:   filename,
			Confidence: 0.5,
		}}, nil
	}

	f := New(false, 0.8, rewrite)
	require.NoError(t, f.Fix(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(content), "low-confidence corrections must not be written")
}

func TestFixMixedConfidenceFails(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "var url: URL = URL()\n")

	rewrite := func(filename string, source []byte) ([]byte, []tt.Issue, error) {
		return []byte("fixed\n"), []tt.Issue{
			{Confidence: 1.0},
			{Confidence: 0.5},
		}, nil
	}

	f := New(false, 0.8, rewrite)
	assert.Error(t, f.Fix(path))
}

func TestFixPreservesFileMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.swift")
	require.NoError(t, os.WriteFile(path, []byte("var url: URL = URL()\n"), 0o600))

	f := New(false, 0.8, engineRewrite(t))
	require.NoError(t, f.Fix(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFixMissingFile(t *testing.T) {
	t.Parallel()

	f := New(false, 0.8, engineRewrite(t))
	assert.Error(t, f.Fix(filepath.Join(t.TempDir(), "absent.swift")))
}
