package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slinlang/slin/internal/nolint"
	tt "github.com/slinlang/slin/internal/types"
	"github.com/slinlang/slin/syntax"
)

func parseSource(t *testing.T, src string) *syntax.SourceFile {
	t.Helper()
	return syntax.Parse("test.swift", []byte(src))
}

func firstDecl(t *testing.T, src string) *syntax.VarDecl {
	t.Helper()
	var decl *syntax.VarDecl
	syntax.Inspect(parseSource(t, src), func(s syntax.Stmt) bool {
		if d, ok := s.(*syntax.VarDecl); ok && decl == nil {
			decl = d
		}
		return true
	})
	require.NotNil(t, decl, "no declaration parsed from %q", src)
	return decl
}

func TestIsRedundant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{
			name: "constructor call matching annotation",
			src:  "var url: URL = URL()",
			want: true,
		},
		{
			name: "constructor call with arguments",
			src:  "let space: CharacterSet = CharacterSet(charactersIn: \" \")",
			want: true,
		},
		{
			name: "constructor call with different name",
			src:  "var conv: CustomStringConvertible = URL()",
			want: false,
		},
		{
			name: "member access matching base",
			src:  "let space: CharacterSet = CharacterSet.whitespaces",
			want: true,
		},
		{
			name: "member access with different base",
			src:  "let white: UIColor = NSColor.white",
			want: false,
		},
		{
			name: "implicit member access",
			src:  "let white: UIColor = .white",
			want: false,
		},
		{
			name: "chained member access base",
			src:  "let c: Color = Palette.light.primary",
			want: false,
		},
		{
			name: "static factory call",
			src:  "let t: Duration = Duration.seconds(3)",
			want: true,
		},
		{
			name: "static factory call on other type",
			src:  "let t: TimeInterval = Duration.seconds(3)",
			want: false,
		},
		{
			name: "bool literal true",
			src:  "var enabled: Bool = true",
			want: true,
		},
		{
			name: "bool literal false",
			src:  "var enabled: Bool = false",
			want: true,
		},
		{
			name: "bool literal with non-Bool annotation",
			src:  "var enabled: Flag = true",
			want: false,
		},
		{
			name: "bool literal with generic Bool annotation",
			src:  "var enabled: Bool<Never> = true",
			want: false,
		},
		{
			name: "matching generic clauses",
			src:  "var ids: Set<Int> = Set<Int>()",
			want: true,
		},
		{
			name: "generic annotation with plain callee",
			src:  "var ids: Set<Int> = Set([0, 1, 2])",
			want: false,
		},
		{
			name: "plain annotation with generic callee",
			src:  "var ids: Set = Set<Int>()",
			want: false,
		},
		{
			name: "single force unwrap",
			src:  "var url: URL = URL(string: \"https://x\")!",
			want: true,
		},
		{
			name: "double force unwrap",
			src:  "var url: URL = URL(string: \"https://x\")!!",
			want: false,
		},
		{
			name: "optional annotation",
			src:  "var url: URL? = URL()",
			want: false,
		},
		{
			name: "array type annotation",
			src:  "var xs: [Int] = [Int]()",
			want: false,
		},
		{
			name: "no initializer",
			src:  "var url: URL",
			want: false,
		},
		{
			name: "no annotation",
			src:  "var url = URL()",
			want: false,
		},
		{
			name: "initializer outside the modeled shapes",
			src:  "var n: Int = 1 + 2",
			want: false,
		},
		{
			name: "integer literal",
			src:  "var n: Int = 3",
			want: false,
		},
		{
			name: "only the last binding is inspected",
			src:  "var a: Int = Int(1), b = 2",
			want: false,
		},
		{
			name: "last binding redundant",
			src:  "var a = 1, b: Int = Int(2)",
			want: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			decl := firstDecl(t, tc.src)
			assert.Equal(t, tc.want, IsRedundant(decl, RuleConfig{}))
		})
	}
}

func TestIsRedundantIgnoredAnnotations(t *testing.T) {
	t.Parallel()

	cfg := NewRuleConfig([]string{"IBOutlet", "Published"})

	exempt := firstDecl(t, "@Published var enabled: Bool = true")
	assert.False(t, IsRedundant(exempt, cfg))

	other := firstDecl(t, "@MainActor var enabled: Bool = true")
	assert.True(t, IsRedundant(other, cfg))
}

func TestDetectRedundantTypeAnnotation(t *testing.T) {
	t.Parallel()

	src := `var url: URL = URL()
let keep: CustomStringConvertible = URL()
struct Config {
	static let retries: Int = Int(3)
	func reset() {
		var enabled: Bool = true
	}
}
`
	file := parseSource(t, src)
	issues, err := DetectRedundantTypeAnnotation("test.swift", file, RuleConfig{}, nil, tt.SeverityWarning)
	require.NoError(t, err)
	require.Len(t, issues, 3)

	// document order
	assert.Equal(t, 1, issues[0].Start.Line)
	assert.Equal(t, 4, issues[1].Start.Line)
	assert.Equal(t, 6, issues[2].Start.Line)

	first := issues[0]
	assert.Equal(t, RedundantTypeAnnotationRuleName, first.Rule)
	assert.Equal(t, tt.SeverityWarning, first.Severity)
	assert.Equal(t, "var url = URL()", first.Suggestion)
	// anchored at the colon, ending after the annotation type
	assert.Equal(t, 8, first.Start.Column)
	assert.Equal(t, 13, first.End.Column)

	// detection does not touch the tree
	assert.Equal(t, src, syntax.Print(file))
}

func TestDetectSuppression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want int
	}{
		{
			name: "disable next line",
			src:  "// slin:disable:next redundant-type-annotation\nvar url: URL = URL()\n",
			want: 0,
		},
		{
			name: "disable this line",
			src:  "var url: URL = URL() // slin:disable:this\n",
			want: 0,
		},
		{
			name: "region",
			src:  "// slin:disable\nvar a: Bool = true\nvar b: Bool = true\n// slin:enable\nvar c: Bool = true\n",
			want: 1,
		},
		{
			name: "directive names a different rule",
			src:  "// slin:disable:next unused-binding\nvar url: URL = URL()\n",
			want: 1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			file := parseSource(t, tc.src)
			suppressions := nolint.ParseComments(file.Comments)
			issues, err := DetectRedundantTypeAnnotation("test.swift", file, RuleConfig{}, suppressions, tt.SeverityWarning)
			require.NoError(t, err)
			assert.Len(t, issues, tc.want)
		})
	}
}

func TestRewriteRedundantTypeAnnotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "constructor call",
			src:  "var url: URL = URL()\n",
			want: "var url = URL()\n",
		},
		{
			name: "spacing around the annotation collapses to one space",
			src:  "let space :   CharacterSet   = CharacterSet.whitespaces\n",
			want: "let space = CharacterSet.whitespaces\n",
		},
		{
			name: "surrounding code untouched",
			src:  "// config\nstruct Config {\n\tvar enabled: Bool = true\n\tlet name = \"x\"\n}\n",
			want: "// config\nstruct Config {\n\tvar enabled = true\n\tlet name = \"x\"\n}\n",
		},
		{
			name: "only the last binding loses its annotation",
			src:  "var a: Int = 1, b: Int = Int(2)\n",
			want: "var a: Int = 1, b = Int(2)\n",
		},
		{
			name: "attributes and modifiers preserved",
			src:  "@MainActor private var done: Bool = false\n",
			want: "@MainActor private var done = false\n",
		},
		{
			name: "non-redundant declarations survive verbatim",
			src:  "var conv: CustomStringConvertible = URL()\nvar n: Int = 3\n",
			want: "var conv: CustomStringConvertible = URL()\nvar n: Int = 3\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			file := parseSource(t, tc.src)
			fixed, _ := RewriteRedundantTypeAnnotation("test.swift", file, RuleConfig{}, nil, tt.SeverityWarning)
			assert.Equal(t, tc.want, syntax.Print(fixed))
			// input tree stays intact
			assert.Equal(t, tc.src, syntax.Print(file))
		})
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	t.Parallel()

	src := "var url: URL = URL()\nstruct S {\n\tvar enabled: Bool = true\n}\n"
	file := parseSource(t, src)

	once, issues := RewriteRedundantTypeAnnotation("test.swift", file, RuleConfig{}, nil, tt.SeverityWarning)
	require.Len(t, issues, 2)

	twice, again := RewriteRedundantTypeAnnotation("test.swift", once, RuleConfig{}, nil, tt.SeverityWarning)
	assert.Empty(t, again)
	assert.Equal(t, syntax.Print(once), syntax.Print(twice))
}

func TestRewriteRespectsSuppression(t *testing.T) {
	t.Parallel()

	src := "// slin:disable:next\nvar a: URL = URL()\nvar b: URL = URL()\n"
	file := parseSource(t, src)
	suppressions := nolint.ParseComments(file.Comments)

	fixed, issues := RewriteRedundantTypeAnnotation("test.swift", file, RuleConfig{}, suppressions, tt.SeverityWarning)
	require.Len(t, issues, 1)
	assert.Equal(t, "// slin:disable:next\nvar a: URL = URL()\nvar b = URL()\n", syntax.Print(fixed))
}

func TestRewritePreservesBindingOrder(t *testing.T) {
	t.Parallel()

	file := parseSource(t, "var a = 1, b: Int = Int(2)\n")
	fixed, _ := RewriteRedundantTypeAnnotation("test.swift", file, RuleConfig{}, nil, tt.SeverityWarning)

	var decl *syntax.VarDecl
	syntax.Inspect(fixed, func(s syntax.Stmt) bool {
		if d, ok := s.(*syntax.VarDecl); ok {
			decl = d
		}
		return true
	})
	require.NotNil(t, decl)
	require.Len(t, decl.Bindings, 2)
	assert.Equal(t, "a", decl.Bindings[0].Name.Text)
	assert.Equal(t, "b", decl.Bindings[1].Name.Text)
	assert.Nil(t, decl.Bindings[1].Type)
}
