package formatter

// RedundantTypeAnnotationFormatter renders the declaration as it would
// look after the annotation is removed, in addition to the usual
// underline block.
type RedundantTypeAnnotationFormatter struct{}

func (f *RedundantTypeAnnotationFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}

{{- if .Suggestion }}
{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- else }}
{{note "run 'slin fix' to remove the annotation automatically"}}
{{- end }}
`
}
