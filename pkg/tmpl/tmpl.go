// Package tmpl renders user-configured command templates.
package tmpl

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"text/template"
)

// shellQuote wraps s in single quotes so the shell treats it as one word.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var funcs = template.FuncMap{
	"shq":  shellQuote,
	"urlq": url.QueryEscape,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - shq: shell-quote a string for safe use in shell commands
//   - urlq: escape a string for use in a URL query
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
