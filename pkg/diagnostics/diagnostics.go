// Package diagnostics defines Asura diagnostic types for lexical errors and
// their rendering.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/asura-lang/asura/go/pkg/ast"
)

// Diagnostic code constants.
const (
	ELexUnrecognized = "E_LEX_UNRECOGNIZED"
	ELexMalformed    = "E_LEX_MALFORMED"
	ELexRule         = "E_LEX_RULE"
	EConfig          = "E_CONFIG"
	EIO              = "E_IO"
)

// Diagnostic represents a lexical or tooling diagnostic.
type Diagnostic struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	File    string        `json:"file,omitempty"`
	Span    *ast.Position `json:"span,omitempty"`
	Hint    string        `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *ast.Position, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// WithFile returns a copy of d attributed to file.
func (d Diagnostic) WithFile(file string) Diagnostic {
	d.File = file
	return d
}

// Locate converts a byte offset into a 1-based line and column. Columns
// count runes, not bytes. Offsets past the end clamp to the end.
func Locate(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	line = 1 + strings.Count(source[:offset], "\n")
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	col = 1 + utf8.RuneCountInString(source[lineStart:offset])
	return line, col
}

// FormatDiagnostic formats a single diagnostic for display. The source is
// only needed in pretty mode, to resolve line and column.
func FormatDiagnostic(d Diagnostic, source string, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	file := d.File
	if file == "" {
		file = "<input>"
	}
	loc := "<unknown>"
	if d.Span != nil {
		line, col := Locate(source, d.Span.Start)
		loc = fmt.Sprintf("%s:%d:%d", file, line, col)
	}
	out := fmt.Sprintf("error[%s]: %s\n  --> %s", d.Code, d.Message, loc)
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, source string, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, source, true)
	}
	return strings.Join(parts, "\n\n")
}
