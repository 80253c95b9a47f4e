package lexer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/asura-lang/asura/go/pkg/ast"
)

// Dump formats understood by WriteTokens.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type tokenJSON struct {
	Kind  string       `json:"kind"`
	Value string       `json:"value"`
	Span  ast.Position `json:"span"`
}

// WriteTokens writes one line per token: a JSON object in FormatJSON, an
// aligned `span kind "value"` row in FormatText.
func WriteTokens(w io.Writer, tokens []Token, format string) error {
	bw := bufio.NewWriter(w)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(bw)
		for _, tok := range tokens {
			if err := enc.Encode(tokenJSON{Kind: tok.Kind.String(), Value: tok.Value, Span: tok.Position}); err != nil {
				return err
			}
		}
	case FormatText:
		for _, tok := range tokens {
			if _, err := fmt.Fprintf(bw, "%-9s %-20s %q\n", tok.Position, tok.Kind, tok.Value); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown token format %q", format)
	}
	return bw.Flush()
}
