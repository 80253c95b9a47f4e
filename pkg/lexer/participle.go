package lexer

import (
	"io"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

// ParticipleDefinition exposes a rule table as a participle lexer
// definition, so a participle grammar can consume Asura tokens directly.
// Symbol names are the Kind names; trivia is passed through and should be
// elided by the parser if unwanted.
type ParticipleDefinition struct {
	table   *Table
	symbols map[string]plexer.TokenType
}

var _ plexer.Definition = (*ParticipleDefinition)(nil)

// NewParticipleDefinition adapts table (Default() when nil).
func NewParticipleDefinition(table *Table) *ParticipleDefinition {
	if table == nil {
		table = Default()
	}
	symbols := map[string]plexer.TokenType{"EOF": plexer.EOF}
	for _, k := range Kinds() {
		symbols[k.String()] = plexer.TokenType(k)
	}
	return &ParticipleDefinition{table: table, symbols: symbols}
}

// Symbols implements plexer.Definition.
func (d *ParticipleDefinition) Symbols() map[string]plexer.TokenType {
	return d.symbols
}

// Lex implements plexer.Definition.
func (d *ParticipleDefinition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(b))
}

// LexString implements plexer.StringDefinition.
func (d *ParticipleDefinition) LexString(filename string, input string) (plexer.Lexer, error) {
	t := New(d.table)
	t.Init(input)
	return &participleLexer{
		tokenizer: t,
		pos:       plexer.Position{Filename: filename, Line: 1, Column: 1},
	}, nil
}

type participleLexer struct {
	tokenizer *Tokenizer
	pos       plexer.Position
}

func (l *participleLexer) Next() (plexer.Token, error) {
	tok, err := l.tokenizer.Next()
	if err == io.EOF {
		return plexer.Token{Type: plexer.EOF, Pos: l.pos}, nil
	}
	if err != nil {
		return plexer.Token{}, err
	}
	out := plexer.Token{Type: plexer.TokenType(tok.Kind), Value: tok.Value, Pos: l.pos}
	l.advance(tok.Value)
	return out, nil
}

func (l *participleLexer) advance(span string) {
	l.pos.Offset += len(span)
	for _, r := range span {
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
}
