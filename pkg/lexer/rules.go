package lexer

import (
	"strings"

	"github.com/asura-lang/asura/go/internal/regex"
	"github.com/asura-lang/asura/go/pkg/ast"
)

// Guard vetoes a candidate match by inspecting the text that follows it.
type Guard func(rest string) bool

// Rule recognises one token kind at the start of the remaining input.
type Rule struct {
	Kind    Kind
	Pattern string
	// Opener commits the rule: input that starts with Opener but is
	// rejected by Pattern is a malformed literal, not a job for later rules.
	Opener string
	// Guard, when set, must accept the text after the match.
	Guard Guard

	matcher regex.Matcher
}

// match returns the length of the prefix this rule recognises, or 0.
func (r *Rule) match(input string) int {
	n := r.matcher.Prefix(input)
	if n <= 0 {
		return 0
	}
	if r.Guard != nil && !r.Guard(input[n:]) {
		return 0
	}
	return n
}

// Table is an ordered, immutable list of rules. For every position the
// first rule that matches a non-empty prefix wins, even when a later rule
// would match more.
type Table struct {
	engine string
	rules  []Rule
}

// NewTable compiles rules, in order, with the default regex engine.
func NewTable(rules ...Rule) (*Table, error) {
	return NewTableWithEngine(regex.Default(), rules...)
}

// NewTableWithEngine compiles rules with the named regex engine.
func NewTableWithEngine(engine string, rules ...Rule) (*Table, error) {
	compiled := make([]Rule, len(rules))
	for i, r := range rules {
		if r.Kind <= Invalid || r.Kind >= kindCount {
			return nil, ErrInvalidRule.New(r.Kind, "unknown token kind")
		}
		m, err := regex.New(engine, r.Pattern)
		if err != nil {
			return nil, ErrInvalidRule.New(r.Kind, err)
		}
		r.matcher = m
		compiled[i] = r
	}
	return &Table{engine: engine, rules: compiled}, nil
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Engine returns the name of the regex engine the table was compiled with.
func (t *Table) Engine() string { return t.engine }

// Rules returns a copy of the rules in priority order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Match runs the dispatch for one position: input is the remaining source
// and offset its absolute position. It returns the token and the index of
// the rule that produced it.
func (t *Table) Match(input string, offset int) (Token, int, error) {
	for i := range t.rules {
		r := &t.rules[i]
		if n := r.match(input); n > 0 {
			return Token{
				Kind:     r.Kind,
				Value:    input[:n],
				Position: ast.NewPosition(offset, offset+n),
			}, i, nil
		}
		if r.Opener != "" && strings.HasPrefix(input, r.Opener) {
			return Token{}, i, malformed(r.Kind, input, offset)
		}
	}
	return Token{}, -1, unrecognized(input, offset)
}

func isIdentByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}

// wordBoundary accepts a match that is not glued to an identifier character.
func wordBoundary(rest string) bool {
	return rest == "" || !isIdentByte(rest[0])
}

// notFollowedBy accepts a match unless the next byte is ch.
func notFollowedBy(ch byte) Guard {
	return func(rest string) bool {
		return rest == "" || rest[0] != ch
	}
}
