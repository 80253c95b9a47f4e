// Package lexer implements the Asura language tokenizer.
//
// Tokens are produced by an ordered rule table (see Table): at each offset
// the first rule that recognises a non-empty prefix wins. Whitespace and
// comments are ordinary tokens; nothing is discarded.
package lexer

import (
	"context"
	"io"
	"iter"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/sirupsen/logrus"
)

// Metrics counts tokenizer activity. Counters are labeled with "kind".
type Metrics struct {
	Tokens   metrics.Counter
	Failures metrics.Counter
}

// DiscardMetrics returns Metrics that record nothing.
func DiscardMetrics() Metrics {
	return Metrics{
		Tokens:   discard.NewCounter(),
		Failures: discard.NewCounter(),
	}
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithLogger traces every match at debug level. Nothing is logged unless
// the logger has debug enabled.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Tokenizer) {
		t.log = log
		t.debug = debugEnabled(log)
	}
}

// WithTable replaces the rule table; nil keeps the current one.
func WithTable(table *Table) Option {
	return func(t *Tokenizer) {
		if table != nil {
			t.table = table
		}
	}
}

// WithMetrics records token and failure counts.
func WithMetrics(m Metrics) Option {
	return func(t *Tokenizer) {
		if m.Tokens != nil {
			t.metrics.Tokens = m.Tokens
		}
		if m.Failures != nil {
			t.metrics.Failures = m.Failures
		}
	}
}

func debugEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return log != nil
}

// Tokenizer is a pull-based cursor over one source buffer. It is not safe
// for concurrent use; the Table it reads is.
type Tokenizer struct {
	table   *Table
	source  string
	length  int
	offset  int
	err     error
	log     logrus.FieldLogger
	debug   bool
	metrics Metrics
}

// New returns a Tokenizer over table, or over Default() when table is nil.
// Call Init before Next.
func New(table *Table, opts ...Option) *Tokenizer {
	if table == nil {
		table = Default()
	}
	t := &Tokenizer{
		table:   table,
		metrics: DiscardMetrics(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init binds the tokenizer to source and rewinds it. It may be called again
// to reuse the tokenizer for another buffer.
func (t *Tokenizer) Init(source string) {
	t.source = source
	t.length = len(source)
	t.offset = 0
	t.err = nil
}

// Offset returns the byte offset of the next token.
func (t *Tokenizer) Offset() int { return t.offset }

// Next returns the next token. It returns io.EOF once the whole buffer has
// been consumed. A lexical error is returned as *LexError, does not advance
// the cursor, and is returned again by every later call until Init.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	if t.offset >= t.length {
		return Token{}, io.EOF
	}

	tok, rule, err := t.table.Match(t.source[t.offset:], t.offset)
	if err != nil {
		t.err = err
		t.metrics.Failures.Add(1)
		if t.debug {
			t.log.WithFields(logrus.Fields{
				"offset": t.offset,
				"rule":   rule,
			}).Debug(err.Error())
		}
		return Token{}, err
	}

	t.offset = tok.Position.End
	t.metrics.Tokens.With("kind", tok.Kind.String()).Add(1)
	if t.debug {
		t.log.WithFields(logrus.Fields{
			"kind":  tok.Kind.String(),
			"rule":  rule,
			"start": tok.Position.Start,
			"end":   tok.Position.End,
		}).Debug("matched token")
	}
	return tok, nil
}

// All returns the remaining tokens as a lazy sequence. A lexical error is
// yielded once, with a zero Token, and ends the sequence.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize binds source and collects every token in order.
func (t *Tokenizer) Tokenize(source string) ([]Token, error) {
	t.Init(source)
	var tokens []Token
	for tok, err := range t.All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Tokenize breaks source code into a slice of tokens using the default
// table. Equal inputs always give equal outputs.
func Tokenize(source string) ([]Token, error) {
	return New(Default()).Tokenize(source)
}

// cancelCheckInterval is how many tokens are produced between context checks.
const cancelCheckInterval = 4096

// TokenizeContext is Tokenize inside a "lexer.tokenize" tracing span. It
// stops early with ctx.Err() when the context is cancelled.
func TokenizeContext(ctx context.Context, source string, opts ...Option) ([]Token, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "lexer.tokenize")
	defer span.Finish()
	span.SetTag("source.length", len(source))

	tokens, err := tokenizeContext(ctx, source, opts...)
	if err != nil {
		ext.Error.Set(span, true)
		span.LogKV("event", "error", "message", err.Error())
		return nil, err
	}
	span.SetTag("tokens", len(tokens))
	return tokens, nil
}

func tokenizeContext(ctx context.Context, source string, opts ...Option) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := New(nil, opts...)
	t.Init(source)
	var tokens []Token
	for tok, err := range t.All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if len(tokens)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return tokens, nil
}

// Significant returns tokens without whitespace and comments. The lexer
// never filters on its own; this is for consumers that skip trivia.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Kind.IsTrivia() {
			out = append(out, tok)
		}
	}
	return out
}
