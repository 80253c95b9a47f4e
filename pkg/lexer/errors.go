package lexer

import (
	stderrors "errors"
	"strings"
	"unicode/utf8"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/asura-lang/asura/go/pkg/ast"
	"github.com/asura-lang/asura/go/pkg/diagnostics"
)

var (
	// ErrUnrecognizedInput is returned when no rule matches while input
	// remains.
	ErrUnrecognizedInput = errors.NewKind("unrecognized input %q at offset %d")
	// ErrMalformedLiteral is returned when a literal or block comment is
	// opened but never properly closed.
	ErrMalformedLiteral = errors.NewKind("malformed %s at offset %d: %s")
	// ErrInvalidRule is returned when a rule cannot be compiled.
	ErrInvalidRule = errors.NewKind("invalid rule for %s: %s")
)

// LexError is a terminal lexical failure at Offset. It wraps one of the
// error kinds declared above.
type LexError struct {
	Offset int
	Diag   diagnostics.Diagnostic
	err    *errors.Error
}

func (e *LexError) Error() string { return e.err.Error() }

// Unwrap returns the go-errors value, so Kind.Is works on it.
func (e *LexError) Unwrap() error { return e.err }

func unrecognized(input string, offset int) *LexError {
	_, size := utf8.DecodeRuneInString(input)
	pos := ast.NewPosition(offset, offset+size)
	err := ErrUnrecognizedInput.New(input[:size], offset)
	return &LexError{
		Offset: offset,
		Diag:   diagnostics.MakeDiag(diagnostics.ELexUnrecognized, err.Error(), &pos, "no token starts with this character"),
		err:    err,
	}
}

func malformed(kind Kind, input string, offset int) *LexError {
	reason := "missing terminator"
	hint := "close the literal"
	switch kind {
	case StringLiteral:
		reason = "unterminated string"
		hint = "strings end with the quote they start with and cannot span lines"
	case TemplateLiteral:
		reason = "unterminated template"
		hint = "close the template with a backtick"
	case Comment, DocComment:
		reason = "unterminated block comment"
		hint = "close the comment with */"
	}
	end := offset + len(input)
	if nl := strings.IndexByte(input, '\n'); nl >= 0 && kind == StringLiteral {
		end = offset + nl
	}
	pos := ast.NewPosition(offset, end)
	err := ErrMalformedLiteral.New(kind, offset, reason)
	return &LexError{
		Offset: offset,
		Diag:   diagnostics.MakeDiag(diagnostics.ELexMalformed, err.Error(), &pos, hint),
		err:    err,
	}
}

func is(err error, kind *errors.Kind) bool {
	var lexErr *LexError
	if stderrors.As(err, &lexErr) {
		return kind.Is(lexErr.err)
	}
	return kind.Is(err)
}

// IsUnrecognizedInput reports whether err is an ErrUnrecognizedInput.
func IsUnrecognizedInput(err error) bool { return is(err, ErrUnrecognizedInput) }

// IsMalformedLiteral reports whether err is an ErrMalformedLiteral.
func IsMalformedLiteral(err error) bool { return is(err, ErrMalformedLiteral) }

// ErrorOffset returns the offending offset of a lexical error.
func ErrorOffset(err error) (int, bool) {
	var lexErr *LexError
	if stderrors.As(err, &lexErr) {
		return lexErr.Offset, true
	}
	return 0, false
}
