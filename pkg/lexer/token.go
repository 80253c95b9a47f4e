package lexer

import (
	"fmt"

	"github.com/asura-lang/asura/go/pkg/ast"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	// Invalid is the zero Kind; no rule produces it.
	Invalid Kind = iota

	// Literals
	BooleanLiteral
	NumberLiteral
	RegexpLiteral
	StringLiteral
	TemplateLiteral

	// Identifiers
	Identifier
	MacroIdentifier // name! or @name!

	// Keywords
	Alias
	Brand
	Case
	Effect
	Export
	Else
	ElseIf // else if
	For
	From
	Function // function or fun
	Handler
	If
	Import
	Macro
	Match
	Of
	Return
	Struct
	Type
	Typeclass
	While
	With
	Yield

	// Symbols + Operators
	And                               // &
	AndAnd                            // &&
	Backslash                         // \
	Bang                              // !
	BangEqual                         // !=
	Caret                             // ^
	Dollar                            // $
	Equal                             // =
	EqualEqual                        // ==
	GreaterThan                       // >
	GreaterThanGreaterThan            // >>
	GreaterThanGreaterThanGreaterThan // >>>
	GreaterThanEqual                  // >=
	Hash                              // #
	LessThan                          // <
	LessThanLessThan                  // <<
	LessThanEqual                     // <=
	Minus                             // -
	MinusMinus                        // --
	Or                                // |
	OrOr                              // ||
	Percent                           // %
	Plus                              // +
	PlusPlus                          // ++
	Question                          // ?
	Slash                             // /
	Star                              // *
	StarStar                          // **
	Tilde                             // ~

	// Delimiters
	At           // @
	Colon        // :
	ColonEqual   // :=
	Comma        // ,
	Dot          // .
	DotDot       // ..
	DotDotDot    // ...
	FatArrow     // =>
	LeftArrow    // <-
	RightArrow   // ->
	LeftBrace    // {
	LeftBracket  // [
	LeftParen    // (
	Pipe         // |>
	RightBrace   // }
	RightBracket // ]
	RightParen   // )
	Semicolon    // ;
	Underscore   // _

	// Whitespace
	WhiteSpace

	// Comments
	Comment    // line or block comment
	DocComment // /** ... */

	kindCount
)

var kindNames = [...]string{
	Invalid: "Invalid",

	BooleanLiteral:  "BooleanLiteral",
	NumberLiteral:   "NumberLiteral",
	RegexpLiteral:   "RegexpLiteral",
	StringLiteral:   "StringLiteral",
	TemplateLiteral: "TemplateLiteral",

	Identifier:      "Identifier",
	MacroIdentifier: "MacroIdentifier",

	Alias:     "Alias",
	Brand:     "Brand",
	Case:      "Case",
	Effect:    "Effect",
	Export:    "Export",
	Else:      "Else",
	ElseIf:    "ElseIf",
	For:       "For",
	From:      "From",
	Function:  "Function",
	Handler:   "Handler",
	If:        "If",
	Import:    "Import",
	Macro:     "Macro",
	Match:     "Match",
	Of:        "Of",
	Return:    "Return",
	Struct:    "Struct",
	Type:      "Type",
	Typeclass: "Typeclass",
	While:     "While",
	With:      "With",
	Yield:     "Yield",

	And:                               "And",
	AndAnd:                            "AndAnd",
	Backslash:                         "Backslash",
	Bang:                              "Bang",
	BangEqual:                         "BangEqual",
	Caret:                             "Caret",
	Dollar:                            "Dollar",
	Equal:                             "Equal",
	EqualEqual:                        "EqualEqual",
	GreaterThan:                       "GreaterThan",
	GreaterThanGreaterThan:            "GreaterThanGreaterThan",
	GreaterThanGreaterThanGreaterThan: "GreaterThanGreaterThanGreaterThan",
	GreaterThanEqual:                  "GreaterThanEqual",
	Hash:                              "Hash",
	LessThan:                          "LessThan",
	LessThanLessThan:                  "LessThanLessThan",
	LessThanEqual:                     "LessThanEqual",
	Minus:                             "Minus",
	MinusMinus:                        "MinusMinus",
	Or:                                "Or",
	OrOr:                              "OrOr",
	Percent:                           "Percent",
	Plus:                              "Plus",
	PlusPlus:                          "PlusPlus",
	Question:                          "Question",
	Slash:                             "Slash",
	Star:                              "Star",
	StarStar:                          "StarStar",
	Tilde:                             "Tilde",

	At:           "At",
	Colon:        "Colon",
	ColonEqual:   "ColonEqual",
	Comma:        "Comma",
	Dot:          "Dot",
	DotDot:       "DotDot",
	DotDotDot:    "DotDotDot",
	FatArrow:     "FatArrow",
	LeftArrow:    "LeftArrow",
	RightArrow:   "RightArrow",
	LeftBrace:    "LeftBrace",
	LeftBracket:  "LeftBracket",
	LeftParen:    "LeftParen",
	Pipe:         "Pipe",
	RightBrace:   "RightBrace",
	RightBracket: "RightBracket",
	RightParen:   "RightParen",
	Semicolon:    "Semicolon",
	Underscore:   "Underscore",

	WhiteSpace: "WhiteSpace",
	Comment:    "Comment",
	DocComment: "DocComment",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind whose String() is name.
func ParseKind(name string) (Kind, bool) {
	for k := Invalid + 1; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Invalid, false
}

// Kinds returns every Kind a rule can produce, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Invalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Category partitions the kinds.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryLiteral
	CategoryIdentifier
	CategoryKeyword
	CategoryOperator
	CategoryDelimiter
	CategoryWhitespace
	CategoryComment
)

var categoryNames = [...]string{
	CategoryInvalid:    "invalid",
	CategoryLiteral:    "literal",
	CategoryIdentifier: "identifier",
	CategoryKeyword:    "keyword",
	CategoryOperator:   "operator",
	CategoryDelimiter:  "delimiter",
	CategoryWhitespace: "whitespace",
	CategoryComment:    "comment",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Category returns the partition k belongs to.
func (k Kind) Category() Category {
	switch {
	case k >= BooleanLiteral && k <= TemplateLiteral:
		return CategoryLiteral
	case k == Identifier || k == MacroIdentifier:
		return CategoryIdentifier
	case k >= Alias && k <= Yield:
		return CategoryKeyword
	case k >= And && k <= Tilde:
		return CategoryOperator
	case k >= At && k <= Underscore:
		return CategoryDelimiter
	case k == WhiteSpace:
		return CategoryWhitespace
	case k == Comment || k == DocComment:
		return CategoryComment
	}
	return CategoryInvalid
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k.Category() == CategoryKeyword }

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	c := k.Category()
	return c == CategoryWhitespace || c == CategoryComment
}

// Token represents a single lexer token. Value is the exact source slice the
// token was matched from.
type Token struct {
	Kind     Kind
	Value    string
	Position ast.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Value, t.Position)
}
