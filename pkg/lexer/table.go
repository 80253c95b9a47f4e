package lexer

import (
	"sync"
)

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the shared Asura rule table. It is compiled on first use
// and never mutated afterwards, so any number of tokenizers may share it.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewTableWithEngine("go", AsuraRules()...)
		if err != nil {
			panic(err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

// AsuraRules returns the uncompiled Asura rules in priority order. Callers
// may reorder or extend the list and build their own table with NewTable.
func AsuraRules() []Rule {
	return []Rule{
		// Whitespace
		{Kind: WhiteSpace, Pattern: `[ \t\r\n]+`},

		// Comments come before anything starting with a slash.
		{Kind: DocComment, Pattern: `/\*\*(?s:.*?)\*/`},
		{Kind: Comment, Pattern: `/\*(?s:.*?)\*/`, Opener: "/*"},
		{Kind: Comment, Pattern: `//[^\n]*`},

		// Literals
		{Kind: BooleanLiteral, Pattern: `true|false`, Guard: wordBoundary},
		{Kind: NumberLiteral, Pattern: `[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`, Guard: wordBoundary},
		{Kind: RegexpLiteral, Pattern: `/(?:[^/\\\s*]|\\.)(?:[^/\\\n]|\\.)*/[dgimsuy]*`, Guard: wordBoundary},
		{Kind: StringLiteral, Pattern: `"(?:[^"\\\n]|\\.)*"`, Opener: `"`},
		{Kind: StringLiteral, Pattern: `'(?:[^'\\\n]|\\.)*'`, Opener: `'`},
		{Kind: TemplateLiteral, Pattern: "`(?:[^`\\\\]|\\\\(?s:.))*`", Opener: "`"},

		// Keywords
		{Kind: Alias, Pattern: `alias`, Guard: wordBoundary},
		{Kind: Brand, Pattern: `brand`, Guard: wordBoundary},
		{Kind: Case, Pattern: `case`, Guard: wordBoundary},
		{Kind: Effect, Pattern: `effect`, Guard: wordBoundary},
		{Kind: Export, Pattern: `export`, Guard: wordBoundary},
		{Kind: ElseIf, Pattern: `else[ \t]+if`, Guard: wordBoundary},
		{Kind: Else, Pattern: `else`, Guard: wordBoundary},
		{Kind: For, Pattern: `for`, Guard: wordBoundary},
		{Kind: From, Pattern: `from`, Guard: wordBoundary},
		{Kind: Function, Pattern: `function|fun`, Guard: wordBoundary},
		{Kind: Handler, Pattern: `handler`, Guard: wordBoundary},
		{Kind: If, Pattern: `if`, Guard: wordBoundary},
		{Kind: Import, Pattern: `import`, Guard: wordBoundary},
		{Kind: Macro, Pattern: `macro`, Guard: wordBoundary},
		{Kind: Match, Pattern: `match`, Guard: wordBoundary},
		{Kind: Of, Pattern: `of`, Guard: wordBoundary},
		{Kind: Return, Pattern: `return`, Guard: wordBoundary},
		{Kind: Struct, Pattern: `struct`, Guard: wordBoundary},
		{Kind: Typeclass, Pattern: `typeclass`, Guard: wordBoundary},
		{Kind: Type, Pattern: `type`, Guard: wordBoundary},
		{Kind: While, Pattern: `while`, Guard: wordBoundary},
		{Kind: With, Pattern: `with`, Guard: wordBoundary},
		{Kind: Yield, Pattern: `yield`, Guard: wordBoundary},

		// Macro identifiers share their prefix with identifiers and with @,
		// so they must be tried before both. `a!=b` is not a macro.
		{Kind: MacroIdentifier, Pattern: `@?[A-Za-z_][A-Za-z0-9_]*!`, Guard: notFollowedBy('=')},

		// Delimiters
		{Kind: DotDotDot, Pattern: `\.\.\.`},
		{Kind: DotDot, Pattern: `\.\.`},
		{Kind: Dot, Pattern: `\.`},
		{Kind: At, Pattern: `@`},
		{Kind: ColonEqual, Pattern: `:=`},
		{Kind: Colon, Pattern: `:`},
		{Kind: Comma, Pattern: `,`},
		{Kind: LeftBrace, Pattern: `\{`},
		{Kind: LeftBracket, Pattern: `\[`},
		{Kind: LeftParen, Pattern: `\(`},
		{Kind: RightBrace, Pattern: `\}`},
		{Kind: RightBracket, Pattern: `\]`},
		{Kind: RightParen, Pattern: `\)`},
		{Kind: Semicolon, Pattern: `;`},
		{Kind: Underscore, Pattern: `_`, Guard: wordBoundary},
		{Kind: Pipe, Pattern: `\|>`},
		{Kind: LeftArrow, Pattern: `<-`},
		{Kind: RightArrow, Pattern: `->`},
		{Kind: FatArrow, Pattern: `=>`},

		// Symbols + operators, longest spelling first.
		{Kind: AndAnd, Pattern: `&&`},
		{Kind: And, Pattern: `&`},
		{Kind: Backslash, Pattern: `\\`},
		{Kind: BangEqual, Pattern: `!=`},
		{Kind: Bang, Pattern: `!`},
		{Kind: Caret, Pattern: `\^`},
		{Kind: Dollar, Pattern: `\$`},
		{Kind: EqualEqual, Pattern: `==`},
		{Kind: Equal, Pattern: `=`},
		{Kind: GreaterThanGreaterThanGreaterThan, Pattern: `>>>`},
		{Kind: GreaterThanGreaterThan, Pattern: `>>`},
		{Kind: GreaterThanEqual, Pattern: `>=`},
		{Kind: GreaterThan, Pattern: `>`},
		{Kind: Hash, Pattern: `#`},
		{Kind: LessThanLessThan, Pattern: `<<`},
		{Kind: LessThanEqual, Pattern: `<=`},
		{Kind: LessThan, Pattern: `<`},
		{Kind: MinusMinus, Pattern: `--`},
		{Kind: Minus, Pattern: `-`},
		{Kind: OrOr, Pattern: `\|\|`},
		{Kind: Or, Pattern: `\|`},
		{Kind: Percent, Pattern: `%`},
		{Kind: PlusPlus, Pattern: `\+\+`},
		{Kind: Plus, Pattern: `\+`},
		{Kind: Question, Pattern: `\?`},
		{Kind: Slash, Pattern: `/`},
		{Kind: StarStar, Pattern: `\*\*`},
		{Kind: Star, Pattern: `\*`},
		{Kind: Tilde, Pattern: `~`},

		// Identifiers
		{Kind: Identifier, Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	}
}
