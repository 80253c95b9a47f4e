package lexer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asura-lang/asura/go/pkg/ast"
)

// helper to tokenize and fail on error
func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Tokenize(source)
	require.NoError(t, err, "unexpected lex error for %q", source)
	return tokens
}

func kindsOf(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func valuesOf(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Value
	}
	return out
}

// ---------------------------------------------------------------------------
// Test: empty input produces no tokens
// ---------------------------------------------------------------------------
func TestEmptyInput(t *testing.T) {
	tokens := mustTokenize(t, "")
	require.Empty(t, tokens)

	tz := New(nil)
	tz.Init("")
	_, err := tz.Next()
	require.Equal(t, io.EOF, err)
}

// ---------------------------------------------------------------------------
// Test: whitespace is one greedy token
// ---------------------------------------------------------------------------
func TestWhitespaceRun(t *testing.T) {
	tokens := mustTokenize(t, "     ")
	require.Len(t, tokens, 1)
	require.Equal(t, Token{Kind: WhiteSpace, Value: "     ", Position: ast.NewPosition(0, 5)}, tokens[0])

	tokens = mustTokenize(t, " \t\r\n ")
	require.Len(t, tokens, 1)
	require.Equal(t, WhiteSpace, tokens[0].Kind)
}

// ---------------------------------------------------------------------------
// Test: the import declaration scenario
// ---------------------------------------------------------------------------
func TestImportDeclaration(t *testing.T) {
	tokens := mustTokenize(t, "import Console from 'std:Console'")
	expected := []Token{
		{Kind: Import, Value: "import", Position: ast.NewPosition(0, 6)},
		{Kind: WhiteSpace, Value: " ", Position: ast.NewPosition(6, 7)},
		{Kind: Identifier, Value: "Console", Position: ast.NewPosition(7, 14)},
		{Kind: WhiteSpace, Value: " ", Position: ast.NewPosition(14, 15)},
		{Kind: From, Value: "from", Position: ast.NewPosition(15, 19)},
		{Kind: WhiteSpace, Value: " ", Position: ast.NewPosition(19, 20)},
		{Kind: StringLiteral, Value: "'std:Console'", Position: ast.NewPosition(20, 33)},
	}
	require.Equal(t, expected, tokens)
}

// ---------------------------------------------------------------------------
// Test: all keywords
// ---------------------------------------------------------------------------
func TestKeywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected Kind
	}{
		{"alias", Alias},
		{"brand", Brand},
		{"case", Case},
		{"effect", Effect},
		{"export", Export},
		{"else", Else},
		{"else if", ElseIf},
		{"else\tif", ElseIf},
		{"for", For},
		{"from", From},
		{"function", Function},
		{"fun", Function},
		{"handler", Handler},
		{"if", If},
		{"import", Import},
		{"macro", Macro},
		{"match", Match},
		{"of", Of},
		{"return", Return},
		{"struct", Struct},
		{"type", Type},
		{"typeclass", Typeclass},
		{"while", While},
		{"with", With},
		{"yield", Yield},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			tokens := mustTokenize(t, tt.keyword)
			require.Len(t, tokens, 1)
			require.Equal(t, tt.expected, tokens[0].Kind)
			require.Equal(t, tt.keyword, tokens[0].Value)
			require.True(t, tokens[0].Kind.IsKeyword())
		})
	}
}

// ---------------------------------------------------------------------------
// Test: keywords and booleans need a word boundary
// ---------------------------------------------------------------------------
func TestKeywordPrefixIsIdentifier(t *testing.T) {
	for _, word := range []string{
		"truefoo", "falsey", "iffy", "types", "typeclassy", "elseif",
		"funny", "format", "off", "yield_", "with1", "imports", "_foo",
	} {
		t.Run(word, func(t *testing.T) {
			tokens := mustTokenize(t, word)
			require.Len(t, tokens, 1)
			require.Equal(t, Identifier, tokens[0].Kind)
		})
	}
}

func TestElseIfBeforeElse(t *testing.T) {
	tokens := mustTokenize(t, "} else if x {")
	require.Equal(t,
		[]Kind{RightBrace, WhiteSpace, ElseIf, WhiteSpace, Identifier, WhiteSpace, LeftBrace},
		kindsOf(tokens))
	require.Equal(t, "else if", tokens[2].Value)

	tokens = mustTokenize(t, "else {")
	require.Equal(t, []Kind{Else, WhiteSpace, LeftBrace}, kindsOf(tokens))
}

// ---------------------------------------------------------------------------
// Test: literals
// ---------------------------------------------------------------------------
func TestBooleans(t *testing.T) {
	tokens := mustTokenize(t, "true false")
	require.Equal(t, []Kind{BooleanLiteral, WhiteSpace, BooleanLiteral}, kindsOf(tokens))
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		kinds    []Kind
	}{
		{"0", []string{"0"}, []Kind{NumberLiteral}},
		{"42", []string{"42"}, []Kind{NumberLiteral}},
		{"3.14", []string{"3.14"}, []Kind{NumberLiteral}},
		{"1e3", []string{"1e3"}, []Kind{NumberLiteral}},
		{"1.5E-2", []string{"1.5E-2"}, []Kind{NumberLiteral}},
		{"42...", []string{"42", "..."}, []Kind{NumberLiteral, DotDotDot}},
		{"1..10", []string{"1", "..", "10"}, []Kind{NumberLiteral, DotDot, NumberLiteral}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenize(t, tt.input)
			require.Equal(t, tt.kinds, kindsOf(tokens))
			require.Equal(t, tt.expected, valuesOf(tokens))
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []string{
		`"hello"`,
		`'std:Console'`,
		`"say \"hi\""`,
		`'it\'s'`,
		`""`,
		`''`,
		`"a 'b' c"`,
		`"héllo wörld"`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens := mustTokenize(t, input)
			require.Len(t, tokens, 1)
			require.Equal(t, StringLiteral, tokens[0].Kind)
			require.Equal(t, input, tokens[0].Value)
		})
	}
}

func TestStringsDoNotSpanQuotes(t *testing.T) {
	tokens := mustTokenize(t, `"a" + "b"`)
	require.Equal(t,
		[]Kind{StringLiteral, WhiteSpace, Plus, WhiteSpace, StringLiteral},
		kindsOf(tokens))
	require.Equal(t, `"b"`, tokens[4].Value)
}

func TestTemplates(t *testing.T) {
	tests := []string{
		"`a ${b}`",
		"`line1\nline2`",
		"`escaped \\` tick`",
		"``",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens := mustTokenize(t, input)
			require.Len(t, tokens, 1)
			require.Equal(t, TemplateLiteral, tokens[0].Kind)
			require.Equal(t, input, tokens[0].Value)
		})
	}
}

func TestRegexpLiteral(t *testing.T) {
	tests := []struct {
		input string
		kinds []Kind
	}{
		{"/ab+c/gi", []Kind{RegexpLiteral}},
		{`/a\/b/`, []Kind{RegexpLiteral}},
		{"x = /^[a-z]+$/i", []Kind{Identifier, WhiteSpace, Equal, WhiteSpace, RegexpLiteral}},
		{"a / b / c", []Kind{Identifier, WhiteSpace, Slash, WhiteSpace, Identifier, WhiteSpace, Slash, WhiteSpace, Identifier}},
		{"a/b/c", []Kind{Identifier, Slash, Identifier, Slash, Identifier}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.kinds, kindsOf(mustTokenize(t, tt.input)))
		})
	}
}

// ---------------------------------------------------------------------------
// Test: macro identifiers
// ---------------------------------------------------------------------------
func TestMacroIdentifiers(t *testing.T) {
	tests := []struct {
		input  string
		kinds  []Kind
		values []string
	}{
		{"foo!", []Kind{MacroIdentifier}, []string{"foo!"}},
		{"@foo!", []Kind{MacroIdentifier}, []string{"@foo!"}},
		{"foo!!", []Kind{MacroIdentifier, Bang}, []string{"foo!", "!"}},
		{"foo!=bar", []Kind{Identifier, BangEqual, Identifier}, []string{"foo", "!=", "bar"}},
		{"@foo", []Kind{At, Identifier}, []string{"@", "foo"}},
		{"x ! y", []Kind{Identifier, WhiteSpace, Bang, WhiteSpace, Identifier}, []string{"x", " ", "!", " ", "y"}},
		// keywords win over macro identifiers
		{"match!", []Kind{Match, Bang}, []string{"match", "!"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenize(t, tt.input)
			require.Equal(t, tt.kinds, kindsOf(tokens))
			require.Equal(t, tt.values, valuesOf(tokens))
		})
	}
}

// ---------------------------------------------------------------------------
// Test: operators and delimiters
// ---------------------------------------------------------------------------
func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"&", And},
		{"&&", AndAnd},
		{`\`, Backslash},
		{"!", Bang},
		{"!=", BangEqual},
		{"^", Caret},
		{"$", Dollar},
		{"=", Equal},
		{"==", EqualEqual},
		{">", GreaterThan},
		{">>", GreaterThanGreaterThan},
		{">>>", GreaterThanGreaterThanGreaterThan},
		{">=", GreaterThanEqual},
		{"#", Hash},
		{"<", LessThan},
		{"<<", LessThanLessThan},
		{"<=", LessThanEqual},
		{"-", Minus},
		{"--", MinusMinus},
		{"|", Or},
		{"||", OrOr},
		{"%", Percent},
		{"+", Plus},
		{"++", PlusPlus},
		{"?", Question},
		{"/", Slash},
		{"*", Star},
		{"**", StarStar},
		{"~", Tilde},
		{"@", At},
		{":", Colon},
		{":=", ColonEqual},
		{",", Comma},
		{".", Dot},
		{"..", DotDot},
		{"...", DotDotDot},
		{"=>", FatArrow},
		{"<-", LeftArrow},
		{"->", RightArrow},
		{"{", LeftBrace},
		{"[", LeftBracket},
		{"(", LeftParen},
		{"|>", Pipe},
		{"}", RightBrace},
		{"]", RightBracket},
		{")", RightParen},
		{";", Semicolon},
		{"_", Underscore},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenize(t, tt.input)
			require.Len(t, tokens, 1, "expected one token for %q, got %v", tt.input, tokens)
			require.Equal(t, tt.expected, tokens[0].Kind)
		})
	}
}

func TestLongestOperatorFirst(t *testing.T) {
	tests := []struct {
		input string
		kinds []Kind
	}{
		{">>>>", []Kind{GreaterThanGreaterThanGreaterThan, GreaterThan}},
		{"&&&", []Kind{AndAnd, And}},
		{"....", []Kind{DotDotDot, Dot}},
		{"||>", []Kind{OrOr, GreaterThan}},
		{"-->", []Kind{MinusMinus, GreaterThan}},
		{"==>", []Kind{EqualEqual, GreaterThan}},
		{"!==", []Kind{BangEqual, Equal}},
		{"***", []Kind{StarStar, Star}},
		{":=:", []Kind{ColonEqual, Colon}},
		{"_ x", []Kind{Underscore, WhiteSpace, Identifier}},
		{"#$\\?", []Kind{Hash, Dollar, Backslash, Question}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.kinds, kindsOf(mustTokenize(t, tt.input)))
		})
	}
}

// ---------------------------------------------------------------------------
// Test: comments are tokens and never reach Slash
// ---------------------------------------------------------------------------
func TestComments(t *testing.T) {
	tests := []struct {
		input  string
		kinds  []Kind
		values []string
	}{
		{"// hi", []Kind{Comment}, []string{"// hi"}},
		{"// hi\nx", []Kind{Comment, WhiteSpace, Identifier}, []string{"// hi", "\n", "x"}},
		{"a // b", []Kind{Identifier, WhiteSpace, Comment}, []string{"a", " ", "// b"}},
		{"/* block */", []Kind{Comment}, []string{"/* block */"}},
		{"/**/", []Kind{Comment}, []string{"/**/"}},
		{"/** doc */", []Kind{DocComment}, []string{"/** doc */"}},
		{"/***/", []Kind{DocComment}, []string{"/***/"}},
		{"/**\n * doc\n */x", []Kind{DocComment, Identifier}, []string{"/**\n * doc\n */", "x"}},
		{"/* a */ /* b */", []Kind{Comment, WhiteSpace, Comment}, []string{"/* a */", " ", "/* b */"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenize(t, tt.input)
			require.Equal(t, tt.kinds, kindsOf(tokens))
			require.Equal(t, tt.values, valuesOf(tokens))
		})
	}
}

// ---------------------------------------------------------------------------
// Test: lexical errors
// ---------------------------------------------------------------------------
func TestUnrecognizedInput(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		char   string
	}{
		{"let x = ¤", 8, "¤"},
		{"€", 0, "€"},
		{"12abc", 0, "1"},
		{"x\x00", 1, "\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.Error(t, err)
			require.Nil(t, tokens)
			require.True(t, IsUnrecognizedInput(err))
			require.False(t, IsMalformedLiteral(err))

			offset, ok := ErrorOffset(err)
			require.True(t, ok)
			require.Equal(t, tt.offset, offset)

			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			require.Equal(t, "E_LEX_UNRECOGNIZED", lexErr.Diag.Code)
			require.NotNil(t, lexErr.Diag.Span)
			require.Equal(t, tt.offset, lexErr.Diag.Span.Start)
			require.Equal(t, tt.offset+len(tt.char), lexErr.Diag.Span.End)
			require.True(t, ErrUnrecognizedInput.Is(lexErr.Unwrap()))
		})
	}
}

func TestMalformedLiterals(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		kind   Kind
	}{
		{`"abc`, 0, StringLiteral},
		{`'abc`, 0, StringLiteral},
		{"\"abc\ndef\"", 0, StringLiteral},
		{`"a\"`, 0, StringLiteral},
		{`x = "abc`, 4, StringLiteral},
		{"`abc", 0, TemplateLiteral},
		{"/* abc", 0, Comment},
		{"/** abc", 0, Comment},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			require.True(t, IsMalformedLiteral(err), "got %v", err)

			offset, ok := ErrorOffset(err)
			require.True(t, ok)
			require.Equal(t, tt.offset, offset)
			require.Contains(t, err.Error(), tt.kind.String())

			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			require.Equal(t, "E_LEX_MALFORMED", lexErr.Diag.Code)
			require.NotEmpty(t, lexErr.Diag.Hint)
		})
	}
}

func TestMalformedStringSpanStopsAtNewline(t *testing.T) {
	_, err := Tokenize("\"abc\ndef")
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, ast.NewPosition(0, 4), *lexErr.Diag.Span)
}

func TestErrorOffsetOnForeignError(t *testing.T) {
	_, ok := ErrorOffset(io.ErrUnexpectedEOF)
	require.False(t, ok)
	require.False(t, IsUnrecognizedInput(io.ErrUnexpectedEOF))
}

// ---------------------------------------------------------------------------
// Test: the pull API
// ---------------------------------------------------------------------------
func TestNextUntilEOF(t *testing.T) {
	tz := New(nil)
	tz.Init("a b")

	var got []Token
	for {
		tok, err := tz.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, tok)
	}
	require.Equal(t, []Kind{Identifier, WhiteSpace, Identifier}, kindsOf(got))
	require.Equal(t, 3, tz.Offset())

	// EOF is repeated
	_, err := tz.Next()
	require.Equal(t, io.EOF, err)
}

func TestErrorIsSticky(t *testing.T) {
	tz := New(nil)
	tz.Init("ab ¤ cd")

	var err error
	for err == nil {
		_, err = tz.Next()
	}
	require.True(t, IsUnrecognizedInput(err))
	require.Equal(t, 3, tz.Offset())

	_, again := tz.Next()
	require.Same(t, err, again)
	require.Equal(t, 3, tz.Offset())
}

func TestInitRewinds(t *testing.T) {
	tz := New(nil)
	first, err := tz.Tokenize("¤")
	require.Error(t, err)
	require.Nil(t, first)

	second, err := tz.Tokenize("if x")
	require.NoError(t, err)
	require.Equal(t, []Kind{If, WhiteSpace, Identifier}, kindsOf(second))
}

func TestAllIterator(t *testing.T) {
	source := "fun add(a, b) { return a + b }"
	tz := New(nil)
	tz.Init(source)

	var got []Token
	for tok, err := range tz.All() {
		require.NoError(t, err)
		got = append(got, tok)
	}
	require.Equal(t, mustTokenize(t, source), got)
}

func TestAllStopsEarly(t *testing.T) {
	tz := New(nil)
	tz.Init("a b c")

	n := 0
	for range tz.All() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)

	// the cursor keeps its place after a break
	tok, err := tz.Next()
	require.NoError(t, err)
	require.Equal(t, "b", tok.Value)
}

func TestAllYieldsErrorOnce(t *testing.T) {
	tz := New(nil)
	tz.Init("a ¤")

	var errs []error
	var tokens []Token
	for tok, err := range tz.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tokens = append(tokens, tok)
	}
	require.Len(t, errs, 1)
	require.Len(t, tokens, 2)
	require.True(t, IsUnrecognizedInput(errs[0]))
}

// ---------------------------------------------------------------------------
// Test: stream properties
// ---------------------------------------------------------------------------
var samplePrograms = []string{
	"import Console from 'std:Console'",
	"export function fib(n: Int): Int {\n  if n <= 1 { return n } else if n == 2 { return 1 } else { return fib(n - 1) + fib(n - 2) }\n}",
	"type Point = struct { x: Float, y: Float, ...Base }",
	"effect Log { log: (String) -> () }\nhandler console of Log { log msg => print!(msg) }",
	"let total = items |> map @double! |> sum\n// done",
	"/** Docs */\nalias Id = Int; brand UserId",
	"match value { case [head, ...tail] => head case _ => 0 }",
	"while running { state := step(state); yield state }",
	"x = `template ${nested} text` + \"s\" + 's' ^ /re+/g",
}

func TestDeterminism(t *testing.T) {
	for _, source := range samplePrograms {
		require.Equal(t, mustTokenize(t, source), mustTokenize(t, source))
	}
}

func TestReconstruction(t *testing.T) {
	for _, source := range samplePrograms {
		var b strings.Builder
		for _, tok := range mustTokenize(t, source) {
			b.WriteString(tok.Value)
		}
		require.Equal(t, source, b.String())
	}
}

func TestPositionMonotonicity(t *testing.T) {
	for _, source := range samplePrograms {
		tokens := mustTokenize(t, source)
		require.NotEmpty(t, tokens)
		require.Equal(t, 0, tokens[0].Position.Start)
		require.Equal(t, len(source), tokens[len(tokens)-1].Position.End)
		for i, tok := range tokens {
			require.Less(t, tok.Position.Start, tok.Position.End, "empty token %v", tok)
			require.Equal(t, tok.Value, source[tok.Position.Start:tok.Position.End])
			if i > 0 {
				require.Equal(t, tokens[i-1].Position.End, tok.Position.Start)
			}
		}
	}
}

func TestSignificant(t *testing.T) {
	tokens := mustTokenize(t, "/** d */ a // c\n+ /* b */ b")
	sig := Significant(tokens)
	require.Equal(t, []Kind{Identifier, Plus, Identifier}, kindsOf(sig))
	// the input slice is left alone
	require.Equal(t, DocComment, tokens[0].Kind)
}

// ---------------------------------------------------------------------------
// Test: kinds and tokens
// ---------------------------------------------------------------------------
func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		name := k.String()
		require.NotEmpty(t, name)
		parsed, ok := ParseKind(name)
		require.True(t, ok, name)
		require.Equal(t, k, parsed)
		require.NotEqual(t, CategoryInvalid, k.Category(), name)
	}

	_, ok := ParseKind("Invalid")
	require.False(t, ok)
	require.Equal(t, "Kind(999)", Kind(999).String())
	require.Equal(t, CategoryInvalid, Invalid.Category())
}

func TestKindCategories(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected Category
	}{
		{BooleanLiteral, CategoryLiteral},
		{TemplateLiteral, CategoryLiteral},
		{MacroIdentifier, CategoryIdentifier},
		{Alias, CategoryKeyword},
		{Yield, CategoryKeyword},
		{And, CategoryOperator},
		{Tilde, CategoryOperator},
		{At, CategoryDelimiter},
		{Underscore, CategoryDelimiter},
		{WhiteSpace, CategoryWhitespace},
		{DocComment, CategoryComment},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.Category())
		})
	}

	assert.True(t, Comment.IsTrivia())
	assert.True(t, WhiteSpace.IsTrivia())
	assert.False(t, Identifier.IsTrivia())
	assert.Equal(t, "keyword", CategoryKeyword.String())
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Identifier, Value: "x", Position: ast.NewPosition(3, 4)}
	require.Equal(t, `Identifier("x")@[3,4)`, tok.String())
}
