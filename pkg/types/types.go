// Package types defines the Asura type algebra: the vocabulary a checker
// uses to describe structural, effect-aware types.
//
// Values are trees. Every compound type owns its children and no value is
// shared between two parents.
package types

import (
	"strings"
)

// Type is implemented by every type constructor.
type Type interface {
	String() string
	typeNode() // sealed marker
}

// Basic is a nullary type constructor.
type Basic uint8

const (
	Unit    Basic = iota // nothing
	Never                // bottom
	Unknown              // top
	Boolean
	Int
	Float
	String
	// Infer is a placeholder resolved later by the checker.
	Infer
)

var basicNames = [...]string{
	Unit:    "()",
	Never:   "never",
	Unknown: "unknown",
	Boolean: "boolean",
	Int:     "int",
	Float:   "float",
	String:  "string",
	Infer:   "_",
}

func (b Basic) String() string {
	if int(b) < len(basicNames) {
		return basicNames[b]
	}
	return "invalid"
}

func (Basic) typeNode() {}

type (
	// Regexp is the type of a regexp literal with a known pattern.
	Regexp struct {
		Pattern string
	}
	// Template is a template literal type built from its parts.
	Template struct {
		Parts []Type
	}
	// Brand is a nominal tag; Label is required.
	Brand struct {
		Label string
	}
	Option struct {
		Elem Type
	}
	Either struct {
		Left  Type
		Right Type
	}
	Array struct {
		Elem Type
	}
	Tuple struct {
		Members []TupleMember
	}
	Struct struct {
		Members []StructMember
	}
	// Function records the effect row next to arguments and result.
	Function struct {
		TypeParams []Type
		Args       []Type
		Effects    []Type
		Return     Type
	}
	// Alias is structurally its target but displays as Name.
	Alias struct {
		Name    string
		Aliased Type
	}
	// Union and Intersection are not canonicalised: order and duplicates
	// are kept as written.
	Union struct {
		Types []Type
	}
	Intersection struct {
		Types []Type
	}
)

func (*Regexp) typeNode()       {}
func (*Template) typeNode()     {}
func (*Brand) typeNode()        {}
func (*Option) typeNode()       {}
func (*Either) typeNode()       {}
func (*Array) typeNode()        {}
func (*Tuple) typeNode()        {}
func (*Struct) typeNode()       {}
func (*Function) typeNode()     {}
func (*Alias) typeNode()        {}
func (*Union) typeNode()        {}
func (*Intersection) typeNode() {}

// TupleMember is a TupleElement or a TupleSpread.
type TupleMember interface {
	String() string
	tupleMember()
}

type TupleElement struct {
	Type Type
}

// TupleSpread splices the members of another tuple in place.
type TupleSpread struct {
	Of TupleMember
}

func (*TupleElement) tupleMember() {}
func (*TupleSpread) tupleMember()  {}

func (m *TupleElement) String() string { return m.Type.String() }
func (m *TupleSpread) String() string  { return "..." + m.Of.String() }

// StructMember is a StructField or a StructSpread.
type StructMember interface {
	String() string
	structMember()
}

type StructField struct {
	Name string
	Type Type
}

// StructSpread includes the fields of another struct type.
type StructSpread struct {
	Of StructMember
}

func (*StructField) structMember()  {}
func (*StructSpread) structMember() {}

func (m *StructField) String() string  { return m.Name + ": " + m.Type.String() }
func (m *StructSpread) String() string { return "..." + m.Of.String() }

func (t *Regexp) String() string { return "/" + t.Pattern + "/" }

func (t *Template) String() string {
	var sb strings.Builder
	sb.WriteByte('`')
	for _, p := range t.Parts {
		sb.WriteString("${")
		sb.WriteString(p.String())
		sb.WriteByte('}')
	}
	sb.WriteByte('`')
	return sb.String()
}

func (t *Brand) String() string  { return "brand " + t.Label }
func (t *Option) String() string { return "Option<" + t.Elem.String() + ">" }

func (t *Either) String() string {
	return "Either<" + t.Left.String() + ", " + t.Right.String() + ">"
}

func (t *Array) String() string { return "Array<" + t.Elem.String() + ">" }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (t *Struct) String() string {
	if len(t.Members) == 0 {
		return "{}"
	}
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (t *Function) String() string {
	var sb strings.Builder
	if len(t.TypeParams) > 0 {
		sb.WriteByte('<')
		sb.WriteString(joinTypes(t.TypeParams, ", "))
		sb.WriteByte('>')
	}
	sb.WriteByte('(')
	sb.WriteString(joinTypes(t.Args, ", "))
	sb.WriteString(") -> ")
	if t.Return == nil {
		sb.WriteString(Infer.String())
	} else {
		sb.WriteString(t.Return.String())
	}
	if len(t.Effects) > 0 {
		sb.WriteString(" with ")
		sb.WriteString(joinTypes(t.Effects, ", "))
	}
	return sb.String()
}

func (t *Alias) String() string { return t.Name }

func (t *Union) String() string        { return joinTypes(t.Types, " | ") }
func (t *Intersection) String() string { return joinTypes(t.Types, " & ") }

func joinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// Unalias strips any chain of aliases and returns the underlying type.
func Unalias(t Type) Type {
	for {
		a, ok := t.(*Alias)
		if !ok || a.Aliased == nil {
			return t
		}
		t = a.Aliased
	}
}
