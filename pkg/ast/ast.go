// Package ast defines the Asura language AST node types.
//
// The nodes are a published schema: the lexer never builds them, a parser
// consuming the token stream does.
package ast

import (
	"fmt"

	"github.com/asura-lang/asura/go/pkg/types"
)

// Position is a half-open byte range [Start, End) into a source buffer.
type Position struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewPosition returns the range [start, end).
func NewPosition(start, end int) Position {
	return Position{Start: start, End: end}
}

// Len returns the number of bytes covered.
func (p Position) Len() int { return p.End - p.Start }

// Contains reports whether offset falls inside the range.
func (p Position) Contains(offset int) bool {
	return offset >= p.Start && offset < p.End
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d)", p.Start, p.End)
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodePosition() Position
}

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Decl is the interface for all top-level declarations ---

type Decl interface {
	Node
	declNode() // sealed marker
}

// --- Literal Expressions ---

type BooleanLiteral struct {
	Position Position
	Value    bool
}

func (n *BooleanLiteral) Kind() string           { return "BooleanLiteral" }
func (n *BooleanLiteral) NodePosition() Position { return n.Position }
func (n *BooleanLiteral) exprNode()              {}

type IntegerLiteral struct {
	Position Position
	Value    int64
}

func (n *IntegerLiteral) Kind() string           { return "IntegerLiteral" }
func (n *IntegerLiteral) NodePosition() Position { return n.Position }
func (n *IntegerLiteral) exprNode()              {}

type NumberLiteral struct {
	Position Position
	Value    float64
}

func (n *NumberLiteral) Kind() string           { return "NumberLiteral" }
func (n *NumberLiteral) NodePosition() Position { return n.Position }
func (n *NumberLiteral) exprNode()              {}

// RegexpLiteral keeps the pattern text as written, slashes included.
type RegexpLiteral struct {
	Position Position
	Value    string
}

func (n *RegexpLiteral) Kind() string           { return "RegexpLiteral" }
func (n *RegexpLiteral) NodePosition() Position { return n.Position }
func (n *RegexpLiteral) exprNode()              {}

type StringLiteral struct {
	Position Position
	Value    string
}

func (n *StringLiteral) Kind() string           { return "StringLiteral" }
func (n *StringLiteral) NodePosition() Position { return n.Position }
func (n *StringLiteral) exprNode()              {}

// TemplateLiteral interleaves static text with interpolated values:
// len(Quasis) == len(Values)+1.
type TemplateLiteral struct {
	Position Position
	Quasis   []string
	Values   []Expr
}

func (n *TemplateLiteral) Kind() string           { return "TemplateLiteral" }
func (n *TemplateLiteral) NodePosition() Position { return n.Position }
func (n *TemplateLiteral) exprNode()              {}

// --- Identifiers ---

type Identifier struct {
	Position Position
	Name     string
}

func (n *Identifier) Kind() string           { return "Identifier" }
func (n *Identifier) NodePosition() Position { return n.Position }
func (n *Identifier) exprNode()              {}

// --- Control Flow ---

// MatchExpression carries only its subject; arms are not modelled yet.
type MatchExpression struct {
	Position Position
	Subject  *Identifier
}

func (n *MatchExpression) Kind() string           { return "MatchExpression" }
func (n *MatchExpression) NodePosition() Position { return n.Position }
func (n *MatchExpression) exprNode()              {}

// --- Type annotations ---

// TypeAnnotation ties a Type Algebra value to the source that spelled it.
type TypeAnnotation struct {
	Position Position
	Type     types.Type
}

func (n *TypeAnnotation) Kind() string           { return "TypeAnnotation" }
func (n *TypeAnnotation) NodePosition() Position { return n.Position }

// LabeledTypeAnnotation is a named parameter or struct member annotation.
type LabeledTypeAnnotation struct {
	Position   Position
	Label      string
	Annotation *TypeAnnotation
}

func (n *LabeledTypeAnnotation) Kind() string           { return "LabeledTypeAnnotation" }
func (n *LabeledTypeAnnotation) NodePosition() Position { return n.Position }

// --- Declarations ---

// ImportDeclaration is `import Name from 'specifier'`.
type ImportDeclaration struct {
	Position  Position
	Name      string
	Specifier string
}

func (n *ImportDeclaration) Kind() string           { return "ImportDeclaration" }
func (n *ImportDeclaration) NodePosition() Position { return n.Position }
func (n *ImportDeclaration) declNode()              {}

type FunctionDeclaration struct {
	Position   Position
	Exported   bool
	Name       string
	TypeParams []string
	Params     []*LabeledTypeAnnotation
	Effects    []*TypeAnnotation
	Return     *TypeAnnotation // nil when inferred
}

func (n *FunctionDeclaration) Kind() string           { return "FunctionDeclaration" }
func (n *FunctionDeclaration) NodePosition() Position { return n.Position }
func (n *FunctionDeclaration) declNode()              {}

// TypeDeclaration introduces a nominal struct-like type.
type TypeDeclaration struct {
	Position   Position
	Exported   bool
	Name       string
	TypeParams []string
	Members    []*LabeledTypeAnnotation
}

func (n *TypeDeclaration) Kind() string           { return "TypeDeclaration" }
func (n *TypeDeclaration) NodePosition() Position { return n.Position }
func (n *TypeDeclaration) declNode()              {}

// TypeAlias names an existing type without creating a new one.
type TypeAlias struct {
	Position Position
	Exported bool
	Name     string
	Aliased  *TypeAnnotation
}

func (n *TypeAlias) Kind() string           { return "TypeAlias" }
func (n *TypeAlias) NodePosition() Position { return n.Position }
func (n *TypeAlias) declNode()              {}

// AliasType returns the Type Algebra value this alias denotes, keeping the
// declared name for display.
func (n *TypeAlias) AliasType() types.Type {
	var target types.Type = types.Unknown
	if n.Aliased != nil && n.Aliased.Type != nil {
		target = n.Aliased.Type
	}
	return &types.Alias{Name: n.Name, Aliased: target}
}

// --- Source file ---

type SourceFile struct {
	Position Position
	Body     []Node
}

func (n *SourceFile) Kind() string           { return "SourceFile" }
func (n *SourceFile) NodePosition() Position { return n.Position }

// Walk calls fn for node and, depth first, for every node it contains.
// Returning false from fn skips the children of that node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *SourceFile:
		for _, child := range n.Body {
			Walk(child, fn)
		}
	case *TemplateLiteral:
		for _, v := range n.Values {
			Walk(v, fn)
		}
	case *MatchExpression:
		if n.Subject != nil {
			Walk(n.Subject, fn)
		}
	case *FunctionDeclaration:
		for _, p := range n.Params {
			Walk(p, fn)
		}
		for _, e := range n.Effects {
			Walk(e, fn)
		}
		if n.Return != nil {
			Walk(n.Return, fn)
		}
	case *TypeDeclaration:
		for _, m := range n.Members {
			Walk(m, fn)
		}
	case *TypeAlias:
		if n.Aliased != nil {
			Walk(n.Aliased, fn)
		}
	case *LabeledTypeAnnotation:
		if n.Annotation != nil {
			Walk(n.Annotation, fn)
		}
	}
}
