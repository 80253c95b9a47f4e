package types

// Equal reports whether a and b are the same type tree. Aliases are equal
// when their names and targets are; Union and Intersection members are
// compared in order.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Basic:
		y, ok := b.(Basic)
		return ok && x == y
	case *Regexp:
		y, ok := b.(*Regexp)
		return ok && x.Pattern == y.Pattern
	case *Template:
		y, ok := b.(*Template)
		return ok && equalList(x.Parts, y.Parts)
	case *Brand:
		y, ok := b.(*Brand)
		return ok && x.Label == y.Label
	case *Option:
		y, ok := b.(*Option)
		return ok && Equal(x.Elem, y.Elem)
	case *Either:
		y, ok := b.(*Either)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Array:
		y, ok := b.(*Array)
		return ok && Equal(x.Elem, y.Elem)
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !equalTupleMember(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case *Struct:
		y, ok := b.(*Struct)
		if !ok || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !equalStructMember(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case *Function:
		y, ok := b.(*Function)
		return ok &&
			equalList(x.TypeParams, y.TypeParams) &&
			equalList(x.Args, y.Args) &&
			equalList(x.Effects, y.Effects) &&
			Equal(x.Return, y.Return)
	case *Alias:
		y, ok := b.(*Alias)
		return ok && x.Name == y.Name && Equal(x.Aliased, y.Aliased)
	case *Union:
		y, ok := b.(*Union)
		return ok && equalList(x.Types, y.Types)
	case *Intersection:
		y, ok := b.(*Intersection)
		return ok && equalList(x.Types, y.Types)
	}
	return false
}

func equalList(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalTupleMember(a, b TupleMember) bool {
	switch x := a.(type) {
	case *TupleElement:
		y, ok := b.(*TupleElement)
		return ok && Equal(x.Type, y.Type)
	case *TupleSpread:
		y, ok := b.(*TupleSpread)
		return ok && equalTupleMember(x.Of, y.Of)
	}
	return false
}

func equalStructMember(a, b StructMember) bool {
	switch x := a.(type) {
	case *StructField:
		y, ok := b.(*StructField)
		return ok && x.Name == y.Name && Equal(x.Type, y.Type)
	case *StructSpread:
		y, ok := b.(*StructSpread)
		return ok && equalStructMember(x.Of, y.Of)
	}
	return false
}
