package typeset

// Equal reports whether a and b are structurally equal.
// Literal equality honors NumberRep's integer/float distinction. Nominal
// equality is by Deferred id, never by the shape of its bound. A plain
// Deferred (not wrapping a Nominal) that does not share an id with its
// counterpart falls through to comparing resolved types, since a Deferred
// is just a lazily-resolved alias rather than a fresh identity.
func Equal(a, b Type) bool {
	switch x := a.(type) {
	case Void:
		_, ok := b.(Void)
		return ok
	case Any:
		_, ok := b.(Any)
		return ok
	case Primitive:
		y, ok := b.(Primitive)
		return ok && x.Kind == y.Kind
	case Literal:
		y, ok := b.(Literal)
		if !ok || x.Prim != y.Prim {
			return false
		}
		switch x.Prim {
		case KindBoolean:
			return x.Bool == y.Bool
		case KindNumber:
			return x.Num.Equal(y.Num)
		case KindString:
			return x.Str == y.Str
		default:
			return true
		}
	case Nominal:
		y, ok := b.(Nominal)
		return ok && x.Ref.Table == y.Ref.Table && x.Ref.ID == y.Ref.ID
	case Deferred:
		if y, ok := b.(Deferred); ok {
			if x.Table == y.Table && x.ID == y.ID {
				return equalArgs(x.Args, y.Args)
			}
		}
		return Equal(x.Resolve(), resolveIfDeferred(b))
	case Function:
		y, ok := b.(Function)
		if !ok || len(x.GenericParams) != len(y.GenericParams) || len(x.Params) != len(y.Params) || x.Variadic != y.Variadic {
			return false
		}
		for i := range x.GenericParams {
			if x.GenericParams[i].Name != y.GenericParams[i].Name {
				return false
			}
			if !Equal(x.GenericParams[i].Bound, y.GenericParams[i].Bound) {
				return false
			}
		}
		for i := range x.Params {
			if !Equal(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return Equal(x.Return, y.Return)
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Elems) != len(y.Elems) || x.Variadic != y.Variadic {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case Sum:
		y, ok := b.(Sum)
		if !ok || len(x.Members) != len(y.Members) {
			return false
		}
		return setEqual(x.Members, y.Members)
	case Product:
		y, ok := b.(Product)
		if !ok || len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !Equal(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case Table:
		y, ok := b.(Table)
		if !ok || len(x.Fields) != len(y.Fields) || len(x.Indexes) != len(y.Indexes) {
			return false
		}
		for _, f := range x.Fields {
			i := y.FieldIndex(f.Name)
			if i < 0 || !Equal(f.Val, y.Fields[i].Val) {
				return false
			}
		}
		return indexesEqual(x.Indexes, y.Indexes)
	case Require:
		y, ok := b.(Require)
		return ok && Equal(x.Inner, y.Inner)
	default:
		return false
	}
}

func resolveIfDeferred(t Type) Type {
	if d, ok := t.(Deferred); ok {
		return d.Resolve()
	}
	return t
}

func equalArgs(a, b []Type) bool {
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

// setEqual compares two Sum member lists order-independently: each member
// of a must have a structurally equal counterpart in b, and the lengths
// already match. Safe because Sum is normalized (no duplicates) by
// construction.
func setEqual(a, b []Type) bool {
	used := make([]bool, len(b))
	for _, m := range a {
		found := false
		for i, o := range b {
			if !used[i] && Equal(m, o) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func indexesEqual(a, b []TableIndex) bool {
	used := make([]bool, len(b))
	for _, m := range a {
		found := false
		for i, o := range b {
			if !used[i] && Equal(m.Key, o.Key) && Equal(m.Val, o.Val) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
