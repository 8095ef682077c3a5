package typealgebra

import "github.com/funvibe/typedlua/internal/typeset"

// Union implements the "A | B" union operator: the smallest Sum representing
// "A or B". A Sum never directly contains another Sum, and never contains
// two members where one is assignable to the other.
func Union(a, b typeset.Type) typeset.Type {
	if _, isVoid := b.(typeset.Void); isVoid {
		return a
	}
	if _, isVoid := a.(typeset.Void); isVoid {
		return b
	}
	if IsAssignable(a, b).OK {
		return a
	}

	members := flattenSum(a)
	for _, m := range flattenSum(b) {
		if !subsumedBy(members, m) {
			members = append(members, m)
		}
	}

	if len(members) == 1 {
		return members[0]
	}
	return typeset.Sum{Members: members}
}

// UnionAll folds Union across ts, returning Void for an empty slice (the
// identity element: T | Void = T for any T).
func UnionAll(ts []typeset.Type) typeset.Type {
	var acc typeset.Type = typeset.Void{}
	for _, t := range ts {
		acc = Union(acc, t)
	}
	return acc
}

func flattenSum(t typeset.Type) []typeset.Type {
	if s, ok := t.(typeset.Sum); ok {
		out := make([]typeset.Type, len(s.Members))
		copy(out, s.Members)
		return out
	}
	return []typeset.Type{t}
}

func subsumedBy(members []typeset.Type, candidate typeset.Type) bool {
	for _, m := range members {
		if IsAssignable(m, candidate).OK {
			return true
		}
	}
	return false
}

// Intersect implements the "A & B" intersection operator.
func Intersect(a, b typeset.Type) typeset.Type {
	if IsAssignable(a, b).OK {
		return b
	}
	if IsAssignable(b, a).OK {
		return a
	}

	if sa, ok := a.(typeset.Sum); ok {
		members := make([]typeset.Type, len(sa.Members))
		for i, m := range sa.Members {
			members[i] = Intersect(m, b)
		}
		return UnionAll(members)
	}
	if sb, ok := b.(typeset.Sum); ok {
		members := make([]typeset.Type, len(sb.Members))
		for i, m := range sb.Members {
			members[i] = Intersect(a, m)
		}
		return UnionAll(members)
	}

	flatA := flattenProduct(a)
	flatB := flattenProduct(b)
	return typeset.Product{Members: append(flatA, flatB...)}
}

func flattenProduct(t typeset.Type) []typeset.Type {
	if p, ok := t.(typeset.Product); ok {
		out := make([]typeset.Type, len(p.Members))
		copy(out, p.Members)
		return out
	}
	return []typeset.Type{t}
}

// Difference implements the "A - B" narrowing operator used when a guard
// ("if x ~= nil then") or a truthiness test eliminates part of a union.
func Difference(a, b typeset.Type) typeset.Type {
	if typeset.Equal(a, b) {
		return typeset.Void{}
	}
	if sa, ok := a.(typeset.Sum); ok {
		members := make([]typeset.Type, 0, len(sa.Members))
		for _, m := range sa.Members {
			d := Difference(m, b)
			if _, isVoid := d.(typeset.Void); isVoid {
				continue
			}
			members = append(members, d)
		}
		return UnionAll(members)
	}

	if sb, ok := b.(typeset.Sum); ok {
		acc := a
		for _, m := range sb.Members {
			acc = Difference(acc, m)
		}
		return acc
	}

	if ap, ok := a.(typeset.Primitive); ok {
		if bl, ok := b.(typeset.Literal); ok && bl.Prim == ap.Kind {
			if ap.Kind == typeset.KindBoolean {
				if bl.Bool {
					return typeset.LiteralBool(false)
				}
				return typeset.LiteralBool(true)
			}
			// No finite enumeration possible for Number/String: return A
			// unchanged.
			return a
		}
		return a
	}

	if al, ok := a.(typeset.Literal); ok {
		if bl, ok := b.(typeset.Literal); ok {
			if typeset.Equal(al, bl) {
				return typeset.Void{}
			}
			return a
		}
		return a
	}

	return a
}

// NarrowField replaces (or appends) the field named name in a Table type,
// widening its current value to old|newValue. Used to propagate knowledge
// from an assignment like `x.foo = 3` when x's Deferred entry is in
// narrowing mode.
func NarrowField(t typeset.Table, name string, newValue typeset.Type) typeset.Table {
	fields := make([]typeset.TableField, len(t.Fields))
	copy(fields, t.Fields)
	if i := indexOfField(fields, name); i >= 0 {
		fields[i] = typeset.TableField{Name: name, Val: Union(fields[i].Val, newValue)}
	} else {
		fields = append(fields, typeset.TableField{Name: name, Val: newValue})
	}
	return typeset.Table{Fields: fields, Indexes: t.Indexes}
}

func indexOfField(fields []typeset.TableField, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// NarrowIndex replaces (or appends) the index entry whose key matches
// keyType, widening its value to old|newValue.
func NarrowIndex(t typeset.Table, keyType, newValue typeset.Type) typeset.Table {
	indexes := make([]typeset.TableIndex, len(t.Indexes))
	copy(indexes, t.Indexes)
	for i, ix := range indexes {
		if typeset.Equal(ix.Key, keyType) {
			indexes[i] = typeset.TableIndex{Key: ix.Key, Val: Union(ix.Val, newValue)}
			return typeset.Table{Fields: t.Fields, Indexes: indexes}
		}
	}
	indexes = append(indexes, typeset.TableIndex{Key: keyType, Val: newValue})
	return typeset.Table{Fields: t.Fields, Indexes: indexes}
}
