// Package access implements the field/index/return/overload helpers.
// These drive expression checking: every `.field`, `[key]`, call and
// method-call node in the checker goes through one of these functions.
package access

import (
	"fmt"

	"github.com/funvibe/typedlua/internal/generic"
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

// Result is the outcome of a field/index/return lookup: either a resolved
// Type, or a chain of notes explaining why resolution failed.
type Result struct {
	Type  typeset.Type
	Found bool
	Notes []string
}

func found(t typeset.Type) Result { return Result{Type: t, Found: true} }

func notFound(note string) Result { return Result{Found: false, Notes: []string{note}} }

// Metatables maps a primitive kind to the table that supplies its fields,
// e.g. a "string" metatable exposing `:upper()`/`:sub(...)`.
type Metatables map[typeset.PrimitiveKind]typeset.Type

// FieldOf walks t looking for a field (or string-keyed index) named name.
func FieldOf(t typeset.Type, name string, metatables Metatables) Result {
	switch v := t.(type) {
	case typeset.Table:
		if i := v.FieldIndex(name); i >= 0 {
			return found(v.Fields[i].Val)
		}
		key := typeset.Literal{Prim: typeset.KindString, Str: name}
		for _, ix := range v.Indexes {
			if typealgebra.IsAssignable(ix.Key, key).OK {
				return found(ix.Val)
			}
		}
		return notFound(fmt.Sprintf("Table has no field or string index '%s'", name))

	case typeset.Primitive:
		if mt, ok := metatables[v.Kind]; ok {
			res := FieldOf(mt, name, metatables)
			if res.Found {
				return res
			}
			return Result{Found: false, Notes: append([]string{fmt.Sprintf("In %s metatable", v.Kind)}, res.Notes...)}
		}
		return notFound(fmt.Sprintf("Primitive %s has no metatable", v.Kind))

	case typeset.Literal:
		return FieldOf(v.Underlying(), name, metatables)

	case typeset.Sum:
		var results []typeset.Type
		for _, m := range v.Members {
			res := FieldOf(m, name, metatables)
			if !res.Found {
				return Result{Found: false, Notes: append([]string{fmt.Sprintf("At union member %s", m)}, res.Notes...)}
			}
			results = append(results, res.Type)
		}
		return found(typealgebra.UnionAll(results))

	case typeset.Deferred:
		return FieldOf(v.Resolve(), name, metatables)

	case typeset.Nominal:
		return FieldOf(v.Bound(), name, metatables)

	case typeset.Any:
		return found(typeset.Any{})

	default:
		return notFound(fmt.Sprintf("%s has no fields", t))
	}
}

// IndexOf walks t looking for an index entry whose key accepts keyType;
// the first matching entry wins.
func IndexOf(t typeset.Type, keyType typeset.Type) Result {
	switch v := t.(type) {
	case typeset.Table:
		for _, ix := range v.Indexes {
			if typealgebra.IsAssignable(ix.Key, keyType).OK {
				return found(ix.Val)
			}
		}
		return notFound(fmt.Sprintf("Table has no index accepting %s", keyType))

	case typeset.Sum:
		var results []typeset.Type
		for _, m := range v.Members {
			res := IndexOf(m, keyType)
			if !res.Found {
				return Result{Found: false, Notes: append([]string{fmt.Sprintf("At union member %s", m)}, res.Notes...)}
			}
			results = append(results, res.Type)
		}
		return found(typealgebra.UnionAll(results))

	case typeset.Deferred:
		return IndexOf(v.Resolve(), keyType)

	case typeset.Nominal:
		return IndexOf(v.Bound(), keyType)

	case typeset.Any:
		return found(typeset.Any{})

	default:
		return notFound(fmt.Sprintf("%s is not indexable", t))
	}
}

// ReturnOf returns T's return type.
func ReturnOf(t typeset.Type) Result {
	switch v := t.(type) {
	case typeset.Function:
		return found(returnOrVoid(v.Return))

	case typeset.Sum:
		var results []typeset.Type
		for _, m := range v.Members {
			res := ReturnOf(m)
			if !res.Found {
				return Result{Found: false, Notes: append([]string{fmt.Sprintf("At union member %s", m)}, res.Notes...)}
			}
			results = append(results, res.Type)
		}
		return found(typealgebra.UnionAll(results))

	case typeset.Deferred:
		return ReturnOf(v.Resolve())

	case typeset.Nominal:
		return ReturnOf(v.Bound())

	case typeset.Any:
		return found(typeset.Any{})

	default:
		return notFound(fmt.Sprintf("%s is not callable", t))
	}
}

func returnOrVoid(t typeset.Type) typeset.Type {
	if t == nil {
		return typeset.Void{}
	}
	return t
}

// ResolveOverload type-checks a call of t with the given argument types.
// args is the call's semi-tuple, already including a self-call's receiver
// if applicable. getPackageType resolves a Require marker reached while
// substituting a matched overload's generic return type; it may be nil if
// the caller knows no reachable return type contains one.
func ResolveOverload(t typeset.Type, args []typeset.Type, getPackageType generic.PackageTypeResolver) Result {
	switch v := t.(type) {
	case typeset.Function:
		return resolveFunctionCall(v, args, getPackageType)

	case typeset.Product:
		var notes []string
		for _, m := range v.Members {
			res := ResolveOverload(m, args, getPackageType)
			if res.Found {
				return res
			}
			notes = append(notes, res.Notes...)
		}
		if len(notes) == 0 {
			notes = []string{fmt.Sprintf("No overload of %s accepts the given arguments", t)}
		}
		return Result{Found: false, Notes: notes}

	case typeset.Deferred:
		return ResolveOverload(v.Resolve(), args, getPackageType)

	case typeset.Nominal:
		return ResolveOverload(v.Bound(), args, getPackageType)

	case typeset.Any:
		return found(typeset.Any{})

	default:
		return notFound(fmt.Sprintf("%s is not callable", t))
	}
}

func resolveFunctionCall(f typeset.Function, args []typeset.Type, getPackageType generic.PackageTypeResolver) Result {
	if len(args) < len(f.Params) && !hasTrailingNilAcceptance(f.Params[len(args):]) {
		return notFound(fmt.Sprintf("Expected %d arguments, got %d", len(f.Params), len(args)))
	}
	if len(args) > len(f.Params) && !f.Variadic {
		return notFound(fmt.Sprintf("Expected %d arguments, got %d", len(f.Params), len(args)))
	}

	padded := make([]typeset.Type, len(f.Params))
	for i := range f.Params {
		if i < len(args) {
			padded[i] = args[i]
		} else {
			padded[i] = typeset.Primitive{Kind: typeset.KindNil}
		}
	}

	bindings := generic.Bindings{}
	for i, p := range f.Params {
		res := generic.CheckParam(p, padded[i], f.NominalIDs, bindings)
		if !res.OK {
			return Result{Found: false, Notes: append([]string{fmt.Sprintf("At argument %d", i)}, res.Crumbs...)}
		}
	}

	ret := returnOrVoid(f.Return)
	substituted := generic.ApplyGenParams(bindings, f.NominalIDs, getPackageType, ret)
	return found(substituted)
}

func hasTrailingNilAcceptance(params []typeset.Type) bool {
	for _, p := range params {
		if !typealgebra.IsAssignable(p, typeset.Primitive{Kind: typeset.KindNil}).OK {
			return false
		}
	}
	return true
}
