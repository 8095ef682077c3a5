// Package generic implements inference of generic parameters at call
// sites (check_param) and substitution of inferred bindings through an
// arbitrary type shape (apply_genparams), including resolving a Require
// marker through a package-type callback.
package generic

import (
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

// Bindings maps a Deferred id (one of a Function's NominalIDs) to the
// concrete type inferred for it so far.
type Bindings map[typeset.ID]typeset.Type

// nominalSet builds a lookup set from a NominalIDs slice.
func nominalSet(ids []typeset.ID) map[typeset.ID]bool {
	set := make(map[typeset.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// CheckParam walks paramType against argType, inferring bindings for any
// Nominal in nominalIDs it encounters, and falls back to regular
// assignability once paramType bottoms out in a non-generic shape.
func CheckParam(paramType, argType typeset.Type, nominalIDs []typeset.ID, bindings Bindings) typealgebra.Result {
	return checkParam(paramType, argType, nominalSet(nominalIDs), bindings)
}

func checkParam(paramType, argType typeset.Type, nominals map[typeset.ID]bool, bindings Bindings) typealgebra.Result {
	switch pt := paramType.(type) {
	case typeset.Nominal:
		if nominals[pt.Ref.ID] {
			if inferred, ok := bindings[pt.Ref.ID]; ok {
				return typealgebra.IsAssignable(inferred, argType)
			}
			bound := pt.Bound()
			res := typealgebra.IsAssignable(bound, argType)
			if res.OK {
				bindings[pt.Ref.ID] = argType
			}
			return res
		}
		return typealgebra.IsAssignable(pt.Bound(), argType)

	case typeset.Table:
		arg, ok := resolveTable(argType)
		if !ok {
			return typealgebra.IsAssignable(paramType, argType)
		}
		for _, ix := range pt.Indexes {
			for _, aix := range arg.Indexes {
				if typealgebra.IsAssignable(ix.Key, aix.Key).OK {
					if res := checkParam(ix.Val, aix.Val, nominals, bindings); !res.OK {
						return res
					}
				}
			}
		}
		for _, f := range pt.Fields {
			if i := arg.FieldIndex(f.Name); i >= 0 {
				if res := checkParam(f.Val, arg.Fields[i].Val, nominals, bindings); !res.OK {
					return res
				}
			}
		}
		return typealgebra.Result{OK: true}

	case typeset.Sum:
		var last typealgebra.Result
		for _, m := range pt.Members {
			res := checkParam(m, argType, nominals, bindings)
			if res.OK {
				return res
			}
			last = res
		}
		return last

	case typeset.Deferred:
		return checkParam(pt.Resolve(), argType, nominals, bindings)

	default:
		substituted := ApplyGenParams(bindings, setToSlice(nominals), nil, paramType)
		return typealgebra.IsAssignable(substituted, argType)
	}
}

func resolveTable(t typeset.Type) (typeset.Table, bool) {
	switch v := t.(type) {
	case typeset.Table:
		return v, true
	case typeset.Deferred:
		return resolveTable(v.Resolve())
	case typeset.Nominal:
		return resolveTable(v.Bound())
	default:
		return typeset.Table{}, false
	}
}

func setToSlice(set map[typeset.ID]bool) []typeset.ID {
	out := make([]typeset.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// PackageTypeResolver resolves a module name (from a require(...) call) to
// the type of its top-level return value.
type PackageTypeResolver func(moduleName string) typeset.Type

// ApplyGenParams substitutes inferred generics into t.
// getPackageType may be nil if t (and everything reachable from it) is
// known not to contain a Require marker.
func ApplyGenParams(bindings Bindings, nominalIDs []typeset.ID, getPackageType PackageTypeResolver, t typeset.Type) typeset.Type {
	return applyGenParams(t, nominalSet(nominalIDs), bindings, getPackageType)
}

func applyGenParams(t typeset.Type, nominals map[typeset.ID]bool, bindings Bindings, getPackageType PackageTypeResolver) typeset.Type {
	switch v := t.(type) {
	case typeset.Nominal:
		if nominals[v.Ref.ID] {
			if b, ok := bindings[v.Ref.ID]; ok {
				return b
			}
			return typeset.Any{}
		}
		return v

	case typeset.Table:
		fields := make([]typeset.TableField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = typeset.TableField{Name: f.Name, Val: applyGenParams(f.Val, nominals, bindings, getPackageType)}
		}
		indexes := make([]typeset.TableIndex, len(v.Indexes))
		for i, ix := range v.Indexes {
			indexes[i] = typeset.TableIndex{
				Key: applyGenParams(ix.Key, nominals, bindings, getPackageType),
				Val: applyGenParams(ix.Val, nominals, bindings, getPackageType),
			}
		}
		return typeset.Table{Fields: fields, Indexes: indexes}

	case typeset.Tuple:
		elems := make([]typeset.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = applyGenParams(e, nominals, bindings, getPackageType)
		}
		return typeset.Tuple{Elems: elems, Variadic: v.Variadic}

	case typeset.Sum:
		members := make([]typeset.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = applyGenParams(m, nominals, bindings, getPackageType)
		}
		return typealgebra.UnionAll(members)

	case typeset.Product:
		members := make([]typeset.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = applyGenParams(m, nominals, bindings, getPackageType)
		}
		return typeset.Product{Members: members}

	case typeset.Function:
		params := make([]typeset.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = applyGenParams(p, nominals, bindings, getPackageType)
		}
		var ret typeset.Type
		if v.Return != nil {
			ret = applyGenParams(v.Return, nominals, bindings, getPackageType)
		}
		return typeset.Function{
			GenericParams: v.GenericParams,
			NominalIDs:    v.NominalIDs,
			Params:        params,
			Return:        ret,
			Variadic:      v.Variadic,
		}

	case typeset.Require:
		inner := applyGenParams(v.Inner, nominals, bindings, getPackageType)
		if lit, ok := inner.(typeset.Literal); ok && lit.Prim == typeset.KindString {
			if getPackageType != nil {
				return getPackageType(lit.Str)
			}
		}
		return typeset.Any{}

	default:
		return t
	}
}
