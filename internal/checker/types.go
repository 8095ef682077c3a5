package checker

import (
	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/generic"
	"github.com/funvibe/typedlua/internal/scope"
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

// resolveType converts a parsed type-annotation node into a typeset.Type,
// consulting sc's alias map for names (get_type applied to a type-position
// node). A nil t means "no annotation"; callers that allow that pass
// through typeFromAnnotationOrAny instead.
func resolveType(t ast.Type, sc *scope.Scope, s *Session) typeset.Type {
	switch v := t.(type) {
	case nil:
		return typeset.Any{}

	case *ast.NamedType:
		return resolveNamedType(v, sc, s)

	case *ast.LiteralType:
		return resolveLiteralType(v)

	case *ast.FunctionType:
		return resolveFunctionTypeAnnotation(v, sc, s)

	case *ast.TupleType:
		elems := make([]typeset.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = resolveType(e, sc, s)
		}
		return typeset.Tuple{Elems: elems, Variadic: v.Variadic}

	case *ast.SumType:
		var acc typeset.Type = typeset.Void{}
		for _, m := range v.Members {
			acc = typealgebra.Union(acc, resolveType(m, sc, s))
		}
		return acc

	case *ast.TableType:
		return resolveTableType(v, sc, s)

	default:
		s.addError(diagnostics.ErrInternal, t.GetToken(), "unhandled type annotation %T", t)
		return typeset.Any{}
	}
}

func typeFromAnnotationOrAny(t ast.Type, sc *scope.Scope, s *Session) typeset.Type {
	if t == nil {
		return typeset.Any{}
	}
	return resolveType(t, sc, s)
}

func resolveNamedType(v *ast.NamedType, sc *scope.Scope, s *Session) typeset.Type {
	base, ok := sc.LookupAlias(v.Name.Value)
	if !ok {
		s.addError(diagnostics.ErrTypeUndeclared, v.Name.Token, "undeclared type '%s'", v.Name.Value)
		return typeset.Any{}
	}
	if len(v.Args) == 0 {
		return base
	}

	nominalIDs, known := s.GenericAliases[v.Name.Value]
	if !known || len(nominalIDs) != len(v.Args) {
		s.addError(diagnostics.ErrTypeUndeclared, v.Name.Token, "'%s' does not take %d type argument(s)", v.Name.Value, len(v.Args))
		return base
	}

	bindings := make(generic.Bindings, len(v.Args))
	for i, argNode := range v.Args {
		bindings[nominalIDs[i]] = resolveType(argNode, sc, s)
	}
	resolved := base
	if d, isDeferred := base.(typeset.Deferred); isDeferred {
		resolved = d.Resolve()
	}
	return generic.ApplyGenParams(bindings, nominalIDs, s.Root.PackageResolver(), resolved)
}

func resolveLiteralType(v *ast.LiteralType) typeset.Type {
	switch {
	case v.IsNil:
		return typeset.Primitive{Kind: typeset.KindNil}
	case v.IsBool:
		return typeset.LiteralBool(v.Bool)
	case v.IsFloat:
		return typeset.LiteralNumber(typeset.FloatRep(v.FloatVal))
	case v.IsNumber:
		return typeset.LiteralNumber(typeset.IntRep(v.IntVal))
	case v.IsString:
		return typeset.LiteralString(v.Str)
	default:
		return typeset.Any{}
	}
}

func resolveFunctionTypeAnnotation(v *ast.FunctionType, sc *scope.Scope, s *Session) typeset.Type {
	fn, _ := resolveGenericSignature(v.GenericParams, v.Params, v.Variadic, v.ReturnType, sc, s)
	return fn
}

// resolveGenericSignature builds a typeset.Function from a generic
// parameter clause list plus parameter/return annotation nodes, shared by
// bare function-type annotations and by checkFunctionLiteral. Generic
// parameters are introduced by a `<T, ...>` clause and bound by inference
// at call sites.
func resolveGenericSignature(genParams []*ast.GenericParamClause, paramNodes []ast.Type, variadic bool, retNode ast.Type, declScope *scope.Scope, s *Session) (typeset.Function, *scope.Scope) {
	genScope := declScope.Child()

	params := make([]typeset.GenericParam, len(genParams))
	nominalIDs := make([]typeset.ID, len(genParams))
	for i, g := range genParams {
		bound := typeFromAnnotationOrAny(g.Bound, genScope, s)
		id, nom := s.Deferred.NewGenericParam(g.Name.Value, bound)
		genScope.DeclareAlias(g.Name.Value, nom)
		params[i] = typeset.GenericParam{Name: g.Name.Value, Bound: bound}
		nominalIDs[i] = id
	}

	paramTypes := make([]typeset.Type, len(paramNodes))
	for i, p := range paramNodes {
		paramTypes[i] = resolveType(p, genScope, s)
	}

	var ret typeset.Type
	if retNode != nil {
		ret = resolveType(retNode, genScope, s)
	} else {
		ret = typeset.Void{}
	}

	return typeset.Function{
		GenericParams: params,
		NominalIDs:    nominalIDs,
		Params:        paramTypes,
		Return:        ret,
		Variadic:      variadic,
	}, genScope
}

func resolveTableType(v *ast.TableType, sc *scope.Scope, s *Session) typeset.Type {
	fields := make([]typeset.TableField, 0, len(v.Fields))
	seen := map[string]typeset.Type{}
	order := []string{}
	for _, f := range v.Fields {
		val := resolveType(f.Value, sc, s)
		if prev, dup := seen[f.Name.Value]; dup {
			seen[f.Name.Value] = typealgebra.Union(prev, val)
			s.addError(diagnostics.ErrDuplicateField, f.Name.Token, "duplicate table key '%s'", f.Name.Value)
			continue
		}
		seen[f.Name.Value] = val
		order = append(order, f.Name.Value)
	}
	for _, name := range order {
		fields = append(fields, typeset.TableField{Name: name, Val: seen[name]})
	}

	indexes := make([]typeset.TableIndex, len(v.Indexes))
	for i, ix := range v.Indexes {
		indexes[i] = typeset.TableIndex{Key: resolveType(ix.Key, sc, s), Val: resolveType(ix.Value, sc, s)}
	}

	return typeset.Table{Fields: fields, Indexes: indexes}
}
