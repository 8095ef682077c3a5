package checker

import (
	"github.com/funvibe/typedlua/internal/access"
	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/scope"
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

// getType runs get_type(scope): a pure(ish) query - it may still report
// diagnostics the first time a node is visited (an undeclared name, a bad
// operator application), but never narrows anything. Narrowing only ever
// happens through checkExpect.
func getType(e ast.Expression, sc *scope.Scope, s *Session) typeset.Type {
	switch v := e.(type) {
	case *ast.NilLiteral:
		return typeset.Primitive{Kind: typeset.KindNil}
	case *ast.BooleanLiteral:
		return typeset.LiteralBool(v.Value)
	case *ast.NumberLiteral:
		if v.IsFloat {
			return typeset.LiteralNumber(typeset.FloatRep(v.FloatVal))
		}
		return typeset.LiteralNumber(typeset.IntRep(v.IntVal))
	case *ast.StringLiteral:
		return typeset.LiteralString(v.Value)

	case *ast.Identifier:
		if t, ok := sc.Lookup(v.Value); ok {
			return t
		}
		s.nameError(sc, v.Token, v.Value)
		return typeset.Any{}

	case *ast.SelfExpression:
		if s.selfDepth == 0 {
			s.addError(diagnostics.ErrSelfOutside, v.Token, "'self' referenced outside a method body")
			return typeset.Any{}
		}
		if t, ok := sc.Lookup("self"); ok {
			return t
		}
		return typeset.Any{}

	case *ast.VarargsExpression:
		dotsType, ok := sc.Dots()
		if !ok {
			s.addError(diagnostics.ErrDotsDisabled, v.Token, "'...' referenced in a scope that disables it")
			return typeset.Any{}
		}
		return typeset.Tuple{Elems: []typeset.Type{dotsType}, Variadic: true}

	case *ast.BinaryExpression:
		left := getType(v.Left, sc, s)
		right := getType(v.Right, sc, s)
		return checkBinary(v.Op, v.Token, left, right, s)

	case *ast.UnaryExpression:
		operand := getType(v.Operand, sc, s)
		return checkUnary(v.Op, v.Token, operand, s)

	case *ast.FieldAccessExpression:
		targetType := getType(v.Target, sc, s)
		res := access.FieldOf(targetType, v.Name.Value, sc.Metatables())
		if !res.Found {
			s.addError(diagnostics.ErrNameUndeclared, v.Name.Token, "no field '%s' on %s", v.Name.Value, targetType)
			return typeset.Any{}
		}
		return res.Type

	case *ast.IndexExpression:
		targetType := getType(v.Target, sc, s)
		keyType := getType(v.Index, sc, s)
		res := access.IndexOf(targetType, keyType)
		if !res.Found {
			s.addError(diagnostics.ErrNameUndeclared, v.Token, "%s is not indexable by %s", targetType, keyType)
			return typeset.Any{}
		}
		return res.Type

	case *ast.CallExpression:
		return getCallType(v, sc, s)

	case *ast.MethodCallExpression:
		return getMethodCallType(v, sc, s)

	case *ast.FunctionLiteral:
		fn := checkFunctionLiteral(v, sc, s, nil, false)
		return fn

	case *ast.TableConstructor:
		return getTableConstructorType(v, sc, s)

	default:
		s.addError(diagnostics.ErrInternal, e.GetToken(), "unhandled expression %T", e)
		return typeset.Any{}
	}
}

// getCallType resolves a call expression, special-casing a bare `require`
// callee into a typeset.Require marker instead of an ordinary overload
// resolution.
func getCallType(v *ast.CallExpression, sc *scope.Scope, s *Session) typeset.Type {
	if t, ok := s.Calls[v]; ok {
		return t
	}
	if name, ok := v.Callee.(*ast.Identifier); ok && name.Value == "require" {
		var argType typeset.Type = typeset.Any{}
		if len(v.Args) > 0 {
			argType = getType(v.Args[0], sc, s)
		}
		for _, extra := range v.Args[1:] {
			getType(extra, sc, s)
		}
		result := resolveRequire(argType, s)
		s.Calls[v] = result
		return result
	}

	calleeType := getType(v.Callee, sc, s)
	args := evalArgTypes(v.Args, sc, s)

	res := access.ResolveOverload(calleeType, args, s.Root.PackageResolver())
	if !res.Found {
		code := diagnostics.ErrAssignability
		fnType := calleeType
		if d, ok := fnType.(typeset.Deferred); ok {
			fnType = d.Resolve()
		}
		if fn, ok := fnType.(typeset.Function); ok {
			if len(args) > len(fn.Params) && !fn.Variadic {
				code = diagnostics.ErrArityTooMany
			}
			for _, p := range fn.Params[min(len(args), len(fn.Params)):] {
				if !typealgebra.IsAssignable(p, nilType).OK {
					code = diagnostics.ErrArityTooFew
				}
			}
		}
		s.addError(code, v.Token, "cannot call %s with these arguments: %s", calleeType, joinNotes(res.Notes))
		s.Calls[v] = typeset.Any{}
		return typeset.Any{}
	}
	s.Calls[v] = res.Type
	return res.Type
}

// resolveRequire applies generic.ApplyGenParams's Require substitution rule
// directly, since a require() call site is exactly a "Literal String
// argument" case.
func resolveRequire(argType typeset.Type, s *Session) typeset.Type {
	if lit, ok := argType.(typeset.Literal); ok && lit.Prim == typeset.KindString {
		if resolver := s.Root.PackageResolver(); resolver != nil {
			return resolver(lit.Str)
		}
	}
	return typeset.Any{}
}

func getMethodCallType(v *ast.MethodCallExpression, sc *scope.Scope, s *Session) typeset.Type {
	if t, ok := s.Calls[v]; ok {
		return t
	}
	receiverType := getType(v.Receiver, sc, s)
	methodRes := access.FieldOf(receiverType, v.Method.Value, sc.Metatables())
	if !methodRes.Found {
		s.addError(diagnostics.ErrNameUndeclared, v.Method.Token, "no method '%s' on %s", v.Method.Value, receiverType)
		return typeset.Any{}
	}

	args := append([]typeset.Type{receiverType}, evalArgTypes(v.Args, sc, s)...)
	res := access.ResolveOverload(methodRes.Type, args, s.Root.PackageResolver())
	if !res.Found {
		s.addError(diagnostics.ErrAssignability, v.Token, "cannot call method '%s' with these arguments: %s", v.Method.Value, joinNotes(res.Notes))
		s.Calls[v] = typeset.Any{}
		return typeset.Any{}
	}
	s.Calls[v] = res.Type
	return res.Type
}

func evalArgTypes(args []ast.Expression, sc *scope.Scope, s *Session) []typeset.Type {
	if len(args) == 0 {
		return nil
	}
	out := make([]typeset.Type, 0, len(args))
	for i, a := range args {
		t := getType(a, sc, s)
		if i == len(args)-1 {
			if tup, ok := t.(typeset.Tuple); ok {
				out = append(out, spliceTupleElems(tup)...)
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// spliceTupleElems flattens a trailing call/varargs result's Tuple into the
// argument list it is splicing into, the same tuple-splice property
// applied at call sites that is_assignable applies too.
func spliceTupleElems(t typeset.Tuple) []typeset.Type {
	return append([]typeset.Type{}, t.Elems...)
}

func joinNotes(notes []string) string {
	out := ""
	for i, n := range notes {
		if i > 0 {
			out += "; "
		}
		out += n
	}
	return out
}

func getTableConstructorType(v *ast.TableConstructor, sc *scope.Scope, s *Session) typeset.Type {
	fieldOrder := []string{}
	fieldTypes := map[string]typeset.Type{}
	var indexes []typeset.TableIndex
	var positional typeset.Type

	for _, f := range v.Fields {
		switch {
		case f.Name != nil:
			valType := getType(f.Value, sc, s)
			if prev, dup := fieldTypes[f.Name.Value]; dup {
				fieldTypes[f.Name.Value] = typealgebra.Union(prev, valType)
				s.addError(diagnostics.ErrDuplicateField, f.Name.Token, "duplicate table key '%s'", f.Name.Value)
				continue
			}
			fieldTypes[f.Name.Value] = valType
			fieldOrder = append(fieldOrder, f.Name.Value)

		case f.Key != nil:
			valType := getType(f.Value, sc, s)
			if strLit, ok := f.Key.(*ast.StringLiteral); ok {
				if prev, dup := fieldTypes[strLit.Value]; dup {
					fieldTypes[strLit.Value] = typealgebra.Union(prev, valType)
					s.addError(diagnostics.ErrDuplicateField, strLit.Token, "duplicate table key '%s'", strLit.Value)
					continue
				}
				fieldTypes[strLit.Value] = valType
				fieldOrder = append(fieldOrder, strLit.Value)
				continue
			}
			keyType := getType(f.Key, sc, s)
			indexes = append(indexes, typeset.TableIndex{Key: keyType, Val: valType})

		default:
			valType := getType(f.Value, sc, s)
			if positional == nil {
				positional = valType
			} else {
				positional = typealgebra.Union(positional, valType)
			}
		}
	}

	fields := make([]typeset.TableField, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		fields = append(fields, typeset.TableField{Name: name, Val: fieldTypes[name]})
	}
	if positional != nil {
		indexes = append(indexes, typeset.TableIndex{Key: numberType, Val: positional})
	}
	return typeset.Table{Fields: fields, Indexes: indexes}
}
