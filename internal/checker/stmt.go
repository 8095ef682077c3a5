package checker

import (
	"github.com/funvibe/typedlua/internal/access"
	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/scope"
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

// checkStatements runs checkStatement over stmts in order, in sc. Diagnostics
// accumulate on s; checking never stops at the first error.
func checkStatements(stmts []ast.Statement, sc *scope.Scope, s *Session) {
	for _, stmt := range stmts {
		checkStatement(stmt, sc, s)
	}
}

func checkStatement(stmt ast.Statement, sc *scope.Scope, s *Session) {
	switch v := stmt.(type) {
	case *ast.LocalDeclaration:
		checkLocalDeclaration(v, sc, s)
	case *ast.GlobalDeclaration:
		checkGlobalDeclaration(v, sc, s)
	case *ast.AssignStatement:
		checkAssignStatement(v, sc, s)
	case *ast.FunctionStatement:
		checkFunctionStatement(v, sc, s)
	case *ast.MethodStatement:
		checkMethodStatement(v, sc, s)
	case *ast.ReturnStatement:
		checkReturnStatement(v, sc, s)
	case *ast.ExpressionStatement:
		getType(v.Call, sc, s)
	case *ast.BreakStatement:
		checkBreakStatement(v, sc, s)
	case *ast.DoStatement:
		checkStatements(v.Body.Statements, sc.Child(), s)
	case *ast.IfStatement:
		checkIfStatement(v, sc, s)
	case *ast.WhileStatement:
		checkWhileStatement(v, sc, s)
	case *ast.RepeatStatement:
		checkRepeatStatement(v, sc, s)
	case *ast.NumericForStatement:
		checkNumericForStatement(v, sc, s)
	case *ast.GenericForStatement:
		checkGenericForStatement(v, sc, s)
	case *ast.InterfaceDeclaration:
		checkInterfaceDeclaration(v, sc, s)
	case *ast.TypeAliasDeclaration:
		checkTypeAliasDeclaration(v, sc, s)
	case *ast.BlockStatement:
		checkStatements(v.Statements, sc.Child(), s)
	default:
		s.addError(diagnostics.ErrInternal, stmt.GetToken(), "unhandled statement %T", stmt)
	}
}

// checkLocalDeclaration implements narrowing local inference: an
// unannotated name gets a Narrowing Deferred entry seeded from its
// initializer (or Nil), open to widening by later assignments; an annotated
// name gets a plain Fixed type, checked against its initializer.
func checkLocalDeclaration(v *ast.LocalDeclaration, sc *scope.Scope, s *Session) {
	values := evalArgTypes(v.Values, sc, s)
	for i, name := range v.Names {
		declared := declareOne(name, v.Annotations[i], values, i, sc, s, "local")
		if shadowed := sc.Declare(name.Value, declared); shadowed {
			s.addError(diagnostics.ErrShadow, name.Token, "local '%s' shadows an outer binding", name.Value)
		}
	}
}

// checkGlobalDeclaration is checkLocalDeclaration's sibling for `global`,
// binding through Scope.DeclareGlobal instead. Globals are not subject to
// the shadow warning.
func checkGlobalDeclaration(v *ast.GlobalDeclaration, sc *scope.Scope, s *Session) {
	values := evalArgTypes(v.Values, sc, s)
	for i, name := range v.Names {
		declared := declareOne(name, v.Annotations[i], values, i, sc, s, "global")
		sc.DeclareGlobal(name.Value, declared)
	}
}

func declareOne(name *ast.Identifier, annotation ast.Type, values []typeset.Type, i int, sc *scope.Scope, s *Session, kind string) typeset.Type {
	if annotation != nil {
		declared := resolveType(annotation, sc, s)
		if i < len(values) {
			res := typealgebra.IsAssignable(declared, values[i])
			if !res.OK {
				s.addError(diagnostics.ErrAssignability, name.Token, "cannot initialize %s '%s' (%s) with %s: %s", kind, name.Value, declared, values[i], res.Message())
			}
		}
		return declared
	}

	var initial typeset.Type = typeset.Primitive{Kind: typeset.KindNil}
	if i < len(values) {
		initial = values[i]
	}
	id := s.Deferred.New(name.Value, initial, typeset.Narrowing)
	return s.Deferred.Deferred(id)
}

// checkAssignStatement implements the assignment algorithm: the RHS is
// evaluated once (with trailing-tuple splicing) and each LHS target runs
// through checkExpect against its corresponding value, padding with Nil
// for an LHS with no matching RHS.
func checkAssignStatement(v *ast.AssignStatement, sc *scope.Scope, s *Session) {
	values := evalArgTypes(v.RHS, sc, s)
	for i, lhs := range v.LHS {
		var incoming typeset.Type = typeset.Primitive{Kind: typeset.KindNil}
		if i < len(values) {
			incoming = values[i]
		}
		checkExpect(lhs, incoming, sc, s)
	}
}

// checkFunctionStatement pre-declares v.Name as an Any-valued Deferred
// placeholder before checking the body, so a recursive call inside the body
// type-checks against a permissive stand-in rather than failing outright;
// the placeholder is finalized to the real signature once the body has been
// checked, mirroring the recursive-interface pattern below.
func checkFunctionStatement(v *ast.FunctionStatement, sc *scope.Scope, s *Session) {
	id := s.Deferred.New(v.Name.Value, typeset.Any{}, typeset.Fixed)
	placeholder := s.Deferred.Deferred(id)
	if v.IsLocal {
		if shadowed := sc.Declare(v.Name.Value, placeholder); shadowed {
			s.addError(diagnostics.ErrShadow, v.Name.Token, "local function '%s' shadows an outer binding", v.Name.Value)
		}
	} else {
		sc.DeclareGlobal(v.Name.Value, placeholder)
	}

	fnType := checkFunctionLiteral(v.Func, sc, s, nil, false)
	s.Deferred.SetType(id, fnType)
}

// checkMethodStatement types the method body, then applies the resulting
// function type to `target.methodName` through checkExpect - reusing the
// same narrowing-or-assignability logic a plain field assignment uses, since
// a method definition is exactly a field assignment whose value happens to
// be a function literal.
func checkMethodStatement(v *ast.MethodStatement, sc *scope.Scope, s *Session) {
	var selfType typeset.Type
	if v.IsSelfMethod {
		selfType = getType(v.Target, sc, s)
	}
	fnType := checkFunctionLiteral(v.Func, sc, s, selfType, v.IsSelfMethod)

	fieldAssign := &ast.FieldAccessExpression{Token: v.Token, Target: v.Target, Name: v.MethodName}
	checkExpect(fieldAssign, fnType, sc, s)
}

func checkReturnStatement(v *ast.ReturnStatement, sc *scope.Scope, s *Session) {
	values := evalArgTypes(v.Values, sc, s)
	var t typeset.Type
	switch len(values) {
	case 0:
		t = typeset.Void{}
	case 1:
		t = values[0]
	default:
		t = typeset.Tuple{Elems: values}
	}
	if res := sc.AddReturn(t); !res.OK {
		s.addError(diagnostics.ErrAssignability, v.Token, "return type mismatch: %s", res.Message())
	}
}

func checkBreakStatement(v *ast.BreakStatement, sc *scope.Scope, s *Session) {
	if s.loopDepth == 0 {
		s.addError(diagnostics.ErrBreakOutside, v.Token, "'break' outside a loop")
	}
}

// checkIfStatement checks each arm in its own child scope, narrowing a
// recognizable condition (a bare identifier, or an `x ~= nil` comparison)
// via typealgebra.Difference before checking that arm's body, applied at
// arm entry. Conditions with any other shape
// are still visited for diagnostics, just not narrowed - a deliberate
// simplification over pattern-matching every possible guard expression.
func checkIfStatement(v *ast.IfStatement, sc *scope.Scope, s *Session) {
	checkCondArm(v.Cond, v.Then, sc, s)
	for _, ei := range v.ElseIfs {
		checkCondArm(ei.Cond, ei.Body, sc, s)
	}
	if v.Else != nil {
		checkStatements(v.Else.Statements, sc.Child(), s)
	}
}

func checkCondArm(cond ast.Expression, body *ast.BlockStatement, sc *scope.Scope, s *Session) {
	getType(cond, sc, s)
	armScope := sc.Child()
	if name, narrowed := narrowTruthy(cond, sc); name != "" {
		armScope.Declare(name, narrowed)
	}
	checkStatements(body.Statements, armScope, s)
}

var nilType = typeset.Primitive{Kind: typeset.KindNil}

func narrowTruthy(cond ast.Expression, sc *scope.Scope) (string, typeset.Type) {
	switch c := cond.(type) {
	case *ast.Identifier:
		t, ok := sc.Lookup(c.Value)
		if !ok {
			return "", nil
		}
		return c.Value, typealgebra.Difference(typealgebra.Difference(t, falseLit), nilType)

	case *ast.BinaryExpression:
		if c.Op != "~=" {
			return "", nil
		}
		id, ok := c.Left.(*ast.Identifier)
		other := c.Right
		if !ok {
			id, ok = c.Right.(*ast.Identifier)
			other = c.Left
		}
		if _, isNil := other.(*ast.NilLiteral); !ok || !isNil {
			return "", nil
		}
		t, found := sc.Lookup(id.Value)
		if !found {
			return "", nil
		}
		return id.Value, typealgebra.Difference(t, nilType)

	default:
		return "", nil
	}
}

func checkWhileStatement(v *ast.WhileStatement, sc *scope.Scope, s *Session) {
	getType(v.Cond, sc, s)
	s.loopDepth++
	checkStatements(v.Body.Statements, sc.Child(), s)
	s.loopDepth--
}

// checkRepeatStatement checks cond in the body's own scope, per Lua's
// repeat-until rule that the condition sees locals declared in the body.
func checkRepeatStatement(v *ast.RepeatStatement, sc *scope.Scope, s *Session) {
	bodyScope := sc.Child()
	s.loopDepth++
	checkStatements(v.Body.Statements, bodyScope, s)
	getType(v.Cond, bodyScope, s)
	s.loopDepth--
}

func checkNumericForStatement(v *ast.NumericForStatement, sc *scope.Scope, s *Session) {
	checkNumericBound(v.Start, sc, s)
	checkNumericBound(v.Stop, sc, s)
	if v.Step != nil {
		checkNumericBound(v.Step, sc, s)
	}

	loopScope := sc.Child()
	loopScope.Declare(v.Var.Value, numberType)
	s.loopDepth++
	checkStatements(v.Body.Statements, loopScope, s)
	s.loopDepth--
}

func checkNumericBound(e ast.Expression, sc *scope.Scope, s *Session) {
	t := getType(e, sc, s)
	if res := typealgebra.IsAssignable(numberType, t); !res.OK {
		s.addError(diagnostics.ErrAssignability, e.GetToken(), "for loop bound must be Number: %s", res.Message())
	}
}

// checkGenericForStatement implements the iterator-protocol for loop: Exprs
// evaluates (with trailing-tuple splicing) to an (iterator, state, control)
// triple, the iterator is called once through resolve_overload, and its
// result tuple's elements bind Names in the loop body, using
// resolve_overload the same way a plain call expression does.
func checkGenericForStatement(v *ast.GenericForStatement, sc *scope.Scope, s *Session) {
	vals := evalArgTypes(v.Exprs, sc, s)
	var iterFn typeset.Type = typeset.Any{}
	var rest []typeset.Type
	if len(vals) > 0 {
		iterFn = vals[0]
		rest = vals[1:]
	}

	var resultT typeset.Type = typeset.Any{}
	if res := access.ResolveOverload(iterFn, rest, s.Root.PackageResolver()); res.Found {
		resultT = res.Type
	} else {
		s.addError(diagnostics.ErrAssignability, v.Token, "generic for iterator is not callable with these arguments: %s", joinNotes(res.Notes))
	}

	elems := tupleElemsOf(resultT)
	loopScope := sc.Child()
	for i, name := range v.Names {
		t := typeset.Type(nilType)
		if i < len(elems) {
			t = elems[i]
		}
		loopScope.Declare(name.Value, t)
	}
	s.loopDepth++
	checkStatements(v.Body.Statements, loopScope, s)
	s.loopDepth--
}

func tupleElemsOf(t typeset.Type) []typeset.Type {
	if tup, ok := t.(typeset.Tuple); ok {
		return tup.Elems
	}
	return []typeset.Type{t}
}

// checkInterfaceDeclaration reserves a Fixed Deferred entry for Name before
// resolving its body, so a field typed as Name itself (a recursive
// interface) resolves to that same entry instead of recursing infinitely
// following the same recursive-type discipline used elsewhere.
func checkInterfaceDeclaration(v *ast.InterfaceDeclaration, sc *scope.Scope, s *Session) {
	id := s.Deferred.Reserve(v.Name.Value, typeset.Fixed)
	placeholder := s.Deferred.Deferred(id)
	sc.DeclareAlias(v.Name.Value, placeholder)

	bodyScope, nominalIDs := declareGenericParamScope(v.GenericParams, sc, s)
	if len(nominalIDs) > 0 {
		s.GenericAliases[v.Name.Value] = nominalIDs
	}

	body := resolveTableType(v.Body, bodyScope, s)
	s.Deferred.SetType(id, body)
}

// checkTypeAliasDeclaration is checkInterfaceDeclaration's sibling for
// `type Name<T, ...> = TypeExpr`, where the aliased value may be any type
// expression rather than only a table body.
func checkTypeAliasDeclaration(v *ast.TypeAliasDeclaration, sc *scope.Scope, s *Session) {
	id := s.Deferred.Reserve(v.Name.Value, typeset.Fixed)
	placeholder := s.Deferred.Deferred(id)
	sc.DeclareAlias(v.Name.Value, placeholder)

	bodyScope, nominalIDs := declareGenericParamScope(v.GenericParams, sc, s)
	if len(nominalIDs) > 0 {
		s.GenericAliases[v.Name.Value] = nominalIDs
	}

	resolved := resolveType(v.Value, bodyScope, s)
	s.Deferred.SetType(id, resolved)
}

func declareGenericParamScope(genParams []*ast.GenericParamClause, sc *scope.Scope, s *Session) (*scope.Scope, []typeset.ID) {
	if len(genParams) == 0 {
		return sc, nil
	}
	bodyScope := sc.Child()
	nominalIDs := make([]typeset.ID, len(genParams))
	for i, g := range genParams {
		bound := typeFromAnnotationOrAny(g.Bound, bodyScope, s)
		gid, nom := s.Deferred.NewGenericParam(g.Name.Value, bound)
		bodyScope.DeclareAlias(g.Name.Value, nom)
		nominalIDs[i] = gid
	}
	return bodyScope, nominalIDs
}
