package checker

import (
	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/scope"
	"github.com/funvibe/typedlua/internal/typeset"
)

// checkFunctionLiteral types a function literal's signature, then checks its
// body in a child scope carrying that signature's varargs and return
// discipline. selfType/isSelfMethod are non-nil/true only when called from
// a colon-syntax MethodStatement; an ordinary function literal passes
// (nil, false).
func checkFunctionLiteral(fn *ast.FunctionLiteral, declScope *scope.Scope, s *Session, selfType typeset.Type, isSelfMethod bool) typeset.Function {
	paramNodes := make([]ast.Type, len(fn.Params))
	for i, p := range fn.Params {
		paramNodes[i] = p.Annotation
	}

	fnType, genScope := resolveGenericSignature(fn.GenericParams, paramNodes, fn.Variadic, fn.ReturnType, declScope, s)

	var bodyScope *scope.Scope
	if fn.Variadic {
		dotsType := typeFromAnnotationOrAny(fn.VariadicType, genScope, s)
		bodyScope = genScope.ChildWithDots(dotsType)
	} else {
		bodyScope = genScope.ChildNoDots()
	}

	if fn.ReturnType != nil {
		bodyScope = bodyScope.ChildFixedReturn(fnType.Return)
	} else {
		bodyScope = bodyScope.ChildDeduceReturn()
	}

	if selfType != nil {
		bodyScope.Declare("self", selfType)
	}

	for i, p := range fn.Params {
		if shadowed := bodyScope.Declare(p.Name.Value, fnType.Params[i]); shadowed {
			s.addError(diagnostics.ErrShadow, p.Name.Token, "parameter '%s' shadows an outer binding", p.Name.Value)
		}
	}

	prevSelfDepth := s.selfDepth
	if isSelfMethod {
		s.selfDepth++
	}
	checkStatements(fn.Body.Statements, bodyScope, s)
	s.selfDepth = prevSelfDepth

	if fn.ReturnType == nil {
		fnType.Return = bodyScope.DeducedReturn()
	}
	return fnType
}
