package checker

import (
	"github.com/funvibe/typedlua/internal/access"
	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/scope"
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

// checkExpect runs check_expect(parent_scope, expected, errors): invoked
// on an assignment's LHS with the already-computed RHS type as `incoming`.
// A narrowing-mode Deferred target widens via Union; anything else is
// checked for plain assignability. It returns the LHS's type after the
// operation, for the assembly step that follows.
func checkExpect(lhs ast.Expression, incoming typeset.Type, sc *scope.Scope, s *Session) typeset.Type {
	switch v := lhs.(type) {
	case *ast.Identifier:
		return checkExpectIdentifier(v, incoming, sc, s)

	case *ast.FieldAccessExpression:
		return checkExpectField(v, incoming, sc, s)

	case *ast.IndexExpression:
		return checkExpectIndex(v, incoming, sc, s)

	default:
		// Not a valid assignment target; fall back to a plain read so the
		// rest of the assignment can still be checked.
		return getType(lhs, sc, s)
	}
}

// narrowingDeferred reports whether t is a Deferred entry still open to
// widening (narrowing mode, used for local-variable inference).
func narrowingDeferred(t typeset.Type) (typeset.Deferred, bool) {
	d, ok := t.(typeset.Deferred)
	if !ok || d.Table == nil {
		return typeset.Deferred{}, false
	}
	if !d.Table.IsNarrowing(d.ID) {
		return typeset.Deferred{}, false
	}
	return d, true
}

func checkExpectIdentifier(id *ast.Identifier, incoming typeset.Type, sc *scope.Scope, s *Session) typeset.Type {
	current, found := sc.Lookup(id.Value)
	if !found {
		s.nameError(sc, id.Token, id.Value)
		sc.Assign(id.Value, incoming)
		return incoming
	}

	if d, ok := narrowingDeferred(current); ok {
		widened := typealgebra.Union(d.Resolve(), incoming)
		d.Table.SetType(d.ID, widened)
		return current
	}

	res := typealgebra.IsAssignable(current, incoming)
	if !res.OK {
		s.addError(diagnostics.ErrAssignability, id.Token, "cannot assign %s to '%s' (%s): %s", incoming, id.Value, current, res.Message())
	}
	return current
}

func checkExpectField(fa *ast.FieldAccessExpression, incoming typeset.Type, sc *scope.Scope, s *Session) typeset.Type {
	targetType := getType(fa.Target, sc, s)

	if d, ok := narrowingDeferred(targetType); ok {
		tbl, _ := d.Resolve().(typeset.Table)
		widened := typealgebra.NarrowField(tbl, fa.Name.Value, incoming)
		d.Table.SetType(d.ID, widened)
		return incoming
	}

	res := access.FieldOf(targetType, fa.Name.Value, sc.Metatables())
	if !res.Found {
		s.addError(diagnostics.ErrNameUndeclared, fa.Name.Token, "no field '%s' on %s", fa.Name.Value, targetType)
		return typeset.Any{}
	}
	ares := typealgebra.IsAssignable(res.Type, incoming)
	if !ares.OK {
		s.addError(diagnostics.ErrAssignability, fa.Name.Token, "cannot assign %s to field '%s' (%s): %s", incoming, fa.Name.Value, res.Type, ares.Message())
	}
	return res.Type
}

func checkExpectIndex(ix *ast.IndexExpression, incoming typeset.Type, sc *scope.Scope, s *Session) typeset.Type {
	targetType := getType(ix.Target, sc, s)
	keyType := getType(ix.Index, sc, s)

	if d, ok := narrowingDeferred(targetType); ok {
		tbl, _ := d.Resolve().(typeset.Table)
		widened := typealgebra.NarrowIndex(tbl, keyType, incoming)
		d.Table.SetType(d.ID, widened)
		return incoming
	}

	res := access.IndexOf(targetType, keyType)
	if !res.Found {
		s.addError(diagnostics.ErrNameUndeclared, ix.Token, "%s is not indexable by %s", targetType, keyType)
		return typeset.Any{}
	}
	ares := typealgebra.IsAssignable(res.Type, incoming)
	if !ares.OK {
		s.addError(diagnostics.ErrAssignability, ix.Token, "cannot assign %s to index [%s] (%s): %s", incoming, keyType, res.Type, ares.Message())
	}
	return res.Type
}
