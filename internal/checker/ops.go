package checker

import (
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/token"
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

var numberType = typeset.Primitive{Kind: typeset.KindNumber}
var stringType = typeset.Primitive{Kind: typeset.KindString}
var booleanType = typeset.Primitive{Kind: typeset.KindBoolean}
var falseLit = typeset.LiteralBool(false)

// checkBinary types a binary operator application per a per-operator
// constraint table.
func checkBinary(op string, at token.Token, left, right typeset.Type, s *Session) typeset.Type {
	switch op {
	case "or":
		return typealgebra.Union(typealgebra.Difference(left, falseLit), right)

	case "and":
		return typealgebra.Union(falseLit, right)

	case "<", ">", "<=", ">=":
		numOK := typealgebra.IsAssignable(numberType, left).OK && typealgebra.IsAssignable(numberType, right).OK
		strOK := typealgebra.IsAssignable(stringType, left).OK && typealgebra.IsAssignable(stringType, right).OK
		if !numOK && !strOK {
			s.addError(diagnostics.ErrAssignability, at, "operator '%s' needs both operands to be Number or both String, got %s and %s", op, left, right)
		}
		return booleanType

	case "==", "~=":
		if !typealgebra.IsAssignable(left, right).OK && !typealgebra.IsAssignable(right, left).OK {
			s.addError(diagnostics.ErrAssignability, at, "operator '%s' compares unrelated types %s and %s", op, left, right)
		}
		return booleanType

	case "..":
		res1 := typealgebra.IsAssignable(stringType, left)
		res2 := typealgebra.IsAssignable(stringType, right)
		if !res1.OK {
			s.addError(diagnostics.ErrAssignability, at, "cannot concatenate %s: %s", left, res1.Message())
		}
		if !res2.OK {
			s.addError(diagnostics.ErrAssignability, at, "cannot concatenate %s: %s", right, res2.Message())
		}
		return stringType

	default: // +, -, *, /, %, &, |, ~, <<, >>
		res1 := typealgebra.IsAssignable(numberType, left)
		res2 := typealgebra.IsAssignable(numberType, right)
		if !res1.OK {
			s.addError(diagnostics.ErrAssignability, at, "operator '%s' needs a Number: %s", op, res1.Message())
		}
		if !res2.OK {
			s.addError(diagnostics.ErrAssignability, at, "operator '%s' needs a Number: %s", op, res2.Message())
		}
		return numberType
	}
}

// checkUnary types a unary operator application.
func checkUnary(op string, at token.Token, operand typeset.Type, s *Session) typeset.Type {
	switch op {
	case "not":
		return booleanType

	case "#":
		lenOperand := typealgebra.Union(stringType, typeset.Table{Indexes: []typeset.TableIndex{{Key: numberType, Val: typeset.Any{}}}})
		if res := typealgebra.IsAssignable(lenOperand, operand); !res.OK {
			s.addError(diagnostics.ErrAssignability, at, "operator '#' needs a String or Table: %s", res.Message())
		}
		return numberType

	default: // -, ~
		if res := typealgebra.IsAssignable(numberType, operand); !res.OK {
			s.addError(diagnostics.ErrAssignability, at, "operator '%s' needs a Number: %s", op, res.Message())
		}
		return numberType
	}
}
