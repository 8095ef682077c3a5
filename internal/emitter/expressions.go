package emitter

import (
	"fmt"
	"strconv"

	"github.com/funvibe/typedlua/internal/ast"
)

// printExpr renders expr, parenthesizing a nested BinaryExpression whose
// operator binds looser than parentPrec, per the precedence table above.
func (p *Printer) printExpr(expr ast.Expression, parentPrec int) {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		prec := precedenceOf(e.Op)
		needParens := prec < parentPrec
		if needParens {
			p.buf.WriteString("(")
		}
		p.printExpr(e.Left, prec)
		fmt.Fprintf(&p.buf, " %s ", e.Op)
		p.printExpr(e.Right, prec+1)
		if needParens {
			p.buf.WriteString(")")
		}
	case *ast.UnaryExpression:
		p.buf.WriteString(e.Op)
		if e.Op == "not" {
			p.buf.WriteString(" ")
		}
		p.printExpr(e.Operand, 9)
	case *ast.FieldAccessExpression:
		p.printExpr(e.Target, 10)
		p.buf.WriteString(".")
		p.buf.WriteString(e.Name.Value)
	case *ast.IndexExpression:
		p.printExpr(e.Target, 10)
		p.buf.WriteString("[")
		p.printExpr(e.Index, 0)
		p.buf.WriteString("]")
	case *ast.CallExpression:
		p.printExpr(e.Callee, 10)
		p.buf.WriteString("(")
		p.printExprList(e.Args)
		p.buf.WriteString(")")
	case *ast.MethodCallExpression:
		p.printExpr(e.Receiver, 10)
		p.buf.WriteString(":")
		p.buf.WriteString(e.Method.Value)
		p.buf.WriteString("(")
		p.printExprList(e.Args)
		p.buf.WriteString(")")
	case *ast.FunctionLiteral:
		p.buf.WriteString("function")
		p.printFunctionTail(e)
	case *ast.TableConstructor:
		p.printTableConstructor(e)
	case *ast.Identifier:
		p.buf.WriteString(e.Value)
	case *ast.SelfExpression:
		p.buf.WriteString("self")
	case *ast.VarargsExpression:
		p.buf.WriteString("...")
	case *ast.NilLiteral:
		p.buf.WriteString("nil")
	case *ast.BooleanLiteral:
		if e.Value {
			p.buf.WriteString("true")
		} else {
			p.buf.WriteString("false")
		}
	case *ast.NumberLiteral:
		if e.IsFloat {
			p.buf.WriteString(strconv.FormatFloat(e.FloatVal, 'g', -1, 64))
		} else {
			p.buf.WriteString(strconv.FormatInt(e.IntVal, 10))
		}
	case *ast.StringLiteral:
		p.buf.WriteString(strconv.Quote(e.Value))
	}
}

func (p *Printer) printTableConstructor(t *ast.TableConstructor) {
	p.buf.WriteString("{")
	for i, f := range t.Fields {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		switch {
		case f.Name != nil:
			p.buf.WriteString(f.Name.Value)
			p.buf.WriteString(" = ")
			p.printExpr(f.Value, 0)
		case f.Key != nil:
			p.buf.WriteString("[")
			p.printExpr(f.Key, 0)
			p.buf.WriteString("] = ")
			p.printExpr(f.Value, 0)
		default:
			p.printExpr(f.Value, 0)
		}
	}
	p.buf.WriteString("}")
}
