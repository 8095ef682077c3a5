package emitter

import (
	"fmt"

	"github.com/funvibe/typedlua/internal/ast"
)

func (p *Printer) printStatement(stmt ast.Statement) {
	switch v := stmt.(type) {
	case *ast.LocalDeclaration:
		p.printDeclLike("local", v.Names, v.Values)
	case *ast.GlobalDeclaration:
		p.printDeclLike("global", v.Names, v.Values)
	case *ast.AssignStatement:
		p.writeIndent()
		p.printExprList(v.LHS)
		p.buf.WriteString(" = ")
		p.printExprList(v.RHS)
		p.buf.WriteString("\n")
	case *ast.FunctionStatement:
		kw := "function"
		if v.IsLocal {
			kw = "local function"
		}
		p.writeIndent()
		fmt.Fprintf(&p.buf, "%s %s", kw, v.Name.Value)
		p.printFunctionTail(v.Func)
	case *ast.MethodStatement:
		p.writeIndent()
		p.buf.WriteString("function ")
		p.printExpr(v.Target, 0)
		if v.IsSelfMethod {
			p.buf.WriteString(":")
		} else {
			p.buf.WriteString(".")
		}
		p.buf.WriteString(v.MethodName.Value)
		p.printFunctionTail(v.Func)
	case *ast.ReturnStatement:
		p.writeIndent()
		p.buf.WriteString("return")
		if len(v.Values) > 0 {
			p.buf.WriteString(" ")
			p.printExprList(v.Values)
		}
		p.buf.WriteString("\n")
	case *ast.ExpressionStatement:
		p.writeIndent()
		p.printExpr(v.Call, 0)
		p.buf.WriteString("\n")
	case *ast.BreakStatement:
		p.line("break")
	case *ast.DoStatement:
		p.line("do")
		p.printIndentedBlock(v.Body)
		p.line("end")
	case *ast.IfStatement:
		p.printIfStatement(v)
	case *ast.WhileStatement:
		p.writeIndent()
		p.buf.WriteString("while ")
		p.printExpr(v.Cond, 0)
		p.buf.WriteString(" do\n")
		p.printIndentedBlock(v.Body)
		p.line("end")
	case *ast.RepeatStatement:
		p.line("repeat")
		p.printIndentedBlock(v.Body)
		p.writeIndent()
		p.buf.WriteString("until ")
		p.printExpr(v.Cond, 0)
		p.buf.WriteString("\n")
	case *ast.NumericForStatement:
		p.writeIndent()
		fmt.Fprintf(&p.buf, "for %s = ", v.Var.Value)
		p.printExpr(v.Start, 0)
		p.buf.WriteString(", ")
		p.printExpr(v.Stop, 0)
		if v.Step != nil {
			p.buf.WriteString(", ")
			p.printExpr(v.Step, 0)
		}
		p.buf.WriteString(" do\n")
		p.printIndentedBlock(v.Body)
		p.line("end")
	case *ast.GenericForStatement:
		p.writeIndent()
		p.buf.WriteString("for ")
		for i, n := range v.Names {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(n.Value)
		}
		p.buf.WriteString(" in ")
		p.printExprList(v.Exprs)
		p.buf.WriteString(" do\n")
		p.printIndentedBlock(v.Body)
		p.line("end")
	case *ast.InterfaceDeclaration, *ast.TypeAliasDeclaration:
		// Erased entirely - these exist only for the checker.
	case *ast.BlockStatement:
		for _, s := range v.Statements {
			p.printStatement(s)
		}
	}
}

// printDeclLike renders a local/global declaration with its type
// annotations erased - only the names and values survive.
func (p *Printer) printDeclLike(kw string, names []*ast.Identifier, values []ast.Expression) {
	p.writeIndent()
	p.buf.WriteString(kw)
	p.buf.WriteString(" ")
	for i, n := range names {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(n.Value)
	}
	if len(values) > 0 {
		p.buf.WriteString(" = ")
		p.printExprList(values)
	}
	p.buf.WriteString("\n")
}

func (p *Printer) printFunctionTail(fn *ast.FunctionLiteral) {
	p.buf.WriteString("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(param.Name.Value)
	}
	if fn.Variadic {
		if len(fn.Params) > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString("...")
	}
	p.buf.WriteString(")\n")
	p.printIndentedBlock(fn.Body)
	p.line("end")
}

func (p *Printer) printIndentedBlock(b *ast.BlockStatement) {
	p.indent++
	for _, s := range b.Statements {
		p.printStatement(s)
	}
	p.indent--
}

func (p *Printer) printIfStatement(v *ast.IfStatement) {
	p.writeIndent()
	p.buf.WriteString("if ")
	p.printExpr(v.Cond, 0)
	p.buf.WriteString(" then\n")
	p.printIndentedBlock(v.Then)
	for _, ei := range v.ElseIfs {
		p.writeIndent()
		p.buf.WriteString("elseif ")
		p.printExpr(ei.Cond, 0)
		p.buf.WriteString(" then\n")
		p.printIndentedBlock(ei.Body)
	}
	if v.Else != nil {
		p.line("else")
		p.printIndentedBlock(v.Else)
	}
	p.line("end")
}

func (p *Printer) printExprList(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.printExpr(e, 0)
	}
}
