// Package emitter given a parsed (and already checked) *ast.Program,
// produces equivalent source in the base language with every annotation,
// interface declaration, type alias and generic parameter clause erased.
//
// The walk and precedence-aware parenthesization use a bytes.Buffer-backed
// printer with its own operator-precedence table, built for this
// language's statement grammar and erasure rules instead of re-emitting
// annotations.
package emitter

import (
	"bytes"

	"github.com/funvibe/typedlua/internal/ast"
)

var operatorPrecedence = map[string]int{
	"or":  1,
	"and": 2,
	"<":   3,
	">":   3,
	"<=":  3,
	">=":  3,
	"==":  3,
	"~=":  3,
	"..":  4,
	"+":   5,
	"-":   5,
	"*":   6,
	"/":   6,
	"%":   6,
}

func precedenceOf(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10
}

// Printer accumulates emitted source text with indent tracking.
type Printer struct {
	buf    bytes.Buffer
	indent int
}

// Emit erases prog's annotations and renders it as plain source text.
func Emit(prog *ast.Program) string {
	p := &Printer{}
	for _, stmt := range prog.Statements {
		p.printStatement(stmt)
	}
	return p.buf.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *Printer) line(s string) {
	p.writeIndent()
	p.buf.WriteString(s)
	p.buf.WriteString("\n")
}
