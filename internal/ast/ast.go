// Package ast defines the parsed tree the checker (internal/checker) walks.
//
// Nodes here carry no Accept/Visitor machinery: internal/checker
// dispatches on these nodes with a plain type-switch rather than through
// Accept - the capability set matters, not the mechanism - and switches
// on concrete node types.
package ast

import "github.com/funvibe/typedlua/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that appears in a block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value (or a tuple of values).
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed source file.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// BlockStatement is an ordered sequence of statements forming one lexical
// block (a function body, loop body, if/else arm, do-block).
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()        {}
func (b *BlockStatement) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BlockStatement) GetToken() token.Token { return b.Token }

// Identifier is a bare name reference, used both as an expression and as
// the target of declarations.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// SelfExpression is the `self` reference inside a method body. It is kept
// distinct from a plain Identifier so the checker can report
// diagnostics.ErrSelfOutside instead of an ordinary name error when it
// appears outside one.
type SelfExpression struct {
	Token token.Token
}

func (s *SelfExpression) expressionNode()      {}
func (s *SelfExpression) TokenLiteral() string { return s.Token.Lexeme }
func (s *SelfExpression) GetToken() token.Token { return s.Token }

// VarargsExpression is the `...` reference, valid only where the enclosing
// scope's dots-mode is Own.
type VarargsExpression struct {
	Token token.Token
}

func (v *VarargsExpression) expressionNode()       {}
func (v *VarargsExpression) TokenLiteral() string   { return v.Token.Lexeme }
func (v *VarargsExpression) GetToken() token.Token  { return v.Token }

// NilLiteral is the literal `nil`.
type NilLiteral struct{ Token token.Token }

func (n *NilLiteral) expressionNode()       {}
func (n *NilLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NilLiteral) GetToken() token.Token { return n.Token }

// BooleanLiteral is the literal `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// NumberLiteral is a numeric literal, integer or floating - the
// NumberRep distinction is carried from the lexeme all the way to the
// checker's Literal type.
type NumberLiteral struct {
	Token    token.Token
	IsFloat  bool
	IntVal   int64
	FloatVal float64
}

func (n *NumberLiteral) expressionNode()       {}
func (n *NumberLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NumberLiteral) GetToken() token.Token { return n.Token }

// StringLiteral is a string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()       {}
func (s *StringLiteral) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StringLiteral) GetToken() token.Token { return s.Token }
