package ast

import "github.com/funvibe/typedlua/internal/token"

// BinaryExpression is a two-operand operator expression (or/and,
// comparisons, equality, bitwise/arithmetic, concat).
type BinaryExpression struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpression) expressionNode()       {}
func (b *BinaryExpression) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BinaryExpression) GetToken() token.Token { return b.Token }

// UnaryExpression is a one-operand prefix operator (`not`, `#`, `-`, `~`).
type UnaryExpression struct {
	Token   token.Token
	Op      string
	Operand Expression
}

func (u *UnaryExpression) expressionNode()       {}
func (u *UnaryExpression) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnaryExpression) GetToken() token.Token { return u.Token }

// FieldAccessExpression is `target.name` - resolved via field_of.
type FieldAccessExpression struct {
	Token  token.Token
	Target Expression
	Name   *Identifier
}

func (f *FieldAccessExpression) expressionNode()       {}
func (f *FieldAccessExpression) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FieldAccessExpression) GetToken() token.Token { return f.Token }

// IndexExpression is `target[index]` - resolved via index_of.
type IndexExpression struct {
	Token  token.Token
	Target Expression
	Index  Expression
}

func (ix *IndexExpression) expressionNode()       {}
func (ix *IndexExpression) TokenLiteral() string  { return ix.Token.Lexeme }
func (ix *IndexExpression) GetToken() token.Token { return ix.Token }

// CallExpression is `callee(args...)`. A call to the bare identifier
// `require` is recognized by the checker (not the parser) and produces a
// typeset.Require marker around the argument's type.
type CallExpression struct {
	Token  token.Token
	Callee Expression
	Args   []Expression
}

func (c *CallExpression) expressionNode()       {}
func (c *CallExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *CallExpression) GetToken() token.Token { return c.Token }

// MethodCallExpression is `receiver:method(args...)` - a self-call, which
// prepends the receiver's type to the argument list before
// resolve_overload.
type MethodCallExpression struct {
	Token    token.Token
	Receiver Expression
	Method   *Identifier
	Args     []Expression
}

func (m *MethodCallExpression) expressionNode()       {}
func (m *MethodCallExpression) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MethodCallExpression) GetToken() token.Token { return m.Token }

// Param is one parameter of a FunctionLiteral: a name plus an optional
// type annotation (absent means inferred/Any, per the checker's handling of
// untyped parameters).
type Param struct {
	Name       *Identifier
	Annotation Type
}

// FunctionLiteral is an anonymous (or named-via-statement) function value:
// `function(params) ... end`, optionally generic and optionally annotated
// with a return type.
type FunctionLiteral struct {
	Token         token.Token
	GenericParams []*GenericParamClause
	Params        []*Param
	Variadic      bool
	VariadicType  Type // type of `...` inside the body, when Variadic
	ReturnType    Type // nil means the return type is deduced
	Body          *BlockStatement
}

func (f *FunctionLiteral) expressionNode()       {}
func (f *FunctionLiteral) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionLiteral) GetToken() token.Token { return f.Token }

// TableField is one entry of a TableConstructor: either `name = value`
// (Name set), `[key] = value` (Key set), or a bare positional value (both
// nil - an implicit integer-indexed entry).
type TableField struct {
	Name  *Identifier
	Key   Expression
	Value Expression
}

// TableConstructor is a `{ ... }` table expression.
type TableConstructor struct {
	Token  token.Token
	Fields []*TableField
}

func (t *TableConstructor) expressionNode()       {}
func (t *TableConstructor) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TableConstructor) GetToken() token.Token { return t.Token }
