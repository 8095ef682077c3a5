package ast

import "github.com/funvibe/typedlua/internal/token"

// LocalDeclaration is `local x, y : T = v1, v2` (narrowing local
// inference kicks in for every name whose Annotations[i] is nil).
type LocalDeclaration struct {
	Token       token.Token
	Names       []*Identifier
	Annotations []Type // parallel to Names; entry is nil when unannotated
	Values      []Expression
}

func (l *LocalDeclaration) statementNode()       {}
func (l *LocalDeclaration) TokenLiteral() string  { return l.Token.Lexeme }
func (l *LocalDeclaration) GetToken() token.Token { return l.Token }

// GlobalDeclaration is `global x, y : T = v1, v2` - like LocalDeclaration
// but binds through Scope.DeclareGlobal (add_global_name).
type GlobalDeclaration struct {
	Token       token.Token
	Names       []*Identifier
	Annotations []Type
	Values      []Expression
}

func (g *GlobalDeclaration) statementNode()       {}
func (g *GlobalDeclaration) TokenLiteral() string  { return g.Token.Lexeme }
func (g *GlobalDeclaration) GetToken() token.Token { return g.Token }

// AssignStatement is `lhs1, lhs2 = rhs1, rhs2`, checked by the
// assignment algorithm.
type AssignStatement struct {
	Token token.Token
	LHS   []Expression
	RHS   []Expression
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string  { return a.Token.Lexeme }
func (a *AssignStatement) GetToken() token.Token { return a.Token }

// FunctionStatement is `[local] function name(params) ... end`, a plain
// (non-method) named function declaration. IsLocal selects whether Name is
// declared in the enclosing scope or at the root.
type FunctionStatement struct {
	Token   token.Token
	Name    *Identifier
	IsLocal bool
	Func    *FunctionLiteral
}

func (f *FunctionStatement) statementNode()       {}
func (f *FunctionStatement) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionStatement) GetToken() token.Token { return f.Token }

// MethodStatement is `function target.a.b:m(params) ... end` (IsSelfMethod
// true, colon syntax, binds `self` in the body) or `function
// target.a.b.m(params) ... end` (IsSelfMethod false, dot syntax, no
// implicit self). Target is the chain up to but not including the method
// name itself.
type MethodStatement struct {
	Token        token.Token
	Target       Expression
	MethodName   *Identifier
	IsSelfMethod bool
	Func         *FunctionLiteral
}

func (m *MethodStatement) statementNode()       {}
func (m *MethodStatement) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MethodStatement) GetToken() token.Token { return m.Token }

// ReturnStatement is `return v1, v2`.
type ReturnStatement struct {
	Token  token.Token
	Values []Expression
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string  { return r.Token.Lexeme }
func (r *ReturnStatement) GetToken() token.Token { return r.Token }

// ExpressionStatement is a call expression used for its side effects.
type ExpressionStatement struct {
	Token token.Token
	Call  Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ExpressionStatement) GetToken() token.Token { return e.Token }

// BreakStatement is `break`.
type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BreakStatement) GetToken() token.Token { return b.Token }

// DoStatement is a bare `do ... end` scoping block.
type DoStatement struct {
	Token token.Token
	Body  *BlockStatement
}

func (d *DoStatement) statementNode()       {}
func (d *DoStatement) TokenLiteral() string  { return d.Token.Lexeme }
func (d *DoStatement) GetToken() token.Token { return d.Token }

// ElseIfClause is one `elseif cond then block` arm of an IfStatement.
type ElseIfClause struct {
	Token token.Token
	Cond  Expression
	Body  *BlockStatement
}

// IfStatement is `if cond then block [elseif ...]* [else block] end`. An
// arm whose condition is a bare name or an `x ~= nil` comparison narrows
// that name via Difference, applied by the checker when entering the arm;
// other condition shapes narrow nothing.
type IfStatement struct {
	Token    token.Token
	Cond     Expression
	Then     *BlockStatement
	ElseIfs  []*ElseIfClause
	Else     *BlockStatement // nil if absent
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string  { return i.Token.Lexeme }
func (i *IfStatement) GetToken() token.Token { return i.Token }

// WhileStatement is `while cond do block end`.
type WhileStatement struct {
	Token token.Token
	Cond  Expression
	Body  *BlockStatement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string  { return w.Token.Lexeme }
func (w *WhileStatement) GetToken() token.Token { return w.Token }

// RepeatStatement is `repeat block until cond` - the condition is checked
// in the body's own scope, since Lua repeat-until lets the condition see
// locals declared in the body.
type RepeatStatement struct {
	Token token.Token
	Body  *BlockStatement
	Cond  Expression
}

func (r *RepeatStatement) statementNode()       {}
func (r *RepeatStatement) TokenLiteral() string  { return r.Token.Lexeme }
func (r *RepeatStatement) GetToken() token.Token { return r.Token }

// NumericForStatement is `for name = start, stop[, step] do block end`.
type NumericForStatement struct {
	Token token.Token
	Var   *Identifier
	Start Expression
	Stop  Expression
	Step  Expression // nil if absent
	Body  *BlockStatement
}

func (f *NumericForStatement) statementNode()       {}
func (f *NumericForStatement) TokenLiteral() string  { return f.Token.Lexeme }
func (f *NumericForStatement) GetToken() token.Token { return f.Token }

// GenericForStatement is `for n1, n2 in expr1, expr2 do block end`
// (iterator-protocol for loop).
type GenericForStatement struct {
	Token token.Token
	Names []*Identifier
	Exprs []Expression
	Body  *BlockStatement
}

func (f *GenericForStatement) statementNode()       {}
func (f *GenericForStatement) TokenLiteral() string  { return f.Token.Lexeme }
func (f *GenericForStatement) GetToken() token.Token { return f.Token }

// InterfaceDeclaration is `interface Name<T, ...> : { ... }` - declares a
// fixed (non-narrowing) Deferred Table entry, following a recursive type
// discipline.
type InterfaceDeclaration struct {
	Token         token.Token
	Name          *Identifier
	GenericParams []*GenericParamClause
	Body          *TableType
}

func (i *InterfaceDeclaration) statementNode()       {}
func (i *InterfaceDeclaration) TokenLiteral() string  { return i.Token.Lexeme }
func (i *InterfaceDeclaration) GetToken() token.Token { return i.Token }

// TypeAliasDeclaration is `type Name<T, ...> = TypeExpr`.
type TypeAliasDeclaration struct {
	Token         token.Token
	Name          *Identifier
	GenericParams []*GenericParamClause
	Value         Type
}

func (t *TypeAliasDeclaration) statementNode()       {}
func (t *TypeAliasDeclaration) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TypeAliasDeclaration) GetToken() token.Token { return t.Token }
