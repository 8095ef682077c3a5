package ast

import "github.com/funvibe/typedlua/internal/token"

// Type is a type-annotation node: the syntax the parser produces for a
// `: T` clause, a `type` declaration's right-hand side, or an `interface`
// body. It is distinct from typeset.Type, which is the checker's resolved
// semantic representation - get_type(scope) on one of these nodes is what
// produces a typeset.Type.
type Type interface {
	Node
	typeNode()
}

// GenericParamClause is one `<Name : Bound>` entry of a generic parameter
// list on a function literal, interface, or type alias.
type GenericParamClause struct {
	Name  *Identifier
	Bound Type // nil means bound is Any
}

// NamedType is a bare name reference: a basic type name (`number`,
// `string`, ...), a type alias, an interface name, or a generic
// instantiation when Args is non-empty (`List<T>`).
type NamedType struct {
	Token token.Token
	Name  *Identifier
	Args  []Type
}

func (n *NamedType) typeNode()          {}
func (n *NamedType) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NamedType) GetToken() token.Token { return n.Token }

// LiteralType is a singleton type annotation spelled as its own value:
// `3`, `"ok"`, `true`, `nil`.
type LiteralType struct {
	Token    token.Token
	IsNil    bool
	Bool     bool
	IsBool   bool
	IsFloat  bool
	IsNumber bool
	IntVal   int64
	FloatVal float64
	IsString bool
	Str      string
}

func (l *LiteralType) typeNode()          {}
func (l *LiteralType) TokenLiteral() string  { return l.Token.Lexeme }
func (l *LiteralType) GetToken() token.Token { return l.Token }

// FunctionType is `<T...>(p1: T1, ...): R` or `(...T): R` for a variadic
// tail parameter.
type FunctionType struct {
	Token         token.Token
	GenericParams []*GenericParamClause
	Params        []Type
	Variadic      bool
	ReturnType    Type // nil means void
}

func (f *FunctionType) typeNode()          {}
func (f *FunctionType) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionType) GetToken() token.Token { return f.Token }

// TupleType is `(T1, T2, ...)`, optionally variadic in its tail.
type TupleType struct {
	Token    token.Token
	Elems    []Type
	Variadic bool
}

func (t *TupleType) typeNode()          {}
func (t *TupleType) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TupleType) GetToken() token.Token { return t.Token }

// SumType is `T1 | T2 | ...`.
type SumType struct {
	Token   token.Token
	Members []Type
}

func (s *SumType) typeNode()          {}
func (s *SumType) TokenLiteral() string  { return s.Token.Lexeme }
func (s *SumType) GetToken() token.Token { return s.Token }

// TableTypeField is one `name: T` entry of a TableType's record side.
type TableTypeField struct {
	Name  *Identifier
	Value Type
}

// TableTypeIndex is one `[K]: V` entry of a TableType's keyed-map side.
type TableTypeIndex struct {
	Key   Type
	Value Type
}

// TableType is `{ name: T; [K]: V; ... }` - a structural record plus keyed
// map type annotation, matching typeset's Table variant.
type TableType struct {
	Token   token.Token
	Fields  []*TableTypeField
	Indexes []*TableTypeIndex
}

func (t *TableType) typeNode()          {}
func (t *TableType) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TableType) GetToken() token.Token { return t.Token }
