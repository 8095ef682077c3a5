// Package typeset is the type algebra's data model: the tagged Type
// variants, NumberRep, and the Deferred Type Table that backs forward
// references, narrowing locals and generic parameter binding.
//
// This package intentionally contains no assignability or union/intersection
// logic - the union/intersection/difference operators are mutually
// recursive with the is_assignable judgment (union distributes using
// "A ← B" to decide subsumption), so both live together in
// internal/typealgebra. This package only knows how to represent and
// structurally compare types.
package typeset

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the sealed interface implemented by every type variant this
// package defines. isType is unexported so no package outside typeset can
// add a new variant - the switch statements throughout the checker rely on
// this being a closed set, the same discipline ast.Node enforces with its
// unexported statementNode()/expressionNode() marker methods.
type Type interface {
	String() string
	isType()
}

// PrimitiveKind enumerates the base runtime kinds.
type PrimitiveKind int

const (
	KindNil PrimitiveKind = iota
	KindNumber
	KindString
	KindBoolean
	KindThread
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindThread:
		return "thread"
	default:
		return "?"
	}
}

// Void is the bottom type: nothing but itself is assignable to it.
type Void struct{}

func (Void) isType()        {}
func (Void) String() string { return "void" }

// Any is the top type: everything is assignable to and from it.
type Any struct{}

func (Any) isType()        {}
func (Any) String() string { return "any" }

// Primitive is one of the base runtime kinds.
type Primitive struct {
	Kind PrimitiveKind
}

func (Primitive) isType()          {}
func (p Primitive) String() string { return p.Kind.String() }

// NumberRep is a tagged representation of a Lua number literal: either a
// 64-bit signed integer or an IEEE-754 double. Equality is structural and
// tag-sensitive, so the integer 0 and the float 0.0 are distinct values.
type NumberRep struct {
	IsFloat  bool
	IntVal   int64
	FloatVal float64
}

// IntRep builds an integer NumberRep.
func IntRep(v int64) NumberRep { return NumberRep{IntVal: v} }

// FloatRep builds a floating-point NumberRep.
func FloatRep(v float64) NumberRep { return NumberRep{IsFloat: true, FloatVal: v} }

// Equal reports whether n and o have the same tag and payload.
func (n NumberRep) Equal(o NumberRep) bool {
	if n.IsFloat != o.IsFloat {
		return false
	}
	if n.IsFloat {
		return n.FloatVal == o.FloatVal
	}
	return n.IntVal == o.IntVal
}

func (n NumberRep) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.FloatVal, 'g', -1, 64)
	}
	return strconv.FormatInt(n.IntVal, 10)
}

// Literal is a singleton type: a Primitive tag plus the exact value. It is
// always assignable to its underlying Primitive.
type Literal struct {
	Prim PrimitiveKind
	Bool bool
	Num  NumberRep
	Str  string
}

func LiteralBool(v bool) Literal { return Literal{Prim: KindBoolean, Bool: v} }
func LiteralNumber(v NumberRep) Literal {
	return Literal{Prim: KindNumber, Num: v}
}
func LiteralString(v string) Literal { return Literal{Prim: KindString, Str: v} }

func (Literal) isType() {}
func (l Literal) String() string {
	switch l.Prim {
	case KindBoolean:
		return strconv.FormatBool(l.Bool)
	case KindNumber:
		return l.Num.String()
	case KindString:
		return strconv.Quote(l.Str)
	default:
		return "nil"
	}
}

// Underlying returns the Primitive this Literal's value belongs to.
func (l Literal) Underlying() Primitive { return Primitive{Kind: l.Prim} }

// GenericParam is one entry of a Function's generic parameter list:
// ordered [name, bound].
type GenericParam struct {
	Name  string
	Bound Type
}

// Function is a callable type. GenericParams and NominalIDs
// have the same length; NominalIDs[i] is the Deferred Table id whose Type
// is GenericParams[i].Bound, and occurrences of that generic parameter in
// Params/Return are represented as Nominal{Ref: Deferred{ID: NominalIDs[i]}}.
type Function struct {
	GenericParams []GenericParam
	NominalIDs    []ID
	Params        []Type
	Return        Type
	Variadic      bool
}

func (Function) isType() {}
func (f Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	if f.Variadic && len(params) > 0 {
		params[len(params)-1] = "..." + params[len(params)-1]
	}
	prefix := ""
	if len(f.GenericParams) > 0 {
		names := make([]string, len(f.GenericParams))
		for i, g := range f.GenericParams {
			names[i] = g.Name
		}
		prefix = "<" + strings.Join(names, ", ") + ">"
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("%s(%s): %s", prefix, strings.Join(params, ", "), ret)
}

// Tuple is the result type of a multi-value expression.
type Tuple struct {
	Elems    []Type
	Variadic bool
}

func (Tuple) isType() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	if t.Variadic && len(parts) > 0 {
		parts[len(parts)-1] = parts[len(parts)-1] + "..."
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Sum is a union type. By construction (see typealgebra.Union) it never
// directly contains another Sum, and no member is assignable to another.
type Sum struct {
	Members []Type
}

func (Sum) isType() {}
func (s Sum) String() string {
	parts := make([]string, len(s.Members))
	for i, m := range s.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// Product is an intersection type, used to model overloaded functions.
// A call is valid iff some component accepts it.
type Product struct {
	Members []Type
}

func (Product) isType() {}
func (p Product) String() string {
	parts := make([]string, len(p.Members))
	for i, m := range p.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}

// TableIndex is one entry of a Table's keyed-map side: any key assignable
// to Key maps to a value assignable to Val.
type TableIndex struct {
	Key Type
	Val Type
}

// TableField is one entry of a Table's structural-record side.
type TableField struct {
	Name string
	Val  Type
}

// Table is a structural record plus a keyed map. Fields take
// precedence over string indexes during field_of resolution. Fields has no
// duplicate names (checked at construction sites in the checker, not here).
type Table struct {
	Indexes []TableIndex
	Fields  []TableField
}

func (Table) isType() {}
func (t Table) String() string {
	parts := make([]string, 0, len(t.Fields)+len(t.Indexes))
	for _, f := range t.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Name, f.Val.String()))
	}
	for _, ix := range t.Indexes {
		parts = append(parts, fmt.Sprintf("[%s]: %s", ix.Key.String(), ix.Val.String()))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// FieldIndex returns the index of the field named name, or -1.
func (t Table) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Deferred is a named placeholder that resolves lazily through a
// DeferredTable: forward references, narrowing locals and generic-parameter
// marks all go through this variant.
type Deferred struct {
	Table *DeferredTable
	ID    ID
	Args  []Type
}

func (Deferred) isType() {}
func (d Deferred) String() string {
	name := "<deferred>"
	if d.Table != nil {
		if e, ok := d.Table.entry(d.ID); ok {
			name = e.Name
		}
	}
	if len(d.Args) == 0 {
		return name
	}
	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = a.String()
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

// Resolve follows this Deferred into the table and returns the entry's
// current Type. Returns Any if the table pointer is nil (defensive: should
// never happen for a well-formed Deferred).
func (d Deferred) Resolve() Type {
	if d.Table == nil {
		return Any{}
	}
	return d.Table.TypeOf(d.ID)
}

// Nominal marks an occurrence of a generic parameter. Equality is by
// Deferred id, never by structure: two Nominals referencing different ids
// are distinct even when their bounds are identical.
type Nominal struct {
	Ref Deferred
}

func (Nominal) isType() {}
func (n Nominal) String() string { return n.Ref.String() }

// Bound returns the current bound of this Nominal's generic parameter.
func (n Nominal) Bound() Type { return n.Ref.Resolve() }

// Require is a "compute this at resolve time from a module name" marker
// produced by a require(...) call site.
type Require struct {
	Inner Type
}

func (Require) isType()          {}
func (r Require) String() string { return fmt.Sprintf("require(%s)", r.Inner.String()) }
