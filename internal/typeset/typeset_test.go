package typeset_test

import (
	"testing"

	"github.com/funvibe/typedlua/internal/typeset"
)

func TestEqual_LiteralNumberDistinguishesIntFromFloat(t *testing.T) {
	intLit := typeset.LiteralNumber(typeset.IntRep(0))
	floatLit := typeset.LiteralNumber(typeset.FloatRep(0))
	if typeset.Equal(intLit, floatLit) {
		t.Fatalf("integer 0 and float 0.0 should not be Equal")
	}
	if !typeset.Equal(intLit, typeset.LiteralNumber(typeset.IntRep(0))) {
		t.Fatalf("two integer 0 literals should be Equal")
	}
}

func TestEqual_SumIsOrderIndependent(t *testing.T) {
	a := typeset.Sum{Members: []typeset.Type{
		typeset.Primitive{Kind: typeset.KindNumber},
		typeset.Primitive{Kind: typeset.KindString},
	}}
	b := typeset.Sum{Members: []typeset.Type{
		typeset.Primitive{Kind: typeset.KindString},
		typeset.Primitive{Kind: typeset.KindNumber},
	}}
	if !typeset.Equal(a, b) {
		t.Fatalf("Sum equality should ignore member order")
	}
}

func TestEqual_NominalIsByDeferredIDNotByBound(t *testing.T) {
	table := typeset.NewDeferredTable()
	idA, nomA := table.NewGenericParam("T", typeset.Any{})
	idB, nomB := table.NewGenericParam("T", typeset.Any{})
	if idA == idB {
		t.Fatalf("two separate NewGenericParam calls must get distinct ids")
	}
	if typeset.Equal(nomA, nomB) {
		t.Fatalf("Nominals over distinct ids with identical bounds must not be Equal")
	}
	if !typeset.Equal(nomA, nomA) {
		t.Fatalf("a Nominal must Equal itself")
	}
}

func TestEqual_TableFieldOrderIndependent(t *testing.T) {
	a := typeset.Table{Fields: []typeset.TableField{
		{Name: "x", Val: typeset.Primitive{Kind: typeset.KindNumber}},
		{Name: "y", Val: typeset.Primitive{Kind: typeset.KindString}},
	}}
	b := typeset.Table{Fields: []typeset.TableField{
		{Name: "y", Val: typeset.Primitive{Kind: typeset.KindString}},
		{Name: "x", Val: typeset.Primitive{Kind: typeset.KindNumber}},
	}}
	if !typeset.Equal(a, b) {
		t.Fatalf("Table equality should ignore field order")
	}
}

func TestDeferredTable_SetTypeThenResolve(t *testing.T) {
	table := typeset.NewDeferredTable()
	id := table.Reserve("T", typeset.Fixed)
	d := table.Deferred(id)
	if !typeset.Equal(d.Resolve(), typeset.Void{}) {
		t.Fatalf("a reserved-but-not-set entry should resolve to Void")
	}
	table.SetType(id, typeset.Primitive{Kind: typeset.KindNumber})
	if !typeset.Equal(d.Resolve(), typeset.Primitive{Kind: typeset.KindNumber}) {
		t.Fatalf("Resolve should observe SetType's update through the shared table")
	}
}

func TestDeferredTable_IsNarrowing(t *testing.T) {
	table := typeset.NewDeferredTable()
	narrowing := table.New("x", typeset.Primitive{Kind: typeset.KindNil}, typeset.Narrowing)
	fixed := table.New("T", typeset.Any{}, typeset.Fixed)
	if !table.IsNarrowing(narrowing) {
		t.Fatalf("entry created with Narrowing mode should report IsNarrowing")
	}
	if table.IsNarrowing(fixed) {
		t.Fatalf("entry created with Fixed mode should not report IsNarrowing")
	}
}

func TestDeferredTable_OutOfRangeIDResolvesToAnyNotPanic(t *testing.T) {
	table := typeset.NewDeferredTable()
	if !typeset.Equal(table.TypeOf(typeset.ID(99)), typeset.Any{}) {
		t.Fatalf("TypeOf on an out-of-range id should return Any, not panic")
	}
}

func TestTable_FieldIndex(t *testing.T) {
	tbl := typeset.Table{Fields: []typeset.TableField{
		{Name: "balance", Val: typeset.Primitive{Kind: typeset.KindNumber}},
	}}
	if i := tbl.FieldIndex("balance"); i != 0 {
		t.Fatalf("FieldIndex(%q) = %d, want 0", "balance", i)
	}
	if i := tbl.FieldIndex("missing"); i != -1 {
		t.Fatalf("FieldIndex(%q) = %d, want -1", "missing", i)
	}
}

func TestLiteral_UnderlyingMatchesPrimitiveKind(t *testing.T) {
	lit := typeset.LiteralString("ok")
	if lit.Underlying() != (typeset.Primitive{Kind: typeset.KindString}) {
		t.Fatalf("LiteralString's Underlying should be the String primitive")
	}
}

func TestFunction_StringRendersVariadicAndGenerics(t *testing.T) {
	fn := typeset.Function{
		GenericParams: []typeset.GenericParam{{Name: "T", Bound: typeset.Any{}}},
		Params:        []typeset.Type{typeset.Primitive{Kind: typeset.KindNumber}, typeset.Primitive{Kind: typeset.KindString}},
		Variadic:      true,
		Return:        typeset.Primitive{Kind: typeset.KindBoolean},
	}
	got := fn.String()
	want := "<T>(number, ...string): boolean"
	if got != want {
		t.Fatalf("Function.String() = %q, want %q", got, want)
	}
}
