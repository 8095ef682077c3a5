package typealgebra_test

import (
	"testing"

	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

var (
	numberT  = typeset.Primitive{Kind: typeset.KindNumber}
	stringT  = typeset.Primitive{Kind: typeset.KindString}
	booleanT = typeset.Primitive{Kind: typeset.KindBoolean}
	nilT     = typeset.Primitive{Kind: typeset.KindNil}
)

func TestUnion_DistinctPrimitivesProduceTwoMemberSum(t *testing.T) {
	got := typealgebra.Union(numberT, stringT)
	sum, ok := got.(typeset.Sum)
	if !ok || len(sum.Members) != 2 {
		t.Fatalf("Union(number, string) = %#v, want a 2-member Sum", got)
	}
}

func TestUnion_SubsumedMemberIsDropped(t *testing.T) {
	got := typealgebra.Union(numberT, typeset.LiteralNumber(typeset.IntRep(1)))
	if !typeset.Equal(got, numberT) {
		t.Fatalf("Union(number, Literal(1)) = %v, want number (literal is subsumed)", got)
	}
}

func TestUnion_NeverNestsASumInsideASum(t *testing.T) {
	ab := typealgebra.Union(numberT, stringT)
	got := typealgebra.Union(ab, booleanT)
	sum, ok := got.(typeset.Sum)
	if !ok {
		t.Fatalf("Union(Union(number,string), boolean) = %#v, want a Sum", got)
	}
	for _, m := range sum.Members {
		if _, nested := m.(typeset.Sum); nested {
			t.Fatalf("Sum member %v is itself a Sum; Sum must never nest", m)
		}
	}
	if len(sum.Members) != 3 {
		t.Fatalf("got %d members, want 3 (number, string, boolean)", len(sum.Members))
	}
}

func TestUnion_IsCommutative(t *testing.T) {
	ab := typealgebra.Union(numberT, stringT)
	ba := typealgebra.Union(stringT, numberT)
	if !typeset.Equal(ab, ba) {
		t.Fatalf("Union(number, string) = %v, Union(string, number) = %v; want equal", ab, ba)
	}
}

func TestUnionAll_EmptyIsVoid(t *testing.T) {
	got := typealgebra.UnionAll(nil)
	if !typeset.Equal(got, typeset.Void{}) {
		t.Fatalf("UnionAll(nil) = %v, want Void", got)
	}
}

func TestIntersect_OverlappingPrimitiveAndLiteralTakesTheNarrower(t *testing.T) {
	lit := typeset.LiteralNumber(typeset.IntRep(1))
	got := typealgebra.Intersect(numberT, lit)
	if !typeset.Equal(got, lit) {
		t.Fatalf("Intersect(number, Literal(1)) = %v, want Literal(1)", got)
	}
}

func TestIntersect_DisjointPrimitivesProduceProduct(t *testing.T) {
	got := typealgebra.Intersect(numberT, stringT)
	if _, ok := got.(typeset.Product); !ok {
		t.Fatalf("Intersect(number, string) = %#v, want a Product", got)
	}
}

func TestDifference_RemovesNilFromUnion(t *testing.T) {
	withNil := typealgebra.Union(numberT, nilT)
	got := typealgebra.Difference(withNil, nilT)
	if !typeset.Equal(got, numberT) {
		t.Fatalf("Difference(number|nil, nil) = %v, want number", got)
	}
}

func TestDifference_RemovesOneBooleanLiteralLeavesTheOther(t *testing.T) {
	got := typealgebra.Difference(booleanT, typeset.LiteralBool(true))
	want := typeset.LiteralBool(false)
	if !typeset.Equal(got, want) {
		t.Fatalf("Difference(boolean, true) = %v, want false", got)
	}
}

func TestDifference_NumberPrimitiveMinusLiteralIsUnchanged(t *testing.T) {
	got := typealgebra.Difference(numberT, typeset.LiteralNumber(typeset.IntRep(1)))
	if !typeset.Equal(got, numberT) {
		t.Fatalf("Difference(number, Literal(1)) = %v, want number unchanged (no finite enumeration)", got)
	}
}

func TestDifference_EqualLiteralsYieldVoid(t *testing.T) {
	lit := typeset.LiteralString("x")
	got := typealgebra.Difference(lit, lit)
	if !typeset.Equal(got, typeset.Void{}) {
		t.Fatalf("Difference(lit, lit) = %v, want Void", got)
	}
}

func TestNarrowField_AppendsNewFieldWhenAbsent(t *testing.T) {
	empty := typeset.Table{}
	got := typealgebra.NarrowField(empty, "x", numberT)
	if i := got.FieldIndex("x"); i < 0 || !typeset.Equal(got.Fields[i].Val, numberT) {
		t.Fatalf("NarrowField on empty table should add field 'x': number, got %v", got)
	}
}

func TestNarrowField_WidensExistingFieldViaUnion(t *testing.T) {
	tbl := typeset.Table{Fields: []typeset.TableField{{Name: "x", Val: numberT}}}
	got := typealgebra.NarrowField(tbl, "x", stringT)
	i := got.FieldIndex("x")
	if i < 0 {
		t.Fatalf("field 'x' missing after NarrowField")
	}
	sum, ok := got.Fields[i].Val.(typeset.Sum)
	if !ok || len(sum.Members) != 2 {
		t.Fatalf("NarrowField should widen 'x' to number|string, got %v", got.Fields[i].Val)
	}
}

func TestNarrowIndex_AppendsThenWidensSameKey(t *testing.T) {
	empty := typeset.Table{}
	once := typealgebra.NarrowIndex(empty, stringT, numberT)
	if len(once.Indexes) != 1 {
		t.Fatalf("first NarrowIndex call should add one index entry, got %d", len(once.Indexes))
	}
	twice := typealgebra.NarrowIndex(once, stringT, stringT)
	if len(twice.Indexes) != 1 {
		t.Fatalf("NarrowIndex on the same key should widen in place, not append; got %d entries", len(twice.Indexes))
	}
	if !typeset.Equal(twice.Indexes[0].Val, typealgebra.Union(numberT, stringT)) {
		t.Fatalf("NarrowIndex should widen the index value via Union, got %v", twice.Indexes[0].Val)
	}
}
