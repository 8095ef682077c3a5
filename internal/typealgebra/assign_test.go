package typealgebra_test

import (
	"strings"
	"testing"
	"time"

	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

func TestIsAssignable_AnyAcceptsAnything(t *testing.T) {
	if !typealgebra.IsAssignable(typeset.Any{}, typeset.Primitive{Kind: typeset.KindNumber}).OK {
		t.Fatalf("Any should accept a number")
	}
	if !typealgebra.IsAssignable(numberT, typeset.Any{}).OK {
		t.Fatalf("Any on the RHS should be accepted by number (IsAssignable(l, Any) short-circuits to ok)")
	}
}

func TestIsAssignable_VoidOnlyFlowsIntoVoidOrAny(t *testing.T) {
	if !typealgebra.IsAssignable(typeset.Void{}, typeset.Void{}).OK {
		t.Fatalf("Void should accept Void")
	}
	if !typealgebra.IsAssignable(typeset.Any{}, typeset.Void{}).OK {
		t.Fatalf("Any should accept Void")
	}
	if typealgebra.IsAssignable(numberT, typeset.Void{}).OK {
		t.Fatalf("number should not accept Void")
	}
}

func TestIsAssignable_PrimitiveRequiresSameKind(t *testing.T) {
	if !typealgebra.IsAssignable(numberT, numberT).OK {
		t.Fatalf("number should accept number")
	}
	if typealgebra.IsAssignable(numberT, stringT).OK {
		t.Fatalf("number should not accept string")
	}
}

func TestIsAssignable_LiteralFallsBackToUnderlyingPrimitiveForUnknownL(t *testing.T) {
	lit := typeset.LiteralNumber(typeset.IntRep(1))
	fn := typeset.Function{Params: []typeset.Type{}, Return: typeset.Void{}}
	if typealgebra.IsAssignable(fn, lit).OK {
		t.Fatalf("a Function target should not accept a numeric Literal via the Underlying fallback")
	}
}

func TestIsAssignable_DeferredResolvesBeforeComparing(t *testing.T) {
	table := typeset.NewDeferredTable()
	id := table.New("x", numberT, typeset.Fixed)
	d := table.Deferred(id)
	if !typealgebra.IsAssignable(numberT, d).OK {
		t.Fatalf("number should accept a Deferred resolving to number")
	}
	if typealgebra.IsAssignable(stringT, d).OK {
		t.Fatalf("string should not accept a Deferred resolving to number")
	}
}

func TestIsAssignable_NominalIsNotReplacedByItsBoundWhenLIsNotTheSameNominal(t *testing.T) {
	table := typeset.NewDeferredTable()
	_, nom := table.NewGenericParam("T", numberT)
	if typealgebra.IsAssignable(numberT, nom).OK {
		t.Fatalf("number should not accept a Nominal, even one bound by number: Nominal identity is by id")
	}
	if !typealgebra.IsAssignable(nom, nom).OK {
		t.Fatalf("a Nominal should accept itself")
	}
}

func TestIsAssignable_SelfReferentialDeferredShortCircuitsOnSameID(t *testing.T) {
	table := typeset.NewDeferredTable()
	id := table.Reserve("Node", typeset.Fixed)
	node := table.Deferred(id)
	table.SetType(id, typeset.Table{Fields: []typeset.TableField{
		{Name: "value", Val: numberT},
		{Name: "next", Val: typealgebra.Union(node, typeset.Primitive{Kind: typeset.KindNil})},
	}})

	done := make(chan typealgebra.Result, 1)
	go func() { done <- typealgebra.IsAssignable(node, node) }()
	select {
	case res := <-done:
		if !res.OK {
			t.Fatalf("a self-referential type should be assignable to itself")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("IsAssignable(Node, Node) did not return - recursive interface self-comparison is looping")
	}
}

func TestIsAssignable_RequireMarkerIsTransparent(t *testing.T) {
	req := typeset.Require{Inner: numberT}
	if !typealgebra.IsAssignable(numberT, req).OK {
		t.Fatalf("number should accept a Require marker wrapping number")
	}
}

func TestAssignFunctionFunction_ParamsAreContravariant(t *testing.T) {
	narrow := typeset.Function{Params: []typeset.Type{typeset.LiteralNumber(typeset.IntRep(1))}, Return: typeset.Void{}}
	wide := typeset.Function{Params: []typeset.Type{numberT}, Return: typeset.Void{}}

	if !typealgebra.IsAssignable(narrow, wide).OK {
		t.Fatalf("a function taking number should be assignable where a function taking Literal(1) is expected (contravariant params)")
	}
	if typealgebra.IsAssignable(wide, narrow).OK {
		t.Fatalf("a function taking Literal(1) should not be assignable where a function taking number is expected")
	}
}

func TestAssignFunctionFunction_ReturnIsCovariant(t *testing.T) {
	narrowRet := typeset.Function{Params: []typeset.Type{}, Return: typeset.LiteralNumber(typeset.IntRep(1))}
	wideRet := typeset.Function{Params: []typeset.Type{}, Return: numberT}

	if !typealgebra.IsAssignable(wideRet, narrowRet).OK {
		t.Fatalf("a function returning Literal(1) should be assignable where a function returning number is expected (covariant return)")
	}
	if typealgebra.IsAssignable(narrowRet, wideRet).OK {
		t.Fatalf("a function returning number should not be assignable where a function returning Literal(1) is expected")
	}
}

func TestAssignFunctionFunction_FewerRParamsIsRejected(t *testing.T) {
	l := typeset.Function{Params: []typeset.Type{numberT, stringT}, Return: typeset.Void{}}
	r := typeset.Function{Params: []typeset.Type{numberT}, Return: typeset.Void{}}
	res := typealgebra.IsAssignable(l, r)
	if res.OK {
		t.Fatalf("R supplying fewer parameters than L requires should fail")
	}
}

func TestAssignFunctionFunction_ExcessRParamsMustAcceptNil(t *testing.T) {
	l := typeset.Function{Params: []typeset.Type{}, Return: typeset.Void{}}
	rOK := typeset.Function{Params: []typeset.Type{typeset.Primitive{Kind: typeset.KindNil}}, Return: typeset.Void{}}
	rBad := typeset.Function{Params: []typeset.Type{numberT}, Return: typeset.Void{}}
	if !typealgebra.IsAssignable(l, rOK).OK {
		t.Fatalf("excess R param typed nil should be tolerated")
	}
	if typealgebra.IsAssignable(l, rBad).OK {
		t.Fatalf("excess R param typed number should not be tolerated")
	}
}

func TestAssignTuple_ElementwisePositional(t *testing.T) {
	l := typeset.Tuple{Elems: []typeset.Type{numberT, stringT}}
	okR := typeset.Tuple{Elems: []typeset.Type{numberT, stringT}}
	badR := typeset.Tuple{Elems: []typeset.Type{stringT, numberT}}
	if !typealgebra.IsAssignable(l, okR).OK {
		t.Fatalf("(number, string) should accept (number, string)")
	}
	if typealgebra.IsAssignable(l, badR).OK {
		t.Fatalf("(number, string) should not accept (string, number)")
	}
}

func TestAssignTuple_MissingTrailingElementMustAcceptNil(t *testing.T) {
	l := typeset.Tuple{Elems: []typeset.Type{numberT, typeset.Primitive{Kind: typeset.KindNil}}}
	r := typeset.Tuple{Elems: []typeset.Type{numberT}}
	if !typealgebra.IsAssignable(l, r).OK {
		t.Fatalf("a missing trailing element typed nil on L should be satisfied by a shorter R")
	}

	lBad := typeset.Tuple{Elems: []typeset.Type{numberT, stringT}}
	if typealgebra.IsAssignable(lBad, r).OK {
		t.Fatalf("a missing trailing element typed string on L should reject a shorter R")
	}
}

func TestAssignTuple_ExcessElementsRejectedUnlessLVariadic(t *testing.T) {
	l := typeset.Tuple{Elems: []typeset.Type{numberT}}
	r := typeset.Tuple{Elems: []typeset.Type{numberT, stringT}}
	if typealgebra.IsAssignable(l, r).OK {
		t.Fatalf("a non-variadic L with fewer elements should reject an R with more")
	}
	lVariadic := typeset.Tuple{Elems: []typeset.Type{numberT}, Variadic: true}
	if !typealgebra.IsAssignable(lVariadic, r).OK {
		t.Fatalf("a variadic L should tolerate excess R elements")
	}
}

func TestAssignTuple_SplicesNestedTailTuple(t *testing.T) {
	l := typeset.Tuple{Elems: []typeset.Type{numberT, stringT}}
	r := typeset.Tuple{Elems: []typeset.Type{numberT, typeset.Tuple{Elems: []typeset.Type{stringT}}}}
	if !typealgebra.IsAssignable(l, r).OK {
		t.Fatalf("a tail Tuple-of-Tuple should splice flat before comparing")
	}
}

func TestAssignTuple_SingleNonTupleLHSTakesFirstElement(t *testing.T) {
	r := typeset.Tuple{Elems: []typeset.Type{numberT, stringT}}
	if !typealgebra.IsAssignable(numberT, r).OK {
		t.Fatalf("number should accept a Tuple's first element (number, string)")
	}
	if typealgebra.IsAssignable(stringT, r).OK {
		t.Fatalf("string should not accept a Tuple whose first element is number")
	}
}

func TestAssignTable_MissingFieldMustAcceptNil(t *testing.T) {
	l := typeset.Table{Fields: []typeset.TableField{{Name: "x", Val: typeset.Primitive{Kind: typeset.KindNil}}}}
	r := typeset.Table{}
	if !typealgebra.IsAssignable(l, r).OK {
		t.Fatalf("a field typed nil absent from R should be tolerated")
	}
	lRequired := typeset.Table{Fields: []typeset.TableField{{Name: "x", Val: numberT}}}
	if typealgebra.IsAssignable(lRequired, r).OK {
		t.Fatalf("a required field absent from R should fail")
	}
}

func TestAssignTable_IndexKeyAndValueMustBothMatch(t *testing.T) {
	l := typeset.Table{Indexes: []typeset.TableIndex{{Key: stringT, Val: numberT}}}
	rOK := typeset.Table{Indexes: []typeset.TableIndex{{Key: stringT, Val: numberT}}}
	rBadVal := typeset.Table{Indexes: []typeset.TableIndex{{Key: stringT, Val: stringT}}}
	if !typealgebra.IsAssignable(l, rOK).OK {
		t.Fatalf("matching index key/value types should be assignable")
	}
	if typealgebra.IsAssignable(l, rBadVal).OK {
		t.Fatalf("mismatched index value type should fail even with a matching key")
	}
}

func TestAssignTable_StringIndexCoversNamedFields(t *testing.T) {
	l := typeset.Table{Indexes: []typeset.TableIndex{{Key: stringT, Val: numberT}}}
	r := typeset.Table{Fields: []typeset.TableField{{Name: "x", Val: numberT}}}
	if !typealgebra.IsAssignable(l, r).OK {
		t.Fatalf("a [string]: number index should accept a record field x: number")
	}
	rBad := typeset.Table{Fields: []typeset.TableField{{Name: "x", Val: stringT}}}
	if typealgebra.IsAssignable(l, rBad).OK {
		t.Fatalf("a [string]: number index should reject a record field x: string")
	}
}

func TestAssignSum_EveryMemberOfRMustBeAssignable(t *testing.T) {
	sum := typeset.Sum{Members: []typeset.Type{numberT, stringT}}
	if !typealgebra.IsAssignable(typealgebra.Union(numberT, stringT), sum).OK {
		t.Fatalf("number|string should accept number|string")
	}
	narrowerTarget := typealgebra.Union(numberT, typeset.Primitive{Kind: typeset.KindBoolean})
	if typealgebra.IsAssignable(narrowerTarget, sum).OK {
		t.Fatalf("number|boolean should not accept number|string")
	}
}

func TestAssignSumL_SomeMemberOfLMustAcceptR(t *testing.T) {
	l := typealgebra.Union(numberT, stringT)
	if !typealgebra.IsAssignable(l, numberT).OK {
		t.Fatalf("number|string should accept a bare number")
	}
	if typealgebra.IsAssignable(l, typeset.Primitive{Kind: typeset.KindBoolean}).OK {
		t.Fatalf("number|string should not accept a bare boolean")
	}
}

func TestAssignProductL_EveryOverloadMustAcceptR(t *testing.T) {
	overload := typeset.Product{Members: []typeset.Type{numberT, stringT}}
	if typealgebra.IsAssignable(overload, numberT).OK {
		t.Fatalf("an overloaded (number & string) target should reject a bare number, since string can't accept it")
	}
	if !typealgebra.IsAssignable(overload, typeset.Any{}).OK {
		t.Fatalf("an overloaded target should accept Any")
	}
}

func TestAssignNominal_SameDeferredRefIsAssignable(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})
	_ = id
	if !typealgebra.IsAssignable(nom, nom).OK {
		t.Fatalf("a Nominal should be assignable to itself")
	}
	_, other := table.NewGenericParam("T", typeset.Any{})
	if typealgebra.IsAssignable(nom, other).OK {
		t.Fatalf("two distinct Nominals over the same name should not be mutually assignable")
	}
}

func TestResult_MessageRendersCrumbsInnermostFirst(t *testing.T) {
	l := typeset.Function{Params: []typeset.Type{numberT}, Return: typeset.Void{}}
	r := typeset.Function{Params: []typeset.Type{stringT}, Return: typeset.Void{}}
	res := typealgebra.IsAssignable(l, r)
	if res.OK {
		t.Fatalf("mismatched parameter types should fail assignability")
	}
	msg := res.Message()
	if !strings.Contains(msg, "At parameter 0") {
		t.Fatalf("Message() = %q, want it to mention the failing parameter position", msg)
	}
}
