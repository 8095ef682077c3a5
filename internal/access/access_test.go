package access_test

import (
	"testing"

	"github.com/funvibe/typedlua/internal/access"
	"github.com/funvibe/typedlua/internal/typeset"
)

var (
	numberT  = typeset.Primitive{Kind: typeset.KindNumber}
	stringT  = typeset.Primitive{Kind: typeset.KindString}
	booleanT = typeset.Primitive{Kind: typeset.KindBoolean}
)

func TestFieldOf_TableNamedFieldTakesPrecedenceOverIndex(t *testing.T) {
	tbl := typeset.Table{
		Fields:  []typeset.TableField{{Name: "x", Val: numberT}},
		Indexes: []typeset.TableIndex{{Key: stringT, Val: booleanT}},
	}
	res := access.FieldOf(tbl, "x", nil)
	if !res.Found || !typeset.Equal(res.Type, numberT) {
		t.Fatalf("FieldOf should resolve a named field before a string index, got %+v", res)
	}
}

func TestFieldOf_FallsThroughToStringIndexWhenFieldAbsent(t *testing.T) {
	tbl := typeset.Table{Indexes: []typeset.TableIndex{{Key: stringT, Val: booleanT}}}
	res := access.FieldOf(tbl, "anything", nil)
	if !res.Found || !typeset.Equal(res.Type, booleanT) {
		t.Fatalf("FieldOf should fall back to a string index, got %+v", res)
	}
}

func TestFieldOf_PrimitiveUsesMetatable(t *testing.T) {
	stringMeta := typeset.Table{Fields: []typeset.TableField{
		{Name: "upper", Val: typeset.Function{Params: []typeset.Type{}, Return: stringT}},
	}}
	mt := access.Metatables{typeset.KindString: stringMeta}
	res := access.FieldOf(stringT, "upper", mt)
	if !res.Found {
		t.Fatalf("FieldOf on string via metatable should find 'upper'")
	}
	res = access.FieldOf(stringT, "missing", mt)
	if res.Found {
		t.Fatalf("FieldOf should not find a field absent from the metatable")
	}
}

func TestFieldOf_LiteralDefersToUnderlyingPrimitive(t *testing.T) {
	stringMeta := typeset.Table{Fields: []typeset.TableField{{Name: "upper", Val: stringT}}}
	mt := access.Metatables{typeset.KindString: stringMeta}
	lit := typeset.LiteralString("hi")
	res := access.FieldOf(lit, "upper", mt)
	if !res.Found {
		t.Fatalf("FieldOf on a string Literal should defer to the string metatable")
	}
}

func TestFieldOf_SumRequiresEveryMemberToHaveTheField(t *testing.T) {
	a := typeset.Table{Fields: []typeset.TableField{{Name: "x", Val: numberT}}}
	b := typeset.Table{Fields: []typeset.TableField{{Name: "x", Val: stringT}}}
	sum := typeset.Sum{Members: []typeset.Type{a, b}}
	res := access.FieldOf(sum, "x", nil)
	if !res.Found {
		t.Fatalf("FieldOf on a Sum should succeed when every member has the field")
	}
	union, ok := res.Type.(typeset.Sum)
	if !ok || len(union.Members) != 2 {
		t.Fatalf("FieldOf on a Sum should union each member's field type, got %v", res.Type)
	}

	c := typeset.Table{}
	sumMissing := typeset.Sum{Members: []typeset.Type{a, c}}
	res = access.FieldOf(sumMissing, "x", nil)
	if res.Found {
		t.Fatalf("FieldOf on a Sum should fail if any member lacks the field")
	}
}

func TestFieldOf_AnyIsFoundAsAny(t *testing.T) {
	res := access.FieldOf(typeset.Any{}, "whatever", nil)
	if !res.Found || !typeset.Equal(res.Type, typeset.Any{}) {
		t.Fatalf("FieldOf on Any should find Any, got %+v", res)
	}
}

func TestFieldOf_DeferredAndNominalResolveBeforeLookup(t *testing.T) {
	table := typeset.NewDeferredTable()
	id := table.New("x", typeset.Table{Fields: []typeset.TableField{{Name: "y", Val: numberT}}}, typeset.Fixed)
	d := table.Deferred(id)
	res := access.FieldOf(d, "y", nil)
	if !res.Found || !typeset.Equal(res.Type, numberT) {
		t.Fatalf("FieldOf on a Deferred should resolve through the table, got %+v", res)
	}

	_, nom := table.NewGenericParam("T", typeset.Table{Fields: []typeset.TableField{{Name: "y", Val: stringT}}})
	res = access.FieldOf(nom, "y", nil)
	if !res.Found || !typeset.Equal(res.Type, stringT) {
		t.Fatalf("FieldOf on a Nominal should resolve through its bound, got %+v", res)
	}
}

func TestIndexOf_FirstMatchingIndexWins(t *testing.T) {
	tbl := typeset.Table{Indexes: []typeset.TableIndex{
		{Key: stringT, Val: numberT},
		{Key: typeset.Any{}, Val: booleanT},
	}}
	res := access.IndexOf(tbl, stringT)
	if !res.Found || !typeset.Equal(res.Type, numberT) {
		t.Fatalf("IndexOf should match the first accepting index entry, got %+v", res)
	}
}

func TestIndexOf_NotIndexableByDefault(t *testing.T) {
	res := access.IndexOf(numberT, stringT)
	if res.Found {
		t.Fatalf("a bare number should not be indexable")
	}
}

func TestReturnOf_FunctionWithNilReturnIsVoid(t *testing.T) {
	fn := typeset.Function{Params: []typeset.Type{}}
	res := access.ReturnOf(fn)
	if !res.Found || !typeset.Equal(res.Type, typeset.Void{}) {
		t.Fatalf("ReturnOf on a Function with nil Return should be Void, got %+v", res)
	}
}

func TestReturnOf_NotCallableByDefault(t *testing.T) {
	res := access.ReturnOf(numberT)
	if res.Found {
		t.Fatalf("a bare number should not be callable")
	}
}

func TestResolveOverload_RejectsTooFewArguments(t *testing.T) {
	fn := typeset.Function{Params: []typeset.Type{numberT, stringT}, Return: booleanT}
	res := access.ResolveOverload(fn, []typeset.Type{numberT}, nil)
	if res.Found {
		t.Fatalf("calling a 2-param function with 1 argument should fail without trailing nil-acceptance")
	}
}

func TestResolveOverload_TrailingNilAcceptingParamsMayBeOmitted(t *testing.T) {
	fn := typeset.Function{
		Params: []typeset.Type{numberT, typeset.Primitive{Kind: typeset.KindNil}},
		Return: booleanT,
	}
	res := access.ResolveOverload(fn, []typeset.Type{numberT}, nil)
	if !res.Found {
		t.Fatalf("omitting a trailing nil-accepting parameter should be tolerated, got %+v", res)
	}
}

func TestResolveOverload_RejectsTooManyArgumentsUnlessVariadic(t *testing.T) {
	fn := typeset.Function{Params: []typeset.Type{numberT}, Return: booleanT}
	res := access.ResolveOverload(fn, []typeset.Type{numberT, stringT}, nil)
	if res.Found {
		t.Fatalf("a non-variadic function should reject excess arguments")
	}

	variadic := typeset.Function{Params: []typeset.Type{numberT}, Variadic: true, Return: booleanT}
	res = access.ResolveOverload(variadic, []typeset.Type{numberT, stringT}, nil)
	if !res.Found {
		t.Fatalf("a variadic function should accept excess arguments, got %+v", res)
	}
}

func TestResolveOverload_InfersGenericReturnFromArgument(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})
	fn := typeset.Function{
		GenericParams: []typeset.GenericParam{{Name: "T", Bound: typeset.Any{}}},
		NominalIDs:    []typeset.ID{id},
		Params:        []typeset.Type{nom},
		Return:        nom,
	}
	res := access.ResolveOverload(fn, []typeset.Type{numberT}, nil)
	if !res.Found || !typeset.Equal(res.Type, numberT) {
		t.Fatalf("calling identity<T>(T): T with number should return number, got %+v", res)
	}
}

func TestResolveOverload_ProductTriesEachOverloadUntilOneAccepts(t *testing.T) {
	first := typeset.Function{Params: []typeset.Type{numberT}, Return: booleanT}
	second := typeset.Function{Params: []typeset.Type{stringT}, Return: numberT}
	overload := typeset.Product{Members: []typeset.Type{first, second}}

	res := access.ResolveOverload(overload, []typeset.Type{stringT}, nil)
	if !res.Found || !typeset.Equal(res.Type, numberT) {
		t.Fatalf("calling the overload with a string should hit the second member, got %+v", res)
	}

	res = access.ResolveOverload(overload, []typeset.Type{booleanT}, nil)
	if res.Found {
		t.Fatalf("calling the overload with a boolean should fail, no member accepts it")
	}
}

func TestResolveOverload_AnyIsCallableReturningAny(t *testing.T) {
	res := access.ResolveOverload(typeset.Any{}, []typeset.Type{numberT}, nil)
	if !res.Found || !typeset.Equal(res.Type, typeset.Any{}) {
		t.Fatalf("calling Any should succeed returning Any, got %+v", res)
	}
}

func TestResolveOverload_SubstitutesRequireInReturnTypeThroughPackageResolver(t *testing.T) {
	fn := typeset.Function{
		Params: []typeset.Type{},
		Return: typeset.Require{Inner: typeset.LiteralString("mymodule")},
	}
	calledWith := ""
	resolver := func(moduleName string) typeset.Type {
		calledWith = moduleName
		return numberT
	}
	res := access.ResolveOverload(fn, nil, resolver)
	if !res.Found || !typeset.Equal(res.Type, numberT) {
		t.Fatalf("a call returning require(\"mymodule\") should resolve through getPackageType, got %+v", res)
	}
	if calledWith != "mymodule" {
		t.Fatalf("resolver should be invoked with the required module name, got %q", calledWith)
	}
}

func TestResolveOverload_RequireWithNilResolverBecomesAny(t *testing.T) {
	fn := typeset.Function{
		Params: []typeset.Type{},
		Return: typeset.Require{Inner: typeset.LiteralString("mymodule")},
	}
	res := access.ResolveOverload(fn, nil, nil)
	if !res.Found || !typeset.Equal(res.Type, typeset.Any{}) {
		t.Fatalf("a call returning require(...) with no resolver installed should degrade to any, got %+v", res)
	}
}
