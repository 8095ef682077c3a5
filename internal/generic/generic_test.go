package generic_test

import (
	"testing"

	"github.com/funvibe/typedlua/internal/generic"
	"github.com/funvibe/typedlua/internal/typeset"
)

var (
	numberT = typeset.Primitive{Kind: typeset.KindNumber}
	stringT = typeset.Primitive{Kind: typeset.KindString}
)

func TestCheckParam_InfersNominalFromFirstArgument(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})

	bindings := generic.Bindings{}
	res := generic.CheckParam(nom, numberT, []typeset.ID{id}, bindings)
	if !res.OK {
		t.Fatalf("CheckParam should succeed inferring T := number")
	}
	if got := bindings[id]; !typeset.Equal(got, numberT) {
		t.Fatalf("bindings[T] = %v, want number", got)
	}
}

func TestCheckParam_SecondOccurrenceMustAgreeWithFirstBinding(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})

	bindings := generic.Bindings{}
	if res := generic.CheckParam(nom, numberT, []typeset.ID{id}, bindings); !res.OK {
		t.Fatalf("first occurrence should bind T := number")
	}
	res := generic.CheckParam(nom, stringT, []typeset.ID{id}, bindings)
	if res.OK {
		t.Fatalf("a second occurrence of T with a disagreeing argument type should fail")
	}
}

func TestCheckParam_NonNominalIDFallsBackToBound(t *testing.T) {
	table := typeset.NewDeferredTable()
	_, nom := table.NewGenericParam("T", numberT)

	bindings := generic.Bindings{}
	res := generic.CheckParam(nom, numberT, nil, bindings)
	if !res.OK {
		t.Fatalf("a Nominal not in nominalIDs should check its current bound, and number should accept number")
	}
	if len(bindings) != 0 {
		t.Fatalf("no inference should happen for a Nominal outside nominalIDs")
	}
}

func TestCheckParam_TableWalksFieldsAndIndexesStructurally(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})

	paramType := typeset.Table{Fields: []typeset.TableField{{Name: "value", Val: nom}}}
	argType := typeset.Table{Fields: []typeset.TableField{{Name: "value", Val: stringT}}}

	bindings := generic.Bindings{}
	res := generic.CheckParam(paramType, argType, []typeset.ID{id}, bindings)
	if !res.OK {
		t.Fatalf("CheckParam should descend into a Table field and infer T := string")
	}
	if got := bindings[id]; !typeset.Equal(got, stringT) {
		t.Fatalf("bindings[T] = %v, want string", got)
	}
}

func TestCheckParam_SumTriesEachMemberUntilOneSucceeds(t *testing.T) {
	paramType := typeset.Sum{Members: []typeset.Type{numberT, stringT}}
	bindings := generic.Bindings{}
	res := generic.CheckParam(paramType, stringT, nil, bindings)
	if !res.OK {
		t.Fatalf("a Sum param should succeed if any member accepts the argument")
	}
	res = generic.CheckParam(paramType, typeset.Primitive{Kind: typeset.KindBoolean}, nil, bindings)
	if res.OK {
		t.Fatalf("a Sum param should fail if no member accepts the argument")
	}
}

func TestCheckParam_DeferredResolvesBeforeMatching(t *testing.T) {
	table := typeset.NewDeferredTable()
	id := table.New("x", numberT, typeset.Fixed)
	d := table.Deferred(id)

	bindings := generic.Bindings{}
	res := generic.CheckParam(d, numberT, nil, bindings)
	if !res.OK {
		t.Fatalf("CheckParam should resolve a Deferred param before comparing")
	}
}

func TestApplyGenParams_SubstitutesBoundNominal(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})
	bindings := generic.Bindings{id: numberT}

	got := generic.ApplyGenParams(bindings, []typeset.ID{id}, nil, nom)
	if !typeset.Equal(got, numberT) {
		t.Fatalf("ApplyGenParams(nom) = %v, want number", got)
	}
}

func TestApplyGenParams_UnboundNominalBecomesAny(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})
	bindings := generic.Bindings{}

	got := generic.ApplyGenParams(bindings, []typeset.ID{id}, nil, nom)
	if !typeset.Equal(got, typeset.Any{}) {
		t.Fatalf("ApplyGenParams on an uninferred generic param = %v, want any", got)
	}
}

func TestApplyGenParams_NominalOutsideListIsLeftAlone(t *testing.T) {
	table := typeset.NewDeferredTable()
	_, nom := table.NewGenericParam("U", typeset.Any{})
	bindings := generic.Bindings{}

	got := generic.ApplyGenParams(bindings, nil, nil, nom)
	if !typeset.Equal(got, nom) {
		t.Fatalf("ApplyGenParams should leave a Nominal unchanged when its id is not in nominalIDs")
	}
}

func TestApplyGenParams_RecursesThroughTableFieldsAndIndexes(t *testing.T) {
	table := typeset.NewDeferredTable()
	id, nom := table.NewGenericParam("T", typeset.Any{})
	bindings := generic.Bindings{id: stringT}

	paramType := typeset.Table{
		Fields:  []typeset.TableField{{Name: "value", Val: nom}},
		Indexes: []typeset.TableIndex{{Key: numberT, Val: nom}},
	}
	got := generic.ApplyGenParams(bindings, []typeset.ID{id}, nil, paramType)
	tbl, ok := got.(typeset.Table)
	if !ok {
		t.Fatalf("ApplyGenParams on a Table should return a Table, got %#v", got)
	}
	if !typeset.Equal(tbl.Fields[0].Val, stringT) {
		t.Fatalf("field value should substitute to string, got %v", tbl.Fields[0].Val)
	}
	if !typeset.Equal(tbl.Indexes[0].Val, stringT) {
		t.Fatalf("index value should substitute to string, got %v", tbl.Indexes[0].Val)
	}
}

func TestApplyGenParams_RequireResolvesThroughPackageTypeCallback(t *testing.T) {
	req := typeset.Require{Inner: typeset.LiteralString("mymodule")}
	calledWith := ""
	resolver := func(moduleName string) typeset.Type {
		calledWith = moduleName
		return numberT
	}
	got := generic.ApplyGenParams(nil, nil, resolver, req)
	if calledWith != "mymodule" {
		t.Fatalf("resolver should be called with the Require marker's literal module name, got %q", calledWith)
	}
	if !typeset.Equal(got, numberT) {
		t.Fatalf("ApplyGenParams(Require) = %v, want the resolver's result", got)
	}
}

func TestApplyGenParams_RequireWithNilResolverBecomesAny(t *testing.T) {
	req := typeset.Require{Inner: typeset.LiteralString("mymodule")}
	got := generic.ApplyGenParams(nil, nil, nil, req)
	if !typeset.Equal(got, typeset.Any{}) {
		t.Fatalf("ApplyGenParams(Require) with a nil resolver = %v, want any", got)
	}
}
