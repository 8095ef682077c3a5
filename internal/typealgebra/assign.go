// Package typealgebra implements the union/intersection/difference/
// narrowing operators together with the assignability judgment. The two
// are mutually recursive - Union uses IsAssignable to decide subsumption,
// and IsAssignable on a Sum RHS iterates its members - so they live in one
// package rather than split across the "Type Algebra" / "Assignability
// Judgment" boundary.
package typealgebra

import (
	"fmt"

	"github.com/funvibe/typedlua/internal/typeset"
)

// Result is the outcome of an assignability check: success, optionally
// carrying warnings, or failure carrying a bottom-up crumb chain from the
// innermost mismatch out to the call site.
type Result struct {
	OK       bool
	Warnings []string
	Crumbs   []string // only meaningful when !OK; Crumbs[0] is the innermost cause.
}

func ok() Result { return Result{OK: true} }

func okWarn(w string) Result { return Result{OK: true, Warnings: []string{w}} }

func fail(crumbs ...string) Result { return Result{OK: false, Crumbs: crumbs} }

// wrap prepends no message; it appends ctx to the tail of an existing
// failure's crumb chain, which is how an outer call adds a positional
// crumb ("At parameter 0", "At field 'foo'") on top of an inner mismatch.
func wrap(inner Result, ctx string) Result {
	if inner.OK {
		return inner
	}
	return Result{OK: false, Crumbs: append(append([]string{}, inner.Crumbs...), ctx)}
}

// Message renders r's crumb chain as the multi-line diagnostic body,
// printed bottom-to-top, innermost cause first.
func (r Result) Message() string {
	msg := ""
	for i, c := range r.Crumbs {
		if i > 0 {
			msg += "\n"
		}
		msg += c
	}
	return msg
}

// IsAssignable decides "L ← R": whether a value of type R may flow into a
// location typed L. Dispatch is on R's variant.
//
// A self-referential type (an interface whose own body refers back to
// itself) compares as two occurrences of the same Deferred id. Resolving
// both sides before noticing that would walk back into the same pair
// forever, so the identical-id case short-circuits here, mirroring
// assignNominalR's id check below, before either side is resolved.
func IsAssignable(l, r typeset.Type) Result {
	if ld, lok := l.(typeset.Deferred); lok {
		if rd, rok := r.(typeset.Deferred); rok && ld.Table == rd.Table && ld.ID == rd.ID {
			return ok()
		}
	}
	switch rv := r.(type) {
	case typeset.Void:
		return assignVoidR(l)
	case typeset.Any:
		return ok()
	case typeset.Primitive:
		return assignPrimitiveR(l, rv)
	case typeset.Literal:
		return assignLiteralR(l, rv)
	case typeset.Function:
		return assignFunctionR(l, rv)
	case typeset.Tuple:
		return assignTupleR(l, rv)
	case typeset.Table:
		return assignTableR(l, rv)
	case typeset.Sum:
		return assignSumR(l, rv)
	case typeset.Product:
		return assignProductR(l, rv)
	case typeset.Deferred:
		return IsAssignable(l, rv.Resolve())
	case typeset.Nominal:
		return assignNominalR(l, rv)
	case typeset.Require:
		// A Require marker only ever appears pre-substitution; treat it as
		// its inner shape for assignability purposes.
		return IsAssignable(l, rv.Inner)
	default:
		return fail(fmt.Sprintf("Cannot assign %s to %s", r, l))
	}
}

func cannot(l, r typeset.Type) Result {
	return fail(fmt.Sprintf("Cannot assign %s to %s", r, l))
}

func assignVoidR(l typeset.Type) Result {
	switch l.(type) {
	case typeset.Void, typeset.Any:
		return ok()
	default:
		return cannot(l, typeset.Void{})
	}
}

func assignPrimitiveR(l typeset.Type, r typeset.Primitive) Result {
	switch lv := l.(type) {
	case typeset.Any:
		return ok()
	case typeset.Primitive:
		if lv.Kind == r.Kind {
			return ok()
		}
		return cannot(l, r)
	case typeset.Sum:
		return assignSumL(lv, r)
	case typeset.Deferred:
		return IsAssignable(lv.Resolve(), r)
	case typeset.Nominal:
		return IsAssignable(lv.Bound(), r)
	case typeset.Product:
		return assignProductL(lv, r)
	default:
		return cannot(l, r)
	}
}

func assignLiteralR(l typeset.Type, r typeset.Literal) Result {
	switch lv := l.(type) {
	case typeset.Any:
		return ok()
	case typeset.Literal:
		if lv.Prim == r.Prim && typeset.Equal(lv, r) {
			return ok()
		}
		return cannot(l, r)
	case typeset.Primitive:
		if lv.Kind == r.Prim {
			return ok()
		}
		return cannot(l, r)
	case typeset.Sum:
		return assignSumL(lv, r)
	case typeset.Deferred:
		return IsAssignable(lv.Resolve(), r)
	case typeset.Nominal:
		return IsAssignable(lv.Bound(), r)
	case typeset.Product:
		return assignProductL(lv, r)
	default:
		return IsAssignable(l, r.Underlying())
	}
}

func assignFunctionR(l typeset.Type, r typeset.Function) Result {
	switch lv := l.(type) {
	case typeset.Any:
		return ok()
	case typeset.Function:
		return assignFunctionFunction(lv, r)
	case typeset.Sum:
		return assignSumL(lv, r)
	case typeset.Deferred:
		return IsAssignable(lv.Resolve(), r)
	case typeset.Nominal:
		return IsAssignable(lv.Bound(), r)
	case typeset.Product:
		return assignProductL(lv, r)
	default:
		return cannot(l, r)
	}
}

// assignFunctionFunction implements the contravariant-parameter /
// covariant-return rule. Generic parameters are substituted by their
// bounds before comparison.
func assignFunctionFunction(l, r typeset.Function) Result {
	lSub := substituteBounds(l)
	rSub := substituteBounds(r)

	if len(rSub.Params) < len(lSub.Params) {
		return wrap(fail(fmt.Sprintf("%d parameters required, %d supplied", len(lSub.Params), len(rSub.Params))), fmt.Sprintf("Cannot assign %s to %s", r, l))
	}
	for i, lp := range lSub.Params {
		var rp typeset.Type = typeset.Primitive{Kind: typeset.KindNil}
		if i < len(rSub.Params) {
			rp = rSub.Params[i]
		}
		// contravariant: L's param must accept R's param
		res := IsAssignable(rp, lp)
		if !res.OK {
			return wrap(res, fmt.Sprintf("At parameter %d", i))
		}
	}
	// excess R params beyond L's arity must accept Nil
	for i := len(lSub.Params); i < len(rSub.Params); i++ {
		res := IsAssignable(rSub.Params[i], typeset.Primitive{Kind: typeset.KindNil})
		if !res.OK {
			return wrap(res, fmt.Sprintf("At parameter %d (excess)", i))
		}
	}
	lRet, rRet := returnOrVoid(lSub.Return), returnOrVoid(rSub.Return)
	res := IsAssignable(lRet, rRet) // covariant
	if !res.OK {
		return wrap(res, "At return type")
	}
	return ok()
}

func returnOrVoid(t typeset.Type) typeset.Type {
	if t == nil {
		return typeset.Void{}
	}
	return t
}

// substituteBounds replaces every Nominal occurrence of f's own generic
// parameters by their current bound, so that two independently-declared
// generic functions can be compared structurally.
func substituteBounds(f typeset.Function) typeset.Function {
	if len(f.GenericParams) == 0 {
		return f
	}
	subst := map[typeset.ID]typeset.Type{}
	for i, id := range f.NominalIDs {
		subst[id] = f.GenericParams[i].Bound
	}
	params := make([]typeset.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = substituteNominals(p, subst)
	}
	ret := f.Return
	if ret != nil {
		ret = substituteNominals(ret, subst)
	}
	return typeset.Function{Params: params, Return: ret, Variadic: f.Variadic}
}

// substituteNominals walks t replacing any Nominal whose id is a key of
// subst with its bound. Structural recursion only; Deferred is left alone
// since it is resolved lazily rather than substituted.
func substituteNominals(t typeset.Type, subst map[typeset.ID]typeset.Type) typeset.Type {
	switch v := t.(type) {
	case typeset.Nominal:
		if b, ok := subst[v.Ref.ID]; ok {
			return b
		}
		return v
	case typeset.Tuple:
		elems := make([]typeset.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = substituteNominals(e, subst)
		}
		return typeset.Tuple{Elems: elems, Variadic: v.Variadic}
	case typeset.Sum:
		members := make([]typeset.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = substituteNominals(m, subst)
		}
		return typeset.Sum{Members: members}
	case typeset.Product:
		members := make([]typeset.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = substituteNominals(m, subst)
		}
		return typeset.Product{Members: members}
	case typeset.Table:
		fields := make([]typeset.TableField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = typeset.TableField{Name: f.Name, Val: substituteNominals(f.Val, subst)}
		}
		indexes := make([]typeset.TableIndex, len(v.Indexes))
		for i, ix := range v.Indexes {
			indexes[i] = typeset.TableIndex{Key: substituteNominals(ix.Key, subst), Val: substituteNominals(ix.Val, subst)}
		}
		return typeset.Table{Fields: fields, Indexes: indexes}
	case typeset.Function:
		return substituteBounds(v)
	default:
		return t
	}
}

// assignTupleR implements the Tuple assignability rule, including
// splicing a trailing Tuple-of-Tuple.
func assignTupleR(l typeset.Type, r typeset.Tuple) Result {
	switch lv := l.(type) {
	case typeset.Any:
		return ok()
	case typeset.Tuple:
		return assignTupleTuple(lv, r)
	case typeset.Sum:
		return assignSumL(lv, r)
	case typeset.Deferred:
		return IsAssignable(lv.Resolve(), r)
	case typeset.Nominal:
		return IsAssignable(lv.Bound(), r)
	case typeset.Product:
		return assignProductL(lv, r)
	default:
		// A single non-Tuple LHS takes the Tuple's first element, preferred
		// over treating it as an error.
		if len(r.Elems) == 0 {
			return IsAssignable(l, typeset.Primitive{Kind: typeset.KindNil})
		}
		return IsAssignable(l, r.Elems[0])
	}
}

func spliceTail(elems []typeset.Type) ([]typeset.Type, bool) {
	if len(elems) == 0 {
		return elems, false
	}
	last := elems[len(elems)-1]
	if inner, ok := last.(typeset.Tuple); ok {
		out := append(append([]typeset.Type{}, elems[:len(elems)-1]...), inner.Elems...)
		return out, inner.Variadic
	}
	return elems, false
}

func assignTupleTuple(l, r typeset.Tuple) Result {
	rElems, rTailVariadic := spliceTail(r.Elems)
	rVariadic := r.Variadic || rTailVariadic

	for i, lp := range l.Elems {
		if i < len(rElems) {
			res := IsAssignable(lp, rElems[i])
			if !res.OK {
				return wrap(res, fmt.Sprintf("At position %d", i))
			}
			continue
		}
		if rVariadic {
			continue
		}
		res := IsAssignable(lp, typeset.Primitive{Kind: typeset.KindNil})
		if !res.OK {
			return wrap(res, fmt.Sprintf("At position %d (missing)", i))
		}
	}
	if len(rElems) > len(l.Elems) && !l.Variadic {
		return fail(fmt.Sprintf("Too many values: expected %d, got %d", len(l.Elems), len(rElems)))
	}
	return ok()
}

// assignTableR implements the Table assignability rule.
func assignTableR(l typeset.Type, r typeset.Table) Result {
	switch lv := l.(type) {
	case typeset.Any:
		return ok()
	case typeset.Table:
		return assignTableTable(lv, r)
	case typeset.Sum:
		return assignSumL(lv, r)
	case typeset.Deferred:
		return IsAssignable(lv.Resolve(), r)
	case typeset.Nominal:
		return IsAssignable(lv.Bound(), r)
	case typeset.Product:
		return assignProductL(lv, r)
	default:
		return cannot(l, r)
	}
}

func assignTableTable(l, r typeset.Table) Result {
	for _, ix := range l.Indexes {
		for _, rix := range r.Indexes {
			keyRes := IsAssignable(ix.Key, rix.Key)
			if !keyRes.OK {
				continue
			}
			if res := IsAssignable(ix.Val, rix.Val); !res.OK {
				return wrap(res, fmt.Sprintf("At index [%s]", ix.Key))
			}
		}
		if stringRes := IsAssignable(ix.Key, typeset.Primitive{Kind: typeset.KindString}); stringRes.OK {
			for _, rf := range r.Fields {
				if res := IsAssignable(ix.Val, rf.Val); !res.OK {
					return wrap(res, fmt.Sprintf("At field '%s' (via string index)", rf.Name))
				}
			}
		}
	}

	for _, lf := range l.Fields {
		i := r.FieldIndex(lf.Name)
		if i < 0 {
			res := IsAssignable(lf.Val, typeset.Primitive{Kind: typeset.KindNil})
			if !res.OK {
				return wrap(fail(fmt.Sprintf("Missing required field '%s'", lf.Name)), fmt.Sprintf("At field '%s'", lf.Name))
			}
			continue
		}
		if res := IsAssignable(lf.Val, r.Fields[i].Val); !res.OK {
			return wrap(res, fmt.Sprintf("At field '%s'", lf.Name))
		}
	}
	return ok()
}

// assignSumR implements the Sum assignability rule: every member of R
// must be assignable to L.
func assignSumR(l typeset.Type, r typeset.Sum) Result {
	for _, m := range r.Members {
		if res := IsAssignable(l, m); !res.OK {
			return wrap(res, fmt.Sprintf("At union member %s", m))
		}
	}
	return ok()
}

// assignSumL handles the common "L is a Sum" shape for every R branch
// above: some member of L must accept R.
func assignSumL(l typeset.Sum, r typeset.Type) Result {
	var last Result
	for _, m := range l.Members {
		res := IsAssignable(m, r)
		if res.OK {
			return res
		}
		last = res
	}
	if last.Crumbs == nil {
		return cannot(l, r)
	}
	return wrap(last, fmt.Sprintf("No member of %s accepts %s", l, r))
}

// assignProductR: for function-typed L, look for a component accepting L;
// generally L must accept some component of R.
func assignProductR(l typeset.Type, r typeset.Product) Result {
	var last Result
	for _, m := range r.Members {
		res := IsAssignable(l, m)
		if res.OK {
			return res
		}
		last = res
	}
	if last.Crumbs == nil {
		return cannot(l, r)
	}
	return wrap(last, fmt.Sprintf("No component of %s is assignable to %s", r, l))
}

// assignProductL: when the LHS is an overloaded Product, R must satisfy
// every component.
func assignProductL(l typeset.Product, r typeset.Type) Result {
	for _, m := range l.Members {
		if res := IsAssignable(m, r); !res.OK {
			return wrap(res, fmt.Sprintf("At overload %s", m))
		}
	}
	return ok()
}

func assignNominalR(l typeset.Type, r typeset.Nominal) Result {
	if ln, isNominal := l.(typeset.Nominal); isNominal {
		if ln.Ref.Table == r.Ref.Table && ln.Ref.ID == r.Ref.ID {
			return ok()
		}
		return cannot(l, r)
	}
	switch lv := l.(type) {
	case typeset.Any:
		return ok()
	case typeset.Sum:
		return assignSumL(lv, r)
	case typeset.Deferred:
		return IsAssignable(lv.Resolve(), r)
	case typeset.Product:
		return assignProductL(lv, r)
	default:
		return cannot(l, r)
	}
}
