package checker

import (
	"sync"

	"github.com/funvibe/typedlua/internal/typeset"
	"github.com/funvibe/typedlua/internal/utils"
)

// StringMetatable builds the shared Table type of String methods through
// which `("x"):upper()`-style calls resolve via field_of's
// primitive-metatable fallback, once it is installed for the String
// primitive through config.Options.Metatables. Nothing in this package
// installs it.
//
// Built once via sync.Once, a lazy-singleton shared prelude, since the
// metatable is immutable and shared read-only across every session that
// enables it.
func StringMetatable() typeset.Table {
	stringPreludeOnce.Do(initStringPrelude)
	return stringPreludeTable
}

var (
	stringPreludeOnce  sync.Once
	stringPreludeTable typeset.Table
)

func initStringPrelude() {
	str := typeset.Primitive{Kind: typeset.KindString}
	num := typeset.Primitive{Kind: typeset.KindNumber}

	method := func(params []typeset.Type, ret typeset.Type) typeset.Function {
		full := append([]typeset.Type{str}, params...)
		return typeset.Function{Params: full, Return: ret}
	}

	fields := []typeset.TableField{
		{Name: utils.ModuleMemberFallbackName("string", "upper"), Val: method(nil, str)},
		{Name: "upper", Val: method(nil, str)},
		{Name: "lower", Val: method(nil, str)},
		{Name: "len", Val: method(nil, num)},
		{Name: "sub", Val: method([]typeset.Type{num, num}, str)},
		{Name: "byte", Val: method([]typeset.Type{num}, num)},
	}
	stringPreludeTable = typeset.Table{Fields: fields}
}

// TableMetatable builds the metatable for bare `{}` table values; like
// StringMetatable it is not installed by this package. It is present for
// parity with libs_table.cpp but intentionally empty - the base
// language exposes table operations (insert/remove/...) as free functions
// operating on an explicit Table argument, not as methods, so there is
// nothing to seed here beyond the placeholder itself.
func TableMetatable() typeset.Table {
	return typeset.Table{}
}
