package utils

import (
	"unicode"
	"unicode/utf8"
)

// ModuleMemberFallbackName builds the qualified registry name of a
// metatable method when it is sourced from a shared builtins namespace
// rather than declared directly against its primitive: prelude.go registers
// a "string" metatable's methods under names like "stringUpper" so that
// methods contributed by several primitives cannot collide in one flat
// registry, then exposes them to field_of under their short names.
// Example: moduleName="string", member="upper" -> "stringUpper".
func ModuleMemberFallbackName(moduleName, member string) string {
	if moduleName == "" || member == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(member)
	if r == utf8.RuneError && size == 0 {
		return ""
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return moduleName + member
	}
	return moduleName + string(upper) + member[size:]
}
