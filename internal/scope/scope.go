// Package scope implements the lexically nested environment that binds
// names to types and to type aliases, threads the return-type and
// varargs discipline through function bodies, and carries the root's
// metatable map and require() resolver.
package scope

import (
	"github.com/funvibe/typedlua/internal/access"
	"github.com/funvibe/typedlua/internal/generic"
	"github.com/funvibe/typedlua/internal/typealgebra"
	"github.com/funvibe/typedlua/internal/typeset"
)

// DotsMode is the varargs discipline of a scope.
type DotsMode int

const (
	DotsInherit DotsMode = iota
	DotsNone
	DotsOwn
)

// ReturnMode is the return-type discipline of a scope.
type ReturnMode int

const (
	ReturnInherit ReturnMode = iota
	ReturnDeduce
	ReturnFixed
)

// Scope is one lexical block's environment.
type Scope struct {
	parent *Scope

	names   map[string]typeset.Type
	aliases map[string]typeset.Type

	dotsMode DotsMode
	dotsType typeset.Type

	returnMode ReturnMode
	returnType typeset.Type

	deferred *typeset.DeferredTable

	// Root-only fields.
	metatables access.Metatables
	getPackage generic.PackageTypeResolver
}

// NewRoot creates the root Scope of a checking session, owning the given
// Deferred Type Table - one session owns one Scope tree and one
// DeferredTable.
func NewRoot(deferred *typeset.DeferredTable) *Scope {
	return &Scope{
		names:      map[string]typeset.Type{},
		aliases:    map[string]typeset.Type{},
		dotsMode:   DotsNone,
		returnMode: ReturnInherit,
		deferred:   deferred,
		metatables: access.Metatables{},
	}
}

// Child creates a nested lexical block.
func (s *Scope) Child() *Scope {
	return &Scope{
		parent:  s,
		names:   map[string]typeset.Type{},
		aliases: map[string]typeset.Type{},
	}
}

// ChildWithDots creates a nested scope that owns its own varargs type
// (entering a variadic function body).
func (s *Scope) ChildWithDots(dotsType typeset.Type) *Scope {
	c := s.Child()
	c.dotsMode = DotsOwn
	c.dotsType = dotsType
	return c
}

// ChildNoDots creates a nested scope that disables varargs (entering a
// non-variadic function body).
func (s *Scope) ChildNoDots() *Scope {
	c := s.Child()
	c.dotsMode = DotsNone
	return c
}

// ChildDeduceReturn creates a nested scope whose return type is deduced by
// unioning every `return` encountered in it (a function with no declared
// return type).
func (s *Scope) ChildDeduceReturn() *Scope {
	c := s.Child()
	c.returnMode = ReturnDeduce
	c.returnType = typeset.Void{}
	return c
}

// ChildFixedReturn creates a nested scope whose declared return type every
// `return` must be assignable into.
func (s *Scope) ChildFixedReturn(t typeset.Type) *Scope {
	c := s.Child()
	c.returnMode = ReturnFixed
	c.returnType = t
	return c
}

// Root returns the root of this scope's tree.
func (s *Scope) Root() *Scope {
	r := s
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Deferred returns the session-wide Deferred Type Table.
func (s *Scope) Deferred() *typeset.DeferredTable {
	return s.Root().deferred
}

// Parent returns the lexically enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// --- Name bindings ---

// Declare binds name to t in this scope (a `local` declaration, a
// parameter, a for-loop variable). Returns true if name already had a
// binding visible from this scope (shadowing), for the caller to emit a
// warning.
func (s *Scope) Declare(name string, t typeset.Type) (shadowed bool) {
	_, shadowed = s.Lookup(name)
	s.names[name] = t
	return shadowed
}

// DeclareGlobal walks to the root and binds name there (`global x = ...`
// or an implicit top-level assignment), per add_global_name.
func (s *Scope) DeclareGlobal(name string, t typeset.Type) {
	s.Root().names[name] = t
}

// Lookup searches this scope and its ancestors for name.
func (s *Scope) Lookup(name string) (typeset.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.names[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Assign rewrites the binding for name in whichever ancestor scope
// currently declares it (a plain, non-local assignment `x = ...`). If name
// is not declared anywhere, it is added at the root scope - a name that
// fails lookup is immediately re-bound to Any locally so downstream
// expressions produce at most one error; here the rebind is only reached
// after Lookup has already failed the name-error check in the caller.
func (s *Scope) Assign(name string, t typeset.Type) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.names[name]; ok {
			cur.names[name] = t
			return
		}
	}
	s.Root().names[name] = t
}

// RebindToAny is the checker's "fail-soft" move after a name error: rebind
// name to Any in the *current* scope so later reads of it in this block
// produce at most one cascading diagnostic.
func (s *Scope) RebindToAny(name string) {
	s.names[name] = typeset.Any{}
}

// --- Type aliases ---

// DeclareAlias binds name to a type in the alias namespace (an `interface`
// or `type` declaration, or a seeded basic-type name).
func (s *Scope) DeclareAlias(name string, t typeset.Type) {
	s.aliases[name] = t
}

// LookupAlias searches this scope and its ancestors for a type alias.
func (s *Scope) LookupAlias(name string) (typeset.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.aliases[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// --- Varargs discipline ---

// Dots returns the type of `...` as visible from this scope, and whether
// `...` is usable at all.
func (s *Scope) Dots() (typeset.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		switch cur.dotsMode {
		case DotsOwn:
			return cur.dotsType, true
		case DotsNone:
			return nil, false
		case DotsInherit:
			continue
		}
	}
	return nil, false
}

// --- Return discipline ---

// AddReturn records a `return` statement's expression-tuple type against
// the nearest enclosing function scope's return discipline.
// In Deduce mode, it widens the function's inferred return type via union;
// in Fixed mode, it checks assignability and returns the failure, if any.
func (s *Scope) AddReturn(t typeset.Type) typealgebra.Result {
	for cur := s; cur != nil; cur = cur.parent {
		switch cur.returnMode {
		case ReturnDeduce:
			cur.returnType = typealgebra.Union(cur.returnType, t)
			return typealgebra.Result{OK: true}
		case ReturnFixed:
			return typealgebra.IsAssignable(cur.returnType, t)
		case ReturnInherit:
			continue
		}
	}
	return typealgebra.Result{OK: true}
}

// DeducedReturn returns the return type accumulated so far by the nearest
// enclosing Deduce-mode scope, used once a function body finishes checking
// to install its final inferred return type.
func (s *Scope) DeducedReturn() typeset.Type {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.returnMode == ReturnDeduce {
			return cur.returnType
		}
		if cur.returnMode == ReturnFixed {
			return cur.returnType
		}
	}
	return typeset.Void{}
}

// --- Root-only: metatables and require() resolver ---

// SetMetatable attaches mt as the metatable for primitive kind k.
// Only meaningful on the root scope.
func (s *Scope) SetMetatable(k typeset.PrimitiveKind, mt typeset.Type) {
	s.Root().metatables[k] = mt
}

// Metatables returns the root's primitive-to-metatable map, consulted by
// access.FieldOf.
func (s *Scope) Metatables() access.Metatables {
	return s.Root().metatables
}

// SetPackageResolver installs the require() type resolver.
func (s *Scope) SetPackageResolver(r generic.PackageTypeResolver) {
	s.Root().getPackage = r
}

// PackageResolver returns the installed require() resolver, or nil.
func (s *Scope) PackageResolver() generic.PackageTypeResolver {
	return s.Root().getPackage
}
