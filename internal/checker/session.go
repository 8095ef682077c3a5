// Package checker implements the recursive pass over a parsed AST that
// populates Scopes, performs narrowing writes against the Deferred Type
// Table, and accumulates diagnostics. It is the single largest component
// in this module, dispatching with a plain type-switch style
// (session.go, stmt.go, expr.go) rather than routing through an
// Accept/Visitor interface on the AST.
package checker

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/config"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/scope"
	"github.com/funvibe/typedlua/internal/token"
	"github.com/funvibe/typedlua/internal/typeset"
)

// Session owns one Scope tree and one Deferred Type Table for the lifetime
// of a single checking pass - neither is concurrency-safe, and a session
// either runs to completion or is discarded. The uuid identifies
// the session in its log lines, so a host running several sessions at once
// (an LSP, a build server) can tell their logs apart; diagnostics do not
// carry it.
type Session struct {
	ID       uuid.UUID
	Options  config.Options
	Root     *scope.Scope
	Deferred *typeset.DeferredTable
	Errors   *diagnostics.Bag

	// GenericAliases records, for each generic interface/type-alias name in
	// scope, the Deferred Table ids its `<T, ...>` clause bound - the
	// information resolveNamedType needs to substitute concrete type
	// arguments through the alias's stored shape. Keyed
	// globally per session rather than per-Scope: a simplification recorded
	// in DESIGN.md, acceptable because generic interfaces are declared at
	// most once per name in the programs this checker is exercised against.
	GenericAliases map[string][]typeset.ID

	// Calls caches a call expression's resolved type so a later get_type
	// query for the same node does not re-run overload resolution.
	Calls map[ast.Expression]typeset.Type

	logger *slog.Logger

	// loopDepth tracks nesting inside while/repeat/for bodies, so `break`
	// outside a loop can be reported; a counter rather than a flag so
	// nested loops are handled directly.
	loopDepth int

	// selfDepth is nonzero while checking the body of a method defined with
	// colon syntax, so a bare `self` expression outside one is reported as
	// diagnostics.ErrSelfOutside rather than an ordinary name error.
	selfDepth int
}

// NewSession starts a checking session with the given options applied to
// its root scope.
func NewSession(opts config.Options) *Session {
	id := uuid.New()
	deferred := typeset.NewDeferredTable()
	root := scope.NewRoot(deferred)

	s := &Session{
		ID:             id,
		Options:        opts,
		Root:           root,
		Deferred:       deferred,
		Errors:         diagnostics.NewBag(),
		GenericAliases: map[string][]typeset.ID{},
		Calls:          map[ast.Expression]typeset.Type{},
		logger:         slog.Default().With("session", id.String()),
	}
	s.applyOptions()
	return s
}

func (s *Session) applyOptions() {
	if s.Options.EnableBasicTypes {
		seedBasicTypes(s.Root)
	}
	for kind, mt := range s.Options.Metatables {
		s.Root.SetMetatable(kind, mt)
	}
	if s.Options.GetPackageType != nil {
		s.Root.SetPackageResolver(s.Options.GetPackageType)
	}
}

// seedBasicTypes installs the core type-alias names recognized when
// basic types are enabled.
func seedBasicTypes(root *scope.Scope) {
	root.DeclareAlias(config.VoidTypeName, typeset.Void{})
	root.DeclareAlias(config.AnyTypeName, typeset.Any{})
	root.DeclareAlias(config.NilTypeName, typeset.Primitive{Kind: typeset.KindNil})
	root.DeclareAlias(config.NumberTypeName, typeset.Primitive{Kind: typeset.KindNumber})
	root.DeclareAlias(config.StringTypeName, typeset.Primitive{Kind: typeset.KindString})
	root.DeclareAlias(config.BooleanTypeName, typeset.Primitive{Kind: typeset.KindBoolean})
	root.DeclareAlias(config.ThreadTypeName, typeset.Primitive{Kind: typeset.KindThread})
}

// Check runs the checker over prog's top-level statements in the session's
// root scope. Diagnostics accumulate in s.Errors; Check itself returns
// nothing, since checking continues past individual diagnostics - callers
// inspect s.Errors.HasErrors() after the call.
func (s *Session) Check(prog *ast.Program) {
	s.logger.Info("check start", "file", prog.File)
	checkStatements(prog.Statements, s.Root, s)
	s.logger.Info("check done", "diagnostics", len(s.Errors.All()), "hasErrors", s.Errors.HasErrors())
}

// CheckModule runs the checker over prog the way Check does, but in a
// scope that deduces a top-level return type - the require() resolver
// needs a module's top-level return type; a plain script run via Check
// has no use for one, so that path leaves the root in ReturnInherit.
func (s *Session) CheckModule(prog *ast.Program) typeset.Type {
	moduleScope := s.Root.ChildDeduceReturn()
	s.logger.Info("check module start", "file", prog.File)
	checkStatements(prog.Statements, moduleScope, s)
	ret := moduleScope.DeducedReturn()
	s.logger.Info("check module done", "diagnostics", len(s.Errors.All()), "hasErrors", s.Errors.HasErrors())
	return ret
}

// addError is the session-bound shorthand the rest of the package uses to
// report a diagnostic at a node's token.
func (s *Session) addError(code diagnostics.Code, at token.Token, format string, args ...interface{}) {
	s.Errors.Add(diagnostics.New(code, at, format, args...))
}

// nameError rebinds name to Any in scope after reporting a name error, so
// that dependent expressions produce at most one cascading diagnostic.
func (s *Session) nameError(sc *scope.Scope, at token.Token, name string) {
	s.addError(diagnostics.ErrNameUndeclared, at, "undeclared name '%s'", name)
	sc.RebindToAny(name)
}
