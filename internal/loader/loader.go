// Package loader implements a pair of loader collaborators: the
// require() type resolver installed on a session's root scope, and the
// host-runtime loader hook that intercepts module search and hands the
// host's code loader emitted, annotation-free source.
//
// It uses a path-keyed module cache plus a Processing set for cycle
// detection, cut down to this checker's actual need: resolve a
// require()'d module to a type, once, and cache the result - not a full
// multi-file package/export bookkeeping system, which this checker does
// not implement.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/funvibe/typedlua/internal/checker"
	"github.com/funvibe/typedlua/internal/config"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/emitter"
	"github.com/funvibe/typedlua/internal/parser"
	"github.com/funvibe/typedlua/internal/typeset"
	"github.com/funvibe/typedlua/internal/utils"
)

// Loader resolves require() targets to their checked module type, caching
// by absolute path and detecting circular requires via a processing-set
// guard.
type Loader struct {
	// Options seeds every subordinate session this Loader starts - when
	// module A's checking encounters require('B'), causing B to be
	// parsed+checked before A resumes, B's session gets the same
	// configuration as A's.
	Options config.Options

	// Roots is the ordered list of directories searched for a required
	// module, analogous to a host runtime's package path.
	Roots []string

	cache      map[string]typeset.Type
	processing map[string]bool
}

// New creates a Loader that resolves require() targets under roots using
// opts for every subordinate session it starts.
func New(opts config.Options, roots ...string) *Loader {
	return &Loader{
		Options:    opts,
		Roots:      roots,
		cache:      map[string]typeset.Type{},
		processing: map[string]bool{},
	}
}

// Resolver returns the generic.PackageTypeResolver a root scope installs
// via config.Options.GetPackageType.
func (l *Loader) Resolver() func(moduleName string) typeset.Type {
	return l.Resolve
}

// Resolve is the require() type resolver itself: find moduleName's source
// file, parse and check it in a subordinate session, and return its
// top-level return type, or Any on any failure.
func (l *Loader) Resolve(moduleName string) typeset.Type {
	path, err := l.find(moduleName)
	if err != nil {
		return typeset.Any{}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return typeset.Any{}
	}
	if t, ok := l.cache[absPath]; ok {
		return t
	}
	if l.processing[absPath] {
		// Circular require is cooperative reentrant recursion, not an
		// error, but a type can't be produced for a module still being
		// checked, so the cycle gets Any.
		return typeset.Any{}
	}
	l.processing[absPath] = true
	defer delete(l.processing, absPath)

	slog.Default().Info("loader resolving require", "module", utils.ExtractModuleName(absPath), "path", absPath)
	t, _ := l.checkFile(absPath)
	l.cache[absPath] = t
	return t
}

// find locates moduleName under one of Roots, trying each recognized
// source extension in turn. A dot-relative moduleName (e.g. "./sibling")
// resolves against each root via utils.ResolveImportPath rather than
// against the requiring file's own directory, a base-dir-relative scheme.
func (l *Loader) find(moduleName string) (string, error) {
	for _, root := range l.Roots {
		rel := filepath.FromSlash(utils.ResolveImportPath(root, moduleName))
		for _, ext := range config.SourceFileExtensions {
			candidate := rel + ext
			if !filepath.IsAbs(candidate) {
				candidate = filepath.Join(root, candidate)
			}
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("module %q not found under %v", moduleName, l.Roots)
}

// checkFile parses and checks the file at absPath in a fresh subordinate
// session, returning its deduced top-level return type and diagnostics.
func (l *Loader) checkFile(absPath string) (typeset.Type, *diagnostics.Bag) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return typeset.Any{}, nil
	}

	prog, syntaxErrs := parser.Parse(absPath, string(data))
	if prog == nil {
		return typeset.Any{}, syntaxErrs
	}

	sess := checker.NewSession(l.Options)
	sess.Root.SetPackageResolver(l.Resolve)
	ret := sess.CheckModule(prog)

	sess.Errors.AddAll(syntaxErrs.All())
	return ret, sess.Errors
}

// Hook is a loader-hook collaborator: a small shim a host runtime's
// module search calls in place of reading a file directly. It
// reads the annotated source, runs parse+check+emit, and returns the
// plain-source text the host's own loader should use. On any failure it
// returns a diagnostic string instead, as the host's own error path
// expects.
type Hook struct {
	Options config.Options
	Loader  *Loader
}

// NewHook builds a Hook sharing l's subordinate-require resolution (so a
// file loaded through the hook and a file pulled in via require() of one
// another resolve against the same module cache).
func NewHook(opts config.Options, l *Loader) *Hook {
	return &Hook{Options: opts, Loader: l}
}

// Load implements the loader-hook contract: given a file path, produce
// either emitted source ready for the host's code loader, or a formatted
// diagnostic string.
func (h *Hook) Load(path string) (source string, diagnosticText string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err.Error()
	}

	prog, syntaxErrs := parser.Parse(path, string(data))
	if prog == nil {
		return "", formatDiagnostics(syntaxErrs)
	}

	opts := h.Options
	if h.Loader != nil {
		opts.GetPackageType = h.Loader.Resolve
	}
	sess := checker.NewSession(opts)
	sess.Check(prog)
	sess.Errors.AddAll(syntaxErrs.All())

	if sess.Errors.HasErrors() {
		return "", formatDiagnostics(sess.Errors)
	}
	return emitter.Emit(prog), ""
}

func formatDiagnostics(bag *diagnostics.Bag) string {
	if bag == nil {
		return ""
	}
	out := ""
	for _, d := range bag.All() {
		out += d.String() + "\n"
	}
	return out
}
