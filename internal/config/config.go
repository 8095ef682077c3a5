// Package config defines a checking session's options and a project-file
// loader for them, in a small YAML shape.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/typedlua/internal/generic"
	"github.com/funvibe/typedlua/internal/typeset"
)

// SourceFileExt is the canonical extension for the annotated dialect.
const SourceFileExt = ".tlua"

// SourceFileExtensions are all extensions require() resolution recognizes:
// the annotated dialect itself, plus the plain host extension so a require()
// can target source the emitter already stripped.
var SourceFileExtensions = []string{".tlua", ".lua"}

// HasSourceExt reports whether path ends in one of SourceFileExtensions.
func HasSourceExt(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range SourceFileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name, if present.
func TrimSourceExt(name string) string {
	ext := filepath.Ext(name)
	for _, e := range SourceFileExtensions {
		if ext == e {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// Basic type alias names seeded when Options.EnableBasicTypes is set.
const (
	VoidTypeName    = "void"
	AnyTypeName     = "any"
	NilTypeName     = "nil"
	NumberTypeName  = "number"
	StringTypeName  = "string"
	BooleanTypeName = "boolean"
	ThreadTypeName  = "thread"
)

// Options is a checking session's configuration: three recognized
// options, gathered into one value so a host can build it by hand or load
// it from a project file.
type Options struct {
	// EnableBasicTypes seeds the type-alias map with the core primitive
	// names.
	EnableBasicTypes bool

	// Metatables attaches a metatable-like record to a primitive kind so
	// field access through values of that primitive resolves.
	Metatables map[typeset.PrimitiveKind]typeset.Type

	// GetPackageType is the require() resolver installed on the root scope.
	// Not settable from YAML - a host wires this in programmatically,
	// typically to internal/loader.Loader.
	GetPackageType generic.PackageTypeResolver
}

// Default returns the Options a standalone CLI invocation uses absent a
// project file: basic types enabled, no metatables, no require() resolver.
func Default() Options {
	return Options{EnableBasicTypes: true, Metatables: map[typeset.PrimitiveKind]typeset.Type{}}
}

// ProjectFileNames are the recognized project config filenames, searched
// in order.
var ProjectFileNames = []string{"typedlua.yaml", "typedlua.yml"}

// FindProjectFile walks up from dir looking for a recognized project
// file. Returns "" if none is found.
func FindProjectFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// fileOptions is the YAML-serializable subset of Options - a project file
// cannot carry a Go callback, so Metatables is named by primitive kind and
// GetPackageType is absent entirely.
type fileOptions struct {
	EnableBasicTypes bool     `yaml:"enableBasicTypes"`
	Metatables       []string `yaml:"metatables"`
}

// MetatableResolver resolves one of a project file's metatable entries (a
// primitive name like "string" or "table") to the kind and Type a caller
// wants installed for it. Names it does not recognize are skipped.
type MetatableResolver func(primitiveName string) (typeset.PrimitiveKind, typeset.Type, bool)

// LoadOptionsFromYAML reads a project file into an Options value.
func LoadOptionsFromYAML(path string, resolve MetatableResolver) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return Options{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	opts := Options{
		EnableBasicTypes: fo.EnableBasicTypes,
		Metatables:       map[typeset.PrimitiveKind]typeset.Type{},
	}
	for _, name := range fo.Metatables {
		if resolve == nil {
			continue
		}
		if k, t, ok := resolve(name); ok {
			opts.Metatables[k] = t
		}
	}
	return opts, nil
}
