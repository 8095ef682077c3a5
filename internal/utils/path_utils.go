// Package utils holds small path and naming helpers shared by the loader
// and CLI.
package utils

import (
	"path/filepath"

	"github.com/funvibe/typedlua/internal/config"
)

// ResolveImportPath resolves a require() argument relative to a base
// directory if it starts with a dot (a relative module reference).
// Otherwise it is returned unchanged, to be resolved against the host's
// module search path by the loader.
func ResolveImportPath(baseDir, importPath string) string {
	if len(importPath) > 0 && importPath[0] == '.' {
		if baseDir != "." && baseDir != "" {
			return filepath.Join(baseDir, importPath)
		}
	}
	return importPath
}

// ExtractModuleName derives a module name from a file path: the base
// filename with any recognized source extension removed.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	return config.TrimSourceExt(name)
}

// GetModuleDir returns the directory context for a module path. If the
// path points to a source file, returns the file's directory; if it points
// to a directory (no recognized extension), returns the path itself.
func GetModuleDir(path string) string {
	if config.HasSourceExt(path) {
		return filepath.Dir(path)
	}
	return path
}
