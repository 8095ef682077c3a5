// Command typedlua is the CLI surface: read source from stdin (or
// a file argument), run parse -> check -> emit, write emitted source to
// stdout and diagnostics to stderr. Exit code is 0 iff no Error-severity
// diagnostic was produced.
//
// readInput reads stdin when no argument is given and otherwise the file
// named by the first argument; ANSI coloring of diagnostics is gated on
// github.com/mattn/go-isatty, used to detect a real terminal before
// touching cursor/color control codes.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/typedlua/internal/checker"
	"github.com/funvibe/typedlua/internal/config"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/emitter"
	"github.com/funvibe/typedlua/internal/loader"
	"github.com/funvibe/typedlua/internal/parser"
	"github.com/funvibe/typedlua/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	source, filePath, err := readInput(args, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	opts, err := loadOptions(filePath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	roots := []string{"."}
	if filePath != "" {
		roots = []string{utils.GetModuleDir(filePath)}
	}
	l := loader.New(opts, roots...)
	opts.GetPackageType = l.Resolve

	prog, syntaxErrs := parser.Parse(filePath, source)
	if prog == nil {
		printDiagnostics(stderr, syntaxErrs, stderr == os.Stderr && isatty.IsTerminal(os.Stderr.Fd()))
		return 1
	}

	sess := checker.NewSession(opts)
	sess.Check(prog)
	sess.Errors.AddAll(syntaxErrs.All())

	colored := stderr == os.Stderr && (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	printDiagnostics(stderr, sess.Errors, colored)

	if sess.Errors.HasErrors() {
		return 1
	}

	fmt.Fprint(stdout, emitter.Emit(prog))
	return 0
}

func readInput(args []string, stdin io.Reader) (source, filePath string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return string(data), abs, nil
}

func loadOptions(filePath string) (config.Options, error) {
	dir := "."
	if filePath != "" {
		dir = filepath.Dir(filePath)
	}
	projectFile, err := config.FindProjectFile(dir)
	if err != nil {
		return config.Options{}, err
	}
	if projectFile == "" {
		return config.Default(), nil
	}
	return config.LoadOptionsFromYAML(projectFile, nil)
}

func printDiagnostics(w io.Writer, bag *diagnostics.Bag, colored bool) {
	if bag == nil {
		return
	}
	for _, d := range bag.All() {
		if colored {
			fmt.Fprintln(w, colorize(d))
			continue
		}
		fmt.Fprintln(w, d.String())
	}
}

// colorize wraps a Diagnostic's rendering in red (errors) or yellow
// (warnings) ANSI codes, used only when the output stream is known to be
// a real terminal.
func colorize(d diagnostics.Diagnostic) string {
	const reset = "\x1b[0m"
	color := "\x1b[31m"
	if d.Severity == diagnostics.Warning {
		color = "\x1b[33m"
	}
	return color + d.String() + reset
}
