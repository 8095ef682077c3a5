package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestGolden drives run() against the fixtures under testdata/, each a
// txtar archive bundling an input.tlua, the expected stdout, and the
// expected process exit code - an input/want-file pairing driven against a
// built binary in spirit, scaled down here to calling run() in-process
// instead of shelling out to go build.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no fixtures found under testdata/")
	}

	for _, path := range archives {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			a := txtar.Parse(data)

			var input, wantStdout string
			wantExit := 0
			for _, f := range a.Files {
				switch f.Name {
				case "input.tlua":
					input = string(f.Data)
				case "want.stdout":
					wantStdout = string(f.Data)
				case "want.exit":
					n, err := strconv.Atoi(strings.TrimSpace(string(f.Data)))
					if err != nil {
						t.Fatalf("bad want.exit: %v", err)
					}
					wantExit = n
				}
			}

			var stdout, stderr bytes.Buffer
			got := run([]string{}, strings.NewReader(input), &stdout, &stderr)
			if got != wantExit {
				t.Fatalf("exit = %d, want %d (stderr: %s)", got, wantExit, stderr.String())
			}
			if stdout.String() != wantStdout {
				t.Fatalf("stdout = %q, want %q", stdout.String(), wantStdout)
			}
		})
	}
}
