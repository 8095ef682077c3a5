package emitter_test

import (
	"strings"
	"testing"

	"github.com/funvibe/typedlua/internal/emitter"
	"github.com/funvibe/typedlua/internal/parser"
)

func emit(t *testing.T, src string) string {
	t.Helper()
	prog, errs := parser.Parse("test.tlua", src)
	if errs != nil && len(errs.All()) > 0 {
		t.Fatalf("unexpected syntax errors: %v", errs.All())
	}
	return emitter.Emit(prog)
}

func TestEmit_ErasesLocalAnnotation(t *testing.T) {
	out := emit(t, "local x: number = 1")
	if strings.Contains(out, "number") {
		t.Fatalf("annotation survived erasure: %q", out)
	}
	if !strings.Contains(out, "local x = 1") {
		t.Fatalf("got %q", out)
	}
}

func TestEmit_ErasesFunctionSignatureAnnotations(t *testing.T) {
	out := emit(t, `
local function add(a: number, b: number): number
  return a + b
end
`)
	if strings.Contains(out, ": number") || strings.Contains(out, ") :") {
		t.Fatalf("return/param annotations survived: %q", out)
	}
	if !strings.Contains(out, "local function add(a, b)") {
		t.Fatalf("got %q", out)
	}
}

func TestEmit_ErasesInterfaceAndTypeAlias(t *testing.T) {
	out := emit(t, `
interface Shape: {
  area: (): number
}
type T = number | string
local x = 1
`)
	if strings.Contains(out, "interface") || strings.Contains(out, "Shape") || strings.Contains(out, "type T") {
		t.Fatalf("declarations were not erased: %q", out)
	}
	if !strings.Contains(out, "local x = 1") {
		t.Fatalf("got %q", out)
	}
}

func TestEmit_ErasesGenericParams(t *testing.T) {
	out := emit(t, `
local id = function<T>(x: T): T
  return x
end
`)
	if strings.Contains(out, "<T>") || strings.Contains(out, ": T") {
		t.Fatalf("generic params survived: %q", out)
	}
}

func TestEmit_PreservesOperatorPrecedenceParens(t *testing.T) {
	out := emit(t, "x = (1 + 2) * 3")
	if !strings.Contains(out, "(1 + 2) * 3") {
		t.Fatalf("got %q, expected parens preserved for precedence", out)
	}
}

func TestEmit_DropsRedundantParens(t *testing.T) {
	out := emit(t, "x = 1 + 2 * 3")
	if strings.Contains(out, "(") {
		t.Fatalf("got %q, expected no parens when already highest precedence first", out)
	}
}

func TestEmit_MethodStatementKeepsColonSyntax(t *testing.T) {
	out := emit(t, `
function Account:withdraw(amount: number)
  self.balance = self.balance - amount
end
`)
	if !strings.Contains(out, "function Account:withdraw(amount)") {
		t.Fatalf("got %q", out)
	}
}

func TestEmit_RoundTripsControlFlow(t *testing.T) {
	src := `
if x then
  y = 1
elseif z then
  y = 2
else
  y = 3
end
`
	out := emit(t, src)
	for _, want := range []string{"if x then", "elseif z then", "else", "end"} {
		if !strings.Contains(out, want) {
			t.Fatalf("got %q, missing %q", out, want)
		}
	}
}
