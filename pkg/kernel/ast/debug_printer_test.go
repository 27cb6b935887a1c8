package ast_test

import (
	"strings"
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/parser"
)

func TestDebugPrinter_RendersModuleStructure(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

@config
type Threshold struct {
    value f32,
}

func main(iter_pos IterPos) {
    let a = iter_pos.x;
    if a > 0u32 {
        return;
    }
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	printer := ast.NewDebugPrinter()
	f.Accept(printer)
	out := printer.String()

	for _, want := range []string{
		"File: package m",
		"TypeDecl: Threshold @config",
		"Struct:",
		"Field: value",
		"Func: main(iter_pos)",
		"VarDecl: a",
		"If:",
		"Return",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q\n---\n%s", want, out)
		}
	}
}

func TestDebugPrinter_EmptyModule(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package empty

func main(iter_pos IterPos) {
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	printer := ast.NewDebugPrinter()
	f.Accept(printer)
	if !strings.Contains(printer.String(), "File: package empty") {
		t.Errorf("got %q", printer.String())
	}
}
