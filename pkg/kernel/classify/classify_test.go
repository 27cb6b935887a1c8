package classify_test

import (
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/classify"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
	"github.com/gaarutyunov/kernelc/pkg/kernel/parser"
)

func mustParse(t *testing.T, src string) *parser.Parser {
	t.Helper()
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	return p
}

func TestClassify_SplitsMainFromHelpers(t *testing.T) {
	p := mustParse(t, "")
	f, err := p.ParseString("m.kernel", `package m

func helper(x f32) f32 {
    return x;
}

func main(iter_pos IterPos) {
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	res, err := classify.Classify(f, descriptor.NewRegistry())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Main == nil || res.Main.Name != "main" {
		t.Fatalf("Main not found: %+v", res.Main)
	}
	if len(res.HelperFuncs) != 1 || res.HelperFuncs[0].Name != "helper" {
		t.Fatalf("got helpers %+v, want exactly [helper]", res.HelperFuncs)
	}
}

func TestClassify_MissingMain(t *testing.T) {
	p := mustParse(t, "")
	f, err := p.ParseString("m.kernel", `package m

func helper(x f32) f32 {
    return x;
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, err = classify.Classify(f, descriptor.NewRegistry())
	if err == nil {
		t.Fatal("expected MissingMain, got nil")
	}
	if _, ok := err.(*diag.MissingMain); !ok {
		t.Fatalf("got error type %T, want *diag.MissingMain", err)
	}
}

func TestClassify_WrongParamNameRejected(t *testing.T) {
	p := mustParse(t, "")
	f, err := p.ParseString("m.kernel", `package m

func main(pos IterPos) {
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, err = classify.Classify(f, descriptor.NewRegistry())
	if _, ok := err.(*diag.MainFunctionShape); !ok {
		t.Fatalf("got error %v (%T), want *diag.MainFunctionShape", err, err)
	}
}

func TestClassify_MainWithReturnTypeRejected(t *testing.T) {
	p := mustParse(t, "")
	f, err := p.ParseString("m.kernel", `package m

func main(iter_pos IterPos) bool {
    return true;
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, err = classify.Classify(f, descriptor.NewRegistry())
	if _, ok := err.(*diag.MainFunctionShape); !ok {
		t.Fatalf("got error %v (%T), want *diag.MainFunctionShape", err, err)
	}
}

func TestClassify_AssignmentToIterPosRejected(t *testing.T) {
	p := mustParse(t, "")
	f, err := p.ParseString("m.kernel", `package m

func main(iter_pos IterPos) {
    iter_pos = iter_pos;
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, err = classify.Classify(f, descriptor.NewRegistry())
	if _, ok := err.(*diag.MainFunctionShape); !ok {
		t.Fatalf("got error %v (%T), want *diag.MainFunctionShape", err, err)
	}
}

func TestClassify_AssignmentToIterPosInsideIfRejected(t *testing.T) {
	p := mustParse(t, "")
	f, err := p.ParseString("m.kernel", `package m

func main(iter_pos IterPos) {
    if true {
        iter_pos = iter_pos;
    }
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, err = classify.Classify(f, descriptor.NewRegistry())
	if _, ok := err.(*diag.MainFunctionShape); !ok {
		t.Fatalf("got error %v (%T), want *diag.MainFunctionShape", err, err)
	}
}

func TestClassify_DuplicateMainRejected(t *testing.T) {
	p := mustParse(t, "")
	f, err := p.ParseString("m.kernel", `package m

func main(iter_pos IterPos) {
}

func main(iter_pos IterPos) {
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, err = classify.Classify(f, descriptor.NewRegistry())
	if _, ok := err.(*diag.MainFunctionShape); !ok {
		t.Fatalf("got error %v (%T), want *diag.MainFunctionShape", err, err)
	}
}
