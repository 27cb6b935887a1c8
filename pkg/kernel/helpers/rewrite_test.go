package helpers_test

import (
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
	"github.com/gaarutyunov/kernelc/pkg/kernel/helpers"
	"github.com/gaarutyunov/kernelc/pkg/kernel/parser"
	"github.com/gaarutyunov/kernelc/pkg/kernel/types"
)

func TestRewrite_RecognisesEachIntrinsic(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

@input_array
type Radius = f32;

@config
type Threshold struct {
    value f32,
}

@output_vec
type Hit struct {
    id u32,
}

@output_array
type Bucket struct {
    id u32,
}

func main(iter_pos IterPos) {
    let count = VecInput.VecLen[Radius]();
    let r = VecInput.VecVal[Radius](0u32);
    let t = ConfigInput.Get[Threshold]();
    let n = Output.Len[Hit]();
    let cap = Output.MaxLen[Hit]();
    Output.Set[Bucket](0u32, Bucket{id: 1u32});
    Output.Push[Hit](Hit{id: 0u32});
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	reg, _, err := types.Collect(f)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if err := helpers.Rewrite(f, reg); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	main := f.Items[4].Func
	stmts := main.Body.Stmts
	wantOps := []ast.IntrinsicOp{ast.OpVecLen, ast.OpVecVal, ast.OpConfigGet, ast.OpLen, ast.OpMaxLen}
	for i, want := range wantOps {
		in := stmts[i].VarDecl.Value.Left.Intrinsic
		if in == nil {
			t.Fatalf("stmt %d: expected an intrinsic, got none", i)
		}
		if in.Op != want {
			t.Errorf("stmt %d: got op %v, want %v", i, in.Op, want)
		}
	}

	set := stmts[len(stmts)-2].CallStmt.Intrinsic
	if set == nil || set.Op != ast.OpSet {
		t.Fatalf("expected a Set intrinsic, got %+v", stmts[len(stmts)-2].CallStmt)
	}

	push := stmts[len(stmts)-1].CallStmt.Intrinsic
	if push == nil || push.Op != ast.OpPush {
		t.Fatalf("expected a Push intrinsic, got %+v", stmts[len(stmts)-1].CallStmt)
	}

	hit := reg.Lookup("Hit")
	if !hit.RequiresCounter {
		t.Error("Push should mark its target type RequiresCounter")
	}
}

func TestRewrite_PushOutsideMainRejected(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

@output_vec
type Hit struct {
    id u32,
}

func record(id u32) {
    Output.Push[Hit](Hit{id: id});
}

func main(iter_pos IterPos) {
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	reg, _, err := types.Collect(f)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	err = helpers.Rewrite(f, reg)
	if _, ok := err.(*diag.HelperOutsideMain); !ok {
		t.Fatalf("got error %v (%T), want *diag.HelperOutsideMain", err, err)
	}
}

func TestRewrite_KindMismatchRejected(t *testing.T) {
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
    let n = VecInput.VecLen[Threshold]();
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	reg, _, err := types.Collect(f)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	err = helpers.Rewrite(f, reg)
	if _, ok := err.(*diag.KindMismatch); !ok {
		t.Fatalf("got error %v (%T), want *diag.KindMismatch", err, err)
	}
}

func TestRewrite_UnknownTargetTypeRejected(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

func main(iter_pos IterPos) {
    let n = VecInput.VecLen[Ghost]();
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	reg, _, err := types.Collect(f)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	err = helpers.Rewrite(f, reg)
	if _, ok := err.(*diag.UnsupportedTypeName); !ok {
		t.Fatalf("got error %v (%T), want *diag.UnsupportedTypeName", err, err)
	}
}
