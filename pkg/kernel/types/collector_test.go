package types_test

import (
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
	"github.com/gaarutyunov/kernelc/pkg/kernel/parser"
	"github.com/gaarutyunov/kernelc/pkg/kernel/types"
)

func mustParse(t *testing.T, src string) *descriptor.Registry {
	t.Helper()
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	reg, _, err := types.Collect(f)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return reg
}

func TestCollect_ClassifiesEachMarker(t *testing.T) {
	reg := mustParse(t, `package m

@config
type Threshold struct {
    value f32,
}

@input_array
type Radius = f32;

@output_vec
type Hit struct {
    id u32,
}

@output_array
type Bucket struct {
    id u32,
}

type Helper struct {
    id u32,
}
`)
	cases := []struct {
		name string
		kind descriptor.Kind
	}{
		{"Threshold", descriptor.KindConfig},
		{"Radius", descriptor.KindInputArray},
		{"Hit", descriptor.KindOutputVec},
		{"Bucket", descriptor.KindOutputArray},
		{"Helper", descriptor.KindHelperType},
	}
	for _, c := range cases {
		ct := reg.Lookup(c.name)
		if ct == nil {
			t.Fatalf("type %q not found in registry", c.name)
		}
		if ct.Kind != c.kind {
			t.Errorf("%s: got kind %v, want %v", c.name, ct.Kind, c.kind)
		}
	}
}

func TestCollect_ComputesLowerAndUpperCasing(t *testing.T) {
	reg := mustParse(t, `package m

@config
type Threshold struct {
    value f32,
}
`)
	ct := reg.Lookup("Threshold")
	if ct.Lower != "threshold" {
		t.Errorf("Lower: got %q, want %q", ct.Lower, "threshold")
	}
	if ct.Upper != "THRESHOLD" {
		t.Errorf("Upper: got %q, want %q", ct.Upper, "THRESHOLD")
	}
}

func TestCollect_DuplicateTypeNameRejected(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

type Radius = f32;
type Radius = u32;
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, _, err = types.Collect(f)
	if _, ok := err.(*diag.DuplicateTypeName); !ok {
		t.Fatalf("got error %v (%T), want *diag.DuplicateTypeName", err, err)
	}
}

func TestCollect_InvalidMarkerRejected(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

@bogus
type Radius = f32;
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, _, err = types.Collect(f)
	if _, ok := err.(*diag.InvalidMarker); !ok {
		t.Fatalf("got error %v (%T), want *diag.InvalidMarker", err, err)
	}
}

func TestCollect_ConstDeclCaptured(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

const MaxHits: u32 = 16;
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	_, consts, err := types.Collect(f)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(consts) != 1 {
		t.Fatalf("got %d consts, want 1", len(consts))
	}
	if consts[0].Name != "MaxHits" || consts[0].Value != "16" {
		t.Errorf("got const %+v, want Name=MaxHits Value=16", consts[0])
	}
}
