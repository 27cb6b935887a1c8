package lower_test

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
	"github.com/gaarutyunov/kernelc/pkg/kernel/lower"
	"github.com/gaarutyunov/kernelc/pkg/kernel/parser"
)

func TestSplitNumericSuffix(t *testing.T) {
	cases := []struct {
		raw, value, suffix string
		wantErr            bool
	}{
		{"1u32", "1", "u32", false},
		{"3.4_f32", "3.4", "f32", false},
		{"42", "42", "", false},
		{"0.5", "0.5", "", false},
		{"7bogus", "", "", true},
	}
	for _, c := range cases {
		value, suffix, err := lower.SplitNumericSuffix(c.raw, lexer.Position{})
		if c.wantErr {
			if _, ok := err.(*diag.UnsupportedNumericSuffix); !ok {
				t.Errorf("%q: got err %v (%T), want *diag.UnsupportedNumericSuffix", c.raw, err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", c.raw, err)
			continue
		}
		if value != c.value || suffix != c.suffix {
			t.Errorf("%q: got (%q,%q), want (%q,%q)", c.raw, value, suffix, c.value, c.suffix)
		}
	}
}

func TestGPULiteral(t *testing.T) {
	cases := []struct{ raw, want string }{
		{"1u32", "u32(1)"},
		{"3.4_f32", "f32(3.4)"},
		{"42", "42"},
	}
	for _, c := range cases {
		got, err := lower.GPULiteral(c.raw)
		if err != nil {
			t.Fatalf("%q: %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestGPUTypeName_BuiltinAndUserDefined(t *testing.T) {
	reg := descriptor.NewRegistry()
	reg.Add(&descriptor.CustomType{Ident: "Radius", Kind: descriptor.KindHelperType})

	f32 := &ast.Type{Scalar: &ast.ScalarType{Name: "f32"}}
	if got, err := lower.GPUTypeName(f32, reg); err != nil || got != "f32" {
		t.Errorf("f32: got %q, %v", got, err)
	}

	vec := &ast.Type{Scalar: &ast.ScalarType{Name: "Vec3F32"}}
	if got, err := lower.GPUTypeName(vec, reg); err != nil || got != "vec3<f32>" {
		t.Errorf("Vec3F32: got %q, %v", got, err)
	}

	radius := &ast.Type{Scalar: &ast.ScalarType{Name: "Radius"}}
	if got, err := lower.GPUTypeName(radius, reg); err != nil || got != "Radius" {
		t.Errorf("Radius: got %q, %v", got, err)
	}

	unknown := &ast.Type{Scalar: &ast.ScalarType{Name: "Ghost"}}
	if _, err := lower.GPUTypeName(unknown, reg); err == nil {
		t.Error("expected UnsupportedTypeName for an unresolved scalar name")
	}

	arr := &ast.Type{Array: &ast.ArrayType{Elem: f32, Len: "4"}}
	if got, err := lower.GPUTypeName(arr, reg); err != nil || got != "array<f32, 4>" {
		t.Errorf("array type: got %q, %v", got, err)
	}
}

func TestHostTypeName(t *testing.T) {
	f32 := &ast.Type{Scalar: &ast.ScalarType{Name: "f32"}}
	arr := &ast.Type{Array: &ast.ArrayType{Elem: f32, Len: "4"}}
	if got := lower.HostTypeName(arr); got != "[4]f32" {
		t.Errorf("array: got %q, want %q", got, "[4]f32")
	}
	slice := &ast.Type{Slice: &ast.SliceType{Elem: f32}}
	if got := lower.HostTypeName(slice); got != "[]f32" {
		t.Errorf("slice: got %q, want %q", got, "[]f32")
	}
}

func TestValidate_RejectsMatchAndLoopAndRangeFor(t *testing.T) {
	cases := []struct {
		name, src string
	}{
		{"match", `package m
func main(iter_pos IterPos) {
    match iter_pos.x {
    }
}
`},
		{"loop", `package m
func main(iter_pos IterPos) {
    loop {
    }
}
`},
		{"range-for", `package m
func main(iter_pos IterPos) {
    for x := range iter_pos {
    }
}
`},
	}
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := p.ParseString("m.kernel", c.src)
			if err != nil {
				t.Fatalf("ParseString: %v", err)
			}
			err = lower.Validate(f)
			if _, ok := err.(*diag.UnsupportedConstruct); !ok {
				t.Fatalf("got error %v (%T), want *diag.UnsupportedConstruct", err, err)
			}
		})
	}
}

func TestValidate_AcceptsCStyleForAndIf(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	f, err := p.ParseString("m.kernel", `package m

func main(iter_pos IterPos) {
    let a = iter_pos.x;
    if a > 0u32 {
        for let b = 0u32; b < a; b += 1u32 {
        }
    }
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if err := lower.Validate(f); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
