package compiler_test

import (
	"strings"
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/compiler"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
)

const particleSource = `package particle_collision

use "kernelc/prelude";

@input_array
type Radius = f32;

@output_vec
type CollisionResult struct {
    entity1 u32,
    entity2 u32,
}

@config
type Threshold struct {
    value f32,
}

func overlaps(a_radius f32, b_radius f32, dist f32) bool {
    return dist < (a_radius + b_radius);
}

func main(iter_pos IterPos) {
    let count = VecInput.VecLen[Radius]();
    let a = iter_pos.x;
    if a >= count {
        return;
    }

    let threshold = ConfigInput.Get[Threshold]();
    let a_radius = VecInput.VecVal[Radius](a);

    for let b = a + 1u32; b < count; b += 1u32 {
        let b_radius = VecInput.VecVal[Radius](b);
        let dist = a_radius + b_radius - threshold.value;
        if dist < 0.0 {
            Output.Push[CollisionResult](CollisionResult{entity1: a, entity2: b});
        }
    }
}
`

func mustPipeline(t *testing.T) *compiler.Pipeline {
	t.Helper()
	p, err := compiler.New(nil)
	if err != nil {
		t.Fatalf("compiler.New: %v", err)
	}
	return p
}

// scenario 1, 2, 3, 4, 6 from spec §8's literal end-to-end list, checked
// against a single compiled module since this one source exercises all of
// them at once (one input array, one output-vec with a struct payload, a
// VecLen call, a Push call, a 1-D iteration space).
func TestCompile_ParticleCollision(t *testing.T) {
	p := mustPipeline(t)
	result, err := p.Compile("particle.kernel", particleSource, descriptor.Dim1)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	shader := result.ShaderText
	cases := []struct {
		name string
		want string
	}{
		{"input array alias", "alias Radius = f32;"},
		{"input length override constant", "RADIUS_INPUT_ARRAY_LENGTH"},
		{"input array binding", "radius_input_array: array<Radius>"},
		{"output struct declaration", "struct CollisionResult"},
		{"output length override constant", "COLLISIONRESULT_OUTPUT_ARRAY_LENGTH"},
		{"atomic counter variable", "collisionresult_counter"},
		{"workgroup size for 1-D dispatch", "@workgroup_size(64, 1, 1)"},
		{"global invocation id builtin", "@builtin(global_invocation_id)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !strings.Contains(shader, c.want) {
				t.Errorf("shader text missing %q\n---\n%s", c.want, shader)
			}
		})
	}
}

// scenario 5: the same Push call inside a non-main helper is a compile-time
// HelperOutsideMain failure.
func TestCompile_PushOutsideMain_Rejected(t *testing.T) {
	src := `package bad

@output_vec
type Hit struct {
    id u32,
}

func record(id u32) {
    Output.Push[Hit](Hit{id: id});
}

func main(iter_pos IterPos) {
}
`
	p := mustPipeline(t)
	if _, err := p.Compile("bad.kernel", src, descriptor.Dim1); err == nil {
		t.Fatal("expected HelperOutsideMain, got nil error")
	}
}

// boundary behaviour: a 7th array of one kind is rejected with
// TooManyArrays.
func TestCompile_TooManyArraysPerKind(t *testing.T) {
	var b strings.Builder
	b.WriteString("package too_many\n\n")
	for i := 0; i < 7; i++ {
		b.WriteString(typeAliasN(i))
	}
	b.WriteString("func main(iter_pos IterPos) {\n}\n")

	p := mustPipeline(t)
	if _, err := p.Compile("too_many.kernel", b.String(), descriptor.Dim1); err == nil {
		t.Fatal("expected TooManyArrays, got nil error")
	}
}

func typeAliasN(i int) string {
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	return "@input_array\ntype " + names[i] + " = f32;\n\n"
}

// boundary behaviour: a module with no declared arrays and an empty main
// body compiles successfully.
func TestCompile_EmptyMainNoArrays(t *testing.T) {
	src := `package empty

func main(iter_pos IterPos) {
}
`
	p := mustPipeline(t)
	if _, err := p.Compile("empty.kernel", src, descriptor.Dim1); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

// scenario 6: a 2-D iteration space with no config type compiles and
// produces the 8x8x1 workgroup size.
func TestCompile_2DWorkgroupSize(t *testing.T) {
	src := `package grid

func main(iter_pos IterPos) {
}
`
	p := mustPipeline(t)
	result, err := p.Compile("grid.kernel", src, descriptor.Dim2)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(result.ShaderText, "@workgroup_size(8, 8, 1)") {
		t.Errorf("shader text missing 2-D workgroup size\n---\n%s", result.ShaderText)
	}
}
