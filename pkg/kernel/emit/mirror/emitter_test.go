package mirror_test

import (
	"strings"
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/compiler"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
)

const source = `package particle_collision

@input_array
type Radius = f32;

@config
type Threshold struct {
    value f32,
}

@output_vec
type CollisionResult struct {
    entity1 u32,
    entity2 u32,
}

func main(iter_pos IterPos) {
    let count = VecInput.VecLen[Radius]();
    let a = iter_pos.x;
    if a >= count {
        return;
    }
}
`

func TestEmit_MirrorDeclaresExportedTypesAndMain(t *testing.T) {
	p, err := compiler.New(nil)
	if err != nil {
		t.Fatalf("compiler.New: %v", err)
	}
	result, err := p.Compile("particle.kernel", source, descriptor.Dim1)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	mirror := result.MirrorText
	cases := []struct {
		name, want string
	}{
		{"package clause", "package mirror"},
		{"config struct exported", "type Threshold struct"},
		{"config field exported", "Value float32"},
		{"output struct exported", "type CollisionResult struct"},
		{"output fields exported", "Entity1 uint32"},
		{"main function present", "func Main("},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !strings.Contains(mirror, c.want) {
				t.Errorf("mirror text missing %q\n---\n%s", c.want, mirror)
			}
		})
	}
}
