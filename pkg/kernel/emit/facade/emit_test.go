package facade_test

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
}
`

func TestEmit_FacadeBuildersAndPhantomTag(t *testing.T) {
	p, err := compiler.New(nil)
	if err != nil {
		t.Fatalf("compiler.New: %v", err)
	}
	result, err := p.Compile("particle.kernel", source, descriptor.Dim1)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	facade := result.FacadeText
	cases := []struct {
		name, want string
	}{
		{"phantom tag type", "type ModuleTag struct{}"},
		{"config setter", "func (c *ConfigInput) SetThreshold(v Threshold) *ConfigInput"},
		{"config bytes helper", "func (c *ConfigInput) ThresholdBytes() ([]byte, error)"},
		{"input setter", "func (d *InputData) SetRadius(v []Radius) *InputData"},
		{"output getter", "func (d *OutputData) GetCollisionResult() ([]CollisionResult, bool)"},
		{"output readback setter", "func (d *OutputData) SetCollisionResultFromReadback(r marshal.OutputReadback, elemSize int) error"},
		{"max length setter", "func (l *MaxOutputLengths) SetCollisionResultLength(n uint32) *MaxOutputLengths"},
		{"marshal import", `import "github.com/gaarutyunov/kernelc/pkg/kernel/marshal"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !strings.Contains(facade, c.want) {
				t.Errorf("facade text missing %q\n---\n%s", c.want, facade)
			}
		})
	}
}
