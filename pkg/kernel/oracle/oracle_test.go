package oracle_test

import (
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/compiler"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/oracle"
)

const source = `package particle_collision

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

// referenceCollisions is a plain Go re-implementation of main's all-pairs
// scan, independent of the interpreter, so the oracle test compares two
// genuinely separate computations of the same rule rather than checking the
// interpreter against itself.
func referenceCollisions(radii []float64, threshold float64) [][2]int {
	var out [][2]int
	for a := 0; a < len(radii); a++ {
		for b := a + 1; b < len(radii); b++ {
			if radii[a]+radii[b]-threshold < 0 {
				out = append(out, [2]int{a, b})
			}
		}
	}
	return out
}

// TestOracle_MatchesReferenceAllPairsScan exercises the round-trip/oracle
// property (spec §8): running Main through the interpreter once per iter_pos
// across the dispatch's 1-D space reproduces the same collisions a
// reference all-pairs scan finds, given the same radii and threshold.
func TestOracle_MatchesReferenceAllPairsScan(t *testing.T) {
	p, err := compiler.New(nil)
	if err != nil {
		t.Fatalf("compiler.New: %v", err)
	}
	result, err := p.Compile("particle.kernel", source, descriptor.Dim1)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	radii := []float64{1.0, 1.0, 10.0, 2.5}
	threshold := 0.5

	radiiValues := make([]interface{}, len(radii))
	for i, r := range radii {
		radiiValues[i] = r
	}
	configs := map[string]interface{}{"Threshold": map[string]interface{}{"value": threshold}}
	inputs := map[string][]interface{}{"Radius": radiiValues}
	maxLens := map[string]int{"CollisionResult": 16}

	var got [][2]int
	for i := range radii {
		inv := oracle.NewInvocation(result.Module, [3]uint32{uint32(i), 0, 0}, configs, inputs, maxLens)
		if err := oracle.Run(result.MainFunc, result.Registry, inv); err != nil {
			t.Fatalf("oracle.Run at iter_pos.x=%d: %v", i, err)
		}
		for _, v := range inv.Outputs["CollisionResult"].Values {
			m := v.(map[string]interface{})
			got = append(got, [2]int{int(m["entity1"].(float64)), int(m["entity2"].(float64))})
		}
	}

	want := referenceCollisions(radii, threshold)
	if len(got) != len(want) {
		t.Fatalf("got %d collisions %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collision %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// TestOracle_MaxLenCapsOutput checks the output sink never exceeds MaxLen,
// mirroring the atomic-counter-bounded Push behaviour the shader emits.
func TestOracle_MaxLenCapsOutput(t *testing.T) {
	p, err := compiler.New(nil)
	if err != nil {
		t.Fatalf("compiler.New: %v", err)
	}
	result, err := p.Compile("particle.kernel", source, descriptor.Dim1)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	radii := make([]interface{}, 6)
	for i := range radii {
		radii[i] = 0.0
	}
	configs := map[string]interface{}{"Threshold": map[string]interface{}{"value": 100.0}}
	inputs := map[string][]interface{}{"Radius": radii}
	maxLens := map[string]int{"CollisionResult": 2}

	inv := oracle.NewInvocation(result.Module, [3]uint32{0, 0, 0}, configs, inputs, maxLens)
	if err := oracle.Run(result.MainFunc, result.Registry, inv); err != nil {
		t.Fatalf("oracle.Run: %v", err)
	}
	if got := len(inv.Outputs["CollisionResult"].Values); got > 2 {
		t.Errorf("output sink exceeded MaxLen: got %d values, want <= 2", got)
	}
}
