package binding_test

import (
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/binding"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

func ct(ident string, k descriptor.Kind) *descriptor.CustomType {
	return &descriptor.CustomType{Ident: ident, Lower: lower(ident), Upper: upper(ident), Kind: k}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func TestAssign_OrderIsConfigsThenInputsThenOutputs(t *testing.T) {
	reg := descriptor.NewRegistry()
	reg.Add(ct("Threshold", descriptor.KindConfig))
	reg.Add(ct("Radius", descriptor.KindInputArray))
	out := ct("CollisionResult", descriptor.KindOutputVec)
	out.RequiresCounter = true
	reg.Add(out)

	m := &descriptor.Module{}
	if err := binding.Assign(m, reg, 0); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	want := []string{"Threshold", "radius_input_array", "collisionresult_output_array", "collisionresult_counter"}
	if len(m.Bindings.Keys) != len(want) {
		t.Fatalf("got keys %v, want %v", m.Bindings.Keys, want)
	}
	for i, k := range want {
		if m.Bindings.Keys[i] != k {
			t.Errorf("key %d: got %q, want %q", i, m.Bindings.Keys[i], k)
		}
		if n, ok := m.Bindings.Get(k); !ok || n != i+1 {
			t.Errorf("binding number for %q: got %d,%v, want %d,true", k, n, ok, i+1)
		}
	}
}

func TestAssign_OutputArrayWithoutCounterGetsNoCounterBinding(t *testing.T) {
	reg := descriptor.NewRegistry()
	reg.Add(ct("Bucket", descriptor.KindOutputArray))

	m := &descriptor.Module{}
	if err := binding.Assign(m, reg, 0); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(m.Bindings.Keys) != 1 {
		t.Fatalf("got keys %v, want exactly one binding", m.Bindings.Keys)
	}
}

func TestAssign_TooManyArraysPerKind(t *testing.T) {
	reg := descriptor.NewRegistry()
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		reg.Add(ct(name, descriptor.KindInputArray))
	}

	m := &descriptor.Module{}
	err := binding.Assign(m, reg, 6)
	if err == nil {
		t.Fatal("expected TooManyArrays, got nil")
	}
	if _, ok := err.(*diag.TooManyArrays); !ok {
		t.Fatalf("got error type %T, want *diag.TooManyArrays", err)
	}
}

func TestAssign_ZeroMaxPerKindFallsBackToDefault(t *testing.T) {
	reg := descriptor.NewRegistry()
	for i := 0; i < binding.DefaultMaxArraysPerKind; i++ {
		reg.Add(ct(string(rune('A'+i)), descriptor.KindConfig))
	}

	m := &descriptor.Module{}
	if err := binding.Assign(m, reg, 0); err != nil {
		t.Fatalf("Assign with exactly the default ceiling should succeed: %v", err)
	}
}

func TestAssign_HelperTypesAreNotBound(t *testing.T) {
	reg := descriptor.NewRegistry()
	reg.Add(ct("Radius", descriptor.KindHelperType))

	m := &descriptor.Module{}
	if err := binding.Assign(m, reg, 0); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(m.Bindings.Keys) != 0 {
		t.Errorf("helper types must not receive bindings, got %v", m.Bindings.Keys)
	}
	if len(m.HelperTypes) != 1 {
		t.Errorf("got %d helper types, want 1", len(m.HelperTypes))
	}
}
