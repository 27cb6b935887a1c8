package marshal_test

import (
	"testing"

	"github.com/gaarutyunov/kernelc/pkg/kernel/marshal"
)

type hit struct {
	Entity1 uint32
	Entity2 uint32
}

func TestBytesAndRead_RoundTrip(t *testing.T) {
	in := hit{Entity1: 3, Entity2: 7}
	data, err := marshal.Bytes(in)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("got %d bytes, want 8 (two uint32 fields)", len(data))
	}

	var out hit
	if err := marshal.Read(data, &out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestBytes_SliceRoundTrip(t *testing.T) {
	in := []float32{1, 2, 3}
	data, err := marshal.Bytes(in)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(data) != 12 {
		t.Fatalf("got %d bytes, want 12 (three float32 values)", len(data))
	}

	out := make([]float32, 3)
	if err := marshal.Read(data, out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i, v := range in {
		if out[i] != v {
			t.Errorf("index %d: got %v, want %v", i, out[i], v)
		}
	}
}

func TestBytes_RejectsBoolField(t *testing.T) {
	type withBool struct {
		Flag bool
	}
	if _, err := marshal.Bytes(withBool{Flag: true}); err == nil {
		t.Fatal("expected ErrBoolField, got nil")
	} else if _, ok := err.(*marshal.ErrBoolField); !ok {
		t.Fatalf("got error %v (%T), want *marshal.ErrBoolField", err, err)
	}
}

func TestOutputReadback_ItemsDecodesOnlyWrittenPrefix(t *testing.T) {
	all := []hit{{1, 2}, {3, 4}, {5, 6}}
	data, err := marshal.Bytes(all)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	r := marshal.OutputReadback{Count: 2, MaxLength: 3, Data: data}

	out := make([]hit, 2)
	if err := r.Items(8, out); err != nil {
		t.Fatalf("Items: %v", err)
	}
	if out[0] != all[0] || out[1] != all[1] {
		t.Errorf("got %+v, want first two of %+v", out, all)
	}
}

func TestOutputReadback_ItemsCapsAtMaxLength(t *testing.T) {
	all := []hit{{1, 2}, {3, 4}, {5, 6}}
	data, err := marshal.Bytes(all)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	// Count exceeds MaxLength: the device over-reported, so Items must clamp
	// to MaxLength rather than read past the buffer the host allocated.
	r := marshal.OutputReadback{Count: 10, MaxLength: 3, Data: data}

	out := make([]hit, 3)
	if err := r.Items(8, out); err != nil {
		t.Fatalf("Items: %v", err)
	}
	for i := range all {
		if out[i] != all[i] {
			t.Errorf("index %d: got %+v, want %+v", i, out[i], all[i])
		}
	}
}
