// Package marshal implements the blanket byte-serialization path the
// generated façades (pkg/kernel/emit/facade) use to move typed CPU values
// across the host/GPU boundary (spec §6, §4.8): little-endian, trivially
// copyable, tightly packed, no length prefixes.
//
// Grounded on guix's WASM-only pkg/runtime/gpu_buffer.go
// (float32SliceToBytes et al.) and gogpu-gg's GPUSegment/GPUFineConfig
// "must match the WGSL struct" layout convention (backend/wgpu/gpu_fine.go),
// generalized into a single reflect-driven encoder/decoder and stripped of
// the js.Value/WASM plumbing, which is out of this spec's scope (§1).
package marshal

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
)

// ErrBoolField is returned when a value being marshalled across the
// host/GPU boundary contains a bool field; bool is not transferable on the
// boundary (spec §6).
type ErrBoolField struct {
	Field string
}

func (e *ErrBoolField) Error() string {
	return fmt.Sprintf("field %q: bool is not transferable across the host/GPU boundary", e.Field)
}

// Bytes encodes v (a scalar, a POD struct, or a slice/array of either) to a
// tightly-packed little-endian byte slice.
func Bytes(v interface{}) ([]byte, error) {
	if err := checkNoBool(reflect.TypeOf(v), ""); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read decodes a tightly-packed little-endian byte slice into out, which
// must be a pointer to a scalar, a POD struct, or a slice/array of either.
func Read(data []byte, out interface{}) error {
	if err := checkNoBool(reflect.TypeOf(out), ""); err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, out)
}

// checkNoBool walks t (dereferencing pointers, slices, and arrays) and
// fails if a bool field is found anywhere in the structure.
func checkNoBool(t reflect.Type, path string) error {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array:
		return checkNoBool(t.Elem(), path)
	case reflect.Bool:
		return &ErrBoolField{Field: path}
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			fieldPath := f.Name
			if path != "" {
				fieldPath = path + "." + f.Name
			}
			if err := checkNoBool(f.Type, fieldPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// OutputReadback is the shape an output array arrives in from the device:
// a counter of items actually written, followed by at most MaxLength items
// (spec §6: "Output arrays are received as a counter ... followed by at
// most max_length items").
type OutputReadback struct {
	Count     uint32
	MaxLength uint32
	Data      []byte
}

// Items decodes the written prefix of the readback buffer into a slice of
// T, using elemSize bytes per element (supplied by the caller). When out is
// a pointer to a slice, the slice is replaced by one of exactly the decoded
// length; a slice passed directly is decoded into as it is.
func (r OutputReadback) Items(elemSize int, out interface{}) error {
	n := int(r.Count)
	if n > int(r.MaxLength) {
		n = int(r.MaxLength)
	}
	if rv := reflect.ValueOf(out); rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Slice {
		rv.Elem().Set(reflect.MakeSlice(rv.Elem().Type(), n, n))
	}
	return Read(r.Data[:n*elemSize], out)
}
