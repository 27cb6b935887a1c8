// Package mirror implements P7: it renders a CPU-side Go module parallel to
// the GPU shader, used as the test oracle (spec §4.7). Grounded on guix's
// codegen package for the shared rendering shape, adapted to Go as the
// target language instead of WGSL.
package mirror

import "github.com/gaarutyunov/kernelc/pkg/kernel/ast"

// goScalarTable maps the dialect's built-in scalar/vector/matrix names onto
// the Go types the mirror uses to stay bit-compatible with the GPU layout
// (spec §6: scalars are 4 bytes, f16 is a 2-byte host-opaque wrapper).
var goScalarTable = map[string]string{
	"f32": "float32", "i32": "int32", "u32": "uint32", "bool": "bool", "f16": "PodF16",

	"Vec2I32": "Vec2I32", "Vec2U32": "Vec2U32", "Vec2F32": "Vec2F32", "Vec2F16": "Vec2F16", "Vec2Bool": "Vec2Bool",
	"Vec3I32": "Vec3I32", "Vec3U32": "Vec3U32", "Vec3F32": "Vec3F32", "Vec3F16": "Vec3F16", "Vec3Bool": "Vec3Bool",
	"Vec4I32": "Vec4I32", "Vec4U32": "Vec4U32", "Vec4F32": "Vec4F32", "Vec4F16": "Vec4F16", "Vec4Bool": "Vec4Bool",

	"Mat2x2F32": "Mat2x2F32", "Mat2x3F32": "Mat2x3F32", "Mat2x4F32": "Mat2x4F32",
	"Mat3x2F32": "Mat3x2F32", "Mat3x3F32": "Mat3x3F32", "Mat3x4F32": "Mat3x4F32",
	"Mat4x2F32": "Mat4x2F32", "Mat4x3F32": "Mat4x3F32", "Mat4x4F32": "Mat4x4F32",
}

// GoTypeName renders t as a Go type. User-defined struct/alias names pass
// through unchanged: the mirror's own generated types file declares them
// under the same identifier (spec §4.7, "same user types").
func GoTypeName(t *ast.Type) string {
	switch {
	case t.Array != nil:
		return "[" + t.Array.Len + "]" + GoTypeName(t.Array.Elem)
	case t.Slice != nil:
		return "[]" + GoTypeName(t.Slice.Elem)
	case t.Scalar != nil:
		if goType, ok := goScalarTable[t.Scalar.Name]; ok {
			return goType
		}
		return t.Scalar.Name
	}
	return ""
}
