// Package descriptor defines the shader module intermediate representation
// that every compiler pass after P1 reads and/or extends: the custom-type
// catalog, the binding map, and the final Module record consumed by P6-P8
// and, ultimately, by the external dispatcher (spec §3, §6).
package descriptor

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
)

// Kind classifies a user-declared type by its role in the shader module.
type Kind int

const (
	// KindConfig is a uniform value bound once per dispatch.
	KindConfig Kind = iota
	// KindInputArray is an immutable ordered sequence read by the kernel.
	KindInputArray
	// KindOutputVec is an append-only sink written by the kernel; it gets an
	// atomic counter.
	KindOutputVec
	// KindOutputArray is an indexable sink written by the kernel.
	KindOutputArray
	// KindHelperType is a GPU-internal struct or alias with no binding.
	KindHelperType
	// KindArrayLengthVariable is a synthesised length constant, derived by
	// P5 rather than declared by the author.
	KindArrayLengthVariable
)

// String renders a Kind for diagnostics and test failure messages.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "Config"
	case KindInputArray:
		return "InputArray"
	case KindOutputVec:
		return "OutputVec"
	case KindOutputArray:
		return "OutputArray"
	case KindHelperType:
		return "HelperType"
	case KindArrayLengthVariable:
		return "ArrayLengthVariable"
	default:
		return "Unknown"
	}
}

// HasCounter reports whether a type of this kind requires an atomic counter
// binding (spec §3 data model table).
func (k Kind) HasCounter() bool { return k == KindOutputVec }

// HasLengthConstant reports whether a type of this kind gets a pipeline-
// overridable `{T}_*_ARRAY_LENGTH` constant.
func (k Kind) HasLengthConstant() bool {
	return k == KindInputArray || k == KindOutputVec || k == KindOutputArray
}

// CustomType is one author-declared type attached to the shader module.
// Identifier casing is computed once in P1 so downstream passes never
// re-derive it (spec §4.1 Policy).
type CustomType struct {
	Pos    lexer.Position
	Ident  string // original spelling, e.g. "CollisionResult"
	Lower  string // "collisionresult", used in variable names
	Upper  string // "COLLISIONRESULT", used in constant names
	Kind   Kind
	Source string // canonical source text, input to later textual rewrites

	// Decl is the original type declaration, retained so P6/P7/P8 can read
	// the real field list instead of re-parsing Source.
	Decl *ast.TypeDecl

	// RequiresCounter is set by P2 when a Push intrinsic targets this type;
	// it must only ever be true for KindOutputVec (spec §4.2 atomic-counter
	// detection).
	RequiresCounter bool
}

// CounterName is the atomic-counter variable name for an OutputVec type,
// e.g. "collisionresult_counter".
func (c *CustomType) CounterName() string { return c.Lower + "_counter" }

// ArrayName is the storage-buffer variable name for an array type, e.g.
// "radius_input_array" or "collisionresult_output_array".
func (c *CustomType) ArrayName() string {
	switch c.Kind {
	case KindInputArray:
		return c.Lower + "_input_array"
	default:
		return c.Lower + "_output_array"
	}
}

// LengthConstName is the pipeline-overridable constant name, e.g.
// "RADIUS_INPUT_ARRAY_LENGTH".
func (c *CustomType) LengthConstName() string {
	switch c.Kind {
	case KindInputArray:
		return c.Upper + "_INPUT_ARRAY_LENGTH"
	default:
		return c.Upper + "_OUTPUT_ARRAY_LENGTH"
	}
}

// Registry is the single authoritative, read-only-after-P1 catalog of
// custom types, keyed by identifier (spec Design Notes §9, "Custom-type
// registry"). Ordered is the source-order list; ByName is a lookup index
// only — nothing downstream may range over it to produce output, per the
// determinism rule in spec §5.
type Registry struct {
	Ordered []*CustomType
	ByName  map[string]*CustomType
}

// NewRegistry returns an empty registry ready for P1 to populate.
func NewRegistry() *Registry {
	return &Registry{ByName: make(map[string]*CustomType)}
}

// Add appends t to the registry. The caller (P1) is responsible for the
// DuplicateTypeName check before calling Add.
func (r *Registry) Add(t *CustomType) {
	r.Ordered = append(r.Ordered, t)
	r.ByName[t.Ident] = t
}

// Lookup returns the custom type declared under name, or nil.
func (r *Registry) Lookup(name string) *CustomType { return r.ByName[name] }

// BindingMap is the deterministic name -> binding-number assignment P5
// produces. Keys is the insertion-ordered key list; Values is the lookup —
// Go maps do not preserve iteration order, so every consumer that must
// preserve declaration order iterates Keys, never Values directly (spec §5).
type BindingMap struct {
	Keys   []string
	Values map[string]int
}

// NewBindingMap returns an empty binding map.
func NewBindingMap() *BindingMap {
	return &BindingMap{Values: make(map[string]int)}
}

// Assign appends name with the next sequential binding number and returns
// it. Numbering starts at 1, not 0: the original assigner pre-increments
// its counter before every insert (bevy_gpu_compute's
// types_for_rust_usage.rs), so binding 0 is always skipped.
func (m *BindingMap) Assign(name string) int {
	n := len(m.Keys) + 1
	m.Keys = append(m.Keys, name)
	m.Values[name] = n
	return n
}

// Get returns the binding number for name and whether it was found.
func (m *BindingMap) Get(name string) (int, bool) {
	n, ok := m.Values[name]
	return n, ok
}

// Dimensionality selects the fixed GPU workgroup-size declaration (spec §3).
type Dimensionality int

const (
	Dim1 Dimensionality = iota
	Dim2
	Dim3
)

// WorkgroupSize returns the fixed (x, y, z) workgroup dimensions for d.
func (d Dimensionality) WorkgroupSize() [3]int {
	switch d {
	case Dim2:
		return [3]int{8, 8, 1}
	case Dim3:
		return [3]int{4, 4, 4}
	default:
		return [3]int{64, 1, 1}
	}
}

// BuiltinVecType is the WGSL type of the @builtin(global_invocation_id)
// parameter main receives, independent of dimensionality — the dispatcher
// always presents a vec3<u32>, even for a 1-D or 2-D iteration space.
const BuiltinVecType = "vec3<u32>"

// Function is one shader function with its two parallel text forms, each
// emitted by a different pass (P6 for GPU, P7 for the CPU mirror).
type Function struct {
	Name       string
	GPUText    string
	MirrorText string
	IsMain     bool
}

// Const is a user-declared module-level scalar constant.
type Const struct {
	Name  string
	Type  string
	Value string
}

// Module is the shader module descriptor: the complete intermediate
// representation consumed by P6 (shader text), P7 (mirror), P8 (façades),
// and ultimately by the external dispatcher (spec §3, §6). Every sequence
// field is a slice — ranging over it never depends on Go map order.
type Module struct {
	Name           string
	Dimensionality Dimensionality

	Consts       []*Const
	HelperTypes  []*CustomType
	Configs      []*CustomType
	InputArrays  []*CustomType
	OutputArrays []*CustomType // OutputVec and OutputArray both live here, in declaration order

	HelperFuncs []*Function
	Main        *Function

	Bindings *BindingMap
	Imports  []string

	// SourceHash is sha256(input) — [EXPANSION], computed the way the
	// teacher's internal/cache hashes files. Nothing in the pipeline reads
	// it; the kernelc CLI decides whether to skip a recompile from
	// internal/cache's own hash store.
	SourceHash string
}
