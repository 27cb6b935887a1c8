// Package lower implements P3, the syntax lowerer. It validates that a
// module contains nothing the rest of the pipeline cannot lower (rejecting
// every construct with no GPU analogue, spec §4.3), and exposes the
// type-name and numeric-literal rewrite tables P6 (GPU text) renders from.
// P7 (CPU mirror text) keeps its own Go type table and suffix splitter in
// pkg/kernel/emit/mirror and does not call into this package.
//
// Design choice (documented in DESIGN.md): because the dialect's AST already
// represents types and literals structurally (ast.Type is a tagged union,
// not a bare string; ast.CompositeLit already carries ordered fields), most
// of what spec.md's original lowering table calls "AST rewrites" reduce here
// to pure translation functions invoked by the emitters, rather than a
// separate pass that mutates the tree into new syntax — there is no
// intermediate syntax to mutate into, unlike a token-stream-based macro.
// Only the constructs with no structural representation at all (numeric
// suffixes, which live inside a single literal token) need the textual,
// token-aware handling spec's Design Notes §9 describes; that lives in
// SplitNumericSuffix/GPULiteral below.
package lower

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

// scalarTable maps the dialect's built-in scalar/vector/matrix names to
// their WGSL spelling (spec §4.3 type map). GPUTypeName looks up any name
// not in this table in the custom-type registry and reports
// UnsupportedTypeName when it is not there either.
var scalarTable = map[string]string{
	"f32": "f32", "i32": "i32", "u32": "u32", "bool": "bool", "f16": "f16",

	"Vec2I32": "vec2<i32>", "Vec2U32": "vec2<u32>", "Vec2F32": "vec2<f32>", "Vec2F16": "vec2<f16>", "Vec2Bool": "vec2<bool>",
	"Vec3I32": "vec3<i32>", "Vec3U32": "vec3<u32>", "Vec3F32": "vec3<f32>", "Vec3F16": "vec3<f16>", "Vec3Bool": "vec3<bool>",
	"Vec4I32": "vec4<i32>", "Vec4U32": "vec4<u32>", "Vec4F32": "vec4<f32>", "Vec4F16": "vec4<f16>", "Vec4Bool": "vec4<bool>",

	"Mat2x2F32": "mat2x2<f32>", "Mat2x3F32": "mat2x3<f32>", "Mat2x4F32": "mat2x4<f32>",
	"Mat3x2F32": "mat3x2<f32>", "Mat3x3F32": "mat3x3<f32>", "Mat3x4F32": "mat3x4<f32>",
	"Mat4x2F32": "mat4x2<f32>", "Mat4x3F32": "mat4x3<f32>", "Mat4x4F32": "mat4x4<f32>",
}

// IsBuiltinScalar reports whether name is one of the dialect's built-in
// scalar/vector/matrix type names (as opposed to a user-defined type).
func IsBuiltinScalar(name string) bool {
	_, ok := scalarTable[name]
	return ok
}

// GPUTypeName renders t in WGSL syntax (spec §4.3 items 3-4: type rewriter
// and array-type rewriter, unified here because both are pure structural
// translations of ast.Type). reg resolves user-defined type names; an
// unresolvable scalar name is UnsupportedTypeName.
func GPUTypeName(t *ast.Type, reg *descriptor.Registry) (string, error) {
	switch {
	case t.Array != nil:
		elem, err := GPUTypeName(t.Array.Elem, reg)
		if err != nil {
			return "", err
		}
		return "array<" + elem + ", " + t.Array.Len + ">", nil
	case t.Slice != nil:
		elem, err := GPUTypeName(t.Slice.Elem, reg)
		if err != nil {
			return "", err
		}
		return "array<" + elem + ">", nil
	case t.Scalar != nil:
		if wgsl, ok := scalarTable[t.Scalar.Name]; ok {
			return wgsl, nil
		}
		if reg.Lookup(t.Scalar.Name) != nil {
			return t.Scalar.Name, nil
		}
		return "", &diag.UnsupportedTypeName{Pos: t.Pos, Name: t.Scalar.Name}
	}
	return "", &diag.UnsupportedTypeName{Pos: t.Pos, Name: "<empty>"}
}

// HostTypeName renders t as it should appear in the generated CPU mirror:
// identical to the dialect spelling for user types, and the dialect's own
// scalar names map onto ordinary Go types (the mirror emitter owns that Go
// mapping, see emit/mirror/types.go); GPUTypeName and HostTypeName diverge
// only in the array/slice spelling, because Go has no fixed-size array
// generic syntax matching WGSL's array<T,N> wording.
func HostTypeName(t *ast.Type) string {
	switch {
	case t.Array != nil:
		return "[" + t.Array.Len + "]" + HostTypeName(t.Array.Elem)
	case t.Slice != nil:
		return "[]" + HostTypeName(t.Slice.Elem)
	case t.Scalar != nil:
		return t.Scalar.Name
	}
	return ""
}

// Validate walks every function body in f and fails with UnsupportedConstruct
// on the first construct with no GPU analogue (spec §4.3): closures, try/?,
// tuples, match, bare loop, range-for, make(...), and any declared generic
// type/trait-bound/lifetime parameter.
func Validate(f *ast.File) error {
	for _, item := range f.Items {
		if item.Type != nil && len(item.Type.TypeParams) > 0 {
			return unsupportedParam(item.Type.TypeParams[0])
		}
		if item.Func == nil {
			continue
		}
		if len(item.Func.TypeParams) > 0 {
			return unsupportedParam(item.Func.TypeParams[0])
		}
		if err := validateBlock(item.Func.Body); err != nil {
			return err
		}
	}
	return nil
}

func unsupportedParam(tp *ast.TypeParam) error {
	if tp.Lifetime != "" {
		return &diag.UnsupportedConstruct{Pos: tp.Pos, Feature: "lifetime parameter"}
	}
	if tp.Bound != "" {
		return &diag.UnsupportedConstruct{Pos: tp.Pos, Feature: "trait bound"}
	}
	return &diag.UnsupportedConstruct{Pos: tp.Pos, Feature: "generic type parameter"}
}

func validateBlock(b *ast.Block) error {
	if b == nil {
		return nil
	}
	for _, s := range b.Stmts {
		if err := validateStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func validateStmt(s *ast.Stmt) error {
	switch {
	case s.VarDecl != nil:
		return validateExpr(s.VarDecl.Value)
	case s.Assign != nil:
		return validateExpr(s.Assign.Value)
	case s.Return != nil:
		if s.Return.Value != nil {
			return validateExpr(s.Return.Value)
		}
	case s.If != nil:
		if err := validateExpr(s.If.Cond); err != nil {
			return err
		}
		if err := validateBlock(s.If.Body); err != nil {
			return err
		}
		return validateElse(s.If.Else)
	case s.For != nil:
		if s.For.Range != nil {
			return &diag.UnsupportedConstruct{Pos: s.For.Range.Pos, Feature: "range-based for loop"}
		}
		c := s.For.CStyle
		if err := validateExpr(c.Init.Value); err != nil {
			return err
		}
		if err := validateExpr(c.Cond); err != nil {
			return err
		}
		if err := validateExpr(c.Post.Value); err != nil {
			return err
		}
		return validateBlock(c.Body)
	case s.Match != nil:
		return &diag.UnsupportedConstruct{Pos: s.Match.Pos, Feature: "match"}
	case s.Loop != nil:
		return &diag.UnsupportedConstruct{Pos: s.Loop.Pos, Feature: "loop"}
	case s.CallStmt != nil:
		if s.CallStmt.Call != nil {
			return validateCallOrSelect(s.CallStmt.Call)
		}
	}
	return nil
}

func validateElse(e *ast.ElseClause) error {
	if e == nil {
		return nil
	}
	if e.If != nil {
		return validateStmt(&ast.Stmt{If: e.If})
	}
	return validateBlock(e.Body)
}

func validateExpr(e *ast.Expr) error {
	if e == nil {
		return nil
	}
	if err := validatePrimary(e.Left); err != nil {
		return err
	}
	for _, op := range e.BinOps {
		if err := validatePrimary(op.Right); err != nil {
			return err
		}
	}
	return nil
}

func validatePrimary(p *ast.Primary) error {
	if p == nil {
		return nil
	}
	switch {
	case p.Try != nil:
		return &diag.UnsupportedConstruct{Pos: p.Pos, Feature: "try/?"}
	case p.Closure != nil:
		return &diag.UnsupportedConstruct{Pos: p.Pos, Feature: "closure"}
	case p.Tuple != nil:
		return &diag.UnsupportedConstruct{Pos: p.Pos, Feature: "tuple expression"}
	case p.MakeCall != nil:
		return &diag.UnsupportedConstruct{Pos: p.Pos, Feature: "make"}
	case p.Unary != nil:
		return validatePrimary(p.Unary.Right)
	case p.Composite != nil:
		for _, kv := range p.Composite.Elements {
			if err := validateExpr(kv.Value); err != nil {
				return err
			}
		}
	case p.IndexExpr != nil:
		return validateExpr(p.IndexExpr.Index)
	case p.CallOrSel != nil:
		return validateCallOrSelect(p.CallOrSel)
	case p.Intrinsic != nil:
		for _, a := range p.Intrinsic.Args {
			if err := validateExpr(a); err != nil {
				return err
			}
		}
	case p.Paren != nil:
		return validateExpr(p.Paren)
	}
	return nil
}

func validateCallOrSelect(c *ast.CallOrSelect) error {
	if len(c.Fields) > 1 {
		return &diag.UnsupportedConstruct{Pos: c.Pos, Feature: "multi-segment path"}
	}
	if c.Call != nil {
		for _, a := range c.Call.Args {
			if err := validateExpr(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// suffixGPU maps a recognised numeric-literal suffix to the WGSL
// constructor it wraps the bare value in (spec §4.3 item 5, e.g.
// "3.4_f32" -> "f32(3.4)").
var suffixGPU = map[string]string{"f32": "f32", "f16": "f16", "u32": "u32", "i32": "i32"}

// SplitNumericSuffix separates a lexed Number token (e.g. "3.4_f32", "1u32",
// "42") into its bare value and suffix ("" if none). Fails with
// UnsupportedNumericSuffix if a suffix is present but not recognised.
func SplitNumericSuffix(raw string, pos lexer.Position) (value, suffix string, err error) {
	for _, s := range []string{"f32", "f16", "u32", "i32"} {
		if strings.HasSuffix(raw, "_"+s) {
			return strings.TrimSuffix(raw, "_"+s), s, nil
		}
		if strings.HasSuffix(raw, s) && isNumericPrefix(strings.TrimSuffix(raw, s)) {
			return strings.TrimSuffix(raw, s), s, nil
		}
	}
	if isNumericPrefix(raw) {
		return raw, "", nil
	}
	return raw, "", &diag.UnsupportedNumericSuffix{Pos: pos, Suffix: raw}
}

func isNumericPrefix(s string) bool {
	if s == "" {
		return false
	}
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !seenDot:
			seenDot = true
		default:
			_ = i
			return false
		}
	}
	return true
}

// GPULiteral renders a numeric literal token in WGSL syntax: a suffixed
// literal becomes a constructor call wrapping the bare value, an unsuffixed
// literal passes through unchanged.
func GPULiteral(raw string) (string, error) {
	value, suffix, err := SplitNumericSuffix(raw, lexer.Position{})
	if err != nil {
		return "", err
	}
	if suffix == "" {
		return value, nil
	}
	ctor := suffixGPU[suffix]
	return ctor + "(" + value + ")", nil
}
