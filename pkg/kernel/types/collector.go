// Package types implements P1, the custom-type collector: it scans the
// top-level items of a parsed module and classifies each type declaration
// into one of the kinds in descriptor.Kind, using the marker decorator as
// the discriminator (spec §4.1). Grounded on guix's pkg/ast top-level item
// walk and its GPUDecorator marker-attribute grammar (pkg/ast/gpu_ast.go),
// generalized from the fixed {gpu,vertex,fragment,...} set to this spec's
// four kind markers.
package types

import (
	"strings"
	"unicode"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

var markerKind = map[string]descriptor.Kind{
	"config":       descriptor.KindConfig,
	"input_array":  descriptor.KindInputArray,
	"output_vec":   descriptor.KindOutputVec,
	"output_array": descriptor.KindOutputArray,
}

// Collect walks f's top-level items in source order and returns a populated
// registry plus the module-level const list. It is the only pass that adds
// entries to the registry; later passes look entries up, and P2 additionally
// sets RequiresCounter on the targets of a Push (Design Notes §9).
func Collect(f *ast.File) (*descriptor.Registry, []*descriptor.Const, error) {
	reg := descriptor.NewRegistry()
	var consts []*descriptor.Const

	for _, item := range f.Items {
		switch {
		case item.Const != nil:
			consts = append(consts, &descriptor.Const{
				Name:  item.Const.Name,
				Type:  typeSourceText(item.Const.Type),
				Value: exprSourceText(item.Const.Value),
			})

		case item.Type != nil:
			ct, err := classify(item.Type)
			if err != nil {
				return nil, nil, err
			}
			if existing := reg.Lookup(ct.Ident); existing != nil {
				return nil, nil, &diag.DuplicateTypeName{
					Pos:   item.Type.Pos,
					Name:  ct.Ident,
					First: existing.Pos,
				}
			}
			reg.Add(ct)

		case item.Func != nil:
			if len(item.Func.TypeParams) > 0 {
				return nil, nil, &diag.UnsupportedItem{Pos: item.Func.Pos}
			}

		default:
			return nil, nil, &diag.UnsupportedItem{Pos: item.Pos}
		}
	}
	return reg, consts, nil
}

func classify(td *ast.TypeDecl) (*descriptor.CustomType, error) {
	if len(td.TypeParams) > 0 {
		return nil, &diag.UnsupportedItem{Pos: td.Pos}
	}

	var kind descriptor.Kind
	marked := false
	for _, d := range td.Decorators {
		k, ok := markerKind[d.Name]
		if !ok {
			return nil, &diag.InvalidMarker{Pos: d.Pos, Name: d.Name}
		}
		if marked {
			return nil, &diag.InvalidMarker{Pos: d.Pos, Name: d.Name}
		}
		kind = k
		marked = true
	}
	if !marked {
		kind = descriptor.KindHelperType
	}

	return &descriptor.CustomType{
		Pos:    td.Pos,
		Ident:  td.Name,
		Lower:  toLower(td.Name),
		Upper:  toUpper(td.Name),
		Kind:   kind,
		Source: typeDeclSourceText(td),
		Decl:   td,
	}, nil
}

func toLower(s string) string { return strings.ToLower(s) }

func toUpper(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// typeDeclSourceText renders a canonical textual form of a type declaration
// for use as the basis of later textual rewrites (spec §4.1 "canonical
// source text"). It is intentionally a simple structural rendering, not a
// byte-for-byte reproduction of the original source span, because the
// lowering passes need a normalized starting point.
func typeDeclSourceText(td *ast.TypeDecl) string {
	if td.Struct != nil {
		var b strings.Builder
		b.WriteString("struct {\n")
		for _, f := range td.Struct.Fields {
			b.WriteString("  ")
			b.WriteString(f.Name)
			b.WriteString(" ")
			b.WriteString(typeSourceText(f.Type))
			b.WriteString("\n")
		}
		b.WriteString("}")
		return b.String()
	}
	if td.Alias != nil {
		return typeSourceText(td.Alias)
	}
	return ""
}

func typeSourceText(t *ast.Type) string {
	if t == nil {
		return ""
	}
	switch {
	case t.Array != nil:
		return "[" + typeSourceText(t.Array.Elem) + "; " + t.Array.Len + "]"
	case t.Slice != nil:
		return "[]" + typeSourceText(t.Slice.Elem)
	case t.Scalar != nil:
		if t.Scalar.Pointer {
			return "*" + t.Scalar.Name
		}
		return t.Scalar.Name
	}
	return ""
}

// exprSourceText renders a best-effort textual form of a const initializer.
// Const values in this dialect are restricted to scalar literals, so a
// shallow rendering is sufficient.
func exprSourceText(e *ast.Expr) string {
	if e == nil || e.Left == nil {
		return ""
	}
	p := e.Left
	switch {
	case p.Literal != nil:
		switch {
		case p.Literal.Number != nil:
			return *p.Literal.Number
		case p.Literal.String != nil:
			return *p.Literal.String
		case p.Literal.Bool != nil:
			return *p.Literal.Bool
		}
	case p.Ident != "":
		return p.Ident
	}
	return ""
}
