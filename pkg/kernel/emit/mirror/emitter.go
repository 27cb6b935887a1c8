package mirror

import (
	"fmt"
	"strings"

	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
)

// Emit renders m to a complete Go source file implementing the CPU mirror
// (spec §4.7): the same constants, the same user types (exported so the
// host program and tests can use them directly), the same helper functions,
// and a Main function with the rewritten iteration-position/config/input/
// output signature.
func Emit(m *descriptor.Module, packageName string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", packageName)

	for _, c := range m.Consts {
		fmt.Fprintf(&b, "const %s %s = %s\n", exportName(c.Name), goConstType(c.Type), c.Value)
	}
	if len(m.Consts) > 0 {
		b.WriteString("\n")
	}

	for _, ct := range append(append([]*descriptor.CustomType{}, m.HelperTypes...), m.Configs...) {
		writeType(&b, ct)
	}
	for _, ct := range m.InputArrays {
		writeType(&b, ct)
	}
	for _, ct := range m.OutputArrays {
		writeType(&b, ct)
	}

	for _, fn := range m.HelperFuncs {
		b.WriteString(fn.MirrorText)
		b.WriteString("\n\n")
	}
	if m.Main != nil {
		b.WriteString(m.Main.MirrorText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func writeType(b *strings.Builder, ct *descriptor.CustomType) {
	if ct.Decl == nil {
		return
	}
	name := exportName(ct.Ident)
	if ct.Decl.Struct != nil {
		fmt.Fprintf(b, "type %s struct {\n", name)
		for _, f := range ct.Decl.Struct.Fields {
			fmt.Fprintf(b, "\t%s %s\n", exportName(f.Name), GoTypeName(f.Type))
		}
		b.WriteString("}\n\n")
		return
	}
	if ct.Decl.Alias != nil {
		fmt.Fprintf(b, "type %s = %s\n\n", name, GoTypeName(ct.Decl.Alias))
	}
}

// exportName capitalizes the first rune so generated identifiers are
// exported, matching spec §4.7's "made publicly accessible" requirement.
func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func goConstType(dialectType string) string {
	switch dialectType {
	case "f32":
		return "float32"
	case "i32":
		return "int32"
	case "u32":
		return "uint32"
	case "bool":
		return "bool"
	default:
		return dialectType
	}
}
