// Package facade implements P8: typed builder/façade emission for a
// module's configs, input arrays, and output arrays (spec §4.8). Every
// builder carries a phantom type tag binding it to the module it was
// generated for, the common Go idiom for compile-time binding without
// runtime cost, and a blanket byte-serialization path built on
// pkg/kernel/marshal.
package facade

import (
	"fmt"
	"strings"

	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
)

// Emit renders the four builder/reader types for m into Go source text
// appended to the mirror package (packageName must match the mirror's).
func Emit(m *descriptor.Module, packageName, moduleTagName string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", packageName)
	b.WriteString(`import "github.com/gaarutyunov/kernelc/pkg/kernel/marshal"` + "\n\n")

	fmt.Fprintf(&b, "// %s is a zero-size phantom tag binding every builder below to this\n", moduleTagName)
	b.WriteString("// module's type descriptor, so a builder for one module cannot be misused\n")
	b.WriteString("// against another's dispatch at host compile time.\n")
	fmt.Fprintf(&b, "type %s struct{}\n\n", moduleTagName)

	emitMaxOutputLengths(&b, m, moduleTagName)
	emitConfigInput(&b, m, moduleTagName)
	emitInputData(&b, m, moduleTagName)
	emitOutputData(&b, m, moduleTagName)

	return b.String(), nil
}

func tagField(moduleTagName string) string {
	return fmt.Sprintf("\t_tag [0]*%s\n", moduleTagName)
}

func emitMaxOutputLengths(b *strings.Builder, m *descriptor.Module, tag string) {
	b.WriteString("// MaxOutputLengths dimensions readback buffers for every output array.\n")
	b.WriteString("type MaxOutputLengths struct {\n")
	b.WriteString(tagField(tag))
	for _, ct := range m.OutputArrays {
		fmt.Fprintf(b, "\t%s uint32\n", exportName(ct.Ident)+"Length")
	}
	b.WriteString("}\n\n")
	for _, ct := range m.OutputArrays {
		name := exportName(ct.Ident)
		fmt.Fprintf(b, "func (l *MaxOutputLengths) Set%sLength(n uint32) *MaxOutputLengths {\n", name)
		fmt.Fprintf(b, "\tl.%sLength = n\n", name)
		b.WriteString("\treturn l\n}\n\n")
	}
}

func emitConfigInput(b *strings.Builder, m *descriptor.Module, tag string) {
	b.WriteString("// ConfigInput carries one value per uniform (config) type.\n")
	b.WriteString("type ConfigInput struct {\n")
	b.WriteString(tagField(tag))
	for _, ct := range m.Configs {
		fmt.Fprintf(b, "\t%s %s\n", exportName(ct.Ident), exportName(ct.Ident))
	}
	b.WriteString("}\n\n")
	for _, ct := range m.Configs {
		name := exportName(ct.Ident)
		fmt.Fprintf(b, "func (c *ConfigInput) Set%s(v %s) *ConfigInput {\n", name, name)
		fmt.Fprintf(b, "\tc.%s = v\n", name)
		b.WriteString("\treturn c\n}\n\n")
		fmt.Fprintf(b, "func (c *ConfigInput) %sBytes() ([]byte, error) {\n", name)
		fmt.Fprintf(b, "\treturn marshal.Bytes(c.%s)\n}\n\n", name)
	}
}

func emitInputData(b *strings.Builder, m *descriptor.Module, tag string) {
	b.WriteString("// InputData carries one ordered sequence per input array type.\n")
	b.WriteString("type InputData struct {\n")
	b.WriteString(tagField(tag))
	for _, ct := range m.InputArrays {
		fmt.Fprintf(b, "\t%s []%s\n", exportName(ct.Ident), exportName(ct.Ident))
	}
	b.WriteString("}\n\n")
	for _, ct := range m.InputArrays {
		name := exportName(ct.Ident)
		fmt.Fprintf(b, "func (d *InputData) Set%s(v []%s) *InputData {\n", name, name)
		fmt.Fprintf(b, "\td.%s = v\n", name)
		b.WriteString("\treturn d\n}\n\n")
		fmt.Fprintf(b, "func (d *InputData) %sBytes() ([]byte, error) {\n", name)
		fmt.Fprintf(b, "\treturn marshal.Bytes(d.%s)\n}\n\n", name)
	}
}

func emitOutputData(b *strings.Builder, m *descriptor.Module, tag string) {
	b.WriteString("// OutputData exposes one reader per output array type, populated from a\n")
	b.WriteString("// device readback buffer after dispatch.\n")
	b.WriteString("type OutputData struct {\n")
	b.WriteString(tagField(tag))
	for _, ct := range m.OutputArrays {
		fmt.Fprintf(b, "\t%s []%s\n", exportName(ct.Ident), exportName(ct.Ident))
	}
	b.WriteString("}\n\n")
	for _, ct := range m.OutputArrays {
		name := exportName(ct.Ident)
		fmt.Fprintf(b, "func (d *OutputData) Get%s() ([]%s, bool) {\n", name, name)
		fmt.Fprintf(b, "\tif d.%s == nil {\n\t\treturn nil, false\n\t}\n", name)
		fmt.Fprintf(b, "\treturn d.%s, true\n}\n\n", name)
		fmt.Fprintf(b, "func (d *OutputData) Set%sFromReadback(r marshal.OutputReadback, elemSize int) error {\n", name)
		fmt.Fprintf(b, "\treturn r.Items(elemSize, &d.%s)\n}\n\n", name)
	}
}

func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
