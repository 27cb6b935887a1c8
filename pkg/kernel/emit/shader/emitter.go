// Package shader implements P6: it renders a descriptor.Module to a single
// WGSL text in the fixed section order spec.md §4.6 mandates. Grounded on
// guix's pkg/codegen.WGSLGenerator (struct/field/binding/function emission,
// decorator formatting, indent tracking), generalized from the teacher's
// fixed UI-decorator vocabulary to this spec's binding/override-constant/
// workgroup-size vocabulary.
package shader

import (
	"bytes"
	"fmt"

	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/lower"
)

// Emitter accumulates WGSL text for one module. Like guix's WGSLGenerator it
// is single-use: construct one per Emit call.
type Emitter struct {
	out         bytes.Buffer
	indentLevel int
	reg         *descriptor.Registry
	err         error
}

// Emit renders m to WGSL text. reg resolves user type names encountered
// inside field/param types.
func Emit(m *descriptor.Module, reg *descriptor.Registry) (string, error) {
	e := &Emitter{reg: reg}
	e.emitModule(m)
	if e.err != nil {
		return "", e.err
	}
	return e.out.String(), nil
}

func (e *Emitter) write(s string)            { e.out.WriteString(s) }
func (e *Emitter) writeln(s string)          { e.indent(); e.out.WriteString(s); e.out.WriteByte('\n') }
func (e *Emitter) indent() {
	for i := 0; i < e.indentLevel; i++ {
		e.out.WriteString("    ")
	}
}
func (e *Emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Emitter) emitModule(m *descriptor.Module) {
	for _, c := range m.Consts {
		e.writeln(fmt.Sprintf("const %s: %s = %s;", c.Name, c.Type, c.Value))
	}
	if len(m.Consts) > 0 {
		e.write("\n")
	}

	for _, ct := range m.HelperTypes {
		e.emitTypeDecl(ct)
	}

	for _, ct := range m.InputArrays {
		e.writeln(fmt.Sprintf("override %s: u32;", ct.LengthConstName()))
	}
	for _, ct := range m.OutputArrays {
		e.writeln(fmt.Sprintf("override %s: u32;", ct.LengthConstName()))
	}
	e.write("\n")

	for _, ct := range m.Configs {
		e.emitTypeDecl(ct)
	}

	for _, ct := range m.InputArrays {
		e.emitTypeDecl(ct)
	}
	for _, ct := range m.OutputArrays {
		e.emitTypeDecl(ct)
	}

	for _, key := range m.Bindings.Keys {
		n, _ := m.Bindings.Get(key)
		e.emitBinding(key, n, m)
	}
	e.write("\n")

	for _, fn := range m.HelperFuncs {
		e.writeln(fn.GPUText)
		e.write("\n")
	}

	wg := m.Dimensionality.WorkgroupSize()
	e.writeln(fmt.Sprintf("@compute @workgroup_size(%d, %d, %d)", wg[0], wg[1], wg[2]))
	if m.Main != nil {
		e.writeln(m.Main.GPUText)
	}
}

func (e *Emitter) emitTypeDecl(ct *descriptor.CustomType) {
	td := ct.Decl
	if td == nil {
		return
	}
	if td.Struct != nil {
		e.writeln(fmt.Sprintf("struct %s {", ct.Ident))
		e.indentLevel++
		for _, f := range td.Struct.Fields {
			wgslType, err := lower.GPUTypeName(f.Type, e.reg)
			if err != nil {
				e.fail(err)
				wgslType = f.Type.Scalar.Name
			}
			e.writeln(fmt.Sprintf("%s: %s,", f.Name, wgslType))
		}
		e.indentLevel--
		e.writeln("}")
		e.write("\n")
		return
	}
	if td.Alias != nil {
		wgslType, err := lower.GPUTypeName(td.Alias, e.reg)
		if err != nil {
			e.fail(err)
			return
		}
		e.writeln(fmt.Sprintf("alias %s = %s;", ct.Ident, wgslType))
		e.write("\n")
	}
}

func (e *Emitter) emitBinding(name string, number int, m *descriptor.Module) {
	addressSpace, typ := e.bindingTypeOf(name, m)
	e.writeln(fmt.Sprintf("@group(0) @binding(%d) var<%s> %s: %s;", number, addressSpace, name, typ))
}

// bindingTypeOf derives the address-space/type pair for a binding name,
// grounded on guix's generateBinding decorator-name inspection, generalized
// from decorator-derived address spaces to this spec's fixed kind-to-
// address-space rule (spec §4.6: configs -> uniform; inputs -> storage,
// read; outputs -> storage, read_write; counters -> storage, read_write of
// atomic<u32>).
func (e *Emitter) bindingTypeOf(name string, m *descriptor.Module) (addressSpace, typ string) {
	for _, ct := range m.Configs {
		if ct.Ident == name {
			return "uniform", ct.Ident
		}
	}
	for _, ct := range m.InputArrays {
		if ct.ArrayName() == name {
			elemType := ct.Ident
			return "storage, read", "array<" + elemType + ">"
		}
	}
	for _, ct := range m.OutputArrays {
		if ct.ArrayName() == name {
			return "storage, read_write", "array<" + ct.Ident + ">"
		}
		if ct.Kind == descriptor.KindOutputVec && ct.CounterName() == name {
			return "storage, read_write", "atomic<u32>"
		}
	}
	return "storage, read_write", "unknown"
}
