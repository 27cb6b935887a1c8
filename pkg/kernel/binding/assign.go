// Package binding implements P5: it walks the custom-type registry in
// declaration order, splits it into the descriptor.Module's kind sequences,
// and issues binding numbers in the fixed order configs -> input arrays ->
// output arrays (each output array immediately followed by its counter
// binding when the type is OutputVec and P2 marked it RequiresCounter
// because a Push targets it), synthesising the counter variable name for
// each (spec §4.5).
package binding

import (
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

// DefaultMaxArraysPerKind is the per-kind binding ceiling absent an
// explicit kernel.Config override (spec §4.5: "at most 6 of each kind").
const DefaultMaxArraysPerKind = 6

// Assign splits reg's ordered entries into m's kind sequences and assigns
// binding numbers. maxPerKind is the per-kind ceiling (config-driven,
// [EXPANSION] over the spec's hardcoded 6 — see SPEC_FULL.md §4.5).
func Assign(m *descriptor.Module, reg *descriptor.Registry, maxPerKind int) error {
	if maxPerKind <= 0 {
		maxPerKind = DefaultMaxArraysPerKind
	}
	m.Bindings = descriptor.NewBindingMap()

	var configs, inputs, outputs []*descriptor.CustomType
	for _, ct := range reg.Ordered {
		switch ct.Kind {
		case descriptor.KindConfig:
			configs = append(configs, ct)
		case descriptor.KindInputArray:
			inputs = append(inputs, ct)
		case descriptor.KindOutputArray, descriptor.KindOutputVec:
			outputs = append(outputs, ct)
		case descriptor.KindHelperType:
			m.HelperTypes = append(m.HelperTypes, ct)
		}
	}

	if len(configs) > maxPerKind {
		return &diag.TooManyArrays{Pos: configs[maxPerKind].Pos, Kind_: "Config", Max: maxPerKind}
	}
	if len(inputs) > maxPerKind {
		return &diag.TooManyArrays{Pos: inputs[maxPerKind].Pos, Kind_: "InputArray", Max: maxPerKind}
	}
	if len(outputs) > maxPerKind {
		return &diag.TooManyArrays{Pos: outputs[maxPerKind].Pos, Kind_: "OutputArray", Max: maxPerKind}
	}

	for _, ct := range configs {
		m.Bindings.Assign(ct.Ident)
	}
	for _, ct := range inputs {
		m.Bindings.Assign(ct.ArrayName())
	}
	for _, ct := range outputs {
		m.Bindings.Assign(ct.ArrayName())
		if ct.Kind == descriptor.KindOutputVec && ct.RequiresCounter {
			m.Bindings.Assign(ct.CounterName())
		}
	}

	m.Configs = configs
	m.InputArrays = inputs
	m.OutputArrays = outputs
	return nil
}
