// Package dispatch declares the collaborator interfaces an external GPU
// runtime implements to actually run a compiled kernel module: binding
// resources to a compute pipeline, invoking the CPU mirror as a test
// oracle, and uploading shader text to a device. This package has zero
// implementation — driving a real GPU (buffer creation, dispatch,
// readback) is explicitly out of scope (spec §1 Non-goals); these
// interfaces only fix the shape a collaborator must present.
//
// Grounded on the pipeline/bind-group construction shape of
// gogpu-gg's internal/gpu compute pass encoder (a compute pipeline built
// from shader text plus a bind group built from a binding layout) without
// importing gogpu/wgpu, since this package never touches an actual device.
package dispatch

import "github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"

// BindingConsumer accepts a compiled module's descriptor and binding map
// and is responsible for constructing the device-side resources (buffers,
// bind group layout, bind group) at the binding numbers descriptor.Module.Bindings
// assigns. Implemented by a real GPU backend; this package never implements it.
type BindingConsumer interface {
	ConsumeBindings(m *descriptor.Module, bindings *descriptor.BindingMap) error
}

// MirrorInvoker runs the generated mirror package's Main function as a CPU
// test oracle over one dispatch's iteration space, so a test can compare
// device output against a host-side reference run without a GPU present
// (spec §8 "Round-trip / oracle properties"). iterationSpace is the
// (x, y, z) extent the dispatcher would otherwise hand the device.
type MirrorInvoker interface {
	InvokeMirror(iterationSpace [3]uint32) error
}

// ShaderTarget accepts the final WGSL text P6 emits and is responsible for
// compiling it into a device-side shader module (e.g. wgpu's
// CreateShaderModule). Implemented by a real GPU backend.
type ShaderTarget interface {
	LoadShader(wgslText string) error
}
