// Package compiler orchestrates P1-P8 into a single Pipeline.Compile call:
// parse, collect custom types, rewrite helper intrinsics, validate syntax,
// classify into the module descriptor, assign bindings, then emit shader,
// mirror, and façade text. Grounded on guix's own compile-then-generate
// flow (parser.Parse followed by codegen.Generate), generalized into an
// explicit multi-pass pipeline matching this spec's P1-P8 contract.
package compiler

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/binding"
	"github.com/gaarutyunov/kernelc/pkg/kernel/classify"
	"github.com/gaarutyunov/kernelc/pkg/kernel/config"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/emit/facade"
	"github.com/gaarutyunov/kernelc/pkg/kernel/emit/mirror"
	"github.com/gaarutyunov/kernelc/pkg/kernel/emit/shader"
	"github.com/gaarutyunov/kernelc/pkg/kernel/helpers"
	"github.com/gaarutyunov/kernelc/pkg/kernel/lower"
	"github.com/gaarutyunov/kernelc/pkg/kernel/parser"
	"github.com/gaarutyunov/kernelc/pkg/kernel/types"
)

// Result is every artifact the transformer produces for one module (spec §1:
// "emits (i) a GPU shader text, (ii) a parsed descriptor ... (iii) a typed
// CPU-side mirror ... and (iv) typed builder façades").
type Result struct {
	Module     *descriptor.Module
	ShaderText string
	MirrorText string
	FacadeText string

	// Registry and MainFunc expose P1's type catalog and the rewritten Main
	// AST (Intrinsic nodes already attached by P2) so a round-trip test can
	// drive pkg/kernel/oracle directly over this compile, without needing
	// to invoke `go run` on the generated mirror package.
	Registry *descriptor.Registry
	MainFunc *ast.FuncDecl
}

// Pipeline owns the parser (built once; participle.Build is the expensive
// step) and the compiler configuration.
type Pipeline struct {
	parser *parser.Parser
	cfg    *config.Config
}

// New builds a Pipeline with cfg (nil selects config.Default()).
func New(cfg *config.Config) (*Pipeline, error) {
	p, err := parser.New()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{parser: p, cfg: cfg}, nil
}

// Parse runs only the front-end parse step, for callers (such as
// `kernelc check --dump-ast`) that want the raw syntax tree before any
// semantic pass has touched it.
func (p *Pipeline) Parse(filename, src string) (*ast.File, error) {
	return p.parser.ParseString(filename, src)
}

// Compile runs P1-P8 over src (one .kernel file) and returns its artifacts.
// dim is the iteration-space dimensionality the dispatcher has configured
// for this module (spec §3: "may only change if the dispatch iteration
// space changes correspondingly" — it is an input to compilation, not
// something the core infers from the source).
func (p *Pipeline) Compile(filename, src string, dim descriptor.Dimensionality) (*Result, error) {
	f, err := p.parser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}

	reg, consts, err := types.Collect(f)
	if err != nil {
		return nil, err
	}

	if err := helpers.Rewrite(f, reg); err != nil {
		return nil, err
	}

	if err := lower.Validate(f); err != nil {
		return nil, err
	}

	parts, err := classify.Classify(f, reg)
	if err != nil {
		return nil, err
	}

	m := &descriptor.Module{
		Name:           filename,
		Dimensionality: dim,
		Consts:         consts,
		Imports:        importPaths(f),
	}

	if err := binding.Assign(m, reg, p.cfg.MaxArraysPerKind); err != nil {
		return nil, err
	}

	for _, hf := range parts.HelperFuncs {
		fn, err := renderFunction(hf, reg, m)
		if err != nil {
			return nil, err
		}
		m.HelperFuncs = append(m.HelperFuncs, fn)
	}
	mainFn, err := renderFunction(parts.Main, reg, m)
	if err != nil {
		return nil, err
	}
	m.Main = mainFn

	m.SourceHash = hashSource(src)

	shaderText, err := shader.Emit(m, reg)
	if err != nil {
		return nil, err
	}
	mirrorText, err := mirror.Emit(m, p.cfg.MirrorPackageName)
	if err != nil {
		return nil, err
	}
	facadeText, err := facade.Emit(m, p.cfg.MirrorPackageName, p.cfg.ModuleTagName)
	if err != nil {
		return nil, err
	}

	return &Result{
		Module:     m,
		ShaderText: shaderText,
		MirrorText: mirrorText,
		FacadeText: facadeText,
		Registry:   reg,
		MainFunc:   parts.Main,
	}, nil
}

func renderFunction(fn *ast.FuncDecl, reg *descriptor.Registry, m *descriptor.Module) (*descriptor.Function, error) {
	gpuText, err := shader.RenderFunction(fn, reg)
	if err != nil {
		return nil, err
	}
	mirrorText, err := mirror.RenderFunction(fn, reg, m)
	if err != nil {
		return nil, err
	}
	return &descriptor.Function{
		Name:       fn.Name,
		GPUText:    gpuText,
		MirrorText: mirrorText,
		IsMain:     fn.Name == "main",
	}, nil
}

func importPaths(f *ast.File) []string {
	paths := make([]string, 0, len(f.Imports))
	for _, imp := range f.Imports {
		paths = append(paths, imp.Path)
	}
	return paths
}

func hashSource(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}
