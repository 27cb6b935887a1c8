// Package classify implements P4: it partitions a lowered module's
// functions into the helper functions and the single main, and enforces the
// main-function contract (spec §4.4). Consts come from P1, and the split of
// the registry's types into the descriptor.Module's kind sequences is done
// by P5 (pkg/kernel/binding).
package classify

import (
	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

// IterPosParamName is the canonical parameter name main must declare for the
// dispatch's iteration position (spec §4.4: "the implementer may choose a
// fixed name such as iter_pos").
const IterPosParamName = "iter_pos"

// IterPosTypeName is the dialect's pseudo-type naming the dispatch's
// global invocation id; it has no declared TypeDecl because it is a
// compiler builtin, not an author-defined type.
const IterPosTypeName = "IterPos"

// Result is the classifier's output: the module's function partition, ready
// to be merged into a descriptor.Module alongside P1's registry and consts.
type Result struct {
	HelperFuncs []*ast.FuncDecl
	Main        *ast.FuncDecl
}

// Classify partitions f's functions and validates the main-function
// contract. reg is read for nothing here (P5 reads it); it is accepted for
// symmetry with the rest of the pipeline's pass signatures.
func Classify(f *ast.File, reg *descriptor.Registry) (*Result, error) {
	res := &Result{}
	for _, item := range f.Items {
		if item.Func == nil {
			continue
		}
		if item.Func.Name == "main" {
			if res.Main != nil {
				return nil, &diag.MainFunctionShape{Pos: item.Func.Pos, Detail: "module declares more than one main function"}
			}
			if err := validateMainShape(item.Func); err != nil {
				return nil, err
			}
			res.Main = item.Func
			continue
		}
		res.HelperFuncs = append(res.HelperFuncs, item.Func)
	}
	if res.Main == nil {
		return nil, &diag.MissingMain{Pos: f.Pos}
	}
	return res, nil
}

func validateMainShape(fn *ast.FuncDecl) error {
	if len(fn.Params) != 1 {
		return &diag.MainFunctionShape{Pos: fn.Pos, Detail: "main must take exactly one parameter"}
	}
	p := fn.Params[0]
	if p.Name != IterPosParamName {
		return &diag.MainFunctionShape{Pos: p.Pos, Detail: "iteration-position parameter must be named " + IterPosParamName}
	}
	if p.Type.Scalar == nil || p.Type.Scalar.Name != IterPosTypeName {
		return &diag.MainFunctionShape{Pos: p.Pos, Detail: "iteration-position parameter must have type " + IterPosTypeName}
	}
	if fn.Result != nil {
		return &diag.MainFunctionShape{Pos: fn.Result.Pos, Detail: "main must not declare a return type"}
	}
	return checkNoIterPosAssignment(fn.Body)
}

// checkNoIterPosAssignment walks main's body rejecting any direct
// assignment to iter_pos or one of its fields/elements (spec §4.4).
func checkNoIterPosAssignment(b *ast.Block) error {
	if b == nil {
		return nil
	}
	for _, s := range b.Stmts {
		if err := checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func checkStmt(s *ast.Stmt) error {
	switch {
	case s.Assign != nil:
		if s.Assign.Target.Base == IterPosParamName {
			return &diag.MainFunctionShape{Pos: s.Assign.Pos, Detail: "main must not assign to " + IterPosParamName}
		}
	case s.If != nil:
		if err := checkNoIterPosAssignment(s.If.Body); err != nil {
			return err
		}
		if s.If.Else != nil {
			if s.If.Else.If != nil {
				return checkStmt(&ast.Stmt{If: s.If.Else.If})
			}
			return checkNoIterPosAssignment(s.If.Else.Body)
		}
	case s.For != nil:
		if s.For.CStyle != nil {
			return checkNoIterPosAssignment(s.For.CStyle.Body)
		}
		if s.For.Range != nil {
			return checkNoIterPosAssignment(s.For.Range.Body)
		}
	}
	return nil
}
