// Package helpers implements P2, the high-level helper rewriter: it walks
// every function body in pre-order, recognises the seven high-level IO
// intrinsics (VecInput/ConfigInput/Output method calls), validates them
// against the custom-type registry, and replaces each recognised call with
// an ast.Intrinsic node that P6 and P7 render differently (spec §4.2).
//
// The kind/method compatibility matrix is grounded on
// bevy_gpu_compute_macro/src/transformer/transform_wgsl_helper_methods/
// matcher.rs (WgslHelperMethodMatcher::choose_expand_format), translated
// from Rust's assert!-based proc-macro diagnostics into Go error returns.
package helpers

import (
	"strconv"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/diag"
)

type methodSpec struct {
	op          ast.IntrinsicOp
	allowedKind map[descriptor.Kind]bool
	minArgs     int
}

var specs = map[string]methodSpec{
	"VecLen":  {ast.OpVecLen, kinds(descriptor.KindInputArray), 0},
	"VecVal":  {ast.OpVecVal, kinds(descriptor.KindInputArray), 1},
	"Get":     {ast.OpConfigGet, kinds(descriptor.KindConfig), 0},
	"Push":    {ast.OpPush, kinds(descriptor.KindOutputVec), 1},
	"Len":     {ast.OpLen, kinds(descriptor.KindOutputArray, descriptor.KindOutputVec), 0},
	"MaxLen":  {ast.OpMaxLen, kinds(descriptor.KindOutputArray, descriptor.KindOutputVec), 0},
	"Set":     {ast.OpSet, kinds(descriptor.KindOutputArray), 2},
}

var receivers = map[string]bool{"VecInput": true, "ConfigInput": true, "Output": true}

func kinds(ks ...descriptor.Kind) map[descriptor.Kind]bool {
	m := make(map[descriptor.Kind]bool, len(ks))
	for _, k := range ks {
		m[k] = true
	}
	return m
}

// Rewrite mutates f in place, replacing every recognised intrinsic call with
// an ast.Intrinsic node, and marks reg entries that are the target of a Push
// with RequiresCounter. Returns the first validation failure encountered.
func Rewrite(f *ast.File, reg *descriptor.Registry) error {
	for _, item := range f.Items {
		if item.Func == nil {
			continue
		}
		isMain := item.Func.Name == "main"
		if err := rewriteBlock(item.Func.Body, item.Func.Name, isMain, reg); err != nil {
			return err
		}
	}
	return nil
}

func rewriteBlock(b *ast.Block, fnName string, isMain bool, reg *descriptor.Registry) error {
	if b == nil {
		return nil
	}
	for _, s := range b.Stmts {
		if err := rewriteStmt(s, fnName, isMain, reg); err != nil {
			return err
		}
	}
	return nil
}

func rewriteStmt(s *ast.Stmt, fnName string, isMain bool, reg *descriptor.Registry) error {
	switch {
	case s.VarDecl != nil:
		return rewriteExpr(s.VarDecl.Value, fnName, isMain, reg)
	case s.Assign != nil:
		return rewriteExpr(s.Assign.Value, fnName, isMain, reg)
	case s.Return != nil:
		if s.Return.Value != nil {
			return rewriteExpr(s.Return.Value, fnName, isMain, reg)
		}
	case s.If != nil:
		if err := rewriteExpr(s.If.Cond, fnName, isMain, reg); err != nil {
			return err
		}
		if err := rewriteBlock(s.If.Body, fnName, isMain, reg); err != nil {
			return err
		}
		if s.If.Else != nil {
			if s.If.Else.If != nil {
				return rewriteStmt(&ast.Stmt{If: s.If.Else.If}, fnName, isMain, reg)
			}
			return rewriteBlock(s.If.Else.Body, fnName, isMain, reg)
		}
	case s.For != nil:
		if s.For.CStyle != nil {
			c := s.For.CStyle
			if err := rewriteExpr(c.Init.Value, fnName, isMain, reg); err != nil {
				return err
			}
			if err := rewriteExpr(c.Cond, fnName, isMain, reg); err != nil {
				return err
			}
			if err := rewriteExpr(c.Post.Value, fnName, isMain, reg); err != nil {
				return err
			}
			return rewriteBlock(c.Body, fnName, isMain, reg)
		}
		if s.For.Range != nil {
			return rewriteBlock(s.For.Range.Body, fnName, isMain, reg)
		}
	case s.CallStmt != nil:
		return rewriteCallStmt(s.CallStmt, fnName, isMain, reg)
	}
	return nil
}

func rewriteExpr(e *ast.Expr, fnName string, isMain bool, reg *descriptor.Registry) error {
	if e == nil {
		return nil
	}
	if err := rewritePrimary(e.Left, fnName, isMain, reg); err != nil {
		return err
	}
	for _, op := range e.BinOps {
		if err := rewritePrimary(op.Right, fnName, isMain, reg); err != nil {
			return err
		}
	}
	return nil
}

func rewriteCallStmt(cs *ast.CallStmt, fnName string, isMain bool, reg *descriptor.Registry) error {
	if cs.Call == nil {
		return nil
	}
	return rewritePrimaryCall(cs.Call, fnName, isMain, reg, func(in *ast.Intrinsic) {
		cs.Call = nil
		cs.Intrinsic = in
	})
}

func rewritePrimary(p *ast.Primary, fnName string, isMain bool, reg *descriptor.Registry) error {
	if p == nil {
		return nil
	}
	switch {
	case p.CallOrSel != nil:
		return rewritePrimaryCall(p.CallOrSel, fnName, isMain, reg, func(in *ast.Intrinsic) {
			p.CallOrSel = nil
			p.Intrinsic = in
		})
	case p.Unary != nil:
		return rewritePrimary(p.Unary.Right, fnName, isMain, reg)
	case p.Composite != nil:
		for _, kv := range p.Composite.Elements {
			if err := rewriteExpr(kv.Value, fnName, isMain, reg); err != nil {
				return err
			}
		}
	case p.IndexExpr != nil:
		return rewriteExpr(p.IndexExpr.Index, fnName, isMain, reg)
	case p.Paren != nil:
		return rewriteExpr(p.Paren, fnName, isMain, reg)
	}
	return nil
}

// rewritePrimaryCall inspects a CallOrSelect; if it matches the
// Receiver.Method[Target](args) intrinsic shape it validates and, when host
// holds the owning *Primary, replaces CallOrSel with the resulting
// Intrinsic. Non-intrinsic calls (ordinary helper function calls) still
// have their arguments walked for nested intrinsics.
func rewritePrimaryCall(c *ast.CallOrSelect, fnName string, isMain bool, reg *descriptor.Registry, setIntrinsic func(*ast.Intrinsic)) error {
	if c.Call == nil || len(c.Fields) != 1 || !receivers[c.Base] {
		if c.Call != nil {
			for _, a := range c.Call.Args {
				if err := rewriteExpr(a, fnName, isMain, reg); err != nil {
					return err
				}
			}
		}
		return nil
	}

	method := c.Fields[0]
	spec, ok := specs[method]
	if !ok {
		for _, a := range c.Call.Args {
			if err := rewriteExpr(a, fnName, isMain, reg); err != nil {
				return err
			}
		}
		return nil
	}

	if !isMain {
		return &diag.HelperOutsideMain{Pos: c.Pos, Function: fnName}
	}
	if c.Generic == nil || c.Generic.Scalar == nil {
		return &diag.MalformedBinding{Pos: c.Pos, Detail: method + " requires a generic type argument"}
	}
	target := c.Generic.Scalar.Name
	ct := reg.Lookup(target)
	if ct == nil {
		return &diag.UnsupportedTypeName{Pos: c.Pos, Name: target}
	}
	if !spec.allowedKind[ct.Kind] {
		return &diag.KindMismatch{Pos: c.Pos, TypeName: target, ActualKind: ct.Kind.String(), Method: method}
	}
	if len(c.Call.Args) < spec.minArgs {
		return &diag.MalformedBinding{Pos: c.Pos, Detail: method + " requires " + strconv.Itoa(spec.minArgs) + " argument(s)"}
	}

	for _, a := range c.Call.Args {
		if err := rewriteExpr(a, fnName, isMain, reg); err != nil {
			return err
		}
	}

	if spec.op == ast.OpPush {
		ct.RequiresCounter = true
	}

	if setIntrinsic != nil {
		setIntrinsic(&ast.Intrinsic{
			Pos:    c.Pos,
			Op:     spec.op,
			Target: target,
			Args:   c.Call.Args,
		})
	}
	return nil
}
