// Package oracle is a tiny tree-walking interpreter over the *pre-emission*
// host AST (the same ast.FuncDecl Main the P6/P7 renderers consume), used by
// round-trip tests to check that the generated mirror's semantics match a
// direct interpretation of the author's code — without invoking `go run` on
// generated source or a real GPU (spec §8, "round-trip / oracle property").
//
// It only needs to execute the subset of the dialect lower.Validate accepts:
// var/assign/if/for(C-style)/return/call statements, arithmetic and
// comparison expressions, struct composite literals, and the seven IO
// intrinsics. Every rejected construct (closures, tuples, match, loop,
// range-for) is a compile-time error before a program ever reaches here, so
// the interpreter does not need to handle them — it reports
// errUnsupported if it ever meets one, which would indicate a lower.Validate
// gap rather than a legitimate program.
package oracle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
)

// errUnsupported is returned for any construct that should have been
// rejected earlier in the pipeline; it is never expected from a module that
// already compiled successfully.
var errUnsupported = errors.New("oracle: unsupported construct reached the interpreter")

// OutputSink accumulates one output type's values across an invocation:
// Push appends (bounded by MaxLen), Set writes by index.
type OutputSink struct {
	Values []interface{}
	MaxLen int
}

func newOutputSink(maxLen int) *OutputSink {
	return &OutputSink{Values: make([]interface{}, 0, maxLen), MaxLen: maxLen}
}

func (s *OutputSink) push(v interface{}) {
	if len(s.Values) >= s.MaxLen {
		return
	}
	s.Values = append(s.Values, v)
}

func (s *OutputSink) set(i int, v interface{}) {
	for len(s.Values) <= i {
		s.Values = append(s.Values, nil)
	}
	s.Values[i] = v
}

// Invocation is one call's external state: configs (one value per config
// type), inputs (one slice per input-array type), and outputs (one sink per
// output type, pre-sized to its MaxLen).
type Invocation struct {
	IterPos [3]uint32
	Configs map[string]interface{}
	Inputs  map[string][]interface{}
	Outputs map[string]*OutputSink
}

// NewInvocation builds an Invocation with an output sink per descriptor in m.
func NewInvocation(m *descriptor.Module, iterPos [3]uint32, configs map[string]interface{}, inputs map[string][]interface{}, maxLens map[string]int) *Invocation {
	outs := make(map[string]*OutputSink, len(m.OutputArrays))
	for _, ct := range m.OutputArrays {
		outs[ct.Ident] = newOutputSink(maxLens[ct.Ident])
	}
	return &Invocation{IterPos: iterPos, Configs: configs, Inputs: inputs, Outputs: outs}
}

// signal distinguishes a normal fallthrough from an executed return.
type signal int

const (
	signalNone signal = iota
	signalReturn
)

// interp runs a single Main invocation against one Invocation's state.
type interp struct {
	reg   *descriptor.Registry
	inv   *Invocation
	scope []map[string]interface{}
}

// Run interprets fn's body (normally the Main function) against inv. It
// seeds the top scope with fn's single parameter (conventionally iter_pos)
// bound to a struct-shaped value carrying the invocation's x/y/z fields,
// mirroring the vec3<u32> the GPU built-in provides.
func Run(fn *ast.FuncDecl, reg *descriptor.Registry, inv *Invocation) error {
	it := &interp{reg: reg, inv: inv, scope: []map[string]interface{}{{}}}
	if len(fn.Params) == 1 {
		it.setLocal(fn.Params[0].Name, map[string]interface{}{
			"x": float64(inv.IterPos[0]),
			"y": float64(inv.IterPos[1]),
			"z": float64(inv.IterPos[2]),
		})
	}
	_, err := it.execBlock(fn.Body)
	return err
}

func (it *interp) pushScope()         { it.scope = append(it.scope, map[string]interface{}{}) }
func (it *interp) popScope()          { it.scope = it.scope[:len(it.scope)-1] }
func (it *interp) setLocal(n string, v interface{}) {
	it.scope[len(it.scope)-1][n] = v
}

func (it *interp) lookup(n string) (interface{}, bool) {
	for i := len(it.scope) - 1; i >= 0; i-- {
		if v, ok := it.scope[i][n]; ok {
			return v, true
		}
	}
	return nil, false
}

// assignVar walks scopes outward looking for an existing binding of n to
// mutate in place; falls back to the innermost scope for a fresh one.
func (it *interp) assignVar(n string, v interface{}) {
	for i := len(it.scope) - 1; i >= 0; i-- {
		if _, ok := it.scope[i][n]; ok {
			it.scope[i][n] = v
			return
		}
	}
	it.setLocal(n, v)
}

func (it *interp) execBlock(b *ast.Block) (signal, error) {
	if b == nil {
		return signalNone, nil
	}
	it.pushScope()
	defer it.popScope()
	for _, s := range b.Stmts {
		sig, err := it.execStmt(s)
		if err != nil {
			return signalNone, err
		}
		if sig == signalReturn {
			return signalReturn, nil
		}
	}
	return signalNone, nil
}

func (it *interp) execStmt(s *ast.Stmt) (signal, error) {
	switch {
	case s.VarDecl != nil:
		v, err := it.evalExpr(s.VarDecl.Value)
		if err != nil {
			return signalNone, err
		}
		it.setLocal(s.VarDecl.Name, v)
		return signalNone, nil

	case s.Assign != nil:
		return signalNone, it.execAssign(s.Assign)

	case s.Return != nil:
		return signalReturn, nil

	case s.If != nil:
		return it.execIf(s.If)

	case s.For != nil:
		return it.execFor(s.For)

	case s.CallStmt != nil:
		if s.CallStmt.Intrinsic != nil {
			_, err := it.evalIntrinsic(s.CallStmt.Intrinsic)
			return signalNone, err
		}
		// A non-intrinsic bare call statement (an ordinary helper function
		// invocation) has no observable effect the oracle can model, since
		// helper functions are pure transforms over their arguments and
		// their return value is discarded here exactly as it is in the
		// author's source.
		return signalNone, nil

	default:
		return signalNone, errUnsupported
	}
}

func (it *interp) execAssign(a *ast.AssignStmt) error {
	v, err := it.evalExpr(a.Value)
	if err != nil {
		return err
	}
	if a.Op != "=" {
		cur, ok := it.resolveLValue(a.Target)
		if !ok {
			return fmt.Errorf("oracle: assignment to undeclared variable %q", a.Target.Base)
		}
		v, err = applyCompoundOp(a.Op, cur, v)
		if err != nil {
			return err
		}
	}
	return it.storeLValue(a.Target, v)
}

func applyCompoundOp(op string, cur, v interface{}) (interface{}, error) {
	switch op {
	case "+=":
		return binaryArith("+", cur, v)
	case "-=":
		return binaryArith("-", cur, v)
	case "*=":
		return binaryArith("*", cur, v)
	case "/=":
		return binaryArith("/", cur, v)
	default:
		return nil, fmt.Errorf("oracle: unsupported assignment operator %q", op)
	}
}

func (it *interp) resolveLValue(lv *ast.LValue) (interface{}, bool) {
	v, ok := it.lookup(lv.Base)
	if !ok {
		return nil, false
	}
	for _, f := range lv.Fields {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok = m[f]
		if !ok {
			return nil, false
		}
	}
	return v, true
}

func (it *interp) storeLValue(lv *ast.LValue, v interface{}) error {
	if len(lv.Fields) == 0 && lv.Index == nil {
		it.assignVar(lv.Base, v)
		return nil
	}
	base, ok := it.lookup(lv.Base)
	if !ok {
		return fmt.Errorf("oracle: assignment to undeclared variable %q", lv.Base)
	}
	target := base
	for i, f := range lv.Fields {
		m, ok := target.(map[string]interface{})
		if !ok {
			return fmt.Errorf("oracle: %q is not a struct value", lv.Base)
		}
		if i == len(lv.Fields)-1 && lv.Index == nil {
			m[f] = v
			return nil
		}
		target = m[f]
	}
	if lv.Index != nil {
		idxV, err := it.evalExpr(lv.Index)
		if err != nil {
			return err
		}
		idx := toInt(idxV)
		slice, ok := target.([]interface{})
		if !ok {
			return fmt.Errorf("oracle: %q is not indexable", lv.Base)
		}
		if idx < 0 || idx >= len(slice) {
			return fmt.Errorf("oracle: index %d out of range for %q", idx, lv.Base)
		}
		slice[idx] = v
	}
	return nil
}

func (it *interp) execIf(s *ast.IfStmt) (signal, error) {
	cond, err := it.evalExpr(s.Cond)
	if err != nil {
		return signalNone, err
	}
	if toBool(cond) {
		return it.execBlock(s.Body)
	}
	if s.Else == nil {
		return signalNone, nil
	}
	if s.Else.If != nil {
		return it.execIf(s.Else.If)
	}
	return it.execBlock(s.Else.Body)
}

func (it *interp) execFor(s *ast.ForStmt) (signal, error) {
	if s.Range != nil {
		return signalNone, errUnsupported
	}
	c := s.CStyle
	it.pushScope()
	defer it.popScope()
	if c.Init != nil {
		v, err := it.evalExpr(c.Init.Value)
		if err != nil {
			return signalNone, err
		}
		it.setLocal(c.Init.Name, v)
	}
	for {
		cond, err := it.evalExpr(c.Cond)
		if err != nil {
			return signalNone, err
		}
		if !toBool(cond) {
			return signalNone, nil
		}
		sig, err := it.execBlock(c.Body)
		if err != nil {
			return signalNone, err
		}
		if sig == signalReturn {
			return signalReturn, nil
		}
		if err := it.execAssign(c.Post); err != nil {
			return signalNone, err
		}
	}
}

func (it *interp) evalExpr(e *ast.Expr) (interface{}, error) {
	if e == nil {
		return nil, nil
	}
	left, err := it.evalPrimary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.BinOps {
		right, err := it.evalPrimary(op.Right)
		if err != nil {
			return nil, err
		}
		left, err = applyBinOp(op.Op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func applyBinOp(op string, l, r interface{}) (interface{}, error) {
	switch op {
	case "+", "-", "*", "/", "%":
		return binaryArith(op, l, r)
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	case "&&":
		return toBool(l) && toBool(r), nil
	case "||":
		return toBool(l) || toBool(r), nil
	case "<", "<=", ">", ">=":
		return compareNumeric(op, l, r)
	default:
		return nil, fmt.Errorf("oracle: unsupported operator %q", op)
	}
}

func binaryArith(op string, l, r interface{}) (interface{}, error) {
	lf, rf := toFloat(l), toFloat(r)
	switch op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		return lf / rf, nil
	case "%":
		return float64(int64(lf) % int64(rf)), nil
	default:
		return nil, fmt.Errorf("oracle: unsupported arithmetic operator %q", op)
	}
}

func compareNumeric(op string, l, r interface{}) (interface{}, error) {
	lf, rf := toFloat(l), toFloat(r)
	switch op {
	case "<":
		return lf < rf, nil
	case "<=":
		return lf <= rf, nil
	case ">":
		return lf > rf, nil
	case ">=":
		return lf >= rf, nil
	default:
		return nil, fmt.Errorf("oracle: unsupported comparison operator %q", op)
	}
}

func (it *interp) evalPrimary(p *ast.Primary) (interface{}, error) {
	var v interface{}
	var err error
	switch {
	case p.Intrinsic != nil:
		v, err = it.evalIntrinsic(p.Intrinsic)
	case p.Unary != nil:
		v, err = it.evalUnary(p.Unary)
	case p.Composite != nil:
		v, err = it.evalComposite(p.Composite)
	case p.IndexExpr != nil:
		v, err = it.evalIndex(p.IndexExpr)
	case p.CallOrSel != nil:
		v, err = it.evalCallOrSelect(p.CallOrSel)
	case p.Literal != nil:
		v, err = evalLiteral(p.Literal)
	case p.Paren != nil:
		v, err = it.evalExpr(p.Paren)
	case p.Ident != "":
		var ok bool
		v, ok = it.lookup(p.Ident)
		if !ok {
			err = fmt.Errorf("oracle: undefined identifier %q", p.Ident)
		}
	default:
		err = errUnsupported
	}
	if err != nil {
		return nil, err
	}
	if p.As != nil {
		return v, nil // cast is a no-op on the oracle's untyped numeric model
	}
	return v, nil
}

func (it *interp) evalUnary(u *ast.UnaryExpr) (interface{}, error) {
	v, err := it.evalPrimary(u.Right)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case "!":
		return !toBool(v), nil
	case "-":
		return -toFloat(v), nil
	case "+":
		return toFloat(v), nil
	default:
		return nil, fmt.Errorf("oracle: unsupported unary operator %q", u.Op)
	}
}

func (it *interp) evalComposite(c *ast.CompositeLit) (interface{}, error) {
	m := make(map[string]interface{}, len(c.Elements))
	for _, kv := range c.Elements {
		v, err := it.evalExpr(kv.Value)
		if err != nil {
			return nil, err
		}
		m[kv.Key] = v
	}
	return m, nil
}

func (it *interp) evalIndex(ix *ast.IndexExpr) (interface{}, error) {
	base, ok := it.lookup(ix.Base)
	if !ok {
		return nil, fmt.Errorf("oracle: undefined identifier %q", ix.Base)
	}
	idxV, err := it.evalExpr(ix.Index)
	if err != nil {
		return nil, err
	}
	idx := toInt(idxV)
	slice, ok := base.([]interface{})
	if !ok {
		return nil, fmt.Errorf("oracle: %q is not indexable", ix.Base)
	}
	if idx < 0 || idx >= len(slice) {
		return nil, fmt.Errorf("oracle: index %d out of range for %q", idx, ix.Base)
	}
	return slice[idx], nil
}

// evalCallOrSelect handles plain field-selector chains left over after P2
// (anything that was an intrinsic call is already an *ast.Intrinsic by the
// time the oracle sees it). A bare call here is an ordinary helper function
// invocation; the oracle does not inline helper bodies, so it evaluates to
// nil — round-trip tests should keep Main's own logic self-contained and
// exercise helper functions through their own direct unit tests instead.
func (it *interp) evalCallOrSelect(c *ast.CallOrSelect) (interface{}, error) {
	base, ok := it.lookup(c.Base)
	if !ok {
		if c.Call != nil {
			return nil, nil
		}
		return nil, fmt.Errorf("oracle: undefined identifier %q", c.Base)
	}
	v := base
	for _, f := range c.Fields {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("oracle: %q is not a struct value", c.Base)
		}
		v = m[f]
	}
	return v, nil
}

func evalLiteral(l *ast.Literal) (interface{}, error) {
	switch {
	case l.Number != nil:
		return parseNumericLiteral(*l.Number), nil
	case l.String != nil:
		return *l.String, nil
	case l.Bool != nil:
		return *l.Bool == "true", nil
	default:
		return nil, errUnsupported
	}
}

// parseNumericLiteral strips a trailing type suffix (u32, f32, i32, f16) the
// same way lower.SplitNumericSuffix does, then parses the remaining digits.
func parseNumericLiteral(raw string) float64 {
	value, _ := splitSuffix(raw)
	var f float64
	fmt.Sscanf(value, "%g", &f)
	return f
}

func splitSuffix(raw string) (value, suffix string) {
	for _, s := range []string{"u32", "i32", "f32", "f16"} {
		if len(raw) > len(s) && raw[len(raw)-len(s):] == s {
			return strings.TrimSuffix(raw[:len(raw)-len(s)], "_"), s
		}
	}
	return raw, ""
}

// evalIntrinsic implements the seven IO helpers' CPU-side semantics. For
// VecLen, VecVal, Get, Len and Set it matches the Go source that
// pkg/kernel/emit/mirror/render.go's intrinsic method generates (spec §4.2's
// host-mirror column). Push and MaxLen differ from the mirror: here Push
// stops at the sink's MaxLen and MaxLen reports that capacity, while the
// mirror appends without a bound and renders MaxLen as the output slice's
// length.
func (it *interp) evalIntrinsic(in *ast.Intrinsic) (interface{}, error) {
	ct := it.reg.Lookup(in.Target)
	if ct == nil {
		return nil, fmt.Errorf("oracle: unknown target type %q", in.Target)
	}
	switch in.Op {
	case ast.OpVecLen:
		return float64(len(it.inv.Inputs[ct.Ident])), nil

	case ast.OpVecVal:
		idxV, err := it.evalExpr(in.Args[0])
		if err != nil {
			return nil, err
		}
		idx := toInt(idxV)
		vals := it.inv.Inputs[ct.Ident]
		if idx < 0 || idx >= len(vals) {
			return nil, fmt.Errorf("oracle: VecVal index %d out of range for %q", idx, ct.Ident)
		}
		return vals[idx], nil

	case ast.OpConfigGet:
		return it.inv.Configs[ct.Ident], nil

	case ast.OpPush:
		v, err := it.evalExpr(in.Args[0])
		if err != nil {
			return nil, err
		}
		it.inv.Outputs[ct.Ident].push(v)
		return nil, nil

	case ast.OpLen:
		return float64(len(it.inv.Outputs[ct.Ident].Values)), nil

	case ast.OpMaxLen:
		return float64(it.inv.Outputs[ct.Ident].MaxLen), nil

	case ast.OpSet:
		idxV, err := it.evalExpr(in.Args[0])
		if err != nil {
			return nil, err
		}
		v, err := it.evalExpr(in.Args[1])
		if err != nil {
			return nil, err
		}
		it.inv.Outputs[ct.Ident].set(toInt(idxV), v)
		return nil, nil

	default:
		return nil, fmt.Errorf("oracle: unhandled intrinsic op %v", in.Op)
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toInt(v interface{}) int { return int(toFloat(v)) }

func toBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
