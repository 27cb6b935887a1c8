package mirror

import (
	"fmt"
	"strings"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
)

// RenderFunction renders fn's Go mirror text. Helper-function bodies are
// host text essentially unchanged (spec §4.7: "same helper functions,
// unchanged host text") since P2's intrinsic nodes, when present, render
// to their host-mirror form instead of the GPU form; main gets its
// signature rewritten per the contract below.
func RenderFunction(fn *ast.FuncDecl, reg *descriptor.Registry, m *descriptor.Module) (string, error) {
	r := &funcRenderer{reg: reg}
	if fn.Name == "main" {
		return r.renderMain(fn, m)
	}
	return r.renderPlain(fn)
}

type funcRenderer struct {
	reg   *descriptor.Registry
	level int
}

func (r *funcRenderer) ind() string { return strings.Repeat("\t", r.level) }

func (r *funcRenderer) renderPlain(fn *ast.FuncDecl) (string, error) {
	var b strings.Builder
	b.WriteString("func ")
	b.WriteString(fn.Name)
	b.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(" ")
		b.WriteString(GoTypeName(p.Type))
	}
	b.WriteString(")")
	if fn.Result != nil {
		b.WriteString(" ")
		b.WriteString(GoTypeName(fn.Result))
	}
	b.WriteString(" {\n")
	r.level++
	body, err := r.block(fn.Body)
	r.level--
	if err != nil {
		return "", err
	}
	b.WriteString(body)
	b.WriteString("}")
	return b.String(), nil
}

// renderMain rewrites main's signature to the host-callable oracle shape:
// (iterPos [3]uint32, <config params by value>, <input params as []T>,
// <output params as *[]T>), and prepends one local per input and output
// array, named by LengthConstName and set from that slice's length (spec
// §4.7). The VecLen/Len/MaxLen intrinsics do not read these locals; they
// render as len() on the slices directly (see intrinsic).
func (r *funcRenderer) renderMain(fn *ast.FuncDecl, m *descriptor.Module) (string, error) {
	var b strings.Builder
	b.WriteString("func Main(iterPos [3]uint32")
	for _, ct := range m.Configs {
		fmt.Fprintf(&b, ", %s %s", ct.Lower, ct.Ident)
	}
	for _, ct := range m.InputArrays {
		fmt.Fprintf(&b, ", %s []%s", ct.Lower+"Input", ct.Ident)
	}
	for _, ct := range m.OutputArrays {
		fmt.Fprintf(&b, ", %s *[]%s", ct.Lower+"Output", ct.Ident)
	}
	b.WriteString(") {\n")
	r.level++
	for _, ct := range m.InputArrays {
		fmt.Fprintf(&b, "%s%s := uint32(len(%s))\n", r.ind(), ct.LengthConstName(), ct.Lower+"Input")
	}
	for _, ct := range m.OutputArrays {
		fmt.Fprintf(&b, "%s%s := uint32(len(*%s))\n", r.ind(), ct.LengthConstName(), ct.Lower+"Output")
	}
	body, err := r.block(fn.Body)
	r.level--
	if err != nil {
		return "", err
	}
	b.WriteString(body)
	b.WriteString("}")
	return b.String(), nil
}

func (r *funcRenderer) block(b *ast.Block) (string, error) {
	var out strings.Builder
	for _, s := range b.Stmts {
		line, err := r.stmt(s)
		if err != nil {
			return "", err
		}
		out.WriteString(line)
	}
	return out.String(), nil
}

func (r *funcRenderer) stmt(s *ast.Stmt) (string, error) {
	switch {
	case s.VarDecl != nil:
		return r.varDecl(s.VarDecl)
	case s.Assign != nil:
		return r.assign(s.Assign)
	case s.Return != nil:
		return r.ret(s.Return)
	case s.If != nil:
		return r.ifStmt(s.If)
	case s.For != nil:
		return r.forStmt(s.For)
	case s.CallStmt != nil:
		return r.callStmt(s.CallStmt)
	}
	return "", nil
}

func (r *funcRenderer) varDecl(v *ast.VarDecl) (string, error) {
	val, err := r.expr(v.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s := %s\n", r.ind(), v.Name, val), nil
}

func (r *funcRenderer) lvalue(lv *ast.LValue) string {
	var b strings.Builder
	b.WriteString(lv.Base)
	for _, f := range lv.Fields {
		b.WriteString(".")
		b.WriteString(f)
	}
	return b.String()
}

func (r *funcRenderer) assign(a *ast.AssignStmt) (string, error) {
	val, err := r.expr(a.Value)
	if err != nil {
		return "", err
	}
	target := r.lvalue(a.Target)
	if a.Target.Index != nil {
		idx, err := r.expr(a.Target.Index)
		if err != nil {
			return "", err
		}
		target += "[" + idx + "]"
	}
	return fmt.Sprintf("%s%s %s %s\n", r.ind(), target, a.Op, val), nil
}

func (r *funcRenderer) ret(rs *ast.ReturnStmt) (string, error) {
	if rs.Value == nil {
		return r.ind() + "return\n", nil
	}
	val, err := r.expr(rs.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sreturn %s\n", r.ind(), val), nil
}

func (r *funcRenderer) ifStmt(s *ast.IfStmt) (string, error) {
	cond, err := r.expr(s.Cond)
	if err != nil {
		return "", err
	}
	r.level++
	body, err := r.block(s.Body)
	r.level--
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("%sif %s {\n%s%s}", r.ind(), cond, body, r.ind())
	if s.Else != nil {
		if s.Else.If != nil {
			elseBody, err := r.ifStmt(s.Else.If)
			if err != nil {
				return "", err
			}
			out += " else " + strings.TrimPrefix(elseBody, r.ind())
		} else {
			r.level++
			eb, err := r.block(s.Else.Body)
			r.level--
			if err != nil {
				return "", err
			}
			out += fmt.Sprintf(" else {\n%s%s}", eb, r.ind())
		}
	}
	return out + "\n", nil
}

func (r *funcRenderer) forStmt(s *ast.ForStmt) (string, error) {
	c := s.CStyle
	init, err := r.varDecl(&ast.VarDecl{Name: c.Init.Name, Value: c.Init.Value})
	if err != nil {
		return "", err
	}
	cond, err := r.expr(c.Cond)
	if err != nil {
		return "", err
	}
	post, err := r.assign(c.Post)
	if err != nil {
		return "", err
	}
	r.level++
	body, err := r.block(c.Body)
	r.level--
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sfor %s %s; %s {\n%s%s}\n",
		r.ind(), strings.TrimSpace(strings.TrimSuffix(init, "\n")), cond,
		strings.TrimSpace(strings.TrimSuffix(post, "\n")), body, r.ind()), nil
}

func (r *funcRenderer) callStmt(cs *ast.CallStmt) (string, error) {
	if cs.Intrinsic != nil {
		s, err := r.intrinsic(cs.Intrinsic)
		if err != nil {
			return "", err
		}
		return r.ind() + s + "\n", nil
	}
	s, err := r.callOrSelect(cs.Call)
	if err != nil {
		return "", err
	}
	return r.ind() + s + "\n", nil
}

func (r *funcRenderer) expr(e *ast.Expr) (string, error) {
	left, err := r.primary(e.Left)
	if err != nil {
		return "", err
	}
	for _, op := range e.BinOps {
		right, err := r.primary(op.Right)
		if err != nil {
			return "", err
		}
		left = left + " " + op.Op + " " + right
	}
	return left, nil
}

func (r *funcRenderer) primary(p *ast.Primary) (string, error) {
	var val string
	var err error
	switch {
	case p.Unary != nil:
		var inner string
		inner, err = r.primary(p.Unary.Right)
		val = p.Unary.Op + inner
	case p.Composite != nil:
		val, err = r.composite(p.Composite)
	case p.IndexExpr != nil:
		var idx string
		idx, err = r.expr(p.IndexExpr.Index)
		val = p.IndexExpr.Base + "[" + idx + "]"
	case p.CallOrSel != nil:
		val, err = r.callOrSelect(p.CallOrSel)
	case p.Intrinsic != nil:
		val, err = r.intrinsic(p.Intrinsic)
	case p.Literal != nil:
		val, err = r.literal(p.Literal)
	case p.Paren != nil:
		var inner string
		inner, err = r.expr(p.Paren)
		val = "(" + inner + ")"
	case p.Ident != "":
		val = p.Ident
	}
	if err != nil {
		return "", err
	}
	if p.As != nil {
		return GoTypeName(p.As) + "(" + val + ")", nil
	}
	return val, nil
}

func (r *funcRenderer) composite(c *ast.CompositeLit) (string, error) {
	ct := r.reg.Lookup(c.TypeName)
	fields := make([]string, 0, len(c.Elements))
	for _, kv := range c.Elements {
		v, err := r.expr(kv.Value)
		if err != nil {
			return "", err
		}
		fields = append(fields, kv.Key+": "+v)
	}
	name := c.TypeName
	if ct == nil {
		name = GoTypeName(&ast.Type{Scalar: &ast.ScalarType{Name: c.TypeName}})
	}
	return name + "{" + strings.Join(fields, ", ") + "}", nil
}

func (r *funcRenderer) callOrSelect(c *ast.CallOrSelect) (string, error) {
	var b strings.Builder
	b.WriteString(c.Base)
	for _, f := range c.Fields {
		b.WriteString(".")
		b.WriteString(f)
	}
	if c.Call == nil {
		return b.String(), nil
	}
	args := make([]string, 0, len(c.Call.Args))
	for _, a := range c.Call.Args {
		v, err := r.expr(a)
		if err != nil {
			return "", err
		}
		args = append(args, v)
	}
	return b.String() + "(" + strings.Join(args, ", ") + ")", nil
}

func (r *funcRenderer) literal(l *ast.Literal) (string, error) {
	switch {
	case l.Number != nil:
		value, _, err := splitSuffix(*l.Number)
		return value, err
	case l.String != nil:
		return *l.String, nil
	case l.Bool != nil:
		return *l.Bool, nil
	}
	return "", nil
}

// intrinsic renders a validated P2 intrinsic in its host-mirror form (spec
// §4.2 expansion table, host-mirror column).
func (r *funcRenderer) intrinsic(in *ast.Intrinsic) (string, error) {
	ct := r.reg.Lookup(in.Target)
	if ct == nil {
		return "", fmt.Errorf("intrinsic target %q not found", in.Target)
	}
	lower := ct.Lower
	switch in.Op {
	case ast.OpVecLen:
		return fmt.Sprintf("uint32(len(%sInput))", lower), nil
	case ast.OpVecVal:
		idx, err := r.expr(in.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sInput[%s]", lower, idx), nil
	case ast.OpConfigGet:
		return lower, nil
	case ast.OpPush:
		v, err := r.expr(in.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("*%sOutput = append(*%sOutput, %s)", lower, lower, v), nil
	case ast.OpLen, ast.OpMaxLen:
		return fmt.Sprintf("uint32(len(*%sOutput))", lower), nil
	case ast.OpSet:
		idx, err := r.expr(in.Args[0])
		if err != nil {
			return "", err
		}
		v, err := r.expr(in.Args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(*%sOutput)[%s] = %s", lower, idx, v), nil
	}
	return "", fmt.Errorf("unknown intrinsic op")
}

// splitSuffix strips a dialect numeric-literal suffix so the value parses as
// a plain Go literal; the mirror has no need for the GPU-side f32(...)
// constructor wrapping because Go already infers the right type from the
// parameter/variable context.
func splitSuffix(raw string) (string, string, error) {
	for _, s := range []string{"f32", "f16", "u32", "i32"} {
		if strings.HasSuffix(raw, "_"+s) {
			return strings.TrimSuffix(raw, "_"+s), s, nil
		}
		if strings.HasSuffix(raw, s) {
			trimmed := strings.TrimSuffix(raw, s)
			if trimmed != "" {
				return trimmed, s, nil
			}
		}
	}
	return raw, "", nil
}
