package shader

import (
	"fmt"
	"strings"

	"github.com/gaarutyunov/kernelc/pkg/kernel/ast"
	"github.com/gaarutyunov/kernelc/pkg/kernel/descriptor"
	"github.com/gaarutyunov/kernelc/pkg/kernel/lower"
)

// RenderFunction renders fn's WGSL text: signature plus body, mirroring
// guix's generateFunction/generateBody split. Called once per helper and
// once for main before Emit assembles the full module text.
func RenderFunction(fn *ast.FuncDecl, reg *descriptor.Registry) (string, error) {
	r := &funcRenderer{reg: reg}
	return r.render(fn)
}

type funcRenderer struct {
	reg   *descriptor.Registry
	level int
}

func (r *funcRenderer) render(fn *ast.FuncDecl) (string, error) {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(fn.Name)
	b.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if fn.Name == "main" {
			b.WriteString("@builtin(global_invocation_id) ")
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(descriptor.BuiltinVecType)
			continue
		}
		wgslType, err := lower.GPUTypeName(p.Type, r.reg)
		if err != nil {
			return "", err
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(wgslType)
	}
	b.WriteString(")")
	if fn.Result != nil {
		wgslType, err := lower.GPUTypeName(fn.Result, r.reg)
		if err != nil {
			return "", err
		}
		b.WriteString(" -> ")
		b.WriteString(wgslType)
	}
	b.WriteString(" {\n")
	r.level++
	body, err := r.block(fn.Body)
	if err != nil {
		return "", err
	}
	b.WriteString(body)
	r.level--
	b.WriteString("}")
	return b.String(), nil
}

func (r *funcRenderer) ind() string { return strings.Repeat("    ", r.level) }

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
	kw := "let"
	if v.Mutable {
		kw = "var"
	}
	val, err := r.expr(v.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s %s = %s;\n", r.ind(), kw, v.Name, val), nil
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
	return fmt.Sprintf("%s%s %s %s;\n", r.ind(), target, a.Op, val), nil
}

func (r *funcRenderer) ret(rs *ast.ReturnStmt) (string, error) {
	if rs.Value == nil {
		return r.ind() + "return;\n", nil
	}
	val, err := r.expr(rs.Value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sreturn %s;\n", r.ind(), val), nil
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
	init, err := r.varDecl(c.Init)
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
	return fmt.Sprintf("%sfor (%s %s; %s) {\n%s%s}\n",
		r.ind(), strings.TrimSpace(strings.TrimSuffix(init, "\n")), cond,
		strings.TrimSpace(strings.TrimSuffix(post, ";\n")), body, r.ind()), nil
}

func (r *funcRenderer) callStmt(cs *ast.CallStmt) (string, error) {
	if cs.Intrinsic != nil {
		s, err := r.intrinsic(cs.Intrinsic)
		if err != nil {
			return "", err
		}
		if cs.Intrinsic.Op == ast.OpPush {
			return r.ind() + s + "\n", nil
		}
		return r.ind() + s + ";\n", nil
	}
	s, err := r.callOrSelect(cs.Call)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s;\n", r.ind(), s), nil
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
		wgslType, terr := lower.GPUTypeName(p.As, r.reg)
		if terr != nil {
			return "", terr
		}
		return wgslType + "(" + val + ")", nil
	}
	return val, nil
}

func (r *funcRenderer) composite(c *ast.CompositeLit) (string, error) {
	ct := r.reg.Lookup(c.TypeName)
	ordered := c.Elements
	if ct != nil && ct.Decl != nil && ct.Decl.Struct != nil {
		byName := make(map[string]*ast.KeyValue, len(c.Elements))
		for _, kv := range c.Elements {
			byName[kv.Key] = kv
		}
		ordered = ordered[:0]
		for _, f := range ct.Decl.Struct.Fields {
			if kv, ok := byName[f.Name]; ok {
				ordered = append(ordered, kv)
			}
		}
	}
	args := make([]string, 0, len(ordered))
	for _, kv := range ordered {
		v, err := r.expr(kv.Value)
		if err != nil {
			return "", err
		}
		args = append(args, v)
	}
	name := c.TypeName
	if lower.IsBuiltinScalar(name) {
		wgslType, err := lower.GPUTypeName(&ast.Type{Scalar: &ast.ScalarType{Name: name}}, r.reg)
		if err == nil {
			name = wgslType
		}
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
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
		return lower.GPULiteral(*l.Number)
	case l.String != nil:
		return *l.String, nil
	case l.Bool != nil:
		return *l.Bool, nil
	}
	return "", nil
}

// intrinsic renders a validated P2 intrinsic in its GPU form (spec §4.2
// expansion table, GPU column). ct is looked up for the counter/length
// constant names it carries.
func (r *funcRenderer) intrinsic(in *ast.Intrinsic) (string, error) {
	ct := r.reg.Lookup(in.Target)
	if ct == nil {
		return "", fmt.Errorf("intrinsic target %q not found", in.Target)
	}
	switch in.Op {
	case ast.OpVecLen:
		return ct.LengthConstName(), nil
	case ast.OpVecVal:
		idx, err := r.expr(in.Args[0])
		if err != nil {
			return "", err
		}
		return ct.ArrayName() + "[" + idx + "]", nil
	case ast.OpConfigGet:
		return ct.Ident, nil
	case ast.OpPush:
		v, err := r.expr(in.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"{ let idx = atomicAdd(&%s, 1u); if idx < %s { %s[idx] = %s; } }",
			ct.CounterName(), ct.LengthConstName(), ct.ArrayName(), v,
		), nil
	case ast.OpLen:
		if ct.Kind == descriptor.KindOutputVec {
			return ct.CounterName(), nil
		}
		return ct.LengthConstName(), nil
	case ast.OpMaxLen:
		return ct.LengthConstName(), nil
	case ast.OpSet:
		idx, err := r.expr(in.Args[0])
		if err != nil {
			return "", err
		}
		v, err := r.expr(in.Args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s] = %s", ct.ArrayName(), idx, v), nil
	}
	return "", fmt.Errorf("unknown intrinsic op")
}
