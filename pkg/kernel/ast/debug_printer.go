package ast

import (
	"fmt"
	"strings"
)

// DebugPrinter renders a .kernel file's AST as indented text, used by
// `kernelc check --dump-ast` and by parser tests that want a readable
// assertion target instead of comparing struct pointers. Adapted from the
// teacher's pkg/visitors.DebugPrinter, generalized from the old template
// dialect's node set to this one.
type DebugPrinter struct {
	BaseVisitor
	output strings.Builder
	indent int
}

// NewDebugPrinter returns an empty DebugPrinter ready to visit a File.
func NewDebugPrinter() *DebugPrinter { return &DebugPrinter{} }

// String returns the accumulated output.
func (d *DebugPrinter) String() string { return d.output.String() }

func (d *DebugPrinter) print(format string, args ...interface{}) {
	d.output.WriteString(strings.Repeat("  ", d.indent))
	fmt.Fprintf(&d.output, format, args...)
	d.output.WriteString("\n")
}

func (d *DebugPrinter) VisitFile(n *File) interface{} {
	d.print("File: package %s", n.Package)
	d.indent++
	for _, imp := range n.Imports {
		imp.Accept(d)
	}
	for _, item := range n.Items {
		item.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitImport(n *Import) interface{} {
	d.print("Import: %s", n.Path)
	return nil
}

func (d *DebugPrinter) VisitTopLevel(n *TopLevel) interface{} {
	switch {
	case n.Const != nil:
		n.Const.Accept(d)
	case n.Type != nil:
		n.Type.Accept(d)
	case n.Func != nil:
		n.Func.Accept(d)
	}
	return nil
}

func (d *DebugPrinter) VisitConstDecl(n *ConstDecl) interface{} {
	d.print("Const: %s", n.Name)
	return nil
}

func (d *DebugPrinter) VisitTypeDecl(n *TypeDecl) interface{} {
	markers := make([]string, 0, len(n.Decorators))
	for _, dec := range n.Decorators {
		markers = append(markers, "@"+dec.Name)
	}
	d.print("TypeDecl: %s %s", n.Name, strings.Join(markers, " "))
	d.indent++
	if n.Struct != nil {
		n.Struct.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitStructType(n *StructType) interface{} {
	d.print("Struct:")
	d.indent++
	for _, f := range n.Fields {
		f.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitField(n *Field) interface{} {
	d.print("Field: %s", n.Name)
	return nil
}

func (d *DebugPrinter) VisitFuncDecl(n *FuncDecl) interface{} {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Name
	}
	d.print("Func: %s(%s)", n.Name, strings.Join(params, ", "))
	d.indent++
	if n.Body != nil {
		n.Body.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitBlock(n *Block) interface{} {
	for _, s := range n.Stmts {
		s.Accept(d)
	}
	return nil
}

func (d *DebugPrinter) VisitStmt(n *Stmt) interface{} {
	switch {
	case n.VarDecl != nil:
		n.VarDecl.Accept(d)
	case n.Assign != nil:
		n.Assign.Accept(d)
	case n.Return != nil:
		n.Return.Accept(d)
	case n.If != nil:
		n.If.Accept(d)
	case n.For != nil:
		n.For.Accept(d)
	case n.CallStmt != nil:
		n.CallStmt.Accept(d)
	}
	return nil
}

func (d *DebugPrinter) VisitVarDecl(n *VarDecl) interface{} {
	d.print("VarDecl: %s", n.Name)
	return nil
}

func (d *DebugPrinter) VisitAssignStmt(n *AssignStmt) interface{} {
	d.print("Assign: %s %s", n.Target.Base, n.Op)
	return nil
}

func (d *DebugPrinter) VisitReturnStmt(n *ReturnStmt) interface{} {
	d.print("Return")
	return nil
}

func (d *DebugPrinter) VisitIfStmt(n *IfStmt) interface{} {
	d.print("If:")
	d.indent++
	if n.Body != nil {
		n.Body.Accept(d)
	}
	if n.Else != nil {
		n.Else.Accept(d)
	}
	d.indent--
	return nil
}

func (d *DebugPrinter) VisitCallStmt(n *CallStmt) interface{} {
	if n.Intrinsic != nil {
		n.Intrinsic.Accept(d)
		return nil
	}
	d.print("CallStmt")
	return nil
}

func (d *DebugPrinter) VisitIntrinsic(n *Intrinsic) interface{} {
	d.print("Intrinsic: op=%d target=%s", n.Op, n.Target)
	return nil
}
