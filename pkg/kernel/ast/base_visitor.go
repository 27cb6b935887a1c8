package ast

// BaseVisitor implements Visitor with a plain depth-first walk that visits
// every child and returns nil. Concrete visitors embed BaseVisitor and
// override only the methods relevant to their pass, exactly as guix's
// WGSLGenerator and SemanticAnalyzer embed ast.BaseVisitor.
type BaseVisitor struct{}

var _ Visitor = (*BaseVisitor)(nil)

func (b *BaseVisitor) VisitFile(n *File) interface{} {
	for _, imp := range n.Imports {
		imp.Accept(b)
	}
	for _, item := range n.Items {
		item.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitImport(n *Import) interface{} { return nil }

func (b *BaseVisitor) VisitTopLevel(n *TopLevel) interface{} {
	switch {
	case n.Const != nil:
		n.Const.Accept(b)
	case n.Type != nil:
		n.Type.Accept(b)
	case n.Func != nil:
		n.Func.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitConstDecl(n *ConstDecl) interface{} {
	n.Type.Accept(b)
	n.Value.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitDecorator(n *Decorator) interface{} {
	for _, a := range n.Args {
		a.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitTypeDecl(n *TypeDecl) interface{} {
	for _, d := range n.Decorators {
		d.Accept(b)
	}
	for _, tp := range n.TypeParams {
		tp.Accept(b)
	}
	if n.Struct != nil {
		n.Struct.Accept(b)
	}
	if n.Alias != nil {
		n.Alias.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitTypeParam(n *TypeParam) interface{} { return nil }

func (b *BaseVisitor) VisitStructType(n *StructType) interface{} {
	for _, f := range n.Fields {
		f.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitField(n *Field) interface{} {
	for _, d := range n.Decorators {
		d.Accept(b)
	}
	n.Type.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitType(n *Type) interface{} {
	switch {
	case n.Array != nil:
		n.Array.Accept(b)
	case n.Slice != nil:
		n.Slice.Accept(b)
	case n.Scalar != nil:
		n.Scalar.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitArrayType(n *ArrayType) interface{} {
	n.Elem.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitSliceType(n *SliceType) interface{} {
	n.Elem.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitScalarType(n *ScalarType) interface{} { return nil }

func (b *BaseVisitor) VisitFuncDecl(n *FuncDecl) interface{} {
	for _, tp := range n.TypeParams {
		tp.Accept(b)
	}
	for _, p := range n.Params {
		p.Accept(b)
	}
	if n.Result != nil {
		n.Result.Accept(b)
	}
	n.Body.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitParam(n *Param) interface{} {
	n.Type.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitBlock(n *Block) interface{} {
	for _, s := range n.Stmts {
		s.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitStmt(n *Stmt) interface{} {
	switch {
	case n.VarDecl != nil:
		n.VarDecl.Accept(b)
	case n.Assign != nil:
		n.Assign.Accept(b)
	case n.Return != nil:
		n.Return.Accept(b)
	case n.If != nil:
		n.If.Accept(b)
	case n.For != nil:
		n.For.Accept(b)
	case n.Match != nil:
		n.Match.Accept(b)
	case n.Loop != nil:
		n.Loop.Accept(b)
	case n.CallStmt != nil:
		n.CallStmt.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitVarDecl(n *VarDecl) interface{} {
	if n.Type != nil {
		n.Type.Accept(b)
	}
	n.Value.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitLValue(n *LValue) interface{} {
	if n.Index != nil {
		n.Index.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitAssignStmt(n *AssignStmt) interface{} {
	n.Target.Accept(b)
	n.Value.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitReturnStmt(n *ReturnStmt) interface{} {
	if n.Value != nil {
		n.Value.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitIfStmt(n *IfStmt) interface{} {
	n.Cond.Accept(b)
	n.Body.Accept(b)
	if n.Else != nil {
		n.Else.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitElseClause(n *ElseClause) interface{} {
	if n.If != nil {
		n.If.Accept(b)
	}
	if n.Body != nil {
		n.Body.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitForStmt(n *ForStmt) interface{} {
	if n.Range != nil {
		n.Range.Accept(b)
	}
	if n.CStyle != nil {
		n.CStyle.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitRangeFor(n *RangeFor) interface{} {
	n.Expr.Accept(b)
	n.Body.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitCFor(n *CFor) interface{} {
	n.Init.Accept(b)
	n.Cond.Accept(b)
	n.Post.Accept(b)
	n.Body.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitMatchStmt(n *MatchStmt) interface{} {
	n.Value.Accept(b)
	for _, arm := range n.Arms {
		arm.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitMatchArm(n *MatchArm) interface{} {
	n.Pattern.Accept(b)
	n.Body.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitLoopStmt(n *LoopStmt) interface{} {
	n.Body.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitCallStmt(n *CallStmt) interface{} {
	if n.Call != nil {
		n.Call.Accept(b)
	}
	if n.Intrinsic != nil {
		n.Intrinsic.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitExpr(n *Expr) interface{} {
	n.Left.Accept(b)
	for _, op := range n.BinOps {
		op.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitBinaryOp(n *BinaryOp) interface{} {
	n.Right.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitPrimary(n *Primary) interface{} {
	switch {
	case n.Unary != nil:
		n.Unary.Accept(b)
	case n.Try != nil:
		n.Try.Accept(b)
	case n.Closure != nil:
		n.Closure.Accept(b)
	case n.Tuple != nil:
		n.Tuple.Accept(b)
	case n.MakeCall != nil:
		n.MakeCall.Accept(b)
	case n.Composite != nil:
		n.Composite.Accept(b)
	case n.IndexExpr != nil:
		n.IndexExpr.Accept(b)
	case n.CallOrSel != nil:
		n.CallOrSel.Accept(b)
	case n.Literal != nil:
		n.Literal.Accept(b)
	case n.Paren != nil:
		n.Paren.Accept(b)
	case n.Intrinsic != nil:
		n.Intrinsic.Accept(b)
	}
	if n.As != nil {
		n.As.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitIntrinsic(n *Intrinsic) interface{} {
	for _, a := range n.Args {
		a.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitUnaryExpr(n *UnaryExpr) interface{} {
	n.Right.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitTryExpr(n *TryExpr) interface{} {
	n.Target.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitClosure(n *Closure) interface{} {
	for _, p := range n.Params {
		p.Accept(b)
	}
	n.Body.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitTupleExpr(n *TupleExpr) interface{} {
	n.First.Accept(b)
	for _, e := range n.Rest {
		e.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitMakeCall(n *MakeCall) interface{} {
	n.Type.Accept(b)
	if n.Size != nil {
		n.Size.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitCompositeLit(n *CompositeLit) interface{} {
	for _, kv := range n.Elements {
		kv.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitKeyValue(n *KeyValue) interface{} {
	n.Value.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitIndexExpr(n *IndexExpr) interface{} {
	n.Index.Accept(b)
	return nil
}

func (b *BaseVisitor) VisitCallOrSelect(n *CallOrSelect) interface{} {
	if n.Generic != nil {
		n.Generic.Accept(b)
	}
	if n.Call != nil {
		n.Call.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitCallArgs(n *CallArgs) interface{} {
	for _, a := range n.Args {
		a.Accept(b)
	}
	return nil
}

func (b *BaseVisitor) VisitLiteral(n *Literal) interface{} { return nil }
