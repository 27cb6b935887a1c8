package ast

// Node is implemented by every AST node; Accept dispatches to the matching
// Visit method. Grounded on guix's ast.ASTNode pattern.
type Node interface {
	Accept(v Visitor) interface{}
}

// Visitor is implemented by every AST consumer (the custom-type collector,
// the helper-method rewriter, the syntax lowerer, the WGSL emitter, the
// mirror emitter, ...). BaseVisitor supplies a default depth-first traversal
// so each concrete visitor only overrides the methods it cares about.
type Visitor interface {
	VisitFile(n *File) interface{}
	VisitImport(n *Import) interface{}
	VisitTopLevel(n *TopLevel) interface{}
	VisitConstDecl(n *ConstDecl) interface{}
	VisitDecorator(n *Decorator) interface{}
	VisitTypeDecl(n *TypeDecl) interface{}
	VisitTypeParam(n *TypeParam) interface{}
	VisitStructType(n *StructType) interface{}
	VisitField(n *Field) interface{}
	VisitType(n *Type) interface{}
	VisitArrayType(n *ArrayType) interface{}
	VisitSliceType(n *SliceType) interface{}
	VisitScalarType(n *ScalarType) interface{}
	VisitFuncDecl(n *FuncDecl) interface{}
	VisitParam(n *Param) interface{}
	VisitBlock(n *Block) interface{}
	VisitStmt(n *Stmt) interface{}
	VisitVarDecl(n *VarDecl) interface{}
	VisitLValue(n *LValue) interface{}
	VisitAssignStmt(n *AssignStmt) interface{}
	VisitReturnStmt(n *ReturnStmt) interface{}
	VisitIfStmt(n *IfStmt) interface{}
	VisitElseClause(n *ElseClause) interface{}
	VisitForStmt(n *ForStmt) interface{}
	VisitRangeFor(n *RangeFor) interface{}
	VisitCFor(n *CFor) interface{}
	VisitMatchStmt(n *MatchStmt) interface{}
	VisitMatchArm(n *MatchArm) interface{}
	VisitLoopStmt(n *LoopStmt) interface{}
	VisitCallStmt(n *CallStmt) interface{}
	VisitExpr(n *Expr) interface{}
	VisitBinaryOp(n *BinaryOp) interface{}
	VisitPrimary(n *Primary) interface{}
	VisitUnaryExpr(n *UnaryExpr) interface{}
	VisitTryExpr(n *TryExpr) interface{}
	VisitClosure(n *Closure) interface{}
	VisitTupleExpr(n *TupleExpr) interface{}
	VisitMakeCall(n *MakeCall) interface{}
	VisitCompositeLit(n *CompositeLit) interface{}
	VisitKeyValue(n *KeyValue) interface{}
	VisitIndexExpr(n *IndexExpr) interface{}
	VisitCallOrSelect(n *CallOrSelect) interface{}
	VisitCallArgs(n *CallArgs) interface{}
	VisitLiteral(n *Literal) interface{}
	VisitIntrinsic(n *Intrinsic) interface{}
}
