// Package ast defines the abstract syntax tree for the kernel source dialect:
// the small, separately-lexed host-embedded language an application writes its
// compute kernels in (see pkg/kernel/parser for the grammar's lexer/parser).
package ast

import "github.com/alecthomas/participle/v2/lexer"

// File represents one parsed .kernel module.
type File struct {
	Pos     lexer.Position
	Package string      `"package" @Ident`
	Imports []*Import   `@@*`
	Items   []*TopLevel `@@*`
}

// TopLevel is one of the three kinds of top-level declaration, in source order.
// Keeping them in one ordered slice (rather than three separate slices) is what
// lets later passes preserve declaration order without re-deriving it.
type TopLevel struct {
	Pos   lexer.Position
	Const *ConstDecl `  @@`
	Type  *TypeDecl  `| @@`
	Func  *FuncDecl  `| @@`
}

// Import is a reserved-for-future-use library import; the core never resolves
// these, it only records them on the descriptor (spec §3, "reserved for future
// library composition").
type Import struct {
	Pos  lexer.Position
	Path string `"use" @String ";"?`
}

// ConstDecl is a scalar module-level constant: const NAME: T = value;
type ConstDecl struct {
	Pos   lexer.Position
	Name  string `"const" @Ident`
	Type  *Type  `":" @@`
	Value *Expr  `"=" @@ ";"?`
}

// Decorator is a marker attribute such as @config, @input_array, @output_vec,
// @output_array attached to a type declaration.
type Decorator struct {
	Pos  lexer.Position
	Name string  `"@" @Ident`
	Args []*Expr `("(" (@@ ("," @@)*)? ")")?`
}

// TypeDecl is a user type declaration: a marker-decorated struct, or a plain
// type alias (used for scalar/vector/array input and output element types).
type TypeDecl struct {
	Pos        lexer.Position
	Decorators []*Decorator  `@@*`
	Name       string        `"type" @Ident`
	TypeParams []*TypeParam  `("[" @@ ("," @@)* "]")?`
	Struct     *StructType   `(  @@`
	Alias      *Type         `| "=" @@ ";"? )`
}

// TypeParam represents a generic type parameter, a trait bound, or a lifetime
// parameter — none of which have a GPU analogue (spec §4.3/§9); the grammar
// accepts them purely so the lowerer can reject them with a precise span
// instead of the author seeing a bare parse error.
type TypeParam struct {
	Pos      lexer.Position
	Lifetime string `  @Lifetime`
	Name     string `| @Ident`
	Bound    string `(":" @Ident)?`
}

// StructType is a brace-delimited list of fields.
type StructType struct {
	Pos    lexer.Position
	Fields []*Field `"struct" "{" @@* "}"`
}

// Field is one struct field: optional decorators (used for GPU builtins such
// as the iteration-position parameter), a name, and a type.
type Field struct {
	Pos        lexer.Position
	Decorators []*Decorator `@@*`
	Name       string       `@Ident`
	Type       *Type        `@@ ","?`
}

// Type is a type reference: a fixed-size array, a slice, or a scalar/vector/
// matrix/user-defined name (optionally pointer-qualified). The pointer
// qualifier is recorded in ScalarType.Pointer only: no pass rejects it, and
// lower.GPUTypeName renders the bare type name.
type Type struct {
	Pos    lexer.Position
	Array  *ArrayType  `  @@`
	Slice  *SliceType  `| @@`
	Scalar *ScalarType `| @@`
}

// ArrayType is the fixed-size array form [T; N], lowered to WGSL array<T, N>.
type ArrayType struct {
	Pos lexer.Position
	Elem *Type  `"[" @@`
	Len  string `";" @Number "]"`
}

// SliceType is the unsized form []T, used only on the host-mirror side for
// input/output array parameters; it has no direct WGSL counterpart (storage
// buffers are declared via binding, not a parameter type).
type SliceType struct {
	Pos  lexer.Position
	Elem *Type `"[" "]" @@`
}

// ScalarType is a bare or pointer-qualified identifier: a built-in scalar,
// vector or matrix name, or a user-defined custom type name.
type ScalarType struct {
	Pos     lexer.Position
	Pointer bool   `@("*")?`
	Name    string `@Ident`
}

// FuncDecl is a function declaration: either the single distinguished main
// entry point or a helper function.
type FuncDecl struct {
	Pos        lexer.Position
	Name       string       `"func" @Ident`
	TypeParams []*TypeParam `("[" @@ ("," @@)* "]")?`
	Params     []*Param     `"(" (@@ ("," @@)*)? ")"`
	Result     *Type        `@@?`
	Body       *Block       `@@`
}

// Param is one function parameter.
type Param struct {
	Pos  lexer.Position
	Name string `@Ident`
	Type *Type  `@@`
}

// Block is a brace-delimited statement sequence.
type Block struct {
	Pos   lexer.Position
	Stmts []*Stmt `"{" @@* "}"`
}

// Stmt is a tagged union over every statement form the grammar recognises,
// ordered so that the common forms are tried first; CallStmt is last to
// minimise backtracking against expression-led alternatives.
type Stmt struct {
	Pos      lexer.Position
	VarDecl  *VarDecl   `  @@`
	Assign   *AssignStmt `| @@`
	Return   *ReturnStmt `| @@`
	If       *IfStmt     `| @@`
	For      *ForStmt    `| @@`
	Match    *MatchStmt  `| @@`
	Loop     *LoopStmt   `| @@`
	CallStmt *CallStmt   `| @@`
}

// VarDecl declares a local: let x = e, or let mut x = e (GPU var vs let).
type VarDecl struct {
	Pos     lexer.Position
	Mutable bool   `"let" @("mut")?`
	Name    string `@Ident`
	Type    *Type  `(":" @@)?`
	Value   *Expr  `"=" @@ ";"?`
}

// LValue is the target of an assignment: a possibly-field-selected, possibly-
// indexed local or binding variable.
type LValue struct {
	Pos    lexer.Position
	Base   string   `@Ident`
	Fields []string `("." @Ident)*`
	Index  *Expr    `("[" @@ "]")?`
}

// AssignStmt is x = e, x += e, etc.
type AssignStmt struct {
	Pos   lexer.Position
	Target *LValue `@@`
	Op     string  `@("=" | "+=" | "-=" | "*=" | "/=")`
	Value  *Expr   `@@ ";"?`
}

// ReturnStmt is return, or return expr.
type ReturnStmt struct {
	Pos   lexer.Position
	Value *Expr `"return" @@? ";"?`
}

// IfStmt is a conditional with an optional else/else-if chain.
type IfStmt struct {
	Pos  lexer.Position
	Cond *Expr       `"if" @@`
	Body *Block      `@@`
	Else *ElseClause `("else" @@)?`
}

// ElseClause is either another if (else if) or a plain block (else).
type ElseClause struct {
	Pos  lexer.Position
	If   *IfStmt `  @@`
	Body *Block  `| @@`
}

// ForStmt accepts both the C-style form (init; cond; post), which P3 lowers
// directly to a WGSL for-loop, and the range form, which P3 rejects with
// UnsupportedConstruct (spec §4.3 — ranges have no GPU analogue here). The
// two forms are split into separate sub-structs so each owns its own
// grammar tag; a single struct cannot consume the leading "for" twice.
type ForStmt struct {
	Pos    lexer.Position
	Range  *RangeFor `"for" (@@`
	CStyle *CFor     `| @@)`
}

// RangeFor is `for x := range expr { ... }`.
type RangeFor struct {
	Pos  lexer.Position
	Var  string `@Ident ":=" "range"`
	Expr *Expr  `@@`
	Body *Block `@@`
}

// CFor is `for init; cond; post { ... }`. The ';' after init is optional
// here because VarDecl already consumes its own trailing ';'.
type CFor struct {
	Pos  lexer.Position
	Init *VarDecl    `@@ ";"?`
	Cond *Expr       `@@ ";"`
	Post *AssignStmt `@@`
	Body *Block      `@@`
}

// MatchStmt recognises match so the lowerer can reject it by name rather than
// the author seeing a raw parse error (spec: "match" has no GPU equivalent).
type MatchStmt struct {
	Pos   lexer.Position
	Value *Expr        `"match" @@ "{"`
	Arms  []*MatchArm  `@@* "}"`
}

// MatchArm is one `pattern => block` arm of a match statement.
type MatchArm struct {
	Pos     lexer.Position
	Pattern *Expr  `@@ "=>"`
	Body    *Block `@@ ","?`
}

// LoopStmt recognises bare `loop { }`, also rejected by the lowerer.
type LoopStmt struct {
	Pos  lexer.Position
	Body *Block `"loop" @@`
}

// CallStmt is a bare call used as a statement, e.g. Output.Push[T](v);
type CallStmt struct {
	Pos  lexer.Position
	Call *CallOrSelect `@@ ";"?`

	// Intrinsic mirrors Primary.Intrinsic: P2 sets it (clearing Call) when
	// the statement is a recognised intrinsic call used for effect, which
	// is how Push is almost always written.
	Intrinsic *Intrinsic `parser:"-"`
}

// Expr is an expression with optional trailing binary operations, left-
// associative and precedence-flat (matched by a later constant-folding-free
// pass; the dialect does not need operator precedence climbing because WGSL
// shares C-like precedence and the emitter parenthesises nothing it does not
// have to).
type Expr struct {
	Pos    lexer.Position
	Left   *Primary    `@@`
	BinOps []*BinaryOp `@@*`
}

// BinaryOp is one (operator, right-operand) pair.
type BinaryOp struct {
	Pos   lexer.Position
	Op    string   `@("==" | "!=" | "<=" | ">=" | "<" | ">" | "&&" | "||" | "+" | "-" | "*" | "/" | "%")`
	Right *Primary `@@`
}

// Primary is a tagged union over every primary expression form, including the
// constructs the lowerer must reject (Closure, Tuple, Try) — accepted here
// purely so rejection carries a precise source span.
type Primary struct {
	Pos       lexer.Position
	Unary     *UnaryExpr    `  @@`
	Try       *TryExpr      `| @@`
	Closure   *Closure      `| @@`
	Tuple     *TupleExpr    `| @@`
	MakeCall  *MakeCall     `| @@`
	Composite *CompositeLit `| @@`
	IndexExpr *IndexExpr    `| @@`
	CallOrSel *CallOrSelect `| @@`
	Literal   *Literal      `| @@`
	Paren     *Expr         `| "(" @@ ")"`
	Ident     string        `| @Ident`
	As        *Type         `("as" @@)?`

	// Intrinsic is never produced by the parser; P2 (pkg/kernel/helpers)
	// sets it in place of CallOrSel once a high-level IO helper call has
	// been recognised and validated. Kept opaque (rather than textually
	// expanded in the AST) because its GPU and host-mirror renderings
	// differ and are produced by separate emitters (P6, P7).
	Intrinsic *Intrinsic `parser:"-"`
}

// UnaryExpr is a prefix unary operation.
type UnaryExpr struct {
	Pos   lexer.Position
	Op    string   `@("!" | "-" | "+")`
	Right *Primary `@@`
}

// TryExpr recognises the trailing `?` operator, rejected downstream (no GPU
// exception/early-return-on-error analogue).
type TryExpr struct {
	Pos    lexer.Position
	Target *CallOrSelect `@@ "?"`
}

// Closure recognises a closure literal, rejected downstream.
type Closure struct {
	Pos    lexer.Position
	Params []*Param `"|" (@@ ("," @@)*)? "|"`
	Body   *Block   `@@`
}

// TupleExpr recognises a parenthesised, comma-separated expression list of
// two or more elements — a real tuple, distinct from the single-expression
// Paren grouping in Primary — rejected downstream.
type TupleExpr struct {
	Pos   lexer.Position
	First *Expr   `"(" @@`
	Rest  []*Expr `("," @@)+ ")"`
}

// MakeCall recognises make(...) heap allocation, rejected downstream (no GPU
// heap).
type MakeCall struct {
	Pos  lexer.Position
	Type *Type `"make" "(" @@`
	Size *Expr `("," @@)? ")"`
}

// CompositeLit is a struct literal: Type{field: value, ...}. The shader
// emitter renders it as a positional constructor call (S{a:x,b:y} -> S(x,y)),
// placing the values in the struct's declaration order by matching keys to
// field names, so the order written here does not matter.
type CompositeLit struct {
	Pos      lexer.Position
	TypeName string      `@Ident`
	Elements []*KeyValue `"{" (@@ ("," @@)*)? ","? "}"`
}

// KeyValue is one field:value pair of a composite literal.
type KeyValue struct {
	Pos   lexer.Position
	Key   string `@Ident ":"`
	Value *Expr  `@@`
}

// IndexExpr is a plain subscript on a named value: base[index].
type IndexExpr struct {
	Pos   lexer.Position
	Base  string `@Ident`
	Index *Expr  `"[" @@ "]"`
}

// CallOrSelect unifies a (possibly generic, possibly call) dotted-field
// access: Base.Field1.Field2[Generic](args). The optional Call group is what
// distinguishes a call from a bare selector; collapsing the two into one
// grammar production (rather than a bool flag set by punctuation alone)
// avoids the unused-field class of bug a naive HasParens capture invites.
type CallOrSelect struct {
	Pos     lexer.Position
	Base    string    `@Ident`
	Fields  []string  `("." @Ident)*`
	Generic *Type     `("[" @@ "]")?`
	Call    *CallArgs `@@?`
}

// CallArgs is the parenthesised argument list of a call.
type CallArgs struct {
	Pos  lexer.Position
	Args []*Expr `"(" (@@ ("," @@)*)? ")"`
}

// Literal is a scalar literal. Numeric-suffix handling (3.4_f32, 1u32) is
// deliberately NOT done here: the raw token text is preserved verbatim and
// rewritten by a later token-aware textual pass, because the GPU spelling
// (f32(3.4)) is not valid syntax this grammar could re-parse (spec §9,
// "Textual rewrites vs AST rewrites").
type Literal struct {
	Pos    lexer.Position
	Number *string `  @Number`
	String *string `| @String`
	Bool   *string `| @("true" | "false")`
}

// IntrinsicOp identifies which of the seven high-level IO helpers a
// recognised call expanded from (spec §4.2 table).
type IntrinsicOp int

const (
	OpVecLen IntrinsicOp = iota
	OpVecVal
	OpConfigGet
	OpPush
	OpLen
	OpMaxLen
	OpSet
)

// Intrinsic is a validated, kind-checked high-level IO helper call. Target
// is the custom type identifier T the call operates on (e.g. "Position" in
// VecInput.VecLen[Position]()).
type Intrinsic struct {
	Pos    lexer.Position
	Op     IntrinsicOp
	Target string
	Args   []*Expr
}

func (n *Intrinsic) Accept(v Visitor) interface{} { return v.VisitIntrinsic(n) }

// Accept methods — visitor pattern entry points.

func (n *File) Accept(v Visitor) interface{}         { return v.VisitFile(n) }
func (n *Import) Accept(v Visitor) interface{}       { return v.VisitImport(n) }
func (n *TopLevel) Accept(v Visitor) interface{}      { return v.VisitTopLevel(n) }
func (n *ConstDecl) Accept(v Visitor) interface{}     { return v.VisitConstDecl(n) }
func (n *Decorator) Accept(v Visitor) interface{}     { return v.VisitDecorator(n) }
func (n *TypeDecl) Accept(v Visitor) interface{}      { return v.VisitTypeDecl(n) }
func (n *TypeParam) Accept(v Visitor) interface{}     { return v.VisitTypeParam(n) }
func (n *StructType) Accept(v Visitor) interface{}    { return v.VisitStructType(n) }
func (n *Field) Accept(v Visitor) interface{}         { return v.VisitField(n) }
func (n *Type) Accept(v Visitor) interface{}          { return v.VisitType(n) }
func (n *ArrayType) Accept(v Visitor) interface{}      { return v.VisitArrayType(n) }
func (n *SliceType) Accept(v Visitor) interface{}      { return v.VisitSliceType(n) }
func (n *ScalarType) Accept(v Visitor) interface{}     { return v.VisitScalarType(n) }
func (n *FuncDecl) Accept(v Visitor) interface{}      { return v.VisitFuncDecl(n) }
func (n *Param) Accept(v Visitor) interface{}         { return v.VisitParam(n) }
func (n *Block) Accept(v Visitor) interface{}         { return v.VisitBlock(n) }
func (n *Stmt) Accept(v Visitor) interface{}          { return v.VisitStmt(n) }
func (n *VarDecl) Accept(v Visitor) interface{}       { return v.VisitVarDecl(n) }
func (n *LValue) Accept(v Visitor) interface{}        { return v.VisitLValue(n) }
func (n *AssignStmt) Accept(v Visitor) interface{}    { return v.VisitAssignStmt(n) }
func (n *ReturnStmt) Accept(v Visitor) interface{}    { return v.VisitReturnStmt(n) }
func (n *IfStmt) Accept(v Visitor) interface{}        { return v.VisitIfStmt(n) }
func (n *ElseClause) Accept(v Visitor) interface{}    { return v.VisitElseClause(n) }
func (n *ForStmt) Accept(v Visitor) interface{}       { return v.VisitForStmt(n) }
func (n *RangeFor) Accept(v Visitor) interface{}      { return v.VisitRangeFor(n) }
func (n *CFor) Accept(v Visitor) interface{}          { return v.VisitCFor(n) }
func (n *MatchStmt) Accept(v Visitor) interface{}     { return v.VisitMatchStmt(n) }
func (n *MatchArm) Accept(v Visitor) interface{}      { return v.VisitMatchArm(n) }
func (n *LoopStmt) Accept(v Visitor) interface{}      { return v.VisitLoopStmt(n) }
func (n *CallStmt) Accept(v Visitor) interface{}      { return v.VisitCallStmt(n) }
func (n *Expr) Accept(v Visitor) interface{}          { return v.VisitExpr(n) }
func (n *BinaryOp) Accept(v Visitor) interface{}      { return v.VisitBinaryOp(n) }
func (n *Primary) Accept(v Visitor) interface{}       { return v.VisitPrimary(n) }
func (n *UnaryExpr) Accept(v Visitor) interface{}     { return v.VisitUnaryExpr(n) }
func (n *TryExpr) Accept(v Visitor) interface{}       { return v.VisitTryExpr(n) }
func (n *Closure) Accept(v Visitor) interface{}       { return v.VisitClosure(n) }
func (n *TupleExpr) Accept(v Visitor) interface{}     { return v.VisitTupleExpr(n) }
func (n *MakeCall) Accept(v Visitor) interface{}      { return v.VisitMakeCall(n) }
func (n *CompositeLit) Accept(v Visitor) interface{}  { return v.VisitCompositeLit(n) }
func (n *KeyValue) Accept(v Visitor) interface{}      { return v.VisitKeyValue(n) }
func (n *IndexExpr) Accept(v Visitor) interface{}     { return v.VisitIndexExpr(n) }
func (n *CallOrSelect) Accept(v Visitor) interface{}  { return v.VisitCallOrSelect(n) }
func (n *CallArgs) Accept(v Visitor) interface{}      { return v.VisitCallArgs(n) }
func (n *Literal) Accept(v Visitor) interface{}       { return v.VisitLiteral(n) }
