// Package ast defines the Abstract Syntax Tree node types for the Gibberish
// compiler.
//
// DESIGN CHOICE: nodes expose a type-switch-able closed set (Decl, Stmt,
// Expr marker interfaces over a fixed set of concrete structs) rather than a
// Visitor interface. Each pass (name analysis, type checking, codegen) walks
// the tree exactly once with its own type switch; a Visitor interface would
// need the same method added to three implementations for every new node,
// for no benefit when the node set is closed and known up front.
package ast

import "github.com/hassan/gibberishc/internal/lexer"

// Node is the base interface for all AST nodes: every node can report the
// source position it starts at, for diagnostics.
type Node interface {
	Pos() lexer.Position
}

// Decl is a top-level or struct-field declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of the AST: an ordered list of top-level declarations
// (variables, functions, structs).
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() lexer.Position {
	if len(p.Decls) == 0 {
		return lexer.Position{}
	}
	return p.Decls[0].Pos()
}

// TypeName is a reference to a type in source: a keyword (int/bool/void) or
// an identifier naming a struct.
type TypeName struct {
	Position lexer.Position
	Name     string // "int", "bool", "void", or (if IsStruct) a struct identifier
	IsStruct bool

	// Sym is filled in by name analysis when IsStruct is true: the
	// resolved StructDef symbol the name refers to.
	Sym interface{}
}

func (t *TypeName) Pos() lexer.Position { return t.Position }

// VarDecl declares a single variable: `<Type> <Name>;`.
type VarDecl struct {
	Position lexer.Position
	Type     *TypeName
	Name     string

	// Sym is filled in by name analysis and read by later passes.
	Sym interface{}
}

func (d *VarDecl) Pos() lexer.Position { return d.Position }
func (*VarDecl) declNode()             {}

// VarDecl also satisfies Stmt: a local variable declaration is valid
// directly inside a function body's statement list, per the grammar.
func (*VarDecl) stmtNode() {}

// FormalDecl is one parameter in a function's formal list.
type FormalDecl struct {
	Position lexer.Position
	Type     *TypeName
	Name     string

	Sym interface{}
}

func (d *FormalDecl) Pos() lexer.Position { return d.Position }

// FnDecl declares a function: `<Type> <Name>(<Formals>) { <Body> }`.
type FnDecl struct {
	Position lexer.Position
	RetType  *TypeName
	Name     string
	Formals  []*FormalDecl
	Body     []Stmt

	Sym interface{}
}

func (d *FnDecl) Pos() lexer.Position { return d.Position }
func (*FnDecl) declNode()             {}

// StructDecl declares a struct type: `struct <Name> { <Fields> };`.
type StructDecl struct {
	Position lexer.Position
	Name     string
	Fields   []*VarDecl

	Sym interface{}
}

func (d *StructDecl) Pos() lexer.Position { return d.Position }
func (*StructDecl) declNode()             {}

// BlockStmt is a brace-delimited sequence of statements introducing a new
// scope.
type BlockStmt struct {
	Position lexer.Position
	Stmts    []Stmt
}

func (s *BlockStmt) Pos() lexer.Position { return s.Position }
func (*BlockStmt) stmtNode()             {}

// IfStmt is `if (<Cond>) { <Then> }` with no else branch.
type IfStmt struct {
	Position lexer.Position
	Cond     Expr
	Then     *BlockStmt
}

func (s *IfStmt) Pos() lexer.Position { return s.Position }
func (*IfStmt) stmtNode()             {}

// IfElseStmt is `if (<Cond>) { <Then> } else { <Else> }`.
type IfElseStmt struct {
	Position lexer.Position
	Cond     Expr
	Then     *BlockStmt
	Else     *BlockStmt
}

func (s *IfElseStmt) Pos() lexer.Position { return s.Position }
func (*IfElseStmt) stmtNode()             {}

// WhileStmt is `while (<Cond>) { <Body> }`.
type WhileStmt struct {
	Position lexer.Position
	Cond     Expr
	Body     *BlockStmt
}

func (s *WhileStmt) Pos() lexer.Position { return s.Position }
func (*WhileStmt) stmtNode()             {}

// RepeatStmt is `repeat (<Count>) { <Body> }`.
type RepeatStmt struct {
	Position lexer.Position
	Count    Expr
	Body     *BlockStmt
}

func (s *RepeatStmt) Pos() lexer.Position { return s.Position }
func (*RepeatStmt) stmtNode()             {}

// ReturnStmt is `return;` or `return <Value>;`. Value is nil for a bare
// return.
type ReturnStmt struct {
	Position lexer.Position
	Value    Expr
}

func (s *ReturnStmt) Pos() lexer.Position { return s.Position }
func (*ReturnStmt) stmtNode()             {}

// ReadStmt is `cin >> <Target>;`.
type ReadStmt struct {
	Position lexer.Position
	Target   Expr
}

func (s *ReadStmt) Pos() lexer.Position { return s.Position }
func (*ReadStmt) stmtNode()             {}

// WriteStmt is `cout << <Value>;`.
type WriteStmt struct {
	Position lexer.Position
	Value    Expr

	// ResolvedType is filled in by type checking with Value's scalar type,
	// so code generation knows which syscall (print int vs. print string)
	// to emit without re-deriving it.
	ResolvedType interface{}
}

func (s *WriteStmt) Pos() lexer.Position { return s.Position }
func (*WriteStmt) stmtNode()             {}

// PostIncStmt is `<Target>++;`. Per the distilled spec, Target must be a
// plain identifier; that restriction is enforced by the parser, not the AST.
type PostIncStmt struct {
	Position lexer.Position
	Target   *IdentExpr
}

func (s *PostIncStmt) Pos() lexer.Position { return s.Position }
func (*PostIncStmt) stmtNode()             {}

// PostDecStmt is `<Target>--;`.
type PostDecStmt struct {
	Position lexer.Position
	Target   *IdentExpr
}

func (s *PostDecStmt) Pos() lexer.Position { return s.Position }
func (*PostDecStmt) stmtNode()             {}

// CallStmt is a function call used as a statement: `<Call>;`.
type CallStmt struct {
	Position lexer.Position
	Call     *CallExpr
}

func (s *CallStmt) Pos() lexer.Position { return s.Position }
func (*CallStmt) stmtNode()             {}

// AssignStmt is `<Target> = <Value>;`.
type AssignStmt struct {
	Position lexer.Position
	Target   Expr
	Value    Expr
}

func (s *AssignStmt) Pos() lexer.Position { return s.Position }
func (*AssignStmt) stmtNode()             {}

// IntLit is an integer literal.
type IntLit struct {
	Position lexer.Position
	Value    int
}

func (e *IntLit) Pos() lexer.Position { return e.Position }
func (*IntLit) exprNode()             {}

// StrLit is a string literal. It can appear in any expression position; it
// has type string, and cout is the only statement that prints one.
type StrLit struct {
	Position lexer.Position
	Value    string
}

func (e *StrLit) Pos() lexer.Position { return e.Position }
func (*StrLit) exprNode()             {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Position lexer.Position
	Value    bool
}

func (e *BoolLit) Pos() lexer.Position { return e.Position }
func (*BoolLit) exprNode()             {}

// IdentExpr is a bare identifier reference. Sym is filled in by name
// analysis with the resolved symbol (or left nil on an undeclared-name
// error, which later passes treat as already-reported).
type IdentExpr struct {
	Position lexer.Position
	Name     string

	Sym interface{}
}

func (e *IdentExpr) Pos() lexer.Position { return e.Position }
func (*IdentExpr) exprNode()             {}

// DotAccessExpr is `<Base>.<Field>`, a struct field access.
//
// BadAccess is set by name analysis when Base does not resolve to a struct
// value (or resolution already failed upstream); later passes skip further
// diagnostics on an access already marked bad, matching the cascading-error
// suppression rule for the Error type.
type DotAccessExpr struct {
	Position  lexer.Position
	Base      Expr
	Field     string
	BadAccess bool

	FieldSym interface{}
}

func (e *DotAccessExpr) Pos() lexer.Position { return e.Position }
func (*DotAccessExpr) exprNode()             {}

// UnaryMinusExpr is `-<Operand>`.
type UnaryMinusExpr struct {
	Position lexer.Position
	Operand  Expr
}

func (e *UnaryMinusExpr) Pos() lexer.Position { return e.Position }
func (*UnaryMinusExpr) exprNode()             {}

// NotExpr is `!<Operand>`.
type NotExpr struct {
	Position lexer.Position
	Operand  Expr
}

func (e *NotExpr) Pos() lexer.Position { return e.Position }
func (*NotExpr) exprNode()             {}

// BinaryOp identifies the operator of a BinaryExpr.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpEq
	OpNotEq
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
)

// BinaryExpr is `<Left> <Op> <Right>` for any arithmetic, relational,
// equality, or logical binary operator.
type BinaryExpr struct {
	Position lexer.Position
	Op       BinaryOp
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) Pos() lexer.Position { return e.Position }
func (*BinaryExpr) exprNode()             {}

// AssignExpr is an assignment used in expression position (e.g. as a call
// argument), mirroring AssignStmt's semantics.
type AssignExpr struct {
	Position lexer.Position
	Target   Expr
	Value    Expr
}

func (e *AssignExpr) Pos() lexer.Position { return e.Position }
func (*AssignExpr) exprNode()             {}

// CallExpr is `<Callee>(<Args>)`.
type CallExpr struct {
	Position lexer.Position
	Callee   string
	Args     []Expr

	Sym interface{}
}

func (e *CallExpr) Pos() lexer.Position { return e.Position }
func (*CallExpr) exprNode()             {}
