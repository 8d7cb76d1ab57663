// Package semantic implements Gibberish's two symbol-decorated-AST passes:
// name analysis (binding every identifier to a symbol) and type checking
// (typing every expression and statement against that binding).
//
// DESIGN CHOICE: each pass is a single type-switch-based traversal over the
// closed ast.Node set, not a Visitor. See the ast package doc for why.
package semantic

import (
	"github.com/hassan/gibberishc/internal/diag"
	"github.com/hassan/gibberishc/internal/lexer"
	"github.com/hassan/gibberishc/internal/parser/ast"
	"github.com/hassan/gibberishc/internal/symtab"
	"github.com/hassan/gibberishc/internal/types"
)

// zeroPos is where diagnostics with no natural source location attach —
// "No main function" here, and "Missing return value" in type checking.
var zeroPos = lexer.Position{Line: 0, Column: 0}

// NameAnalyzer binds every declared and referenced identifier in a program
// to a symbol, reporting undeclared names, duplicate declarations, and
// malformed struct-type references along the way.
type NameAnalyzer struct {
	reporter *diag.Reporter
	table    *symtab.Table
	sawMain  bool
}

// AnalyzeNames runs name analysis over prog, reporting diagnostics to
// reporter, and returns the symbol table it built (type checking walks the
// same decorated tree afterward; the table itself is not needed past that).
func AnalyzeNames(prog *ast.Program, reporter *diag.Reporter) *symtab.Table {
	na := &NameAnalyzer{reporter: reporter, table: symtab.NewTable()}
	na.analyzeProgram(prog)
	return na.table
}

func (na *NameAnalyzer) internalError(err error) {
	panic(err)
}

func (na *NameAnalyzer) analyzeProgram(prog *ast.Program) {
	for _, d := range prog.Decls {
		na.analyzeDecl(d)
	}
	if !na.sawMain {
		na.reporter.Report(zeroPos, "No main function")
	}
}

func (na *NameAnalyzer) analyzeDecl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.VarDecl:
		na.analyzeVarDecl(decl)
	case *ast.FnDecl:
		na.analyzeFnDecl(decl)
	case *ast.StructDecl:
		na.analyzeStructDecl(decl)
	}
}

// resolveTypeName resolves a TypeName to a semantic Type. For struct names
// it looks the name up in the ambient scope stack (outward from wherever
// the caller currently sits) and reports "Invalid name of struct type" if
// it doesn't name a struct definition.
func (na *NameAnalyzer) resolveTypeName(tn *ast.TypeName) types.Type {
	if !tn.IsStruct {
		switch tn.Name {
		case "int":
			return types.Int
		case "bool":
			return types.Bool
		case "void":
			return types.Void
		default:
			na.internalError(&symtab.InternalError{Kind: symtab.IllegalName, Msg: "unrecognized scalar type name " + tn.Name})
			return types.Error
		}
	}

	sym := na.table.LookupGlobal(tn.Name)
	if sym == nil || !types.IsStructDef(sym.Type) {
		na.reporter.Report(tn.Position, "Invalid name of struct type")
		return types.Error
	}
	tn.Sym = sym
	return &types.StructType{Name: tn.Name, Decl: sym}
}

// analyzeVarDecl processes a variable declaration, whether at global scope,
// inside a function body, or (via analyzeFieldDecl below, which shares most
// of this logic) as a struct field.
func (na *NameAnalyzer) analyzeVarDecl(d *ast.VarDecl) {
	bad := false

	if !d.Type.IsStruct && d.Type.Name == "void" {
		na.reporter.Report(d.Position, "Non-function declared void")
		bad = true
	}

	declType := na.resolveTypeName(d.Type)
	if types.IsError(declType) {
		bad = true
	}

	if na.table.LookupLocal(d.Name) != nil {
		na.reporter.Report(d.Position, "Multiply declared identifier")
		bad = true
	}

	if bad {
		return
	}

	var sym *symtab.Symbol
	if na.table.GlobalScope() {
		sym = symtab.NewGlobalSymbol(d.Name, declType)
	} else {
		offset := na.table.Offset()
		sym = symtab.NewLocalSymbol(d.Name, declType, offset)
		na.table.SetOffset(offset - 4)
	}
	if err := na.table.AddDecl(sym); err != nil {
		na.internalError(err)
	}
	d.Sym = sym
}

// analyzeFieldDecl processes one field of a struct declaration. Field
// offsets are not assigned in this language: struct values are never laid
// out or addressed at runtime, only carried around as a typed handle.
func (na *NameAnalyzer) analyzeFieldDecl(d *ast.VarDecl) {
	bad := false

	if !d.Type.IsStruct && d.Type.Name == "void" {
		na.reporter.Report(d.Position, "Non-function declared void")
		bad = true
	}

	declType := na.resolveTypeName(d.Type)
	if types.IsError(declType) {
		bad = true
	}

	if na.table.LookupLocal(d.Name) != nil {
		na.reporter.Report(d.Position, "Multiply declared identifier")
		bad = true
	}

	if bad {
		return
	}

	sym := symtab.NewGlobalSymbol(d.Name, declType)
	if err := na.table.AddDecl(sym); err != nil {
		na.internalError(err)
	}
	d.Sym = sym
}

func (na *NameAnalyzer) analyzeFnDecl(d *ast.FnDecl) {
	retType := na.resolveTypeName(d.RetType)

	duplicate := na.table.LookupLocal(d.Name) != nil
	if duplicate {
		na.reporter.Report(d.Position, "Multiply declared identifier")
	}

	fnSym := symtab.NewFnSymbol(d.Name, retType)
	if !duplicate {
		if err := na.table.AddDecl(fnSym); err != nil {
			na.internalError(err)
		}
	}
	if d.Name == "main" {
		na.sawMain = true
	}
	d.Sym = fnSym

	na.table.SetGlobalScope(false)
	na.table.SetOffset(0)
	na.table.AddScope()

	paramTypes := make([]types.Type, len(d.Formals))
	for i, f := range d.Formals {
		paramTypes[i] = na.analyzeFormal(f, i)
	}
	fnSym.FnType().Params = paramTypes

	na.table.SetOffset(-4 * len(d.Formals))
	fnSym.ParamSize = -na.table.Offset()

	// Reserve the saved-FP and saved-RA slots below the formals, then record
	// the frame cursor so LocalSize can be derived from how far it moves
	// while the body is processed.
	na.table.SetOffset(na.table.Offset() - 8)
	frameStart := na.table.Offset()

	for _, s := range d.Body {
		na.analyzeStmt(s)
	}

	fnSym.LocalSize = -(na.table.Offset() - frameStart)

	na.table.SetGlobalScope(true)
	if err := na.table.RemoveScope(); err != nil {
		na.internalError(err)
	}
}

func (na *NameAnalyzer) analyzeFormal(f *ast.FormalDecl, index int) types.Type {
	ftype := na.resolveTypeName(f.Type)

	if !f.Type.IsStruct && f.Type.Name == "void" {
		na.reporter.Report(f.Position, "Non-function declared void")
	}

	duplicate := na.table.LookupLocal(f.Name) != nil
	if duplicate {
		na.reporter.Report(f.Position, "Multiply declared identifier")
	}

	fsym := symtab.NewFormalSymbol(f.Name, ftype, -4*index)
	if !duplicate {
		if err := na.table.AddDecl(fsym); err != nil {
			na.internalError(err)
		}
	}
	f.Sym = fsym
	return ftype
}

func (na *NameAnalyzer) analyzeStructDecl(d *ast.StructDecl) {
	duplicate := na.table.LookupLocal(d.Name) != nil
	if duplicate {
		na.reporter.Report(d.Position, "Multiply declared identifier")
	}

	na.table.AddScope()
	for _, f := range d.Fields {
		na.analyzeFieldDecl(f)
	}
	fieldScope := na.table.Top()
	if err := na.table.RemoveScope(); err != nil {
		na.internalError(err)
	}

	structSym := symtab.NewStructDefSymbol(d.Name, fieldScope)
	if !duplicate {
		if err := na.table.AddDecl(structSym); err != nil {
			na.internalError(err)
		}
	}
	d.Sym = structSym
}

func (na *NameAnalyzer) analyzeBlock(b *ast.BlockStmt) {
	na.table.AddScope()
	for _, s := range b.Stmts {
		na.analyzeStmt(s)
	}
	if err := na.table.RemoveScope(); err != nil {
		na.internalError(err)
	}
}

func (na *NameAnalyzer) analyzeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		na.analyzeVarDecl(st)
	case *ast.BlockStmt:
		na.analyzeBlock(st)
	case *ast.IfStmt:
		na.analyzeExpr(st.Cond)
		na.analyzeBlock(st.Then)
	case *ast.IfElseStmt:
		na.analyzeExpr(st.Cond)
		na.analyzeBlock(st.Then)
		na.analyzeBlock(st.Else)
	case *ast.WhileStmt:
		na.analyzeExpr(st.Cond)
		na.analyzeBlock(st.Body)
	case *ast.RepeatStmt:
		na.analyzeExpr(st.Count)
		na.analyzeBlock(st.Body)
	case *ast.ReturnStmt:
		if st.Value != nil {
			na.analyzeExpr(st.Value)
		}
	case *ast.ReadStmt:
		na.analyzeExpr(st.Target)
	case *ast.WriteStmt:
		na.analyzeExpr(st.Value)
	case *ast.PostIncStmt:
		na.analyzeExpr(st.Target)
	case *ast.PostDecStmt:
		na.analyzeExpr(st.Target)
	case *ast.CallStmt:
		na.analyzeExpr(st.Call)
	case *ast.AssignStmt:
		na.analyzeExpr(st.Value)
		na.analyzeExpr(st.Target)
	}
}

func (na *NameAnalyzer) analyzeExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IntLit, *ast.StrLit, *ast.BoolLit:
		// no identifiers to resolve
	case *ast.IdentExpr:
		sym := na.table.LookupGlobal(ex.Name)
		if sym == nil {
			na.reporter.Report(ex.Position, "Undeclared identifier")
			return
		}
		ex.Sym = sym
	case *ast.DotAccessExpr:
		na.analyzeDotAccess(ex)
	case *ast.UnaryMinusExpr:
		na.analyzeExpr(ex.Operand)
	case *ast.NotExpr:
		na.analyzeExpr(ex.Operand)
	case *ast.BinaryExpr:
		na.analyzeExpr(ex.Left)
		na.analyzeExpr(ex.Right)
	case *ast.AssignExpr:
		na.analyzeExpr(ex.Value)
		na.analyzeExpr(ex.Target)
	case *ast.CallExpr:
		sym := na.table.LookupGlobal(ex.Callee)
		if sym == nil {
			na.reporter.Report(ex.Position, "Undeclared identifier")
		} else {
			ex.Sym = sym
		}
		for _, a := range ex.Args {
			na.analyzeExpr(a)
		}
	}
}

// fieldScopeOf returns the struct field scope a dot-access's base resolves
// to, or nil with ok=false if the base isn't a struct-typed value (or
// resolution already failed upstream, in which case no further diagnostic
// is reported — the cascading-error rule).
func (na *NameAnalyzer) fieldScopeOf(base ast.Expr) (*symtab.Scope, bool) {
	switch b := base.(type) {
	case *ast.IdentExpr:
		sym, ok := b.Sym.(*symtab.Symbol)
		if !ok {
			return nil, false
		}
		st, ok := sym.Type.(*types.StructType)
		if !ok {
			return nil, false
		}
		decl, ok := st.Decl.(*symtab.Symbol)
		if !ok {
			return nil, false
		}
		return decl.Fields, true
	case *ast.DotAccessExpr:
		if b.BadAccess {
			return nil, false
		}
		fieldSym, ok := b.FieldSym.(*symtab.Symbol)
		if !ok {
			return nil, false
		}
		st, ok := fieldSym.Type.(*types.StructType)
		if !ok {
			return nil, false
		}
		decl, ok := st.Decl.(*symtab.Symbol)
		if !ok {
			return nil, false
		}
		return decl.Fields, true
	default:
		return nil, false
	}
}

func (na *NameAnalyzer) analyzeDotAccess(d *ast.DotAccessExpr) {
	na.analyzeExpr(d.Base)

	fieldScope, ok := na.fieldScopeOf(d.Base)
	if !ok {
		if !na.baseAlreadyFailed(d.Base) {
			na.reporter.Report(d.Position, "Dot-access of non-struct type")
		}
		d.BadAccess = true
		return
	}

	fieldSym := fieldScope.LookupField(d.Field)
	if fieldSym == nil {
		na.reporter.Report(d.Position, "Invalid struct field name")
		d.BadAccess = true
		return
	}
	d.FieldSym = fieldSym
}

// baseAlreadyFailed reports whether d.Base already produced a diagnostic of
// its own (an undeclared identifier, or a dot-access already marked bad),
// so analyzeDotAccess doesn't pile a second "Dot-access of non-struct type"
// diagnostic onto an expression name analysis already flagged.
func (na *NameAnalyzer) baseAlreadyFailed(base ast.Expr) bool {
	switch b := base.(type) {
	case *ast.IdentExpr:
		return b.Sym == nil
	case *ast.DotAccessExpr:
		return b.BadAccess
	default:
		return false
	}
}
