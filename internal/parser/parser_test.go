package parser

import (
	"testing"

	"github.com/hassan/gibberishc/internal/diag"
	"github.com/hassan/gibberishc/internal/parser/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	r := diag.New()
	p := New(src, "test.gib", r)
	prog := p.ParseProgram()
	if r.HasFatal() {
		t.Fatalf("unexpected parse errors for %q: %v", src, r.Diagnostics())
	}
	return prog
}

func TestParseEmptyVoidMain(t *testing.T) {
	prog := parseOK(t, "void main(){}")
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	fn, ok := prog.Decls[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", prog.Decls[0])
	}
	if fn.Name != "main" || fn.RetType.Name != "void" || len(fn.Formals) != 0 || len(fn.Body) != 0 {
		t.Errorf("unexpected main decl: %+v", fn)
	}
}

func TestParseDuplicateGlobalVars(t *testing.T) {
	prog := parseOK(t, "int x; int x;")
	if len(prog.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(prog.Decls))
	}
}

func TestParseAssignmentStmt(t *testing.T) {
	prog := parseOK(t, "void foo(){ int x; x = true; }")
	fn := prog.Decls[0].(*ast.FnDecl)
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements in body, got %d", len(fn.Body))
	}
	assign, ok := fn.Body[1].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", fn.Body[1])
	}
	if _, ok := assign.Value.(*ast.BoolLit); !ok {
		t.Errorf("expected bool literal RHS, got %T", assign.Value)
	}
}

func TestParseBareReturn(t *testing.T) {
	prog := parseOK(t, "int f(){ return; }")
	fn := prog.Decls[0].(*ast.FnDecl)
	ret := fn.Body[0].(*ast.ReturnStmt)
	if ret.Value != nil {
		t.Error("expected a nil Value on a bare return")
	}
}

func TestParseWriteIdent(t *testing.T) {
	prog := parseOK(t, "void g(){ cout << g; }")
	fn := prog.Decls[0].(*ast.FnDecl)
	write := fn.Body[0].(*ast.WriteStmt)
	if _, ok := write.Value.(*ast.IdentExpr); !ok {
		t.Errorf("expected identifier expression, got %T", write.Value)
	}
}

func TestParseIfWithIntCondition(t *testing.T) {
	prog := parseOK(t, "int main(){ if (1) { } }")
	fn := prog.Decls[0].(*ast.FnDecl)
	ifStmt := fn.Body[0].(*ast.IfStmt)
	if _, ok := ifStmt.Cond.(*ast.IntLit); !ok {
		t.Errorf("expected int literal condition, got %T", ifStmt.Cond)
	}
}

func TestParseStructDeclVsStructVar(t *testing.T) {
	prog := parseOK(t, "struct Point { int x; int y; }; struct Point p;")
	if len(prog.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(prog.Decls))
	}
	sd, ok := prog.Decls[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", prog.Decls[0])
	}
	if len(sd.Fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(sd.Fields))
	}
	vd, ok := prog.Decls[1].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Decls[1])
	}
	if !vd.Type.IsStruct || vd.Type.Name != "Point" {
		t.Errorf("expected struct-typed var, got %+v", vd.Type)
	}
}

func TestParseDottedAssignment(t *testing.T) {
	prog := parseOK(t, "struct P { int x; }; void f(struct P p){ p.x = 5; }")
	fn := prog.Decls[1].(*ast.FnDecl)
	assign := fn.Body[0].(*ast.AssignStmt)
	dot, ok := assign.Target.(*ast.DotAccessExpr)
	if !ok {
		t.Fatalf("expected dot-access target, got %T", assign.Target)
	}
	if dot.Field != "x" {
		t.Errorf("expected field x, got %s", dot.Field)
	}
}

func TestParsePostIncDec(t *testing.T) {
	prog := parseOK(t, "void f(){ int i; i++; i--; }")
	fn := prog.Decls[0].(*ast.FnDecl)
	if _, ok := fn.Body[1].(*ast.PostIncStmt); !ok {
		t.Errorf("expected PostIncStmt, got %T", fn.Body[1])
	}
	if _, ok := fn.Body[2].(*ast.PostDecStmt); !ok {
		t.Errorf("expected PostDecStmt, got %T", fn.Body[2])
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseOK(t, "int f(){ return 1 + 2 * 3; }")
	fn := prog.Decls[0].(*ast.FnDecl)
	ret := fn.Body[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %+v", ret.Value)
	}
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected 2*3 nested on the right of +, got %T", top.Right)
	}
}

func TestParseCallStatementAndExpr(t *testing.T) {
	prog := parseOK(t, "int id(int x){ return x; } void f(){ id(1); }")
	fn := prog.Decls[1].(*ast.FnDecl)
	callStmt, ok := fn.Body[0].(*ast.CallStmt)
	if !ok {
		t.Fatalf("expected CallStmt, got %T", fn.Body[0])
	}
	if callStmt.Call.Callee != "id" || len(callStmt.Call.Args) != 1 {
		t.Errorf("unexpected call: %+v", callStmt.Call)
	}
}

func TestParseReadStmt(t *testing.T) {
	prog := parseOK(t, "void f(){ int x; cin >> x; }")
	fn := prog.Decls[0].(*ast.FnDecl)
	read, ok := fn.Body[1].(*ast.ReadStmt)
	if !ok {
		t.Fatalf("expected ReadStmt, got %T", fn.Body[1])
	}
	if _, ok := read.Target.(*ast.IdentExpr); !ok {
		t.Errorf("expected identifier target, got %T", read.Target)
	}
}

func TestParseMalformedFormalListRecovery(t *testing.T) {
	r := diag.New()
	p := New("void f( { }", "bad.gib", r)
	prog := p.ParseProgram()
	if !r.HasFatal() {
		t.Fatal("expected a syntax diagnostic for malformed formal list")
	}
	if prog == nil {
		t.Fatal("parser should still return a program on recoverable syntax errors")
	}
}
