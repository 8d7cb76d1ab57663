package semantic

import (
	"testing"

	"github.com/hassan/gibberishc/internal/diag"
	"github.com/hassan/gibberishc/internal/parser"
	"github.com/hassan/gibberishc/internal/parser/ast"
	"github.com/hassan/gibberishc/internal/symtab"
)

func parseAndAnalyze(t *testing.T, src string) (*ast.Program, *diag.Reporter) {
	t.Helper()
	r := diag.New()
	p := parser.New(src, "test.gib", r)
	prog := p.ParseProgram()
	if r.HasFatal() {
		t.Fatalf("unexpected parse errors for %q: %v", src, r.Diagnostics())
	}
	AnalyzeNames(prog, r)
	return prog, r
}

func messages(r *diag.Reporter) []string {
	var out []string
	for _, d := range r.Diagnostics() {
		out = append(out, d.Message)
	}
	return out
}

func TestNoMainFunctionReported(t *testing.T) {
	_, r := parseAndAnalyze(t, "int f(){ return 1; }")
	if !r.HasFatal() {
		t.Fatal("expected a diagnostic")
	}
	found := false
	for _, d := range r.Diagnostics() {
		if d.Message == "No main function" {
			found = true
			if d.Pos.Line != 0 || d.Pos.Column != 0 {
				t.Errorf("expected (0,0), got (%d,%d)", d.Pos.Line, d.Pos.Column)
			}
		}
	}
	if !found {
		t.Errorf("expected 'No main function', got %v", messages(r))
	}
}

func TestMainFunctionSuppressesNoMain(t *testing.T) {
	_, r := parseAndAnalyze(t, "void main(){}")
	if r.HasFatal() {
		t.Fatalf("unexpected diagnostics: %v", messages(r))
	}
}

func TestDuplicateGlobalVarReported(t *testing.T) {
	_, r := parseAndAnalyze(t, "int x; int x; void main(){}")
	want := "Multiply declared identifier"
	found := false
	for _, m := range messages(r) {
		if m == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q, got %v", want, messages(r))
	}
}

func TestVoidVariableRejected(t *testing.T) {
	_, r := parseAndAnalyze(t, "void x; void main(){}")
	found := false
	for _, m := range messages(r) {
		if m == "Non-function declared void" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Non-function declared void', got %v", messages(r))
	}
}

func TestUndeclaredIdentifierReported(t *testing.T) {
	_, r := parseAndAnalyze(t, "void main(){ cout << y; }")
	found := false
	for _, m := range messages(r) {
		if m == "Undeclared identifier" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Undeclared identifier', got %v", messages(r))
	}
}

func TestStructFieldResolutionAndDotAccess(t *testing.T) {
	prog, r := parseAndAnalyze(t, "struct P { int x; }; void main(){ struct P p; p.x = 5; }")
	if r.HasFatal() {
		t.Fatalf("unexpected diagnostics: %v", messages(r))
	}
	fn := prog.Decls[1].(*ast.FnDecl)
	assign := fn.Body[1].(*ast.AssignStmt)
	dot := assign.Target.(*ast.DotAccessExpr)
	if dot.BadAccess {
		t.Fatal("expected a valid field access")
	}
	if dot.FieldSym == nil {
		t.Fatal("expected FieldSym to be resolved")
	}
}

func TestInvalidStructFieldNameReported(t *testing.T) {
	_, r := parseAndAnalyze(t, "struct P { int x; }; void main(){ struct P p; p.y = 5; }")
	found := false
	for _, m := range messages(r) {
		if m == "Invalid struct field name" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Invalid struct field name', got %v", messages(r))
	}
}

func TestInvalidStructTypeNameReported(t *testing.T) {
	_, r := parseAndAnalyze(t, "struct Ghost g; void main(){}")
	found := false
	for _, m := range messages(r) {
		if m == "Invalid name of struct type" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Invalid name of struct type', got %v", messages(r))
	}
}

func TestDotAccessOnNonStructReported(t *testing.T) {
	_, r := parseAndAnalyze(t, "void main(){ int x; x.y = 5; }")
	found := false
	for _, m := range messages(r) {
		if m == "Dot-access of non-struct type" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Dot-access of non-struct type', got %v", messages(r))
	}
}

func TestFormalOffsetsAndFrameSizes(t *testing.T) {
	prog, r := parseAndAnalyze(t, "void main(){} int add(int a, int b){ int c; return a+b+c; }")
	if r.HasFatal() {
		t.Fatalf("unexpected diagnostics: %v", messages(r))
	}
	fn := prog.Decls[1].(*ast.FnDecl)

	aSym := fn.Formals[0].Sym.(*symtab.Symbol)
	bSym := fn.Formals[1].Sym.(*symtab.Symbol)
	if aSym.Offset != 0 {
		t.Errorf("expected first formal at offset 0, got %d", aSym.Offset)
	}
	if bSym.Offset != -4 {
		t.Errorf("expected second formal at offset -4, got %d", bSym.Offset)
	}

	fnSym := fn.Sym.(*symtab.Symbol)
	if fnSym.ParamSize != 8 {
		t.Errorf("expected paramSize 8, got %d", fnSym.ParamSize)
	}
	if fnSym.LocalSize != 4 {
		t.Errorf("expected localSize 4 for one local int, got %d", fnSym.LocalSize)
	}
}

func TestDuplicateFunctionNameReported(t *testing.T) {
	_, r := parseAndAnalyze(t, "void main(){} void main(){}")
	found := false
	for _, m := range messages(r) {
		if m == "Multiply declared identifier" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'Multiply declared identifier', got %v", messages(r))
	}
}
