package semantic

import (
	"fmt"

	"github.com/hassan/gibberishc/internal/diag"
	"github.com/hassan/gibberishc/internal/lexer"
	"github.com/hassan/gibberishc/internal/parser/ast"
	"github.com/hassan/gibberishc/internal/symtab"
	"github.com/hassan/gibberishc/internal/types"
)

// TypeChecker verifies operator, assignment, call, return, read/write, and
// control-flow typing rules over a name-analyzed AST. It never mutates
// identifier links; the only AST field it writes is WriteStmt.ResolvedType,
// a cache codegen reads instead of re-deriving the same type.
type TypeChecker struct {
	reporter  *diag.Reporter
	currentFn *symtab.Symbol
}

// CheckTypes runs type checking over prog, which must already have been
// through AnalyzeNames.
func CheckTypes(prog *ast.Program, reporter *diag.Reporter) {
	tc := &TypeChecker{reporter: reporter}
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FnDecl); ok {
			tc.checkFnDecl(fn)
		}
	}
}

func (tc *TypeChecker) checkFnDecl(d *ast.FnDecl) {
	fnSym, ok := d.Sym.(*symtab.Symbol)
	if !ok {
		return
	}
	prevFn := tc.currentFn
	tc.currentFn = fnSym
	for _, s := range d.Body {
		tc.checkStmt(s)
	}
	tc.currentFn = prevFn
}

func (tc *TypeChecker) checkBlock(b *ast.BlockStmt) {
	for _, s := range b.Stmts {
		tc.checkStmt(s)
	}
}

func (tc *TypeChecker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		// declared type was already validated during name analysis
	case *ast.BlockStmt:
		tc.checkBlock(st)
	case *ast.IfStmt:
		tc.checkCondition(st.Cond, "if")
		tc.checkBlock(st.Then)
	case *ast.IfElseStmt:
		tc.checkCondition(st.Cond, "if")
		tc.checkBlock(st.Then)
		tc.checkBlock(st.Else)
	case *ast.WhileStmt:
		tc.checkCondition(st.Cond, "while")
		tc.checkBlock(st.Body)
	case *ast.RepeatStmt:
		t := tc.checkExpr(st.Count)
		if !types.IsError(t) && !t.Equals(types.Int) {
			tc.reporter.Report(st.Count.Pos(), "Non-int expression used as a repeat condition")
		}
		tc.checkBlock(st.Body)
	case *ast.ReturnStmt:
		tc.checkReturn(st)
	case *ast.ReadStmt:
		tc.checkRead(st)
	case *ast.WriteStmt:
		tc.checkWrite(st)
	case *ast.PostIncStmt:
		tc.checkIncDecTarget(st.Target)
	case *ast.PostDecStmt:
		tc.checkIncDecTarget(st.Target)
	case *ast.CallStmt:
		tc.checkExpr(st.Call)
	case *ast.AssignStmt:
		tc.checkAssignment(st.Target, st.Value, st.Position)
	}
}

func (tc *TypeChecker) checkCondition(cond ast.Expr, kind string) {
	t := tc.checkExpr(cond)
	if types.IsError(t) || t.Equals(types.Bool) {
		return
	}
	article := "a"
	if kind == "if" {
		article = "an"
	}
	tc.reporter.Report(cond.Pos(), fmt.Sprintf("Non-bool expression used as %s %s condition", article, kind))
}

func (tc *TypeChecker) checkReturn(st *ast.ReturnStmt) {
	if tc.currentFn == nil {
		return
	}
	retType := tc.currentFn.FnType().Ret

	if st.Value == nil {
		if !types.IsVoid(retType) {
			tc.reporter.Report(zeroPos, "Missing return value")
		}
		return
	}

	valType := tc.checkExpr(st.Value)
	if types.IsVoid(retType) {
		tc.reporter.Report(st.Value.Pos(), "Return with a value in a void function")
		return
	}
	if types.IsError(valType) {
		return
	}
	if !valType.Equals(retType) {
		tc.reporter.Report(st.Value.Pos(), "Bad return value")
	}
}

func (tc *TypeChecker) checkRead(st *ast.ReadStmt) {
	t := tc.checkExpr(st.Target)
	if types.IsError(t) {
		return
	}
	if msg, bad := ioRestrictionMessage("read", t); bad {
		tc.reporter.Report(st.Target.Pos(), msg)
	}
}

func (tc *TypeChecker) checkWrite(st *ast.WriteStmt) {
	t := tc.checkExpr(st.Value)
	if types.IsError(t) {
		return
	}
	if msg, bad := ioRestrictionMessage("write", t); bad {
		tc.reporter.Report(st.Value.Pos(), msg)
		return
	}
	if types.IsVoid(t) {
		tc.reporter.Report(st.Value.Pos(), "Attempt to write void")
		return
	}
	st.ResolvedType = t
}

func (tc *TypeChecker) checkIncDecTarget(target *ast.IdentExpr) {
	t := tc.checkExpr(target)
	if types.IsError(t) || t.Equals(types.Int) {
		return
	}
	tc.reporter.Report(target.Pos(), "Arithmetic operator applied to non-numeric operand")
}

// ioRestrictionMessage reports whether t is categorically forbidden as the
// operand of cin/cout (functions, struct names, struct values), independent
// of the write-only void restriction checkWrite applies on top.
func ioRestrictionMessage(action string, t types.Type) (string, bool) {
	switch {
	case types.IsFn(t):
		return fmt.Sprintf("Attempt to %s a function", action), true
	case types.IsStructDef(t):
		return fmt.Sprintf("Attempt to %s a struct name", action), true
	case types.IsStruct(t):
		return fmt.Sprintf("Attempt to %s a struct variable", action), true
	default:
		return "", false
	}
}

// checkExpr types an expression, reporting diagnostics along the way, and
// returns types.Error wherever a check failed so callers never need to
// special-case "did this subexpression already fail".
func (tc *TypeChecker) checkExpr(e ast.Expr) types.Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		return types.Int
	case *ast.StrLit:
		return types.String
	case *ast.BoolLit:
		return types.Bool
	case *ast.IdentExpr:
		sym, ok := ex.Sym.(*symtab.Symbol)
		if !ok {
			return types.Error
		}
		return sym.Type
	case *ast.DotAccessExpr:
		if ex.BadAccess {
			return types.Error
		}
		fsym, ok := ex.FieldSym.(*symtab.Symbol)
		if !ok {
			return types.Error
		}
		return fsym.Type
	case *ast.UnaryMinusExpr:
		t := tc.checkExpr(ex.Operand)
		if types.IsError(t) {
			return types.Error
		}
		if !t.Equals(types.Int) {
			tc.reporter.Report(ex.Operand.Pos(), "Arithmetic operator applied to non-numeric operand")
			return types.Error
		}
		return types.Int
	case *ast.NotExpr:
		t := tc.checkExpr(ex.Operand)
		if types.IsError(t) {
			return types.Error
		}
		if !t.Equals(types.Bool) {
			tc.reporter.Report(ex.Operand.Pos(), "Logical operator applied to non-bool operand")
			return types.Error
		}
		return types.Bool
	case *ast.BinaryExpr:
		return tc.checkBinary(ex)
	case *ast.AssignExpr:
		return tc.checkAssignment(ex.Target, ex.Value, ex.Position)
	case *ast.CallExpr:
		return tc.checkCall(ex)
	default:
		return types.Error
	}
}

func (tc *TypeChecker) checkBinary(ex *ast.BinaryExpr) types.Type {
	lt := tc.checkExpr(ex.Left)
	rt := tc.checkExpr(ex.Right)

	switch ex.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		lOK := tc.requireOperand(ex.Left, lt, types.Int, "Arithmetic operator applied to non-numeric operand")
		rOK := tc.requireOperand(ex.Right, rt, types.Int, "Arithmetic operator applied to non-numeric operand")
		if !lOK || !rOK {
			return types.Error
		}
		return types.Int
	case ast.OpAnd, ast.OpOr:
		lOK := tc.requireOperand(ex.Left, lt, types.Bool, "Logical operator applied to non-bool operand")
		rOK := tc.requireOperand(ex.Right, rt, types.Bool, "Logical operator applied to non-bool operand")
		if !lOK || !rOK {
			return types.Error
		}
		return types.Bool
	case ast.OpLess, ast.OpGreater, ast.OpLessEq, ast.OpGreaterEq:
		lOK := tc.requireOperand(ex.Left, lt, types.Int, "Relational operator applied to non-numeric operand")
		rOK := tc.requireOperand(ex.Right, rt, types.Int, "Relational operator applied to non-numeric operand")
		if !lOK || !rOK {
			return types.Error
		}
		return types.Bool
	case ast.OpEq, ast.OpNotEq:
		if types.IsError(lt) || types.IsError(rt) {
			return types.Error
		}
		if msg, bad := incompatibilityMessage(lt, rt, false); bad {
			tc.reporter.Report(ex.Left.Pos(), msg)
			return types.Error
		}
		return types.Bool
	default:
		return types.Error
	}
}

func (tc *TypeChecker) requireOperand(operand ast.Expr, t types.Type, want types.Type, msg string) bool {
	if types.IsError(t) {
		return false
	}
	if !t.Equals(want) {
		tc.reporter.Report(operand.Pos(), msg)
		return false
	}
	return true
}

// checkAssignment types `target = value`, shared by AssignStmt and
// AssignExpr. Per the error-line policy, a whole-expression mismatch
// attaches to the target's (the left operand's) position.
func (tc *TypeChecker) checkAssignment(target, value ast.Expr, _ lexer.Position) types.Type {
	lt := tc.checkExpr(target)
	rt := tc.checkExpr(value)
	if types.IsError(lt) || types.IsError(rt) {
		return types.Error
	}
	if msg, bad := incompatibilityMessage(lt, rt, true); bad {
		tc.reporter.Report(target.Pos(), msg)
		return types.Error
	}
	return lt
}

// incompatibilityMessage classifies why an equality comparison or
// assignment between lt and rt is disallowed, per the "both X" rules: these
// kinds are illegal operands regardless of whether the two sides actually
// match, because the language never allows comparing or assigning them.
// Only when neither side falls in one of those kinds does ordinary
// structural mismatch ("Type mismatch") apply.
func incompatibilityMessage(lt, rt types.Type, isAssignment bool) (string, bool) {
	if types.IsVoid(lt) && types.IsVoid(rt) {
		return "Equality operator applied to void functions", true
	}
	if types.IsFn(lt) && types.IsFn(rt) {
		if isAssignment {
			return "Function assignment", true
		}
		return "Equality operator applied to functions", true
	}
	if types.IsStructDef(lt) && types.IsStructDef(rt) {
		return "Equality operator applied to struct names", true
	}
	if types.IsStruct(lt) && types.IsStruct(rt) {
		return "Equality operator applied to struct variables", true
	}
	if !lt.Equals(rt) {
		return "Type mismatch", true
	}
	return "", false
}

func (tc *TypeChecker) checkCall(ex *ast.CallExpr) types.Type {
	sym, ok := ex.Sym.(*symtab.Symbol)
	if !ok {
		for _, a := range ex.Args {
			tc.checkExpr(a)
		}
		return types.Error
	}
	if !types.IsFn(sym.Type) {
		tc.reporter.Report(ex.Position, "Call of non-function")
		for _, a := range ex.Args {
			tc.checkExpr(a)
		}
		return types.Error
	}
	fnType := sym.Type.(*types.FnType)

	if len(ex.Args) != len(fnType.Params) {
		tc.reporter.Report(ex.Position, fmt.Sprintf("Wrong number of arguments in call to %s", ex.Callee))
		for _, a := range ex.Args {
			tc.checkExpr(a)
		}
		return fnType.Ret
	}

	for i, a := range ex.Args {
		at := tc.checkExpr(a)
		if types.IsError(at) {
			continue
		}
		if !at.Equals(fnType.Params[i]) {
			tc.reporter.Report(a.Pos(), "Type mismatch")
		}
	}
	return fnType.Ret
}
