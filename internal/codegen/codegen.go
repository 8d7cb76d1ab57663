// Package codegen translates a name-analyzed, type-checked Gibberish AST
// into MIPS assembly text, using internal/asm's stack-discipline helpers.
//
// Every expression's codeGen leaves exactly one 4-byte value on the runtime
// stack; every statement's codegen is stack-neutral. Control flow for
// boolean-producing expressions goes through the two-label genJumpCode
// protocol: literals and && / || jump directly to the target labels, while
// other conditions are evaluated to a 0/1 value, popped, and branched on.
package codegen

import (
	"io"

	"github.com/hassan/gibberishc/internal/asm"
	"github.com/hassan/gibberishc/internal/parser/ast"
	"github.com/hassan/gibberishc/internal/symtab"
	"github.com/hassan/gibberishc/internal/types"
)

// Generator walks a Program and emits MIPS text through an *asm.Emitter.
type Generator struct {
	emitter   *asm.Emitter
	exitLabel string // the enclosing function's epilogue label, for `return`
}

// Generate runs code generation over prog and writes the assembled MIPS
// text to w. The caller must only call this once name analysis and type
// checking have both completed without a fatal diagnostic.
func Generate(prog *ast.Program, w io.Writer) error {
	g := &Generator{emitter: asm.New()}

	g.emitter.Data()
	for _, d := range prog.Decls {
		if vd, ok := d.(*ast.VarDecl); ok {
			g.genGlobal(vd)
		}
	}

	g.emitter.Text()
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FnDecl); ok {
			g.genFnDecl(fn)
		}
	}

	_, err := g.emitter.WriteTo(w)
	return err
}

// genGlobal reserves storage for one global variable. Struct-typed globals
// are skipped: struct values are never allocated at runtime in this
// language subset (mirroring the behavior of the source this was
// translated from), so there is nothing to reserve.
func (g *Generator) genGlobal(d *ast.VarDecl) {
	sym, ok := d.Sym.(*symtab.Symbol)
	if !ok || types.IsStruct(sym.Type) {
		return
	}
	g.emitter.GlobalData(d.Name)
}

func (g *Generator) genFnDecl(d *ast.FnDecl) {
	sym := d.Sym.(*symtab.Symbol)
	name := d.Name
	exitLabel := "_" + name + "_Exit"
	prevExit := g.exitLabel
	g.exitLabel = exitLabel

	if name == "main" {
		g.emitter.Label("main")
	}
	g.emitter.Label("_" + name)
	g.emitter.Push("$ra")
	g.emitter.Push("$fp")
	g.emitter.Line("addu $fp, $sp, %d", sym.ParamSize+8)
	g.emitter.Line("subu $sp, $sp, %d", sym.LocalSize)

	for _, s := range d.Body {
		g.genStmt(s)
	}

	g.emitter.Label(exitLabel)
	g.emitter.Line("lw $ra, %d($fp)", -sym.ParamSize)
	g.emitter.Line("lw $fp, %d($fp)", -sym.ParamSize-4)
	g.emitter.Line("move $sp, $fp")
	if name == "main" {
		g.emitter.Syscall(asm.SyscallExit)
	} else {
		g.emitter.Line("jr $ra")
	}

	g.exitLabel = prevExit
}

func (g *Generator) genBlock(b *ast.BlockStmt) {
	for _, s := range b.Stmts {
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		// the frame slot was reserved during name analysis; there is no
		// initializer to evaluate

	case *ast.BlockStmt:
		g.genBlock(st)

	case *ast.IfStmt:
		t, d := g.emitter.NewLabel(), g.emitter.NewLabel()
		g.genJumpCode(st.Cond, t, d)
		g.emitter.Label(t)
		g.genBlock(st.Then)
		g.emitter.Label(d)

	case *ast.IfElseStmt:
		t, f, d := g.emitter.NewLabel(), g.emitter.NewLabel(), g.emitter.NewLabel()
		g.genJumpCode(st.Cond, t, f)
		g.emitter.Label(t)
		g.genBlock(st.Then)
		g.emitter.Jump(d)
		g.emitter.Label(f)
		g.genBlock(st.Else)
		g.emitter.Label(d)

	case *ast.WhileStmt:
		e, b, d := g.emitter.NewLabel(), g.emitter.NewLabel(), g.emitter.NewLabel()
		g.emitter.Label(e)
		g.genJumpCode(st.Cond, b, d)
		g.emitter.Label(b)
		g.genBlock(st.Body)
		g.emitter.Jump(e)
		g.emitter.Label(d)

	case *ast.RepeatStmt:
		// No code generator here, matching the source this subset was
		// translated from: repeat passes name analysis and type checking
		// but was never wired to codegen. See DESIGN.md.

	case *ast.ReturnStmt:
		if st.Value != nil {
			g.genExpr(st.Value)
			g.emitter.Pop("$v0")
		}
		g.emitter.Jump(g.exitLabel)

	case *ast.ReadStmt:
		g.genAddr(st.Target)
		g.emitter.Pop("$t0")
		g.emitter.Syscall(asm.SyscallReadInt)
		g.emitter.Line("sw $v0, 0($t0)")

	case *ast.WriteStmt:
		g.genExpr(st.Value)
		g.emitter.Pop("$a0")
		if resolved, ok := st.ResolvedType.(types.Type); ok && resolved.Equals(types.String) {
			g.emitter.Syscall(asm.SyscallPrintStr)
		} else {
			g.emitter.Syscall(asm.SyscallPrintInt)
		}

	case *ast.PostIncStmt:
		g.genIncDec(st.Target, "addiu")

	case *ast.PostDecStmt:
		g.genIncDec(st.Target, "subu")

	case *ast.CallStmt:
		g.genExpr(st.Call)
		g.emitter.Pop("$t0") // statement context discards the call's result

	case *ast.AssignStmt:
		g.genAssign(st.Target, st.Value)
		g.emitter.Pop("$t0") // statement context discards the assignment's value
	}
}

func (g *Generator) genIncDec(target *ast.IdentExpr, op string) {
	g.genIdentAddr(target)
	g.emitter.Pop("$t0")
	g.emitter.Line("lw $t1, 0($t0)")
	g.emitter.Line("%s $t1, $t1, 1", op)
	g.emitter.Line("sw $t1, 0($t0)")
}

// genAddr pushes the address of an lvalue expression.
func (g *Generator) genAddr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		g.genIdentAddr(ex)
	case *ast.DotAccessExpr:
		panic("codegen: dot-access addressing is unimplemented; struct values are never allocated in this language subset")
	default:
		panic("codegen: genAddr called on a non-addressable expression")
	}
}

func (g *Generator) genIdentAddr(e *ast.IdentExpr) {
	sym := e.Sym.(*symtab.Symbol)
	if sym.Storage == symtab.Global {
		g.emitter.AddrGlobal("$t0", e.Name)
	} else {
		g.emitter.AddrFrame("$t0", sym.Offset)
	}
	g.emitter.Push("$t0")
}

func (g *Generator) genIdentValue(e *ast.IdentExpr) {
	sym := e.Sym.(*symtab.Symbol)
	if sym.Storage == symtab.Global {
		g.emitter.LoadGlobal("$t0", e.Name)
	} else {
		g.emitter.LoadFrame("$t0", sym.Offset)
	}
	g.emitter.Push("$t0")
}

// genExpr evaluates e, leaving exactly one 4-byte value on the stack.
func (g *Generator) genExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IntLit:
		g.emitter.Line("li $t0, %d", ex.Value)
		g.emitter.Push("$t0")
	case *ast.BoolLit:
		v := 0
		if ex.Value {
			v = 1
		}
		g.emitter.Line("li $t0, %d", v)
		g.emitter.Push("$t0")
	case *ast.StrLit:
		label := g.emitter.InternString(ex.Value)
		g.emitter.Line("la $t0, %s", label)
		g.emitter.Push("$t0")
	case *ast.IdentExpr:
		g.genIdentValue(ex)
	case *ast.DotAccessExpr:
		panic("codegen: dot-access evaluation is unimplemented; struct values are never allocated in this language subset")
	case *ast.UnaryMinusExpr:
		g.genExpr(ex.Operand)
		g.emitter.Pop("$t0")
		g.emitter.Line("sub $t0, $zero, $t0")
		g.emitter.Push("$t0")
	case *ast.NotExpr:
		g.genExpr(ex.Operand)
		g.emitter.Pop("$t0")
		g.emitter.Line("xori $t0, $t0, 1")
		g.emitter.Push("$t0")
	case *ast.BinaryExpr:
		g.genBinaryValue(ex)
	case *ast.AssignExpr:
		g.genAssign(ex.Target, ex.Value)
	case *ast.CallExpr:
		g.genCall(ex)
	}
}

func (g *Generator) genBinaryValue(ex *ast.BinaryExpr) {
	switch ex.Op {
	case ast.OpAdd:
		g.genArith(ex, "add")
	case ast.OpSub:
		g.genArith(ex, "sub")
	case ast.OpMul:
		g.genMulDiv(ex, "mult")
	case ast.OpDiv:
		g.genMulDiv(ex, "div")
	case ast.OpAnd:
		g.genLogicalValue(ex, false)
	case ast.OpOr:
		g.genLogicalValue(ex, true)
	case ast.OpEq:
		g.genCompare(ex, "seq")
	case ast.OpNotEq:
		g.genCompare(ex, "sne")
	case ast.OpLess:
		g.genCompare(ex, "slt")
	case ast.OpGreater:
		g.genCompare(ex, "sgt")
	case ast.OpLessEq:
		g.genCompare(ex, "sle")
	case ast.OpGreaterEq:
		g.genCompare(ex, "sge")
	}
}

func (g *Generator) genArith(ex *ast.BinaryExpr, op string) {
	g.genExpr(ex.Left)
	g.genExpr(ex.Right)
	g.emitter.Pop("$t1")
	g.emitter.Pop("$t0")
	g.emitter.Line("%s $t0, $t0, $t1", op)
	g.emitter.Push("$t0")
}

func (g *Generator) genMulDiv(ex *ast.BinaryExpr, op string) {
	g.genExpr(ex.Left)
	g.genExpr(ex.Right)
	g.emitter.Pop("$t1")
	g.emitter.Pop("$t0")
	g.emitter.Line("%s $t0, $t1", op)
	g.emitter.Line("mflo $t0")
	g.emitter.Push("$t0")
}

func (g *Generator) genCompare(ex *ast.BinaryExpr, op string) {
	g.genExpr(ex.Left)
	g.genExpr(ex.Right)
	g.emitter.Pop("$t1")
	g.emitter.Pop("$t0")
	g.emitter.Line("%s $t0, $t0, $t1", op)
	g.emitter.Push("$t0")
}

// genLogicalValue implements && / || in value position: evaluate the left
// operand; if it already determines the result, skip the right operand
// entirely (this is what keeps `false && X` from ever executing X).
func (g *Generator) genLogicalValue(ex *ast.BinaryExpr, isOr bool) {
	g.genExpr(ex.Left)
	g.emitter.Pop("$t0")
	result := g.emitter.NewLabel()
	if isOr {
		g.emitter.BranchNeZero("$t0", result)
	} else {
		g.emitter.BranchEqZero("$t0", result)
	}
	g.genExpr(ex.Right)
	g.emitter.Pop("$t0")
	g.emitter.Label(result)
	g.emitter.Push("$t0")
}

// genAssign evaluates `target = value`, leaving the assigned value on the
// stack (assignment is itself an expression).
func (g *Generator) genAssign(target, value ast.Expr) {
	g.genExpr(value)
	g.genAddr(target)
	g.emitter.Pop("$t0") // address
	g.emitter.Pop("$t1") // value
	g.emitter.Line("sw $t1, 0($t0)")
	g.emitter.Push("$t1")
}

func (g *Generator) genCall(ex *ast.CallExpr) {
	for _, a := range ex.Args {
		g.genExpr(a)
	}
	sym := ex.Sym.(*symtab.Symbol)
	g.emitter.Line("jal _%s", sym.Name)
	if n := len(ex.Args); n > 0 {
		g.emitter.Line("addu $sp, $sp, %d", 4*n)
	}
	g.emitter.Push("$v0")
}

// genJumpCode implements the two-label jump protocol every boolean-producing
// expression shape supports. Boolean literals and && / || are lowered to
// jumps with no intermediate value; any other expression is evaluated to a
// 0/1 value on the stack, popped, and branched on.
func (g *Generator) genJumpCode(e ast.Expr, trueLabel, falseLabel string) {
	switch ex := e.(type) {
	case *ast.BoolLit:
		if ex.Value {
			g.emitter.Jump(trueLabel)
		} else {
			g.emitter.Jump(falseLabel)
		}
	case *ast.BinaryExpr:
		switch ex.Op {
		case ast.OpAnd:
			mid := g.emitter.NewLabel()
			g.genJumpCode(ex.Left, mid, falseLabel)
			g.emitter.Label(mid)
			g.genJumpCode(ex.Right, trueLabel, falseLabel)
			return
		case ast.OpOr:
			mid := g.emitter.NewLabel()
			g.genJumpCode(ex.Left, trueLabel, mid)
			g.emitter.Label(mid)
			g.genJumpCode(ex.Right, trueLabel, falseLabel)
			return
		}
		g.genExpr(e)
		g.emitter.Pop("$t0")
		g.emitter.BranchEqZero("$t0", falseLabel)
		g.emitter.Jump(trueLabel)
	default:
		g.genExpr(e)
		g.emitter.Pop("$t0")
		g.emitter.BranchEqZero("$t0", falseLabel)
		g.emitter.Jump(trueLabel)
	}
}
