// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a Gibberish token stream into an AST.
package parser

import (
	"github.com/hassan/gibberishc/internal/diag"
	"github.com/hassan/gibberishc/internal/lexer"
	"github.com/hassan/gibberishc/internal/parser/ast"
)

// Parser holds a three-token lookahead window (the current token, one token
// of peek for forms like `ident(` vs plain `ident`, and a second peek token
// for struct declarations) plus the diagnostic sink shared with the rest of
// the pipeline.
type Parser struct {
	lex      *lexer.Lexer
	reporter *diag.Reporter

	cur     lexer.Token
	peek    lexer.Token
	peek2   lexer.Token // second token of lookahead, needed only to tell
	                    // `struct T {` (a definition) from `struct T x;`
	                    // (a variable of struct type) without backtracking
	drained int         // count of lexer errors already forwarded to reporter
}

// New creates a Parser over source, reporting diagnostics to reporter.
func New(source, filename string, reporter *diag.Reporter) *Parser {
	p := &Parser{lex: lexer.New(source, filename), reporter: reporter}
	p.cur = p.nextToken()
	p.peek = p.nextToken()
	p.peek2 = p.nextToken()
	return p
}

func (p *Parser) nextToken() lexer.Token {
	tok := p.lex.NextToken()
	errs := p.lex.Errors()
	for ; p.drained < len(errs); p.drained++ {
		p.reporter.Report(errs[p.drained].Pos, errs[p.drained].Msg)
	}
	return tok
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.peek2
	p.peek2 = p.nextToken()
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.cur.Type != tt {
		p.reporter.Reportf(p.cur.Position, "expected %s, found %s", tt, p.cur.Type)
		tok := lexer.Token{Type: tt, Position: p.cur.Position}
		p.synchronize()
		return tok
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *Parser) expectSemi() { p.expect(lexer.TokenSemicolon) }

// synchronize implements panic-mode recovery: skip tokens until a `;`
// (consumed) or a `}` (left for the caller, so block-closing logic still
// sees it) or end of file.
func (p *Parser) synchronize() {
	for p.cur.Type != lexer.TokenEOF && p.cur.Type != lexer.TokenRBrace {
		if p.cur.Type == lexer.TokenSemicolon {
			p.advance()
			return
		}
		p.advance()
	}
}

// ParseProgram parses an entire source file.
func (p *Parser) ParseProgram() *ast.Program {
	var decls []ast.Decl
	for p.cur.Type != lexer.TokenEOF {
		before := p.cur
		d := p.parseTopLevelDecl()
		if d != nil {
			decls = append(decls, d)
		}
		if p.cur == before {
			// Nothing was consumed (an unparseable token at top level);
			// force progress so the loop terminates.
			p.advance()
		}
	}
	return &ast.Program{Decls: decls}
}

func (p *Parser) parseTopLevelDecl() ast.Decl {
	// `struct T {` is a definition; `struct T x;` (or `struct T f(...)`) is
	// a variable/function using T as a type. Three tokens of lookahead
	// (struct, T, next) disambiguate without backtracking.
	if p.cur.Type == lexer.TokenStruct && p.peek.Type == lexer.TokenIdent && p.peek2.Type == lexer.TokenLBrace {
		return p.parseStructDecl()
	}

	typ := p.parseTypeName()
	nameTok := p.expect(lexer.TokenIdent)
	if p.cur.Type == lexer.TokenLParen {
		return p.parseFnDeclRest(typ, nameTok)
	}
	p.expectSemi()
	return &ast.VarDecl{Position: typ.Position, Type: typ, Name: nameTok.Lexeme}
}

func (p *Parser) parseTypeName() *ast.TypeName {
	switch p.cur.Type {
	case lexer.TokenInt:
		pos := p.cur.Position
		p.advance()
		return &ast.TypeName{Position: pos, Name: "int"}
	case lexer.TokenBool:
		pos := p.cur.Position
		p.advance()
		return &ast.TypeName{Position: pos, Name: "bool"}
	case lexer.TokenVoid:
		pos := p.cur.Position
		p.advance()
		return &ast.TypeName{Position: pos, Name: "void"}
	case lexer.TokenStruct:
		pos := p.cur.Position
		p.advance()
		nameTok := p.expect(lexer.TokenIdent)
		return &ast.TypeName{Position: pos, Name: nameTok.Lexeme, IsStruct: true}
	default:
		p.reporter.Reportf(p.cur.Position, "expected a type, found %s", p.cur.Type)
		pos := p.cur.Position
		p.synchronize()
		return &ast.TypeName{Position: pos, Name: "int"}
	}
}

func (p *Parser) parseFnDeclRest(retType *ast.TypeName, nameTok lexer.Token) *ast.FnDecl {
	pos := retType.Position
	p.expect(lexer.TokenLParen)
	var formals []*ast.FormalDecl
	if p.cur.Type != lexer.TokenRParen {
		formals = append(formals, p.parseFormal())
		for p.cur.Type == lexer.TokenComma {
			p.advance()
			formals = append(formals, p.parseFormal())
		}
	}
	p.expect(lexer.TokenRParen)
	p.expect(lexer.TokenLBrace)
	var body []ast.Stmt
	for p.cur.Type != lexer.TokenRBrace && p.cur.Type != lexer.TokenEOF {
		s := p.parseStmt()
		if s != nil {
			body = append(body, s)
		}
	}
	p.expect(lexer.TokenRBrace)
	return &ast.FnDecl{Position: pos, RetType: retType, Name: nameTok.Lexeme, Formals: formals, Body: body}
}

func (p *Parser) parseFormal() *ast.FormalDecl {
	typ := p.parseTypeName()
	nameTok := p.expect(lexer.TokenIdent)
	return &ast.FormalDecl{Position: typ.Position, Type: typ, Name: nameTok.Lexeme}
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.cur.Position
	p.expect(lexer.TokenStruct)
	nameTok := p.expect(lexer.TokenIdent)
	p.expect(lexer.TokenLBrace)
	var fields []*ast.VarDecl
	for p.cur.Type != lexer.TokenRBrace && p.cur.Type != lexer.TokenEOF {
		typ := p.parseTypeName()
		fieldNameTok := p.expect(lexer.TokenIdent)
		p.expectSemi()
		fields = append(fields, &ast.VarDecl{Position: typ.Position, Type: typ, Name: fieldNameTok.Lexeme})
	}
	p.expect(lexer.TokenRBrace)
	p.expectSemi()
	return &ast.StructDecl{Position: pos, Name: nameTok.Lexeme, Fields: fields}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenRepeat:
		return p.parseRepeat()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenCin:
		return p.parseRead()
	case lexer.TokenCout:
		return p.parseWrite()
	case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStruct:
		typ := p.parseTypeName()
		nameTok := p.expect(lexer.TokenIdent)
		p.expectSemi()
		return &ast.VarDecl{Position: typ.Position, Type: typ, Name: nameTok.Lexeme}
	case lexer.TokenIdent:
		return p.parseIdentStmt()
	default:
		p.reporter.Reportf(p.cur.Position, "unexpected token %s in statement", p.cur.Type)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	pos := p.cur.Position
	p.expect(lexer.TokenLBrace)
	var stmts []ast.Stmt
	for p.cur.Type != lexer.TokenRBrace && p.cur.Type != lexer.TokenEOF {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(lexer.TokenRBrace)
	return &ast.BlockStmt{Position: pos, Stmts: stmts}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.cur.Position
	p.expect(lexer.TokenIf)
	p.expect(lexer.TokenLParen)
	cond := p.parseExpr()
	p.expect(lexer.TokenRParen)
	then := p.parseBlock()
	if p.cur.Type == lexer.TokenElse {
		p.advance()
		elseBlk := p.parseBlock()
		return &ast.IfElseStmt{Position: pos, Cond: cond, Then: then, Else: elseBlk}
	}
	return &ast.IfStmt{Position: pos, Cond: cond, Then: then}
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.cur.Position
	p.expect(lexer.TokenWhile)
	p.expect(lexer.TokenLParen)
	cond := p.parseExpr()
	p.expect(lexer.TokenRParen)
	body := p.parseBlock()
	return &ast.WhileStmt{Position: pos, Cond: cond, Body: body}
}

func (p *Parser) parseRepeat() ast.Stmt {
	pos := p.cur.Position
	p.expect(lexer.TokenRepeat)
	p.expect(lexer.TokenLParen)
	count := p.parseExpr()
	p.expect(lexer.TokenRParen)
	body := p.parseBlock()
	return &ast.RepeatStmt{Position: pos, Count: count, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.cur.Position
	p.expect(lexer.TokenReturn)
	if p.cur.Type == lexer.TokenSemicolon {
		p.advance()
		return &ast.ReturnStmt{Position: pos}
	}
	val := p.parseExpr()
	p.expectSemi()
	return &ast.ReturnStmt{Position: pos, Value: val}
}

func (p *Parser) parseRead() ast.Stmt {
	pos := p.cur.Position
	p.expect(lexer.TokenCin)
	p.expect(lexer.TokenShr)
	target := p.parseExpr()
	p.expectSemi()
	return &ast.ReadStmt{Position: pos, Target: target}
}

func (p *Parser) parseWrite() ast.Stmt {
	pos := p.cur.Position
	p.expect(lexer.TokenCout)
	p.expect(lexer.TokenShl)
	val := p.parseExpr()
	p.expectSemi()
	return &ast.WriteStmt{Position: pos, Value: val}
}

// parseIdentStmt parses the statement forms that start with an identifier:
// a call, an increment/decrement, or an assignment.
func (p *Parser) parseIdentStmt() ast.Stmt {
	pos := p.cur.Position
	name := p.cur.Lexeme
	p.advance()

	if p.cur.Type == lexer.TokenLParen {
		call := p.parseCallTail(pos, name)
		p.expectSemi()
		return &ast.CallStmt{Position: pos, Call: call}
	}

	var target ast.Expr = &ast.IdentExpr{Position: pos, Name: name}
	for p.cur.Type == lexer.TokenDot {
		dotPos := p.cur.Position
		p.advance()
		fieldTok := p.expect(lexer.TokenIdent)
		target = &ast.DotAccessExpr{Position: dotPos, Base: target, Field: fieldTok.Lexeme}
	}

	switch p.cur.Type {
	case lexer.TokenPlusPlus:
		p.advance()
		p.expectSemi()
		id, ok := target.(*ast.IdentExpr)
		if !ok {
			p.reporter.Reportf(pos, "Increment of non-identifier target")
			return nil
		}
		return &ast.PostIncStmt{Position: pos, Target: id}
	case lexer.TokenMinusMinus:
		p.advance()
		p.expectSemi()
		id, ok := target.(*ast.IdentExpr)
		if !ok {
			p.reporter.Reportf(pos, "Decrement of non-identifier target")
			return nil
		}
		return &ast.PostDecStmt{Position: pos, Target: id}
	case lexer.TokenAssign:
		p.advance()
		value := p.parseExpr()
		p.expectSemi()
		return &ast.AssignStmt{Position: pos, Target: target, Value: value}
	default:
		p.reporter.Reportf(p.cur.Position, "expected statement, found %s", p.cur.Type)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseCallTail(pos lexer.Position, name string) *ast.CallExpr {
	p.expect(lexer.TokenLParen)
	var args []ast.Expr
	if p.cur.Type != lexer.TokenRParen {
		args = append(args, p.parseExpr())
		for p.cur.Type == lexer.TokenComma {
			p.advance()
			args = append(args, p.parseExpr())
		}
	}
	p.expect(lexer.TokenRParen)
	return &ast.CallExpr{Position: pos, Callee: name, Args: args}
}

// parseExpr parses the assignment-or-lower form: a binary/unary expression,
// optionally followed by `= <expr>` for use in expression position (e.g. as
// a call argument), right-associatively.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseBinary(PrecOr)
	if p.cur.Type == lexer.TokenAssign {
		pos := p.cur.Position
		p.advance()
		value := p.parseExpr()
		return &ast.AssignExpr{Position: pos, Target: left, Value: value}
	}
	return left
}

func (p *Parser) parseBinary(minPrec Precedence) ast.Expr {
	left := p.parseUnary()
	for {
		prec := getPrecedence(p.cur.Type)
		if prec == PrecNone || prec < minPrec {
			break
		}
		opTok := p.cur
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Position: opTok.Position, Op: binaryOpFor(opTok.Type), Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case lexer.TokenMinus:
		pos := p.cur.Position
		p.advance()
		return &ast.UnaryMinusExpr{Position: pos, Operand: p.parseUnary()}
	case lexer.TokenNot:
		pos := p.cur.Position
		p.advance()
		return &ast.NotExpr{Position: pos, Operand: p.parseUnary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case lexer.TokenIntLit:
		tok := p.cur
		p.advance()
		return &ast.IntLit{Position: tok.Position, Value: tok.IntValue}
	case lexer.TokenStringLit:
		tok := p.cur
		p.advance()
		return &ast.StrLit{Position: tok.Position, Value: tok.StringValue}
	case lexer.TokenTrue:
		pos := p.cur.Position
		p.advance()
		return &ast.BoolLit{Position: pos, Value: true}
	case lexer.TokenFalse:
		pos := p.cur.Position
		p.advance()
		return &ast.BoolLit{Position: pos, Value: false}
	case lexer.TokenLParen:
		p.advance()
		e := p.parseExpr()
		p.expect(lexer.TokenRParen)
		return e
	case lexer.TokenIdent:
		pos := p.cur.Position
		name := p.cur.Lexeme
		p.advance()
		if p.cur.Type == lexer.TokenLParen {
			return p.parseCallTail(pos, name)
		}
		var e ast.Expr = &ast.IdentExpr{Position: pos, Name: name}
		for p.cur.Type == lexer.TokenDot {
			dotPos := p.cur.Position
			p.advance()
			fieldTok := p.expect(lexer.TokenIdent)
			e = &ast.DotAccessExpr{Position: dotPos, Base: e, Field: fieldTok.Lexeme}
		}
		return e
	default:
		p.reporter.Reportf(p.cur.Position, "unexpected token %s in expression", p.cur.Type)
		pos := p.cur.Position
		p.synchronize()
		return &ast.IntLit{Position: pos, Value: 0}
	}
}
