package parser

import (
	"github.com/hassan/gibberishc/internal/lexer"
	"github.com/hassan/gibberishc/internal/parser/ast"
)

// Precedence levels, lowest to highest, for Gibberish's binary operators.
// Assignment itself is handled as a statement/expression form in the
// parser, not through this table, matching the grammar's separate
// assignment production.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecOr               // ||
	PrecAnd              // &&
	PrecEquality         // == !=
	PrecComparison       // < > <= >=
	PrecTerm             // + -
	PrecFactor           // * /
	PrecUnary            // ! -
)

func getPrecedence(t lexer.TokenType) Precedence {
	switch t {
	case lexer.TokenOrOr:
		return PrecOr
	case lexer.TokenAndAnd:
		return PrecAnd
	case lexer.TokenEq, lexer.TokenNotEq:
		return PrecEquality
	case lexer.TokenLess, lexer.TokenGreater, lexer.TokenLessEq, lexer.TokenGreaterEq:
		return PrecComparison
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash:
		return PrecFactor
	default:
		return PrecNone
	}
}

func binaryOpFor(t lexer.TokenType) ast.BinaryOp {
	switch t {
	case lexer.TokenPlus:
		return ast.OpAdd
	case lexer.TokenMinus:
		return ast.OpSub
	case lexer.TokenStar:
		return ast.OpMul
	case lexer.TokenSlash:
		return ast.OpDiv
	case lexer.TokenAndAnd:
		return ast.OpAnd
	case lexer.TokenOrOr:
		return ast.OpOr
	case lexer.TokenEq:
		return ast.OpEq
	case lexer.TokenNotEq:
		return ast.OpNotEq
	case lexer.TokenLess:
		return ast.OpLess
	case lexer.TokenGreater:
		return ast.OpGreater
	case lexer.TokenLessEq:
		return ast.OpLessEq
	case lexer.TokenGreaterEq:
		return ast.OpGreaterEq
	default:
		panic("parser: binaryOpFor called with non-binary-operator token")
	}
}
