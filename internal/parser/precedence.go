package parser

import "github.com/hassan/cmm/internal/lexer"

// Precedence levels for C‑‑ binary operators, low to high: ||, &&,
// equality, relational, additive, multiplicative. Unary and primaries are
// handled by dedicated parse functions rather than this table.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecOr
	PrecAnd
	PrecEquality
	PrecRelational
	PrecAdditive
	PrecMultiplicative
)

func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenEquals, lexer.TokenNotEquals:
		return PrecEquality
	case lexer.TokenLess, lexer.TokenGreater, lexer.TokenLessEq, lexer.TokenGreaterEq:
		return PrecRelational
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecAdditive
	case lexer.TokenTimes, lexer.TokenDivide:
		return PrecMultiplicative
	default:
		return PrecNone
	}
}
