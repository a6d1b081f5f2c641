package ast

import (
	"github.com/hassan/cmm/internal/lexer"
	"github.com/hassan/cmm/internal/symtab"
	"github.com/hassan/cmm/internal/types"
)

// IntLitExpr is a decoded integer literal.
type IntLitExpr struct {
	LitPos lexer.Position
	Value  int
}

// StringLitExpr stores the verbatim quoted lexeme, e.g. `"hi"` including
// the quotes, so the emitter can intern it by that exact text.
type StringLitExpr struct {
	LitPos lexer.Position
	Value  string
}

// TrueExpr and FalseExpr are the boolean literals.
type TrueExpr struct{ LitPos lexer.Position }
type FalseExpr struct{ LitPos lexer.Position }

// IdentExpr is an identifier use. Name analysis fills Sym; type-check fills
// Type. Both are nil until the corresponding pass runs.
type IdentExpr struct {
	IdPos lexer.Position
	Name  string
	Sym   *symtab.Symbol
	Type  types.Type
}

// DotAccessExpr is `loc . id`, a struct field access. Name analysis fills
// FieldSym (the resolved field symbol) or sets BadAccess when loc did not
// resolve to a struct instance, so type-check and code generation can
// suppress cascading diagnostics instead of treating a nil FieldSym as a
// genuine link.
type DotAccessExpr struct {
	Loc       Expr
	DotPos    lexer.Position
	Field     *IdentExpr
	FieldSym  *symtab.Symbol
	BadAccess bool
	Type      types.Type
}

// AssignExpr is `lhs = rhs`, modeled as an expression so it can nest
// inside other expressions; AssignStmt wraps one to use it in statement
// position.
type AssignExpr struct {
	LHS  Expr
	RHS  Expr
	Type types.Type
}

// CallExpr is `callee(actuals...)`. The callee is always a plain
// identifier in C‑‑ — there are no method calls or function-valued
// expressions in the closed grammar.
type CallExpr struct {
	Callee   *IdentExpr
	LParen   lexer.Token
	Args     []Expr
	RParen   lexer.Token
	CallType types.Type
}

// UnaryOp enumerates the two unary operators C‑‑ supports.
type UnaryOp int

const (
	UnaryMinus UnaryOp = iota
	UnaryNot
)

type UnaryExpr struct {
	OpPos    lexer.Position
	Op       UnaryOp
	Operand  Expr
	ExprType types.Type
}

// BinaryOp enumerates the binary operators: arithmetic, logical,
// relational, and equality.
type BinaryOp int

const (
	BinPlus BinaryOp = iota
	BinMinus
	BinTimes
	BinDivide
	BinAnd
	BinOr
	BinEq
	BinNeq
	BinLt
	BinGt
	BinLe
	BinGe
)

type BinaryExpr struct {
	Left     Expr
	Op       BinaryOp
	OpPos    lexer.Position
	Right    Expr
	ExprType types.Type
}

func (e *IntLitExpr) Pos() lexer.Position     { return e.LitPos }
func (e *StringLitExpr) Pos() lexer.Position  { return e.LitPos }
func (e *TrueExpr) Pos() lexer.Position       { return e.LitPos }
func (e *FalseExpr) Pos() lexer.Position      { return e.LitPos }
func (e *IdentExpr) Pos() lexer.Position      { return e.IdPos }
func (e *DotAccessExpr) Pos() lexer.Position  { return e.Loc.Pos() }
func (e *AssignExpr) Pos() lexer.Position     { return e.LHS.Pos() }
func (e *CallExpr) Pos() lexer.Position       { return e.Callee.Pos() }
func (e *UnaryExpr) Pos() lexer.Position      { return e.OpPos }
func (e *BinaryExpr) Pos() lexer.Position     { return e.Left.Pos() }

func (e *IntLitExpr) exprNode()    {}
func (e *StringLitExpr) exprNode() {}
func (e *TrueExpr) exprNode()      {}
func (e *FalseExpr) exprNode()     {}
func (e *IdentExpr) exprNode()     {}
func (e *DotAccessExpr) exprNode() {}
func (e *AssignExpr) exprNode()    {}
func (e *CallExpr) exprNode()      {}
func (e *UnaryExpr) exprNode()     {}
func (e *BinaryExpr) exprNode()    {}
