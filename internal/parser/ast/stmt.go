package ast

import "github.com/hassan/cmm/internal/lexer"

// AssignStmt is an assignment used in statement position: `id = expr;` or
// `loc.field = expr;`. It wraps the same AssignExpr used in expression
// position so name analysis and type-check share one rule.
type AssignStmt struct {
	Assign *AssignExpr
	Semi   lexer.Position
}

// PostIncStmt and PostDecStmt are `target++;` / `target--;`.
type PostIncStmt struct {
	Target Expr
	OpPos  lexer.Position
}
type PostDecStmt struct {
	Target Expr
	OpPos  lexer.Position
}

// ReadStmt is `cin >> target;`.
type ReadStmt struct {
	CinPos lexer.Position
	Target Expr
}

// WriteStmt is `cout << value;`.
type WriteStmt struct {
	CoutPos lexer.Position
	Value   Expr
}

// IfStmt is `if (cond) { then }`, with no else arm.
type IfStmt struct {
	IfPos lexer.Position
	Cond  Expr
	Then  []Stmt
}

// IfElseStmt is `if (cond) { then } else { els }`.
type IfElseStmt struct {
	IfPos lexer.Position
	Cond  Expr
	Then  []Stmt
	Else  []Stmt
}

// WhileStmt is `while (cond) { body }`; it is the only loop form that code
// generation actually emits.
type WhileStmt struct {
	WhilePos lexer.Position
	Cond     Expr
	Body     []Stmt
}

// RepeatStmt is `repeat (cond) { body }`. It is accepted by the parser and
// checked by name analysis and type-check like WhileStmt, but is
// intentionally not code-generated.
type RepeatStmt struct {
	RepeatPos lexer.Position
	Cond      Expr
	Body      []Stmt
}

// CallStmt is a function call used as a statement: `foo(a, b);`.
type CallStmt struct {
	Call *CallExpr
	Semi lexer.Position
}

// ReturnStmt is `return;` or `return expr;`. Value is nil for the bare form
// (the resolved reading of the open question on return syntax: this is a
// dedicated statement node, not a CallStmt-shaped one).
type ReturnStmt struct {
	ReturnPos lexer.Position
	Value     Expr
}

func (s *AssignStmt) Pos() lexer.Position   { return s.Assign.Pos() }
func (s *PostIncStmt) Pos() lexer.Position  { return s.Target.Pos() }
func (s *PostDecStmt) Pos() lexer.Position  { return s.Target.Pos() }
func (s *ReadStmt) Pos() lexer.Position     { return s.CinPos }
func (s *WriteStmt) Pos() lexer.Position    { return s.CoutPos }
func (s *IfStmt) Pos() lexer.Position       { return s.IfPos }
func (s *IfElseStmt) Pos() lexer.Position   { return s.IfPos }
func (s *WhileStmt) Pos() lexer.Position    { return s.WhilePos }
func (s *RepeatStmt) Pos() lexer.Position   { return s.RepeatPos }
func (s *CallStmt) Pos() lexer.Position     { return s.Call.Pos() }
func (s *ReturnStmt) Pos() lexer.Position   { return s.ReturnPos }

func (s *AssignStmt) stmtNode()   {}
func (s *PostIncStmt) stmtNode()  {}
func (s *PostDecStmt) stmtNode()  {}
func (s *ReadStmt) stmtNode()     {}
func (s *WriteStmt) stmtNode()    {}
func (s *IfStmt) stmtNode()       {}
func (s *IfElseStmt) stmtNode()   {}
func (s *WhileStmt) stmtNode()    {}
func (s *RepeatStmt) stmtNode()   {}
func (s *CallStmt) stmtNode()     {}
func (s *ReturnStmt) stmtNode()   {}
