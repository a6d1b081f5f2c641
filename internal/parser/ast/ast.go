// Package ast defines the abstract syntax tree for C‑‑ programs.
//
// DESIGN CHOICE: nodes are tagged variants (one concrete struct per
// production) reached by a type switch in each pass, rather than a
// visitor-with-Accept hierarchy. The three passes that walk this tree —
// name analysis, type-check, code emission — each need a different return
// shape (error only, types.Type, emitted text), so a single Accept(Visitor)
// signature would force an awkward interface{} return on all of them. A
// type switch per pass is the "tagged variant, pattern-matched dispatch"
// alternative named directly in the design notes, and every switch is
// exhaustive over the closed node set below.
package ast

import "github.com/hassan/cmm/internal/lexer"

// Node is the common interface of every AST node: a source position for
// diagnostics.
type Node interface {
	Pos() lexer.Position
}

// Decl is a top-level declaration: a variable, a function, or a struct
// definition.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression that produces a value.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr names a type in source position: int, bool, void, or struct Tag.
type TypeExpr interface {
	Node
	typeNode()
	String() string
}

// Program is the root of the AST: an ordered sequence of top-level
// declarations.
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() lexer.Position {
	if len(p.Decls) == 0 {
		return lexer.Position{}
	}
	return p.Decls[0].Pos()
}
