package ast

import "github.com/hassan/cmm/internal/lexer"

// IntTypeExpr, BoolTypeExpr and VoidTypeExpr name the three primitive type
// keywords. They carry the keyword's position, which VarDecl and FormalDecl
// report as their own Pos().
type IntTypeExpr struct{ KeywordPos lexer.Position }
type BoolTypeExpr struct{ KeywordPos lexer.Position }
type VoidTypeExpr struct{ KeywordPos lexer.Position }

// StructTypeExpr names a struct tag: `struct Point`.
type StructTypeExpr struct {
	KeywordPos lexer.Position
	Tag        *IdentExpr
}

func (t *IntTypeExpr) Pos() lexer.Position    { return t.KeywordPos }
func (t *BoolTypeExpr) Pos() lexer.Position   { return t.KeywordPos }
func (t *VoidTypeExpr) Pos() lexer.Position   { return t.KeywordPos }
func (t *StructTypeExpr) Pos() lexer.Position { return t.KeywordPos }

func (t *IntTypeExpr) typeNode()    {}
func (t *BoolTypeExpr) typeNode()   {}
func (t *VoidTypeExpr) typeNode()   {}
func (t *StructTypeExpr) typeNode() {}

func (t *IntTypeExpr) String() string    { return "int" }
func (t *BoolTypeExpr) String() string   { return "bool" }
func (t *VoidTypeExpr) String() string   { return "void" }
func (t *StructTypeExpr) String() string { return "struct " + t.Tag.Name }
