package ast

import "github.com/hassan/cmm/internal/lexer"

// VarDecl declares one variable of a given type: a global, a struct field,
// or (inside FuncDecl.Locals) a local. The same node shape serves all
// three positions.
type VarDecl struct {
	Type TypeExpr
	Name *IdentExpr
}

// FormalDecl declares one function parameter.
type FormalDecl struct {
	Type TypeExpr
	Name *IdentExpr
}

// FuncDecl declares a function: a return type, a name, ordered formals, its
// locals (declared before any statement per the grammar), and its body.
type FuncDecl struct {
	FuncPos    lexer.Position
	ReturnType TypeExpr
	Name       *IdentExpr
	Formals    []*FormalDecl
	Locals     []*VarDecl
	Body       []Stmt
}

// StructDecl declares a struct type: an ordered set of named fields.
// Field order is significant for byte layout and is kept here for
// debug-dump symmetry even though the emitter never reads struct field
// storage.
type StructDecl struct {
	StructPos lexer.Position
	Name      *IdentExpr
	Fields    []*VarDecl
}

func (d *VarDecl) Pos() lexer.Position    { return d.Type.Pos() }
func (d *FormalDecl) Pos() lexer.Position { return d.Type.Pos() }
func (d *FuncDecl) Pos() lexer.Position   { return d.FuncPos }
func (d *StructDecl) Pos() lexer.Position { return d.StructPos }

func (d *VarDecl) declNode()    {}
func (d *FuncDecl) declNode()   {}
func (d *StructDecl) declNode() {}
