// Package nameres implements name analysis: the single
// post-order-with-scoping traversal that fills every identifier and
// dot-access node with its symbol link, builds the symbol table, and
// assigns frame offsets as it goes.
package nameres

import (
	"github.com/hassan/cmm/internal/errsink"
	"github.com/hassan/cmm/internal/parser/ast"
	"github.com/hassan/cmm/internal/symtab"
	"github.com/hassan/cmm/internal/types"
)

// Analyzer runs name analysis over a Program, mutating it in place and
// building the symbol table that type-check and code generation read
// afterward.
type Analyzer struct {
	sink  *errsink.Sink
	table *symtab.Table

	// localCursor and paramCursor are the frame-offset cursors, live only
	// while inside the function currently being analyzed.
	localCursor int
	paramCursor int
}

// Analyze runs name analysis over prog and returns the populated global
// symbol table.
func Analyze(prog *ast.Program, sink *errsink.Sink) *symtab.Table {
	a := &Analyzer{sink: sink, table: symtab.NewTable()}
	for _, decl := range prog.Decls {
		a.analyzeTopDecl(decl)
	}
	return a.table
}

func (a *Analyzer) analyzeTopDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(d, symtab.GLOBAL)
	case *ast.FuncDecl:
		a.analyzeFuncDecl(d)
	case *ast.StructDecl:
		a.analyzeStructDecl(d)
	default:
		errsink.Fatalf(decl.Pos(), "name analysis: unhandled declaration node %T", decl)
	}
}

// resolveTypeExpr resolves a type expression to its semantic type, and,
// for a struct tag, the struct-definition symbol it names (nil for
// primitives or an unresolved tag).
func (a *Analyzer) resolveTypeExpr(t ast.TypeExpr) (types.Type, *symtab.Symbol) {
	switch te := t.(type) {
	case *ast.IntTypeExpr:
		return types.Int, nil
	case *ast.BoolTypeExpr:
		return types.Bool, nil
	case *ast.VoidTypeExpr:
		return types.Void, nil
	case *ast.StructTypeExpr:
		sym := a.table.LookupGlobal(te.Tag.Name)
		if sym == nil || sym.Kind != symtab.SymbolStructDef {
			a.sink.Report(te.Tag.Pos(), "Invalid name of struct type")
			return types.Error, nil
		}
		te.Tag.Sym = sym
		return &types.StructInstance{Tag: te.Tag.Name}, sym
	default:
		errsink.Fatalf(t.Pos(), "name analysis: unhandled type expression %T", t)
		return types.Error, nil
	}
}

// analyzeVarDecl handles one global or local variable declaration; offset
// is the frame offset to assign. Struct fields are handled by
// analyzeStructDecl instead.
func (a *Analyzer) analyzeVarDecl(d *ast.VarDecl, offset int) {
	if _, isVoid := d.Type.(*ast.VoidTypeExpr); isVoid {
		a.sink.Report(d.Name.Pos(), "Non-function declared void")
		return
	}
	varType, structDef := a.resolveTypeExpr(d.Type)
	if a.table.LookupLocal(d.Name.Name) != nil {
		a.sink.Report(d.Name.Pos(), "Multiply declared identifier")
		return
	}
	sym := &symtab.Symbol{
		Name:      d.Name.Name,
		Kind:      symtab.SymbolVariable,
		Type:      varType,
		Pos:       d.Name.Pos(),
		Offset:    offset,
		StructDef: structDef,
	}
	if err := a.table.AddDecl(d.Name.Name, sym); err != nil {
		errsink.Fatal(d.Name.Pos(), err)
	}
	d.Name.Sym = sym
}

func (a *Analyzer) analyzeFuncDecl(d *ast.FuncDecl) {
	paramTypes := make([]types.Type, len(d.Formals))
	for i, f := range d.Formals {
		t, _ := a.resolveTypeExpr(f.Type)
		if _, isVoid := f.Type.(*ast.VoidTypeExpr); isVoid {
			a.sink.Report(f.Name.Pos(), "Non-function declared void")
		}
		paramTypes[i] = t
	}
	retType, _ := a.resolveTypeExpr(d.ReturnType)
	fnSym := &symtab.Symbol{
		Name: d.Name.Name,
		Kind: symtab.SymbolFunction,
		Type: &types.Func{Params: paramTypes, Return: retType},
		Pos:  d.Name.Pos(),
	}

	if a.table.LookupLocal(d.Name.Name) != nil {
		a.sink.Report(d.Name.Pos(), "Multiply declared identifier")
	} else if err := a.table.AddDecl(d.Name.Name, fnSym); err != nil {
		errsink.Fatal(d.Name.Pos(), err)
	}
	d.Name.Sym = fnSym

	a.table.AddScope()
	savedLocal, savedParam := a.localCursor, a.paramCursor
	a.localCursor, a.paramCursor = -8, 4

	for i, f := range d.Formals {
		_, structDef := a.resolveTypeExpr(f.Type)
		if a.table.LookupLocal(f.Name.Name) != nil {
			a.sink.Report(f.Name.Pos(), "Multiply declared identifier")
		} else {
			paramSym := &symtab.Symbol{
				Name:      f.Name.Name,
				Kind:      symtab.SymbolParameter,
				Type:      paramTypes[i],
				Pos:       f.Name.Pos(),
				Offset:    a.paramCursor,
				StructDef: structDef,
			}
			if err := a.table.AddDecl(f.Name.Name, paramSym); err != nil {
				errsink.Fatal(f.Name.Pos(), err)
			}
			f.Name.Sym = paramSym
		}
		a.paramCursor += 4
	}

	for _, local := range d.Locals {
		a.analyzeVarDecl(local, a.localCursor)
		if _, isVoid := local.Type.(*ast.VoidTypeExpr); !isVoid {
			a.localCursor -= 4
		}
	}

	for _, stmt := range d.Body {
		a.analyzeStmt(stmt)
	}

	fnSym.SizeLocals = -(a.localCursor + 8)
	fnSym.SizeParams = len(d.Formals) * 4

	a.localCursor, a.paramCursor = savedLocal, savedParam
	if err := a.table.RemoveScope(); err != nil {
		errsink.Fatal(d.Pos(), err)
	}
}

func (a *Analyzer) analyzeStructDecl(d *ast.StructDecl) {
	if a.table.LookupLocal(d.Name.Name) != nil {
		a.sink.Report(d.Name.Pos(), "Multiply declared identifier")
		return
	}
	structSym := &symtab.Symbol{
		Name: d.Name.Name,
		Kind: symtab.SymbolStructDef,
		Type: &types.StructDef{Tag: d.Name.Name},
		Pos:  d.Name.Pos(),
	}
	if err := a.table.AddDecl(d.Name.Name, structSym); err != nil {
		errsink.Fatal(d.Name.Pos(), err)
	}
	d.Name.Sym = structSym

	a.table.AddScope()
	fieldOffset := 0
	for _, field := range d.Fields {
		if _, isVoid := field.Type.(*ast.VoidTypeExpr); isVoid {
			a.sink.Report(field.Name.Pos(), "Non-function declared void")
			continue
		}
		fieldType, structDef := a.resolveTypeExpr(field.Type)
		if a.table.LookupLocal(field.Name.Name) != nil {
			a.sink.Report(field.Name.Pos(), "Multiply declared identifier")
			continue
		}
		fieldSym := &symtab.Symbol{
			Name:      field.Name.Name,
			Kind:      symtab.SymbolField,
			Type:      fieldType,
			Pos:       field.Name.Pos(),
			Offset:    fieldOffset,
			StructDef: structDef,
		}
		if err := a.table.AddDecl(field.Name.Name, fieldSym); err != nil {
			errsink.Fatal(field.Name.Pos(), err)
		}
		field.Name.Sym = fieldSym
		fieldOffset += 4
	}
	// The field scope is handed to the struct-def symbol before popping:
	// an owning handle that outlives the scope stack.
	structSym.Fields = a.table.Current()
	if err := a.table.RemoveScope(); err != nil {
		errsink.Fatal(d.Pos(), err)
	}
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		a.analyzeExpr(st.Assign)
	case *ast.PostIncStmt:
		a.analyzeExpr(st.Target)
	case *ast.PostDecStmt:
		a.analyzeExpr(st.Target)
	case *ast.ReadStmt:
		a.analyzeExpr(st.Target)
	case *ast.WriteStmt:
		a.analyzeExpr(st.Value)
	case *ast.IfStmt:
		a.analyzeExpr(st.Cond)
		saved := a.localCursor
		a.table.AddScope()
		for _, inner := range st.Then {
			a.analyzeStmt(inner)
		}
		thenCursor := a.localCursor
		if err := a.table.RemoveScope(); err != nil {
			errsink.Fatal(st.Pos(), err)
		}
		a.localCursor = min(saved, thenCursor)
	case *ast.IfElseStmt:
		a.analyzeExpr(st.Cond)
		saved := a.localCursor

		a.table.AddScope()
		for _, inner := range st.Then {
			a.analyzeStmt(inner)
		}
		thenCursor := a.localCursor
		if err := a.table.RemoveScope(); err != nil {
			errsink.Fatal(st.Pos(), err)
		}

		a.localCursor = saved
		a.table.AddScope()
		for _, inner := range st.Else {
			a.analyzeStmt(inner)
		}
		elseCursor := a.localCursor
		if err := a.table.RemoveScope(); err != nil {
			errsink.Fatal(st.Pos(), err)
		}

		a.localCursor = min(thenCursor, elseCursor)
	case *ast.WhileStmt:
		a.analyzeExpr(st.Cond)
		saved := a.localCursor
		a.table.AddScope()
		for _, inner := range st.Body {
			a.analyzeStmt(inner)
		}
		bodyCursor := a.localCursor
		if err := a.table.RemoveScope(); err != nil {
			errsink.Fatal(st.Pos(), err)
		}
		a.localCursor = min(saved, bodyCursor)
	case *ast.RepeatStmt:
		a.analyzeExpr(st.Cond)
		saved := a.localCursor
		a.table.AddScope()
		for _, inner := range st.Body {
			a.analyzeStmt(inner)
		}
		bodyCursor := a.localCursor
		if err := a.table.RemoveScope(); err != nil {
			errsink.Fatal(st.Pos(), err)
		}
		a.localCursor = min(saved, bodyCursor)
	case *ast.CallStmt:
		a.analyzeExpr(st.Call)
	case *ast.ReturnStmt:
		if st.Value != nil {
			a.analyzeExpr(st.Value)
		}
	default:
		errsink.Fatalf(s.Pos(), "name analysis: unhandled statement node %T", s)
	}
}

func (a *Analyzer) analyzeExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IntLitExpr, *ast.StringLitExpr, *ast.TrueExpr, *ast.FalseExpr:
		// no links to fill
	case *ast.IdentExpr:
		sym := a.table.LookupGlobal(ex.Name)
		if sym == nil {
			a.sink.Report(ex.IdPos, "Undeclared identifier")
			return
		}
		ex.Sym = sym
	case *ast.DotAccessExpr:
		a.analyzeExpr(ex.Loc)
		structDef := structDefOf(ex.Loc)
		if structDef == nil {
			a.sink.Report(ex.Loc.Pos(), "Dot-access of non-struct type")
			ex.BadAccess = true
			return
		}
		fieldSym := structDef.LookupField(ex.Field.Name)
		if fieldSym == nil {
			a.sink.Report(ex.Field.Pos(), "Invalid struct field name")
			ex.BadAccess = true
			return
		}
		ex.Field.Sym = fieldSym
		ex.FieldSym = fieldSym
	case *ast.AssignExpr:
		a.analyzeExpr(ex.LHS)
		a.analyzeExpr(ex.RHS)
	case *ast.CallExpr:
		a.analyzeCallExpr(ex)
	case *ast.UnaryExpr:
		a.analyzeExpr(ex.Operand)
	case *ast.BinaryExpr:
		a.analyzeExpr(ex.Left)
		a.analyzeExpr(ex.Right)
	default:
		errsink.Fatalf(e.Pos(), "name analysis: unhandled expression node %T", e)
	}
}

func (a *Analyzer) analyzeCallExpr(c *ast.CallExpr) {
	sym := a.table.LookupGlobal(c.Callee.Name)
	if sym == nil {
		a.sink.Report(c.Callee.IdPos, "Undeclared identifier")
	} else {
		c.Callee.Sym = sym
	}
	for _, arg := range c.Args {
		a.analyzeExpr(arg)
	}
}

// structDefOf returns the struct-definition symbol a resolved expression
// evaluates to, or nil if e isn't a struct instance (or was erroneous).
// For an identifier this is the symbol it links to; for a nested
// dot-access it's the struct definition linked from the field symbol
// recorded on that node.
func structDefOf(e ast.Expr) *symtab.Symbol {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		if ex.Sym == nil {
			return nil
		}
		return ex.Sym.StructDef
	case *ast.DotAccessExpr:
		if ex.BadAccess || ex.FieldSym == nil {
			return nil
		}
		return ex.FieldSym.StructDef
	default:
		return nil
	}
}
