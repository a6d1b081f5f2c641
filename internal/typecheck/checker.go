// Package typecheck implements type checking: a single post-order
// traversal that computes, and records on each expression node, its
// semantic type — possibly the error bottom type.
package typecheck

import (
	"github.com/hassan/cmm/internal/errsink"
	"github.com/hassan/cmm/internal/lexer"
	"github.com/hassan/cmm/internal/parser/ast"
	"github.com/hassan/cmm/internal/symtab"
	"github.com/hassan/cmm/internal/types"
)

// Checker runs type-check over a name-resolved Program.
type Checker struct {
	sink        *errsink.Sink
	currentFunc *symtab.Symbol
}

// Check type-checks prog. table is the symbol table name analysis built,
// used only to confirm a main function exists.
func Check(prog *ast.Program, table *symtab.Table, sink *errsink.Sink) {
	c := &Checker{sink: sink}
	for _, decl := range prog.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			c.checkFuncDecl(fn)
		}
	}

	main := table.LookupGlobal("main")
	if main == nil || main.Kind != symtab.SymbolFunction {
		sink.Report(lexer.Position{}, "No main function")
	}
}

func (c *Checker) checkFuncDecl(d *ast.FuncDecl) {
	saved := c.currentFunc
	c.currentFunc = d.Name.Sym
	for _, stmt := range d.Body {
		c.checkStmt(stmt)
	}
	c.currentFunc = saved
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		c.checkExpr(st.Assign)
	case *ast.PostIncStmt:
		c.checkNumericOperand(st.Target)
	case *ast.PostDecStmt:
		c.checkNumericOperand(st.Target)
	case *ast.ReadStmt:
		c.checkReadTarget(st.Target)
	case *ast.WriteStmt:
		c.checkWriteValue(st.Value)
	case *ast.IfStmt:
		c.checkCondition(st.Cond, "Non-bool expression used as an if condition")
		for _, inner := range st.Then {
			c.checkStmt(inner)
		}
	case *ast.IfElseStmt:
		c.checkCondition(st.Cond, "Non-bool expression used as an if condition")
		for _, inner := range st.Then {
			c.checkStmt(inner)
		}
		for _, inner := range st.Else {
			c.checkStmt(inner)
		}
	case *ast.WhileStmt:
		c.checkCondition(st.Cond, "Non-bool expression used as a while condition")
		for _, inner := range st.Body {
			c.checkStmt(inner)
		}
	case *ast.RepeatStmt:
		t := c.checkExpr(st.Cond)
		if !types.IsError(t) && !t.Equals(types.Int) {
			c.sink.Report(st.Cond.Pos(), "Non-integer expression used as a repeat clause")
		}
		for _, inner := range st.Body {
			c.checkStmt(inner)
		}
	case *ast.CallStmt:
		c.checkExpr(st.Call)
	case *ast.ReturnStmt:
		c.checkReturn(st)
	default:
		errsink.Fatalf(s.Pos(), "type check: unhandled statement node %T", s)
	}
}

func (c *Checker) checkCondition(cond ast.Expr, message string) {
	t := c.checkExpr(cond)
	if !types.IsError(t) && !t.Equals(types.Bool) {
		c.sink.Report(cond.Pos(), message)
	}
}

// checkNumericOperand type-checks a post-increment/decrement target.
// There's no dedicated message for a non-int target; this reuses the
// arithmetic-operator message since post-increment/decrement is
// arithmetic in all but notation.
func (c *Checker) checkNumericOperand(target ast.Expr) {
	t := c.checkExpr(target)
	if !types.IsError(t) && !t.Equals(types.Int) {
		c.sink.Report(target.Pos(), "Arithmetic operator applied to non-numeric operand")
	}
}

func (c *Checker) checkReadTarget(target ast.Expr) {
	t := c.checkExpr(target)
	if types.IsError(t) {
		return
	}
	switch t.Kind() {
	case types.KindFunc:
		c.sink.Report(target.Pos(), "Attempt to read a function")
	case types.KindStructDef:
		c.sink.Report(target.Pos(), "Attempt to read a struct name")
	case types.KindStructInstance:
		c.sink.Report(target.Pos(), "Attempt to read a struct variable")
	}
}

func (c *Checker) checkWriteValue(value ast.Expr) {
	t := c.checkExpr(value)
	if types.IsError(t) {
		return
	}
	switch t.Kind() {
	case types.KindFunc:
		c.sink.Report(value.Pos(), "Attempt to write a function")
	case types.KindStructDef:
		c.sink.Report(value.Pos(), "Attempt to write a struct name")
	case types.KindStructInstance:
		c.sink.Report(value.Pos(), "Attempt to write a struct variable")
	case types.KindVoid:
		c.sink.Report(value.Pos(), "Attempt to write a void")
	}
}

func (c *Checker) checkReturn(st *ast.ReturnStmt) {
	fnType := c.currentFunc.Type.(*types.Func)
	if st.Value == nil {
		if !fnType.Return.Equals(types.Void) {
			c.sink.Report(lexer.Position{}, "Missing return value")
		}
		return
	}
	vt := c.checkExpr(st.Value)
	if types.IsError(vt) {
		return
	}
	if fnType.Return.Equals(types.Void) {
		c.sink.Report(st.Value.Pos(), "Return with a value in a void function")
		return
	}
	if !vt.Equals(fnType.Return) {
		c.sink.Report(st.Value.Pos(), "Bad return value")
	}
}

func (c *Checker) checkExpr(e ast.Expr) types.Type {
	switch ex := e.(type) {
	case *ast.IntLitExpr:
		return types.Int
	case *ast.StringLitExpr:
		return types.String
	case *ast.TrueExpr:
		return types.Bool
	case *ast.FalseExpr:
		return types.Bool
	case *ast.IdentExpr:
		if ex.Sym == nil {
			ex.Type = types.Error
		} else {
			ex.Type = ex.Sym.Type
		}
		return ex.Type
	case *ast.DotAccessExpr:
		return c.checkDotAccess(ex)
	case *ast.AssignExpr:
		return c.checkAssign(ex)
	case *ast.CallExpr:
		return c.checkCall(ex)
	case *ast.UnaryExpr:
		return c.checkUnary(ex)
	case *ast.BinaryExpr:
		return c.checkBinary(ex)
	default:
		errsink.Fatalf(e.Pos(), "type check: unhandled expression node %T", e)
		return types.Error
	}
}

func (c *Checker) checkDotAccess(ex *ast.DotAccessExpr) types.Type {
	leftType := c.checkExpr(ex.Loc)
	if ex.BadAccess || types.IsError(leftType) || ex.FieldSym == nil {
		ex.Type = types.Error
		return types.Error
	}
	ex.Type = ex.FieldSym.Type
	return ex.Type
}

func (c *Checker) checkAssign(ex *ast.AssignExpr) types.Type {
	lt := c.checkExpr(ex.LHS)
	rt := c.checkExpr(ex.RHS)
	if types.IsError(lt) || types.IsError(rt) {
		ex.Type = types.Error
		return types.Error
	}
	switch {
	case lt.Kind() == types.KindFunc && rt.Kind() == types.KindFunc:
		c.sink.Report(ex.Pos(), "Function assignment")
		ex.Type = types.Error
	case lt.Kind() == types.KindStructDef && rt.Kind() == types.KindStructDef:
		c.sink.Report(ex.Pos(), "Struct name assignment")
		ex.Type = types.Error
	case lt.Kind() == types.KindStructInstance && rt.Kind() == types.KindStructInstance:
		c.sink.Report(ex.Pos(), "Struct variable assignment")
		ex.Type = types.Error
	case !lt.Equals(rt):
		c.sink.Report(ex.Pos(), "Type mismatch")
		ex.Type = types.Error
	default:
		ex.Type = lt
	}
	return ex.Type
}

func (c *Checker) checkCall(ex *ast.CallExpr) types.Type {
	sym := ex.Callee.Sym
	if sym == nil {
		// Name analysis already reported "Undeclared identifier" for this
		// callee; don't pile a second diagnostic onto the same node.
		for _, arg := range ex.Args {
			c.checkExpr(arg)
		}
		ex.CallType = types.Error
		return types.Error
	}
	if sym.Kind != symtab.SymbolFunction {
		c.sink.Report(ex.Callee.Pos(), "Attempt to call a non-function")
		for _, arg := range ex.Args {
			c.checkExpr(arg)
		}
		ex.CallType = types.Error
		return types.Error
	}

	fnType := sym.Type.(*types.Func)
	if len(ex.Args) != len(fnType.Params) {
		c.sink.Report(ex.Callee.Pos(), "Function call with wrong number of args")
		for _, arg := range ex.Args {
			c.checkExpr(arg)
		}
	} else {
		for i, arg := range ex.Args {
			at := c.checkExpr(arg)
			ft := fnType.Params[i]
			if !types.IsError(at) && !types.IsError(ft) && !at.Equals(ft) {
				c.sink.Report(arg.Pos(), "Type of actual does not match type of formal")
			}
		}
	}
	ex.CallType = fnType.Return
	return fnType.Return
}

func (c *Checker) checkUnary(ex *ast.UnaryExpr) types.Type {
	t := c.checkExpr(ex.Operand)
	if types.IsError(t) {
		ex.ExprType = types.Error
		return types.Error
	}
	switch ex.Op {
	case ast.UnaryMinus:
		if !t.Equals(types.Int) {
			c.sink.Report(ex.Operand.Pos(), "Arithmetic operator applied to non-numeric operand")
		}
		ex.ExprType = types.Int
	case ast.UnaryNot:
		if !t.Equals(types.Bool) {
			c.sink.Report(ex.Operand.Pos(), "Logical operator applied to non-bool operand")
		}
		ex.ExprType = types.Bool
	}
	return ex.ExprType
}

func (c *Checker) checkBinary(ex *ast.BinaryExpr) types.Type {
	lt := c.checkExpr(ex.Left)
	rt := c.checkExpr(ex.Right)
	anyError := types.IsError(lt) || types.IsError(rt)

	switch ex.Op {
	case ast.BinPlus, ast.BinMinus, ast.BinTimes, ast.BinDivide:
		c.requireOperand(lt, ex.Left, types.Int, "Arithmetic operator applied to non-numeric operand")
		c.requireOperand(rt, ex.Right, types.Int, "Arithmetic operator applied to non-numeric operand")
		ex.ExprType = resultOrError(anyError, types.Int)
	case ast.BinAnd, ast.BinOr:
		c.requireOperand(lt, ex.Left, types.Bool, "Logical operator applied to non-bool operand")
		c.requireOperand(rt, ex.Right, types.Bool, "Logical operator applied to non-bool operand")
		ex.ExprType = resultOrError(anyError, types.Bool)
	case ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe:
		c.requireOperand(lt, ex.Left, types.Int, "Relational operator applied to non-numeric operand")
		c.requireOperand(rt, ex.Right, types.Int, "Relational operator applied to non-numeric operand")
		ex.ExprType = resultOrError(anyError, types.Bool)
	case ast.BinEq, ast.BinNeq:
		if !anyError {
			c.checkEqualityOperands(ex, lt, rt)
		}
		ex.ExprType = resultOrError(anyError, types.Bool)
	default:
		errsink.Fatalf(ex.Pos(), "type check: unhandled binary operator %v", ex.Op)
	}
	return ex.ExprType
}

func (c *Checker) requireOperand(t types.Type, node ast.Expr, want types.Type, message string) {
	if !types.IsError(t) && !t.Equals(want) {
		c.sink.Report(node.Pos(), message)
	}
}

func resultOrError(anyError bool, result types.Type) types.Type {
	if anyError {
		return types.Error
	}
	return result
}

// checkEqualityOperands reports the tailored "operator applied to
// incomparable kind" messages, falling back to "Type mismatch" for any
// other structurally unequal pair.
func (c *Checker) checkEqualityOperands(ex *ast.BinaryExpr, lt, rt types.Type) {
	switch {
	case lt.Kind() == types.KindFunc && rt.Kind() == types.KindFunc:
		lf, rf := lt.(*types.Func), rt.(*types.Func)
		if lf.Return.Equals(types.Void) && rf.Return.Equals(types.Void) {
			c.sink.Report(ex.Pos(), "Equality operator applied to void functions")
		} else {
			c.sink.Report(ex.Pos(), "Equality operator applied to functions")
		}
	case lt.Kind() == types.KindStructDef && rt.Kind() == types.KindStructDef:
		c.sink.Report(ex.Pos(), "Equality operator applied to struct names")
	case lt.Kind() == types.KindStructInstance && rt.Kind() == types.KindStructInstance:
		c.sink.Report(ex.Pos(), "Equality operator applied to struct variables")
	case !lt.Equals(rt):
		c.sink.Report(ex.Pos(), "Type mismatch")
	}
}
