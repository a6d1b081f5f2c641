// Package codegen implements code emission: the stack-machine MIPS backend
// that walks a fully name-resolved, well-typed AST and writes one textual
// assembly file.
//
// The emitter assumes its input carries no errors — the driver (cmd/cmm)
// skips this package entirely when the error sink has recorded anything.
// Every method here that hits an AST shape it does not recognize treats
// that as an invariant violation, not a diagnosable error, and reports it
// through errsink.Fatal the same way the other passes do.
package codegen

import (
	"fmt"
	"strings"

	"github.com/hassan/cmm/internal/errsink"
	"github.com/hassan/cmm/internal/parser/ast"
	"github.com/hassan/cmm/internal/symtab"
	"github.com/hassan/cmm/internal/types"
)

// falseValue is the integer encoding of a false boolean in $t0, used by
// every jump-form branch to decide which way to go.
const falseValue = 0

// funcFrame tracks the state that's live only while emitting one
// function's body: its epilogue label and whether it's the program's
// main entry (which exits via syscall 10 instead of jr $ra).
type funcFrame struct {
	endLabel string
	isMain   bool
}

// Emitter holds the state threaded through one code-emission run: the
// output buffer, the label allocator and string pool, and the current
// function's frame info. One Emitter emits exactly one program.
type Emitter struct {
	out     strings.Builder
	labels  LabelAllocator
	strings *stringPool
	fn      funcFrame
}

// New creates an Emitter ready to emit one program.
func New() *Emitter {
	return &Emitter{strings: newStringPool()}
}

// Emit runs code generation over prog (assumed to be name-resolved,
// type-checked, and error-free) and returns the assembly text.
func Emit(prog *ast.Program) string {
	e := New()
	return e.emitProgram(prog)
}

func (e *Emitter) emitProgram(prog *ast.Program) string {
	e.writeLine(".data")
	for _, decl := range prog.Decls {
		if v, ok := decl.(*ast.VarDecl); ok {
			e.writeLine(fmt.Sprintf("_%s: .word 0", v.Name.Name))
		}
	}
	for _, decl := range prog.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			e.writeLine(".text")
			e.emitFunc(fn)
		}
	}
	return e.out.String()
}

// funcLabel is the resolved reading of open question 2: plain string
// equality against "main", never identity comparison.
func funcLabel(name string) string {
	if name == "main" {
		return "main"
	}
	return "_" + name
}

func (e *Emitter) emitFunc(fn *ast.FuncDecl) {
	label := funcLabel(fn.Name.Name)
	e.writeLabel(label)
	isMain := label == "main"
	if isMain {
		e.writeLabel("_start")
	}

	e.push("$ra")
	e.push("$fp")
	e.writeInst("addu", "$fp, $sp, 8")
	sym := fn.Name.Sym
	if sym.SizeLocals > 0 {
		e.writeInst("subu", fmt.Sprintf("$sp, $sp, %d", sym.SizeLocals))
	}

	savedFrame := e.fn
	e.fn = funcFrame{endLabel: e.labels.Next(), isMain: isMain}

	for _, stmt := range fn.Body {
		e.emitStmt(stmt)
	}

	e.writeLabel(e.fn.endLabel)
	e.writeInst("lw", "$ra, 0($fp)")
	e.writeInst("move", "$t0, $fp")
	e.writeInst("lw", "$fp, -4($fp)")
	e.writeInst("move", "$sp, $t0")
	if e.fn.isMain {
		e.writeInst("li", "$v0, 10")
		e.writeInst("syscall", "")
	} else {
		e.writeInst("jr", "$ra")
	}

	e.fn = savedFrame
}

// Statements.

func (e *Emitter) emitStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		e.codeGen(st.Assign)
	case *ast.PostIncStmt:
		e.emitPostIncDec(st.Target, 1)
	case *ast.PostDecStmt:
		e.emitPostIncDec(st.Target, -1)
	case *ast.ReadStmt:
		e.emitRead(st.Target)
	case *ast.WriteStmt:
		e.emitWrite(st.Value)
	case *ast.IfStmt:
		e.emitIf(st)
	case *ast.IfElseStmt:
		e.emitIfElse(st)
	case *ast.WhileStmt:
		e.emitWhile(st)
	case *ast.RepeatStmt:
		// intentionally not code-generated.
	case *ast.CallStmt:
		e.codeGen(st.Call)
	case *ast.ReturnStmt:
		e.emitReturn(st)
	default:
		errsink.Fatalf(s.Pos(), "codegen: unhandled statement node %T", s)
	}
}

func (e *Emitter) emitIf(st *ast.IfStmt) {
	trueL := e.labels.Next()
	doneL := e.labels.Next()
	e.codeGenCond(st.Cond, trueL, doneL)
	e.writeLabel(trueL)
	for _, inner := range st.Then {
		e.emitStmt(inner)
	}
	e.writeLabel(doneL)
}

func (e *Emitter) emitIfElse(st *ast.IfElseStmt) {
	trueL := e.labels.Next()
	falseL := e.labels.Next()
	doneL := e.labels.Next()
	e.codeGenCond(st.Cond, trueL, falseL)
	e.writeLabel(trueL)
	for _, inner := range st.Then {
		e.emitStmt(inner)
	}
	e.writeInst("b", doneL)
	e.writeLabel(falseL)
	for _, inner := range st.Else {
		e.emitStmt(inner)
	}
	e.writeLabel(doneL)
}

func (e *Emitter) emitWhile(st *ast.WhileStmt) {
	condL := e.labels.Next()
	bodyL := e.labels.Next()
	doneL := e.labels.Next()
	e.writeLabel(condL)
	e.codeGenCond(st.Cond, bodyL, doneL)
	e.writeLabel(bodyL)
	for _, inner := range st.Body {
		e.emitStmt(inner)
	}
	e.writeInst("b", condL)
	e.writeLabel(doneL)
}

func (e *Emitter) emitReturn(st *ast.ReturnStmt) {
	if st.Value != nil {
		e.codeGenExp(st.Value)
		e.pop("$v0")
	}
	e.writeInst("b", e.fn.endLabel)
}

func (e *Emitter) emitPostIncDec(target ast.Expr, delta int) {
	e.codeGenAddr(target)
	e.pop("$t0")
	e.writeInst("lw", "$t1, 0($t0)")
	if delta > 0 {
		e.writeInst("add", "$t1, $t1, 1")
	} else {
		e.writeInst("sub", "$t1, $t1, 1")
	}
	e.writeInst("sw", "$t1, 0($t0)")
}

func (e *Emitter) emitRead(target ast.Expr) {
	e.codeGenAddr(target)
	e.pop("$t0")
	e.writeInst("li", "$v0, 5")
	e.writeInst("syscall", "")
	if exprType(target).Equals(types.Bool) {
		e.writeInst("sne", "$v0, $v0, $zero")
	}
	e.writeInst("sw", "$v0, 0($t0)")
}

func (e *Emitter) emitWrite(value ast.Expr) {
	if sl, ok := value.(*ast.StringLitExpr); ok {
		label := e.internString(sl.Value)
		e.writeInst("la", fmt.Sprintf("$a0, %s", label))
		e.writeInst("li", "$v0, 4")
		e.writeInst("syscall", "")
		return
	}
	e.codeGen(value)
	e.writeInst("move", "$a0, $t0")
	e.writeInst("li", "$v0, 1")
	e.writeInst("syscall", "")
}

// internString returns the label for lexeme, interning it with a fresh
// .data/.asciiz/.text sequence on first occurrence.
func (e *Emitter) internString(lexeme string) string {
	if label, ok := e.strings.label(lexeme); ok {
		return label
	}
	label := e.labels.Next()
	e.writeLine(".data")
	e.writeLine(fmt.Sprintf("%s: .asciiz %s", label, lexeme))
	e.writeLine(".text")
	e.strings.intern(lexeme, label)
	return label
}

// Expressions: value form.
//
// codeGen leaves the value of e in $t0.

func (e *Emitter) codeGen(expr ast.Expr) {
	switch ex := expr.(type) {
	case *ast.IntLitExpr:
		e.writeInst("li", fmt.Sprintf("$t0, %d", ex.Value))
	case *ast.TrueExpr:
		e.writeInst("li", "$t0, 1")
	case *ast.FalseExpr:
		e.writeInst("li", "$t0, 0")
	case *ast.IdentExpr:
		e.emitLoadIdent(ex.Sym)
	case *ast.DotAccessExpr:
		// Field offsets are computed at name analysis but never read
		// here (resolved open question: struct r/w is rejected in
		// type-check, so the base variable's own slot is all codegen
		// ever needs to touch for a dot-access node).
		e.codeGen(ex.Loc)
	case *ast.AssignExpr:
		e.codeGenAssign(ex)
	case *ast.CallExpr:
		e.codeGenCall(ex)
	case *ast.UnaryExpr:
		e.codeGenUnary(ex)
	case *ast.BinaryExpr:
		e.codeGenBinary(ex)
	case *ast.StringLitExpr:
		label := e.internString(ex.Value)
		e.writeInst("la", fmt.Sprintf("$t0, %s", label))
	default:
		errsink.Fatalf(expr.Pos(), "codegen: unhandled expression node %T", expr)
	}
}

// codeGenExp computes e and pushes the result.
func (e *Emitter) codeGenExp(expr ast.Expr) {
	e.codeGen(expr)
	e.push("$t0")
}

func (e *Emitter) emitLoadIdent(sym *symtab.Symbol) {
	if sym.Offset == symtab.GLOBAL {
		e.writeInst("lw", fmt.Sprintf("$t0, _%s", sym.Name))
	} else {
		e.writeInst("lw", fmt.Sprintf("$t0, %d($fp)", sym.Offset))
	}
}

func (e *Emitter) emitAddrOfIdent(sym *symtab.Symbol) {
	if sym.Offset == symtab.GLOBAL {
		e.writeInst("la", fmt.Sprintf("$t0, _%s", sym.Name))
	} else {
		e.writeInst("addu", fmt.Sprintf("$t0, $fp, %d", sym.Offset))
	}
}

// codeGenAddr computes the address of the lvalue target into $t0 and
// pushes it.
func (e *Emitter) codeGenAddr(target ast.Expr) {
	switch t := target.(type) {
	case *ast.IdentExpr:
		e.emitAddrOfIdent(t.Sym)
		e.push("$t0")
	case *ast.DotAccessExpr:
		e.codeGenAddr(t.Loc)
	default:
		errsink.Fatalf(target.Pos(), "codegen: invalid assignment target %T", target)
	}
}

func (e *Emitter) codeGenAssign(ex *ast.AssignExpr) {
	e.codeGenAddr(ex.LHS)
	e.codeGenExp(ex.RHS)
	e.pop("$t1") // value, pushed last
	e.pop("$t0") // address
	e.writeInst("sw", "$t1, 0($t0)")
	e.writeInst("move", "$t0, $t1")
}

func (e *Emitter) codeGenCall(ex *ast.CallExpr) {
	for _, arg := range ex.Args {
		e.codeGenExp(arg)
	}
	e.writeInst("jal", funcLabel(ex.Callee.Name))
	sizeParams := ex.Callee.Sym.SizeParams
	if sizeParams > 0 {
		e.writeInst("add", fmt.Sprintf("$sp, $sp, %d", sizeParams))
	}
	if !ex.CallType.Equals(types.Void) {
		e.writeInst("move", "$t0, $v0")
	}
}

func (e *Emitter) codeGenUnary(ex *ast.UnaryExpr) {
	e.codeGen(ex.Operand)
	switch ex.Op {
	case ast.UnaryMinus:
		e.writeInst("sub", "$t0, $zero, $t0")
	case ast.UnaryNot:
		e.writeInst("seq", "$t0, $t0, 0")
	default:
		errsink.Fatalf(ex.Pos(), "codegen: unhandled unary operator %v", ex.Op)
	}
}

func (e *Emitter) codeGenBinary(ex *ast.BinaryExpr) {
	switch ex.Op {
	case ast.BinAnd:
		e.codeGenAndValue(ex)
		return
	case ast.BinOr:
		e.codeGenOrValue(ex)
		return
	}

	e.codeGenExp(ex.Left)
	e.codeGenExp(ex.Right)
	e.pop("$t1") // right, pushed last, popped first
	e.pop("$t0") // left

	switch ex.Op {
	case ast.BinPlus:
		e.writeInst("add", "$t0, $t0, $t1")
	case ast.BinMinus:
		e.writeInst("sub", "$t0, $t0, $t1")
	case ast.BinTimes:
		e.writeInst("mult", "$t0, $t1")
		e.writeInst("mflo", "$t0")
	case ast.BinDivide:
		e.writeInst("div", "$t0, $t1")
		e.writeInst("mflo", "$t0")
	case ast.BinEq:
		e.writeInst("seq", "$t0, $t0, $t1")
	case ast.BinNeq:
		e.writeInst("sne", "$t0, $t0, $t1")
	case ast.BinLt:
		e.writeInst("slt", "$t0, $t0, $t1")
	case ast.BinGt:
		e.writeInst("sgt", "$t0, $t0, $t1")
	case ast.BinLe:
		e.writeInst("sle", "$t0, $t0, $t1")
	case ast.BinGe:
		e.writeInst("sge", "$t0, $t0, $t1")
	default:
		errsink.Fatalf(ex.Pos(), "codegen: unhandled binary operator %v", ex.Op)
	}
}

// codeGenAndValue and codeGenOrValue are the value-form short-circuit
// rules: "&&" evaluates the left operand in jump form, falling through to
// the right operand's value only when the left is true; "||" is the
// mirror image.
func (e *Emitter) codeGenAndValue(ex *ast.BinaryExpr) {
	rightL := e.labels.Next()
	endL := e.labels.Next()
	e.codeGenCond(ex.Left, rightL, endL)
	e.writeLabel(rightL)
	e.codeGen(ex.Right)
	e.writeLabel(endL)
}

func (e *Emitter) codeGenOrValue(ex *ast.BinaryExpr) {
	rightL := e.labels.Next()
	endL := e.labels.Next()
	e.codeGenCond(ex.Left, endL, rightL)
	e.writeLabel(rightL)
	e.codeGen(ex.Right)
	e.writeLabel(endL)
}

// Expressions: jump form.
//
// codeGenCond branches to trueLabel or falseLabel rather than materializing
// a value, implementing short-circuit evaluation. && and || recurse so
// neither operand is evaluated when the result is already decided; every
// other boolean expression falls back to computing its value in $t0 and
// branching on whether that value is FALSE.
func (e *Emitter) codeGenCond(expr ast.Expr, trueLabel, falseLabel string) {
	if bin, ok := expr.(*ast.BinaryExpr); ok {
		switch bin.Op {
		case ast.BinAnd:
			rightL := e.labels.Next()
			e.codeGenCond(bin.Left, rightL, falseLabel)
			e.writeLabel(rightL)
			e.codeGenCond(bin.Right, trueLabel, falseLabel)
			return
		case ast.BinOr:
			rightL := e.labels.Next()
			e.codeGenCond(bin.Left, trueLabel, rightL)
			e.writeLabel(rightL)
			e.codeGenCond(bin.Right, trueLabel, falseLabel)
			return
		}
	}
	e.codeGen(expr)
	e.writeInst("beq", fmt.Sprintf("$t0, %d, %s", falseValue, falseLabel))
	e.writeInst("b", trueLabel)
}

// exprType reads the type-check-recorded type off an lvalue node, used
// only to decide whether cin needs the bool mask.
func exprType(e ast.Expr) types.Type {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		return ex.Type
	case *ast.DotAccessExpr:
		return ex.Type
	default:
		return types.Error
	}
}

// Stack and output plumbing.

// push writes the two-instruction push sequence for reg: store then
// decrement $sp. pop is its mirror: increment $sp then load.
func (e *Emitter) push(reg string) {
	e.writeInst("sw", reg+", 0($sp)")
	e.writeInst("subu", "$sp, $sp, 4")
}

func (e *Emitter) pop(reg string) {
	e.writeInst("addu", "$sp, $sp, 4")
	e.writeInst("lw", reg+", 0($sp)")
}

func (e *Emitter) writeLine(s string) {
	e.out.WriteString(s)
	e.out.WriteByte('\n')
}

func (e *Emitter) writeLabel(label string) {
	e.writeLine(label + ":")
}

func (e *Emitter) writeInst(op, operands string) {
	if operands == "" {
		e.writeLine("\t" + op)
		return
	}
	e.writeLine("\t" + op + " " + operands)
}
