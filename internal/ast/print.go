// Package ast provides a debug-only dumper for the parser's AST.
//
// This is a pretty-printer used only for debugging; it changes no compiler
// semantics, and cmd/cmm wires it up behind --dump-ast. The recursive
// strings.Builder-based shape follows the teacher's own
// ir.Module.String()/ir.BasicBlock.String() dumping convention, adapted
// here to the new parser/ast node set instead of the teacher's IR.
package ast

import (
	"fmt"
	"strings"

	parserast "github.com/hassan/cmm/internal/parser/ast"
)

// Dump renders prog as an indented text tree, one declaration per
// top-level entry.
func Dump(prog *parserast.Program) string {
	var b strings.Builder
	for _, decl := range prog.Decls {
		dumpDecl(&b, decl, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpDecl(b *strings.Builder, d parserast.Decl, depth int) {
	switch decl := d.(type) {
	case *parserast.VarDecl:
		indent(b, depth)
		fmt.Fprintf(b, "VarDecl %s %s\n", decl.Type.String(), decl.Name.Name)
	case *parserast.FuncDecl:
		indent(b, depth)
		fmt.Fprintf(b, "FuncDecl %s %s(", decl.ReturnType.String(), decl.Name.Name)
		for i, f := range decl.Formals {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s %s", f.Type.String(), f.Name.Name)
		}
		b.WriteString(")\n")
		for _, local := range decl.Locals {
			dumpDecl(b, local, depth+1)
		}
		for _, stmt := range decl.Body {
			dumpStmt(b, stmt, depth+1)
		}
	case *parserast.StructDecl:
		indent(b, depth)
		fmt.Fprintf(b, "StructDecl %s\n", decl.Name.Name)
		for _, field := range decl.Fields {
			dumpDecl(b, field, depth+1)
		}
	default:
		indent(b, depth)
		fmt.Fprintf(b, "<unknown decl %T>\n", d)
	}
}

func dumpStmt(b *strings.Builder, s parserast.Stmt, depth int) {
	indent(b, depth)
	switch st := s.(type) {
	case *parserast.AssignStmt:
		fmt.Fprintf(b, "AssignStmt %s\n", dumpExpr(st.Assign))
	case *parserast.PostIncStmt:
		fmt.Fprintf(b, "PostIncStmt %s\n", dumpExpr(st.Target))
	case *parserast.PostDecStmt:
		fmt.Fprintf(b, "PostDecStmt %s\n", dumpExpr(st.Target))
	case *parserast.ReadStmt:
		fmt.Fprintf(b, "ReadStmt %s\n", dumpExpr(st.Target))
	case *parserast.WriteStmt:
		fmt.Fprintf(b, "WriteStmt %s\n", dumpExpr(st.Value))
	case *parserast.IfStmt:
		fmt.Fprintf(b, "IfStmt %s\n", dumpExpr(st.Cond))
		for _, inner := range st.Then {
			dumpStmt(b, inner, depth+1)
		}
	case *parserast.IfElseStmt:
		fmt.Fprintf(b, "IfElseStmt %s\n", dumpExpr(st.Cond))
		for _, inner := range st.Then {
			dumpStmt(b, inner, depth+1)
		}
		indent(b, depth)
		b.WriteString("else\n")
		for _, inner := range st.Else {
			dumpStmt(b, inner, depth+1)
		}
	case *parserast.WhileStmt:
		fmt.Fprintf(b, "WhileStmt %s\n", dumpExpr(st.Cond))
		for _, inner := range st.Body {
			dumpStmt(b, inner, depth+1)
		}
	case *parserast.RepeatStmt:
		fmt.Fprintf(b, "RepeatStmt %s\n", dumpExpr(st.Cond))
		for _, inner := range st.Body {
			dumpStmt(b, inner, depth+1)
		}
	case *parserast.CallStmt:
		fmt.Fprintf(b, "CallStmt %s\n", dumpExpr(st.Call))
	case *parserast.ReturnStmt:
		if st.Value != nil {
			fmt.Fprintf(b, "ReturnStmt %s\n", dumpExpr(st.Value))
		} else {
			b.WriteString("ReturnStmt\n")
		}
	default:
		fmt.Fprintf(b, "<unknown stmt %T>\n", s)
	}
}

func dumpExpr(e parserast.Expr) string {
	switch ex := e.(type) {
	case *parserast.IntLitExpr:
		return fmt.Sprintf("%d", ex.Value)
	case *parserast.StringLitExpr:
		return ex.Value
	case *parserast.TrueExpr:
		return "true"
	case *parserast.FalseExpr:
		return "false"
	case *parserast.IdentExpr:
		return ex.Name
	case *parserast.DotAccessExpr:
		return dumpExpr(ex.Loc) + "." + ex.Field.Name
	case *parserast.AssignExpr:
		return dumpExpr(ex.LHS) + " = " + dumpExpr(ex.RHS)
	case *parserast.CallExpr:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = dumpExpr(a)
		}
		return ex.Callee.Name + "(" + strings.Join(args, ", ") + ")"
	case *parserast.UnaryExpr:
		return unaryOpString(ex.Op) + dumpExpr(ex.Operand)
	case *parserast.BinaryExpr:
		return dumpExpr(ex.Left) + " " + binaryOpString(ex.Op) + " " + dumpExpr(ex.Right)
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func unaryOpString(op parserast.UnaryOp) string {
	switch op {
	case parserast.UnaryMinus:
		return "-"
	case parserast.UnaryNot:
		return "!"
	default:
		return "?"
	}
}

func binaryOpString(op parserast.BinaryOp) string {
	switch op {
	case parserast.BinPlus:
		return "+"
	case parserast.BinMinus:
		return "-"
	case parserast.BinTimes:
		return "*"
	case parserast.BinDivide:
		return "/"
	case parserast.BinAnd:
		return "&&"
	case parserast.BinOr:
		return "||"
	case parserast.BinEq:
		return "=="
	case parserast.BinNeq:
		return "!="
	case parserast.BinLt:
		return "<"
	case parserast.BinGt:
		return ">"
	case parserast.BinLe:
		return "<="
	case parserast.BinGe:
		return ">="
	default:
		return "?"
	}
}
