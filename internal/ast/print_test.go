package ast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astdump "github.com/hassan/cmm/internal/ast"
	"github.com/hassan/cmm/internal/lexer"
	"github.com/hassan/cmm/internal/parser"
)

func TestDump_FuncWithLocalsAndBody(t *testing.T) {
	l := lexer.New(`
		int add(int a, int b) {
			int r;
			r = a + b;
			return r;
		}
	`, "test.cmm")
	p := parser.New(l)
	prog, errs := p.ParseProgram()
	require.Empty(t, errs)

	out := astdump.Dump(prog)
	assert.Contains(t, out, "FuncDecl int add(int a, int b)")
	assert.Contains(t, out, "VarDecl int r")
	assert.Contains(t, out, "AssignStmt r = a + b")
	assert.Contains(t, out, "ReturnStmt r")
}

func TestDump_StructDecl(t *testing.T) {
	l := lexer.New(`struct Point { int x; int y; };`, "test.cmm")
	p := parser.New(l)
	prog, errs := p.ParseProgram()
	require.Empty(t, errs)

	out := astdump.Dump(prog)
	assert.Contains(t, out, "StructDecl Point")
	assert.Contains(t, out, "VarDecl int x")
	assert.Contains(t, out, "VarDecl int y")
}

func TestDump_IfElseIndentation(t *testing.T) {
	l := lexer.New(`
		int f(bool c) {
			if (c) {
				return 1;
			} else {
				return 0;
			}
		}
	`, "test.cmm")
	p := parser.New(l)
	prog, errs := p.ParseProgram()
	require.Empty(t, errs)

	out := astdump.Dump(prog)
	lines := strings.Split(out, "\n")
	var elseLine string
	for _, line := range lines {
		if strings.TrimSpace(line) == "else" {
			elseLine = line
			break
		}
	}
	require.NotEmpty(t, elseLine, "expected an 'else' line in the dump")
	assert.Equal(t, "  else", elseLine, "'else' should sit at the if statement's depth")
}
