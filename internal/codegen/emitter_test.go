package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/cmm/internal/codegen"
	"github.com/hassan/cmm/internal/errsink"
	"github.com/hassan/cmm/internal/lexer"
	"github.com/hassan/cmm/internal/nameres"
	"github.com/hassan/cmm/internal/parser"
	"github.com/hassan/cmm/internal/typecheck"
)

func emit(t *testing.T, source string) string {
	t.Helper()
	l := lexer.New(source, "test.cmm")
	p := parser.New(l)
	prog, errs := p.ParseProgram()
	require.Empty(t, errs, "unexpected parse errors")

	sink := errsink.New()
	table := nameres.Analyze(prog, sink)
	typecheck.Check(prog, table, sink)
	require.False(t, sink.HasErrors(), "unexpected semantic errors: %v", sink.Diagnostics())

	return codegen.Emit(prog)
}

// TestEmit_HelloWorld covers scenario 1 of the spec's worked examples: a
// lone write of a string literal followed by an explicit return.
func TestEmit_HelloWorld(t *testing.T) {
	asm := emit(t, `int main() { cout << "hi"; return 0; }`)

	assert.Contains(t, asm, ".data")
	assert.Contains(t, asm, `.asciiz "hi"`)
	assert.Contains(t, asm, "main:")
	assert.Contains(t, asm, "_start:")
	assert.Contains(t, asm, "li $v0, 4")
	assert.Contains(t, asm, "li $v0, 10")
	assert.Contains(t, asm, "syscall")
}

func TestEmit_GlobalVarGetsDataSlot(t *testing.T) {
	asm := emit(t, `int counter; int main() { counter = 1; return 0; }`)
	assert.Contains(t, asm, "_counter: .word 0")
	assert.Contains(t, asm, "la $t0, _counter")
}

func TestEmit_NonMainFunctionUsesUnderscoreLabel(t *testing.T) {
	asm := emit(t, `
		int double(int n) { return n + n; }
		int main() { return double(1); }
	`)
	assert.Contains(t, asm, "_double:")
	assert.Contains(t, asm, "jal _double")
	assert.Contains(t, asm, "jr $ra")
}

func TestEmit_CallAdjustsStackBySizeParams(t *testing.T) {
	asm := emit(t, `
		int add(int a, int b) { return a + b; }
		int main() { return add(1, 2); }
	`)
	assert.Contains(t, asm, "add $sp, $sp, 8")
}

func TestEmit_ShortCircuitAndGeneratesDistinctLabels(t *testing.T) {
	asm := emit(t, `
		int main() {
			bool a;
			bool b;
			bool r;
			a = true;
			b = false;
			r = a && b;
			return 0;
		}
	`)
	labels := strings.Count(asm, ".L")
	assert.Greater(t, labels, 0, "expected at least one allocated label for the && short-circuit")
}

func TestEmit_IfElseEmitsThreeLabels(t *testing.T) {
	asm := emit(t, `
		int main() {
			bool c;
			c = true;
			if (c) {
				cout << 1;
			} else {
				cout << 2;
			}
			return 0;
		}
	`)
	// emitIfElse allocates trueL, falseL, doneL: three distinct label defs.
	count := strings.Count(asm, ":\n")
	assert.GreaterOrEqual(t, count, 3)
}

func TestEmit_RepeatStatementIsNotEmitted(t *testing.T) {
	before := emit(t, `int main() { return 0; }`)
	after := emit(t, `
		int main() {
			repeat (3) {
				cout << 1;
			}
			return 0;
		}
	`)
	// The repeat body never reaches assembly (§4.4): no extra cout syscall
	// beyond what a bare "return 0" program already has.
	assert.Equal(t, strings.Count(before, "li $v0, 1"), strings.Count(after, "li $v0, 1"))
}

func TestEmit_StringLiteralsAreInterned(t *testing.T) {
	asm := emit(t, `
		int main() {
			cout << "same";
			cout << "same";
			return 0;
		}
	`)
	assert.Equal(t, 1, strings.Count(asm, `.asciiz "same"`))
}

func TestEmit_DotAccessReadsBaseVariableSlot(t *testing.T) {
	// Resolved design decision: dot-access codegen ignores the field
	// offset entirely and just re-reads the base variable's own slot.
	asm := emit(t, `
		struct Point { int x; int y; };
		int main() {
			struct Point p;
			cout << p.x;
			return 0;
		}
	`)
	assert.Contains(t, asm, "$fp)")
}

func TestFuncLabel_Main(t *testing.T) {
	// funcLabel is unexported but its effect is directly observable via Emit.
	asm := emit(t, `int main() { return 0; }`)
	assert.Contains(t, asm, "main:")
	assert.NotContains(t, asm, "_main:")
}
