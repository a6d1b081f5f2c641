// Command cmm is the C‑‑ compiler driver: one source file in, one MIPS
// assembly file out.
//
// The teacher's cmd/compiler/main.go hand-parsed os.Args; this driver
// replaces that with github.com/spf13/cobra (the pack's dominant
// compiler-CLI framework) while keeping the teacher's phase-by-phase
// fmt.Fprintf(os.Stderr, ...) reporting texture and exit-code discipline.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	astdump "github.com/hassan/cmm/internal/ast"
	"github.com/hassan/cmm/internal/codegen"
	"github.com/hassan/cmm/internal/errsink"
	"github.com/hassan/cmm/internal/lexer"
	"github.com/hassan/cmm/internal/nameres"
	"github.com/hassan/cmm/internal/parser"
	"github.com/hassan/cmm/internal/parser/ast"
	"github.com/hassan/cmm/internal/symtab"
	"github.com/hassan/cmm/internal/typecheck"
)

var (
	outPath    string
	dumpAST    bool
	dumpSymtab bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cmm <source-file>",
		Short:         "Compile a C‑‑ source file to MIPS assembly",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compile(args[0])
		},
	}
	root.Flags().StringVarP(&outPath, "out", "o", "", "output assembly file (default: <source>.s)")
	root.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST to stderr and exit")
	root.Flags().BoolVar(&dumpSymtab, "dump-symtab", false, "print the global symbol table to stderr and exit")
	return root
}

func compile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		printError("reading %s: %v", path, err)
		return err
	}

	prog, parseErrs := parseSource(string(source), path)
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			printError("%v", e)
		}
		return fmt.Errorf("%d parse error(s)", len(parseErrs))
	}

	if dumpAST {
		fmt.Fprint(os.Stderr, astdump.Dump(prog))
		return nil
	}

	sink := errsink.New()
	table := runSemanticPasses(prog, sink)

	if dumpSymtab {
		fmt.Fprint(os.Stderr, table.Current().DebugString())
		return nil
	}

	if sink.HasErrors() {
		for _, d := range sink.Diagnostics() {
			printError("%s", d.String())
		}
		return fmt.Errorf("%d semantic error(s)", len(sink.Diagnostics()))
	}

	asm := codegen.Emit(prog)

	dest := outPath
	if dest == "" {
		dest = path + ".s"
	}
	if err := os.WriteFile(dest, []byte(asm), 0o644); err != nil {
		printError("writing %s: %v", dest, err)
		return err
	}
	return nil
}

// runSemanticPasses recovers from the fatal-invariant panic path so the
// driver can print a colored diagnostic instead of dumping a raw stack
// trace.
func runSemanticPasses(prog *ast.Program, sink *errsink.Sink) (table *symtab.Table) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*errsink.FatalError); ok {
				printFatal("%v", fe)
				os.Exit(2)
			}
			panic(r)
		}
	}()
	table = nameres.Analyze(prog, sink)
	typecheck.Check(prog, table, sink)
	return table
}

func printError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString(fmt.Sprintf(format, args...)))
}

func printFatal(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString(fmt.Sprintf(format, args...)))
}

func parseSource(source, path string) (*ast.Program, []error) {
	l := lexer.New(source, path)
	p := parser.New(l)
	return p.ParseProgram()
}
