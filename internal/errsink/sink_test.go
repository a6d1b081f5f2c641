package errsink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/cmm/internal/lexer"
)

func TestSink_Report_Ordering(t *testing.T) {
	s := New()
	assert.False(t, s.HasErrors())

	pos := lexer.Position{Filename: "a.cmm", Line: 3, Column: 1}
	s.Report(pos, "Undeclared identifier")
	s.Report(pos, "Type mismatch")

	require.True(t, s.HasErrors())
	diags := s.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, "Undeclared identifier", diags[0].Message)
	assert.Equal(t, "Type mismatch", diags[1].Message)
}

func TestSink_DoesNotCoalesce(t *testing.T) {
	s := New()
	pos := lexer.Position{Line: 1, Column: 1}
	s.Report(pos, "Multiply declared identifier")
	s.Report(pos, "Multiply declared identifier")

	assert.Len(t, s.Diagnostics(), 2)
}

func TestSink_Reportf(t *testing.T) {
	s := New()
	s.Reportf(lexer.Position{Line: 2, Column: 4}, "unhandled node %T", 42)

	require.Len(t, s.Diagnostics(), 1)
	assert.Equal(t, "unhandled node int", s.Diagnostics()[0].Message)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Pos: lexer.Position{Line: 5, Column: 9}, Message: "Type mismatch"}
	assert.Equal(t, "5:9: Type mismatch", d.String())
}

func TestFatal_PanicsWithFatalError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		fe, ok := r.(*FatalError)
		require.True(t, ok)
		assert.Contains(t, fe.Error(), "boom")
	}()
	Fatal(lexer.Position{Line: 1, Column: 1}, assertError("boom"))
}

func TestFatalf_PanicsWithFatalError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		fe, ok := r.(*FatalError)
		require.True(t, ok)
		assert.Contains(t, fe.Error(), "unhandled statement")
	}()
	Fatalf(lexer.Position{}, "unhandled statement %s", "IfStmt")
}

type assertError string

func (e assertError) Error() string { return string(e) }
