package symtab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/cmm/internal/types"
)

func TestTable_AddDecl_AndLookupLocal(t *testing.T) {
	tbl := NewTable()
	sym := &Symbol{Name: "x", Kind: SymbolVariable, Type: types.Int, Offset: GLOBAL}

	require.NoError(t, tbl.AddDecl("x", sym))
	assert.Same(t, sym, tbl.LookupLocal("x"))
	assert.Nil(t, tbl.LookupLocal("y"))
}

func TestTable_AddDecl_Duplicate(t *testing.T) {
	tbl := NewTable()
	sym := &Symbol{Name: "x", Kind: SymbolVariable, Type: types.Int}

	require.NoError(t, tbl.AddDecl("x", sym))
	err := tbl.AddDecl("x", sym)
	assert.True(t, errors.Is(err, ErrDuplicateLocal))
}

func TestTable_AddDecl_BadArgument(t *testing.T) {
	tbl := NewTable()
	assert.True(t, errors.Is(tbl.AddDecl("", &Symbol{}), ErrBadArgument))
	assert.True(t, errors.Is(tbl.AddDecl("x", nil), ErrBadArgument))
}

func TestTable_ScopeNesting(t *testing.T) {
	tbl := NewTable()
	outer := &Symbol{Name: "x", Kind: SymbolVariable, Type: types.Int}
	require.NoError(t, tbl.AddDecl("x", outer))

	tbl.AddScope()
	inner := &Symbol{Name: "y", Kind: SymbolVariable, Type: types.Bool}
	require.NoError(t, tbl.AddDecl("y", inner))

	// Inner scope shadows nothing here, but LookupLocal only sees the top.
	assert.Nil(t, tbl.LookupLocal("x"))
	assert.Same(t, inner, tbl.LookupLocal("y"))

	// LookupGlobal walks outward and finds the outer declaration too.
	assert.Same(t, outer, tbl.LookupGlobal("x"))
	assert.Same(t, inner, tbl.LookupGlobal("y"))

	require.NoError(t, tbl.RemoveScope())
	assert.Same(t, outer, tbl.LookupLocal("x"))
	assert.Nil(t, tbl.LookupLocal("y"))
}

func TestTable_RemoveScope_Empty(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.RemoveScope())
	err := tbl.RemoveScope()
	assert.True(t, errors.Is(err, ErrEmptyScope))
}

func TestTable_Shadowing(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddDecl("x", &Symbol{Name: "x", Type: types.Int}))

	tbl.AddScope()
	shadow := &Symbol{Name: "x", Type: types.Bool}
	require.NoError(t, tbl.AddDecl("x", shadow))

	assert.Same(t, shadow, tbl.LookupGlobal("x"))
}

func TestSymbol_LookupField(t *testing.T) {
	fields := newScope(nil)
	fieldSym := &Symbol{Name: "count", Kind: SymbolField, Type: types.Int}
	fields.symbols["count"] = fieldSym

	def := &Symbol{Name: "Counter", Kind: SymbolStructDef, Fields: fields}
	assert.Same(t, fieldSym, def.LookupField("count"))
	assert.Nil(t, def.LookupField("missing"))

	notAStruct := &Symbol{Name: "n", Kind: SymbolVariable}
	assert.Nil(t, notAStruct.LookupField("count"))
}

func TestSymbolKind_String(t *testing.T) {
	tests := []struct {
		kind SymbolKind
		want string
	}{
		{SymbolVariable, "variable"},
		{SymbolFunction, "function"},
		{SymbolParameter, "parameter"},
		{SymbolStructDef, "struct-def"},
		{SymbolField, "field"},
		{SymbolKind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestScope_DebugString_SortedByName(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddDecl("zebra", &Symbol{Name: "zebra", Kind: SymbolVariable, Type: types.Int}))
	require.NoError(t, tbl.AddDecl("apple", &Symbol{Name: "apple", Kind: SymbolVariable, Type: types.Bool}))

	out := tbl.Current().DebugString()
	appleIdx := indexOf(out, "apple")
	zebraIdx := indexOf(out, "zebra")
	require.True(t, appleIdx >= 0 && zebraIdx >= 0)
	assert.Less(t, appleIdx, zebraIdx)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
