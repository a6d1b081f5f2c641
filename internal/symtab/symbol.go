// Package symtab implements the symbol and scope table: a stack of
// name-to-symbol maps plus the frame-offset bookkeeping that name analysis
// interleaves with scope management.
package symtab

import (
	"github.com/hassan/cmm/internal/lexer"
	"github.com/hassan/cmm/internal/types"
)

// SymbolKind is what kind of entity a Symbol names: a variable, a function,
// a parameter, a struct definition, or a struct field. A struct instance is
// a variable, parameter or field whose StructDef link is set.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
	SymbolStructDef
	SymbolField
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	case SymbolStructDef:
		return "struct-def"
	case SymbolField:
		return "field"
	default:
		return "unknown"
	}
}

// GLOBAL is the sentinel frame offset for globals. It is chosen far outside
// the range of any real frame offset so it can never be mistaken for one.
const GLOBAL = 1 << 30

// Symbol binds a name to a variable, function, struct-definition, or
// struct-instance-carrying entry.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type types.Type
	Pos  lexer.Position

	// Offset is this symbol's frame offset for a variable, parameter, or
	// field: GLOBAL for globals, +4/+8/... for parameters, -8/-12/... for
	// locals.
	Offset int

	// SizeLocals and SizeParams are filled on a function symbol once its
	// body has been fully name-analyzed.
	SizeLocals int
	SizeParams int

	// Fields holds the nested symbol table owned by a struct-definition
	// symbol. It is populated once, at struct-decl name analysis, and is
	// never popped — struct-definition symbol tables outlive individual
	// scope pops because they hang off the symbol, not off the scope
	// stack.
	Fields *Scope

	// StructDef is a weak (non-owning) link from a struct-instance
	// variable, parameter, or field symbol to the struct-definition symbol
	// that owns its field table, so a dot-access chain can resolve
	// further fields without re-deriving the tag from Type.
	StructDef *Symbol
}

// LookupField looks up a field by name on a struct-definition symbol.
// Returns nil if s is not a struct-definition symbol or the field is
// absent.
func (s *Symbol) LookupField(name string) *Symbol {
	if s.Kind != SymbolStructDef || s.Fields == nil {
		return nil
	}
	return s.Fields.lookupLocal(name)
}

func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + s.Type.String() + " at " + s.Pos.String()
}
