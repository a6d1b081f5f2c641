package symtab

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors for the Table operations. They are compared with
// errors.Is rather than formatted, so a plain stdlib sentinel is the right
// tool here — github.com/pkg/errors is reserved (per the project's
// error-handling conventions) for wrapping the fatal diagnostics the error
// sink reports, not for simple equality checks internal to this package.
var (
	ErrEmptyScope     = errors.New("symtab: empty scope")
	ErrDuplicateLocal = errors.New("symtab: duplicate local")
	ErrBadArgument    = errors.New("symtab: bad argument")
)

// Scope is one level of the scope stack: a map from name to symbol plus a
// link to its parent. A tree of scopes with a tracked "current" pointer
// (held by Table) is operationally a stack for the single traversal that
// name analysis performs — push descends to a fresh child, pop ascends to
// the parent — while still letting struct-definition field tables
// (Symbol.Fields) hang off a symbol and outlive the scope that declared
// the struct.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Symbol)}
}

func (s *Scope) lookupLocal(name string) *Symbol {
	return s.symbols[name]
}

// DebugString renders this scope's bindings, one per line, sorted by name
// for stable --dump-symtab output.
func (s *Scope) DebugString() string {
	var b strings.Builder
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(s.symbols[name].String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Table is the symbol & scope table: `addScope` pushes, `removeScope`
// pops and fails if empty, `addDecl` inserts into the top, `lookupLocal`
// consults only the top, `lookupGlobal` searches top-to-bottom.
type Table struct {
	current *Scope
}

// NewTable creates a table with its outermost (global) scope already
// pushed, so addDecl can be called immediately for top-level declarations.
func NewTable() *Table {
	return &Table{current: newScope(nil)}
}

// AddScope pushes an empty scope.
func (t *Table) AddScope() {
	t.current = newScope(t.current)
}

// RemoveScope pops the top scope, failing with ErrEmptyScope if the table
// has no scope left to pop (the global scope, once popped, leaves current
// nil).
func (t *Table) RemoveScope() error {
	if t.current == nil {
		return ErrEmptyScope
	}
	t.current = t.current.parent
	return nil
}

// AddDecl inserts name -> sym into the top scope.
func (t *Table) AddDecl(name string, sym *Symbol) error {
	if name == "" || sym == nil {
		return ErrBadArgument
	}
	if t.current == nil {
		return ErrEmptyScope
	}
	if _, exists := t.current.symbols[name]; exists {
		return ErrDuplicateLocal
	}
	t.current.symbols[name] = sym
	return nil
}

// LookupLocal returns the top scope's binding for name, or nil.
func (t *Table) LookupLocal(name string) *Symbol {
	if t.current == nil {
		return nil
	}
	return t.current.lookupLocal(name)
}

// LookupGlobal walks from the top scope to the bottom, returning the first
// binding found, or nil.
func (t *Table) LookupGlobal(name string) *Symbol {
	for s := t.current; s != nil; s = s.parent {
		if sym, ok := s.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// Current exposes the top scope for callers (name analysis) that need to
// snapshot it, e.g. to hand a struct-decl's field scope to Symbol.Fields
// before popping it.
func (t *Table) Current() *Scope {
	return t.current
}
