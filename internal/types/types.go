// Package types implements the closed set of semantic types a C‑‑ program
// can produce: int, bool, void, string, fn, struct-instance, struct-def,
// and the error bottom type.
//
// DESIGN CHOICE: unlike an open type system with arrays, floats, and
// user-extensible kinds, this set never grows, so a closed interface with
// one concrete struct per kind — mirroring the pattern used for ast.Node —
// is simpler than a kind-tagged single struct.
package types

import "strings"

// Type is any of the eight semantic types.
type Type interface {
	// Kind identifies which of the eight types this is.
	Kind() Kind
	// Equals reports structural equality: identical for primitives,
	// fn equal iff ordered parameter and return types all equal,
	// struct-instance/struct-def equal iff same tag. error equals nothing,
	// including another error — callers that need error-suppressing
	// comparisons must check IsError first.
	Equals(other Type) bool
	String() string
}

// Kind discriminates the eight semantic types without a type assertion.
type Kind int

const (
	KindError Kind = iota
	KindInt
	KindBool
	KindVoid
	KindString
	KindFunc
	KindStructInstance
	KindStructDef
)

// primitive implements the five types with no further structure.
type primitive struct {
	kind Kind
	name string
}

func (p primitive) Kind() Kind   { return p.kind }
func (p primitive) String() string { return p.name }
func (p primitive) Equals(other Type) bool {
	o, ok := other.(primitive)
	return ok && p.kind != KindError && o.kind == p.kind
}

var (
	// Error is the bottom type. It compares equal to nothing and is
	// returned wherever a rule would otherwise report a cascading error
	// on an already-broken subexpression.
	Error Type = primitive{KindError, "error"}
	Int   Type = primitive{KindInt, "int"}
	Bool  Type = primitive{KindBool, "bool"}
	Void  Type = primitive{KindVoid, "void"}
	String Type = primitive{KindString, "string"}
)

// IsError reports whether t is the error type. Equals alone can't be used
// for this check since error.Equals(error) is false by design.
func IsError(t Type) bool {
	p, ok := t.(primitive)
	return ok && p.kind == KindError
}

// Func is a function's type: its ordered parameter types and return type.
type Func struct {
	Params []Type
	Return Type
}

func (f *Func) Kind() Kind { return KindFunc }

func (f *Func) Equals(other Type) bool {
	o, ok := other.(*Func)
	if !ok || len(o.Params) != len(f.Params) {
		return false
	}
	if !f.Return.Equals(o.Return) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

func (f *Func) String() string {
	var b strings.Builder
	b.WriteString("fn(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	b.WriteString(f.Return.String())
	return b.String()
}

// StructInstance is a variable's type when declared `struct S x;`: a value
// of struct tag S. Two struct-instance types are equal iff they name the
// same tag.
type StructInstance struct {
	Tag string
}

func (s *StructInstance) Kind() Kind { return KindStructInstance }
func (s *StructInstance) Equals(other Type) bool {
	o, ok := other.(*StructInstance)
	return ok && o.Tag == s.Tag
}
func (s *StructInstance) String() string { return "struct " + s.Tag }

// StructDef is the type of a struct tag used as a value, e.g. in the
// (rejected, diagnosed) case of assigning or comparing struct names
// themselves rather than instances.
type StructDef struct {
	Tag string
}

func (s *StructDef) Kind() Kind { return KindStructDef }
func (s *StructDef) Equals(other Type) bool {
	o, ok := other.(*StructDef)
	return ok && o.Tag == s.Tag
}
func (s *StructDef) String() string { return "struct-def " + s.Tag }
