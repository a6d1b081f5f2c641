package codegen

import "fmt"

// LabelAllocator hands out unique assembly labels: Next() returns a
// monotonically increasing label unique within one compilation.
//
// DESIGN CHOICE: an explicit struct threaded through the Emitter rather
// than a package-level counter, so label numbering stays deterministic
// and scoped to a single compilation instead of living as ambient state.
type LabelAllocator struct {
	n int
}

// Next returns the next unique label, ".L0", ".L1", and so on.
func (l *LabelAllocator) Next() string {
	label := fmt.Sprintf(".L%d", l.n)
	l.n++
	return label
}

// stringPool interns string literals by their verbatim quoted lexeme, so
// repeated uses of the same literal text share one .asciiz label.
type stringPool struct {
	labels map[string]string
}

func newStringPool() *stringPool {
	return &stringPool{labels: make(map[string]string)}
}

// label returns the existing label for lexeme, or "", false if this is
// the first time lexeme has been seen.
func (s *stringPool) label(lexeme string) (string, bool) {
	l, ok := s.labels[lexeme]
	return l, ok
}

func (s *stringPool) intern(lexeme, label string) {
	s.labels[lexeme] = label
}
