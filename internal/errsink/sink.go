// Package errsink implements the error sink: one ordered place every pass
// reports diagnostics to, plus the fatal path for invariant violations
// that must terminate the process.
package errsink

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hassan/cmm/internal/lexer"
)

// Diagnostic is one non-fatal error report: a position and message,
// rendered as "line:column: text".
type Diagnostic struct {
	Pos     lexer.Position
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Pos.Line, d.Pos.Column, d.Message)
}

// Sink accumulates diagnostics across passes. It never coalesces: two
// reports at the same position are both kept, in the order the passes
// produced them, and a pass that reports an error keeps running rather
// than stopping at the first one.
//
// DESIGN CHOICE: a single sink shared by name analysis and type-check
// (which also reports "No main function"), rather than one per pass,
// since the whole pipeline is one sequential, non-concurrent run with no
// need to merge per-pass results.
type Sink struct {
	diags []Diagnostic
}

// New creates an empty sink.
func New() *Sink {
	return &Sink{}
}

// Report records a non-fatal diagnostic.
func (s *Sink) Report(pos lexer.Position, message string) {
	s.diags = append(s.diags, Diagnostic{Pos: pos, Message: message})
}

// Reportf is Report with fmt.Sprintf-style formatting.
func (s *Sink) Reportf(pos lexer.Position, format string, args ...interface{}) {
	s.Report(pos, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.diags) > 0
}

// Diagnostics returns all recorded diagnostics in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// FatalError wraps an invariant-violation error: empty-scope pop,
// duplicate insert on a decl the caller already checked was fresh, or an
// AST shape a pass's type switch doesn't recognize. These terminate the
// process rather than accumulate in the sink.
type FatalError struct {
	cause error
}

func (f *FatalError) Error() string { return f.cause.Error() }
func (f *FatalError) Unwrap() error { return f.cause }

// Fatal wraps err with positional context via github.com/pkg/errors (so
// the panic carries a stack trace for the process-terminating path) and
// panics with a *FatalError. The caller at the top of the pipeline (the
// CLI driver) is the only place that recovers from this panic.
func Fatal(pos lexer.Position, err error) {
	panic(&FatalError{cause: errors.Wrapf(err, "invariant violation at %s", pos.String())})
}

// Fatalf is Fatal for a plain message instead of a wrapped error.
func Fatalf(pos lexer.Position, format string, args ...interface{}) {
	Fatal(pos, errors.Errorf(format, args...))
}
