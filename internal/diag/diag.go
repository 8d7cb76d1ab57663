// Package diag implements the compiler's user-facing diagnostic reporter:
// a sink for (line, column, message) triples that never panics and records
// whether a fatal error has fired.
//
// DESIGN CHOICE: unlike the richer, colorized error formatting style seen
// elsewhere in the example pack, this reporter's output format is an
// observable contract (distilled spec §6.2, exercised by the end-to-end
// scenarios in §8) — exactly one line per error, "<line>:<col>: <message>",
// no color, no source-context snippet, no caret. Decoration would break
// byte-for-byte test assertions, so there isn't any.
package diag

import (
	"fmt"
	"io"

	"github.com/hassan/gibberishc/internal/lexer"
)

// Diagnostic is one reported error, attached to a source position.
type Diagnostic struct {
	Pos     lexer.Position
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Pos.Line, d.Pos.Column, d.Message)
}

// Reporter accumulates diagnostics in the order they were reported and
// tracks whether any fatal error has occurred.
type Reporter struct {
	diags []Diagnostic
	fatal bool
}

// New creates an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Report records a diagnostic at pos and marks the reporter as having seen
// a fatal error. Gibberish has exactly one severity of user diagnostic —
// every reported error gates out later passes — so Report always sets the
// fatal flag.
func (r *Reporter) Report(pos lexer.Position, message string) {
	r.diags = append(r.diags, Diagnostic{Pos: pos, Message: message})
	r.fatal = true
}

// Reportf is Report with fmt.Sprintf-style formatting.
func (r *Reporter) Reportf(pos lexer.Position, format string, args ...any) {
	r.Report(pos, fmt.Sprintf(format, args...))
}

// HasFatal reports whether any diagnostic has been reported.
func (r *Reporter) HasFatal() bool { return r.fatal }

// Diagnostics returns the reported diagnostics in report order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diags }

// WriteTo writes every diagnostic to w, one per line, in report order.
func (r *Reporter) WriteTo(w io.Writer) error {
	for _, d := range r.diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}
