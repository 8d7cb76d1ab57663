// Package gibberishc wires the operational logger shared by the CLI driver.
//
// This is deliberately separate from internal/diag: diag is the compiler's
// user-facing diagnostic channel (bit-exact, checked by tests), while this
// package is ordinary structured logging of pipeline stages and file names
// that never touches the emitted assembly or the diagnostic stream.
package gibberishc

import "github.com/sirupsen/logrus"

// NewLogger returns a logrus logger configured for CLI output: no
// timestamps, text formatting.
func NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}
