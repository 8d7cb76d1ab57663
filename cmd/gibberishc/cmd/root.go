// Package cmd implements the gibberishc command-line driver: argument
// parsing and pipeline sequencing live here, kept separate from the
// compiler passes themselves so the internal packages stay importable as
// a library.
package cmd

import (
	"github.com/hassan/gibberishc/internal/gibberishc"
	"github.com/spf13/cobra"
)

var (
	// Version is the compiler version, fixed for this distribution.
	Version = "0.1.0"

	log = gibberishc.NewLogger()
)

var rootCmd = &cobra.Command{
	Use:     "gibberishc",
	Short:   "Compiler for the Gibberish teaching language",
	Version: Version,
	Long: `gibberishc compiles Gibberish source files to MIPS assembly.

Gibberish is a small C-like teaching language: int/bool/void scalars,
structs without nested allocation, functions, and the usual control-flow
statements. The compiler runs three passes over the parsed program -
name analysis, type checking, and code generation - and refuses to emit
assembly for a program that failed any of them.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log each pipeline stage as it runs")
}
