package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hassan/gibberishc/internal/codegen"
	"github.com/hassan/gibberishc/internal/diag"
	"github.com/hassan/gibberishc/internal/lexer"
	"github.com/hassan/gibberishc/internal/parser"
	"github.com/hassan/gibberishc/internal/parser/ast"
	"github.com/hassan/gibberishc/internal/semantic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	emitTokens bool
	emitAST    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Gibberish source file to MIPS assembly",
	Long: `Compile runs the full pipeline - lexer, parser, name analysis, type
checking, and code generation - over a single Gibberish source file.

If any pass reports a diagnostic, compilation stops there: later passes
do not run, and no .s file is written. Diagnostics are printed to
stderr, one per line, as "<line>:<col>: <message>".

Examples:
  gibberishc compile prog.gib
  gibberishc compile prog.gib -o prog.s
  gibberishc compile prog.gib --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input with .s extension>)")
	compileCmd.Flags().BoolVar(&emitTokens, "emit-tokens", false, "print the token stream to stderr before parsing")
	compileCmd.Flags().BoolVar(&emitAST, "emit-ast", false, "print a summary of the top-level declarations to stderr after parsing")
}

func runCompile(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	if emitTokens {
		dumpTokens(string(source), filename)
	}

	reporter := diag.New()

	log.WithField("stage", "parse").Debug("parsing ", filename)
	p := parser.New(string(source), filename, reporter)
	prog := p.ParseProgram()

	if emitAST {
		dumpDecls(prog)
	}

	if reporter.HasFatal() {
		return reportAndFail(reporter, "parsing")
	}

	log.WithField("stage", "names").Debug("resolving names")
	semantic.AnalyzeNames(prog, reporter)
	if reporter.HasFatal() {
		return reportAndFail(reporter, "name analysis")
	}

	log.WithField("stage", "types").Debug("checking types")
	semantic.CheckTypes(prog, reporter)
	if reporter.HasFatal() {
		return reportAndFail(reporter, "type checking")
	}

	out := outputFile
	if out == "" {
		out = withExtension(filename, ".s")
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	log.WithField("stage", "codegen").Debug("emitting ", out)
	if err := codegen.Generate(prog, f); err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if verbose {
		log.Infof("wrote %s", out)
	} else {
		fmt.Printf("%s -> %s\n", filename, out)
	}
	return nil
}

// reportAndFail writes every accumulated diagnostic to stderr and returns
// an error that tells the root command to exit non-zero without its own
// "Error: " preamble duplicating the diagnostics already printed.
func reportAndFail(reporter *diag.Reporter, stage string) error {
	reporter.WriteTo(os.Stderr)
	return fmt.Errorf("%s failed with %d error(s)", stage, len(reporter.Diagnostics()))
}

func withExtension(filename, ext string) string {
	trimmed := strings.TrimSuffix(filename, filepath.Ext(filename))
	return trimmed + ext
}

func dumpTokens(source, filename string) {
	l := lexer.New(source, filename)
	for {
		tok := l.NextToken()
		fmt.Fprintf(os.Stderr, "%s\n", tok)
		if tok.Type == lexer.TokenEOF {
			break
		}
	}
}

func dumpDecls(prog *ast.Program) {
	for i, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.FnDecl:
			fmt.Fprintf(os.Stderr, "%d. fn %s (%d formals)\n", i+1, d.Name, len(d.Formals))
		case *ast.VarDecl:
			fmt.Fprintf(os.Stderr, "%d. var %s\n", i+1, d.Name)
		case *ast.StructDecl:
			fmt.Fprintf(os.Stderr, "%d. struct %s (%d fields)\n", i+1, d.Name, len(d.Fields))
		}
	}
}
