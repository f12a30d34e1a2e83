// Command leandoc translates a LeanDoc document into Typst markup, or
// dumps its parsed tree as JSON for inspection.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	kitlog "github.com/go-kit/kit/log"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/generator"
	"github.com/dbc60/leandoc/internal/logging"
	"github.com/dbc60/leandoc/internal/messages"
	"github.com/dbc60/leandoc/internal/parser"
)

// CLI is the flag surface kong builds from. There are no subcommands:
// --ast and --typst (the default) are both applied to the same positional
// Input, matching spec.md's flag-based boundary.
var CLI struct {
	AST          bool   `help:"Dump the parsed document tree as JSON instead of generating Typst."`
	Typst        bool   `help:"Generate Typst source (the default mode; --ast takes precedence)."`
	Output       string `short:"o" help:"Output file path. Defaults to stdout." type:"path"`
	Template     string `default:"plain" help:"Built-in Typst template name (plain, report)."`
	TemplateFile string `help:"Path to a Typst template to #import instead of a built-in one."`
	NoRaw        bool   `help:"Reject raw/passthrough constructs (listing, literal, stem, passthrough fences) instead of emitting them verbatim."`
	Verbose      bool   `short:"v" help:"Log lexer/parser/generator progress to stderr."`

	Input string `arg:"" help:"Input LeanDoc file, or - for stdin."`
}

// Exit codes: 0 success, 1 a structural fault in the input (ParseError or
// GenError), 2 a usage or I/O fault.
const (
	exitOK int = iota
	exitFault
	exitUsage
)

func main() {
	kong.Parse(&CLI, kong.Description("Translate LeanDoc documents to Typst."))
	os.Exit(run())
}

func run() int {
	text, err := readInput(CLI.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "leandoc:", err)
		return exitUsage
	}

	var kl kitlog.Logger = kitlog.NewNopLogger()
	if CLI.Verbose {
		kl = kitlog.NewLogfmtLogger(os.Stderr)
	}
	log := logging.New(logging.Config{Name: "leandoc", Logger: kl})

	doc, err := parser.Parse(text, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "leandoc:", formatFault(err))
		return exitFault
	}

	var out string
	if CLI.AST {
		b, err := ast.Dump(doc)
		if err != nil {
			fmt.Fprintln(os.Stderr, "leandoc:", err)
			return exitFault
		}
		out = string(b) + "\n"
	} else {
		opts := generator.Options{
			TemplateName:        CLI.Template,
			TemplateFile:        CLI.TemplateFile,
			AllowRawPassthrough: !CLI.NoRaw,
		}
		rendered, err := generator.Generate(doc, opts, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "leandoc:", formatFault(err))
			return exitFault
		}
		out = rendered
	}

	if err := writeOutput(CLI.Output, out); err != nil {
		fmt.Fprintln(os.Stderr, "leandoc:", err)
		return exitUsage
	}
	return exitOK
}

// formatFault renders a *messages.ParseError/*messages.GenError with its
// Type name alongside the usual "line:col: message" text.
func formatFault(err error) string {
	switch e := err.(type) {
	case *messages.ParseError:
		return fmt.Sprintf("%s: %s", e.Kind, e.Error())
	case *messages.GenError:
		return fmt.Sprintf("%s: %s", e.Kind, e.Error())
	default:
		return err.Error()
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
