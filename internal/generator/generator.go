// Package generator walks a parsed LeanDoc tree (internal/ast) and emits
// Typst markup. It is a pure tree-walker: no lexing or parsing concerns
// leak in, and every construct the parser could not fully resolve on its
// own (an unresolved include::, an ifdef:: directive, a macro with no
// generation rule) surfaces here as a *messages.GenError instead of being
// silently dropped.
package generator

import (
	"fmt"
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/logging"
	"github.com/dbc60/leandoc/internal/messages"
)

// Options configures a single Generate call.
type Options struct {
	// TemplateName selects the preamble: "plain" (default) emits the
	// built-in admon helper, "report" emits a #import of its template
	// package. Ignored when TemplateFile is set.
	TemplateName string
	// TemplateFile, when non-empty, is emitted as a Typst #import instead
	// of a built-in preamble.
	TemplateFile string
	// AllowRawPassthrough permits PassthroughInline and the raw delimited
	// block kinds (listing, literal, passthrough, stem) to be emitted
	// verbatim. When false, reaching one of them is a GenError.
	AllowRawPassthrough bool
}

const builtinPreamble = `#let admon(kind, body) = block(
  fill: luma(245), inset: 8pt, radius: 3pt, width: 100%,
)[*#kind* #body]

`

// knownTemplates maps each template name usable without a TemplateFile to
// the path it imports; an empty path ("plain") means the built-in preamble
// is emitted instead. Real template resolution (fetching
// a package, reading a local file) belongs to the CLI boundary; this is
// just the name-to-import-path table.
var knownTemplates = map[string]string{
	"plain":  "",
	"report": "@preview/leandoc-report:0.1.0",
}

// generator holds the mutable state of one Generate call.
type generator struct {
	opts Options
	log  logging.Logger
	buf  strings.Builder
}

// Generate renders doc as a complete Typst source file.
func Generate(doc *ast.Document, opts Options, log logging.Logger) (string, error) {
	g := &generator{opts: opts, log: log.Named("generator")}
	if err := g.preamble(); err != nil {
		return "", err
	}
	if doc.Title != "" {
		g.buf.WriteString("= ")
		g.buf.WriteString(escapeText(doc.Title))
		g.buf.WriteString("\n\n")
	}
	for _, child := range doc.Children {
		if err := g.emitBlock(child); err != nil {
			return "", err
		}
	}
	return g.buf.String(), nil
}

func (g *generator) preamble() error {
	if g.opts.TemplateFile != "" {
		fmt.Fprintf(&g.buf, "#import %q: *\n\n", g.opts.TemplateFile)
		return nil
	}
	name := g.opts.TemplateName
	if name == "" {
		name = "plain"
	}
	importPath, ok := knownTemplates[name]
	if !ok {
		return messages.NewGenError(0, messages.ErrUnknownTemplate, "unknown template %q", name)
	}
	if importPath == "" {
		g.buf.WriteString(builtinPreamble)
		return nil
	}
	fmt.Fprintf(&g.buf, "#import %q: *\n\n", importPath)
	return nil
}

// escapeText escapes the handful of Typst markup characters that a plain
// text run might otherwise trigger: '\', '*', '_', '`', '#', '[', ']', '<',
// '>'.
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '*', '_', '`', '#', '[', ']', '<', '>':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeString escapes s for use inside a Typst double-quoted string
// literal, e.g. a link target or image path.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
