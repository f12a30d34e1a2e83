package generator

import (
	"fmt"
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/messages"
)

// emitBlock appends n's Typst rendering to g.buf. It is the one place the
// spec's node-kind-to-Typst-construct table lives.
func (g *generator) emitBlock(n ast.Node) error {
	switch v := n.(type) {
	case *ast.Section:
		return g.emitSection(v)
	case *ast.Paragraph:
		return g.emitParagraph(v)
	case *ast.LiteralParagraph:
		return g.emitLiteralParagraph(v)
	case *ast.AdmonitionParagraph:
		return g.emitAdmonition(v)
	case *ast.DelimitedBlock:
		return g.emitDelimited(v)
	case *ast.List:
		return g.emitList(v, 0)
	case *ast.Table:
		return g.emitTable(v)
	case *ast.BlockMacro:
		return g.emitBlockMacro(v)
	case *ast.Directive:
		return messages.NewGenError(v.Pos().Line, messages.ErrSemanticPhaseRequired,
			"%s:: requires the semantic phase to resolve", v.Name)
	case *ast.ThematicBreak:
		g.buf.WriteString("#line(length: 100%)\n\n")
		return nil
	case *ast.PageBreak:
		g.buf.WriteString("#pagebreak()\n\n")
		return nil
	case *ast.LineComment:
		g.buf.WriteString("// ")
		g.buf.WriteString(v.Text)
		g.buf.WriteString("\n")
		return nil
	default:
		return messages.NewGenError(n.Pos().Line, messages.ErrUnsupportedMacro,
			"no generation rule for %s", n.NodeKind())
	}
}

func (g *generator) emitAnchorLabel(m *ast.Meta) {
	if m != nil && m.AnchorID != "" {
		fmt.Fprintf(&g.buf, " <%s>", m.AnchorID)
	}
}

func (g *generator) emitBlockTitle(m *ast.Meta) {
	if m != nil && m.Title != "" {
		g.buf.WriteString("#strong[")
		g.buf.WriteString(escapeText(m.Title))
		g.buf.WriteString("]\n")
	}
}

func (g *generator) emitSection(s *ast.Section) error {
	title, err := g.emitInline(s.Title)
	if err != nil {
		return err
	}
	g.buf.WriteString(strings.Repeat("=", s.Level))
	g.buf.WriteString(" ")
	g.buf.WriteString(title)
	g.emitAnchorLabel(s.Meta)
	g.buf.WriteString("\n\n")
	for _, child := range s.Children {
		if err := g.emitBlock(child); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) emitParagraph(p *ast.Paragraph) error {
	g.emitBlockTitle(p.Meta)
	text, err := g.emitInline(p.Children)
	if err != nil {
		return err
	}
	g.buf.WriteString(text)
	g.emitAnchorLabel(p.Meta)
	g.buf.WriteString("\n\n")
	return nil
}

// emitLiteralParagraph always emits, regardless of Options.AllowRawPassthrough:
// that flag scopes the delimited raw/passthrough block kinds and the stem
// macro, not an ordinary indented literal paragraph.
func (g *generator) emitLiteralParagraph(p *ast.LiteralParagraph) error {
	g.emitBlockTitle(p.Meta)
	fmt.Fprintf(&g.buf, "#raw(%q, block: true)", p.Text)
	g.emitAnchorLabel(p.Meta)
	g.buf.WriteString("\n\n")
	return nil
}

func (g *generator) emitAdmonition(a *ast.AdmonitionParagraph) error {
	text, err := g.emitInline(a.Children)
	if err != nil {
		return err
	}
	fmt.Fprintf(&g.buf, "#admon(%q)[%s]", strings.ToLower(a.Label), text)
	g.emitAnchorLabel(a.Meta)
	g.buf.WriteString("\n\n")
	return nil
}

func (g *generator) emitDelimited(b *ast.DelimitedBlock) error {
	switch b.Delim {
	case ast.DelimComment:
		return nil // comment blocks are never rendered
	case ast.DelimListing, ast.DelimLiteral, ast.DelimPassthrough, ast.DelimStem:
		if !g.opts.AllowRawPassthrough {
			return messages.NewGenError(b.Pos().Line, messages.ErrRawPassthroughDisabled,
				"%s block requires raw passthrough to be enabled", b.Delim)
		}
		g.emitBlockTitle(b.Meta)
		if b.Delim == ast.DelimStem {
			g.buf.WriteString("$ ")
			g.buf.WriteString(b.Text)
			g.buf.WriteString(" $")
		} else {
			g.buf.WriteString("```\n")
			g.buf.WriteString(b.Text)
			g.buf.WriteString("\n```")
		}
		g.emitAnchorLabel(b.Meta)
		g.buf.WriteString("\n\n")
		return nil
	case ast.DelimQuote:
		return g.emitContainer(b, "#quote(block: true)[\n", "]")
	case ast.DelimExample:
		return g.emitContainer(b, "#block(stroke: 0.5pt, inset: 8pt, width: 100%)[\n", "]")
	case ast.DelimSidebar:
		return g.emitContainer(b, "#block(fill: luma(250), inset: 8pt, width: 100%)[\n", "]")
	case ast.DelimOpen:
		return g.emitContainer(b, "", "")
	default:
		return messages.NewGenError(b.Pos().Line, messages.ErrUnsupportedMacro,
			"no generation rule for %s block", b.Delim)
	}
}

func (g *generator) emitContainer(b *ast.DelimitedBlock, open, close string) error {
	g.emitBlockTitle(b.Meta)
	g.buf.WriteString(open)
	for _, child := range b.Children {
		if err := g.emitBlock(child); err != nil {
			return err
		}
	}
	g.buf.WriteString(close)
	g.emitAnchorLabel(b.Meta)
	g.buf.WriteString("\n\n")
	return nil
}

func (g *generator) emitList(l *ast.List, indent int) error {
	prefix := strings.Repeat("  ", indent)
	for _, item := range l.Items {
		if err := g.emitListItem(l.Type, item, prefix); err != nil {
			return err
		}
	}
	g.buf.WriteString("\n")
	return nil
}

func (g *generator) emitListItem(t ast.ListType, item *ast.ListItem, prefix string) error {
	switch t {
	case ast.ListOrdered:
		g.buf.WriteString(prefix + "+ ")
	case ast.ListDescription:
		g.buf.WriteString(prefix + "/ ")
	default:
		g.buf.WriteString(prefix + "- ")
	}

	if t == ast.ListDescription {
		term, err := g.emitInline(item.Term)
		if err != nil {
			return err
		}
		g.buf.WriteString(term)
		g.buf.WriteString(": ")
	} else if item.Check != "" {
		switch item.Check {
		case "x":
			g.buf.WriteString("[x] ")
		default:
			g.buf.WriteString("[ ] ")
		}
	}

	for _, child := range item.Children {
		if sub, ok := child.(*ast.List); ok {
			g.buf.WriteString("\n")
			if err := g.emitList(sub, 1); err != nil {
				return err
			}
			continue
		}
		if isInlineKind(child.NodeKind()) {
			inline, err := g.emitInline([]ast.Node{child})
			if err != nil {
				return err
			}
			g.buf.WriteString(inline)
			continue
		}
		if err := g.emitBlock(child); err != nil {
			return err
		}
	}
	g.buf.WriteString("\n")
	return nil
}

func isInlineKind(k ast.Kind) bool {
	switch k {
	case ast.KindText, ast.KindSpace, ast.KindLineBreak, ast.KindEmph, ast.KindSuperscript,
		ast.KindSubscript, ast.KindLink, ast.KindImageInline, ast.KindAnchorInline,
		ast.KindXref, ast.KindAttrRef, ast.KindInlineMacro, ast.KindPassthroughInline:
		return true
	}
	return false
}

func (g *generator) emitTable(t *ast.Table) error {
	g.emitBlockTitle(t.Meta)
	fmt.Fprintf(&g.buf, "#table(\n  columns: %d,\n", t.Width)
	for _, row := range t.Rows {
		g.buf.WriteString("  ")
		for _, cell := range row.Cells {
			text, err := g.emitInline(cell.Children)
			if err != nil {
				return err
			}
			g.buf.WriteString("[")
			g.buf.WriteString(text)
			g.buf.WriteString("], ")
		}
		g.buf.WriteString("\n")
	}
	g.buf.WriteString(")")
	g.emitAnchorLabel(t.Meta)
	g.buf.WriteString("\n\n")
	return nil
}

func (g *generator) emitBlockMacro(m *ast.BlockMacro) error {
	switch m.Name {
	case "image":
		caption := m.Attrs["1"]
		if caption == "" {
			fmt.Fprintf(&g.buf, "#image(%q)", escapeString(m.Target))
		} else {
			fmt.Fprintf(&g.buf, "#figure(image(%q), caption: [%s])", escapeString(m.Target), escapeText(caption))
		}
		g.emitAnchorLabel(m.Meta)
		g.buf.WriteString("\n\n")
		return nil
	case "include":
		return messages.NewGenError(m.Pos().Line, messages.ErrSemanticPhaseRequired,
			"include::%s[] requires the semantic phase to resolve", m.Target)
	default:
		return messages.NewGenError(m.Pos().Line, messages.ErrUnsupportedMacro,
			"no generation rule for %s:: macro", m.Name)
	}
}
