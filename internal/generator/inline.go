package generator

import (
	"fmt"
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/messages"
)

// emitInline renders a run of inline nodes to a Typst markup string.
func (g *generator) emitInline(nodes []ast.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		s, err := g.emitInlineNode(n)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (g *generator) emitInlineNode(n ast.Node) (string, error) {
	switch v := n.(type) {
	case *ast.Text:
		return escapeText(v.Value), nil
	case *ast.Space:
		return v.Value, nil
	case *ast.LineBreak:
		return "#linebreak()\n", nil
	case *ast.Emph:
		return g.emitEmph(v)
	case *ast.Superscript:
		inner, err := g.emitInline(v.Children)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#super[%s]", inner), nil
	case *ast.Subscript:
		inner, err := g.emitInline(v.Children)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#sub[%s]", inner), nil
	case *ast.Link:
		inner, err := g.emitInline(v.Children)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#link(%q)[%s]", v.Target, inner), nil
	case *ast.ImageInline:
		return fmt.Sprintf("#image(%q, alt: %q)", escapeString(v.Target), v.Alt), nil
	case *ast.AnchorInline:
		if v.Text != "" {
			return fmt.Sprintf("%s<%s>", escapeText(v.Text), v.ID), nil
		}
		return fmt.Sprintf("<%s>", v.ID), nil
	case *ast.Xref:
		if v.Text != "" {
			return fmt.Sprintf("#link(<%s>)[%s]", v.Target, escapeText(v.Text)), nil
		}
		return fmt.Sprintf("@%s", v.Target), nil
	case *ast.AttrRef:
		// Attribute references are left as placeholders: resolving {name}
		// against a defined attribute set is the semantic phase's job, not
		// this tree-walker's.
		return fmt.Sprintf("{%s}", v.Name), nil
	case *ast.InlineMacro:
		return g.emitInlineMacro(v)
	case *ast.PassthroughInline:
		if !g.opts.AllowRawPassthrough {
			return "", messages.NewGenError(v.Pos().Line, messages.ErrRawPassthroughDisabled,
				"passthrough text requires raw passthrough to be enabled")
		}
		return v.Text, nil
	default:
		return "", messages.NewGenError(n.Pos().Line, messages.ErrUnsupportedMacro,
			"no generation rule for %s", n.NodeKind())
	}
}

// emitInlineMacro implements the three named inline-macro generation rules:
// footnote, the keyboard/button/menu family, and stem. Any other name has
// no generation rule.
func (g *generator) emitInlineMacro(v *ast.InlineMacro) (string, error) {
	text := v.Args
	if text == "" {
		text = v.Target
	}
	switch v.Name {
	case "footnote":
		return fmt.Sprintf("#footnote[%s]", escapeText(text)), nil
	case "kbd", "btn", "menu":
		return fmt.Sprintf("#smallcaps[%s]", escapeText(text)), nil
	case "stem":
		if !g.opts.AllowRawPassthrough {
			return "", messages.NewGenError(v.Pos().Line, messages.ErrRawPassthroughDisabled,
				"stem macro requires raw passthrough to be enabled")
		}
		return fmt.Sprintf("$%s$", text), nil
	default:
		return "", messages.NewGenError(v.Pos().Line, messages.ErrUnsupportedMacro,
			"no generation rule for %s: inline macro", v.Name)
	}
}

func (g *generator) emitEmph(e *ast.Emph) (string, error) {
	if e.Style == ast.EmphMono {
		// Mono content is stored as a single raw Text child; emit verbatim
		// inside a Typst raw span rather than escaping it as prose.
		inner := ""
		if len(e.Children) == 1 {
			if t, ok := e.Children[0].(*ast.Text); ok {
				inner = t.Value
			}
		}
		return fmt.Sprintf("`%s`", inner), nil
	}

	inner, err := g.emitInline(e.Children)
	if err != nil {
		return "", err
	}
	switch e.Style {
	case ast.EmphBold:
		return fmt.Sprintf("*%s*", inner), nil
	case ast.EmphItalic:
		return fmt.Sprintf("_%s_", inner), nil
	case ast.EmphHighlight:
		return fmt.Sprintf("#highlight[%s]", inner), nil
	default:
		return inner, nil
	}
}
