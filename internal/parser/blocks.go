package parser

import (
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/token"
)

// parseParagraph consumes a run of contiguous TEXT tokens. If the first
// line's raw text begins with whitespace the run is a LiteralParagraph,
// preserved verbatim; otherwise it is a normal Paragraph whose joined text
// is fed to the inline scanner. Either run ends as soon as the lexer
// reports a non-TEXT token, since only TEXT lines ever belong to a
// paragraph.
func (p *Parser) parseParagraph() (ast.Node, error) {
	first := p.peek(0)
	if len(first.Raw) > 0 && isSpaceByte(first.Raw[0]) {
		return p.parseLiteralParagraph()
	}
	return p.parseNormalParagraph()
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' }

func (p *Parser) parseLiteralParagraph() (ast.Node, error) {
	first := p.peek(0)
	var lines []string
	for {
		t := p.peek(0)
		if t.Kind != token.TEXT || len(t.Raw) == 0 || !isSpaceByte(t.Raw[0]) {
			break
		}
		p.take()
		if len(t.Raw) > 0 && t.Raw[0] == ' ' {
			lines = append(lines, t.Raw[1:])
		} else {
			lines = append(lines, t.Raw)
		}
	}
	return &ast.LiteralParagraph{Position: pos(first), Text: strings.Join(lines, "\n")}, nil
}

func (p *Parser) parseNormalParagraph() (ast.Node, error) {
	first := p.peek(0)
	var lines []string
	for {
		t := p.peek(0)
		if t.Kind != token.TEXT {
			break
		}
		trimmed := strings.TrimSpace(t.Raw)
		if trimmed == "" {
			break
		}
		p.take()
		lines = append(lines, trimmed)
	}
	children, err := p.scanInlineLines(lines, first.LineNo)
	if err != nil {
		return nil, err
	}
	return &ast.Paragraph{Position: pos(first), Children: children}, nil
}

// parseAdmonition consumes an ADMONITION token and the paragraph-shaped
// lines that follow it into an AdmonitionParagraph. The admonition's own
// line carries its first line of body text in Rest.
func (p *Parser) parseAdmonition() (ast.Node, error) {
	t := p.take()
	lines := []string{strings.TrimSpace(t.Rest)}
	for {
		nt := p.peek(0)
		if nt.Kind != token.TEXT {
			break
		}
		trimmed := strings.TrimSpace(nt.Raw)
		if trimmed == "" {
			break
		}
		p.take()
		lines = append(lines, trimmed)
	}
	children, err := p.scanInlineLines(lines, t.LineNo)
	if err != nil {
		return nil, err
	}
	return &ast.AdmonitionParagraph{Position: pos(t), Label: t.Head, Children: children}, nil
}

// parseBlockMacro consumes a "name::target[attrs]" BLOCK_MACRO line. The
// lexer has already split it into Head (name) and Rest (target plus the
// bracketed attribute list); this only needs to separate Rest's target
// from its attributes.
func (p *Parser) parseBlockMacro() (ast.Node, error) {
	t := p.take()
	target, attrList := splitTarget(t.Rest)
	attrs, err := parseAttrList(attrList, t.LineNo)
	if err != nil {
		return nil, err
	}
	return &ast.BlockMacro{Position: pos(t), Name: t.Head, Target: target, Attrs: attrs}, nil
}

func splitTarget(rest string) (target, attrList string) {
	open := strings.IndexByte(rest, '[')
	if open < 0 {
		return rest, "[]"
	}
	return rest[:open], rest[open:]
}

// parseDirective consumes an ifdef::/ifndef::/endif:: DIRECTIVE token. The
// lexer has already split it into Head (name) and Rest (the bracketed or
// bare target).
func (p *Parser) parseDirective() (ast.Node, error) {
	t := p.take()
	return &ast.Directive{Position: pos(t), Name: t.Head, Target: strings.Trim(t.Rest, "[]")}, nil
}
