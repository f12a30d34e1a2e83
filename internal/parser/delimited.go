package parser

import (
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/messages"
	"github.com/dbc60/leandoc/internal/token"
)

var delimKindOf = map[token.Kind]ast.DelimKind{
	token.DELIM_LISTING: ast.DelimListing,
	token.DELIM_LITERAL: ast.DelimLiteral,
	token.DELIM_QUOTE:   ast.DelimQuote,
	token.DELIM_EXAMPLE: ast.DelimExample,
	token.DELIM_SIDEBAR: ast.DelimSidebar,
	token.DELIM_OPEN:    ast.DelimOpen,
	token.DELIM_COMMENT: ast.DelimComment,
}

// parseDelimited consumes a fenced block. Raw kinds (listing, literal,
// comment) accumulate their body verbatim by original line text, closing
// on the next token whose Kind matches the opening fence regardless of
// how that line would otherwise classify; container kinds (quote,
// example, sidebar, open) recursively parse their body as ordinary Body
// content, closing the same way.
func (p *Parser) parseDelimited() (ast.Node, error) {
	t := p.take()
	dk := delimKindOf[t.Kind]
	block := &ast.DelimitedBlock{Position: pos(t), Delim: dk}

	if dk.Raw() {
		var lines []string
		for {
			nt := p.peek(0)
			if nt.Kind == t.Kind {
				p.take()
				break
			}
			if nt.Kind == token.EOF {
				return block, messages.NewParseError(nt.LineNo, 1, messages.ErrUnclosedFence,
					"missing closing fence for %s", t.Kind)
			}
			p.take()
			lines = append(lines, nt.Raw)
		}
		block.Text = strings.Join(lines, "\n")
		return block, nil
	}

	children, err := p.parseDelimitedBody(t.Kind)
	block.Children = children
	return block, err
}

// parseDelimitedBody parses Body content up to a token matching openKind,
// the container-block analogue of parseBody (which instead terminates on
// section level).
func (p *Parser) parseDelimitedBody(openKind token.Kind) ([]ast.Node, error) {
	var out []ast.Node
	for {
		t := p.peek(0)
		switch t.Kind {
		case openKind:
			p.take()
			return out, nil
		case token.EOF:
			return out, messages.NewParseError(t.LineNo, 1, messages.ErrUnclosedFence,
				"missing closing fence for %s", openKind)
		case token.BLANK:
			p.take()
			continue
		}

		metaCount, follow := p.scanMetadataRun()
		if follow.Kind == openKind || follow.Kind == token.EOF || follow.Kind == token.BLANK {
			if metaCount > 0 {
				return out, messages.NewParseError(follow.LineNo, 1, messages.ErrOrphanMetadata,
					"metadata run is not followed by a block")
			}
		}

		var meta *ast.Meta
		if metaCount > 0 {
			m, err := p.consumeMetadataRun(metaCount)
			if err != nil {
				return out, err
			}
			meta = m
		}

		node, err := p.parseContent(0)
		if err != nil {
			return out, err
		}
		attachMeta(node, meta)
		out = append(out, node)
	}
}
