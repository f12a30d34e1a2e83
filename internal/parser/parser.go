// Package parser implements the LeanDoc recursive-descent parser: it
// consumes the line-token stream produced by internal/token and produces a
// typed document tree (internal/ast), resolving block metadata scoping,
// section nesting, delimited-block containment, list continuations, table
// row structure, and inline markup.
//
// The parser is LL(k) with k≤2 at the decision points that matter; the one
// place unbounded-looking lookahead appears is scanning past a metadata
// run to decide whether it belongs to the upcoming block or to an
// enclosing section — metadata runs are short in practice (an anchor, an
// attribute list, a title), so this stays within the spirit of the bound
// without truncating correctness.
package parser

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/logging"
	"github.com/dbc60/leandoc/internal/messages"
	"github.com/dbc60/leandoc/internal/token"
)

const maxInlineDepth = 32

// Parser holds the token source and the handful of bits of nesting state a
// LeanDoc parse needs. It is used for exactly one Parse call.
type Parser struct {
	lex *token.Lexer
	log logging.Logger
}

// New returns a Parser reading from lex.
func New(lex *token.Lexer, log logging.Logger) *Parser {
	return &Parser{lex: lex, log: log.Named("parser")}
}

// Parse is the package entry point. It NFC-normalizes text (as the
// teacher's reStructuredText parser does before lexing), lexes it, and
// parses the resulting token stream into a *ast.Document.
//
// Parse returns the first *messages.ParseError encountered; the partial
// tree built before the fault is not returned.
func Parse(text string, log logging.Logger) (*ast.Document, error) {
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}
	lex := token.New(log)
	lex.SetInput(text)
	p := New(lex, log)
	return p.parseDocument()
}

func (p *Parser) peek(k int) token.Tok { return p.lex.Peek(k) }
func (p *Parser) take() token.Tok      { return p.lex.Take() }

func pos(t token.Tok) ast.Position { return ast.Position{Line: t.LineNo, Column: 1} }

// parseDocument parses the optional Header followed by the Body, and
// returns the finished tree.
func (p *Parser) parseDocument() (*ast.Document, error) {
	doc := &ast.Document{Position: ast.Position{Line: 1, Column: 1}}

	if t := p.peek(0); t.Kind == token.SECTION && t.Level == 1 {
		p.take()
		title, err := p.scanInline(t.Rest, t.LineNo)
		if err != nil {
			return nil, err
		}
		doc.Title = flattenText(title)
		p.skipHeaderTrailer()
	}

	children, err := p.parseBody(0)
	if err != nil {
		return nil, err
	}
	doc.Children = children
	return doc, nil
}

// skipHeaderTrailer consumes the AuthorLine/RevisionLine that may follow a
// document title: up to two plain TEXT lines before the first blank line.
// LeanDoc has no dedicated token kind for these (spec.md's top-level
// grammar names them but the lexer's token-kind enumeration has no slot
// for them — the same class of gap as BLOCK_ATTRS, see DESIGN.md), so this
// is best-effort and never raises an error: any shape that doesn't match a
// plain TEXT run is left alone for the body parser to handle normally.
func (p *Parser) skipHeaderTrailer() {
	for i := 0; i < 2; i++ {
		if p.peek(0).Kind != token.TEXT {
			return
		}
		p.take()
	}
}

// parseBody implements Body = (Block | BLANK)*, stopping without consuming
// when it meets a SECTION token at or below level (the section-nesting
// "peek and do not consume" contract) or EOF.
func (p *Parser) parseBody(level int) ([]ast.Node, error) {
	var out []ast.Node
	for {
		t := p.peek(0)
		switch t.Kind {
		case token.EOF:
			return out, nil
		case token.BLANK:
			p.take()
			continue
		}

		metaCount, follow := p.scanMetadataRun()
		if follow.Kind == token.SECTION && follow.Level <= level {
			return out, nil
		}

		var meta *ast.Meta
		if metaCount > 0 {
			if follow.Kind == token.EOF || follow.Kind == token.BLANK {
				return out, messages.NewParseError(follow.LineNo, 1, messages.ErrOrphanMetadata,
					"metadata run is not followed by a block")
			}
			m, err := p.consumeMetadataRun(metaCount)
			if err != nil {
				return out, err
			}
			meta = m
		}

		node, err := p.parseContent(level)
		if err != nil {
			return out, err
		}
		attachMeta(node, meta)
		out = append(out, node)
	}
}

// parseContent dispatches on the current (non-metadata) token's kind. When
// called from parseBody, a SECTION token here is known to have level >
// level; the list-continuation and container-block callers do not check.
func (p *Parser) parseContent(level int) (ast.Node, error) {
	t := p.peek(0)
	switch t.Kind {
	case token.SECTION:
		return p.parseSection(t.Level)
	case token.ADMONITION:
		return p.parseAdmonition()
	case token.UL_ITEM, token.OL_ITEM, token.DESC_TERM:
		return p.parseList()
	case token.TABLE_DELIM:
		return p.parseTable()
	case token.DELIM_LISTING, token.DELIM_LITERAL, token.DELIM_QUOTE, token.DELIM_EXAMPLE,
		token.DELIM_SIDEBAR, token.DELIM_OPEN, token.DELIM_COMMENT:
		return p.parseDelimited()
	case token.BLOCK_MACRO:
		return p.parseBlockMacro()
	case token.DIRECTIVE:
		return p.parseDirective()
	case token.THEMATIC:
		p.take()
		return &ast.ThematicBreak{Position: pos(t)}, nil
	case token.PAGEBREAK:
		p.take()
		return &ast.PageBreak{Position: pos(t)}, nil
	case token.LINE_COMMENT:
		p.take()
		return &ast.LineComment{Position: pos(t), Text: t.Rest}, nil
	case token.TEXT:
		return p.parseParagraph()
	case token.TABLE_LINE:
		return nil, messages.NewParseError(t.LineNo, 1, messages.ErrUnexpectedTableLine,
			"table line outside of a table")
	case token.LIST_CONT:
		return nil, messages.NewParseError(t.LineNo, 1, messages.ErrMalformedDirective,
			"unexpected list continuation marker")
	default:
		return nil, messages.NewParseError(t.LineNo, 1, messages.ErrMalformedDirective,
			"unexpected token %s", t.Kind)
	}
}

// attachMeta sets node's Meta field, if it has one, to m. Nodes with no
// Meta field (ThematicBreak, PageBreak, LineComment, Directive) silently
// ignore metadata attached ahead of them — the grammar allows a metadata
// run before any Content production, but only block kinds that carry
// Meta act on it.
func attachMeta(node ast.Node, m *ast.Meta) {
	if m == nil {
		return
	}
	switch v := node.(type) {
	case *ast.Section:
		v.Meta = m
	case *ast.Paragraph:
		v.Meta = m
	case *ast.LiteralParagraph:
		v.Meta = m
	case *ast.AdmonitionParagraph:
		v.Meta = m
	case *ast.DelimitedBlock:
		v.Meta = m
	case *ast.List:
		v.Meta = m
	case *ast.Table:
		v.Meta = m
	case *ast.BlockMacro:
		v.Meta = m
	}
}

// metadataShaped reports whether t is one of the three metadata line
// shapes: BLOCK_ANCHOR, BLOCK_TITLE, or a bracket-shaped TEXT line
// ("[source,python]"), which the lexer never promotes to a dedicated
// BLOCK_ATTRS token (spec.md §9's open question) — the parser recognizes
// it here by shape instead.
func metadataShaped(t token.Tok) bool {
	switch t.Kind {
	case token.BLOCK_ANCHOR, token.BLOCK_TITLE:
		return true
	case token.TEXT:
		return isBlockAttrsShape(t)
	}
	return false
}

func isBlockAttrsShape(t token.Tok) bool {
	s := strings.TrimSpace(t.Raw)
	return len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") && !strings.HasPrefix(s, "[[")
}

// scanMetadataRun peeks (without consuming) through a run of
// metadata-shaped tokens and returns its length and the first token after
// it (EOF if the run runs off the end of input).
func (p *Parser) scanMetadataRun() (count int, follow token.Tok) {
	k := 0
	for metadataShaped(p.peek(k)) {
		k++
	}
	return k, p.peek(k)
}

// consumeMetadataRun takes n metadata-shaped tokens and folds them into a
// *ast.Meta. A later anchor/title line overrides an earlier one of the
// same shape; attribute lines merge into a single Attrs map.
func (p *Parser) consumeMetadataRun(n int) (*ast.Meta, error) {
	m := &ast.Meta{}
	for i := 0; i < n; i++ {
		t := p.take()
		switch t.Kind {
		case token.BLOCK_ANCHOR:
			id, text := parseAnchorBody(t.Rest)
			m.AnchorID = id
			m.AnchorText = text
		case token.BLOCK_TITLE:
			m.Title = t.Rest
		case token.TEXT:
			attrs, err := parseAttrList(strings.TrimSpace(t.Raw), t.LineNo)
			if err != nil {
				return nil, err
			}
			if m.Attrs == nil {
				m.Attrs = map[string]string{}
			}
			for k, v := range attrs {
				m.Attrs[k] = v
			}
		}
	}
	m.Roleset()
	return m, nil
}

// parseAnchorBody parses "[[id]]" or "[[id,text]]" into id and text.
func parseAnchorBody(s string) (id, text string) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	if i := strings.Index(inner, ","); i >= 0 {
		return inner[:i], inner[i+1:]
	}
	return inner, ""
}

// parseAttrList parses a "[k=v, .role, positional]" bracketed attribute
// line into a string map. Positional (no '=') entries are stored under
// their 1-based ordinal as the key; role entries (leading '.') are stored
// verbatim so Meta.Roleset can find them by their leading dot.
func parseAttrList(s string, line int) (map[string]string, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	attrs := map[string]string{}
	if strings.TrimSpace(inner) == "" {
		return attrs, nil
	}
	pos := 0
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.Index(part, "="); i > 0 {
			key := strings.TrimSpace(part[:i])
			val := strings.Trim(strings.TrimSpace(part[i+1:]), `"`)
			attrs[key] = val
			continue
		}
		if strings.HasPrefix(part, ".") {
			attrs[part] = ""
			continue
		}
		pos++
		attrs[strconv.Itoa(pos)] = part
	}
	return attrs, nil
}

// flattenText concatenates the Value of every *ast.Text in nodes,
// discarding any inline markup — used for the document title, which spec.md
// carries as a plain Document.Title string rather than a node list.
func flattenText(nodes []ast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		if txt, ok := n.(*ast.Text); ok {
			b.WriteString(txt.Value)
		}
	}
	return b.String()
}
