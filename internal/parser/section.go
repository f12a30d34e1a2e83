package parser

import "github.com/dbc60/leandoc/internal/ast"

// parseSection consumes a SECTION token at level and recursively parses its
// body: every subsequent block whose section level is strictly greater
// than level nests underneath it, implementing the grammar's
// "parseSection(level=L) recurses while next section level > L" rule.
func (p *Parser) parseSection(level int) (ast.Node, error) {
	t := p.take()
	title, err := p.scanInline(t.Rest, t.LineNo)
	if err != nil {
		return nil, err
	}
	sec := &ast.Section{Position: pos(t), Level: level, Title: title}

	children, err := p.parseBody(level)
	if err != nil {
		return sec, err
	}
	sec.Children = children
	return sec, nil
}
