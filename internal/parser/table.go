package parser

import (
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/messages"
	"github.com/dbc60/leandoc/internal/token"
)

// tableCell is one raw cell pulled from some TABLE_LINE, kept alongside the
// line it came from so a later fault still reports a useful position.
type tableCell struct {
	raw  string
	line int
}

// parseTable consumes a "|=== ... |===" block. Cells are not bound one row
// per TABLE_LINE: the whole block's cells (split on unescaped '|', "\|"
// being a literal pipe) are accumulated across every TABLE_LINE first, the
// first row's cell count fixes the table's Width, and the full cell stream
// is then re-flowed into Width-wide rows. A total cell count that is not a
// multiple of Width fails with ErrTableRowWidth.
func (p *Parser) parseTable() (ast.Node, error) {
	open := p.take()
	table := &ast.Table{Position: pos(open)}

	var cells []tableCell
	for {
		t := p.peek(0)
		switch t.Kind {
		case token.TABLE_DELIM:
			p.take()
			return p.reflowTableRows(table, cells)
		case token.EOF:
			return table, messages.NewParseError(t.LineNo, 1, messages.ErrUnclosedFence,
				"table missing closing |===")
		case token.BLANK:
			p.take()
			continue
		case token.TABLE_LINE:
			p.take()
		default:
			return table, messages.NewParseError(t.LineNo, 1, messages.ErrUnexpectedTableLine,
				"expected table row, found %s", t.Kind)
		}

		lineCells := splitTableCells(t.Rest)
		if table.Width == 0 {
			table.Width = len(lineCells)
		}
		for _, raw := range lineCells {
			cells = append(cells, tableCell{raw: raw, line: t.LineNo})
		}
	}
}

// reflowTableRows groups the accumulated cell stream into Width-wide rows.
func (p *Parser) reflowTableRows(table *ast.Table, cells []tableCell) (ast.Node, error) {
	if table.Width == 0 {
		return table, nil
	}
	if len(cells)%table.Width != 0 {
		last := cells[len(cells)-1]
		return table, messages.NewParseError(last.line, 1, messages.ErrTableRowWidth,
			"table has %d cells, not a multiple of its width %d", len(cells), table.Width)
	}

	for i := 0; i < len(cells); i += table.Width {
		rowCells := cells[i : i+table.Width]
		row := &ast.TableRow{Position: posAt(rowCells[0].line)}
		for _, c := range rowCells {
			align, body := extractCellAlign(c.raw)
			children, err := p.scanInline(strings.TrimSpace(body), c.line)
			if err != nil {
				return table, err
			}
			row.Cells = append(row.Cells, &ast.TableCell{
				Position: posAt(c.line), ColSpan: 1, Align: align, Children: children,
			})
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// splitTableCells splits a "|a |b\|c |d" row on unescaped '|', dropping
// the empty segment before the row's leading pipe.
func splitTableCells(raw string) []string {
	var cells []string
	var cur strings.Builder
	i := 0
	for i < len(raw) {
		switch {
		case raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == '|':
			cur.WriteByte('|')
			i += 2
		case raw[i] == '|':
			cells = append(cells, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteByte(raw[i])
			i++
		}
	}
	cells = append(cells, cur.String())
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	return cells
}

// extractCellAlign recognizes a leading alignment specifier ('<', '^', '>')
// directly before a cell's content, per spec's cell-spec surface (see
// DESIGN.md: recognized here, not yet applied by the generator).
func extractCellAlign(s string) (rune, string) {
	t := strings.TrimLeft(s, " \t")
	if len(t) > 0 {
		switch t[0] {
		case '<', '^', '>':
			return rune(t[0]), t[1:]
		}
	}
	return 0, s
}
