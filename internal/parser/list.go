package parser

import (
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/token"
)

// parseList consumes a run of sibling list items of the same type and
// marker level that begins at the current token, nesting deeper-level
// items and "+"-continuation blocks as it goes.
func (p *Parser) parseList() (ast.Node, error) {
	first := p.peek(0)
	listType, level := listStartOf(first)

	list := &ast.List{Position: pos(first), Type: listType, Level: level}
	for {
		_, lvl, ok := listStartMatch(p.peek(0), listType)
		if !ok || lvl != level {
			break
		}
		item, err := p.parseListItem(listType, level)
		if err != nil {
			return list, err
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

func listStartOf(t token.Tok) (ast.ListType, int) {
	switch t.Kind {
	case token.OL_ITEM:
		return ast.ListOrdered, t.Level
	case token.DESC_TERM:
		return ast.ListDescription, t.Level
	default:
		return ast.ListUnordered, t.Level
	}
}

// listStartMatch reports whether t opens an item of listType, and at what
// level.
func listStartMatch(t token.Tok, listType ast.ListType) (token.Tok, int, bool) {
	switch {
	case listType == ast.ListUnordered && t.Kind == token.UL_ITEM:
		return t, t.Level, true
	case listType == ast.ListOrdered && t.Kind == token.OL_ITEM:
		return t, t.Level, true
	case listType == ast.ListDescription && t.Kind == token.DESC_TERM:
		return t, t.Level, true
	}
	return token.Tok{}, 0, false
}

// listStartsDeeper reports whether t opens any list item at a level
// strictly greater than level, regardless of type — nesting may switch
// list kinds (an ordered sub-list under an unordered parent, etc.).
func listStartsDeeper(t token.Tok, level int) bool {
	switch t.Kind {
	case token.UL_ITEM, token.OL_ITEM, token.DESC_TERM:
		return t.Level > level
	}
	return false
}

var checklistMarkers = map[string]string{"[*] ": "*", "[x] ": "x", "[X] ": "x", "[ ] ": " "}

func extractCheck(rest string) (check, remainder string) {
	for prefix, mark := range checklistMarkers {
		if strings.HasPrefix(rest, prefix) {
			return mark, rest[len(prefix):]
		}
	}
	return "", rest
}

func (p *Parser) parseListItem(listType ast.ListType, level int) (*ast.ListItem, error) {
	t := p.take()
	item := &ast.ListItem{Position: pos(t)}

	if listType == ast.ListDescription {
		term, err := p.scanInline(strings.TrimSpace(t.Rest), t.LineNo)
		if err != nil {
			return nil, err
		}
		item.Term = term
	} else {
		check, rest := extractCheck(strings.TrimSpace(t.Rest))
		item.Check = check
		lines := append([]string{rest}, p.takeContiguousText()...)
		children, err := p.scanInlineLines(lines, t.LineNo)
		if err != nil {
			return nil, err
		}
		item.Children = children
	}

	if listType == ast.ListDescription {
		if lines := p.takeContiguousText(); len(lines) > 0 {
			children, err := p.scanInlineLines(lines, t.LineNo)
			if err != nil {
				return nil, err
			}
			item.Children = children
		}
	}

	for {
		k := p.blanksBeforeContinuation()
		if k < 0 {
			break
		}
		for i := 0; i < k; i++ {
			p.take()
		}
		p.take() // LIST_CONT "+"
		node, err := p.parseContent(level)
		if err != nil {
			return item, err
		}
		item.Children = append(item.Children, node)
	}

	if listStartsDeeper(p.peek(0), level) {
		sub, err := p.parseList()
		if err != nil {
			return item, err
		}
		item.Children = append(item.Children, sub)
	}

	return item, nil
}

// takeContiguousText consumes TEXT lines while they run uninterrupted by a
// blank line, returning them trimmed.
func (p *Parser) takeContiguousText() []string {
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
	return lines
}

// blanksBeforeContinuation reports how many BLANK tokens precede a
// LIST_CONT ("+") marker, or -1 if no continuation follows here.
func (p *Parser) blanksBeforeContinuation() int {
	k := 0
	for p.peek(k).Kind == token.BLANK {
		k++
	}
	if p.peek(k).Kind == token.LIST_CONT {
		return k
	}
	return -1
}
