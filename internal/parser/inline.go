package parser

import (
	"strings"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/messages"
)

// hardBreak is the sentinel byte joinParagraphLines substitutes for a
// trailing " +" on a non-final source line. It can never occur in real
// LeanDoc source (lines are plain text), so scanInline can recognize it
// unambiguously as a request to emit an *ast.LineBreak.
const hardBreak = 0x00

// scanInlineLines joins a run of already-trimmed source lines the way a
// normal paragraph or admonition body does — single spaces between lines,
// except that a line ending in " +" (other than the last) becomes a hard
// line break — and scans the result for inline markup.
func (p *Parser) scanInlineLines(lines []string, line int) ([]ast.Node, error) {
	return p.scanInline(joinParagraphLines(lines), line)
}

func joinParagraphLines(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		if i < len(lines)-1 && strings.HasSuffix(l, " +") {
			b.WriteString(strings.TrimSuffix(l, " +"))
			b.WriteByte(hardBreak)
			continue
		}
		b.WriteString(l)
		if i < len(lines)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// scanInline is the inline scanner's entry point: a single joined string of
// source text, recognized left to right in strict priority order —
// attribute references, cross-references, inline anchors, URL autolinks,
// inline macros, emphasis/superscript/subscript pairs, passthrough
// fences — with anything left over accumulated as plain Text.
func (p *Parser) scanInline(s string, line int) ([]ast.Node, error) {
	return p.scanInlineDepth(s, line, 0)
}

func posAt(line int) ast.Position { return ast.Position{Line: line, Column: 1} }

func (p *Parser) scanInlineDepth(s string, line, depth int) ([]ast.Node, error) {
	if depth > maxInlineDepth {
		return nil, messages.NewParseError(line, 1, messages.ErrRecursionDepth,
			"inline markup nested too deeply")
	}

	var out []ast.Node
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, &ast.Text{Position: posAt(line), Value: buf.String()})
			buf.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if s[i] == hardBreak {
			flush()
			out = append(out, &ast.LineBreak{Position: posAt(line)})
			i++
			continue
		}

		if node, n, ok := matchAttrRef(s[i:], line); ok {
			flush()
			out = append(out, node)
			i += n
			continue
		}
		if node, n, ok := matchXref(s[i:], line); ok {
			flush()
			out = append(out, node)
			i += n
			continue
		}
		if node, n, ok := matchAnchorInline(s[i:], line); ok {
			flush()
			out = append(out, node)
			i += n
			continue
		}
		if node, n, ok := matchAutolink(s[i:], line); ok {
			flush()
			out = append(out, node)
			i += n
			continue
		}
		if node, n, err, matched := p.matchInlineMacro(s[i:], line, depth); matched {
			if err != nil {
				return nil, err
			}
			flush()
			out = append(out, node)
			i += n
			continue
		}
		if node, n, ok := matchPassthrough(s[i:], line); ok {
			flush()
			out = append(out, node)
			i += n
			continue
		}
		if node, n, err, matched := p.matchEmphasis(s[i:], line, depth); matched {
			if err != nil {
				return nil, err
			}
			flush()
			out = append(out, node)
			i += n
			continue
		}
		if node, n, err, matched := p.matchSupSub(s[i:], line, depth); matched {
			if err != nil {
				return nil, err
			}
			flush()
			out = append(out, node)
			i += n
			continue
		}

		buf.WriteByte(s[i])
		i++
	}
	flush()
	return out, nil
}

func isAlpha(c byte) bool         { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlphaNum(c byte) bool      { return isAlpha(c) || (c >= '0' && c <= '9') }
func isMacroNameByte(c byte) bool { return isAlphaNum(c) || c == '-' || c == '_' }

func splitFirstComma(s string) (a, b string) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// matchAttrRef recognizes "{name}".
func matchAttrRef(s string, line int) (ast.Node, int, bool) {
	if len(s) == 0 || s[0] != '{' {
		return nil, 0, false
	}
	j := strings.IndexByte(s[1:], '}')
	if j < 0 {
		return nil, 0, false
	}
	name := s[1 : 1+j]
	if !isAttrName(name) {
		return nil, 0, false
	}
	return &ast.AttrRef{Position: posAt(line), Name: name}, 1 + j + 1, true
}

func isAttrName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isAlphaNum(c) && c != '-' && c != '_' {
			return false
		}
	}
	return true
}

// matchXref recognizes "<<target[,text]>>".
func matchXref(s string, line int) (ast.Node, int, bool) {
	if !strings.HasPrefix(s, "<<") {
		return nil, 0, false
	}
	end := strings.Index(s, ">>")
	if end < 0 {
		return nil, 0, false
	}
	inner := s[2:end]
	target, text := splitFirstComma(inner)
	return &ast.Xref{Position: posAt(line), Target: target, Text: text}, end + 2, true
}

// matchAnchorInline recognizes "[[id[,text]]]".
func matchAnchorInline(s string, line int) (ast.Node, int, bool) {
	if !strings.HasPrefix(s, "[[") {
		return nil, 0, false
	}
	end := strings.Index(s, "]]")
	if end < 0 {
		return nil, 0, false
	}
	inner := s[2:end]
	id, text := splitFirstComma(inner)
	return &ast.AnchorInline{Position: posAt(line), ID: id, Text: text}, end + 2, true
}

var autolinkSchemes = []string{"https://", "http://", "ftp://", "irc://", "mailto:"}

func isURLBoundary(c byte) bool {
	switch c {
	case ' ', '\t', hardBreak, '<', '>', '[', ']', '{', '}':
		return true
	}
	return false
}

// matchAutolink recognizes a bare "scheme://..." or "mailto:..." URL,
// consumed up to the next whitespace or bracket-shaped boundary.
func matchAutolink(s string, line int) (ast.Node, int, bool) {
	for _, scheme := range autolinkSchemes {
		if !strings.HasPrefix(s, scheme) {
			continue
		}
		j := len(scheme)
		for j < len(s) && !isURLBoundary(s[j]) {
			j++
		}
		if j == len(scheme) {
			continue
		}
		url := s[:j]
		return &ast.Link{Position: posAt(line), Target: url, Children: []ast.Node{&ast.Text{Position: posAt(line), Value: url}}}, j, true
	}
	return nil, 0, false
}

// matchInlineMacro recognizes "name:target[args]". "link" and "image"
// produce their dedicated node kinds; every other name produces a generic
// InlineMacro. URL autolinks are tried first by scanInlineDepth's priority
// order, so a "mailto:"/"http://" prefix never reaches here.
func (p *Parser) matchInlineMacro(s string, line, depth int) (ast.Node, int, error, bool) {
	i := 0
	for i < len(s) && isMacroNameByte(s[i]) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != ':' {
		return nil, 0, nil, false
	}
	name := s[:i]
	k := i + 1
	for k < len(s) && s[k] != '[' {
		k++
	}
	if k >= len(s) {
		return nil, 0, nil, false
	}
	target := s[i+1 : k]
	end := strings.IndexByte(s[k:], ']')
	if end < 0 {
		return nil, 0, nil, false
	}
	args := s[k+1 : k+end]
	n := k + end + 1

	switch name {
	case "link":
		text := args
		if text == "" {
			text = target
		}
		children, err := p.scanInlineDepth(text, line, depth+1)
		if err != nil {
			return nil, 0, err, true
		}
		return &ast.Link{Position: posAt(line), Target: target, Children: children}, n, nil, true
	case "image":
		return &ast.ImageInline{Position: posAt(line), Target: target, Alt: args}, n, nil, true
	default:
		return &ast.InlineMacro{Position: posAt(line), Name: name, Target: target, Args: args}, n, nil, true
	}
}

// matchPassthrough recognizes "+++...+++", "++...++", or "+...+", trying
// the longest fence first so a genuine "+++" isn't mistaken for "++"
// followed by a literal "+".
func matchPassthrough(s string, line int) (ast.Node, int, bool) {
	for _, marker := range []string{"+++", "++", "+"} {
		if !strings.HasPrefix(s, marker) {
			continue
		}
		rest := s[len(marker):]
		idx := strings.Index(rest, marker)
		if idx < 0 {
			continue
		}
		return &ast.PassthroughInline{Position: posAt(line), Text: rest[:idx]}, len(marker) + idx + len(marker), true
	}
	return nil, 0, false
}

type emphMarker struct {
	open          string
	style         ast.EmphStyle
	unconstrained bool
	mono          bool
}

var emphMarkers = []emphMarker{
	{"**", ast.EmphBold, true, false},
	{"*", ast.EmphBold, false, false},
	{"__", ast.EmphItalic, true, false},
	{"_", ast.EmphItalic, false, false},
	{"``", ast.EmphMono, true, true},
	{"`", ast.EmphMono, false, true},
}

// matchDelimited finds the next occurrence of open after its own opening
// instance, requiring non-empty inner content.
func matchDelimited(s, open string) (inner string, n int, ok bool) {
	if !strings.HasPrefix(s, open) {
		return "", 0, false
	}
	rest := s[len(open):]
	idx := strings.Index(rest, open)
	if idx <= 0 {
		return "", 0, false
	}
	return rest[:idx], len(open) + idx + len(open), true
}

// matchEmphasis recognizes bold/italic/mono ("**"/"*", "__"/"_", "``"/"`")
// and highlight ("#"). Mono content is kept as raw Text; every other style
// recurses into the inline scanner.
func (p *Parser) matchEmphasis(s string, line, depth int) (ast.Node, int, error, bool) {
	for _, m := range emphMarkers {
		inner, n, ok := matchDelimited(s, m.open)
		if !ok {
			continue
		}
		if m.mono {
			return &ast.Emph{Position: posAt(line), Style: m.style, Unconstrained: m.unconstrained,
				Children: []ast.Node{&ast.Text{Position: posAt(line), Value: inner}}}, n, nil, true
		}
		children, err := p.scanInlineDepth(inner, line, depth+1)
		if err != nil {
			return nil, 0, err, true
		}
		return &ast.Emph{Position: posAt(line), Style: m.style, Unconstrained: m.unconstrained, Children: children}, n, nil, true
	}
	if inner, n, ok := matchDelimited(s, "#"); ok {
		children, err := p.scanInlineDepth(inner, line, depth+1)
		if err != nil {
			return nil, 0, err, true
		}
		return &ast.Emph{Position: posAt(line), Style: ast.EmphHighlight, Children: children}, n, nil, true
	}
	return nil, 0, nil, false
}

// matchSupSub recognizes "^...^" (superscript) and "~...~" (subscript).
func (p *Parser) matchSupSub(s string, line, depth int) (ast.Node, int, error, bool) {
	if inner, n, ok := matchDelimited(s, "^"); ok {
		children, err := p.scanInlineDepth(inner, line, depth+1)
		if err != nil {
			return nil, 0, err, true
		}
		return &ast.Superscript{Position: posAt(line), Children: children}, n, nil, true
	}
	if inner, n, ok := matchDelimited(s, "~"); ok {
		children, err := p.scanInlineDepth(inner, line, depth+1)
		if err != nil {
			return nil, 0, err, true
		}
		return &ast.Subscript{Position: posAt(line), Children: children}, n, nil, true
	}
	return nil, 0, nil, false
}
