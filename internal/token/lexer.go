package token

import (
	"strings"

	"github.com/dbc60/leandoc/internal/logging"
)

var admonitionLabels = []string{"NOTE", "TIP", "IMPORTANT", "CAUTION", "WARNING"}

var thematicStrings = map[string]bool{
	`'''`: true,
	`---`: true,
	`***`: true,
}

// Lexer is the line lexer's public interface: SetInput, Peek(k), Take,
// AtEnd. Lexing is synchronous and total — the token vector is built
// eagerly on SetInput since classification needs no cross-line state and
// the whole line-token vector fits comfortably in memory for any realistic
// document.
type Lexer struct {
	toks []Tok
	pos  int
	log  logging.Logger
}

// New returns a Lexer with no input loaded. Call SetInput before Peek/Take.
func New(log logging.Logger) *Lexer {
	return &Lexer{log: log.Named("lexer")}
}

// SetInput splits text into physical lines (honoring \n, \r\n, and lone
// \r line endings), classifies each, and appends a synthetic EOF token.
func (l *Lexer) SetInput(text string) {
	lines := splitLines(text)
	l.toks = make([]Tok, 0, len(lines)+1)
	for i, raw := range lines {
		l.toks = append(l.toks, classify(raw, i+1))
	}
	l.toks = append(l.toks, Tok{Kind: EOF, LineNo: len(lines) + 1})
	l.pos = 0
	l.log.Msgr("lexed input", "lines", len(lines))
}

// AtEnd reports whether the lexer has no more non-EOF tokens to Take.
func (l *Lexer) AtEnd() bool {
	return l.pos >= len(l.toks)-1
}

// Peek returns the token k positions ahead of the next Take without
// consuming it. Peek(0) returns the same token the next Take would return.
// Peeking past the end of input returns the synthetic EOF token.
func (l *Lexer) Peek(k int) Tok {
	idx := l.pos + k
	if idx < 0 || idx >= len(l.toks) {
		return eofTok
	}
	return l.toks[idx]
}

// Take consumes and returns the next token.
func (l *Lexer) Take() Tok {
	t := l.Peek(0)
	if l.pos < len(l.toks) {
		l.pos++
	}
	return t
}

// splitLines splits text on \n, \r\n, or \r without losing a trailing
// unterminated line. An empty text yields one empty line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	n := len(text)
	for i := 0; i < n; i++ {
		c := text[i]
		if c == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		} else if c == '\r' {
			lines = append(lines, text[start:i])
			if i+1 < n && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < n || n == 0 {
		lines = append(lines, text[start:])
	}
	return lines
}

// classify maps a single raw line to a Tok. Predicates are tested in the
// exact order specified by the grammar; the first match wins.
func classify(raw string, lineNo int) Tok {
	s := strings.TrimSpace(raw)
	base := Tok{LineNo: lineNo, Raw: raw}

	switch {
	case s == "":
		base.Kind = BLANK
		return base

	case strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]"):
		base.Kind = BLOCK_ANCHOR
		base.Rest = s
		return base

	case len(s) >= 2 && s[0] == '.' && !isSpaceByte(s[1]):
		// Per the grammar this also swallows multi-dot OL_ITEM markers
		// whose second character isn't a space (e.g. ".. nested"); only
		// a single-dot marker (". item") reaches the OL_ITEM check below.
		// See DESIGN.md for the surface consequence.
		base.Kind = BLOCK_TITLE
		base.Rest = s[1:]
		return base

	case hasDirectivePrefix(s):
		head, rest := splitDoubleColon(s)
		base.Kind = DIRECTIVE
		base.Head = head
		base.Rest = rest
		return base

	case strings.HasPrefix(s, "include::"):
		head, rest := splitDoubleColon(s)
		base.Kind = BLOCK_MACRO
		base.Head = head
		base.Rest = rest
		return base

	case hasMacroShape(s):
		head, rest := splitDoubleColon(s)
		base.Kind = BLOCK_MACRO
		base.Head = head
		base.Rest = rest
		return base

	case strings.HasPrefix(s, "//"):
		base.Kind = LINE_COMMENT
		base.Rest = s[2:]
		return base

	case thematicStrings[s]:
		base.Kind = THEMATIC
		return base

	case strings.HasPrefix(s, "<<<"):
		base.Kind = PAGEBREAK
		return base
	}

	if level, rest, ok := runMarker(s, '='); ok {
		base.Kind = SECTION
		base.Level = level
		base.Rest = rest
		return base
	}
	if level, rest, ok := runMarker(s, '*'); ok {
		base.Kind = UL_ITEM
		base.Level = level
		base.Rest = rest
		return base
	}
	if level, rest, ok := runMarker(s, '.'); ok {
		base.Kind = OL_ITEM
		base.Level = level
		base.Rest = rest
		return base
	}

	switch {
	case s == "+":
		base.Kind = LIST_CONT
		return base
	}

	if level, term, ok := descTerm(s); ok {
		base.Kind = DESC_TERM
		base.Level = level
		base.Rest = term
		return base
	}

	switch {
	case s == "|===":
		base.Kind = TABLE_DELIM
		return base

	case strings.HasPrefix(s, "|"):
		base.Kind = TABLE_LINE
		base.Rest = raw
		return base
	}

	if kind, ok := delimKinds[s]; ok {
		base.Kind = kind
		return base
	}

	if label, rest, ok := admonition(s); ok {
		base.Kind = ADMONITION
		base.Head = label
		base.Rest = rest
		return base
	}

	base.Kind = TEXT
	base.Rest = raw
	return base
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' }

// runMarker recognizes a 1-6 run of marker followed by a single space, as
// used by SECTION ('='), UL_ITEM ('*'), and OL_ITEM ('.').
func runMarker(s string, marker byte) (level int, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] == marker {
		i++
	}
	if i == 0 || i > 6 {
		return 0, "", false
	}
	if i >= len(s) || s[i] != ' ' {
		return 0, "", false
	}
	return i, s[i+1:], true
}

func hasDirectivePrefix(s string) bool {
	return strings.HasPrefix(s, "ifdef::") || strings.HasPrefix(s, "ifndef::") || strings.HasPrefix(s, "endif::")
}

// hasMacroShape reports whether s contains "::" before the first "[",
// identifying a block macro invocation like "image::diagram.png[Caption]".
// A line with no "[" at all is not a macro, so "CPU::" stays available to
// the DESC_TERM rule.
func hasMacroShape(s string) bool {
	br := strings.IndexByte(s, '[')
	cc := strings.Index(s, "::")
	if cc < 0 || br < 0 {
		return false
	}
	if cc > br {
		return false
	}
	return true
}

// splitDoubleColon splits s at its first "::" into head and rest.
func splitDoubleColon(s string) (head, rest string) {
	i := strings.Index(s, "::")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+2:]
}

// descTerm recognizes a TEXT line ending in 2 or more colons with non-empty
// content before them, e.g. the term line "CPU::" (the definition follows
// on the next TEXT line). A single line such as "CPU:: Central Processing
// Unit" does not end in colons and is not a term.
func descTerm(s string) (level int, term string, ok bool) {
	i := len(s)
	for i > 0 && s[i-1] == ':' {
		i--
	}
	count := len(s) - i
	if count < 2 || i == 0 {
		return 0, "", false
	}
	return count, s[:i], true
}

// admonition recognizes a line beginning with one of the admonition labels
// followed by a colon.
func admonition(s string) (label, rest string, ok bool) {
	for _, lbl := range admonitionLabels {
		prefix := lbl + ":"
		if strings.HasPrefix(s, prefix) {
			return lbl, strings.TrimPrefix(s[len(prefix):], " "), true
		}
	}
	return "", "", false
}
