package token

import (
	"testing"

	"github.com/dbc60/leandoc/internal/logging"
	"github.com/stretchr/testify/assert"
)

func lexAll(t *testing.T, input string) []Tok {
	t.Helper()
	l := New(logging.New(logging.Config{Name: "lexer"}))
	l.SetInput(input)
	var toks []Tok
	for {
		tk := l.Take()
		toks = append(toks, tk)
		if tk.Kind == EOF {
			break
		}
	}
	return toks
}

func TestClassifyBasicKinds(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  Kind
		level int
		head  string
		rest  string
	}{
		{"blank", "", BLANK, 0, "", ""},
		{"section level2", "== Parent", SECTION, 2, "", "Parent"},
		{"section level1", "= Title", SECTION, 1, "", "Title"},
		{"ul item", "* one", UL_ITEM, 1, "", "one"},
		{"nested ul item", "** nested", UL_ITEM, 2, "", "nested"},
		{"ol item level1", ". first", OL_ITEM, 1, "", "first"},
		{"list continuation", "+", LIST_CONT, 0, "", ""},
		{"desc term", "CPU::", DESC_TERM, 2, "", "CPU"},
		{"table delim", "|===", TABLE_DELIM, 0, "", ""},
		{"table line", "|a|b", TABLE_LINE, 0, "", "|a|b"},
		{"listing fence", "----", DELIM_LISTING, 0, "", ""},
		{"open fence", "--", DELIM_OPEN, 0, "", ""},
		{"thematic break", "---", THEMATIC, 0, "", ""},
		{"pagebreak", "<<<", PAGEBREAK, 0, "", ""},
		{"line comment", "// a note", LINE_COMMENT, 0, "", " a note"},
		{"admonition", "NOTE: be careful", ADMONITION, 0, "NOTE", "be careful"},
		{"block anchor", "[[id]]", BLOCK_ANCHOR, 0, "", "[[id]]"},
		{"block title", ".Title text", BLOCK_TITLE, 0, "", "Title text"},
		{"directive", "ifdef::foo[]", DIRECTIVE, 0, "ifdef", "foo[]"},
		{"include macro", "include::chapter1.adoc[]", BLOCK_MACRO, 0, "include", "chapter1.adoc[]"},
		{"image macro", "image::diagram.png[Caption]", BLOCK_MACRO, 0, "image", "diagram.png[Caption]"},
		{"plain text", "hello world", TEXT, 0, "", "hello world"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks := lexAll(t, tc.line)
			assert.Equal(t, tc.kind, toks[0].Kind)
			assert.Equal(t, tc.level, toks[0].Level)
			assert.Equal(t, tc.head, toks[0].Head)
			assert.Equal(t, tc.rest, toks[0].Rest)
		})
	}
}

func TestClassifyTableDelimBeforeTableLine(t *testing.T) {
	toks := lexAll(t, "|===")
	assert.Equal(t, TABLE_DELIM, toks[0].Kind)
}

func TestEmptyInputYieldsBlankThenEOF(t *testing.T) {
	toks := lexAll(t, "")
	// A single blank "line" precedes the synthetic EOF because an empty
	// string still splits to one (empty) physical line.
	assert.Equal(t, BLANK, toks[0].Kind)
	assert.Equal(t, EOF, toks[1].Kind)
}

func TestLineEndingVarieties(t *testing.T) {
	toks := lexAll(t, "a\r\nb\rc\nd")
	var texts []string
	for _, tk := range toks {
		if tk.Kind == TEXT {
			texts = append(texts, tk.Rest)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts)
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New(logging.New(logging.Config{Name: "lexer"}))
	l.SetInput("== A\ntext\n")
	first := l.Peek(0)
	assert.Equal(t, SECTION, first.Kind)
	// Peeking repeatedly must not advance the cursor.
	assert.Equal(t, first, l.Peek(0))
	assert.Equal(t, first, l.Take())
}

func TestPeekBeyondEndReturnsEOF(t *testing.T) {
	l := New(logging.New(logging.Config{Name: "lexer"}))
	l.SetInput("text")
	assert.Equal(t, EOF, l.Peek(10).Kind)
}

func TestDescTermDoesNotFireOnMacroShape(t *testing.T) {
	// "foo::bar[]" looks like it ends with nothing special, but it must be
	// classified as BLOCK_MACRO (rule order), not DESC_TERM.
	toks := lexAll(t, "foo::bar[]")
	assert.Equal(t, BLOCK_MACRO, toks[0].Kind)
}
