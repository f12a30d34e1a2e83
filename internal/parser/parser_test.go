package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/logging"
	"github.com/dbc60/leandoc/internal/messages"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := Parse(src, logging.New(logging.Config{Name: "parser-test"}))
	require.NoError(t, err)
	return doc
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	_, err := Parse(src, logging.New(logging.Config{Name: "parser-test"}))
	require.Error(t, err)
	return err
}

func TestDocumentTitlePromotedOutOfBody(t *testing.T) {
	doc := mustParse(t, "= Report\n\nBody text.\n")
	assert.Equal(t, "Report", doc.Title)
	require.Len(t, doc.Children, 1)
	_, ok := doc.Children[0].(*ast.Paragraph)
	assert.True(t, ok)
}

func TestMetadataAttachesToFollowingSectionNotPreceding(t *testing.T) {
	src := "== Parent\n\nIntro.\n\n[[child-id]]\n=== Child\n\nChild body.\n"
	doc := mustParse(t, src)
	require.Len(t, doc.Children, 1)
	parent, ok := doc.Children[0].(*ast.Section)
	require.True(t, ok)
	require.Len(t, parent.Children, 2)

	_, isParagraph := parent.Children[0].(*ast.Paragraph)
	assert.True(t, isParagraph)

	child, ok := parent.Children[1].(*ast.Section)
	require.True(t, ok)
	require.NotNil(t, child.Meta)
	assert.Equal(t, "child-id", child.Meta.AnchorID)
}

func TestSectionNestingByLevel(t *testing.T) {
	src := "= Title\n\n== One\n\nContent one.\n\n=== One A\n\nNested.\n\n== Two\n\nContent two.\n"
	doc := mustParse(t, src)
	require.Len(t, doc.Children, 2)

	one := doc.Children[0].(*ast.Section)
	assert.Equal(t, 2, one.Level)
	require.Len(t, one.Children, 2)
	oneA := one.Children[1].(*ast.Section)
	assert.Equal(t, 3, oneA.Level)

	two := doc.Children[1].(*ast.Section)
	assert.Equal(t, 2, two.Level)
}

func TestLiteralVsNormalParagraph(t *testing.T) {
	src := " indented one\n indented two\n\nNormal one.\nNormal two.\n"
	doc := mustParse(t, src)
	require.Len(t, doc.Children, 2)

	lit, ok := doc.Children[0].(*ast.LiteralParagraph)
	require.True(t, ok)
	assert.Equal(t, "indented one\nindented two", lit.Text)

	para, ok := doc.Children[1].(*ast.Paragraph)
	require.True(t, ok)
	text := para.Children[0].(*ast.Text)
	assert.Equal(t, "Normal one. Normal two.", text.Value)
}

func TestEscapedPipeInTable(t *testing.T) {
	src := "|===\n|a\\|b |c\n|===\n"
	doc := mustParse(t, src)
	require.Len(t, doc.Children, 1)
	table := doc.Children[0].(*ast.Table)
	require.Equal(t, 2, table.Width)
	require.Len(t, table.Rows, 1)
	first := table.Rows[0].Cells[0].Children[0].(*ast.Text)
	assert.Equal(t, "a|b", first.Value)
}

func TestTableRowWidthMismatchFails(t *testing.T) {
	src := "|===\n|a |b\n|c\n|===\n"
	err := parseErr(t, src)
	pe, ok := err.(*messages.ParseError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrTableRowWidth, pe.Kind)
}

func TestTableCellsReflowAcrossLines(t *testing.T) {
	src := "|===\n|A |B\n|a\n|b\n|c\n|d\n|===\n"
	doc := mustParse(t, src)
	table := doc.Children[0].(*ast.Table)
	require.Equal(t, 2, table.Width)
	require.Len(t, table.Rows, 3)

	header0 := table.Rows[0].Cells[0].Children[0].(*ast.Text)
	assert.Equal(t, "A", header0.Value)
	row1cell0 := table.Rows[1].Cells[0].Children[0].(*ast.Text)
	assert.Equal(t, "a", row1cell0.Value)
	row2cell1 := table.Rows[2].Cells[1].Children[0].(*ast.Text)
	assert.Equal(t, "d", row2cell1.Value)
}

func TestAdmonitionRoundTrip(t *testing.T) {
	doc := mustParse(t, "NOTE: Remember this.\n")
	require.Len(t, doc.Children, 1)
	note := doc.Children[0].(*ast.AdmonitionParagraph)
	assert.Equal(t, "NOTE", note.Label)
	text := note.Children[0].(*ast.Text)
	assert.Equal(t, "Remember this.", text.Value)
}

func TestDescriptionList(t *testing.T) {
	src := "CPU::\nCentral Processing Unit.\nGPU::\nGraphics Processing Unit.\n"
	doc := mustParse(t, src)
	require.Len(t, doc.Children, 1)
	list := doc.Children[0].(*ast.List)
	assert.Equal(t, ast.ListDescription, list.Type)
	require.Len(t, list.Items, 2)

	term := list.Items[0].Term[0].(*ast.Text)
	assert.Equal(t, "CPU", term.Value)
	def := list.Items[0].Children[0].(*ast.Text)
	assert.Equal(t, "Central Processing Unit.", def.Value)
}

func TestInlineEmphasisPrecedence(t *testing.T) {
	doc := mustParse(t, "A *bold* and _em_ and `mono` word.\n")
	para := doc.Children[0].(*ast.Paragraph)
	var styles []ast.EmphStyle
	for _, n := range para.Children {
		if e, ok := n.(*ast.Emph); ok {
			styles = append(styles, e.Style)
		}
	}
	assert.Equal(t, []ast.EmphStyle{ast.EmphBold, ast.EmphItalic, ast.EmphMono}, styles)
}

func TestUnclosedDelimitedBlockFails(t *testing.T) {
	err := parseErr(t, "----\nsome code\n")
	pe, ok := err.(*messages.ParseError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrUnclosedFence, pe.Kind)
}

func TestOrphanMetadataFails(t *testing.T) {
	err := parseErr(t, "[[dangling]]\n")
	pe, ok := err.(*messages.ParseError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrOrphanMetadata, pe.Kind)
}

func TestUnorderedListWithContinuation(t *testing.T) {
	src := "* first\n+\nContinuation paragraph.\n* second\n"
	doc := mustParse(t, src)
	list := doc.Children[0].(*ast.List)
	require.Len(t, list.Items, 2)
	require.Len(t, list.Items[0].Children, 2)
	_, ok := list.Items[0].Children[1].(*ast.Paragraph)
	assert.True(t, ok)
}

func TestChecklistMarker(t *testing.T) {
	doc := mustParse(t, "* [x] done\n* [ ] pending\n")
	list := doc.Children[0].(*ast.List)
	assert.Equal(t, "x", list.Items[0].Check)
	assert.Equal(t, " ", list.Items[1].Check)
}

func TestListingBlockPreservesRawText(t *testing.T) {
	src := "----\nfunc main() {}\n----\n"
	doc := mustParse(t, src)
	block := doc.Children[0].(*ast.DelimitedBlock)
	assert.Equal(t, ast.DelimListing, block.Delim)
	assert.Equal(t, "func main() {}", block.Text)
}

func TestInlineMacroNameAcceptsDigitsDashesUnderscores(t *testing.T) {
	doc := mustParse(t, "See btn2-ok_now:target[label].\n")
	para := doc.Children[0].(*ast.Paragraph)
	var macro *ast.InlineMacro
	for _, n := range para.Children {
		if m, ok := n.(*ast.InlineMacro); ok {
			macro = m
		}
	}
	require.NotNil(t, macro)
	assert.Equal(t, "btn2-ok_now", macro.Name)
}

func TestIRCAutolink(t *testing.T) {
	doc := mustParse(t, "Join irc://chat.example.org/room now.\n")
	para := doc.Children[0].(*ast.Paragraph)
	link, ok := para.Children[1].(*ast.Link)
	require.True(t, ok)
	assert.Equal(t, "irc://chat.example.org/room", link.Target)
}

func TestQuoteBlockParsesChildrenRecursively(t *testing.T) {
	src := "____\nInner paragraph.\n____\n"
	doc := mustParse(t, src)
	block := doc.Children[0].(*ast.DelimitedBlock)
	assert.Equal(t, ast.DelimQuote, block.Delim)
	require.Len(t, block.Children, 1)
	_, ok := block.Children[0].(*ast.Paragraph)
	assert.True(t, ok)
}
