package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbc60/leandoc/internal/ast"
	"github.com/dbc60/leandoc/internal/logging"
	"github.com/dbc60/leandoc/internal/messages"
)

func testLog() logging.Logger { return logging.New(logging.Config{Name: "generator-test"}) }

func TestPreambleUnknownTemplateFails(t *testing.T) {
	doc := &ast.Document{}
	_, err := Generate(doc, Options{TemplateName: "glossy"}, testLog())
	require.Error(t, err)
	ge, ok := err.(*messages.GenError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrUnknownTemplate, ge.Kind)
}

func TestPlainPreambleIncludesAdmonHelper(t *testing.T) {
	doc := &ast.Document{}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "#let admon(")
}

func TestDocumentTitleAndParagraph(t *testing.T) {
	doc := &ast.Document{
		Title: "Report",
		Children: []ast.Node{
			&ast.Paragraph{Children: []ast.Node{&ast.Text{Value: "Hello."}}},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "= Report")
	assert.Contains(t, out, "Hello.")
}

func TestSectionHeadingLevel(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Section{Level: 3, Title: []ast.Node{&ast.Text{Value: "Sub"}}},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "=== Sub")
}

func TestEmphasisMapsToTypstMarkers(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Paragraph{Children: []ast.Node{
				&ast.Emph{Style: ast.EmphBold, Children: []ast.Node{&ast.Text{Value: "bold"}}},
			}},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "*bold*")
}

func TestLiteralParagraphEmitsRegardlessOfAllowRawPassthrough(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.LiteralParagraph{Text: "verbatim"},
		},
	}
	out, err := Generate(doc, Options{AllowRawPassthrough: false}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, `#raw("verbatim", block: true)`)
}

func TestDirectiveAlwaysFails(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Directive{Name: "ifdef", Target: "FLAG"},
		},
	}
	_, err := Generate(doc, Options{}, testLog())
	require.Error(t, err)
	ge, ok := err.(*messages.GenError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrSemanticPhaseRequired, ge.Kind)
}

func TestCommentDelimitedBlockIsSuppressed(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.DelimitedBlock{Delim: ast.DelimComment, Text: "hidden"},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestTableEmitsTypstTableCall(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Table{Width: 2, Rows: []*ast.TableRow{
				{Cells: []*ast.TableCell{
					{Children: []ast.Node{&ast.Text{Value: "a"}}},
					{Children: []ast.Node{&ast.Text{Value: "b"}}},
				}},
			}},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "#table(")
	assert.Contains(t, out, "columns: 2")
}

func TestAttrRefEmitsPlaceholder(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Paragraph{Children: []ast.Node{&ast.AttrRef{Name: "version"}}},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "{version}")
}

func TestFootnoteInlineMacro(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Paragraph{Children: []ast.Node{&ast.InlineMacro{Name: "footnote", Args: "see appendix"}}},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "#footnote[see appendix]")
}

func TestKbdInlineMacro(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Paragraph{Children: []ast.Node{&ast.InlineMacro{Name: "kbd", Args: "Ctrl+C"}}},
		},
	}
	out, err := Generate(doc, Options{}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "#smallcaps[Ctrl+C]")
}

func TestStemInlineMacroRequiresRawPassthrough(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Paragraph{Children: []ast.Node{&ast.InlineMacro{Name: "stem", Args: "x^2"}}},
		},
	}
	_, err := Generate(doc, Options{AllowRawPassthrough: false}, testLog())
	require.Error(t, err)
	ge, ok := err.(*messages.GenError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrRawPassthroughDisabled, ge.Kind)

	out, err := Generate(doc, Options{AllowRawPassthrough: true}, testLog())
	require.NoError(t, err)
	assert.Contains(t, out, "$x^2$")
}

func TestUnknownInlineMacroFails(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.Paragraph{Children: []ast.Node{&ast.InlineMacro{Name: "phone", Args: "555-1234"}}},
		},
	}
	_, err := Generate(doc, Options{}, testLog())
	require.Error(t, err)
	ge, ok := err.(*messages.GenError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrUnsupportedMacro, ge.Kind)
}

func TestUnsupportedBlockMacroFails(t *testing.T) {
	doc := &ast.Document{
		Children: []ast.Node{
			&ast.BlockMacro{Name: "video", Target: "clip.mp4"},
		},
	}
	_, err := Generate(doc, Options{}, testLog())
	require.Error(t, err)
	ge, ok := err.(*messages.GenError)
	require.True(t, ok)
	assert.Equal(t, messages.ErrUnsupportedMacro, ge.Kind)
}
