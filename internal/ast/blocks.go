package ast

// Section is a heading and everything nested beneath it. Children contains
// only sections of strictly greater Level, or non-section blocks — the
// parser enforces this by construction, never by post-hoc validation.
type Section struct {
	Position Position
	Level    int
	Meta     *Meta
	Title    []Node // inline content of the heading text
	Children []Node
}

func (s *Section) NodeKind() Kind { return KindSection }
func (s *Section) Pos() Position  { return s.Position }
func (s *Section) Append(n Node)  { s.Children = append(s.Children, n) }

// Paragraph is a normal paragraph: its Children are inline nodes produced
// by the inline scanner over the paragraph's joined source lines.
type Paragraph struct {
	Position Position
	Meta     *Meta
	Children []Node
}

func (p *Paragraph) NodeKind() Kind { return KindParagraph }
func (p *Paragraph) Pos() Position  { return p.Position }

// LiteralParagraph preserves its source verbatim: lines are joined with
// "\n" after stripping one leading space from each, with no inline
// scanning performed on the result.
type LiteralParagraph struct {
	Position Position
	Meta     *Meta
	Text     string
}

func (p *LiteralParagraph) NodeKind() Kind { return KindLiteralParagraph }
func (p *LiteralParagraph) Pos() Position  { return p.Position }

// AdmonitionParagraph is a NOTE:/TIP:/IMPORTANT:/CAUTION:/WARNING: block.
type AdmonitionParagraph struct {
	Position Position
	Meta     *Meta
	Label    string
	Children []Node
}

func (a *AdmonitionParagraph) NodeKind() Kind { return KindAdmonitionParagraph }
func (a *AdmonitionParagraph) Pos() Position  { return a.Position }

// DelimKind identifies which fence opened a DelimitedBlock.
type DelimKind int

const (
	DelimListing DelimKind = iota
	DelimLiteral
	DelimQuote
	DelimExample
	DelimSidebar
	DelimOpen
	DelimComment
	DelimPassthrough
	DelimStem
)

var delimKindNames = [...]string{
	"listing", "literal", "quote", "example", "sidebar", "open", "comment", "passthrough", "stem",
}

func (d DelimKind) String() string { return delimKindNames[d] }

// Raw reports whether d's body is accumulated verbatim (true) or parsed
// recursively through the block dispatcher (false, "container" blocks:
// quote, example, sidebar, open).
func (d DelimKind) Raw() bool {
	switch d {
	case DelimQuote, DelimExample, DelimSidebar, DelimOpen:
		return false
	default:
		return true
	}
}

// DelimitedBlock is content enclosed by a fixed-length fence. Raw blocks
// (listing, literal, passthrough, comment, stem) store their body in Text;
// container blocks (quote, example, sidebar, open) parse their body
// recursively into Children.
type DelimitedBlock struct {
	Position Position
	Meta     *Meta
	Delim    DelimKind
	Text     string // populated when Delim.Raw()
	Children []Node // populated when !Delim.Raw()
}

func (b *DelimitedBlock) NodeKind() Kind { return KindDelimitedBlock }
func (b *DelimitedBlock) Pos() Position  { return b.Position }

// ListType identifies the kind of a List: unordered, ordered, or
// description, determined by the first item's line-token kind.
type ListType int

const (
	ListUnordered ListType = iota
	ListOrdered
	ListDescription
)

func (t ListType) String() string {
	switch t {
	case ListOrdered:
		return "ordered"
	case ListDescription:
		return "description"
	default:
		return "unordered"
	}
}

// List is a run of sibling ListItems of the same ListType and marker
// level.
type List struct {
	Position Position
	Meta     *Meta
	Type     ListType
	Level    int
	Items    []*ListItem
}

func (l *List) NodeKind() Kind { return KindList }
func (l *List) Pos() Position  { return l.Position }

// ListItem is one entry in a List. Term holds the inline content of a
// description-list term (nil for unordered/ordered items); Check holds the
// checklist marker ("*", "x", or " ") when the item opened with
// "[*]"/"[x]"/"[ ]", and is empty otherwise. Children holds the item's
// inline content followed by any continuation blocks (paragraphs or
// delimited blocks introduced by a "+" continuation line).
type ListItem struct {
	Position Position
	Term     []Node
	Check    string
	Children []Node
}

func (i *ListItem) NodeKind() Kind { return KindListItem }
func (i *ListItem) Pos() Position  { return i.Position }

// Table is a |=== ... |=== block. Width is the first row's cell count;
// every row is re-flowed to this width, or the parse fails.
type Table struct {
	Position Position
	Meta     *Meta
	Width    int
	Rows     []*TableRow
}

func (t *Table) NodeKind() Kind { return KindTable }
func (t *Table) Pos() Position  { return t.Position }

// TableRow holds Width TableCells.
type TableRow struct {
	Position Position
	Cells    []*TableCell
}

func (r *TableRow) NodeKind() Kind { return KindTableRow }
func (r *TableRow) Pos() Position  { return r.Position }

// TableCell is one table cell. ColSpan defaults to 1; Align is '<', '^',
// '>', or 0 (unspecified). The parser always sets ColSpan to 1 and never
// sets RowSpan; there is no cell-level style field.
type TableCell struct {
	Position Position
	ColSpan  int
	RowSpan  int
	Align    rune
	Children []Node
}

func (c *TableCell) NodeKind() Kind { return KindTableCell }
func (c *TableCell) Pos() Position  { return c.Position }

// BlockMacro is a "name::target[attrs]" line, e.g. "image::diagram.png[Caption]".
type BlockMacro struct {
	Position Position
	Meta     *Meta
	Name     string
	Target   string
	Attrs    map[string]string
}

func (m *BlockMacro) NodeKind() Kind { return KindBlockMacro }
func (m *BlockMacro) Pos() Position  { return m.Position }

// Directive is an ifdef::/ifndef::/endif:: line. Resolving it requires the
// external semantic phase named in spec §1; the generator raises GenError
// when it reaches one.
type Directive struct {
	Position Position
	Name     string // "ifdef", "ifndef", or "endif"
	Target   string
}

func (d *Directive) NodeKind() Kind { return KindDirective }
func (d *Directive) Pos() Position  { return d.Position }

// ThematicBreak is a '''/---/*** line.
type ThematicBreak struct{ Position Position }

func (t *ThematicBreak) NodeKind() Kind { return KindThematicBreak }
func (t *ThematicBreak) Pos() Position  { return t.Position }

// PageBreak is a "<<<" line.
type PageBreak struct{ Position Position }

func (p *PageBreak) NodeKind() Kind { return KindPageBreak }
func (p *PageBreak) Pos() Position  { return p.Position }

// LineComment is a "// ..." line kept in the tree (rather than discarded)
// so the generator can re-emit it as a Typst line comment.
type LineComment struct {
	Position Position
	Text     string
}

func (c *LineComment) NodeKind() Kind { return KindLineComment }
func (c *LineComment) Pos() Position  { return c.Position }
