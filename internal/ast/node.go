// Package ast defines the LeanDoc document tree: a closed, tagged variant
// of node types produced by a single parser pass and consumed read-only by
// the generator. Every concrete type implements Node; the NodeKind enum
// lets a switch over node kinds be checked for exhaustiveness by a
// reviewer (and, with a default branch that raises messages.GenError, by
// the generator at run time).
package ast

import (
	"fmt"
	"sort"
)

// Kind is the closed enumeration of document-tree node variants.
type Kind int

const (
	KindDocument Kind = iota
	KindSection
	KindParagraph
	KindLiteralParagraph
	KindAdmonitionParagraph
	KindDelimitedBlock
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindBlockMacro
	KindDirective
	KindThematicBreak
	KindPageBreak
	KindLineComment
	KindText
	KindSpace
	KindLineBreak
	KindEmph
	KindSuperscript
	KindSubscript
	KindLink
	KindImageInline
	KindAnchorInline
	KindXref
	KindAttrRef
	KindInlineMacro
	KindPassthroughInline
)

var kindNames = [...]string{
	"Document",
	"Section",
	"Paragraph",
	"LiteralParagraph",
	"AdmonitionParagraph",
	"DelimitedBlock",
	"List",
	"ListItem",
	"Table",
	"TableRow",
	"TableCell",
	"BlockMacro",
	"Directive",
	"ThematicBreak",
	"PageBreak",
	"LineComment",
	"Text",
	"Space",
	"LineBreak",
	"Emph",
	"Superscript",
	"Subscript",
	"Link",
	"ImageInline",
	"AnchorInline",
	"Xref",
	"AttrRef",
	"InlineMacro",
	"PassthroughInline",
}

// String implements Stringer and returns the Kind's name.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Position is a node's {line, column} source location.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Node is implemented by every document-tree node. NodeKind identifies the
// variant for switch dispatch in the parser, the generator, and the AST
// dumper; Pos gives the node's source location for diagnostics.
type Node interface {
	NodeKind() Kind
	Pos() Position
}

// Meta is block metadata: {anchorId, anchorText, title, attrs, roles}. It
// is built by the parser from a contiguous run of metadata lines and
// attaches to the block immediately following that run — never to the
// block preceding it.
type Meta struct {
	AnchorID   string            `json:"anchorId,omitempty"`
	AnchorText string            `json:"anchorText,omitempty"`
	Title      string            `json:"title,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	Roles      []string          `json:"roles,omitempty"`
}

// Roleset recomputes Roles from Attrs: every key beginning with '.' names a
// role and is stripped of its leading dot. Called whenever Attrs changes
// during metadata-run parsing. Attrs is a map, so keys are visited in
// sorted order to keep Roles a deterministic, ordered list rather than
// varying with Go's randomized map iteration.
func (m *Meta) Roleset() {
	m.Roles = m.Roles[:0]
	keys := make([]string, 0, len(m.Attrs))
	for k := range m.Attrs {
		if len(k) > 0 && k[0] == '.' {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.Roles = append(m.Roles, k[1:])
	}
}

// Document is the root of the tree. It owns Children exclusively; the tree
// is destroyed as a whole when the Document goes out of scope.
type Document struct {
	Position Position
	Title    string
	Children []Node
}

func (d *Document) NodeKind() Kind  { return KindDocument }
func (d *Document) Pos() Position   { return d.Position }
func (d *Document) Append(n Node)   { d.Children = append(d.Children, n) }
