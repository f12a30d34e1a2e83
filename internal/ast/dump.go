package ast

import "encoding/json"

// Dump renders n as deterministic, indented JSON: one object per node with
// a "type" discriminant, produced by walking the closed Kind switch below
// rather than by reflection. json.Marshal sorts map keys, so the output is
// stable across runs given the same tree — this is what backs `--ast`.
func Dump(n Node) ([]byte, error) {
	return json.MarshalIndent(toJSON(n), "", "  ")
}

func posJSON(p Position) map[string]interface{} {
	return map[string]interface{}{"line": p.Line, "column": p.Column}
}

func metaJSON(m *Meta) interface{} {
	if m == nil {
		return nil
	}
	return map[string]interface{}{
		"anchorId":   m.AnchorID,
		"anchorText": m.AnchorText,
		"title":      m.Title,
		"attrs":      m.Attrs,
		"roles":      m.Roles,
	}
}

func childrenJSON(children []Node) []interface{} {
	out := make([]interface{}, len(children))
	for i, c := range children {
		out[i] = toJSON(c)
	}
	return out
}

func toJSON(n Node) interface{} {
	if n == nil {
		return nil
	}
	base := map[string]interface{}{
		"type": n.NodeKind().String(),
		"pos":  posJSON(n.Pos()),
	}
	switch v := n.(type) {
	case *Document:
		base["title"] = v.Title
		base["children"] = childrenJSON(v.Children)
	case *Section:
		base["level"] = v.Level
		base["meta"] = metaJSON(v.Meta)
		base["title"] = childrenJSON(v.Title)
		base["children"] = childrenJSON(v.Children)
	case *Paragraph:
		base["meta"] = metaJSON(v.Meta)
		base["children"] = childrenJSON(v.Children)
	case *LiteralParagraph:
		base["meta"] = metaJSON(v.Meta)
		base["text"] = v.Text
	case *AdmonitionParagraph:
		base["meta"] = metaJSON(v.Meta)
		base["label"] = v.Label
		base["children"] = childrenJSON(v.Children)
	case *DelimitedBlock:
		base["meta"] = metaJSON(v.Meta)
		base["delim"] = v.Delim.String()
		if v.Delim.Raw() {
			base["text"] = v.Text
		} else {
			base["children"] = childrenJSON(v.Children)
		}
	case *List:
		base["meta"] = metaJSON(v.Meta)
		base["listType"] = v.Type.String()
		base["level"] = v.Level
		items := make([]interface{}, len(v.Items))
		for i, it := range v.Items {
			items[i] = toJSON(it)
		}
		base["items"] = items
	case *ListItem:
		base["term"] = childrenJSON(v.Term)
		base["check"] = v.Check
		base["children"] = childrenJSON(v.Children)
	case *Table:
		base["meta"] = metaJSON(v.Meta)
		base["width"] = v.Width
		rows := make([]interface{}, len(v.Rows))
		for i, r := range v.Rows {
			rows[i] = toJSON(r)
		}
		base["rows"] = rows
	case *TableRow:
		cells := make([]interface{}, len(v.Cells))
		for i, c := range v.Cells {
			cells[i] = toJSON(c)
		}
		base["cells"] = cells
	case *TableCell:
		base["colSpan"] = v.ColSpan
		base["rowSpan"] = v.RowSpan
		if v.Align != 0 {
			base["align"] = string(v.Align)
		}
		base["children"] = childrenJSON(v.Children)
	case *BlockMacro:
		base["meta"] = metaJSON(v.Meta)
		base["name"] = v.Name
		base["target"] = v.Target
		base["attrs"] = v.Attrs
	case *Directive:
		base["name"] = v.Name
		base["target"] = v.Target
	case *ThematicBreak:
	case *PageBreak:
	case *LineComment:
		base["text"] = v.Text
	case *Text:
		base["value"] = v.Value
	case *Space:
		base["value"] = v.Value
	case *LineBreak:
	case *Emph:
		base["style"] = v.Style.String()
		base["unconstrained"] = v.Unconstrained
		base["children"] = childrenJSON(v.Children)
	case *Superscript:
		base["children"] = childrenJSON(v.Children)
	case *Subscript:
		base["children"] = childrenJSON(v.Children)
	case *Link:
		base["target"] = v.Target
		base["children"] = childrenJSON(v.Children)
	case *ImageInline:
		base["target"] = v.Target
		base["alt"] = v.Alt
	case *AnchorInline:
		base["id"] = v.ID
		base["text"] = v.Text
	case *Xref:
		base["target"] = v.Target
		base["text"] = v.Text
	case *AttrRef:
		base["name"] = v.Name
	case *InlineMacro:
		base["name"] = v.Name
		base["target"] = v.Target
		base["args"] = v.Args
	case *PassthroughInline:
		base["text"] = v.Text
	}
	return base
}
