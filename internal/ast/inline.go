package ast

// Text is ordinary accumulated text, flushed by the inline scanner on each
// structural match.
type Text struct {
	Position Position
	Value    string
}

func (t *Text) NodeKind() Kind { return KindText }
func (t *Text) Pos() Position  { return t.Position }

// Space is a reserved leaf kind for significant inline whitespace. The
// inline scanner folds ordinary runs of whitespace into Text; no rule in
// this grammar currently produces a standalone Space node, but the kind is
// part of the closed variant so a future scanner rule (e.g. a non-breaking
// space entity) has a home without widening the switch in every consumer.
type Space struct {
	Position Position
	Value    string
}

func (s *Space) NodeKind() Kind { return KindSpace }
func (s *Space) Pos() Position  { return s.Position }

// LineBreak is an explicit hard break inside a paragraph, produced when a
// source line (other than the paragraph's last) ends with " +".
type LineBreak struct{ Position Position }

func (b *LineBreak) NodeKind() Kind { return KindLineBreak }
func (b *LineBreak) Pos() Position  { return b.Position }

// EmphStyle identifies which emphasis marker produced an Emph node.
type EmphStyle int

const (
	EmphBold EmphStyle = iota
	EmphItalic
	EmphMono
	EmphHighlight
)

func (e EmphStyle) String() string {
	switch e {
	case EmphBold:
		return "bold"
	case EmphItalic:
		return "italic"
	case EmphMono:
		return "mono"
	case EmphHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}

// Emph is inline emphasis: bold ('*'/'**'), italic ('_'/'__'), mono
// ('`'/'``'), or highlight ('#'). Mono stores its inner content as raw
// Text (Children holds a single *Text), preserving literal characters
// rather than re-parsing them as markup. Every other style re-parses its
// inner text recursively, bounded by a recursion-depth guard.
type Emph struct {
	Position     Position
	Style        EmphStyle
	Unconstrained bool
	Children     []Node
}

func (e *Emph) NodeKind() Kind { return KindEmph }
func (e *Emph) Pos() Position  { return e.Position }

// Superscript is '^...^' inline markup.
type Superscript struct {
	Position Position
	Children []Node
}

func (s *Superscript) NodeKind() Kind { return KindSuperscript }
func (s *Superscript) Pos() Position  { return s.Position }

// Subscript is '~...~' inline markup.
type Subscript struct {
	Position Position
	Children []Node
}

func (s *Subscript) NodeKind() Kind { return KindSubscript }
func (s *Subscript) Pos() Position  { return s.Position }

// Link is an inline URL autolink or a "link:target[text]" macro. When the
// source gives no link text, Children holds Target as the visible body.
type Link struct {
	Position Position
	Target   string
	Children []Node
}

func (l *Link) NodeKind() Kind { return KindLink }
func (l *Link) Pos() Position  { return l.Position }

// ImageInline is an inline "image:target[alt]" macro.
type ImageInline struct {
	Position Position
	Target   string
	Alt      string
}

func (i *ImageInline) NodeKind() Kind { return KindImageInline }
func (i *ImageInline) Pos() Position  { return i.Position }

// AnchorInline is an inline "[[id[,text]]]" anchor.
type AnchorInline struct {
	Position Position
	ID       string
	Text     string
}

func (a *AnchorInline) NodeKind() Kind { return KindAnchorInline }
func (a *AnchorInline) Pos() Position  { return a.Position }

// Xref is a cross-reference "<<id[,text]>>". Text is empty when the
// reference supplies no explicit link text.
type Xref struct {
	Position Position
	Target   string
	Text     string
}

func (x *Xref) NodeKind() Kind { return KindXref }
func (x *Xref) Pos() Position  { return x.Position }

// AttrRef is an unresolved attribute reference "{name}". Resolving it
// requires the external semantic phase named in spec §1; the generator
// emits it back out as a placeholder.
type AttrRef struct {
	Position Position
	Name     string
}

func (a *AttrRef) NodeKind() Kind { return KindAttrRef }
func (a *AttrRef) Pos() Position  { return a.Position }

// InlineMacro is "name:target[args]" inline markup, e.g.
// "footnote:[text]" or "kbd:[Ctrl+C]".
type InlineMacro struct {
	Position Position
	Name     string
	Target   string
	Args     string
}

func (m *InlineMacro) NodeKind() Kind { return KindInlineMacro }
func (m *InlineMacro) Pos() Position  { return m.Position }

// PassthroughInline is "+++...+++" / "++...++" / "+...+" passthrough
// markup. Its Text is emitted verbatim by the generator when raw
// passthrough is allowed, and rejected with GenError otherwise.
type PassthroughInline struct {
	Position Position
	Text     string
}

func (p *PassthroughInline) NodeKind() Kind { return KindPassthroughInline }
func (p *PassthroughInline) Pos() Position  { return p.Position }
