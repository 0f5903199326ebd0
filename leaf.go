package examchat

// StarGlyph is the text a StarIcon leaf reveals as.
const StarGlyph = "★"

// LeafKind identifies what a Leaf was produced from.
type LeafKind int

const (
	LeafText      LeafKind = iota // Text span.
	LeafCode                      // Code span.
	LeafCodeBlock                 // CodeBlock body.
	LeafStar                      // StarIcon glyph.
	LeafMarker                    // Placeholder for a block or item with no text.
)

// Leaf is one unit of revealable text. Leaves are enumerated in document
// order: block by block, and inside a block span by span, depth first.
type Leaf struct {
	Index int // position in Document.Leaves
	Block int // index into Document.Blocks
	Item  int // list item index, -1 outside lists
	Kind  LeafKind
	Text  string
}

// Leaves returns the document's leaves in reveal order. Every block, and
// every list item, yields at least one leaf so it can be reached by a
// reveal cursor even when it carries no text.
func (d Document) Leaves() []Leaf {
	var leaves []Leaf
	add := func(block, item int, kind LeafKind, text string) {
		leaves = append(leaves, Leaf{
			Index: len(leaves),
			Block: block,
			Item:  item,
			Kind:  kind,
			Text:  text,
		})
	}
	spans := func(block, item int, content []Span) {
		start := len(leaves)
		walkSpans(content, func(kind LeafKind, text string) {
			add(block, item, kind, text)
		})
		if len(leaves) == start {
			add(block, item, LeafMarker, "")
		}
	}
	for bi, b := range d.Blocks {
		switch b := b.(type) {
		case Heading:
			spans(bi, -1, b.Content)
		case Paragraph:
			spans(bi, -1, b.Content)
		case RawInline:
			spans(bi, -1, b.Content)
		case CodeBlock:
			add(bi, -1, LeafCodeBlock, b.Text)
		case List:
			for ii, item := range b.Items {
				spans(bi, ii, item)
			}
			if len(b.Items) == 0 {
				add(bi, -1, LeafMarker, "")
			}
		default:
			add(bi, -1, LeafMarker, "")
		}
	}
	return leaves
}

func walkSpans(content []Span, fn func(LeafKind, string)) {
	for _, s := range content {
		switch s := s.(type) {
		case Text:
			fn(LeafText, s.Text)
		case Code:
			fn(LeafCode, s.Text)
		case StarIcon:
			fn(LeafStar, StarGlyph)
		case Bold:
			walkSpans(s.Children, fn)
		case Italic:
			walkSpans(s.Children, fn)
		case Link:
			walkSpans(s.Label, fn)
		}
	}
}
