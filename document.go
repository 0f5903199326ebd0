package examchat

// Document is the structured form of one message's raw text: an ordered
// sequence of blocks in source line order.
type Document struct {
	Blocks []Block
}

// Empty reports whether the document has no blocks.
func (d Document) Empty() bool { return len(d.Blocks) == 0 }

// Block is a sealed interface representing a block-level element.
// The unexported marker method prevents external implementations.
type Block interface {
	block()
}

// Heading is a level 1..3 heading.
type Heading struct {
	Level   int
	Content []Span
}

func (Heading) block() {}

// Paragraph is a run of ordinary lines. Source line breaks are kept as "\n"
// inside Text spans.
type Paragraph struct {
	Content []Span
}

func (Paragraph) block() {}

// CodeBlock is a fenced region. Text is verbatim and never inline-parsed.
type CodeBlock struct {
	Lang string
	Text string
}

func (CodeBlock) block() {}

// List holds adjacent list items of the same kind. Start is the number of
// the first item of an ordered list.
type List struct {
	Ordered bool
	Start   int
	Items   [][]Span
}

func (List) block() {}

// Rule is a horizontal divider.
type Rule struct{}

func (Rule) block() {}

// RawInline holds text that could not be grouped into any other block.
type RawInline struct {
	Content []Span
}

func (RawInline) block() {}

// Span is a sealed interface representing inline content.
// The unexported marker method prevents external implementations.
type Span interface {
	span()
}

// Text is a plain run of characters.
type Text struct {
	Text string
}

func (Text) span() {}

// Bold wraps strongly emphasized spans.
type Bold struct {
	Children []Span
}

func (Bold) span() {}

// Italic wraps emphasized spans.
type Italic struct {
	Children []Span
}

func (Italic) span() {}

// Code is an inline code segment. Text is verbatim.
type Code struct {
	Text string
}

func (Code) span() {}

// Link is a labelled hyperlink.
type Link struct {
	Label []Span
	URL   string
}

func (Link) span() {}

// StarIcon marks a decorative star glyph.
type StarIcon struct{}

func (StarIcon) span() {}

// Interface compliance checks.
var (
	_ Block = Heading{}
	_ Block = Paragraph{}
	_ Block = CodeBlock{}
	_ Block = List{}
	_ Block = Rule{}
	_ Block = RawInline{}

	_ Span = Text{}
	_ Span = Bold{}
	_ Span = Italic{}
	_ Span = Code{}
	_ Span = Link{}
	_ Span = StarIcon{}
)
