// Package goldmark converts CommonMark text into an examchat.Document using
// goldmark for parsing. It is an alternative to markdown.Format for backends
// that emit standard markdown.
package goldmark

import (
	"strings"

	"github.com/fwojciec/examchat"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Format parses CommonMark source into a Document. Nested lists are
// flattened into sibling lists following their parent, blockquotes are
// unwrapped, and raw HTML is kept as literal text.
func Format(source string) examchat.Document {
	if strings.TrimSpace(source) == "" {
		return examchat.Document{}
	}
	src := []byte(source)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	c := &converter{source: src}
	c.walkBlock(root)
	return examchat.Document{Blocks: c.blocks}
}

type converter struct {
	source []byte
	blocks []examchat.Block
}

func (c *converter) walkBlock(node ast.Node) {
	for n := node.FirstChild(); n != nil; n = n.NextSibling() {
		c.convertBlock(n)
	}
}

func (c *converter) convertBlock(node ast.Node) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		c.blocks = append(c.blocks, examchat.Paragraph{Content: c.collectInline(n)})

	case *ast.Heading:
		level := n.Level
		if level > 3 {
			level = 3
		}
		c.blocks = append(c.blocks, examchat.Heading{Level: level, Content: c.collectInline(n)})

	case *ast.FencedCodeBlock:
		c.blocks = append(c.blocks, examchat.CodeBlock{
			Lang: string(n.Language(c.source)),
			Text: c.lines(n),
		})

	case *ast.CodeBlock:
		c.blocks = append(c.blocks, examchat.CodeBlock{Text: c.lines(n)})

	case *ast.List:
		c.convertList(n)

	case *ast.ThematicBreak:
		c.blocks = append(c.blocks, examchat.Rule{})

	case *ast.HTMLBlock:
		raw := c.lines(n)
		c.blocks = append(c.blocks, examchat.RawInline{Content: []examchat.Span{examchat.Text{Text: raw}}})

	default:
		// Blockquotes and other containers are unwrapped.
		c.walkBlock(node)
	}
}

func (c *converter) lines(node ast.Node) string {
	var buf strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (c *converter) convertList(node *ast.List) {
	list := examchat.List{Ordered: node.IsOrdered()}
	if list.Ordered {
		list.Start = node.Start
	}
	var nested []*ast.List
	for n := node.FirstChild(); n != nil; n = n.NextSibling() {
		item, ok := n.(*ast.ListItem)
		if !ok {
			continue
		}
		var content []examchat.Span
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if len(content) > 0 {
					content = append(content, examchat.Text{Text: " "})
				}
				content = append(content, c.collectInline(in)...)
			case *ast.List:
				nested = append(nested, in)
			default:
				if raw := c.lines(in); raw != "" {
					content = append(content, examchat.Code{Text: raw})
				}
			}
		}
		list.Items = append(list.Items, content)
	}
	c.blocks = append(c.blocks, list)
	for _, n := range nested {
		c.convertList(n)
	}
}

// collectInline converts a node's inline children to spans, merging
// adjacent text.
func (c *converter) collectInline(node ast.Node) []examchat.Span {
	var spans []examchat.Span
	for n := node.FirstChild(); n != nil; n = n.NextSibling() {
		spans = c.convertInline(n, spans)
	}
	return spans
}

func (c *converter) convertInline(node ast.Node, spans []examchat.Span) []examchat.Span {
	switch n := node.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(c.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			s += "\n"
		}
		return appendText(spans, s)

	case *ast.String:
		return appendText(spans, string(n.Value))

	case *ast.Emphasis:
		inner := c.collectInline(n)
		if n.Level == 1 {
			return append(spans, examchat.Italic{Children: inner})
		}
		// Goldmark nests ***x*** as emphasis inside emphasis, so level 2
		// is the highest reachable.
		return append(spans, examchat.Bold{Children: inner})

	case *ast.CodeSpan:
		var buf strings.Builder
		for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
			switch t := ch.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(c.source))
			case *ast.String:
				buf.Write(t.Value)
			}
		}
		return append(spans, examchat.Code{Text: buf.String()})

	case *ast.Link:
		return append(spans, examchat.Link{Label: c.collectInline(n), URL: string(n.Destination)})

	case *ast.AutoLink:
		url := string(n.URL(c.source))
		return append(spans, examchat.Link{Label: []examchat.Span{examchat.Text{Text: url}}, URL: url})

	case *ast.Image:
		return append(spans, examchat.Link{Label: c.collectInline(n), URL: string(n.Destination)})

	case *ast.RawHTML:
		var buf strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(c.source))
		}
		return appendText(spans, buf.String())

	default:
		for ch := node.FirstChild(); ch != nil; ch = ch.NextSibling() {
			spans = c.convertInline(ch, spans)
		}
		return spans
	}
}

var starGlyphs = []string{"★", "⭐"}

// appendText adds s to spans, splitting out star glyphs and merging with a
// trailing Text span.
func appendText(spans []examchat.Span, s string) []examchat.Span {
	for s != "" {
		i, glyph := nextGlyph(s)
		if i < 0 {
			return mergeText(spans, s)
		}
		spans = mergeText(spans, s[:i])
		spans = append(spans, examchat.StarIcon{})
		s = s[i+len(glyph):]
	}
	return spans
}

func nextGlyph(s string) (int, string) {
	best, glyph := -1, ""
	for _, g := range starGlyphs {
		if i := strings.Index(s, g); i >= 0 && (best < 0 || i < best) {
			best, glyph = i, g
		}
	}
	return best, glyph
}

func mergeText(spans []examchat.Span, s string) []examchat.Span {
	if s == "" {
		return spans
	}
	if n := len(spans); n > 0 {
		if t, ok := spans[n-1].(examchat.Text); ok {
			spans[n-1] = examchat.Text{Text: t.Text + s}
			return spans
		}
	}
	return append(spans, examchat.Text{Text: s})
}
