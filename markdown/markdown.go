// Package markdown converts raw response text into an examchat.Document and
// renders documents, fully or partially revealed, to ANSI-styled terminal
// output using lipgloss for styling and chroma for code highlighting.
//
// The grammar is deliberately small: headings up to level three, bullet and
// numbered items, rules, fenced code, and bold, italic, code, link and star
// glyph inlines. It is not CommonMark; see package goldmark for that.
package markdown

import (
	"math"

	"github.com/fwojciec/examchat"
)

// Mask reports how much of a document is visible. Leaf indices match
// examchat.Document.Leaves.
type Mask interface {
	// Revealed returns the number of bytes of the leaf that are visible, or
	// -1 when the reveal cursor has not reached it yet.
	Revealed(leaf int) int
	// ItemVisible reports whether a list item has been made visible.
	ItemVisible(block, item int) bool
}

type fullMask struct{}

func (fullMask) Revealed(int) int          { return math.MaxInt }
func (fullMask) ItemVisible(int, int) bool { return true }

// Render returns the fully revealed document as styled terminal text.
// Paragraphs and list items are word-wrapped to width; code blocks are
// rendered without reflow. A width of zero disables wrapping.
func Render(doc examchat.Document, width int, theme examchat.Theme) string {
	return RenderMasked(doc, width, theme, fullMask{})
}

// RenderMasked renders only what mask reports visible. Blocks the reveal
// cursor has not reached are omitted, as are hidden list items.
func RenderMasked(doc examchat.Document, width int, theme examchat.Theme, mask Mask) string {
	if doc.Empty() {
		return ""
	}
	r := newRenderer(theme)
	return r.render(doc, width, mask)
}
