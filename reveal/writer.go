package reveal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/examchat"
	"github.com/mattn/go-runewidth"
)

const codeGutter = "│ "

// Writer is a Surface that streams a reveal to an io.Writer as plain text.
// Blocks are separated by blank lines, list items get bullets or numbers,
// code blocks get a gutter, and prose is soft-wrapped at width columns. A
// width of zero disables wrapping.
type Writer struct {
	w     io.Writer
	width int

	doc    examchat.Document
	block  int
	item   int
	col    int
	indent int
	err    error
}

// NewWriter returns a Writer streaming to w.
func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{w: w, width: width, block: -1, item: -1}
}

// Begin resets the writer for doc.
func (w *Writer) Begin(doc examchat.Document) error {
	w.doc = doc
	w.block = -1
	w.item = -1
	w.col = 0
	w.indent = 0
	return w.err
}

// End terminates the last line.
func (w *Writer) End() error {
	if w.block >= 0 {
		w.write("\n")
	}
	return w.err
}

func (w *Writer) ShowItem(block, item int) error {
	w.enter(block, item)
	return w.err
}

func (w *Writer) ScrollToBottom() error { return w.err }

func (w *Writer) Append(leaf examchat.Leaf, token string) error {
	w.enter(leaf.Block, leaf.Item)
	switch {
	case leaf.Kind == examchat.LeafCodeBlock:
		w.write(strings.ReplaceAll(token, "\n", "\n"+codeGutter))
	case leaf.Kind == examchat.LeafMarker && w.isRule(leaf.Block):
		n := w.width
		if n <= 0 || n > 40 {
			n = 40
		}
		w.write(strings.Repeat("─", n))
	default:
		for _, t := range Tokenize(token, ModeWord) {
			w.prose(t)
		}
	}
	return w.err
}

func (w *Writer) enter(block, item int) {
	if block != w.block {
		if w.block >= 0 {
			w.write("\n\n")
		}
		w.block = block
		w.item = -1
		w.col = 0
		w.indent = 0
		if b, ok := w.blockAt(block).(examchat.CodeBlock); ok {
			if b.Lang != "" {
				w.write(b.Lang + "\n")
			}
			w.write(codeGutter)
		}
	}
	if item < 0 || item == w.item {
		return
	}
	if w.item >= 0 {
		w.write("\n")
	}
	w.item = item
	marker := "  • "
	if l, ok := w.blockAt(block).(examchat.List); ok && l.Ordered {
		marker = fmt.Sprintf("  %d. ", l.Start+item)
	}
	w.col = 0
	w.write(marker)
	w.indent = w.col
}

func (w *Writer) prose(token string) {
	if IsSpace(token) {
		if strings.Contains(token, "\n") {
			w.newline()
			return
		}
		if w.width > 0 && w.col+runewidth.StringWidth(token) >= w.width {
			w.newline()
			return
		}
		w.write(token)
		return
	}
	if w.width > 0 && w.col > w.indent && w.col+runewidth.StringWidth(token) > w.width {
		w.newline()
	}
	w.write(token)
}

func (w *Writer) newline() {
	w.write("\n")
	w.write(strings.Repeat(" ", w.indent))
}

func (w *Writer) write(s string) {
	if w.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		w.err = err
		return
	}
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = runewidth.StringWidth(s[i+1:])
		return
	}
	w.col += runewidth.StringWidth(s)
}

func (w *Writer) blockAt(i int) examchat.Block {
	if i < 0 || i >= len(w.doc.Blocks) {
		return nil
	}
	return w.doc.Blocks[i]
}

func (w *Writer) isRule(i int) bool {
	_, ok := w.blockAt(i).(examchat.Rule)
	return ok
}
