package markdown

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/examchat"
)

type ansiRenderer struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	accent    lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
	code      lipgloss.Style
	star      lipgloss.Style
}

func newRenderer(theme examchat.Theme) *ansiRenderer {
	return &ansiRenderer{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		accent:    lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
		code:      lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)).Bold(true),
		star:      lipgloss.NewStyle().Foreground(ansiColor(theme.Star)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// walk carries the leaf cursor through one render. next must advance over
// every leaf, visible or not, to stay aligned with Document.Leaves.
type walk struct {
	mask Mask
	next int
}

// take consumes the next leaf and returns its visible prefix.
func (w *walk) take(text string) (visible string, reached, complete bool) {
	n := w.mask.Revealed(w.next)
	w.next++
	if n < 0 {
		return "", false, false
	}
	if n >= len(text) {
		return text, true, true
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n], true, false
}

func (r *ansiRenderer) render(doc examchat.Document, width int, mask Mask) string {
	w := &walk{mask: mask}
	var parts []string
	for bi, b := range doc.Blocks {
		if out, ok := r.renderBlock(bi, b, width, w); ok {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *ansiRenderer) renderBlock(index int, block examchat.Block, width int, w *walk) (string, bool) {
	wrap := lipgloss.NewStyle().Width(width)
	switch b := block.(type) {
	case examchat.Paragraph:
		inline, reached := r.spans(b.Content, w)
		return wrap.Render(inline), reached

	case examchat.RawInline:
		inline, reached := r.spans(b.Content, w)
		return wrap.Render(inline), reached

	case examchat.Heading:
		inline, reached := r.spans(b.Content, w)
		style := r.accent
		if b.Level == 1 {
			style = style.Underline(true)
		}
		return wrap.Render(style.Render(inline)), reached

	case examchat.CodeBlock:
		text, reached, complete := w.take(b.Text)
		if !reached {
			return "", false
		}
		return r.codeBlock(b.Lang, text, complete), true

	case examchat.List:
		return r.list(index, b, width, w)

	default:
		// Rule and any block without text own a single marker leaf.
		_, reached, _ := w.take("")
		if !reached {
			return "", false
		}
		n := width
		if n <= 0 || n > 40 {
			n = 40
		}
		return r.muted.Render(strings.Repeat("─", n)), true
	}
}

func (r *ansiRenderer) codeBlock(lang, text string, complete bool) string {
	var b strings.Builder
	if lang != "" {
		b.WriteString(r.muted.Render(lang))
		b.WriteString("\n")
	}
	body := text
	if complete {
		body = highlight(text, lang)
	}
	gutter := r.muted.Render("│") + " "
	for i, ln := range strings.Split(body, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(gutter + ln)
	}
	return b.String()
}

func (r *ansiRenderer) list(index int, l examchat.List, width int, w *walk) (string, bool) {
	var (
		b       strings.Builder
		reached bool
	)
	if len(l.Items) == 0 {
		_, reached, _ = w.take("")
		return "", reached
	}
	for ii, item := range l.Items {
		inline, itemReached := r.spans(item, w)
		if !itemReached || !w.mask.ItemVisible(index, ii) {
			continue
		}
		reached = true
		marker := "• "
		if l.Ordered {
			marker = fmt.Sprintf("%d. ", l.Start+ii)
		}
		r.writeListItem(&b, marker, inline, width)
	}
	return strings.TrimRight(b.String(), "\n"), reached
}

// writeListItem writes a list item with continuation lines indented under
// the item text.
func (r *ansiRenderer) writeListItem(buf *strings.Builder, marker, content string, width int) {
	prefix := "  " + marker
	indent := lipgloss.Width(prefix)
	wrapped := content
	if width > 0 {
		itemWidth := width - indent
		if itemWidth < 10 {
			itemWidth = 10
		}
		wrapped = lipgloss.NewStyle().Width(itemWidth).Render(content)
	}
	continuation := strings.Repeat(" ", indent)
	for i, ln := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + ln + "\n")
		} else {
			buf.WriteString(continuation + ln + "\n")
		}
	}
}

// spans renders inline content. reached reports whether the first leaf has
// been reached; an empty span list owns one marker leaf.
func (r *ansiRenderer) spans(content []examchat.Span, w *walk) (string, bool) {
	start := w.next
	reached := w.mask.Revealed(start) >= 0
	var b strings.Builder
	r.inline(content, w, &b)
	if w.next == start {
		w.take("")
	}
	return b.String(), reached
}

// inline writes the visible part of content to b and reports whether every
// leaf it consumed is fully visible.
func (r *ansiRenderer) inline(content []examchat.Span, w *walk, b *strings.Builder) bool {
	complete := true
	for _, s := range content {
		switch s := s.(type) {
		case examchat.Text:
			text, _, cmp := w.take(s.Text)
			b.WriteString(text)
			complete = complete && cmp
		case examchat.Code:
			text, _, cmp := w.take(s.Text)
			if text != "" {
				b.WriteString(r.code.Render(text))
			}
			complete = complete && cmp
		case examchat.StarIcon:
			text, _, cmp := w.take(examchat.StarGlyph)
			if text != "" {
				b.WriteString(r.star.Render(text))
			}
			complete = complete && cmp
		case examchat.Bold:
			var inner strings.Builder
			complete = r.inline(s.Children, w, &inner) && complete
			if inner.Len() > 0 {
				b.WriteString(r.bold.Render(inner.String()))
			}
		case examchat.Italic:
			var inner strings.Builder
			complete = r.inline(s.Children, w, &inner) && complete
			if inner.Len() > 0 {
				b.WriteString(r.italic.Render(inner.String()))
			}
		case examchat.Link:
			var inner strings.Builder
			cmp := r.inline(s.Label, w, &inner)
			if inner.Len() > 0 {
				b.WriteString(r.underline.Render(inner.String()))
				if cmp {
					b.WriteString(" " + r.muted.Render("("+s.URL+")"))
				}
			}
			complete = complete && cmp
		}
	}
	return complete
}
