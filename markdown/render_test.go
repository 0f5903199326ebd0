package markdown_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/markdown"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI color output so styled elements produce escape codes.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

// cursorMask reveals leaves before leaf in full and n bytes of leaf.
type cursorMask struct {
	leaf   int
	n      int
	hidden map[[2]int]bool
}

func (m cursorMask) Revealed(leaf int) int {
	switch {
	case leaf < m.leaf:
		return 1 << 30
	case leaf == m.leaf:
		return m.n
	default:
		return -1
	}
}

func (m cursorMask) ItemVisible(block, item int) bool {
	return !m.hidden[[2]int{block, item}]
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := examchat.DefaultTheme()

	t.Run("empty document renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render(examchat.Document{}, 80, theme))
	})

	t.Run("paragraph", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render(markdown.Format("hello world"), 80, theme)
		assert.Contains(t, stripANSI(out), "hello world")
	})

	t.Run("heading is styled differently from paragraph", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render(markdown.Format("## Title"), 80, theme)
		paragraph := markdown.Render(markdown.Format("Title"), 80, theme)
		assert.Contains(t, stripANSI(heading), "Title")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("bold is styled", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render(markdown.Format("**bold**"), 80, theme)
		assert.Contains(t, stripANSI(out), "bold")
		assert.NotContains(t, out, "**")
		assert.Contains(t, out, "\x1b[")
	})

	t.Run("star icon renders as glyph", func(t *testing.T) {
		t.Parallel()
		out := markdown.Render(markdown.Format("⭐ Tip"), 80, theme)
		assert.Contains(t, stripANSI(out), examchat.StarGlyph+" Tip")
	})

	t.Run("bullet and numbered markers", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render(markdown.Format("- a\n- b\n\n2. x\n3. y"), 80, theme))
		assert.Contains(t, out, "• a")
		assert.Contains(t, out, "• b")
		assert.Contains(t, out, "2. x")
		assert.Contains(t, out, "3. y")
	})

	t.Run("code block keeps lines and shows language", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello world\")\n```"
		out := stripANSI(markdown.Render(markdown.Format(src), 20, theme))
		assert.Contains(t, out, "go")
		assert.Contains(t, out, `fmt.Println("hello world")`)
	})

	t.Run("link shows url", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render(markdown.Format("[docs](https://example.com)"), 80, theme))
		assert.Contains(t, out, "docs")
		assert.Contains(t, out, "(https://example.com)")
	})

	t.Run("rule", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render(markdown.Format("---"), 10, theme))
		assert.Contains(t, out, strings.Repeat("─", 10))
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(markdown.Render(markdown.Format("alpha beta gamma delta"), 11, theme))
		assert.Greater(t, len(strings.Split(out, "\n")), 1)
	})
}

func TestRenderMasked(t *testing.T) {
	t.Parallel()

	theme := examchat.DefaultTheme()

	t.Run("cut inside a leaf", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("Hello world\n\nSecond")
		out := stripANSI(markdown.RenderMasked(doc, 80, theme, cursorMask{leaf: 0, n: 5}))
		assert.Contains(t, out, "Hello")
		assert.NotContains(t, out, "world")
		assert.NotContains(t, out, "Second")
	})

	t.Run("cut stays on rune boundary", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("héllo")
		out := stripANSI(markdown.RenderMasked(doc, 80, theme, cursorMask{leaf: 0, n: 2}))
		assert.NotContains(t, out, "é")
		assert.True(t, strings.HasPrefix(out, "h"))
	})

	t.Run("later leaves in a block", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("one **two** three")
		out := stripANSI(markdown.RenderMasked(doc, 80, theme, cursorMask{leaf: 1, n: 3}))
		assert.Contains(t, out, "one two")
		assert.NotContains(t, out, "three")
	})

	t.Run("hidden list item", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("- a\n- b")
		mask := cursorMask{leaf: 5, hidden: map[[2]int]bool{{0, 1}: true}}
		out := stripANSI(markdown.RenderMasked(doc, 80, theme, mask))
		assert.Contains(t, out, "• a")
		assert.NotContains(t, out, "• b")
	})

	t.Run("partial code block", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("```go\nfmt.Println()\n```")
		out := stripANSI(markdown.RenderMasked(doc, 80, theme, cursorMask{leaf: 0, n: 3}))
		assert.Contains(t, out, "fmt")
		assert.NotContains(t, out, "Println")
	})

	t.Run("link url waits for the label", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("[docs](https://example.com)")
		partial := stripANSI(markdown.RenderMasked(doc, 80, theme, cursorMask{leaf: 0, n: 2}))
		assert.Contains(t, partial, "do")
		assert.NotContains(t, partial, "https")
		full := stripANSI(markdown.RenderMasked(doc, 80, theme, cursorMask{leaf: 1}))
		assert.Contains(t, full, "https://example.com")
	})

	t.Run("nothing reached", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("abc")
		out := markdown.RenderMasked(doc, 80, theme, cursorMask{leaf: -1})
		assert.Equal(t, "", out)
	})

	t.Run("full mask matches render", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("# T\n\n- a\n- b\n\n```\nx\n```\n---\n*end* ★")
		n := len(doc.Leaves())
		assert.Equal(t,
			markdown.Render(doc, 40, theme),
			markdown.RenderMasked(doc, 40, theme, cursorMask{leaf: n}),
		)
	})
}
