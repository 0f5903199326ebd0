package bubbletea

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/markdown"
	"github.com/fwojciec/examchat/reveal"
)

var _ MessageBlock = (*BotMessageBlock)(nil)

// BotMessageBlock renders a formatted reply that is revealed token by token.
// The block owns the reveal cursor; the root model steps it with ticks.
type BotMessageBlock struct {
	doc       examchat.Document
	state     *reveal.State
	buffer    *reveal.Buffer
	timestamp time.Time
	theme     examchat.Theme
	styles    Styles
}

// NewBotMessageBlock creates a block with nothing revealed yet.
func NewBotMessageBlock(doc examchat.Document, timestamp time.Time, mode reveal.Mode, theme examchat.Theme, styles Styles) *BotMessageBlock {
	return &BotMessageBlock{
		doc:       doc,
		state:     reveal.NewState(doc, mode),
		buffer:    reveal.NewBuffer(),
		timestamp: timestamp,
		theme:     theme,
		styles:    styles,
	}
}

// Advance reveals up to the next visible token. It reports whether the
// view should scroll to the newest text.
func (b *BotMessageBlock) Advance() (reveal.Step, bool, error) {
	step, err := b.state.Advance(b.buffer)
	return step, b.buffer.TakeScroll(), err
}

// Finish reveals the remainder at once.
func (b *BotMessageBlock) Finish() error {
	return b.state.Finish(b.buffer)
}

// Skip makes the next Advance finish the reveal.
func (b *BotMessageBlock) Skip() { b.state.Skip() }

// Revealing reports whether the reveal is still in progress.
func (b *BotMessageBlock) Revealing() bool { return b.state.Active() }

// Complete reports whether every token has been revealed.
func (b *BotMessageBlock) Complete() bool { return b.state.Done() }

// Close abandons any reveal still in progress.
func (b *BotMessageBlock) Close() { b.buffer.Close() }

func (b *BotMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *BotMessageBlock) View(width int) string {
	header := b.styles.BotMsg.Render("Assistant") + " " + b.styles.Muted.Render(b.timestamp.Format(timeFormat))
	if b.Complete() {
		header += " " + b.styles.Success.Render("✓")
	}
	body := markdown.RenderMasked(b.doc, width, b.theme, b.buffer)
	if body == "" {
		return header
	}
	return header + "\n" + body
}
