package bubbletea

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/examchat"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock stands in for a reply that could not be obtained. It always
// shows examchat.FailureMessage; the cause is logged, not displayed.
type ErrorBlock struct {
	timestamp time.Time
	styles    Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(timestamp time.Time, styles Styles) *ErrorBlock {
	return &ErrorBlock{timestamp: timestamp, styles: styles}
}

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	header := b.styles.BotMsg.Render("Assistant") + " " + b.styles.Muted.Render(b.timestamp.Format(timeFormat))
	body := b.styles.Error.Render(lipgloss.NewStyle().Width(width).Render(examchat.FailureMessage))
	return header + "\n" + body
}
