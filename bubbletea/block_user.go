package bubbletea

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a message typed by the user.
type UserMessageBlock struct {
	text      string
	timestamp time.Time
	styles    Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, timestamp time.Time, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, timestamp: timestamp, styles: styles}
}

func (b *UserMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *UserMessageBlock) View(width int) string {
	header := b.styles.UserMsg.Render("You") + " " + b.styles.Muted.Render(b.timestamp.Format(timeFormat))
	body := lipgloss.NewStyle().Width(width).Render(b.text)
	return header + "\n" + body
}
