// Package bubbletea provides a Bubble Tea TUI for the exam assistant.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/examchat"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// ResponseMsg delivers the outcome of one chat request. Seq identifies the
// exchange so late answers to abandoned exchanges are dropped.
type ResponseMsg struct {
	Seq      int
	Response examchat.ChatResponse
	Err      error
}

// ThinkDoneMsg ends the pause between a response arriving and its reveal.
type ThinkDoneMsg struct {
	Seq int
}

// RevealTickMsg advances the active reveal by one token.
type RevealTickMsg struct {
	Seq int
}
