// Package mock provides test doubles for examchat interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/reveal"
)

// Interface compliance checks.
var (
	_ examchat.Backend = (*Backend)(nil)
	_ reveal.Surface   = (*Surface)(nil)
)

// Backend is a test double for examchat.Backend.
// Set ChatFn before calling Chat.
type Backend struct {
	ChatFn func(ctx context.Context, req examchat.ChatRequest) (examchat.ChatResponse, error)
}

// Chat delegates to ChatFn.
func (b *Backend) Chat(ctx context.Context, req examchat.ChatRequest) (examchat.ChatResponse, error) {
	return b.ChatFn(ctx, req)
}

// Surface is a test double for reveal.Surface.
// Set the function fields for the methods you need.
type Surface struct {
	AppendFn         func(leaf examchat.Leaf, token string) error
	ShowItemFn       func(block, item int) error
	ScrollToBottomFn func() error
}

// Append delegates to AppendFn.
func (s *Surface) Append(leaf examchat.Leaf, token string) error {
	return s.AppendFn(leaf, token)
}

// ShowItem delegates to ShowItemFn.
func (s *Surface) ShowItem(block, item int) error {
	return s.ShowItemFn(block, item)
}

// ScrollToBottom delegates to ScrollToBottomFn.
func (s *Surface) ScrollToBottom() error {
	return s.ScrollToBottomFn()
}
