package bubbletea_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/examchat"
	bt "github.com/fwojciec/examchat/bubbletea"
	"github.com/fwojciec/examchat/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 14, 5, 0, 0, time.UTC)

// testConfig reveals without delays so tests can step ticks directly.
func testConfig() examchat.Config {
	cfg := examchat.DefaultConfig()
	cfg.Speed = 0
	cfg.ThinkDelay = 0
	return cfg
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, backend examchat.Backend, cfg examchat.Config, opts ...bt.Option) bt.Model {
	t.Helper()
	return initModelWithSize(t, backend, cfg, 80, 24, opts...)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, backend examchat.Backend, cfg examchat.Config, width, height int, opts ...bt.Option) bt.Model {
	t.Helper()
	opts = append([]bt.Option{bt.WithUserID("user_test"), bt.WithClock(func() time.Time { return fixedNow })}, opts...)
	m := bt.New(backend, cfg, opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// typeInput sends each rune of s as a key press.
func typeInput(t *testing.T, m bt.Model, s string) bt.Model {
	t.Helper()
	for _, r := range s {
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// submit types s, presses Enter and returns the model with the command the
// model issued.
func submit(t *testing.T, m bt.Model, s string) (bt.Model, tea.Cmd) {
	t.Helper()
	m = typeInput(t, m, s)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// finishReveal feeds reveal ticks until the active reveal completes.
func finishReveal(t *testing.T, m bt.Model) bt.Model {
	t.Helper()
	for i := 0; m.Revealing(); i++ {
		require.Less(t, i, 1000, "reveal did not finish")
		m = updateModel(t, m, bt.RevealTickMsg{Seq: bt.Seq(m)})
	}
	return m
}

// responseFrom runs the commands batched by a submit and returns the
// ResponseMsg among their results.
func responseFrom(t *testing.T, cmd tea.Cmd) bt.ResponseMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if resp, ok := c().(bt.ResponseMsg); ok {
				return resp
			}
		}
		t.Fatal("no ResponseMsg in batch")
	}
	resp, ok := msg.(bt.ResponseMsg)
	require.True(t, ok, "expected ResponseMsg, got %T", msg)
	return resp
}

// replyWith returns a backend that answers every message with text.
func replyWith(text string) *mock.Backend {
	return &mock.Backend{
		ChatFn: func(_ context.Context, _ examchat.ChatRequest) (examchat.ChatResponse, error) {
			return examchat.ChatResponse{Response: text, MessageType: "bot"}, nil
		},
	}
}

// nopBackend fails the test if called.
func nopBackend(t *testing.T) *mock.Backend {
	return &mock.Backend{
		ChatFn: func(_ context.Context, _ examchat.ChatRequest) (examchat.ChatResponse, error) {
			t.Error("unexpected Chat call")
			return examchat.ChatResponse{}, nil
		},
	}
}
