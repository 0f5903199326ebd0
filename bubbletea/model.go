package bubbletea

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/backend"
	"github.com/fwojciec/examchat/goldmark"
	"github.com/fwojciec/examchat/markdown"
	"github.com/fwojciec/examchat/reveal"
	"pkt.systems/pslog"
)

var _ tea.Model = Model{}

// WelcomeMessage is revealed when the TUI starts.
const WelcomeMessage = "**Welcome!** ★ I'm your GATE/NET exam assistant.\n\n" +
	"- Ask about any syllabus topic\n" +
	"- Get a study plan or practice questions\n\n" +
	"Type a message and press Enter."

// Option configures a Model.
type Option func(*Model)

// WithUserID sets the user id sent with every request.
func WithUserID(id string) Option {
	return func(m *Model) { m.conv.UserID = id }
}

// WithLogger sets the diagnostic logger. Backend failures are only ever
// reported here.
func WithLogger(l pslog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithoutWelcome starts with an empty conversation.
func WithoutWelcome() Option {
	return func(m *Model) { m.welcome = false }
}

// Model is the Bubble Tea model for the exam assistant TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model
	// Spinner is the typing indicator. Exported for test access.
	Spinner spinner.Model

	backend examchat.Backend
	cfg     examchat.Config
	format  func(string) examchat.Document
	styles  Styles
	logger  pslog.Logger
	now     func() time.Time
	conv    *examchat.Conversation
	welcome bool

	blocks []MessageBlock
	active *BotMessageBlock // block being revealed, nil when idle

	seq      int // current exchange
	loading  bool
	thinking bool
	cancel   context.CancelFunc
	err      error
	ready    bool
}

// New creates a TUI Model that sends messages to client. Without WithUserID
// the conversation gets a freshly generated user id.
func New(client examchat.Backend, cfg examchat.Config, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about any GATE/NET topic..."
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = examchat.MaxMessageLength

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	format := markdown.Format
	if cfg.Formatter == examchat.FormatterCommonMark {
		format = goldmark.Format
	}

	m := Model{
		Input:   ti,
		Spinner: sp,
		backend: client,
		cfg:     cfg,
		format:  format,
		styles:  NewStyles(cfg.Theme),
		logger:  pslog.NewWithOptions(io.Discard, pslog.Options{}),
		now:     time.Now,
		conv:    &examchat.Conversation{},
		welcome: true,
	}
	for _, o := range opts {
		o(&m)
	}
	if m.conv.UserID == "" {
		m.conv.UserID = backend.NewUserID()
	}
	m.conv.StartedAt = m.now()
	m.Spinner.Style = m.styles.Accent
	return m
}

// Loading returns whether a request is in flight.
func (m Model) Loading() bool { return m.loading }

// Thinking returns whether the model is pausing before a reveal.
func (m Model) Thinking() bool { return m.thinking }

// Revealing returns whether a reply is being revealed.
func (m Model) Revealing() bool { return m.active != nil }

// Busy reports whether input is currently disabled.
func (m Model) Busy() bool { return m.loading || m.thinking || m.active != nil }

// Err returns the last input validation error, if any.
func (m Model) Err() error { return m.err }

// Conversation returns the transcript.
func (m Model) Conversation() *examchat.Conversation { return m.conv }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResponseMsg:
		return m.handleResponse(msg)

	case ThinkDoneMsg:
		if msg.Seq != m.seq || !m.thinking {
			return m, nil
		}
		m.thinking = false
		return m.stepReveal()

	case RevealTickMsg:
		if msg.Seq != m.seq || m.active == nil {
			return m, nil
		}
		return m.stepReveal()

	case spinner.TickMsg:
		if !m.loading && !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.Busy() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	// Output area.
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")

	// Status line.
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	// Input area.
	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		if m.welcome {
			m = m.addWelcome()
		}
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width - lipgloss.Width(m.Input.Prompt) - 1
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

// addWelcome appends the welcome message fully revealed.
func (m Model) addWelcome() Model {
	block := NewBotMessageBlock(m.format(WelcomeMessage), m.now(), m.cfg.Mode, m.cfg.Theme, m.styles)
	if err := block.Finish(); err != nil {
		m.logger.Debug("welcome.failed", "err", err)
	}
	m.blocks = append(m.blocks, block)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.cancel != nil {
			m.cancel()
		}
		if m.active != nil {
			m.active.Close()
		}
		return m, tea.Quit

	case tea.KeyEsc, tea.KeySpace, tea.KeyTab:
		if m.active != nil {
			m.active.Skip()
			return m.stepReveal()
		}
		if msg.Type == tea.KeyEsc {
			if m.Input.Value() != "" {
				m.Input.SetValue("")
				m.err = nil
				m = m.styleInput()
			}
			return m, nil
		}

	case tea.KeyEnter:
		if m.Busy() {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !m.Busy() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
		m.err = nil
		m = m.styleInput()
	}
	return m, tea.Batch(cmds...)
}

// styleInput colors the input once it nears the length limit.
func (m Model) styleInput() Model {
	if utf8.RuneCountInString(m.Input.Value()) > examchat.WarnMessageLength {
		m.Input.TextStyle = m.styles.Error
	} else {
		m.Input.TextStyle = lipgloss.NewStyle()
	}
	return m
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	req := examchat.ChatRequest{Message: text, UserID: m.conv.UserID}
	if err := req.Validate(); err != nil {
		m.err = err
		return m, nil
	}

	m.Input.SetValue("")
	m.err = nil
	m = m.styleInput()

	now := m.now()
	m.record(examchat.UserMessage{Text: text, Timestamp: now})
	m.blocks = append(m.blocks, NewUserMessageBlock(text, now, m.styles))
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.seq++
	m.loading = true
	m.Input.Blur()

	return m, tea.Batch(
		sendChat(ctx, m.backend, req, m.seq),
		m.Spinner.Tick,
	)
}

func (m Model) handleResponse(msg ResponseMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq || !m.loading {
		return m, nil
	}
	m.loading = false
	m.cancel = nil
	now := m.now()

	if msg.Err != nil {
		m.logger.Error("chat.failed", "seq", msg.Seq, "err", msg.Err)
		m.record(examchat.FailedMessage{Timestamp: now})
		m.blocks = append(m.blocks, NewErrorBlock(now, m.styles))
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, m.Input.Focus()
	}

	m.record(examchat.BotMessage{Text: msg.Response.Response, Timestamp: now})
	block := NewBotMessageBlock(m.format(msg.Response.Response), now, m.cfg.Mode, m.cfg.Theme, m.styles)
	m.blocks = append(m.blocks, block)
	m.active = block
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	if m.cfg.ThinkDelay > 0 {
		m.thinking = true
		seq := m.seq
		return m, tea.Batch(
			tea.Tick(m.cfg.ThinkDelay, func(time.Time) tea.Msg { return ThinkDoneMsg{Seq: seq} }),
			m.Spinner.Tick,
		)
	}
	return m.stepReveal()
}

func (m Model) record(msg examchat.Message) {
	m.conv.Append(msg)
	m.logger.Debug("chat.message", "sender", string(msg.Sender()), "count", len(m.conv.Messages))
}

// stepReveal advances the active reveal and schedules the next tick.
func (m Model) stepReveal() (tea.Model, tea.Cmd) {
	if m.active == nil {
		return m, nil
	}
	m.thinking = false
	step, scroll, err := m.active.Advance()
	m.Viewport.SetContent(m.renderContent())
	if scroll || step == reveal.StepDone {
		m.Viewport.GotoBottom()
	}
	if err != nil {
		m.logger.Debug("reveal.abandoned", "seq", m.seq, "err", err)
	}
	if err != nil || step == reveal.StepDone {
		m.active = nil
		return m, m.Input.Focus()
	}
	return m, revealTick(m.cfg.Speed, m.seq)
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.loading:
		return m.Spinner.View() + m.styles.Muted.Render(" Assistant is typing...")
	case m.thinking:
		return m.Spinner.View() + m.styles.Muted.Render(" Thinking...")
	case m.active != nil:
		return m.styles.Muted.Render("Esc, Space or Tab to skip")
	case m.err != nil:
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	hint := m.styles.Muted.Render("Enter to send, Esc to clear, Ctrl+C to quit")
	if n := utf8.RuneCountInString(m.Input.Value()); n > 0 {
		count := fmt.Sprintf("  %d/%d", n, examchat.MaxMessageLength)
		if n > examchat.WarnMessageLength {
			return hint + m.styles.Error.Render(count)
		}
		return hint + m.styles.Muted.Render(count)
	}
	return hint
}

// sendChat performs the request off the update loop.
func sendChat(ctx context.Context, client examchat.Backend, req examchat.ChatRequest, seq int) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(ctx, req)
		return ResponseMsg{Seq: seq, Response: resp, Err: err}
	}
}

func revealTick(speed time.Duration, seq int) tea.Cmd {
	if speed <= 0 {
		return func() tea.Msg { return RevealTickMsg{Seq: seq} }
	}
	return tea.Tick(speed, func(time.Time) tea.Msg { return RevealTickMsg{Seq: seq} })
}
