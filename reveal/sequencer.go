package reveal

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/examchat"
	"pkt.systems/pslog"
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithMode sets the reveal granularity. The default is ModeWord.
func WithMode(mode Mode) Option {
	return func(s *Sequencer) {
		s.mode = mode
	}
}

// WithAfterFunc replaces time.After for the delay between tokens.
func WithAfterFunc(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Sequencer) {
		s.after = after
	}
}

// Sequencer reveals documents on a single surface, one at a time.
type Sequencer struct {
	surface Surface
	mode    Mode
	after   func(time.Duration) <-chan time.Time

	mu      sync.Mutex
	current *Handle
}

// NewSequencer returns a Sequencer bound to surface.
func NewSequencer(surface Surface, opts ...Option) *Sequencer {
	s := &Sequencer{
		surface: surface,
		mode:    ModeWord,
		after:   time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reveal starts revealing doc with speed between visible tokens and
// returns immediately. If a reveal is still running on this Sequencer it is
// skipped and waited for first, so its text is complete before the new one
// starts. Cancelling ctx abandons the reveal.
func (s *Sequencer) Reveal(ctx context.Context, doc examchat.Document, speed time.Duration) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Skip()
		s.current.Wait()
	}
	h := &Handle{
		skip: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.current = h
	go s.run(ctx, NewState(doc, s.mode), h, speed)
	return h
}

func (s *Sequencer) run(ctx context.Context, st *State, h *Handle, speed time.Duration) {
	defer close(h.done)
	logger := pslog.Ctx(ctx)
	for {
		select {
		case <-h.skip:
			st.Skip()
		case <-ctx.Done():
			logger.Debug("reveal.abandoned", "reason", ctx.Err())
			return
		default:
		}
		step, err := st.Advance(s.surface)
		if err != nil {
			logger.Debug("reveal.abandoned", "err", err)
			return
		}
		if step == StepDone {
			logger.Debug("reveal.done", "skipped", st.Skipped())
			return
		}
		if speed <= 0 {
			continue
		}
		select {
		case <-h.skip:
		case <-ctx.Done():
		case <-s.after(speed):
		}
	}
}

// Handle controls one running reveal.
type Handle struct {
	skip     chan struct{}
	skipOnce sync.Once
	done     chan struct{}
}

// Skip finishes the reveal immediately. It is safe to call more than once
// and after the reveal has completed.
func (h *Handle) Skip() {
	h.skipOnce.Do(func() { close(h.skip) })
}

// Done is closed when the reveal has completed or been abandoned.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until Done is closed.
func (h *Handle) Wait() { <-h.done }
