package reveal

import (
	"strings"

	"github.com/fwojciec/examchat"
)

// Step is the outcome of State.Advance.
type Step int

const (
	// StepSuspend means a visible token was appended and the caller should
	// wait one reveal interval before advancing again.
	StepSuspend Step = iota
	// StepDone means nothing is left to reveal.
	StepDone
)

// State is the cursor of a single reveal. It is not safe for concurrent
// use; event loops step it from one goroutine.
type State struct {
	doc    examchat.Document
	leaves []examchat.Leaf
	mode   Mode

	leaf   int      // index of the current leaf
	tokens []string // tokens of the current leaf, nil until entered
	tok    int      // next token in tokens
	item   [2]int   // last list item shown

	begun   bool
	active  bool
	done    bool
	skip    bool
	skipped bool
}

// NewState returns an active reveal cursor positioned before the first leaf
// of doc.
func NewState(doc examchat.Document, mode Mode) *State {
	return &State{
		doc:    doc,
		leaves: doc.Leaves(),
		mode:   mode,
		item:   [2]int{-1, -1},
		active: true,
	}
}

// Advance appends tokens to surface up to and including the next
// non-whitespace token, or to the end of the document. A pending skip makes
// Advance finish the reveal instead. On a surface error the reveal is
// abandoned and the error returned.
func (s *State) Advance(surface Surface) (Step, error) {
	if !s.active {
		return StepDone, nil
	}
	if s.skip {
		s.skipped = true
		return StepDone, s.Finish(surface)
	}
	if err := s.begin(surface); err != nil {
		return StepDone, s.abandon(err)
	}
	for s.leaf < len(s.leaves) {
		leaf := s.leaves[s.leaf]
		if s.tokens == nil {
			if err := s.enter(surface, leaf); err != nil {
				return StepDone, s.abandon(err)
			}
			if len(s.tokens) == 0 {
				if err := surface.Append(leaf, ""); err != nil {
					return StepDone, s.abandon(err)
				}
				s.next()
				continue
			}
		}
		token := s.tokens[s.tok]
		s.tok++
		if s.tok == len(s.tokens) {
			s.next()
		}
		if err := surface.Append(leaf, token); err != nil {
			return StepDone, s.abandon(err)
		}
		if IsSpace(token) {
			continue
		}
		if err := surface.ScrollToBottom(); err != nil {
			return StepDone, s.abandon(err)
		}
		return StepSuspend, nil
	}
	return StepDone, s.complete(surface)
}

// Finish writes everything not yet revealed, one append per leaf, and
// completes the reveal.
func (s *State) Finish(surface Surface) error {
	if !s.active {
		return nil
	}
	if err := s.begin(surface); err != nil {
		return s.abandon(err)
	}
	for s.leaf < len(s.leaves) {
		leaf := s.leaves[s.leaf]
		if s.tokens == nil {
			if err := s.enter(surface, leaf); err != nil {
				return s.abandon(err)
			}
		}
		rest := strings.Join(s.tokens[s.tok:], "")
		s.next()
		if err := surface.Append(leaf, rest); err != nil {
			return s.abandon(err)
		}
	}
	if err := surface.ScrollToBottom(); err != nil {
		return s.abandon(err)
	}
	return s.complete(surface)
}

// Skip requests that the next Advance finish the reveal at once.
func (s *State) Skip() { s.skip = true }

// Active reports whether the reveal is still in progress.
func (s *State) Active() bool { return s.active }

// Done reports whether every leaf has been revealed.
func (s *State) Done() bool { return s.done }

// Skipped reports whether the reveal was completed by a skip.
func (s *State) Skipped() bool { return s.skipped }

// Document returns the document being revealed.
func (s *State) Document() examchat.Document { return s.doc }

func (s *State) begin(surface Surface) error {
	if s.begun {
		return nil
	}
	s.begun = true
	if f, ok := surface.(Framer); ok {
		return f.Begin(s.doc)
	}
	return nil
}

func (s *State) enter(surface Surface, leaf examchat.Leaf) error {
	s.tokens = Tokenize(leaf.Text, s.mode)
	if s.tokens == nil {
		s.tokens = []string{}
	}
	s.tok = 0
	if leaf.Item < 0 {
		return nil
	}
	item := [2]int{leaf.Block, leaf.Item}
	if item == s.item {
		return nil
	}
	s.item = item
	return surface.ShowItem(leaf.Block, leaf.Item)
}

func (s *State) next() {
	s.leaf++
	s.tokens = nil
	s.tok = 0
}

func (s *State) complete(surface Surface) error {
	s.active = false
	s.done = true
	if f, ok := surface.(Framer); ok && s.begun {
		return f.End()
	}
	return nil
}

func (s *State) abandon(err error) error {
	s.active = false
	return err
}
