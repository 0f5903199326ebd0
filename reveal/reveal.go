// Package reveal animates a formatted document onto a surface token by
// token. State is a steppable cursor for event loops that own scheduling;
// Sequencer drives a State from a goroutine with a per-token delay.
package reveal

import "github.com/fwojciec/examchat"

// Surface receives revealed text. A non-nil error from any method means the
// surface is gone and the reveal is abandoned without further calls.
type Surface interface {
	// Append makes token visible at the end of leaf.
	Append(leaf examchat.Leaf, token string) error
	// ShowItem makes a list item visible. It is called once per item,
	// before the item's first token.
	ShowItem(block, item int) error
	// ScrollToBottom keeps the newest token in view.
	ScrollToBottom() error
}

// Framer is implemented by surfaces that need to know where a reveal starts
// and ends.
type Framer interface {
	Begin(doc examchat.Document) error
	End() error
}

// Mode selects the reveal granularity.
type Mode = examchat.RevealMode

const (
	ModeWord     = examchat.RevealWord
	ModeGrapheme = examchat.RevealGrapheme
)
