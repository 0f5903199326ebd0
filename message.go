package examchat

import "time"

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a sealed interface representing one entry of a conversation.
// The unexported marker method prevents external implementations.
// Sender() returns the author without requiring a type switch.
type Message interface {
	isMessage()
	Sender() Sender
}

// UserMessage is text typed by the user.
type UserMessage struct {
	Text      string
	Timestamp time.Time
}

func (UserMessage) isMessage() {}

// Sender returns SenderUser.
func (UserMessage) Sender() Sender { return SenderUser }

// BotMessage is a backend reply. Text is the raw response before
// formatting.
type BotMessage struct {
	Text      string
	Timestamp time.Time
}

func (BotMessage) isMessage() {}

// Sender returns SenderBot.
func (BotMessage) Sender() Sender { return SenderBot }

// FailedMessage replaces a bot reply when the exchange failed. It is
// rendered as FailureMessage.
type FailedMessage struct {
	Timestamp time.Time
}

func (FailedMessage) isMessage() {}

// Sender returns SenderBot.
func (FailedMessage) Sender() Sender { return SenderBot }

// Interface compliance checks.
var (
	_ Message = UserMessage{}
	_ Message = BotMessage{}
	_ Message = FailedMessage{}
)
