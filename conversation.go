package examchat

import "time"

// Conversation is the in-memory transcript of one client run. It is never
// persisted.
type Conversation struct {
	UserID    string
	Messages  []Message
	StartedAt time.Time
}

// Append adds a message to the transcript.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// Last returns the most recent message, or nil for an empty transcript.
func (c *Conversation) Last() Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}
