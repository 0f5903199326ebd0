package examchat

import "context"

// ChatRequest is one user message sent to the backend.
type ChatRequest struct {
	Message string
	UserID  string
}

// ChatResponse is the backend's answer. Response holds the raw
// markdown-ish text to format and reveal.
type ChatResponse struct {
	Response    string
	Timestamp   string
	MessageType string
}

// HealthStatus is the backend's health report.
type HealthStatus struct {
	Status  string
	Message string
}

// Healthy reports whether the backend declared itself healthy.
func (h HealthStatus) Healthy() bool { return h.Status == "healthy" }

// Backend is the chat endpoint the client talks to. Implementations return
// an error wrapping ErrBackend for transport failures and non-success
// statuses.
type Backend interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
