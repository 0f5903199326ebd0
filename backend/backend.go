// Package backend implements [examchat.Backend] over the exam assistant's
// HTTP API.
//
// The API has two endpoints: POST /api/chat answers one message and GET
// /api/health reports liveness. Any non-2xx status is a failure; requests are
// never retried.
package backend

import "github.com/google/uuid"

const (
	chatPath   = "/api/chat"
	healthPath = "/api/health"
)

// apiChatRequest is the JSON body sent to the chat endpoint.
type apiChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// apiChatResponse is the JSON body returned by the chat endpoint.
type apiChatResponse struct {
	Response    string `json:"response"`
	Timestamp   string `json:"timestamp,omitempty"`
	MessageType string `json:"message_type,omitempty"`
}

type apiHealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// apiErrorResponse is the error body returned with non-2xx statuses.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// NewUserID returns a fresh user identifier for one client session.
func NewUserID() string {
	return "user_" + uuid.NewString()
}
