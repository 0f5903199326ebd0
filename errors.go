package examchat

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrBackend indicates the chat backend could not be reached or
	// answered with a non-success status.
	ErrBackend = errors.New("backend request failed")

	// ErrSurfaceClosed indicates a reveal surface was torn down.
	ErrSurfaceClosed = errors.New("surface closed")
)

// FailureMessage is the only text shown to the user when a chat exchange
// fails. Details go to the diagnostic log, never to the conversation.
const FailureMessage = "Sorry, I encountered an error. Please try again."
