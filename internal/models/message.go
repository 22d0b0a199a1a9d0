package models

import "time"

// SenderAI is the reserved sender name for model replies. Any other sender
// string is treated as a human participant.
const SenderAI = "AI"

// Prompt roles understood by the model backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single immutable entry in the conversation log.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// PostMessageRequest is the payload for POST /messages.
type PostMessageRequest struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// PromptUnit is one role-tagged piece of model context.
type PromptUnit struct {
	Role string
	Text string
}

// ErrorResponse is the wire shape for every error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WSMessage wraps payloads pushed over the WebSocket feed.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
