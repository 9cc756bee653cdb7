package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChatRequest is the body sent to the assistant backend. SessionID is only
// attached once the backend has assigned one.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	UserName  string `json:"userName,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the assistant backend's reply for both the welcome fetch
// and a sent message. Message is either a plain string or a structured
// snapshot object carrying a "type" discriminant, so it stays raw until
// classification.
type ChatResponse struct {
	ID        string          `json:"id"`
	Message   json.RawMessage `json:"message"`
	Timestamp string          `json:"timestamp"`
	Model     string          `json:"model,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Usage     *Usage          `json:"usage,omitempty"`
}

// CreatedAt parses the backend's ISO-8601 timestamp, falling back to the
// current time when it is absent or malformed. The value is display-only,
// log order never depends on it.
func (r *ChatResponse) CreatedAt() time.Time {
	if r.Timestamp == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Now()
	}
	return t
}

// TransportError carries the HTTP status code and any server-supplied error
// message through the transport boundary, so the session layer can map it to
// user-facing wording without matching on error strings.
type TransportError struct {
	StatusCode    int
	ServerMessage string
	Err           error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assistant request failed: %v", e.Err)
	}
	if e.ServerMessage != "" {
		return fmt.Sprintf("assistant returned status %d: %s", e.StatusCode, e.ServerMessage)
	}
	return fmt.Sprintf("assistant returned status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
