package dto

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry in a conversation log. Content is a tagged union:
// Kind "text" means Text holds the content, "portfolio" or "profit_loss"
// mean the matching snapshot pointer is set. Entries are immutable once
// appended.
type Message struct {
	ID         string              `json:"id"`
	Origin     string              `json:"origin"`
	Kind       string              `json:"kind"`
	Text       string              `json:"text,omitempty"`
	Portfolio  *PortfolioSnapshot  `json:"portfolio,omitempty"`
	ProfitLoss *ProfitLossSnapshot `json:"profit_loss,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewUserMessage builds a locally-authored text entry. IDs for local
// messages are client-generated, the backend never sees them.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Origin:    OriginUser,
		Kind:      KindText,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAssistantText builds a remotely-authored plain-text entry.
func NewAssistantText(id, text string, createdAt time.Time) Message {
	if id == "" {
		id = uuid.NewString()
	}
	return Message{
		ID:        id,
		Origin:    OriginAssistant,
		Kind:      KindText,
		Text:      text,
		CreatedAt: createdAt,
	}
}
