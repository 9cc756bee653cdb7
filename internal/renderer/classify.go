package renderer

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
)

// Classify returns the message kind for a raw wire payload. Only an object
// carrying a recognized "type" discriminant classifies as structured;
// strings, nulls and unknown object shapes all classify as text.
func Classify(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return dto.KindText
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return dto.KindText
	}

	switch probe.Type {
	case dto.KindPortfolio:
		return dto.KindPortfolio
	case dto.KindProfitLoss:
		return dto.KindProfitLoss
	default:
		return dto.KindText
	}
}

// NewAssistantMessage classifies a backend payload and builds the log entry
// for it. Structured payloads that fail to decode, and objects with no
// recognized discriminant, degrade to empty text rather than an error.
func NewAssistantMessage(id string, raw json.RawMessage, createdAt time.Time) dto.Message {
	if id == "" {
		id = uuid.NewString()
	}

	msg := dto.Message{
		ID:        id,
		Origin:    dto.OriginAssistant,
		Kind:      Classify(raw),
		CreatedAt: createdAt,
	}

	switch msg.Kind {
	case dto.KindPortfolio:
		var snapshot dto.PortfolioSnapshot
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			msg.Kind = dto.KindText
			return msg
		}
		msg.Portfolio = &snapshot
	case dto.KindProfitLoss:
		var snapshot dto.ProfitLossSnapshot
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			msg.Kind = dto.KindText
			return msg
		}
		msg.ProfitLoss = &snapshot
	default:
		var text string
		// non-string payloads stay as empty text
		_ = json.Unmarshal(raw, &text)
		msg.Text = text
	}

	return msg
}
