package dto

import (
	"net/http"
	"time"
)

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

// Widget API request bodies. View selects the holdings-display policy:
// "widget" shows a capped preview, "page" shows every holding.
type ChatStartRequest struct {
	View string `json:"view" validate:"omitempty,oneof=widget page"`
}

type ChatMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	Message        string `json:"message" validate:"required"`
	View           string `json:"view" validate:"omitempty,oneof=widget page"`
}

type ChatResetRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	View           string `json:"view" validate:"omitempty,oneof=widget page"`
}

// Ticker is one hero-section price entry, refreshed from the exchange API.
type Ticker struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}
