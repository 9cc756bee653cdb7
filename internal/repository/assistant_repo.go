package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/pkg/httpclient"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

// AssistantRepository talks to the external conversational backend. Every
// method performs exactly one attempt; retrying is a user action, never an
// automatic one.
type AssistantRepository interface {
	FetchWelcome(ctx context.Context) (*dto.ChatResponse, error)
	SendMessage(ctx context.Context, text, sessionID, userName string) (*dto.ChatResponse, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type assistantRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewAssistantRepository(cfg *config.Config, log *logger.Logger) AssistantRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Assistant.MaxRequestPerMin)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &assistantRepository{
		httpClient:     httpclient.New(cfg.Assistant.BaseURL, cfg.Assistant.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *assistantRepository) FetchWelcome(ctx context.Context) (*dto.ChatResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, &dto.TransportError{Err: err}
	}

	var welcome dto.ChatResponse
	resp, err := r.httpClient.Get(ctx, "/chat/welcome", nil, &welcome)
	if err != nil {
		return nil, &dto.TransportError{Err: fmt.Errorf("failed to fetch welcome message: %w", err)}
	}

	return r.checkResponse(ctx, resp, &welcome)
}

func (r *assistantRepository) SendMessage(ctx context.Context, text, sessionID, userName string) (*dto.ChatResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, &dto.TransportError{Err: err}
	}

	// sessionID stays off the wire until the backend has assigned one
	body := dto.ChatRequest{
		Message:   text,
		SessionID: sessionID,
		UserName:  userName,
	}

	var reply dto.ChatResponse
	resp, err := r.httpClient.Post(ctx, "/chat/message", body, &reply)
	if err != nil {
		return nil, &dto.TransportError{Err: fmt.Errorf("failed to send message: %w", err)}
	}

	return r.checkResponse(ctx, resp, &reply)
}

// ClearSession tells the backend to forget a conversation. Callers treat
// failures as best-effort and ignore them.
func (r *assistantRepository) ClearSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("/chat/clear/%s", sessionID)
	resp, err := r.httpClient.Post(ctx, endpoint, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("clear session returned status: %d", resp.StatusCode)
	}
	return nil
}

func (r *assistantRepository) checkResponse(ctx context.Context, resp *httpclient.BaseResponse, reply *dto.ChatResponse) (*dto.ChatResponse, error) {
	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Assistant API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, &dto.TransportError{
			StatusCode:    resp.StatusCode,
			ServerMessage: parseServerError(resp.Body),
		}
	}

	// a 200 without the message field is as unusable as a failed request
	if len(reply.Message) == 0 {
		r.logger.ErrorContext(ctx, "Assistant API returned malformed response",
			logger.StringField("body", string(resp.Body)))
		return nil, &dto.TransportError{Err: fmt.Errorf("assistant response missing message field")}
	}

	return reply, nil
}

// parseServerError pulls a human-readable message out of an error body when
// the backend supplies one.
func parseServerError(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Error
}
