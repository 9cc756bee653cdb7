package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/internal/service"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

type stubAssistantRepo struct {
	welcome *dto.ChatResponse
	reply   *dto.ChatResponse
}

func (s *stubAssistantRepo) FetchWelcome(ctx context.Context) (*dto.ChatResponse, error) {
	return s.welcome, nil
}

func (s *stubAssistantRepo) SendMessage(ctx context.Context, text, sessionID, userName string) (*dto.ChatResponse, error) {
	return s.reply, nil
}

func (s *stubAssistantRepo) ClearSession(ctx context.Context, sessionID string) error {
	return nil
}

type fakeChatService struct {
	conversationID string
	session        *service.ChatSession
	submitErr      error
	lookupErr      error
}

func (f *fakeChatService) StartConversation(ctx context.Context) (string, *service.ChatSession, error) {
	return f.conversationID, f.session, nil
}

func (f *fakeChatService) Session(conversationID string) (*service.ChatSession, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if conversationID != f.conversationID {
		return nil, service.ErrConversationNotFound
	}
	return f.session, nil
}

func (f *fakeChatService) Submit(ctx context.Context, conversationID, text string) ([]dto.Message, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if conversationID != f.conversationID {
		return nil, service.ErrConversationNotFound
	}
	return f.session.Submit(ctx, text)
}

func (f *fakeChatService) Reset(ctx context.Context, conversationID string) (*service.ChatSession, error) {
	if conversationID != f.conversationID {
		return nil, service.ErrConversationNotFound
	}
	if err := f.session.Reset(ctx); err != nil {
		return nil, err
	}
	return f.session, nil
}

type fakeTickerService struct {
	tickers []dto.Ticker
}

func (f *fakeTickerService) Start(ctx context.Context) error          { return nil }
func (f *fakeTickerService) Stop()                                    {}
func (f *fakeTickerService) Tickers(ctx context.Context) []dto.Ticker { return f.tickers }
func (f *fakeTickerService) Refresh(ctx context.Context) error        { return nil }

func testHandler(t *testing.T, chat service.ChatService, tickers service.TickerService) *echo.Echo {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := &config.Config{
		Widget: config.WidgetConfig{
			PersonaName:     "Alice",
			HoldingsPreview: 3,
			SessionTTL:      30 * time.Minute,
		},
	}

	e := echo.New()
	handler := NewHttpAPIHandler(context.Background(), cfg, log, e, goValidator.New(), &service.Service{
		ChatService:   chat,
		TickerService: tickers,
	})
	handler.SetupRoutes()
	return e
}

func testChatSession(t *testing.T, welcomeText string, reply *dto.ChatResponse) *service.ChatSession {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	quoted, _ := json.Marshal(welcomeText)
	repo := &stubAssistantRepo{
		welcome: &dto.ChatResponse{ID: "w1", Message: quoted, Timestamp: "2024-01-01T00:00:00Z"},
		reply:   reply,
	}
	session := service.NewChatSession(log, repo, "Alice")
	require.NoError(t, session.Initialize(context.Background()))
	return session
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeConversation(t *testing.T, rec *httptest.ResponseRecorder) conversationView {
	t.Helper()
	var resp struct {
		Code int              `json:"code"`
		Data conversationView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func TestStartChat(t *testing.T) {
	session := testChatSession(t, "Welcome aboard", nil)
	e := testHandler(t, &fakeChatService{conversationID: "conv-1", session: session}, &fakeTickerService{})

	rec := postJSON(e, "/api/v1/chat/start", `{"view":"widget"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeConversation(t, rec)
	assert.Equal(t, "conv-1", view.ConversationID)
	assert.True(t, view.Connected)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, dto.OriginAssistant, view.Messages[0].Origin)
	assert.Contains(t, string(view.Messages[0].HTML), "Welcome aboard")
}

func TestStartChat_RejectsUnknownView(t *testing.T) {
	session := testChatSession(t, "Welcome", nil)
	e := testHandler(t, &fakeChatService{conversationID: "conv-1", session: session}, &fakeTickerService{})

	rec := postJSON(e, "/api/v1/chat/start", `{"view":"mobile"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendChatMessage(t *testing.T) {
	reply := &dto.ChatResponse{
		ID:        "a1",
		Message:   json.RawMessage(`"**Bitcoin** is at $43,250"`),
		Timestamp: "2024-01-01T00:00:00Z",
	}
	session := testChatSession(t, "Welcome", reply)
	e := testHandler(t, &fakeChatService{conversationID: "conv-1", session: session}, &fakeTickerService{})

	rec := postJSON(e, "/api/v1/chat/message", `{"conversationId":"conv-1","message":"price of bitcoin?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeConversation(t, rec)
	require.Len(t, view.Messages, 3)
	assert.Equal(t, dto.OriginUser, view.Messages[1].Origin)
	assert.Contains(t, string(view.Messages[2].HTML), "<strong>Bitcoin</strong>")
}

func TestSendChatMessage_Validation(t *testing.T) {
	session := testChatSession(t, "Welcome", nil)
	e := testHandler(t, &fakeChatService{conversationID: "conv-1", session: session}, &fakeTickerService{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing message", body: `{"conversationId":"conv-1"}`},
		{name: "missing conversation id", body: `{"message":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(e, "/api/v1/chat/message", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSendChatMessage_ErrorMapping(t *testing.T) {
	session := testChatSession(t, "Welcome", nil)

	tests := []struct {
		name       string
		svc        *fakeChatService
		wantStatus int
	}{
		{
			name:       "unknown conversation",
			svc:        &fakeChatService{conversationID: "other", session: session},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "busy conversation",
			svc:        &fakeChatService{conversationID: "conv-1", session: session, submitErr: service.ErrBusy},
			wantStatus: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testHandler(t, tt.svc, &fakeTickerService{})
			rec := postJSON(e, "/api/v1/chat/message", `{"conversationId":"conv-1","message":"hi"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestResetChat(t *testing.T) {
	reply := &dto.ChatResponse{ID: "a1", Message: json.RawMessage(`"ok"`), Timestamp: "2024-01-01T00:00:00Z"}
	session := testChatSession(t, "Welcome", reply)
	_, err := session.Submit(context.Background(), "hi")
	require.NoError(t, err)
	require.Len(t, session.Messages(), 3)

	e := testHandler(t, &fakeChatService{conversationID: "conv-1", session: session}, &fakeTickerService{})

	rec := postJSON(e, "/api/v1/chat/reset", `{"conversationId":"conv-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeConversation(t, rec)
	assert.Len(t, view.Messages, 1)
}

func TestGetTickers(t *testing.T) {
	session := testChatSession(t, "Welcome", nil)
	tickers := &fakeTickerService{tickers: []dto.Ticker{
		{Symbol: "BTCUSDT", Price: 43250.5},
		{Symbol: "UNKNOWN", Price: 1.5},
	}}
	e := testHandler(t, &fakeChatService{conversationID: "conv-1", session: session}, tickers)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []tickerView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Bitcoin", resp.Data[0].Name)
	assert.Equal(t, "$43,250.50", resp.Data[0].PriceDisplay)
	assert.Equal(t, "UNKNOWN", resp.Data[1].Name)
}
