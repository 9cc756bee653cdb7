package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/internal/renderer"
	"github.com/koinbxtitas/crypto-frontend/internal/repository"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

// Session states. Submit is only accepted while Idle, so at most one
// request is outstanding per conversation; overlapping submits are rejected,
// never queued.
const (
	StateIdle = iota
	StateAwaitingWelcome
	StateAwaitingResponse
)

// ErrBusy is returned when a submit arrives while another request for the
// same conversation is still in flight.
var ErrBusy = errors.New("a request is already in flight for this conversation")

const (
	fallbackWelcomeID = "welcome-fallback"

	offlineMessage   = "I'm sorry, I'm having trouble connecting right now. Please try again later."
	authErrorMessage = "Authentication error. Please check the API configuration."
	rateLimitMessage = "Too many requests. Please wait a moment before trying again."
	serverErrMessage = "Server error. Our team has been notified. Please try again later."
)

// ChatSession owns one conversation: the backend-assigned session id, the
// append-only message log and the connectivity flag. All transport failures
// stop at this boundary and become log entries, nothing propagates to the
// delivery layer as a fault.
type ChatSession struct {
	mu        sync.Mutex
	state     int
	sessionID string
	messages  []dto.Message
	connected bool

	userName string
	log      *logger.Logger
	repo     repository.AssistantRepository
}

func NewChatSession(log *logger.Logger, repo repository.AssistantRepository, userName string) *ChatSession {
	return &ChatSession{
		state:     StateIdle,
		connected: true,
		userName:  userName,
		log:       log,
		repo:      repo,
	}
}

// Initialize seeds the log with the backend's welcome message, or with the
// canned offline greeting when the welcome fetch fails.
func (s *ChatSession) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateAwaitingWelcome
	s.mu.Unlock()

	resp, err := s.repo.FetchWelcome(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle

	if err != nil {
		s.log.WarnContext(ctx, "Welcome fetch failed, seeding offline greeting", logger.ErrorField(err))
		s.messages = []dto.Message{newFallbackWelcome(s.userName)}
		s.connected = false
		return nil
	}

	s.messages = []dto.Message{renderer.NewAssistantMessage(resp.ID, resp.Message, resp.CreatedAt())}
	s.connected = true
	s.rememberSessionID(resp.SessionID)
	return nil
}

// Submit sends one user message and appends the classified reply. The user
// entry is appended before the network call resolves; on failure exactly one
// error-fallback entry is appended instead of a reply. Empty or
// all-whitespace input is a no-op.
func (s *ChatSession) Submit(ctx context.Context, text string) ([]dto.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state = StateAwaitingResponse
	userMsg := dto.NewUserMessage(text)
	s.messages = append(s.messages, userMsg)
	sessionID := s.sessionID
	s.mu.Unlock()

	resp, err := s.repo.SendMessage(ctx, text, sessionID, s.userName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle

	if err != nil {
		s.log.WarnContext(ctx, "Send message failed", logger.ErrorField(err))
		s.connected = false
		errMsg := dto.NewAssistantText("", fallbackTextFor(err), time.Now())
		s.messages = append(s.messages, errMsg)
		return []dto.Message{userMsg, errMsg}, nil
	}

	s.connected = true
	s.rememberSessionID(resp.SessionID)

	reply := renderer.NewAssistantMessage(resp.ID, resp.Message, resp.CreatedAt())
	s.checkSnapshotContract(ctx, reply)
	s.messages = append(s.messages, reply)
	return []dto.Message{userMsg, reply}, nil
}

// Reset clears the conversation and starts over: best-effort clear call to
// the backend, then a fresh welcome fetch. Safe to call repeatedly.
func (s *ChatSession) Reset(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	sessionID := s.sessionID
	s.sessionID = ""
	s.messages = nil
	s.mu.Unlock()

	if sessionID != "" {
		if err := s.repo.ClearSession(ctx, sessionID); err != nil {
			s.log.WarnContext(ctx, "Clear session failed, continuing with reset", logger.ErrorField(err))
		}
	}

	return s.Initialize(ctx)
}

// Messages returns a copy of the log in append order.
func (s *ChatSession) Messages() []dto.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *ChatSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *ChatSession) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// rememberSessionID persists a newly assigned backend session id. An id
// never changes within a conversation's lifetime.
func (s *ChatSession) rememberSessionID(id string) {
	if id != "" && s.sessionID == "" {
		s.sessionID = id
	}
}

// checkSnapshotContract logs snapshot payloads whose precomputed fields
// contradict each other. Rendering still trusts the server values, the
// violation is surfaced as a contract issue instead of being corrected.
func (s *ChatSession) checkSnapshotContract(ctx context.Context, msg dto.Message) {
	var err error
	switch {
	case msg.Portfolio != nil:
		err = msg.Portfolio.CheckContract()
	case msg.ProfitLoss != nil:
		err = msg.ProfitLoss.CheckContract()
	}
	if err != nil {
		s.log.WarnContext(ctx, "Snapshot payload violates server contract", logger.ErrorField(err))
	}
}

// fallbackTextFor maps a transport failure onto the user-facing wording for
// the error log entry. The status code is carried structurally through
// TransportError, not pattern-matched from a description.
func fallbackTextFor(err error) string {
	var terr *dto.TransportError
	if !errors.As(err, &terr) {
		return offlineMessage
	}

	switch {
	case terr.StatusCode == http.StatusUnauthorized:
		return authErrorMessage
	case terr.StatusCode == http.StatusTooManyRequests:
		return rateLimitMessage
	case terr.StatusCode >= http.StatusInternalServerError:
		return serverErrMessage
	case terr.ServerMessage != "":
		return terr.ServerMessage
	case terr.StatusCode > 0:
		return fmt.Sprintf("HTTP error, status %d", terr.StatusCode)
	default:
		return offlineMessage
	}
}

func newFallbackWelcome(userName string) dto.Message {
	text := fmt.Sprintf("Hi **%s**! 👋 I'm your **KoinBX Crypto Bot**. I can help you with:\n\n"+
		"💰 **Your Portfolio** - Check balance, P&L, holdings\n"+
		"📈 **Market Data** - Latest crypto prices\n"+
		"🔍 **Crypto Info** - Learn about blockchain\n\n"+
		"Try: \"show my portfolio\" or \"what's Bitcoin's price?\"\n\n"+
		"How can I help you today?", userName)

	return dto.NewAssistantText(fallbackWelcomeID, text, time.Now())
}
