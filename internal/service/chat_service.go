package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/internal/repository"
	"github.com/koinbxtitas/crypto-frontend/pkg/cache"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

const conversationKey = "conversation:%s"

// ErrConversationNotFound is returned for a conversation id that never
// existed or whose session expired from the store.
var ErrConversationNotFound = errors.New("conversation not found or expired")

// ChatService hands out ChatSessions keyed by an opaque conversation id.
// Each presentation surface (widget, full page, telegram chat) holds one
// conversation id and drives the same session core through it. Sessions
// live in the in-memory TTL store only, there is no durable state.
type ChatService interface {
	StartConversation(ctx context.Context) (string, *ChatSession, error)
	Session(conversationID string) (*ChatSession, error)
	Submit(ctx context.Context, conversationID, text string) ([]dto.Message, error)
	Reset(ctx context.Context, conversationID string) (*ChatSession, error)
}

type chatService struct {
	cfg           *config.Config
	log           *logger.Logger
	assistantRepo repository.AssistantRepository
	sessions      cache.Cache
}

func NewChatService(cfg *config.Config, log *logger.Logger, assistantRepo repository.AssistantRepository, sessions cache.Cache) ChatService {
	return &chatService{
		cfg:           cfg,
		log:           log,
		assistantRepo: assistantRepo,
		sessions:      sessions,
	}
}

// StartConversation creates a session, runs the welcome fetch and stores the
// session under a fresh conversation id. The id is what the browser widget
// or bot surface keeps hold of.
func (s *chatService) StartConversation(ctx context.Context) (string, *ChatSession, error) {
	conversationID := uuid.NewString()
	session := NewChatSession(s.log, s.assistantRepo, s.cfg.Widget.PersonaName)

	if err := session.Initialize(ctx); err != nil {
		return "", nil, fmt.Errorf("failed to initialize conversation: %w", err)
	}

	s.touch(conversationID, session)
	s.log.InfoContext(ctx, "Conversation started",
		logger.StringField("conversation_id", conversationID),
		logger.Field("connected", session.Connected()))
	return conversationID, session, nil
}

func (s *chatService) Session(conversationID string) (*ChatSession, error) {
	session, ok := cache.GetTyped[*ChatSession](s.sessions, fmt.Sprintf(conversationKey, conversationID))
	if !ok {
		return nil, ErrConversationNotFound
	}
	return session, nil
}

func (s *chatService) Submit(ctx context.Context, conversationID, text string) ([]dto.Message, error) {
	session, err := s.Session(conversationID)
	if err != nil {
		return nil, err
	}

	appended, err := session.Submit(ctx, text)
	if err != nil {
		return nil, err
	}

	s.touch(conversationID, session)
	return appended, nil
}

func (s *chatService) Reset(ctx context.Context, conversationID string) (*ChatSession, error) {
	session, err := s.Session(conversationID)
	if err != nil {
		return nil, err
	}

	if err := session.Reset(ctx); err != nil {
		return nil, err
	}

	s.touch(conversationID, session)
	return session, nil
}

// touch stores the session and pushes its expiry out by the configured TTL,
// so active conversations stay alive and abandoned ones age out.
func (s *chatService) touch(conversationID string, session *ChatSession) {
	s.sessions.Set(fmt.Sprintf(conversationKey, conversationID), session, s.cfg.Widget.SessionTTL)
}
