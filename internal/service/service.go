package service

import (
	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/repository"
	"github.com/koinbxtitas/crypto-frontend/pkg/cache"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

type Service struct {
	ChatService   ChatService
	TickerService TickerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	return &Service{
		ChatService:   NewChatService(cfg, log, repo.AssistantRepo, inmemoryCache),
		TickerService: NewTickerService(cfg, log, repo.MarketRepo, inmemoryCache),
	}
}
