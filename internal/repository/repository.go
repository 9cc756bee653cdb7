package repository

import (
	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

type Repository struct {
	AssistantRepo AssistantRepository
	MarketRepo    MarketRepository
}

func NewRepository(cfg *config.Config, log *logger.Logger) *Repository {
	return &Repository{
		AssistantRepo: NewAssistantRepository(cfg, log),
		MarketRepo:    NewMarketRepository(cfg, log),
	}
}
