package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/internal/repository"
	"github.com/koinbxtitas/crypto-frontend/pkg/cache"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

const tickerCacheKey = "market:tickers"

// TickerService keeps the hero-section price rows fresh. Prices are pulled
// from the exchange on a cron schedule and cached; while the exchange is
// unreachable the last cached set keeps being served.
type TickerService interface {
	Start(ctx context.Context) error
	Stop()
	Tickers(ctx context.Context) []dto.Ticker
	Refresh(ctx context.Context) error
}

type tickerService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketRepo repository.MarketRepository
	cache      cache.Cache
	cron       *cron.Cron
}

func NewTickerService(cfg *config.Config, log *logger.Logger, marketRepo repository.MarketRepository, c cache.Cache) TickerService {
	return &tickerService{
		cfg:        cfg,
		log:        log,
		marketRepo: marketRepo,
		cache:      c,
		cron:       cron.New(),
	}
}

// Start primes the cache once and schedules periodic refreshes.
func (s *tickerService) Start(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.log.WarnContext(ctx, "Initial ticker refresh failed, hero rows start empty", logger.ErrorField(err))
	}

	_, err := s.cron.AddFunc(s.cfg.Market.RefreshSchedule, func() {
		refreshCtx, cancel := context.WithTimeout(ctx, s.cfg.Market.Timeout*2)
		defer cancel()
		if err := s.Refresh(refreshCtx); err != nil {
			s.log.WarnContext(refreshCtx, "Ticker refresh failed, serving cached prices", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid ticker refresh schedule %q: %w", s.cfg.Market.RefreshSchedule, err)
	}

	s.cron.Start()
	s.log.Info("Ticker scheduler started",
		logger.StringField("schedule", s.cfg.Market.RefreshSchedule),
		logger.IntField("symbols", len(s.cfg.Market.TickerSymbols)))
	return nil
}

func (s *tickerService) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn("Timeout while waiting for ticker jobs to finish")
	}
}

func (s *tickerService) Refresh(ctx context.Context) error {
	tickers, err := s.marketRepo.GetLastPrices(ctx, s.cfg.Market.TickerSymbols)
	if err != nil {
		return err
	}

	// no expiry: a stale price beats an empty hero row
	s.cache.Set(tickerCacheKey, tickers, cache.NoExpiration)
	return nil
}

func (s *tickerService) Tickers(ctx context.Context) []dto.Ticker {
	tickers, ok := cache.GetTyped[[]dto.Ticker](s.cache, tickerCacheKey)
	if !ok {
		return nil
	}
	return tickers
}
