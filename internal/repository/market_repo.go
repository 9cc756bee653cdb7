package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/pkg/httpclient"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

// MarketRepository fetches spot prices for the hero-section tickers from the
// exchange's public market-data API.
type MarketRepository interface {
	GetLastPrice(ctx context.Context, symbol string) (*dto.Ticker, error)
	GetLastPrices(ctx context.Context, symbols []string) ([]dto.Ticker, error)
}

type marketRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewMarketRepository(cfg *config.Config, log *logger.Logger) MarketRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Market.MaxRequestPerMin)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &marketRepository{
		httpClient:     httpclient.New(cfg.Market.BaseURL, cfg.Market.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *marketRepository) GetLastPrice(ctx context.Context, symbol string) (*dto.Ticker, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/api/v3/ticker/price"
	queryParams := map[string]string{
		"symbol": symbol,
	}

	var respData map[string]string
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, &respData)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last price for %s: %w", symbol, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Market API returned Non-OK status for price",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("market api returned status: %d", resp.StatusCode)
	}

	price, err := strconv.ParseFloat(respData["price"], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price for %s: %w", symbol, err)
	}

	return &dto.Ticker{
		Symbol:    symbol,
		Price:     price,
		UpdatedAt: time.Now(),
	}, nil
}

// GetLastPrices fetches the configured symbols one by one; symbols that fail
// are skipped so one bad listing does not blank the whole ticker row.
func (r *marketRepository) GetLastPrices(ctx context.Context, symbols []string) ([]dto.Ticker, error) {
	tickers := make([]dto.Ticker, 0, len(symbols))
	var lastErr error

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return tickers, ctx.Err()
		}

		ticker, err := r.GetLastPrice(ctx, symbol)
		if err != nil {
			lastErr = err
			continue
		}
		tickers = append(tickers, *ticker)
	}

	if len(tickers) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return tickers, nil
}
