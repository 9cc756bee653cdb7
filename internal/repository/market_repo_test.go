package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

func testMarketRepo(t *testing.T, baseURL string) MarketRepository {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := &config.Config{
		Market: config.MarketConfig{
			BaseURL:          baseURL,
			Timeout:          5 * time.Second,
			MaxRequestPerMin: 6000,
		},
	}
	return NewMarketRepository(cfg, log)
}

func TestMarketRepository_GetLastPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"symbol":"BTCUSDT","price":"43250.50000000"}`)
	}))
	defer srv.Close()

	repo := testMarketRepo(t, srv.URL)
	ticker, err := repo.GetLastPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", ticker.Symbol)
	assert.Equal(t, 43250.5, ticker.Price)
	assert.WithinDuration(t, time.Now(), ticker.UpdatedAt, time.Minute)
}

func TestMarketRepository_GetLastPriceErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "unknown symbol",
			status:  http.StatusBadRequest,
			body:    `{"code":-1121,"msg":"Invalid symbol."}`,
			wantErr: "market api returned status: 400",
		},
		{
			name:    "unparsable price",
			status:  http.StatusOK,
			body:    `{"symbol":"BTCUSDT","price":"not-a-number"}`,
			wantErr: "failed to parse price",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			repo := testMarketRepo(t, srv.URL)
			_, err := repo.GetLastPrice(context.Background(), "BTCUSDT")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMarketRepository_GetLastPricesSkipsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("symbol") {
		case "BTCUSDT":
			io.WriteString(w, `{"symbol":"BTCUSDT","price":"43250.50"}`)
		case "ETHUSDT":
			io.WriteString(w, `{"symbol":"ETHUSDT","price":"2400.00"}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"code":-1121,"msg":"Invalid symbol."}`)
		}
	}))
	defer srv.Close()

	repo := testMarketRepo(t, srv.URL)
	tickers, err := repo.GetLastPrices(context.Background(), []string{"BTCUSDT", "BADUSDT", "ETHUSDT"})
	require.NoError(t, err)

	require.Len(t, tickers, 2)
	assert.Equal(t, "BTCUSDT", tickers[0].Symbol)
	assert.Equal(t, "ETHUSDT", tickers[1].Symbol)
}

func TestMarketRepository_GetLastPricesAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := testMarketRepo(t, srv.URL)
	_, err := repo.GetLastPrices(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	assert.Error(t, err)
}
