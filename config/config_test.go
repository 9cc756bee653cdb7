package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 30*time.Second, cfg.Assistant.Timeout)
	assert.Equal(t, 60, cfg.Assistant.MaxRequestPerMin)
	assert.Equal(t, "https://api.binance.com", cfg.Market.BaseURL)
	assert.Equal(t, "@every 30s", cfg.Market.RefreshSchedule)
	assert.NotEmpty(t, cfg.Market.TickerSymbols)
	assert.Equal(t, "Alice", cfg.Widget.PersonaName)
	assert.Equal(t, 3, cfg.Widget.HoldingsPreview)
	assert.Equal(t, 30*time.Minute, cfg.Widget.SessionTTL)
}
