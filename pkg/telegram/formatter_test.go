package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
)

func portfolioFixture(holdings []dto.Holding) *dto.PortfolioSnapshot {
	return &dto.PortfolioSnapshot{
		Type: dto.KindPortfolio,
		User: "Alice",
		Summary: dto.PortfolioSummary{
			TotalValue:           5500,
			TotalInvested:        5000,
			ProfitLoss:           500,
			ProfitLossPercentage: 10,
			TotalHoldings:        len(holdings),
			Status:               dto.StatusProfit,
		},
		Holdings: holdings,
	}
}

func holding(crypto string) dto.Holding {
	return dto.Holding{
		Crypto:               crypto,
		CurrentValue:         1100,
		ProfitLoss:           100,
		ProfitLossPercentage: 10,
		Status:               dto.StatusProfit,
	}
}

func TestFormatPortfolioForTelegram(t *testing.T) {
	out := FormatPortfolioForTelegram(portfolioFixture([]dto.Holding{holding("BTC"), holding("ETH")}), 3)

	assert.Contains(t, out, "*Alice's Portfolio* (2 assets)")
	assert.Contains(t, out, "Total Value: $5,500.00")
	assert.Contains(t, out, "Invested: $5,000.00")
	assert.Contains(t, out, "P&L: +$500.00 (10.0%)")
	assert.Contains(t, out, "• BTC — $1,100.00 (+$100.00, 10.0%)")
	assert.Contains(t, out, "• ETH")
	assert.NotContains(t, out, "more")
}

func TestFormatPortfolioForTelegram_PreviewCap(t *testing.T) {
	holdings := []dto.Holding{holding("BTC"), holding("ETH"), holding("SOL"), holding("ADA"), holding("DOT")}

	out := FormatPortfolioForTelegram(portfolioFixture(holdings), 3)
	assert.Equal(t, 3, strings.Count(out, "• "))
	assert.Contains(t, out, "…and 2 more")

	// zero preview shows the full list
	out = FormatPortfolioForTelegram(portfolioFixture(holdings), 0)
	assert.Equal(t, 5, strings.Count(out, "• "))
	assert.NotContains(t, out, "more")
}

func TestFormatProfitLossForTelegram(t *testing.T) {
	snap := &dto.ProfitLossSnapshot{
		Type: dto.KindProfitLoss,
		User: "Bob",
		Performance: dto.Performance{
			TotalInvested:        1000,
			TotalCurrentValue:    1250,
			ProfitLoss:           250,
			ProfitLossPercentage: 25,
			Status:               dto.StatusProfit,
			PerformanceLevel:     dto.PerformanceExcellent,
		},
		Insights: &dto.PnLInsights{Suggestion: "Consider taking some profit."},
	}

	out := FormatProfitLossForTelegram(snap)

	assert.Contains(t, out, "🟢 *Bob's Performance*")
	assert.Contains(t, out, "Total Invested: $1,000.00")
	assert.Contains(t, out, "Current Value: $1,250.00")
	assert.Contains(t, out, "Net P&L: +$250.00 (25.00%)")
	assert.Contains(t, out, "🎯 Excellent! 25.0% gains")
	assert.Contains(t, out, "💡 Consider taking some profit.")
}

func TestFormatProfitLossForTelegram_Lossstyling(t *testing.T) {
	snap := &dto.ProfitLossSnapshot{
		User: "Bob",
		Performance: dto.Performance{
			ProfitLoss:           -100,
			ProfitLossPercentage: -10,
			Status:               dto.StatusLoss,
			PerformanceLevel:     dto.PerformanceModerateLoss,
		},
	}

	out := FormatProfitLossForTelegram(snap)
	assert.Contains(t, out, "🔴")
	assert.Contains(t, out, "Net P&L: -$100.00 (10.00%)")
	assert.Contains(t, out, "📉 Moderate loss of 10.0%")
}
