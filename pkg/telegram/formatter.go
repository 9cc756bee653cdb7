package telegram

import (
	"fmt"
	"strings"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/internal/renderer"
	"github.com/koinbxtitas/crypto-frontend/pkg/utils"
)

// FormatPortfolioForTelegram renders a portfolio snapshot as a Markdown card
// for the bot surface. holdingsPreview caps the holdings shown; zero shows
// everything.
func FormatPortfolioForTelegram(snapshot *dto.PortfolioSnapshot, holdingsPreview int) string {
	var builder strings.Builder

	summary := snapshot.Summary
	emoji := "📈"
	if summary.Status != dto.StatusProfit {
		emoji = "📉"
	}

	builder.WriteString(fmt.Sprintf("%s *%s's Portfolio* (%d assets)\n\n", emoji, snapshot.User, summary.TotalHoldings))
	builder.WriteString(fmt.Sprintf("💼 Total Value: %s\n", utils.FormatMoney(summary.TotalValue)))
	builder.WriteString(fmt.Sprintf("💵 Invested: %s\n", utils.FormatMoney(summary.TotalInvested)))
	builder.WriteString(fmt.Sprintf("%s P&L: %s%s (%s)\n", emoji, sign(summary.Status),
		utils.FormatMoney(summary.ProfitLoss), utils.FormatPercent(summary.ProfitLossPercentage, 1)))

	holdings := snapshot.Holdings
	overflow := 0
	if holdingsPreview > 0 && len(holdings) > holdingsPreview {
		overflow = len(holdings) - holdingsPreview
		holdings = holdings[:holdingsPreview]
	}

	if len(holdings) > 0 {
		builder.WriteString("\n*Holdings*\n")
	}
	for _, h := range holdings {
		builder.WriteString(fmt.Sprintf("• %s — %s (%s%s, %s)\n",
			h.Crypto,
			utils.FormatMoney(h.CurrentValue),
			sign(h.Status),
			utils.FormatMoney(h.ProfitLoss),
			utils.FormatPercent(h.ProfitLossPercentage, 1)))
	}
	if overflow > 0 {
		builder.WriteString(fmt.Sprintf("…and %d more\n", overflow))
	}

	return builder.String()
}

// FormatProfitLossForTelegram renders a profit/loss snapshot as a Markdown
// card, reusing the same tiered performance message as the web surfaces.
func FormatProfitLossForTelegram(snapshot *dto.ProfitLossSnapshot) string {
	var builder strings.Builder

	perf := snapshot.Performance
	icon := perf.Icon
	if icon == "" {
		if snapshot.IsProfit() {
			icon = "🟢"
		} else {
			icon = "🔴"
		}
	}

	builder.WriteString(fmt.Sprintf("%s *%s's Performance*\n\n", icon, snapshot.User))
	builder.WriteString(fmt.Sprintf("💵 Total Invested: %s\n", utils.FormatMoney(perf.TotalInvested)))
	builder.WriteString(fmt.Sprintf("💼 Current Value: %s\n", utils.FormatMoney(perf.TotalCurrentValue)))
	builder.WriteString(fmt.Sprintf("Net P&L: %s%s (%s)\n\n", sign(perf.Status),
		utils.FormatMoney(perf.ProfitLoss), utils.FormatPercent(perf.ProfitLossPercentage, 2)))
	builder.WriteString(renderer.PerformanceMessage(perf))

	if insights := snapshot.Insights; insights != nil && insights.Suggestion != "" {
		builder.WriteString(fmt.Sprintf("\n\n💡 %s", insights.Suggestion))
	}

	return builder.String()
}

func sign(status string) string {
	if status == dto.StatusProfit {
		return "+"
	}
	return "-"
}
