package renderer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/pkg/utils"
)

type profitLossView struct {
	User               string
	IsProfit           bool
	PerformanceLevel   string
	Icon               string
	TotalInvested      string
	TotalCurrentValue  string
	ProfitLoss         string
	Sign               string
	ProfitLossPct      string
	PerformanceMessage string
	Suggestion         string
	Badges             []string
}

func (r *Renderer) renderProfitLoss(snapshot *dto.ProfitLossSnapshot) (template.HTML, error) {
	perf := snapshot.Performance

	view := profitLossView{
		User:               snapshot.User,
		IsProfit:           snapshot.IsProfit(),
		PerformanceLevel:   strings.ReplaceAll(perf.PerformanceLevel, "_", " "),
		Icon:               performanceIcon(snapshot),
		TotalInvested:      utils.FormatMoney(perf.TotalInvested),
		TotalCurrentValue:  utils.FormatMoney(perf.TotalCurrentValue),
		ProfitLoss:         utils.FormatMoney(perf.ProfitLoss),
		Sign:               pnlSign(perf.Status),
		ProfitLossPct:      utils.FormatPercent(perf.ProfitLossPercentage, 2),
		PerformanceMessage: PerformanceMessage(perf),
	}

	if insights := snapshot.Insights; insights != nil {
		view.Suggestion = insights.Suggestion
		if insights.IsOutstanding {
			view.Badges = append(view.Badges, "Outstanding")
		}
		if insights.IsExcellent {
			view.Badges = append(view.Badges, "Excellent")
		}
		if insights.IsPositive {
			view.Badges = append(view.Badges, "Positive")
		}
		if insights.IsSignificantLoss {
			view.Badges = append(view.Badges, "High Loss")
		}
	}

	return r.execute("profit_loss", view)
}

// PerformanceMessage picks the tiered description for a performance block.
// A server-supplied message always wins over the local tier templates.
func PerformanceMessage(perf dto.Performance) string {
	if perf.PerformanceMessage != "" {
		return perf.PerformanceMessage
	}

	pct := utils.FormatPercent(perf.ProfitLossPercentage, 1)
	switch perf.PerformanceLevel {
	case dto.PerformanceOutstanding:
		return fmt.Sprintf("🚀 Outstanding! %s returns", pct)
	case dto.PerformanceExcellent:
		return fmt.Sprintf("🎯 Excellent! %s gains", pct)
	case dto.PerformancePositive:
		return fmt.Sprintf("📈 Positive returns of %s", pct)
	case dto.PerformanceNormalVolatility:
		return fmt.Sprintf("📊 Normal market volatility (%s down)", pct)
	case dto.PerformanceModerateLoss:
		return fmt.Sprintf("📉 Moderate loss of %s", pct)
	case dto.PerformanceSignificantLoss:
		return fmt.Sprintf("⚠️ Significant loss of %s", pct)
	default:
		direction := "up"
		if perf.Status != dto.StatusProfit {
			direction = "down"
		}
		return fmt.Sprintf("Portfolio %s %s", direction, pct)
	}
}

func performanceIcon(snapshot *dto.ProfitLossSnapshot) string {
	if snapshot.Performance.Icon != "" {
		return snapshot.Performance.Icon
	}
	if snapshot.IsProfit() {
		return "🟢"
	}
	return "🔴"
}
