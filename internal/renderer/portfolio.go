package renderer

import (
	"html/template"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/pkg/utils"
)

type portfolioView struct {
	User          string
	IsProfit      bool
	TotalHoldings int
	TotalValue    string
	Invested      string
	ProfitLoss    string
	Sign          string
	ProfitLossPct string
	Holdings      []holdingView
	Overflow      int
}

type holdingView struct {
	Crypto        string
	Initial       string
	IconURL       string
	IsProfit      bool
	Amount        string
	CurrentPrice  string
	CurrentValue  string
	Sign          string
	ProfitLoss    string
	ProfitLossPct string
}

func (r *Renderer) renderPortfolio(snapshot *dto.PortfolioSnapshot) (template.HTML, error) {
	summary := snapshot.Summary

	view := portfolioView{
		User:          snapshot.User,
		IsProfit:      summary.Status == dto.StatusProfit,
		TotalHoldings: summary.TotalHoldings,
		TotalValue:    utils.FormatMoney(summary.TotalValue),
		Invested:      utils.FormatMoney(summary.TotalInvested),
		ProfitLoss:    utils.FormatMoney(summary.ProfitLoss),
		Sign:          pnlSign(summary.Status),
		ProfitLossPct: utils.FormatPercent(summary.ProfitLossPercentage, 1),
	}

	holdings := snapshot.Holdings
	if r.opts.HoldingsPreview > 0 && len(holdings) > r.opts.HoldingsPreview {
		view.Overflow = len(holdings) - r.opts.HoldingsPreview
		holdings = holdings[:r.opts.HoldingsPreview]
	}

	for _, h := range holdings {
		view.Holdings = append(view.Holdings, holdingView{
			Crypto:        h.Crypto,
			Initial:       cryptoInitial(h.Crypto),
			IconURL:       h.IconURL,
			IsProfit:      h.Status == dto.StatusProfit,
			Amount:        utils.FormatAmount(h.Amount),
			CurrentPrice:  utils.FormatMoney(h.CurrentPrice),
			CurrentValue:  utils.FormatMoney(h.CurrentValue),
			Sign:          pnlSign(h.Status),
			ProfitLoss:    utils.FormatMoney(h.ProfitLoss),
			ProfitLossPct: utils.FormatPercent(h.ProfitLossPercentage, 1),
		})
	}

	return r.execute("portfolio", view)
}

func pnlSign(status string) string {
	if status == dto.StatusProfit {
		return "+"
	}
	return "-"
}

func cryptoInitial(symbol string) string {
	if symbol == "" {
		return "?"
	}
	return string([]rune(symbol)[0])
}
