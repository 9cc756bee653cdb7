package dto

import (
	"fmt"
	"math"
)

// PortfolioSnapshot is the structured payload the backend sends for a
// "show my portfolio" style question. All derived figures are precomputed
// server-side, rendering never recalculates them.
type PortfolioSnapshot struct {
	Type     string           `json:"type"`
	User     string           `json:"user"`
	Summary  PortfolioSummary `json:"summary"`
	Holdings []Holding        `json:"holdings"`
}

type PortfolioSummary struct {
	TotalValue           float64 `json:"total_value"`
	TotalInvested        float64 `json:"total_invested"`
	ProfitLoss           float64 `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
	TotalHoldings        int     `json:"total_holdings"`
	Status               string  `json:"status"`
}

type Holding struct {
	Crypto               string  `json:"crypto"`
	Amount               float64 `json:"amount"`
	BuyPrice             float64 `json:"buy_price"`
	CurrentPrice         float64 `json:"current_price"`
	CurrentValue         float64 `json:"current_value"`
	InvestedValue        float64 `json:"invested_value"`
	ProfitLoss           float64 `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
	Status               string  `json:"status"`
	IconURL              string  `json:"icon_url,omitempty"`
}

// contractTolerance is the relative error allowed between the backend's
// precomputed values and the quantities they are derived from.
const contractTolerance = 0.01

// CheckContract verifies the backend's precomputed holding values against
// amount and price. A violation is a server-contract issue to surface, not
// something to silently correct client-side.
func (s *PortfolioSnapshot) CheckContract() error {
	for _, h := range s.Holdings {
		if !approxEqual(h.CurrentValue, h.Amount*h.CurrentPrice) {
			return fmt.Errorf("holding %s: current_value %.2f does not match amount*current_price %.2f",
				h.Crypto, h.CurrentValue, h.Amount*h.CurrentPrice)
		}
		if !approxEqual(h.InvestedValue, h.Amount*h.BuyPrice) {
			return fmt.Errorf("holding %s: invested_value %.2f does not match amount*buy_price %.2f",
				h.Crypto, h.InvestedValue, h.Amount*h.BuyPrice)
		}
	}
	return nil
}

func approxEqual(got, want float64) bool {
	if want == 0 {
		return math.Abs(got) < contractTolerance
	}
	return math.Abs(got-want)/math.Abs(want) < contractTolerance
}
