package dto

import "fmt"

// ProfitLossSnapshot is the structured payload the backend sends for a
// profit/loss style question.
type ProfitLossSnapshot struct {
	Type        string       `json:"type"`
	User        string       `json:"user"`
	Performance Performance  `json:"performance"`
	Insights    *PnLInsights `json:"insights,omitempty"`
}

type Performance struct {
	TotalInvested        float64 `json:"total_invested"`
	TotalCurrentValue    float64 `json:"total_current_value"`
	ProfitLoss           float64 `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
	Status               string  `json:"status"`
	PerformanceLevel     string  `json:"performance_level"`
	PerformanceMessage   string  `json:"performance_message,omitempty"`
	Icon                 string  `json:"icon,omitempty"`
	TrendIcon            string  `json:"trend_icon,omitempty"`
}

type PnLInsights struct {
	IsOutstanding      bool   `json:"is_outstanding"`
	IsExcellent        bool   `json:"is_excellent"`
	IsPositive         bool   `json:"is_positive"`
	IsSignificantLoss  bool   `json:"is_significant_loss"`
	IsNormalVolatility bool   `json:"is_normal_volatility"`
	Suggestion         string `json:"suggestion,omitempty"`
}

// CheckContract verifies the categorical status agrees with the sign of the
// numeric profit_loss field: "profit" iff profit_loss >= 0.
func (s *ProfitLossSnapshot) CheckContract() error {
	wantStatus := StatusProfit
	if s.Performance.ProfitLoss < 0 {
		wantStatus = StatusLoss
	}
	if s.Performance.Status != wantStatus {
		return fmt.Errorf("status %q contradicts profit_loss %.2f (want %q)",
			s.Performance.Status, s.Performance.ProfitLoss, wantStatus)
	}
	return nil
}

// IsProfit reports the server-supplied direction. Rendering follows this
// field, never the numeric sign, so a contract violation stays visible.
func (s *ProfitLossSnapshot) IsProfit() bool {
	return s.Performance.Status == StatusProfit
}
