package dto

// Message kinds discriminate how a log entry's content is rendered.
const (
	KindText       = "text"
	KindPortfolio  = "portfolio"
	KindProfitLoss = "profit_loss"
)

const (
	OriginUser      = "user"
	OriginAssistant = "assistant"
)

const (
	StatusProfit = "profit"
	StatusLoss   = "loss"
)

// Performance levels reported by the assistant backend for a profit/loss
// snapshot.
const (
	PerformanceOutstanding      = "outstanding"
	PerformanceExcellent        = "excellent"
	PerformancePositive         = "positive"
	PerformanceNormalVolatility = "normal_volatility"
	PerformanceModerateLoss     = "moderate_loss"
	PerformanceSignificantLoss  = "significant_loss"
)
