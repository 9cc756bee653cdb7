package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
	"github.com/koinbxtitas/crypto-frontend/pkg/utils"
)

func (h *HttpAPIHandler) SetupTickers(base *echo.Group) {
	v1 := base.Group("/v1/tickers")
	{
		v1.GET("", h.GetTickers)
	}
}

type tickerView struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Icon         string  `json:"icon"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
}

// GetTickers serves the hero-section price rows from the ticker cache. An
// empty list means the exchange has not answered yet; the page keeps its
// static placeholders in that case.
func (h *HttpAPIHandler) GetTickers(c echo.Context) error {
	tickers := h.service.TickerService.Tickers(c.Request().Context())

	views := make([]tickerView, 0, len(tickers))
	for _, t := range tickers {
		name, icon := tickerMeta(t.Symbol)
		views = append(views, tickerView{
			Symbol:       t.Symbol,
			Name:         name,
			Icon:         icon,
			Price:        t.Price,
			PriceDisplay: utils.FormatMoney(t.Price),
		})
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("tickers", views))
}

// tickerMeta maps an exchange symbol to the display name and icon used in
// the hero rows.
func tickerMeta(symbol string) (string, string) {
	switch symbol {
	case "BTCUSDT":
		return "Bitcoin", "₿"
	case "BCHUSDT":
		return "Bitcoin Cash", "💰"
	case "LINKUSDT":
		return "Chainlink", "🔗"
	case "TONUSDT":
		return "Toncoin", "💙"
	case "ZILUSDT":
		return "Zilliqa", "💎"
	case "SFPUSDT":
		return "SafePal", "🔐"
	case "USDTUSDT", "USDCUSDT":
		return "Tether", "💵"
	default:
		return symbol, "⭐"
	}
}
