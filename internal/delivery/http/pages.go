package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPages() {
	h.echo.GET("/", h.HomePage)
	h.echo.GET("/chat", h.ChatPage)
}

type pageData struct {
	PersonaName  string
	QuickActions []string
	View         string
}

var quickActions = []string{
	"Show my portfolio",
	"Show my profit/loss",
	"Bitcoin price",
	"Market trends",
}

// HomePage serves the marketing page with the embedded chat widget.
func (h *HttpAPIHandler) HomePage(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", pageData{
		PersonaName:  h.cfg.Widget.PersonaName,
		QuickActions: quickActions,
		View:         "widget",
	})
}

// ChatPage serves the full-page chat surface, which shows complete holdings
// lists instead of the widget's capped preview.
func (h *HttpAPIHandler) ChatPage(c echo.Context) error {
	return c.Render(http.StatusOK, "chat.html", pageData{
		PersonaName:  h.cfg.Widget.PersonaName,
		QuickActions: quickActions,
		View:         "page",
	})
}
