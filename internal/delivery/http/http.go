package http

import (
	"context"
	"embed"
	"html/template"
	"io"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/renderer"
	"github.com/koinbxtitas/crypto-frontend/internal/service"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

//go:embed views/*.html
var viewsFS embed.FS

type HttpAPIHandler struct {
	echo      *echo.Echo
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	service   *service.Service

	// one renderer per holdings-display policy
	widgetRenderer *renderer.Renderer
	pageRenderer   *renderer.Renderer
}

func NewHttpAPIHandler(ctx context.Context, cfg *config.Config, log *logger.Logger, e *echo.Echo, validator *goValidator.Validate, svc *service.Service) *HttpAPIHandler {
	e.Renderer = &templateRenderer{
		templates: template.Must(template.ParseFS(viewsFS, "views/*.html")),
	}

	return &HttpAPIHandler{
		echo:           e,
		cfg:            cfg,
		log:            log,
		validator:      validator,
		service:        svc,
		widgetRenderer: renderer.New(renderer.Options{HoldingsPreview: cfg.Widget.HoldingsPreview}),
		pageRenderer:   renderer.New(renderer.Options{}),
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.SetupPages()

	base := h.echo.Group("/api")
	h.SetupChat(base)
	h.SetupTickers(base)
}

// rendererFor maps the requested view to its holdings-display policy. The
// embedded widget previews a few holdings, the full chat page shows all.
func (h *HttpAPIHandler) rendererFor(view string) *renderer.Renderer {
	if view == "page" {
		return h.pageRenderer
	}
	return h.widgetRenderer
}

func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return h.validator.Struct(req)
}

type templateRenderer struct {
	templates *template.Template
}

func (t *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

// conversationView is the widget API's shape for a conversation: identity,
// connectivity and the rendered log in append order.
type conversationView struct {
	ConversationID string                     `json:"conversation_id"`
	Connected      bool                       `json:"connected"`
	Messages       []renderer.RenderedMessage `json:"messages"`
}

func (h *HttpAPIHandler) conversationViewFor(conversationID string, session *service.ChatSession, r *renderer.Renderer) (*conversationView, error) {
	rendered, err := r.RenderAll(session.Messages())
	if err != nil {
		return nil, err
	}
	return &conversationView{
		ConversationID: conversationID,
		Connected:      session.Connected(),
		Messages:       rendered,
	}, nil
}
