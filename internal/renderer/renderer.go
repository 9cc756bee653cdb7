// Package renderer maps classified chat messages onto HTML presentation.
// Rendering is a pure data-to-view mapping: every payload field goes through
// html/template escaping or the Markdown converter, nothing from the backend
// is executed or passed through verbatim.
package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"

	"github.com/koinbxtitas/crypto-frontend/internal/dto"
)

// Options parameterizes a presentation surface. HoldingsPreview caps how
// many portfolio holdings are shown before an overflow counter; zero shows
// every holding (the full-page policy).
type Options struct {
	HoldingsPreview int
}

type Renderer struct {
	opts Options
	md   goldmark.Markdown
	tpl  *template.Template
}

// RenderedMessage is one log entry prepared for a presentation surface.
type RenderedMessage struct {
	ID        string        `json:"id"`
	Origin    string        `json:"origin"`
	Kind      string        `json:"kind"`
	HTML      template.HTML `json:"html"`
	CreatedAt time.Time     `json:"created_at"`
}

func New(opts Options) *Renderer {
	return &Renderer{
		opts: opts,
		md:   newMarkdown(),
		tpl:  template.Must(template.New("cards").Parse(cardTemplates)),
	}
}

// Render dispatches on the message kind. The default branch covers entries
// whose structured payload could not be decoded; they render as empty text,
// never as an error.
func (r *Renderer) Render(msg dto.Message) (RenderedMessage, error) {
	out := RenderedMessage{
		ID:        msg.ID,
		Origin:    msg.Origin,
		Kind:      msg.Kind,
		CreatedAt: msg.CreatedAt,
	}

	var err error
	switch {
	case msg.Kind == dto.KindPortfolio && msg.Portfolio != nil:
		out.HTML, err = r.renderPortfolio(msg.Portfolio)
	case msg.Kind == dto.KindProfitLoss && msg.ProfitLoss != nil:
		out.HTML, err = r.renderProfitLoss(msg.ProfitLoss)
	default:
		out.Kind = dto.KindText
		out.HTML, err = r.renderMarkdown(msg.Text)
	}
	if err != nil {
		return RenderedMessage{}, fmt.Errorf("failed to render message %s: %w", msg.ID, err)
	}

	return out, nil
}

// RenderAll renders a whole conversation log in append order.
func (r *Renderer) RenderAll(msgs []dto.Message) ([]RenderedMessage, error) {
	rendered := make([]RenderedMessage, 0, len(msgs))
	for _, msg := range msgs {
		out, err := r.Render(msg)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, out)
	}
	return rendered, nil
}

func (r *Renderer) execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
