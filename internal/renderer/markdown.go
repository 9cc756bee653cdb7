package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// newMarkdown builds the Markdown converter used for text messages. Raw HTML
// in the payload is never passed through, so payload content cannot inject
// markup or script into the page.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
}

func (r *Renderer) renderMarkdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
