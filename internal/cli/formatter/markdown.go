package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal, word-wrapped at width. Plain
// mode skips styling for non-TTY output. Rendering errors fall back to the
// raw text.
func RenderMarkdown(md string, width int, plain bool) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	style := "dark"
	if plain {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
