package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/haven/internal/domain"
)

// FormatRecommendations renders personalized suggestions.
func FormatRecommendations(recs []domain.Recommendation) string {
	if len(recs) == 0 {
		return Dim("No recommendations right now.")
	}
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s %s", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), Bold(r.Title))
		if r.Category != "" {
			b.WriteString("  " + CategoryBadge(domain.Category(r.Category)))
		}
		if r.Description != "" {
			b.WriteString("\n   " + r.Description)
		}
		if r.ResourceID != "" {
			b.WriteString("\n   " + Dim("haven resource "+r.ResourceID.String()))
		}
	}
	return RenderBox("Recommended for you", b.String())
}

// FormatResource renders a resource with its markdown body.
func FormatResource(r *domain.Resource, width int, plain bool) string {
	var b strings.Builder
	b.WriteString(Bold(r.Title))
	if r.Type != "" {
		b.WriteString("  " + Dim(r.Type))
	}
	if r.Description != "" {
		b.WriteString("\n" + r.Description)
	}
	if body := RenderMarkdown(r.Content, width, plain); body != "" {
		b.WriteString("\n\n" + body)
	}
	if r.URL != "" {
		b.WriteString("\n\n" + StyleBlue.Render(r.URL))
	}
	return b.String()
}
