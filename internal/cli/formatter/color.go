package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryColor returns the accent color for a practice category.
func CategoryColor(c domain.Category) lipgloss.Color {
	switch c {
	case domain.CategoryMeditation:
		return ColorPurple
	case domain.CategoryAnxiety:
		return ColorBlue
	case domain.CategorySleep:
		return ColorAqua
	case domain.CategorySelfCare:
		return ColorGreen
	case domain.CategoryStress:
		return ColorYellow
	default:
		return ColorDim
	}
}

// CategoryBadge returns a colored category label such as "● meditation".
func CategoryBadge(c domain.Category) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Render("● " + string(c))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a green check line.
func Success(text string) string {
	return StyleGreen.Render("✔ ") + text
}

// Warning renders a yellow notice line.
func Warning(text string) string {
	return StyleYellow.Render("! ") + text
}

// Failure renders a red error line.
func Failure(text string) string {
	return StyleRed.Render("✖ ") + text
}
