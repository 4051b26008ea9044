package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a plain bar of width cells with frac filled, in color.
func RenderBar(frac float64, width int, color lipgloss.Color) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// RenderCountdown renders a headless countdown line such as
// "[████░░░░] 02:15 left".
func RenderCountdown(frac float64, timeLeft int, width int, color lipgloss.Color) string {
	return fmt.Sprintf("[%s] %s left", RenderBar(frac, width, color), FormatClock(timeLeft))
}

// RenderDistribution renders one bar per key, longest first, scaled to the
// largest count.
func RenderDistribution(counts map[string]int, width int) string {
	if len(counts) == 0 {
		return Dim("No data yet.")
	}
	keys := make([]string, 0, len(counts))
	maxCount, labelWidth := 0, 0
	for k, n := range counts {
		keys = append(keys, k)
		if n > maxCount {
			maxCount = n
		}
		if w := lipgloss.Width(k); w > labelWidth {
			labelWidth = w
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		frac := 0.0
		if maxCount > 0 {
			frac = float64(counts[k]) / float64(maxCount)
		}
		label := k + strings.Repeat(" ", labelWidth-lipgloss.Width(k))
		lines = append(lines, fmt.Sprintf("%s  %s %d", label, RenderBar(frac, width, ColorBlue), counts[k]))
	}
	return strings.Join(lines, "\n")
}
