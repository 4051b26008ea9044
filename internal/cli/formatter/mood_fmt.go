package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/haven/internal/domain"
)

// FormatMoodHistory renders logged moods newest first.
func FormatMoodHistory(entries []domain.MoodEntry) string {
	if len(entries) == 0 {
		return Dim("No moods logged yet. Try: haven mood log calm")
	}
	sorted := make([]domain.MoodEntry, len(entries))
	copy(sorted, entries)
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}

	headers := []string{"WHEN", "MOOD", "NOTE"}
	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, []string{
			HumanTimestamp(e.Timestamp),
			StyleBold.Render(e.Mood),
			Dim(Truncate(e.Note, 40)),
		})
	}
	return RenderBox("Mood history", RenderTable(headers, rows))
}

// FormatMoodInsights renders mood statistics.
func FormatMoodInsights(in *domain.MoodInsights) string {
	if in.TotalEntries == 0 && len(in.MoodCounts) == 0 {
		return RenderBox("Mood insights", Dim("Not enough entries for insights yet."))
	}

	var b strings.Builder
	pairs := [][2]string{
		{"Entries", fmt.Sprintf("%d", in.TotalEntries)},
	}
	if in.MostCommonMood != "" {
		pairs = append(pairs, [2]string{"Most common", Bold(in.MostCommonMood)})
	}
	if in.StreakDays > 0 {
		pairs = append(pairs, [2]string{"Streak", fmt.Sprintf("%d days", in.StreakDays)})
	}
	b.WriteString(RenderKeyValues(pairs))
	if len(in.MoodCounts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(RenderDistribution(in.MoodCounts, 20))
	}
	if in.Summary != "" {
		b.WriteString("\n\n")
		b.WriteString(in.Summary)
	}
	return RenderBox("Mood insights", b.String())
}
