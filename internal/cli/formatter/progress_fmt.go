package formatter

import (
	"fmt"

	"github.com/alexanderramin/haven/internal/domain"
)

// FormatProgressList renders progress entries returned by the server.
func FormatProgressList(entries []domain.ProgressEntry) string {
	if len(entries) == 0 {
		return Dim("No progress recorded yet. Start one with: haven practice start")
	}
	headers := []string{"WHEN", "CATEGORY", "DURATION"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			HumanTimestamp(e.Timestamp),
			CategoryBadge(e.Category),
			FormatMinutes(e.Duration),
		})
	}
	return RenderBox("Progress", RenderTable(headers, rows))
}

// FormatCategoryStats renders aggregate progress for one category.
func FormatCategoryStats(s *domain.CategoryStats) string {
	pairs := [][2]string{
		{"Sessions", fmt.Sprintf("%d", s.TotalSessions)},
		{"Total", FormatMinutes(s.TotalMinutes)},
		{"Average", fmt.Sprintf("%.1f min", s.AverageMinutes)},
	}
	if s.LastSession != nil {
		pairs = append(pairs, [2]string{"Last", HumanTimestamp(*s.LastSession)})
	}
	return RenderBox(string(s.Category), RenderKeyValues(pairs))
}

// FormatJournal renders the local practice journal.
func FormatJournal(logs []*domain.PracticeLog, days int) string {
	if len(logs) == 0 {
		return Dim(fmt.Sprintf("No practice sessions in the last %d days.", days))
	}
	headers := []string{"STARTED", "CATEGORY", "TIME", "RESULT", "SYNC"}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		result := Dim("stopped early")
		if l.Completed {
			result = StyleGreen.Render("completed")
		}
		rows = append(rows, []string{
			HumanTimestamp(l.StartedAt),
			CategoryBadge(l.Category),
			FormatMinutes(l.Minutes),
			result,
			SubmissionPill(l),
		})
	}
	return RenderBox(fmt.Sprintf("Journal · last %d days", days), RenderTable(headers, rows))
}

// FormatJournalSummary renders per-category totals from the journal.
func FormatJournalSummary(summary []domain.PracticeSummary) string {
	if len(summary) == 0 {
		return ""
	}
	headers := []string{"CATEGORY", "SESSIONS", "TOTAL", "UNSYNCED"}
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		pending := Dim("0")
		if s.Pending > 0 {
			pending = StyleYellow.Render(fmt.Sprintf("%d", s.Pending))
		}
		rows = append(rows, []string{
			CategoryBadge(s.Category),
			fmt.Sprintf("%d", s.Sessions),
			FormatMinutes(s.TotalMinutes),
			pending,
		})
	}
	return RenderBox("Totals", RenderTable(headers, rows))
}
