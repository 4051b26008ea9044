package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/timer"
)

// FormatPracticeList renders the available practices.
func FormatPracticeList(practices []timer.Practice) string {
	headers := []string{"CATEGORY", "PRACTICE", "DEFAULT", "PRESETS"}
	rows := make([][]string, 0, len(practices))
	for _, p := range practices {
		presets := make([]string, 0, len(p.PresetMinutes))
		for _, m := range p.PresetMinutes {
			presets = append(presets, fmt.Sprintf("%d", m))
		}
		rows = append(rows, []string{
			CategoryBadge(p.Category),
			Bold(p.Title),
			FormatMinutes(p.DefaultMinutes),
			Dim(strings.Join(presets, ", ") + " min"),
		})
	}
	return RenderBox("Practices", RenderTable(headers, rows))
}

// FormatRecordResult renders the one-line outcome of recording a session.
// nothingToRecord reports that the session ended before any time elapsed.
func FormatRecordResult(minutes int, err error, nothingToRecord bool) string {
	switch {
	case err == nil:
		return Success(fmt.Sprintf("Recorded %s of practice.", FormatMinutes(minutes)))
	case nothingToRecord:
		return Dim("No time elapsed, nothing recorded.")
	case errors.Is(err, api.ErrUnauthenticated):
		return Warning("Saved locally. Log in to sync your progress.")
	case errors.Is(err, api.ErrSessionExpired):
		return Warning("Saved locally. " + api.UserMessage(err))
	default:
		return Warning("Saved locally, but syncing failed: " + api.UserMessage(err))
	}
}

// FormatCompletion renders the end-of-session message for a practice.
func FormatCompletion(p timer.Practice) string {
	return RenderBox(p.CompletionTitle, p.CompletionMessage)
}
