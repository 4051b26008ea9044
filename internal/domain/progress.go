package domain

import "time"

// ProgressTypeExercise is the record type used for timed practice sessions.
const ProgressTypeExercise = "exercise"

// ProgressRecord is the payload submitted to the API when a practice session
// ends. It is not persisted locally.
type ProgressRecord struct {
	Type            string    `json:"type"`
	Category        Category  `json:"category"`
	DurationMinutes int       `json:"duration"`
	Timestamp       time.Time `json:"timestamp"`
	UserID          string    `json:"user_id"`
}

// ElapsedMinutes converts a stopped countdown into whole minutes, rounding
// any partial minute up. Negative elapsed time counts as zero.
func ElapsedMinutes(durationSeconds, timeLeftSeconds int) int {
	elapsed := durationSeconds - timeLeftSeconds
	if elapsed <= 0 {
		return 0
	}
	return (elapsed + 59) / 60
}

// ProgressEntry is one row returned by GET /progress.
type ProgressEntry struct {
	ID        FlexibleID `json:"id,omitempty"`
	Type      string     `json:"type"`
	Category  Category   `json:"category"`
	Duration  int        `json:"duration"`
	Timestamp time.Time  `json:"timestamp"`
}

// CategoryStats aggregates progress for one category.
type CategoryStats struct {
	Category       Category   `json:"category"`
	TotalSessions  int        `json:"total_sessions"`
	TotalMinutes   int        `json:"total_minutes"`
	AverageMinutes float64    `json:"average_minutes"`
	LastSession    *time.Time `json:"last_session,omitempty"`
}
