package domain

import "time"

// PracticeLog is the local journal row written for every finished practice
// run, whether or not the remote submission succeeded.
type PracticeLog struct {
	ID             string
	Category       Category
	PlannedSeconds int
	ElapsedSeconds int
	Minutes        int
	Completed      bool // ran to zero rather than stopped early
	Submitted      bool
	SubmitError    string
	StartedAt      time.Time
	CreatedAt      time.Time
}

// PracticeSummary totals journal rows for one category.
type PracticeSummary struct {
	Category     Category
	Sessions     int
	TotalMinutes int
	Pending      int
}
