package testutil

import (
	"time"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/google/uuid"
)

// PracticeLog options
type PracticeLogOption func(*domain.PracticeLog)

func WithElapsed(seconds int) PracticeLogOption {
	return func(l *domain.PracticeLog) {
		l.ElapsedSeconds = seconds
		l.Minutes = domain.ElapsedMinutes(l.PlannedSeconds, l.PlannedSeconds-seconds)
		l.Completed = seconds >= l.PlannedSeconds
	}
}

func WithSubmitted(ok bool, errMsg string) PracticeLogOption {
	return func(l *domain.PracticeLog) {
		l.Submitted = ok
		l.SubmitError = errMsg
	}
}

func WithPracticeStartedAt(t time.Time) PracticeLogOption {
	return func(l *domain.PracticeLog) {
		l.StartedAt = t
	}
}

// NewTestPracticeLog returns a completed, submitted run of plannedSeconds.
func NewTestPracticeLog(category domain.Category, plannedSeconds int, opts ...PracticeLogOption) *domain.PracticeLog {
	now := time.Now().UTC().Truncate(time.Second)
	l := &domain.PracticeLog{
		ID:             uuid.New().String(),
		Category:       category,
		PlannedSeconds: plannedSeconds,
		ElapsedSeconds: plannedSeconds,
		Minutes:        domain.ElapsedMinutes(plannedSeconds, 0),
		Completed:      true,
		Submitted:      true,
		StartedAt:      now.Add(-time.Duration(plannedSeconds) * time.Second),
		CreatedAt:      now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewTestUser returns a teen account with a numeric-looking id.
func NewTestUser(id string) domain.User {
	return domain.User{
		ID:       domain.FlexibleID(id),
		Email:    "sam@example.com",
		Name:     "Sam",
		LastName: "Rivera",
		UserType: domain.UserTeen,
	}
}

// NewTestSession returns a complete credential set for userID.
func NewTestSession(userID string) domain.AuthSession {
	return domain.AuthSession{
		AccessToken:  "access-" + userID,
		RefreshToken: "refresh-" + userID,
		UserID:       userID,
	}
}
