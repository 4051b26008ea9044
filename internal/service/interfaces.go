package service

import (
	"context"
	"encoding/json"

	"github.com/alexanderramin/haven/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string, userType domain.UserType) (*domain.User, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.User, error)
	// Current returns the locally stored user, or nil when signed out.
	Current(ctx context.Context) (*domain.User, error)
}

type MoodService interface {
	Log(ctx context.Context, mood, note string) (json.RawMessage, error)
	History(ctx context.Context) ([]domain.MoodEntry, error)
	Insights(ctx context.Context) (*domain.MoodInsights, error)
}

type ChatService interface {
	Send(ctx context.Context, text string) (*domain.ChatReply, error)
}

type ProgressService interface {
	List(ctx context.Context, category domain.Category) ([]domain.ProgressEntry, error)
	CategoryStats(ctx context.Context, category domain.Category) (*domain.CategoryStats, error)
	LocalJournal(ctx context.Context, days int) ([]*domain.PracticeLog, error)
	LocalSummary(ctx context.Context) ([]domain.PracticeSummary, error)
}

type PracticeService interface {
	// Finish records a stopped or completed run. It always returns an
	// outcome; submission and journal failures are reported on it.
	Finish(ctx context.Context, run PracticeRun) PracticeOutcome
}
