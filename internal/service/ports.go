package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexanderramin/haven/internal/domain"
)

// Narrow views of the API client, one per service.

type ProgressSubmitter interface {
	SubmitProgress(ctx context.Context, rec domain.ProgressRecord) (json.RawMessage, error)
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string, userType domain.UserType) (*domain.User, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.User, error)
}

type MoodAPI interface {
	LogMood(ctx context.Context, mood, note string, at time.Time) (json.RawMessage, error)
	MoodHistory(ctx context.Context) ([]domain.MoodEntry, error)
	MoodInsights(ctx context.Context) (*domain.MoodInsights, error)
}

type ChatAPI interface {
	Chat(ctx context.Context, text string) (*domain.ChatReply, error)
	ChatPublic(ctx context.Context, text string) (*domain.ChatReply, error)
}

type ProgressAPI interface {
	ListProgress(ctx context.Context, category domain.Category) ([]domain.ProgressEntry, error)
	CategoryStats(ctx context.Context, category domain.Category) (*domain.CategoryStats, error)
}

// SessionReader exposes the signed-in identity from local storage.
type SessionReader interface {
	UserID(ctx context.Context) (string, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}
