package repository

import (
	"context"

	"github.com/alexanderramin/haven/internal/domain"
)

// KVRepo stores small string values under fixed keys.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

type PracticeLogRepo interface {
	Create(ctx context.Context, l *domain.PracticeLog) error
	GetByID(ctx context.Context, id string) (*domain.PracticeLog, error)
	ListRecent(ctx context.Context, days int) ([]*domain.PracticeLog, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.PracticeLog, error)
	SummaryByCategory(ctx context.Context) ([]domain.PracticeSummary, error)
	Delete(ctx context.Context, id string) error
}
