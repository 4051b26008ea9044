package service

import (
	"context"
	"time"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/repository"
)

type progressService struct {
	api      ProgressAPI
	logs     repository.PracticeLogRepo
	observer UseCaseObserver
}

func NewProgressService(client ProgressAPI, logs repository.PracticeLogRepo, observers ...UseCaseObserver) ProgressService {
	return &progressService{api: client, logs: logs, observer: useCaseObserverOrNoop(observers)}
}

func (s *progressService) List(ctx context.Context, category domain.Category) ([]domain.ProgressEntry, error) {
	startedAt := time.Now()
	entries, err := s.api.ListProgress(ctx, category)
	if err != nil {
		if degradable(err) {
			observeDegraded(ctx, s.observer, "progress-list", startedAt, err)
			return []domain.ProgressEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

func (s *progressService) CategoryStats(ctx context.Context, category domain.Category) (*domain.CategoryStats, error) {
	startedAt := time.Now()
	stats, err := s.api.CategoryStats(ctx, category)
	if err != nil {
		if degradable(err) {
			observeDegraded(ctx, s.observer, "progress-stats", startedAt, err)
			return &domain.CategoryStats{Category: category}, nil
		}
		return nil, err
	}
	return stats, nil
}

func (s *progressService) LocalJournal(ctx context.Context, days int) ([]*domain.PracticeLog, error) {
	if days <= 0 {
		days = 7
	}
	return s.logs.ListRecent(ctx, days)
}

func (s *progressService) LocalSummary(ctx context.Context) ([]domain.PracticeSummary, error) {
	return s.logs.SummaryByCategory(ctx)
}
