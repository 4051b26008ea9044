package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexanderramin/haven/internal/domain"
)

type moodService struct {
	api      MoodAPI
	observer UseCaseObserver
	now      func() time.Time
}

func NewMoodService(client MoodAPI, observers ...UseCaseObserver) MoodService {
	return &moodService{api: client, observer: useCaseObserverOrNoop(observers), now: time.Now}
}

func (s *moodService) Log(ctx context.Context, mood, note string) (json.RawMessage, error) {
	return s.api.LogMood(ctx, mood, note, s.now())
}

// History lists logged moods, or none when the server is unreachable.
func (s *moodService) History(ctx context.Context) ([]domain.MoodEntry, error) {
	startedAt := time.Now()
	entries, err := s.api.MoodHistory(ctx)
	if err != nil {
		if degradable(err) {
			observeDegraded(ctx, s.observer, "mood-history", startedAt, err)
			return []domain.MoodEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

// Insights fetches mood statistics, or zero values when the server is
// unreachable.
func (s *moodService) Insights(ctx context.Context) (*domain.MoodInsights, error) {
	startedAt := time.Now()
	insights, err := s.api.MoodInsights(ctx)
	if err != nil {
		if degradable(err) {
			observeDegraded(ctx, s.observer, "mood-insights", startedAt, err)
			return &domain.MoodInsights{MoodCounts: map[string]int{}}, nil
		}
		return nil, err
	}
	if insights.MoodCounts == nil {
		insights.MoodCounts = map[string]int{}
	}
	return insights, nil
}
