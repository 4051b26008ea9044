package cli

import (
	"context"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/timer"
)

// ContentAPI serves the read-only recommendation and resource endpoints.
type ContentAPI interface {
	Recommendations(ctx context.Context) ([]domain.Recommendation, error)
	Resource(ctx context.Context, id string) (*domain.Resource, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) practices() []timer.Practice {
	if len(a.Practices) > 0 {
		return a.Practices
	}
	return timer.Presets()
}

func (a *App) notifier() timer.Notifier {
	if a.Notifier != nil {
		return a.Notifier
	}
	return timer.NoopNotifier{}
}

func (a *App) scheduler() timer.Scheduler {
	if a.Scheduler != nil {
		return a.Scheduler
	}
	return timer.TickerScheduler{}
}
