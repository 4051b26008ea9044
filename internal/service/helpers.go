package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/haven/internal/api"
)

// degradable reports whether a read may fall back to an empty result
// instead of failing the view. Auth and validation errors never degrade.
func degradable(err error) bool {
	return errors.Is(err, api.ErrServer) || errors.Is(err, api.ErrNetwork)
}

// observeDegraded reports a read that fell back to an empty result.
func observeDegraded(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   false,
		Err:       err,
		Fields:    map[string]any{"degraded": true},
	})
}
