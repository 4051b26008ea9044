package api

import (
	"context"
	"io"
	"log/slog"
)

// CallEvent records metadata about a single API request, including any
// refresh-and-replay it triggered.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Retried   bool
	Success   bool
	ErrorCode string
}

// Observer receives events about API calls for logging and metrics.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"latency_ms", event.LatencyMs,
		"retried", event.Retried,
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode)
		o.logger.WarnContext(ctx, "api_call", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}
