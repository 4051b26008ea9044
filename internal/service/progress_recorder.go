package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/domain"
)

// RecordInput describes a stopped countdown.
type RecordInput struct {
	DurationSeconds int
	TimeLeftSeconds int
	Category        domain.Category
	UserID          string
}

// ProgressRecorder turns a stopped session into one progress submission.
type ProgressRecorder struct {
	api ProgressSubmitter
	now func() time.Time
}

// NewProgressRecorder creates a recorder that submits through submitter.
func NewProgressRecorder(submitter ProgressSubmitter) *ProgressRecorder {
	return &ProgressRecorder{api: submitter, now: time.Now}
}

// Record submits the elapsed minutes of in. It makes no request when there
// is no user or nothing elapsed, and never retries on its own.
func (r *ProgressRecorder) Record(ctx context.Context, in RecordInput) (json.RawMessage, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("recording progress: %w", api.ErrUnauthenticated)
	}
	minutes := domain.ElapsedMinutes(in.DurationSeconds, in.TimeLeftSeconds)
	if minutes == 0 {
		return nil, ErrNothingToRecord
	}

	return r.api.SubmitProgress(ctx, domain.ProgressRecord{
		Type:            domain.ProgressTypeExercise,
		Category:        in.Category,
		DurationMinutes: minutes,
		Timestamp:       r.now().UTC(),
		UserID:          in.UserID,
	})
}
