package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/repository"
	"github.com/google/uuid"
)

// PracticeRun is a finished countdown as seen by the caller.
type PracticeRun struct {
	Category        domain.Category
	DurationSeconds int
	TimeLeftSeconds int
	StartedAt       time.Time
}

// PracticeOutcome reports what happened to a finished run.
type PracticeOutcome struct {
	Log        *domain.PracticeLog
	Ack        json.RawMessage
	Err        error // submission error, nil when the server accepted it
	JournalErr error
}

// Submitted reports whether the server accepted the record.
func (o PracticeOutcome) Submitted() bool {
	return o.Err == nil
}

type practiceService struct {
	recorder *ProgressRecorder
	session  SessionReader
	logs     repository.PracticeLogRepo
	observer UseCaseObserver
}

func NewPracticeService(
	recorder *ProgressRecorder,
	session SessionReader,
	logs repository.PracticeLogRepo,
	observers ...UseCaseObserver,
) PracticeService {
	return &practiceService{
		recorder: recorder,
		session:  session,
		logs:     logs,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *practiceService) Finish(ctx context.Context, run PracticeRun) (out PracticeOutcome) {
	startedAt := time.Now()
	fields := map[string]any{
		"category": string(run.Category),
	}
	defer func() {
		err := errors.Join(out.Err, out.JournalErr)
		if errors.Is(out.Err, ErrNothingToRecord) {
			err = out.JournalErr
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "practice-finish",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	elapsed := run.DurationSeconds - run.TimeLeftSeconds
	if elapsed < 0 {
		elapsed = 0
	}
	now := time.Now().UTC()
	log := &domain.PracticeLog{
		ID:             uuid.New().String(),
		Category:       run.Category,
		PlannedSeconds: run.DurationSeconds,
		ElapsedSeconds: elapsed,
		Minutes:        domain.ElapsedMinutes(run.DurationSeconds, run.TimeLeftSeconds),
		Completed:      run.TimeLeftSeconds <= 0,
		StartedAt:      run.StartedAt,
		CreatedAt:      now,
	}
	if log.StartedAt.IsZero() {
		log.StartedAt = now.Add(-time.Duration(elapsed) * time.Second)
	}
	fields["minutes"] = log.Minutes
	out.Log = log

	userID, err := s.session.UserID(ctx)
	if err != nil {
		out.Err = fmt.Errorf("reading session: %w", err)
	} else {
		out.Ack, out.Err = s.recorder.Record(ctx, RecordInput{
			DurationSeconds: run.DurationSeconds,
			TimeLeftSeconds: run.TimeLeftSeconds,
			Category:        run.Category,
			UserID:          userID,
		})
	}

	log.Submitted = out.Err == nil
	if out.Err != nil && !errors.Is(out.Err, ErrNothingToRecord) {
		log.SubmitError = out.Err.Error()
	}
	fields["submitted"] = log.Submitted

	// Journal even when the caller's context is already cancelled.
	if err := s.logs.Create(context.WithoutCancel(ctx), log); err != nil {
		out.JournalErr = err
	}
	return out
}
