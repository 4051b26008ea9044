package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 3-minute anxiety session paused at 2 minutes, resumed and run to zero
// posts exactly one 3-minute record and leaves the timer idle.
func TestPractice_PauseResumeCompleteEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	ctx := context.Background()
	svc := NewPracticeService(NewProgressRecorder(env.client), env.store, env.logs)

	sched := timer.NewManualScheduler()
	var ctrl *timer.Controller
	var outcomes []PracticeOutcome
	ctrl, err := timer.NewController(180, sched, timer.WithOnComplete(func(elapsed int) {
		outcomes = append(outcomes, svc.Finish(ctx, PracticeRun{
			Category:        domain.CategoryAnxiety,
			DurationSeconds: 180,
			TimeLeftSeconds: 180 - elapsed,
		}))
		ctrl.Reset()
	}))
	require.NoError(t, err)

	require.NoError(t, ctrl.Start())
	sched.Advance(120)
	ctrl.Pause()
	assert.Equal(t, 60, ctrl.Snapshot().TimeLeft)

	sched.Advance(30)
	assert.Equal(t, 60, ctrl.Snapshot().TimeLeft, "paused timer must not move")

	require.NoError(t, ctrl.Start())
	sched.Advance(60)

	require.Len(t, outcomes, 1)
	out := outcomes[0]
	require.NoError(t, out.Err)
	require.NoError(t, out.JournalErr)
	assert.True(t, out.Submitted())

	posts := env.fake.CallsTo("POST /progress")
	require.Len(t, posts, 1)
	var body map[string]any
	require.NoError(t, posts[0].JSON(&body))
	assert.Equal(t, "exercise", body["type"])
	assert.Equal(t, "anxiety-management", body["category"])
	assert.EqualValues(t, 3, body["duration"])
	assert.Equal(t, "42", body["user_id"])

	snap := ctrl.Snapshot()
	assert.Equal(t, timer.Idle, snap.State)
	assert.Equal(t, 180, snap.TimeLeft)
	assert.Equal(t, 0, sched.Active())

	logged, err := env.logs.GetByID(ctx, out.Log.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, logged.Minutes)
	assert.True(t, logged.Completed)
	assert.True(t, logged.Submitted)
}

func TestPractice_FailedSubmissionIsJournaled(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	env.fake.Respond("POST /progress", 500, map[string]string{"detail": "boom"})
	obs := &recordingObserver{}
	svc := NewPracticeService(NewProgressRecorder(env.client), env.store, env.logs, obs)

	out := svc.Finish(context.Background(), PracticeRun{
		Category:        domain.CategoryMeditation,
		DurationSeconds: 600,
		TimeLeftSeconds: 300,
		StartedAt:       time.Now().Add(-5 * time.Minute),
	})

	assert.ErrorIs(t, out.Err, api.ErrServer)
	assert.False(t, out.Submitted())
	require.NoError(t, out.JournalErr)

	logged, err := env.logs.GetByID(context.Background(), out.Log.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, logged.Minutes)
	assert.False(t, logged.Completed)
	assert.False(t, logged.Submitted)
	assert.NotEmpty(t, logged.SubmitError)

	ev := obs.last()
	assert.Equal(t, "practice-finish", ev.Name)
	assert.False(t, ev.Success)
	assert.Equal(t, false, ev.Fields["submitted"])
}

func TestPractice_SignedOutStillJournals(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPracticeService(NewProgressRecorder(env.client), env.store, env.logs)

	out := svc.Finish(context.Background(), PracticeRun{
		Category:        domain.CategorySleep,
		DurationSeconds: 900,
		TimeLeftSeconds: 0,
	})

	assert.ErrorIs(t, out.Err, api.ErrUnauthenticated)
	assert.Empty(t, env.fake.CallsTo("POST /progress"))
	require.NoError(t, out.JournalErr)

	summary, err := env.logs.SummaryByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 15, summary[0].TotalMinutes)
	assert.Equal(t, 1, summary[0].Pending)
}

func TestPractice_StoppedImmediatelyIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	obs := &recordingObserver{}
	svc := NewPracticeService(NewProgressRecorder(env.client), env.store, env.logs, obs)

	out := svc.Finish(context.Background(), PracticeRun{
		Category:        domain.CategoryStress,
		DurationSeconds: 300,
		TimeLeftSeconds: 300,
	})

	assert.ErrorIs(t, out.Err, ErrNothingToRecord)
	assert.Empty(t, env.fake.CallsTo("POST /progress"))
	assert.Equal(t, 0, out.Log.Minutes)
	assert.Empty(t, out.Log.SubmitError)
	assert.True(t, obs.last().Success)
}

func TestPractice_CancelledContextStillJournals(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	svc := NewPracticeService(NewProgressRecorder(env.client), env.store, env.logs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := svc.Finish(ctx, PracticeRun{
		Category:        domain.CategorySelfCare,
		DurationSeconds: 600,
		TimeLeftSeconds: 0,
	})

	assert.Error(t, out.Err)
	require.NoError(t, out.JournalErr)
	_, err := env.logs.GetByID(context.Background(), out.Log.ID)
	assert.NoError(t, err)
}
