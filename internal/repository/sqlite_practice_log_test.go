package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeLogRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLitePracticeLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	l := testutil.NewTestPracticeLog(domain.CategoryAnxiety, 180,
		testutil.WithElapsed(100),
		testutil.WithSubmitted(false, "network down"))
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryAnxiety, got.Category)
	assert.Equal(t, 180, got.PlannedSeconds)
	assert.Equal(t, 100, got.ElapsedSeconds)
	assert.Equal(t, 2, got.Minutes)
	assert.False(t, got.Completed)
	assert.False(t, got.Submitted)
	assert.Equal(t, "network down", got.SubmitError)
	assert.True(t, l.StartedAt.Equal(got.StartedAt))
}

func TestPracticeLogRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLitePracticeLogRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPracticeLogRepo_RejectsUnknownCategory(t *testing.T) {
	repo := NewSQLitePracticeLogRepo(testutil.NewTestDB(t))

	l := testutil.NewTestPracticeLog(domain.Category("juggling"), 60)
	assert.Error(t, repo.Create(context.Background(), l))
}

func TestPracticeLogRepo_ListRecent(t *testing.T) {
	repo := NewSQLitePracticeLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	old := testutil.NewTestPracticeLog(domain.CategorySleep, 900, testutil.WithPracticeStartedAt(now.AddDate(0, 0, -30)))
	yesterday := testutil.NewTestPracticeLog(domain.CategoryMeditation, 600, testutil.WithPracticeStartedAt(now.AddDate(0, 0, -1)))
	today := testutil.NewTestPracticeLog(domain.CategoryStress, 300, testutil.WithPracticeStartedAt(now.Add(-time.Hour)))
	for _, l := range []*domain.PracticeLog{old, yesterday, today} {
		require.NoError(t, repo.Create(ctx, l))
	}

	logs, err := repo.ListRecent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, today.ID, logs[0].ID, "newest first")
	assert.Equal(t, yesterday.ID, logs[1].ID)
}

func TestPracticeLogRepo_ListByCategory(t *testing.T) {
	repo := NewSQLitePracticeLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestPracticeLog(domain.CategorySleep, 900)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPracticeLog(domain.CategorySelfCare, 600)))

	logs, err := repo.ListByCategory(ctx, domain.CategorySleep)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.CategorySleep, logs[0].Category)
}

func TestPracticeLogRepo_SummaryByCategory(t *testing.T) {
	repo := NewSQLitePracticeLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	logs := []*domain.PracticeLog{
		testutil.NewTestPracticeLog(domain.CategoryAnxiety, 180),
		testutil.NewTestPracticeLog(domain.CategoryAnxiety, 180, testutil.WithElapsed(61), testutil.WithSubmitted(false, "offline")),
		testutil.NewTestPracticeLog(domain.CategoryMeditation, 600),
		// Stopped before any time elapsed: nothing to submit, so not pending.
		testutil.NewTestPracticeLog(domain.CategoryMeditation, 600, testutil.WithElapsed(0), testutil.WithSubmitted(false, "")),
	}
	for _, l := range logs {
		require.NoError(t, repo.Create(ctx, l))
	}

	summary, err := repo.SummaryByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, domain.CategoryAnxiety, summary[0].Category)
	assert.Equal(t, 2, summary[0].Sessions)
	assert.Equal(t, 5, summary[0].TotalMinutes)
	assert.Equal(t, 1, summary[0].Pending)

	assert.Equal(t, domain.CategoryMeditation, summary[1].Category)
	assert.Equal(t, 2, summary[1].Sessions)
	assert.Equal(t, 10, summary[1].TotalMinutes)
	assert.Equal(t, 0, summary[1].Pending)
}

func TestPracticeLogRepo_Delete(t *testing.T) {
	repo := NewSQLitePracticeLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	l := testutil.NewTestPracticeLog(domain.CategoryStress, 300)
	require.NoError(t, repo.Create(ctx, l))

	require.NoError(t, repo.Delete(ctx, l.ID))
	_, err := repo.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, l.ID), ErrNotFound)
}
