package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_ListAndStats(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	ctx := context.Background()
	rec := NewProgressRecorder(env.client)
	for _, in := range []RecordInput{
		{DurationSeconds: 180, Category: domain.CategoryAnxiety, UserID: "42"},
		{DurationSeconds: 300, Category: domain.CategoryAnxiety, UserID: "42"},
		{DurationSeconds: 600, Category: domain.CategoryMeditation, UserID: "42"},
	} {
		_, err := rec.Record(ctx, in)
		require.NoError(t, err)
	}
	svc := NewProgressService(env.client, env.logs)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	anxiety, err := svc.List(ctx, domain.CategoryAnxiety)
	require.NoError(t, err)
	assert.Len(t, anxiety, 2)

	stats, err := svc.CategoryStats(ctx, domain.CategoryAnxiety)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 8, stats.TotalMinutes)
	assert.InDelta(t, 4.0, stats.AverageMinutes, 0.001)
}

func TestProgress_DegradesOnNetworkError(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	env.fake.Server.Close()
	obs := &recordingObserver{}
	svc := NewProgressService(env.client, env.logs, obs)
	ctx := context.Background()

	entries, err := svc.List(ctx, domain.CategorySleep)
	require.NoError(t, err)
	assert.Empty(t, entries)

	stats, err := svc.CategoryStats(ctx, domain.CategorySleep)
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySleep, stats.Category)
	assert.Zero(t, stats.TotalSessions)
	assert.Equal(t, "progress-stats", obs.last().Name)
}

func TestProgress_ValidationIsNotDegraded(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	env.fake.Respond("GET /progress", 422, map[string]any{
		"detail": []map[string]any{{"msg": "category is not valid"}},
	})
	svc := NewProgressService(env.client, env.logs)

	_, err := svc.List(context.Background(), domain.CategorySleep)
	assert.ErrorIs(t, err, api.ErrValidation)
	assert.Equal(t, "category is not valid", api.UserMessage(err))
}

func TestProgress_LocalJournal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.logs.Create(ctx, testutil.NewTestPracticeLog(domain.CategorySelfCare, 600)))
	require.NoError(t, env.logs.Create(ctx, testutil.NewTestPracticeLog(domain.CategorySelfCare, 600,
		testutil.WithSubmitted(false, "offline"))))
	svc := NewProgressService(env.client, env.logs)

	logs, err := svc.LocalJournal(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	summary, err := svc.LocalSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 20, summary[0].TotalMinutes)
	assert.Equal(t, 1, summary[0].Pending)
}
