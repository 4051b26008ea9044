package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMood_LogThenHistoryAndInsights(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	svc := NewMoodService(env.client)
	ctx := context.Background()

	for _, m := range []string{"calm", "anxious", "calm"} {
		_, err := svc.Log(ctx, m, "")
		require.NoError(t, err)
	}

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "calm", history[0].Mood)
	assert.False(t, history[0].Timestamp.IsZero())

	insights, err := svc.Insights(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, insights.TotalEntries)
	assert.Equal(t, "calm", insights.MostCommonMood)
	assert.Equal(t, 2, insights.MoodCounts["calm"])
}

func TestMood_LogRequiresMood(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	svc := NewMoodService(env.client)

	_, err := svc.Log(context.Background(), "  ", "note")
	assert.ErrorIs(t, err, api.ErrValidation)
	assert.Empty(t, env.fake.CallsTo("POST /mood"))
}

func TestMood_HistoryDegradesOnServerError(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t)
	env.fake.Respond("GET /mood/history", 502, nil)
	env.fake.Respond("GET /mood/insights", 500, map[string]string{"detail": "db down"})
	obs := &recordingObserver{}
	svc := NewMoodService(env.client, obs)
	ctx := context.Background()

	history, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Equal(t, "mood-history", obs.last().Name)
	assert.Equal(t, true, obs.last().Fields["degraded"])

	insights, err := svc.Insights(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, insights.TotalEntries)
	assert.NotNil(t, insights.MoodCounts)
}

func TestMood_HistoryDoesNotHideExpiredSession(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMoodService(env.client)

	_, err := svc.History(context.Background())
	assert.ErrorIs(t, err, api.ErrSessionExpired)
}
