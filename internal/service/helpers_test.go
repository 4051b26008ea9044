package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/auth"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/repository"
	"github.com/alexanderramin/haven/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires a real client, token store and journal against a fake API.
type testEnv struct {
	fake   *testutil.FakeAPI
	db     *sql.DB
	store  *auth.SQLiteStore
	client *api.Client
	logs   *repository.SQLitePracticeLogRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	database := testutil.NewTestDB(t)
	store := auth.NewSQLiteStore(database)

	cfg := api.DefaultConfig()
	cfg.BaseURL = fake.URL()
	cfg.TimeoutMs = 5000

	return &testEnv{
		fake:   fake,
		db:     database,
		store:  store,
		client: api.NewClient(cfg, store, nil),
		logs:   repository.NewSQLitePracticeLogRepo(database),
	}
}

func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	_, err := e.client.Login(context.Background(), "sam@example.com", testutil.FakeAPIPassword, domain.UserTeen)
	require.NoError(t, err)
}

// countingSubmitter records SubmitProgress calls without a network.
type countingSubmitter struct {
	mu    sync.Mutex
	calls []domain.ProgressRecord
	err   error
}

func (s *countingSubmitter) SubmitProgress(_ context.Context, rec domain.ProgressRecord) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, rec)
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{"status":"recorded"}`), nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
