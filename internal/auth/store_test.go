package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/haven/internal/api"
	"github.com/alexanderramin/haven/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ api.TokenStore = (*SQLiteStore)(nil)

func TestStore_SaveSessionAndRead(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, testutil.NewTestSession("42"), testutil.NewTestUser("42")))

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-42", access)

	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-42", refresh)

	user, err := store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID.String())
	assert.Equal(t, "Sam Rivera", user.DisplayName())

	id, err := store.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestStore_EmptyStoreReadsBlank(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	ctx := context.Background()

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)

	sess, err := store.Session(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())

	_, err = store.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, store.SaveSession(ctx, testutil.NewTestSession("7"), testutil.NewTestUser("7")))

	require.NoError(t, store.Clear(ctx))

	sess, err := store.Session(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())
	_, err = store.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveSessionIsAtomic(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	uow := &testutil.FailOnKeyUoW{DB: database, Key: keyUser, Err: boom}
	store := NewStore(database, uow)
	ctx := context.Background()

	err := store.SaveSession(ctx, testutil.NewTestSession("42"), testutil.NewTestUser("42"))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, uow.Hits)

	sess, err := NewSQLiteStore(database).Session(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty(), "no key from the failed save may be visible")
}

func TestStore_FailedClearKeepsSession(t *testing.T) {
	database := testutil.NewSignedInTestDB(t, "42")
	boom := errors.New("disk full")
	store := NewStore(database, &testutil.FailOnKeyUoW{DB: database, Key: keyRefreshToken, Err: boom})
	ctx := context.Background()

	require.ErrorIs(t, store.Clear(ctx), boom)

	sess, err := store.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.NewTestSession("42"), sess)
}

func TestStore_ReadsSeededSession(t *testing.T) {
	store := NewSQLiteStore(testutil.NewSignedInTestDB(t, "9"))
	ctx := context.Background()

	user, err := store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9", user.ID.String())
	assert.Equal(t, "sam@example.com", user.Email)

	require.NoError(t, store.Clear(ctx))
	_, err = store.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_RejectsIncompleteSession(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	sess := testutil.NewTestSession("42")
	sess.RefreshToken = ""

	err := store.SaveSession(context.Background(), sess, testutil.NewTestUser("42"))
	assert.Error(t, err)
}

func TestStore_PartialStateIsCleared(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewSQLiteStore(database)
	ctx := context.Background()

	testutil.SeedKV(t, database, map[string]string{keyAccessToken: "orphan"})

	sess, err := store.Session(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access, "orphaned access token should be removed")
}

func TestStore_SetAccessToken(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	ctx := context.Background()

	err := store.SetAccessToken(ctx, "fresh")
	assert.ErrorIs(t, err, ErrNoSession, "no refresh token stored yet")

	require.NoError(t, store.SaveSession(ctx, testutil.NewTestSession("42"), testutil.NewTestUser("42")))
	require.NoError(t, store.SetAccessToken(ctx, "fresh"))

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", access)
	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-42", refresh, "refresh token is untouched")
}
