package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/haven/internal/db"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewSignedInTestDB returns a test database whose kv table already holds the
// credentials from NewTestSession(userID) and the NewTestUser(userID) profile.
func NewSignedInTestDB(t *testing.T, userID string) *sql.DB {
	t.Helper()
	database := NewTestDB(t)
	sess := NewTestSession(userID)
	user, err := json.Marshal(NewTestUser(userID))
	if err != nil {
		t.Fatalf("encoding test user: %v", err)
	}
	SeedKV(t, database, map[string]string{
		"access_token":  sess.AccessToken,
		"refresh_token": sess.RefreshToken,
		"user_id":       sess.UserID,
		"user":          string(user),
	})
	return database
}

// SeedKV writes raw kv rows, bypassing the session store.
func SeedKV(t *testing.T, database *sql.DB, values map[string]string) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range values {
		if _, err := database.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`, k, v, now); err != nil {
			t.Fatalf("seeding kv %q: %v", k, err)
		}
	}
}
