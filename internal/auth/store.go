// Package auth persists the signed-in session in the local database.
package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/haven/internal/db"
	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/repository"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
	keyUserID       = "user_id"
)

var sessionKeys = []string{keyAccessToken, keyRefreshToken, keyUser, keyUserID}

// ErrNoSession is returned when an operation needs stored credentials and
// there are none.
var ErrNoSession = errors.New("no stored session")

// SQLiteStore keeps the credential set in the kv table. Writes that touch
// more than one key run in a single transaction, so readers see either the
// whole session or none of it.
type SQLiteStore struct {
	kv  repository.KVRepo
	uow db.UnitOfWork
}

// NewSQLiteStore creates a store on database.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return NewStore(database, db.NewSQLiteUnitOfWork(database))
}

// NewStore creates a store reading through conn and writing through uow.
func NewStore(conn db.DBTX, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{kv: repository.NewSQLiteKVRepo(conn), uow: uow}
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, keyAccessToken)
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, keyRefreshToken)
}

// SetAccessToken replaces the access token of an existing session.
func (s *SQLiteStore) SetAccessToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("setting access token: empty token")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVRepo(tx)
		if _, err := kv.Get(ctx, keyRefreshToken); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNoSession
			}
			return err
		}
		return kv.Set(ctx, keyAccessToken, token)
	})
}

// SaveSession writes the access token, refresh token, user and user id
// together.
func (s *SQLiteStore) SaveSession(ctx context.Context, session domain.AuthSession, user domain.User) error {
	if !session.Complete() {
		return fmt.Errorf("saving session: incomplete credentials")
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVRepo(tx)
		values := []struct{ key, value string }{
			{keyAccessToken, session.AccessToken},
			{keyRefreshToken, session.RefreshToken},
			{keyUserID, session.UserID},
			{keyUser, string(userJSON)},
		}
		for _, v := range values {
			if err := kv.Set(ctx, v.key, v.value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes every credential.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteKVRepo(tx).Delete(ctx, sessionKeys...)
	})
}

// Session returns the stored credentials. A partial set is cleared and
// reported as empty.
func (s *SQLiteStore) Session(ctx context.Context) (domain.AuthSession, error) {
	var sess domain.AuthSession
	var err error
	if sess.AccessToken, err = s.get(ctx, keyAccessToken); err != nil {
		return domain.AuthSession{}, err
	}
	if sess.RefreshToken, err = s.get(ctx, keyRefreshToken); err != nil {
		return domain.AuthSession{}, err
	}
	if sess.UserID, err = s.get(ctx, keyUserID); err != nil {
		return domain.AuthSession{}, err
	}

	if !sess.Complete() && !sess.Empty() {
		if err := s.Clear(ctx); err != nil {
			return domain.AuthSession{}, err
		}
		return domain.AuthSession{}, nil
	}
	return sess, nil
}

// CurrentUser returns the stored user, or ErrNoSession when signed out.
func (s *SQLiteStore) CurrentUser(ctx context.Context) (*domain.User, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Empty() {
		return nil, ErrNoSession
	}

	raw, err := s.get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	user := domain.User{ID: domain.FlexibleID(sess.UserID)}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("decoding stored user: %w", err)
		}
	}
	return &user, nil
}

// UserID returns the stored user id, or "" when signed out.
func (s *SQLiteStore) UserID(ctx context.Context) (string, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return v, err
}
