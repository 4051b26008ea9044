package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/haven/internal/db"
)

// FailOnKeyUoW is a UnitOfWork that fails any write touching Key inside the
// transaction. Writes to other keys run normally until then, so a test can
// check that a multi-key save or clear rolls back as a whole.
type FailOnKeyUoW struct {
	DB  *sql.DB
	Key string
	Err error

	// Hits counts the writes that were refused.
	Hits int
}

func (u *FailOnKeyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if fnErr := fn(ctx, &failOnKey{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnKey struct {
	db.DBTX
	uow *FailOnKeyUoW
}

func (f *failOnKey) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	for _, a := range args {
		if s, ok := a.(string); ok && s == f.uow.Key {
			f.uow.Hits++
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
