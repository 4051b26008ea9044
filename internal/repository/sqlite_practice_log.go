package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/haven/internal/db"
	"github.com/alexanderramin/haven/internal/domain"
)

const practiceLogColumns = `id, category, planned_seconds, elapsed_seconds, minutes,
	completed, submitted, submit_error, started_at, created_at`

// SQLitePracticeLogRepo implements PracticeLogRepo using a SQLite database.
type SQLitePracticeLogRepo struct {
	db db.DBTX
}

// NewSQLitePracticeLogRepo creates a new SQLitePracticeLogRepo.
func NewSQLitePracticeLogRepo(conn db.DBTX) *SQLitePracticeLogRepo {
	return &SQLitePracticeLogRepo{db: conn}
}

func (r *SQLitePracticeLogRepo) Create(ctx context.Context, l *domain.PracticeLog) error {
	query := `INSERT INTO practice_logs (` + practiceLogColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		string(l.Category),
		l.PlannedSeconds,
		l.ElapsedSeconds,
		l.Minutes,
		boolToInt(l.Completed),
		boolToInt(l.Submitted),
		l.SubmitError,
		l.StartedAt.UTC().Format(time.RFC3339),
		l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting practice log: %w", err)
	}
	return nil
}

func (r *SQLitePracticeLogRepo) GetByID(ctx context.Context, id string) (*domain.PracticeLog, error) {
	query := `SELECT ` + practiceLogColumns + ` FROM practice_logs WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	l, err := scanPracticeLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("practice log: %w", ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

// ListRecent returns logs started within the last days days, newest first.
func (r *SQLitePracticeLogRepo) ListRecent(ctx context.Context, days int) ([]*domain.PracticeLog, error) {
	query := `SELECT ` + practiceLogColumns + `
		FROM practice_logs
		WHERE started_at >= date('now', ?)
		ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, daysAgoModifier(days))
	if err != nil {
		return nil, fmt.Errorf("listing recent practice logs: %w", err)
	}
	defer rows.Close()
	return scanPracticeLogs(rows)
}

func (r *SQLitePracticeLogRepo) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.PracticeLog, error) {
	query := `SELECT ` + practiceLogColumns + `
		FROM practice_logs WHERE category = ? ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("listing practice logs by category: %w", err)
	}
	defer rows.Close()
	return scanPracticeLogs(rows)
}

// SummaryByCategory totals sessions and minutes per category. Pending counts
// rows whose remote submission did not go through.
func (r *SQLitePracticeLogRepo) SummaryByCategory(ctx context.Context) ([]domain.PracticeSummary, error) {
	query := `SELECT category, COUNT(*), COALESCE(SUM(minutes), 0),
		COALESCE(SUM(CASE WHEN submitted = 0 AND minutes > 0 THEN 1 ELSE 0 END), 0)
		FROM practice_logs
		GROUP BY category
		ORDER BY category`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summarizing practice logs: %w", err)
	}
	defer rows.Close()

	var out []domain.PracticeSummary
	for rows.Next() {
		var s domain.PracticeSummary
		var category string
		if err := rows.Scan(&category, &s.Sessions, &s.TotalMinutes, &s.Pending); err != nil {
			return nil, fmt.Errorf("scanning practice summary: %w", err)
		}
		s.Category = domain.Category(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating practice summary: %w", err)
	}
	return out, nil
}

func (r *SQLitePracticeLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM practice_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting practice log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("practice log: %w", ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPracticeLog(s rowScanner) (*domain.PracticeLog, error) {
	var l domain.PracticeLog
	var category, startedAtStr, createdAtStr string
	var completed, submitted int

	err := s.Scan(
		&l.ID, &category, &l.PlannedSeconds, &l.ElapsedSeconds, &l.Minutes,
		&completed, &submitted, &l.SubmitError, &startedAtStr, &createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning practice log: %w", err)
	}

	l.Category = domain.Category(category)
	l.Completed = intToBool(completed)
	l.Submitted = intToBool(submitted)
	if l.StartedAt, err = time.Parse(time.RFC3339, startedAtStr); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &l, nil
}

func scanPracticeLogs(rows *sql.Rows) ([]*domain.PracticeLog, error) {
	var logs []*domain.PracticeLog
	for rows.Next() {
		l, err := scanPracticeLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating practice logs: %w", err)
	}
	return logs, nil
}
