package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/connyyu/pdbstats/internal/platform/db"
)

var (
	ErrNoSnapshot  = errors.New("stats repository: no snapshot")
	ErrQueryFailed = errors.New("stats repository: query failed")
)

// Repository persists the latest fetched dataset.
type Repository interface {
	ReplaceAll(ctx context.Context, records []Record, fetchedAt time.Time) error
	List(ctx context.Context) ([]Record, error)
	FetchedAt(ctx context.Context) (time.Time, error)
}

type PostgresRepository struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

func NewRepository(conn *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// executor returns the transaction bound to the context when one is
// present, so ReplaceAll participates in the caller's transaction.
func (r *PostgresRepository) executor(ctx context.Context) db.Executor {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

const (
	queryDeleteCounts = "DELETE FROM release_counts"
	queryInsertCount  = `
INSERT INTO release_counts (year, technique, count)
VALUES ($1, $2, $3)
`
	queryUpsertMeta = `
INSERT INTO snapshot_meta (id, fetched_at)
VALUES (1, $1)
ON CONFLICT (id) DO UPDATE SET fetched_at = EXCLUDED.fetched_at
`
)

// ReplaceAll swaps the stored snapshot for the given records and stamps the
// fetch time. Callers should run it inside a transaction so readers never
// see a half-written snapshot.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, records []Record, fetchedAt time.Time) error {
	ex := r.executor(ctx)

	if _, err := ex.ExecContext(ctx, queryDeleteCounts); err != nil {
		return fmt.Errorf("%w: clear release counts: %v", ErrQueryFailed, err)
	}

	for _, rec := range records {
		if _, err := ex.ExecContext(ctx, queryInsertCount, rec.Year, rec.Technique, rec.Count); err != nil {
			return fmt.Errorf("%w: insert count for %s/%d: %v", ErrQueryFailed, rec.Technique, rec.Year, err)
		}
	}

	if _, err := ex.ExecContext(ctx, queryUpsertMeta, fetchedAt); err != nil {
		return fmt.Errorf("%w: stamp snapshot: %v", ErrQueryFailed, err)
	}

	return nil
}

const queryListCounts = `
SELECT year, technique, count FROM release_counts
ORDER BY year, technique
`

func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.executor(ctx).QueryContext(ctx, queryListCounts)
	if err != nil {
		return nil, fmt.Errorf("%w: list release counts: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Year, &rec.Technique, &rec.Count); err != nil {
			return nil, fmt.Errorf("stats repository: scan row: %w", err)
		}
		rec.TechniqueFull = FullName(rec.Technique)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats repository: iterate over count rows: %w", err)
	}

	return records, nil
}

const querySelectMeta = `
SELECT fetched_at FROM snapshot_meta
WHERE id = 1
LIMIT 1
`

func (r *PostgresRepository) FetchedAt(ctx context.Context) (time.Time, error) {
	row := r.executor(ctx).QueryRowContext(ctx, querySelectMeta)
	var fetchedAt time.Time
	if err := row.Scan(&fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNoSnapshot
		}
		return time.Time{}, fmt.Errorf("%w: read snapshot meta: %v", ErrQueryFailed, err)
	}
	return fetchedAt, nil
}
