package stats_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/connyyu/pdbstats/internal/stats"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const querySchema = `
CREATE TABLE IF NOT EXISTS release_counts (
    year INT NOT NULL,
    technique TEXT NOT NULL,
    count BIGINT NOT NULL,
    PRIMARY KEY (year, technique)
);
CREATE TABLE IF NOT EXISTS snapshot_meta (
    id SMALLINT PRIMARY KEY,
    fetched_at TIMESTAMPTZ NOT NULL
);
`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("DB_HOST is not set, skipping integration test")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASS"), host, os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})

	if _, err := conn.ExecContext(context.Background(), querySchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	cleanup := func() {
		if _, err := conn.ExecContext(context.Background(), "TRUNCATE release_counts, snapshot_meta"); err != nil {
			t.Fatalf("truncate tables: %v", err)
		}
	}
	cleanup()
	t.Cleanup(cleanup)

	return conn
}

func TestIntegration_Repository_ReplaceAllAndList(t *testing.T) {
	conn := setupTestDB(t)
	repo := stats.NewRepository(conn)
	ctx := context.Background()

	fetchedAt := time.Now().UTC().Truncate(time.Second)
	first := []stats.Record{
		{Year: 2020, Technique: "EM", Count: 600},
		{Year: 2020, Technique: "X-ray", Count: 300},
	}

	if err := repo.ReplaceAll(ctx, first, fetchedAt); err != nil {
		t.Fatalf("repo.ReplaceAll() = %v, want: nil error", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("repo.List() = %v, want: nil error", err)
	}

	want := []stats.Record{
		{Year: 2020, Technique: "EM", TechniqueFull: "Electron Microscopy", Count: 600},
		{Year: 2020, Technique: "X-ray", TechniqueFull: "X-ray Crystallography", Count: 300},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("repo.List() = %+v, want: %+v", got, want)
	}

	gotFetchedAt, err := repo.FetchedAt(ctx)
	if err != nil {
		t.Fatalf("repo.FetchedAt() = %v, want: nil error", err)
	}
	if !gotFetchedAt.Equal(fetchedAt) {
		t.Errorf("repo.FetchedAt() = %v, want: %v", gotFetchedAt, fetchedAt)
	}

	// A second snapshot fully replaces the first.
	second := []stats.Record{
		{Year: 2021, Technique: "NMR", Count: 42},
	}
	laterFetchedAt := fetchedAt.Add(time.Hour)

	if err := repo.ReplaceAll(ctx, second, laterFetchedAt); err != nil {
		t.Fatalf("repo.ReplaceAll() = %v, want: nil error", err)
	}

	got, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("repo.List() = %v, want: nil error", err)
	}
	if len(got) != 1 || got[0].Technique != "NMR" {
		t.Errorf("repo.List() = %+v, want: only the second snapshot", got)
	}

	gotFetchedAt, err = repo.FetchedAt(ctx)
	if err != nil {
		t.Fatalf("repo.FetchedAt() = %v, want: nil error", err)
	}
	if !gotFetchedAt.Equal(laterFetchedAt) {
		t.Errorf("repo.FetchedAt() = %v, want: %v", gotFetchedAt, laterFetchedAt)
	}
}

func TestIntegration_Repository_FetchedAtNoSnapshot(t *testing.T) {
	conn := setupTestDB(t)
	repo := stats.NewRepository(conn)

	if _, err := repo.FetchedAt(context.Background()); !errors.Is(err, stats.ErrNoSnapshot) {
		t.Errorf("repo.FetchedAt() error = %v, want: %v", err, stats.ErrNoSnapshot)
	}
}
