package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/connyyu/pdbstats/internal/platform/db"
	"github.com/connyyu/pdbstats/internal/rcsb"
)

var ErrNoData = errors.New("stats service: no data available")

// Service provides the dataset behind the dashboard.
type Service interface {
	Dataset(ctx context.Context) ([]Record, error)
	Refresh(ctx context.Context) (RefreshResult, error)
	SnapshotAge(ctx context.Context) (time.Duration, error)
}

// RefreshResult reports the outcome of an upstream fetch.
type RefreshResult struct {
	Records   int       `json:"records"`
	FetchedAt time.Time `json:"fetched_at"`
}

type service struct {
	client rcsb.Client
	repo   Repository
	txMgr  db.TxManager
	ttl    time.Duration
	now    func() time.Time
}

var _ Service = (*service)(nil)

func NewService(client rcsb.Client, repo Repository, txMgr db.TxManager, ttl time.Duration) *service {
	return &service{
		client: client,
		repo:   repo,
		txMgr:  txMgr,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Dataset returns the cached dataset while the snapshot is fresh, fetching
// from upstream otherwise. When upstream is unavailable a stale snapshot is
// served rather than failing the request.
func (s *service) Dataset(ctx context.Context) ([]Record, error) {
	fetchedAt, err := s.repo.FetchedAt(ctx)
	if err != nil && !errors.Is(err, ErrNoSnapshot) {
		return nil, err
	}

	if err == nil && s.now().Sub(fetchedAt) < s.ttl {
		records, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			return records, nil
		}
	}

	if _, refreshErr := s.Refresh(ctx); refreshErr != nil {
		records, listErr := s.repo.List(ctx)
		if listErr == nil && len(records) > 0 {
			slog.Warn("Serving stale snapshot.", "fetched_at", fetchedAt, "reason", refreshErr)
			return records, nil
		}
		return nil, refreshErr
	}

	return s.repo.List(ctx)
}

// Refresh fetches counts for every tracked technique and swaps the stored
// snapshot. Techniques that fail upstream are skipped; the refresh fails
// only when nothing could be fetched.
func (s *service) Refresh(ctx context.Context) (RefreshResult, error) {
	merged := make(map[recordKey]int)
	for _, technique := range Techniques() {
		counts, err := s.client.CountsByYear(ctx, technique.Label)
		if err != nil {
			slog.Error("Failed to fetch counts.", "method", technique.Label, "reason", err)
			continue
		}

		for _, c := range counts {
			key := recordKey{year: c.Year, technique: c.Method}
			if c.Count > merged[key] {
				merged[key] = c.Count
			}
		}
	}

	if len(merged) == 0 {
		return RefreshResult{}, ErrNoData
	}

	records := flatten(merged)
	fetchedAt := s.now()

	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceAll(txCtx, records, fetchedAt)
	})
	if err != nil {
		return RefreshResult{}, fmt.Errorf("store snapshot: %w", err)
	}

	slog.Info("Snapshot refreshed.", "records", len(records), "fetched_at", fetchedAt)
	return RefreshResult{Records: len(records), FetchedAt: fetchedAt}, nil
}

// SnapshotAge reports how old the stored snapshot is.
func (s *service) SnapshotAge(ctx context.Context) (time.Duration, error) {
	fetchedAt, err := s.repo.FetchedAt(ctx)
	if err != nil {
		return 0, err
	}
	return s.now().Sub(fetchedAt), nil
}

type recordKey struct {
	year      int
	technique string
}

// flatten turns the merged counts into records sorted by year then
// technique. The same (year, technique) pair can come back from more than
// one method query; merging keeps the snapshot free of duplicate keys.
func flatten(merged map[recordKey]int) []Record {
	records := make([]Record, 0, len(merged))
	for key, count := range merged {
		records = append(records, Record{
			Year:          key.year,
			Technique:     key.technique,
			TechniqueFull: FullName(key.technique),
			Count:         count,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		return records[i].Technique < records[j].Technique
	})

	return records
}
