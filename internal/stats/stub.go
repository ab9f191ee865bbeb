package stats

import (
	"context"
	"errors"
	"time"
)

type StubService struct {
	DatasetFunc     func(ctx context.Context) ([]Record, error)
	RefreshFunc     func(ctx context.Context) (RefreshResult, error)
	SnapshotAgeFunc func(ctx context.Context) (time.Duration, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Dataset(ctx context.Context) ([]Record, error) {
	if s.DatasetFunc == nil {
		return nil, errors.New("Dataset() not implemented by stub")
	}
	return s.DatasetFunc(ctx)
}

func (s *StubService) Refresh(ctx context.Context) (RefreshResult, error) {
	if s.RefreshFunc == nil {
		return RefreshResult{}, errors.New("Refresh() not implemented by stub")
	}
	return s.RefreshFunc(ctx)
}

func (s *StubService) SnapshotAge(ctx context.Context) (time.Duration, error) {
	if s.SnapshotAgeFunc == nil {
		return 0, errors.New("SnapshotAge() not implemented by stub")
	}
	return s.SnapshotAgeFunc(ctx)
}

type StubRepo struct {
	ReplaceAllFunc func(ctx context.Context, records []Record, fetchedAt time.Time) error
	ListFunc       func(ctx context.Context) ([]Record, error)
	FetchedAtFunc  func(ctx context.Context) (time.Time, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) ReplaceAll(ctx context.Context, records []Record, fetchedAt time.Time) error {
	if r.ReplaceAllFunc == nil {
		return errors.New("ReplaceAll() not implemented by stub")
	}
	return r.ReplaceAllFunc(ctx, records, fetchedAt)
}

func (r *StubRepo) List(ctx context.Context) ([]Record, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return r.ListFunc(ctx)
}

func (r *StubRepo) FetchedAt(ctx context.Context) (time.Time, error) {
	if r.FetchedAtFunc == nil {
		return time.Time{}, errors.New("FetchedAt() not implemented by stub")
	}
	return r.FetchedAtFunc(ctx)
}
