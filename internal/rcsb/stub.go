package rcsb

import (
	"context"
	"errors"
)

type StubClient struct {
	CountsByYearFunc func(ctx context.Context, method string) ([]YearCount, error)
}

var _ Client = (*StubClient)(nil)

func (c *StubClient) CountsByYear(ctx context.Context, method string) ([]YearCount, error) {
	if c.CountsByYearFunc == nil {
		return nil, errors.New("CountsByYear() not implemented by stub")
	}
	return c.CountsByYearFunc(ctx, method)
}
