package db

import "context"

// StubTxManager runs the function directly, without a transaction.
type StubTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ TxManager = (*StubTxManager)(nil)

func (tm *StubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tm.RunInTxFunc != nil {
		return tm.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
