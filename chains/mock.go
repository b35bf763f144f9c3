package chains

import (
	"context"

	"github.com/hinkal-protocol/batch-node/hinkal"
	"github.com/hinkal-protocol/batch-node/types"
)

type MockDispatcher struct {
	ExecuteFunc func(ctx context.Context, wallet hinkal.Wallet, tx *types.BatchTransaction) *types.ExecutionResult
}

func (m *MockDispatcher) Execute(ctx context.Context, wallet hinkal.Wallet,
	tx *types.BatchTransaction) *types.ExecutionResult {

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, wallet, tx)
	}

	return nil
}
