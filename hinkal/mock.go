package hinkal

import (
	"context"
	"math/big"

	"github.com/hinkal-protocol/batch-node/config"
)

type MockWallet struct {
	CurrentChainIdFunc func() int64
	SyncStateFunc      func(ctx context.Context) error
	DepositFunc        func(ctx context.Context, tokens []config.Token, amounts []*big.Int) (*TxOutcome, error)
	WithdrawFunc       func(ctx context.Context, tokens []config.Token, amounts []*big.Int,
		recipient string, isRelayerOff bool, feeToken string) (*TxOutcome, error)
	TransferFunc func(ctx context.Context, tokens []config.Token, amounts []*big.Int,
		recipient string, feeToken string) (*TxOutcome, error)
	SwapFunc func(ctx context.Context, tokens []config.Token, amounts []*big.Int,
		routeData string, feeToken string) (*TxOutcome, error)
	SwapQuoteFunc func(ctx context.Context, tokenIn, tokenOut config.Token, amountIn string) (string, error)
}

func (m *MockWallet) CurrentChainId() int64 {
	if m.CurrentChainIdFunc != nil {
		return m.CurrentChainIdFunc()
	}

	return 0
}

func (m *MockWallet) SyncState(ctx context.Context) error {
	if m.SyncStateFunc != nil {
		return m.SyncStateFunc(ctx)
	}

	return nil
}

func (m *MockWallet) Deposit(ctx context.Context, tokens []config.Token, amounts []*big.Int) (*TxOutcome, error) {
	if m.DepositFunc != nil {
		return m.DepositFunc(ctx, tokens, amounts)
	}

	return nil, nil
}

func (m *MockWallet) Withdraw(ctx context.Context, tokens []config.Token, amounts []*big.Int,
	recipient string, isRelayerOff bool, feeToken string) (*TxOutcome, error) {
	if m.WithdrawFunc != nil {
		return m.WithdrawFunc(ctx, tokens, amounts, recipient, isRelayerOff, feeToken)
	}

	return nil, nil
}

func (m *MockWallet) Transfer(ctx context.Context, tokens []config.Token, amounts []*big.Int,
	recipient string, feeToken string) (*TxOutcome, error) {
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, tokens, amounts, recipient, feeToken)
	}

	return nil, nil
}

func (m *MockWallet) Swap(ctx context.Context, tokens []config.Token, amounts []*big.Int,
	routeData string, feeToken string) (*TxOutcome, error) {
	if m.SwapFunc != nil {
		return m.SwapFunc(ctx, tokens, amounts, routeData, feeToken)
	}

	return nil, nil
}

func (m *MockWallet) SwapQuote(ctx context.Context, tokenIn, tokenOut config.Token, amountIn string) (string, error) {
	if m.SwapQuoteFunc != nil {
		return m.SwapQuoteFunc(ctx, tokenIn, tokenOut, amountIn)
	}

	return "", nil
}

type MockPendingTx struct {
	HashFunc func() string
	WaitFunc func(ctx context.Context) (*Receipt, error)
}

func (m *MockPendingTx) Hash() string {
	if m.HashFunc != nil {
		return m.HashFunc()
	}

	return ""
}

func (m *MockPendingTx) Wait(ctx context.Context) (*Receipt, error) {
	if m.WaitFunc != nil {
		return m.WaitFunc(ctx)
	}

	return nil, nil
}
