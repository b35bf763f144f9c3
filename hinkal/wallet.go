// Package hinkal defines the capability contract of the privacy-pool wallet
// backend. The batch runner only depends on this interface; the concrete
// implementation (proof generation, note and merkle-tree management) lives
// behind it.
package hinkal

import (
	"context"
	"math/big"

	"github.com/hinkal-protocol/batch-node/config"
)

// Wallet is one initialized pool session for one signing key on one chain.
// A wallet owns shared note/merkle state; its operations must never be
// invoked concurrently.
type Wallet interface {
	CurrentChainId() int64

	// SyncState refreshes the wallet's local view of on-chain pool events.
	// Best effort: callers downgrade failures to warnings.
	SyncState(ctx context.Context) error

	Deposit(ctx context.Context, tokens []config.Token, amounts []*big.Int) (*TxOutcome, error)

	// Withdraw and Transfer take outflow amounts, i.e. the additive inverse
	// of the declared magnitude.
	Withdraw(ctx context.Context, tokens []config.Token, amounts []*big.Int,
		recipient string, isRelayerOff bool, feeToken string) (*TxOutcome, error)

	Transfer(ctx context.Context, tokens []config.Token, amounts []*big.Int,
		recipient string, feeToken string) (*TxOutcome, error)

	Swap(ctx context.Context, tokens []config.Token, amounts []*big.Int,
		routeData string, feeToken string) (*TxOutcome, error)

	// SwapQuote builds route data for a swap whose batch entry did not carry
	// any. amountIn is a human-readable decimal amount of tokenIn.
	SwapQuote(ctx context.Context, tokenIn, tokenOut config.Token, amountIn string) (string, error)
}

// Receipt is a confirmed transaction receipt.
type Receipt struct {
	TxHash      string
	BlockNumber int64
	GasUsed     string
}

// PendingTx is a broadcast transaction that has not been mined yet.
type PendingTx interface {
	Hash() string
	Wait(ctx context.Context) (*Receipt, error)
}

// TxOutcome is the tagged result of a wallet operation. Exactly one field is
// set: a gas estimate (nothing broadcast), a confirmed receipt, or a pending
// transaction to wait on.
type TxOutcome struct {
	GasEstimate *big.Int
	Receipt     *Receipt
	Pending     PendingTx
}
