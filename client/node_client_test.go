package client

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/hinkal-protocol/batch-node/chains/eth"
)

func TestToOutcome(t *testing.T) {
	t.Parallel()

	wallet := &NodeWallet{}

	t.Run("gas estimate", func(t *testing.T) {
		t.Parallel()

		outcome, err := wallet.toOutcome(&txResponse{GasEstimate: "150000"})
		require.Nil(t, err)
		require.NotNil(t, outcome.GasEstimate)
		require.Equal(t, "150000", outcome.GasEstimate.String())
		require.Nil(t, outcome.Receipt)
		require.Nil(t, outcome.Pending)
	})

	t.Run("receipt", func(t *testing.T) {
		t.Parallel()

		outcome, err := wallet.toOutcome(&txResponse{
			TxHash:      "0xabc",
			BlockNumber: 42,
			GasUsed:     "21000",
		})
		require.Nil(t, err)
		require.NotNil(t, outcome.Receipt)
		require.Equal(t, "0xabc", outcome.Receipt.TxHash)
		require.Equal(t, int64(42), outcome.Receipt.BlockNumber)
	})

	t.Run("pending", func(t *testing.T) {
		t.Parallel()

		outcome, err := wallet.toOutcome(&txResponse{TxHash: "0xabc", Pending: true})
		require.Nil(t, err)
		require.NotNil(t, outcome.Pending)
	})

	t.Run("malformed responses", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.toOutcome(&txResponse{})
		require.NotNil(t, err)

		_, err = wallet.toOutcome(&txResponse{Pending: true})
		require.NotNil(t, err)

		_, err = wallet.toOutcome(&txResponse{GasEstimate: "not-a-number"})
		require.NotNil(t, err)
	})
}

func TestPendingTxWait(t *testing.T) {
	t.Parallel()

	t.Run("receipt found", func(t *testing.T) {
		t.Parallel()

		hash := common.HexToHash("0x01")
		mock := &eth.MockEthClient{
			TransactionReceiptFunc: func(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
				require.Equal(t, hash, txHash)

				return &ethtypes.Receipt{
					BlockNumber: big.NewInt(42),
					GasUsed:     21000,
				}, nil
			},
		}

		pending := &pendingTx{hash: hash, client: mock}
		receipt, err := pending.Wait(context.Background())

		require.Nil(t, err)
		require.Equal(t, hash.Hex(), receipt.TxHash)
		require.Equal(t, int64(42), receipt.BlockNumber)
		require.Equal(t, "21000", receipt.GasUsed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		mock := &eth.MockEthClient{
			TransactionReceiptFunc: func(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
				return nil, fmt.Errorf("not found")
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pending := &pendingTx{hash: common.HexToHash("0x01"), client: mock}
		_, err := pending.Wait(ctx)

		require.NotNil(t, err)
	})
}
