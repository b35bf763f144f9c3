package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/types"
)

func getTestDb(t *testing.T) Database {
	cfg := &config.Config{
		InMemory: true,
	}

	dbInstance := NewDb(cfg)
	err := dbInstance.Init()
	require.Nil(t, err)

	return dbInstance
}

func TestDefaultDatabase_BatchResult(t *testing.T) {
	db := getTestDb(t)

	saved := &types.BatchResult{
		JobId:                 "batch-1700000000000",
		Success:               false,
		TotalTransactions:     3,
		CompletedTransactions: 1,
		FailedTransactionId:   "tx-2",
		Error:                 "nullifier already spent",
	}

	err := db.SaveBatchResult(saved)
	require.Nil(t, err)

	loaded, err := db.LoadBatchResult("batch-1700000000000")
	require.Nil(t, err)
	require.Equal(t, saved, loaded)

	_, err = db.LoadBatchResult("batch-does-not-exist")
	require.NotNil(t, err)
}

func TestDefaultDatabase_ExecutionResult(t *testing.T) {
	db := getTestDb(t)

	err := db.SaveExecutionResult("batch-1", "tx-1", "deposit", 1, &types.ExecutionResult{
		Success:     true,
		TxHash:      "0xabc",
		BlockNumber: 42,
		GasUsed:     "21000",
	})
	require.Nil(t, err)

	// Saving the same transaction again must not fail, the journal keeps
	// the latest attempt.
	err = db.SaveExecutionResult("batch-1", "tx-1", "deposit", 1, &types.ExecutionResult{
		Success: false,
		Error:   "reverted",
	})
	require.Nil(t, err)
}
