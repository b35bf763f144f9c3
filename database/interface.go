package database

import (
	"github.com/hinkal-protocol/batch-node/types"
)

// Database journals batch runs so an operator can audit what a job did after
// the process exits.
type Database interface {
	Init() error
	SaveBatchResult(result *types.BatchResult) error
	SaveExecutionResult(jobId, txId, txType string, chainId int64, result *types.ExecutionResult) error
	LoadBatchResult(jobId string) (*types.BatchResult, error)
}
