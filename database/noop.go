package database

import "github.com/hinkal-protocol/batch-node/types"

// noopDb is used when no journal database is configured. Every write
// succeeds without touching storage.
type noopDb struct {
}

func NewNoopDb() Database {
	return &noopDb{}
}

func (d *noopDb) Init() error {
	return nil
}

func (d *noopDb) SaveBatchResult(result *types.BatchResult) error {
	return nil
}

func (d *noopDb) SaveExecutionResult(jobId, txId, txType string, chainId int64,
	result *types.ExecutionResult) error {
	return nil
}

func (d *noopDb) LoadBatchResult(jobId string) (*types.BatchResult, error) {
	return nil, nil
}
