package database

import "github.com/hinkal-protocol/batch-node/types"

type MockDb struct {
	InitFunc                func() error
	SaveBatchResultFunc     func(result *types.BatchResult) error
	SaveExecutionResultFunc func(jobId, txId, txType string, chainId int64, result *types.ExecutionResult) error
	LoadBatchResultFunc     func(jobId string) (*types.BatchResult, error)
}

func (mock *MockDb) Init() error {
	if mock.InitFunc != nil {
		return mock.InitFunc()
	}

	return nil
}

func (mock *MockDb) SaveBatchResult(result *types.BatchResult) error {
	if mock.SaveBatchResultFunc != nil {
		return mock.SaveBatchResultFunc(result)
	}

	return nil
}

func (mock *MockDb) SaveExecutionResult(jobId, txId, txType string, chainId int64,
	result *types.ExecutionResult) error {

	if mock.SaveExecutionResultFunc != nil {
		return mock.SaveExecutionResultFunc(jobId, txId, txType, chainId, result)
	}

	return nil
}

func (mock *MockDb) LoadBatchResult(jobId string) (*types.BatchResult, error) {
	if mock.LoadBatchResultFunc != nil {
		return mock.LoadBatchResultFunc(jobId)
	}

	return nil, nil
}
