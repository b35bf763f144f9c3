package types

// ExecutionResult is the normalized outcome of one dispatched transaction.
// GasEstimate is only set for estimate-mode calls where nothing was
// broadcast; such results never carry a TxHash.
type ExecutionResult struct {
	Success     bool   `json:"success"`
	TxHash      string `json:"txHash,omitempty"`
	BlockNumber int64  `json:"blockNumber,omitempty"`
	GasUsed     string `json:"gasUsed,omitempty"`
	GasEstimate string `json:"gasEstimate,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BatchResult is the aggregate report of one batch run, finalized exactly
// once.
type BatchResult struct {
	JobId                 string `json:"jobId"`
	Success               bool   `json:"success"`
	TotalTransactions     int    `json:"totalTransactions"`
	CompletedTransactions int    `json:"completedTransactions"`
	FailedTransactionId   string `json:"failedTransactionId,omitempty"`
	Error                 string `json:"error,omitempty"`
}
