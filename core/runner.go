package core

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/hinkal-protocol/batch-node/chains"
	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/database"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/types"
	"github.com/hinkal-protocol/batch-node/utils"
)

// lowBalanceWei is 0.01 ether. Below this the wallet likely cannot cover gas
// for a pool transaction, so we warn before dispatching.
var lowBalanceWei = big.NewInt(10_000_000_000_000_000)

// BatchRunner executes a validated batch sequentially with fail-fast
// semantics: the first failed transaction stops the run and the remainder is
// never dispatched.
type BatchRunner struct {
	cfg        *config.Config
	pool       *chains.ConnectionPool
	dispatcher chains.Dispatcher
	db         database.Database
}

func NewBatchRunner(cfg *config.Config, pool *chains.ConnectionPool,
	dispatcher chains.Dispatcher, db database.Database) *BatchRunner {

	return &BatchRunner{
		cfg:        cfg,
		pool:       pool,
		dispatcher: dispatcher,
		db:         db,
	}
}

func (r *BatchRunner) Run(ctx context.Context, input *types.BatchTransactionInput) *types.BatchResult {
	jobId := fmt.Sprintf("batch-%d", time.Now().UnixMilli())
	result := &types.BatchResult{
		JobId:             jobId,
		TotalTransactions: len(input.Transactions),
	}

	if len(input.Transactions) == 0 {
		result.Error = "no transactions found in batch"
		return r.finish(result)
	}

	logger.Infof("Starting batch job %s with %d transaction(s)", jobId, len(input.Transactions))
	start := time.Now()

	for i, tx := range input.Transactions {
		logger.Infof("Processing transaction %d/%d [%s | %s]", i+1, len(input.Transactions), tx.Type, tx.Id)

		execResult := r.processOne(ctx, tx)
		r.journalExecution(jobId, tx, execResult)

		if !execResult.Success {
			logger.Errorf("Transaction %s failed: %s", tx.Id, execResult.Error)
			result.FailedTransactionId = tx.Id
			result.Error = execResult.Error
			return r.finish(result)
		}

		result.CompletedTransactions++
		if execResult.TxHash != "" {
			logger.Infof("Transaction %s confirmed, hash = %s", tx.Id, execResult.TxHash)
		}
	}

	result.Success = true
	logger.Infof("Batch job %s completed %d transaction(s) in %s", jobId,
		result.CompletedTransactions, time.Since(start).Round(time.Millisecond))

	return r.finish(result)
}

func (r *BatchRunner) processOne(ctx context.Context, tx *types.BatchTransaction) *types.ExecutionResult {
	chainId := tx.ChainId
	if chainId == 0 {
		return &types.ExecutionResult{
			Success: false,
			Error:   "transaction has no resolved chain id",
		}
	}

	client, err := r.pool.GetClient(chainId)
	if err != nil {
		return &types.ExecutionResult{Success: false, Error: err.Error()}
	}

	address, err := utils.AddressFromSigningKey(tx.SigningKey)
	if err != nil {
		return &types.ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("invalid signing key for transaction %s: %v", tx.Id, err),
		}
	}

	// Balance is advisory. An RPC hiccup here must not fail a transaction
	// the chain would have accepted.
	balance, err := client.BalanceAt(ctx, address, nil)
	if err != nil {
		logger.Warnf("Cannot query balance for wallet %s on chain %d, err = %v",
			address.Hex(), chainId, err)
	} else {
		logger.Infof("Wallet %s balance on chain %d: %s ETH", address.Hex(), chainId,
			utils.FormatUnits(balance, 18))

		if balance.Cmp(lowBalanceWei) < 0 {
			logger.Warnf("Wallet %s balance is below 0.01 ETH, transactions may fail on gas",
				address.Hex())

			if gasPrice, err := client.SuggestGasPrice(ctx); err == nil {
				logger.Warnf("Current gas price on chain %d is %s gwei", chainId,
					utils.FormatUnits(gasPrice, 9))
			}
		}
	}

	wallet, err := r.pool.GetWallet(ctx, tx.SigningKey, chainId)
	if err != nil {
		return &types.ExecutionResult{Success: false, Error: err.Error()}
	}

	return r.dispatcher.Execute(ctx, wallet, tx)
}

func (r *BatchRunner) journalExecution(jobId string, tx *types.BatchTransaction,
	execResult *types.ExecutionResult) {

	err := r.db.SaveExecutionResult(jobId, tx.Id, string(tx.Type), tx.ChainId, execResult)
	if err != nil {
		logger.Warnf("Cannot journal result for transaction %s, err = %v", tx.Id, err)
	}
}

func (r *BatchRunner) finish(result *types.BatchResult) *types.BatchResult {
	if err := r.db.SaveBatchResult(result); err != nil {
		logger.Warnf("Cannot journal batch result for job %s, err = %v", result.JobId, err)
	}

	return result
}
