package chains

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/hinkal"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/types"
	"github.com/hinkal-protocol/batch-node/utils"
)

// insufficientGasMarkers are backend/node error fragments that all mean the
// wallet cannot pay for gas.
var insufficientGasMarkers = []string{
	"insufficient funds",
	"INSUFFICIENT_FUNDS",
	"gas required exceeds allowance",
	"UNPREDICTABLE_GAS_LIMIT",
}

const insufficientGasMessage = "Insufficient ETH for gas fees. Please fund the wallet."

// Dispatcher translates one validated batch transaction into exactly one
// wallet backend call and normalizes the outcome. Execute never fails past
// its boundary; every error becomes a failed ExecutionResult.
type Dispatcher interface {
	Execute(ctx context.Context, wallet hinkal.Wallet, tx *types.BatchTransaction) *types.ExecutionResult
}

type defaultDispatcher struct {
	cfg *config.Config
}

func NewDispatcher(cfg *config.Config) Dispatcher {
	return &defaultDispatcher{
		cfg: cfg,
	}
}

func (d *defaultDispatcher) Execute(ctx context.Context, wallet hinkal.Wallet,
	tx *types.BatchTransaction) *types.ExecutionResult {

	// Every operation below touches the wallet's shared note/merkle state,
	// so refresh the backend's view of on-chain events first. The call
	// itself stays authoritative: a failed sync only warns.
	d.syncWallet(ctx, wallet, tx.Id)

	switch tx.Type {
	case types.TxTypeDeposit:
		return d.executeDeposit(ctx, wallet, tx)
	case types.TxTypeWithdraw:
		return d.executeWithdraw(ctx, wallet, tx)
	case types.TxTypeTransfer:
		return d.executeTransfer(ctx, wallet, tx)
	case types.TxTypeSwap:
		return d.executeSwap(ctx, wallet, tx)
	default:
		// Unreachable after validation, but the dispatcher must be safely
		// callable on its own.
		return failedResult(fmt.Sprintf("unknown transaction type '%s'", tx.Type))
	}
}

func (d *defaultDispatcher) syncWallet(ctx context.Context, wallet hinkal.Wallet, txId string) {
	if d.cfg.SyncCooldownMs > 0 {
		// Give upstream indexers a chance to catch up before reading events.
		time.Sleep(time.Duration(d.cfg.SyncCooldownMs) * time.Millisecond)
	}

	if err := wallet.SyncState(ctx); err != nil {
		logger.Warnf("State sync failed for transaction %s, err = %v. Continuing.", txId, err)
	}
}

func (d *defaultDispatcher) executeDeposit(ctx context.Context, wallet hinkal.Wallet,
	tx *types.BatchTransaction) *types.ExecutionResult {

	token := d.lookupToken(tx.TokenAddress, wallet.CurrentChainId())
	amount, err := parseAmount(tx.Amount)
	if err != nil {
		return failedResult(err.Error())
	}

	outcome, err := wallet.Deposit(ctx, []config.Token{token}, []*big.Int{amount})
	if err != nil {
		return failedResult(formatError(err))
	}

	return d.normalize(ctx, outcome)
}

func (d *defaultDispatcher) executeWithdraw(ctx context.Context, wallet hinkal.Wallet,
	tx *types.BatchTransaction) *types.ExecutionResult {

	token := d.lookupToken(tx.TokenAddress, wallet.CurrentChainId())
	amount, err := parseAmount(tx.Amount)
	if err != nil {
		return failedResult(err.Error())
	}

	outcome, err := wallet.Withdraw(ctx, []config.Token{token}, []*big.Int{new(big.Int).Neg(amount)},
		tx.RecipientAddress, tx.IsRelayerOff, tx.FeeToken)
	if err != nil {
		return failedResult(formatError(err))
	}

	return d.normalize(ctx, outcome)
}

func (d *defaultDispatcher) executeTransfer(ctx context.Context, wallet hinkal.Wallet,
	tx *types.BatchTransaction) *types.ExecutionResult {

	recipient := strings.TrimSpace(tx.RecipientAddress)
	if err := ValidateTransferRecipient(recipient, d.cfg.TransferRecipientParts); err != nil {
		return failedResult(err.Error())
	}

	token := d.lookupToken(tx.TokenAddress, wallet.CurrentChainId())
	amount, err := parseAmount(tx.Amount)
	if err != nil {
		return failedResult(err.Error())
	}

	outcome, err := wallet.Transfer(ctx, []config.Token{token}, []*big.Int{new(big.Int).Neg(amount)},
		recipient, tx.FeeToken)
	if err != nil {
		return failedResult(formatError(err))
	}

	return d.normalize(ctx, outcome)
}

func (d *defaultDispatcher) executeSwap(ctx context.Context, wallet hinkal.Wallet,
	tx *types.BatchTransaction) *types.ExecutionResult {

	chainId := wallet.CurrentChainId()
	tokenIn := d.lookupToken(tx.TokenIn, chainId)
	tokenOut := d.lookupToken(tx.TokenOut, chainId)

	amountIn, err := parseAmount(tx.AmountIn)
	if err != nil {
		return failedResult(err.Error())
	}

	routeData := tx.SwapRouteData
	if routeData == "" {
		humanAmount := utils.FormatUnits(amountIn, tokenIn.Decimals)
		routeData, err = wallet.SwapQuote(ctx, tokenIn, tokenOut, humanAmount)
		if err != nil {
			return failedResult(formatError(err))
		}
	}

	outcome, err := wallet.Swap(ctx, []config.Token{tokenIn, tokenOut},
		[]*big.Int{amountIn, big.NewInt(0)}, routeData, tx.FeeToken)
	if err != nil {
		return failedResult(formatError(err))
	}

	return d.normalize(ctx, outcome)
}

// normalize maps the backend's tagged outcome onto the single result
// contract, probing shapes in fixed precedence: gas estimate, receipt,
// pending transaction.
func (d *defaultDispatcher) normalize(ctx context.Context, outcome *hinkal.TxOutcome) *types.ExecutionResult {
	switch {
	case outcome == nil:
		return failedResult("empty outcome from wallet backend")

	case outcome.GasEstimate != nil:
		// Estimate only; nothing was broadcast, so no transaction hash.
		return &types.ExecutionResult{
			Success:     true,
			GasEstimate: outcome.GasEstimate.String(),
		}

	case outcome.Receipt != nil:
		return receiptResult(outcome.Receipt)

	case outcome.Pending != nil:
		receipt, err := outcome.Pending.Wait(ctx)
		if err != nil {
			return failedResult(formatError(err))
		}

		return receiptResult(receipt)

	default:
		return failedResult("wallet backend returned no recognizable outcome")
	}
}

// ValidateTransferRecipient checks the stealth-address tuple grammar: a
// trimmed, comma-separated list with exactly the configured number of parts.
func ValidateTransferRecipient(recipient string, parts int) error {
	trimmed := strings.TrimSpace(recipient)
	if !strings.Contains(trimmed, ",") || len(strings.Split(trimmed, ",")) != parts {
		return fmt.Errorf("invalid recipient format, must be a %d-part stealth address tuple", parts)
	}

	return nil
}

func (d *defaultDispatcher) lookupToken(address string, chainId int64) config.Token {
	if token, ok := d.cfg.TokenByAddress(address, chainId); ok {
		return token
	}

	return config.Token{
		Symbol:   "???",
		Address:  address,
		ChainId:  chainId,
		Decimals: 18,
	}
}

func parseAmount(amount string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, fmt.Errorf("amount '%s' is not a valid integer", amount)
	}

	return value, nil
}

func receiptResult(receipt *hinkal.Receipt) *types.ExecutionResult {
	return &types.ExecutionResult{
		Success:     true,
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
	}
}

func failedResult(msg string) *types.ExecutionResult {
	return &types.ExecutionResult{
		Success: false,
		Error:   msg,
	}
}

func formatError(err error) string {
	msg := err.Error()
	for _, marker := range insufficientGasMarkers {
		if strings.Contains(msg, marker) {
			return insufficientGasMessage
		}
	}

	return msg
}
