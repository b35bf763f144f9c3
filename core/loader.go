package core

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/hinkal-protocol/batch-node/chains"
	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/types"
)

// requiredFields lists the fields each transaction type must carry beyond the
// common id, type and signingKey.
var requiredFields = map[types.BatchTransactionType][]string{
	types.TxTypeDeposit:  {"tokenAddress"},
	types.TxTypeWithdraw: {"tokenAddress", "recipientAddress"},
	types.TxTypeTransfer: {"tokenAddress", "recipientAddress"},
	types.TxTypeSwap:     {"tokenIn", "tokenOut"},
}

// BatchLoader reads a batch file, validates every transaction and resolves
// USD amounts into atomic units. The first invalid transaction aborts the
// whole load so no partially validated batch ever reaches execution.
type BatchLoader struct {
	cfg       *config.Config
	converter AmountConverter
}

func NewBatchLoader(cfg *config.Config, converter AmountConverter) *BatchLoader {
	return &BatchLoader{
		cfg:       cfg,
		converter: converter,
	}
}

// rawBatchInput tolerates a chain id written as either a JSON number or a
// numeric string.
type rawBatchInput struct {
	ChainId      json.RawMessage           `json:"chainId"`
	Transactions []*types.BatchTransaction `json:"transactions"`
}

func (l *BatchLoader) LoadFile(path string) (*types.BatchTransactionInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read batch file %s: %w", path, err)
	}

	return l.Parse(raw)
}

func (l *BatchLoader) Parse(raw []byte) (*types.BatchTransactionInput, error) {
	var input rawBatchInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("batch file is not valid JSON: %w", err)
	}

	if input.Transactions == nil {
		return nil, fmt.Errorf("batch file has no 'transactions' array")
	}

	defaultChainId, err := parseChainId(input.ChainId)
	if err != nil {
		return nil, err
	}

	for _, tx := range input.Transactions {
		if err := l.validateTransaction(tx, defaultChainId); err != nil {
			return nil, err
		}
	}

	return &types.BatchTransactionInput{
		ChainId:      defaultChainId,
		Transactions: input.Transactions,
	}, nil
}

func (l *BatchLoader) validateTransaction(tx *types.BatchTransaction, defaultChainId int64) error {
	txId := tx.Id
	if txId == "" {
		txId = "unknown"
	}

	if tx.Id == "" {
		return types.NewValidationError(txId, "missing required field 'id'")
	}
	if tx.Type == "" {
		return types.NewValidationError(txId, "missing required field 'type'")
	}
	if tx.SigningKey == "" {
		return types.NewValidationError(txId, "missing required field 'signingKey'")
	}

	fields, ok := requiredFields[tx.Type]
	if !ok {
		return types.NewValidationError(txId, fmt.Sprintf("unknown transaction type '%s'", tx.Type))
	}

	for _, field := range fields {
		if fieldValue(tx, field) == "" {
			return types.NewValidationError(txId, fmt.Sprintf("missing required field '%s'", field))
		}
	}

	if tx.Type == types.TxTypeTransfer {
		if err := chains.ValidateTransferRecipient(tx.RecipientAddress, l.cfg.TransferRecipientParts); err != nil {
			return types.NewValidationError(txId, err.Error())
		}
	}

	chainId := tx.EffectiveChainId(defaultChainId)
	if chainId == 0 {
		return types.NewValidationError(txId,
			"missing 'chainId' (not specified in transaction or batch default)")
	}
	tx.ChainId = chainId

	if err := l.resolveAmount(tx, txId, chainId); err != nil {
		return err
	}

	return nil
}

// resolveAmount normalizes the transaction's amount to atomic units. A USD
// amount wins over nothing, an explicit atomic amount passes through, and
// either way the final value must parse as a non-negative integer.
func (l *BatchLoader) resolveAmount(tx *types.BatchTransaction, txId string, chainId int64) error {
	var token string
	var target, usd *string

	if tx.Type == types.TxTypeSwap {
		token = tx.TokenIn
		target = &tx.AmountIn
		usd = &tx.AmountInUsd
	} else {
		token = tx.TokenAddress
		target = &tx.Amount
		usd = &tx.AmountUsd
	}

	if *usd != "" {
		decimals := l.converter.DecimalsOf(token, chainId)
		units, err := l.converter.UsdToTokenUnits(*usd, token, chainId, decimals)
		if err != nil {
			return types.NewValidationError(txId, err.Error())
		}

		logger.Infof("Resolved %s USD to %s atomic units of %s for transaction %s",
			*usd, units, l.tokenLabel(token, chainId), txId)

		*target = units
		*usd = ""
	} else if strings.TrimSpace(*target) == "" {
		return types.NewValidationError(txId,
			"must provide either 'amount' (atomic units) or 'amountUsd' (USD value)")
	}

	value, ok := new(big.Int).SetString(*target, 10)
	if !ok || value.Sign() < 0 {
		return types.NewValidationError(txId,
			fmt.Sprintf("amount '%s' is not a non-negative integer", *target))
	}

	return nil
}

func (l *BatchLoader) tokenLabel(address string, chainId int64) string {
	if token, ok := l.cfg.TokenByAddress(address, chainId); ok && token.Symbol != "" {
		return token.Symbol
	}

	return address
}

func fieldValue(tx *types.BatchTransaction, field string) string {
	switch field {
	case "tokenAddress":
		return tx.TokenAddress
	case "recipientAddress":
		return tx.RecipientAddress
	case "tokenIn":
		return tx.TokenIn
	case "tokenOut":
		return tx.TokenOut
	default:
		return ""
	}
}

func parseChainId(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("batch file has no default 'chainId'")
	}

	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return 0, fmt.Errorf("batch file has an empty default 'chainId'")
		}

		value, err := strconv.ParseInt(asString, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("batch 'chainId' is not numeric: %s", asString)
		}

		return value, nil
	}

	return 0, fmt.Errorf("batch 'chainId' must be a number or a numeric string")
}
