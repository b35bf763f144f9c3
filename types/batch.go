package types

type BatchTransactionType string

const (
	TxTypeDeposit  BatchTransactionType = "deposit"
	TxTypeWithdraw BatchTransactionType = "withdraw"
	TxTypeTransfer BatchTransactionType = "transfer"
	TxTypeSwap     BatchTransactionType = "swap"
)

// BatchTransaction is one entry of the declared batch. It is a tagged union
// discriminated by Type; only the fields of the matching variant are set.
type BatchTransaction struct {
	Id         string               `json:"id"`
	Type       BatchTransactionType `json:"type"`
	SigningKey string               `json:"signingKey"`
	ChainId    int64                `json:"chainId,omitempty"`

	// Deposit, withdraw and transfer.
	TokenAddress     string `json:"tokenAddress,omitempty"`
	Amount           string `json:"amount,omitempty"`
	AmountUsd        string `json:"amountUsd,omitempty"`
	RecipientAddress string `json:"recipientAddress,omitempty"`
	IsRelayerOff     bool   `json:"isRelayerOff,omitempty"`

	// Swap.
	TokenIn       string `json:"tokenIn,omitempty"`
	TokenOut      string `json:"tokenOut,omitempty"`
	AmountIn      string `json:"amountIn,omitempty"`
	AmountInUsd   string `json:"amountInUsd,omitempty"`
	SwapRouteData string `json:"swapRouteData,omitempty"`

	FeeToken string `json:"feeToken,omitempty"`
}

// EffectiveChainId returns the chain this transaction executes on: its own
// override when set, the batch default otherwise. Zero means unresolvable.
func (t *BatchTransaction) EffectiveChainId(defaultChainId int64) int64 {
	if t.ChainId != 0 {
		return t.ChainId
	}

	return defaultChainId
}

// BatchTransactionInput is one validated batch run. Transactions execute in
// declared order.
type BatchTransactionInput struct {
	ChainId      int64               `json:"chainId"`
	Transactions []*BatchTransaction `json:"transactions"`
}
