package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/hinkal-protocol/batch-node/chains"
	"github.com/hinkal-protocol/batch-node/chains/eth"
	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/core/oracle/uniswap"
	"github.com/hinkal-protocol/batch-node/hinkal"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/types"
)

const (
	// MaxReceiptRetry is the number of times we try to get a receipt for a
	// broadcast transaction before giving up.
	MaxReceiptRetry = 5
	retryTime       = time.Second * 5

	rpcTimeOut = time.Second * 30
)

// txResponse is the wire shape every mutating sidecar method returns.
// Exactly one of the outcome groups is populated.
type txResponse struct {
	GasEstimate string `json:"gasEstimate,omitempty"`
	TxHash      string `json:"txHash,omitempty"`
	BlockNumber int64  `json:"blockNumber,omitempty"`
	GasUsed     string `json:"gasUsed,omitempty"`
	Pending     bool   `json:"pending,omitempty"`
}

// NodeWallet talks to a privacy pool sidecar over JSON-RPC. The sidecar owns
// the proof generation and key material handling; this client only shuttles
// token addresses and atomic amounts.
type NodeWallet struct {
	chain     config.Chain
	client    *rpc.Client
	ethClient eth.EthClient
	quotes    uniswap.QuoteManager
	session   string
}

// NewNodeWallet registers a session for the signing key on the sidecar at
// chain.NodeUrl and returns a wallet bound to that session.
func NewNodeWallet(ctx context.Context, chain config.Chain, ethClient eth.EthClient,
	quotes uniswap.QuoteManager, signingKey string) (*NodeWallet, error) {

	if chain.NodeUrl == "" {
		return nil, types.NewConnectionError(chain.ChainId, "no node endpoint registered")
	}

	client, err := rpc.DialContext(ctx, chain.NodeUrl)
	if err != nil {
		return nil, types.NewConnectionError(chain.ChainId, "cannot dial node at %s: %v", chain.NodeUrl, err)
	}

	var session string
	callCtx, cancel := context.WithTimeout(ctx, rpcTimeOut)
	defer cancel()

	err = client.CallContext(callCtx, &session, "hinkal_register", signingKey, chain.ChainId)
	if err != nil {
		client.Close()
		return nil, types.NewConnectionError(chain.ChainId, "session registration failed: %v", err)
	}

	return &NodeWallet{
		chain:     chain,
		client:    client,
		ethClient: ethClient,
		quotes:    quotes,
		session:   session,
	}, nil
}

func (w *NodeWallet) CurrentChainId() int64 {
	return w.chain.ChainId
}

func (w *NodeWallet) SyncState(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, rpcTimeOut)
	defer cancel()

	return w.client.CallContext(callCtx, nil, "hinkal_syncState", w.session)
}

func (w *NodeWallet) Deposit(ctx context.Context, tokens []config.Token,
	amounts []*big.Int) (*hinkal.TxOutcome, error) {

	return w.call(ctx, "hinkal_deposit", w.session, tokenAddresses(tokens), amountStrings(amounts))
}

func (w *NodeWallet) Withdraw(ctx context.Context, tokens []config.Token, amounts []*big.Int,
	recipient string, isRelayerOff bool, feeToken string) (*hinkal.TxOutcome, error) {

	return w.call(ctx, "hinkal_withdraw", w.session, tokenAddresses(tokens), amountStrings(amounts),
		recipient, isRelayerOff, feeToken)
}

func (w *NodeWallet) Transfer(ctx context.Context, tokens []config.Token, amounts []*big.Int,
	recipient string, feeToken string) (*hinkal.TxOutcome, error) {

	return w.call(ctx, "hinkal_transfer", w.session, tokenAddresses(tokens), amountStrings(amounts),
		recipient, feeToken)
}

func (w *NodeWallet) Swap(ctx context.Context, tokens []config.Token, amounts []*big.Int,
	routeData string, feeToken string) (*hinkal.TxOutcome, error) {

	return w.call(ctx, "hinkal_swap", w.session, tokenAddresses(tokens), amountStrings(amounts),
		routeData, feeToken)
}

func (w *NodeWallet) SwapQuote(ctx context.Context, tokenIn, tokenOut config.Token,
	amountIn string) (string, error) {

	route, err := w.quotes.QuoteExactInput(tokenIn, tokenOut, amountIn)
	if err != nil {
		return "", err
	}

	return route.Encode(), nil
}

func tokenAddresses(tokens []config.Token) []string {
	addresses := make([]string, len(tokens))
	for i, token := range tokens {
		addresses[i] = token.Address
	}

	return addresses
}

func amountStrings(amounts []*big.Int) []string {
	strs := make([]string, len(amounts))
	for i, amount := range amounts {
		strs[i] = amount.String()
	}

	return strs
}

func (w *NodeWallet) call(ctx context.Context, method string, args ...interface{}) (*hinkal.TxOutcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, rpcTimeOut)
	defer cancel()

	var resp txResponse
	if err := w.client.CallContext(callCtx, &resp, method, args...); err != nil {
		return nil, err
	}

	return w.toOutcome(&resp)
}

func (w *NodeWallet) toOutcome(resp *txResponse) (*hinkal.TxOutcome, error) {
	switch {
	case resp.GasEstimate != "":
		estimate, ok := new(big.Int).SetString(resp.GasEstimate, 10)
		if !ok {
			return nil, fmt.Errorf("node returned malformed gas estimate '%s'", resp.GasEstimate)
		}

		return &hinkal.TxOutcome{GasEstimate: estimate}, nil

	case resp.Pending:
		if resp.TxHash == "" {
			return nil, fmt.Errorf("node reported a pending transaction without a hash")
		}

		return &hinkal.TxOutcome{
			Pending: &pendingTx{
				hash:   common.HexToHash(resp.TxHash),
				client: w.ethClient,
			},
		}, nil

	case resp.TxHash != "":
		return &hinkal.TxOutcome{
			Receipt: &hinkal.Receipt{
				TxHash:      resp.TxHash,
				BlockNumber: resp.BlockNumber,
				GasUsed:     resp.GasUsed,
			},
		}, nil
	}

	return nil, fmt.Errorf("node returned an empty transaction response")
}

// pendingTx polls the chain for a receipt of a transaction the sidecar
// broadcast but did not wait for.
type pendingTx struct {
	hash   common.Hash
	client eth.EthClient
}

func (p *pendingTx) Hash() string {
	return p.hash.Hex()
}

func (p *pendingTx) Wait(ctx context.Context) (*hinkal.Receipt, error) {
	for i := 0; i < MaxReceiptRetry; i++ {
		receipt, err := p.client.TransactionReceipt(ctx, p.hash)
		if err == nil && receipt != nil {
			return &hinkal.Receipt{
				TxHash:      p.hash.Hex(),
				BlockNumber: receipt.BlockNumber.Int64(),
				GasUsed:     fmt.Sprintf("%d", receipt.GasUsed),
			}, nil
		}

		if err != nil {
			logger.Debugf("Receipt for tx %s not available yet, err = %v", p.hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryTime):
		}
	}

	return nil, fmt.Errorf("cannot find receipt for tx %s after %d retries", p.hash.Hex(), MaxReceiptRetry)
}

// NewWalletFactory builds sidecar-backed wallets for the connection pool.
// Each wallet carries a Uniswap quoter over the same chain's RPC endpoint so
// swap routes can be filled in when the batch does not provide them.
func NewWalletFactory(cfg *config.Config) chains.WalletFactory {
	return func(ctx context.Context, chain config.Chain, client eth.EthClient,
		signingKey string) (hinkal.Wallet, error) {

		return NewNodeWallet(ctx, chain, client, uniswap.NewQuoteManager([]string{chain.RpcUrl}), signingKey)
	}
}
