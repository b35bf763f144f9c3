package eth

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/logger"
)

const RpcTimeOut = time.Second * 30

// A wrapper around ethclient so that callers can be tested against a mock.
type EthClient interface {
	BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

type defaultEthClient struct {
	chain  config.Chain
	client *ethclient.Client
}

// Dial connects to the chain's configured RPC endpoint.
func Dial(chain config.Chain) (EthClient, error) {
	client, err := ethclient.Dial(chain.RpcUrl)
	if err != nil {
		logger.Errorf("Cannot dial chain %s at endpoint %s", chain.Chain, chain.RpcUrl)
		return nil, err
	}

	return &defaultEthClient{
		chain:  chain,
		client: client,
	}, nil
}

func (c *defaultEthClient) BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, RpcTimeOut)
	defer cancel()

	return c.client.BalanceAt(ctx, account, block)
}

func (c *defaultEthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, RpcTimeOut)
	defer cancel()

	return c.client.TransactionReceipt(ctx, txHash)
}

func (c *defaultEthClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, RpcTimeOut)
	defer cancel()

	return c.client.SuggestGasPrice(ctx)
}
