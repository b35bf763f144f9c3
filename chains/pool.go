package chains

import (
	"context"
	"fmt"

	"github.com/hinkal-protocol/batch-node/chains/eth"
	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/hinkal"
	"github.com/hinkal-protocol/batch-node/types"
	"github.com/hinkal-protocol/batch-node/utils"
)

// WalletFactory initializes a privacy-pool wallet session for one signing
// key on one chain. The chain's RPC client is passed in so that the session
// shares the pool's cached connection.
type WalletFactory func(ctx context.Context, chain config.Chain, client eth.EthClient,
	signingKey string) (hinkal.Wallet, error)

// ConnectionPool memoizes wallet sessions per (signing key, chain) and chain
// RPC clients per chain. Entries live for the process lifetime of one batch
// run; there is no eviction. The pool is owned by a single runner and is not
// safe for concurrent use.
type ConnectionPool struct {
	cfg     *config.Config
	factory WalletFactory

	// DialFunc opens the RPC client for a chain.
	DialFunc func(chain config.Chain) (eth.EthClient, error)

	wallets map[string]hinkal.Wallet
	clients map[int64]eth.EthClient
}

func NewConnectionPool(cfg *config.Config, factory WalletFactory) *ConnectionPool {
	return &ConnectionPool{
		cfg:      cfg,
		factory:  factory,
		DialFunc: eth.Dial,
		wallets:  make(map[string]hinkal.Wallet),
		clients:  make(map[int64]eth.EthClient),
	}
}

// GetClient returns the cached RPC client for a chain, dialing on first use.
func (p *ConnectionPool) GetClient(chainId int64) (eth.EthClient, error) {
	if client, ok := p.clients[chainId]; ok {
		return client, nil
	}

	chain, ok := p.cfg.ChainById(chainId)
	if !ok || chain.RpcUrl == "" {
		return nil, types.NewConnectionError(chainId, "no RPC endpoint registered")
	}

	client, err := p.DialFunc(chain)
	if err != nil {
		return nil, types.NewConnectionError(chainId, "cannot connect to %s: %v", chain.RpcUrl, err)
	}

	p.clients[chainId] = client

	return client, nil
}

// GetWallet returns the cached wallet session for (signingKey, chainId),
// initializing it on first use. The cache key is a keccak digest so the raw
// signing key is never held as a map key or logged.
func (p *ConnectionPool) GetWallet(ctx context.Context, signingKey string, chainId int64) (hinkal.Wallet, error) {
	key := utils.KeccakHash32(fmt.Sprintf("%s-%d", signingKey, chainId))
	if wallet, ok := p.wallets[key]; ok {
		return wallet, nil
	}

	chain, ok := p.cfg.ChainById(chainId)
	if !ok {
		return nil, types.NewConnectionError(chainId, "chain is not registered")
	}

	client, err := p.GetClient(chainId)
	if err != nil {
		return nil, err
	}

	wallet, err := p.factory(ctx, chain, client, signingKey)
	if err != nil {
		return nil, types.NewConnectionError(chainId, "cannot initialize wallet: %v", err)
	}

	p.wallets[key] = wallet

	return wallet, nil
}
