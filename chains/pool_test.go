package chains

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hinkal-protocol/batch-node/chains/eth"
	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/hinkal"
	"github.com/hinkal-protocol/batch-node/types"
)

func getTestPoolConfig() *config.Config {
	return &config.Config{
		Chains: map[string]config.Chain{
			"ethereum": {
				Chain:   "ethereum",
				ChainId: 1,
				RpcUrl:  "http://localhost:8545",
			},
			"polygon": {
				Chain:   "polygon",
				ChainId: 137,
			},
		},
	}
}

func TestConnectionPool(t *testing.T) {
	t.Parallel()

	t.Run("wallet is cached per signing key and chain", func(t *testing.T) {
		t.Parallel()

		factoryCalls := 0
		factory := func(ctx context.Context, chain config.Chain, client eth.EthClient,
			signingKey string) (hinkal.Wallet, error) {

			factoryCalls++
			return &hinkal.MockWallet{}, nil
		}

		pool := NewConnectionPool(getTestPoolConfig(), factory)
		pool.clients[1] = &eth.MockEthClient{}

		wallet1, err := pool.GetWallet(context.Background(), "0xkey", 1)
		require.Nil(t, err)

		wallet2, err := pool.GetWallet(context.Background(), "0xkey", 1)
		require.Nil(t, err)

		require.Same(t, wallet1, wallet2)
		require.Equal(t, 1, factoryCalls)
	})

	t.Run("different keys get different wallets", func(t *testing.T) {
		t.Parallel()

		factory := func(ctx context.Context, chain config.Chain, client eth.EthClient,
			signingKey string) (hinkal.Wallet, error) {

			return &hinkal.MockWallet{}, nil
		}

		pool := NewConnectionPool(getTestPoolConfig(), factory)
		pool.clients[1] = &eth.MockEthClient{}

		wallet1, err := pool.GetWallet(context.Background(), "0xkey1", 1)
		require.Nil(t, err)

		wallet2, err := pool.GetWallet(context.Background(), "0xkey2", 1)
		require.Nil(t, err)

		require.NotSame(t, wallet1, wallet2)
	})

	t.Run("client is cached per chain", func(t *testing.T) {
		t.Parallel()

		pool := NewConnectionPool(getTestPoolConfig(), nil)
		mock := &eth.MockEthClient{}
		pool.clients[1] = mock

		client, err := pool.GetClient(1)
		require.Nil(t, err)
		require.Same(t, eth.EthClient(mock), client)
	})

	t.Run("chain is dialed once", func(t *testing.T) {
		t.Parallel()

		dialCalls := 0
		pool := NewConnectionPool(getTestPoolConfig(), nil)
		pool.DialFunc = func(chain config.Chain) (eth.EthClient, error) {
			dialCalls++
			require.Equal(t, "ethereum", chain.Chain)

			return &eth.MockEthClient{}, nil
		}

		client1, err := pool.GetClient(1)
		require.Nil(t, err)

		client2, err := pool.GetClient(1)
		require.Nil(t, err)

		require.Same(t, client1, client2)
		require.Equal(t, 1, dialCalls)
	})

	t.Run("chain without rpc endpoint fails", func(t *testing.T) {
		t.Parallel()

		pool := NewConnectionPool(getTestPoolConfig(), nil)

		_, err := pool.GetClient(137)
		require.NotNil(t, err)

		var connErr *types.ConnectionError
		require.ErrorAs(t, err, &connErr)
		require.Equal(t, int64(137), connErr.ChainId)
	})

	t.Run("unknown chain fails", func(t *testing.T) {
		t.Parallel()

		pool := NewConnectionPool(getTestPoolConfig(), nil)

		_, err := pool.GetClient(31337)
		require.NotNil(t, err)
	})

	t.Run("factory failure is not cached", func(t *testing.T) {
		t.Parallel()

		shouldFail := true
		factory := func(ctx context.Context, chain config.Chain, client eth.EthClient,
			signingKey string) (hinkal.Wallet, error) {

			if shouldFail {
				return nil, types.NewConnectionError(chain.ChainId, "node unreachable")
			}

			return &hinkal.MockWallet{}, nil
		}

		pool := NewConnectionPool(getTestPoolConfig(), factory)
		pool.clients[1] = &eth.MockEthClient{}

		_, err := pool.GetWallet(context.Background(), "0xkey", 1)
		require.NotNil(t, err)

		shouldFail = false
		wallet, err := pool.GetWallet(context.Background(), "0xkey", 1)
		require.Nil(t, err)
		require.NotNil(t, wallet)
	})
}
