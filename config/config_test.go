package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.toml")
	content := `
transactions_file = "my-batch.json"
log_level = "debug"
suppressed_logs = ["eth_getLogs"]
sync_cooldown_ms = 250

[chains]
[chains.ethereum]
chain = "ethereum"
chain_id = 1
rpc_url = "http://localhost:8545"
node_url = "http://localhost:9000"
platform = "ethereum"
native_coin = "ethereum"

[[tokens]]
symbol = "USDC"
address = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
chain_id = 1
decimals = 6

[price_providers]
[price_providers.coingecko]
url = "https://api.coingecko.com/api/v3"
secrets = "key1,key2"
`
	err := os.WriteFile(path, []byte(content), 0600)
	require.Nil(t, err)

	cfg, err := Load(path)
	require.Nil(t, err)

	require.Equal(t, "my-batch.json", cfg.TransactionsFile)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"eth_getLogs"}, cfg.SuppressedLogs)
	require.Equal(t, 250, cfg.SyncCooldownMs)
	require.Equal(t, DefaultRecipientParts, cfg.TransferRecipientParts)

	chain, ok := cfg.ChainById(1)
	require.True(t, ok)
	require.Equal(t, "http://localhost:9000", chain.NodeUrl)

	token, ok := cfg.TokenByAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", 1)
	require.True(t, ok)
	require.Equal(t, "USDC", token.Symbol)
	require.Equal(t, 6, token.Decimals)

	provider, ok := cfg.PriceProviders["coingecko"]
	require.True(t, ok)
	require.Equal(t, "key1,key2", provider.Secrets)
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.ApplyDefaults()

	require.Equal(t, DefaultTransactionsFile, cfg.TransactionsFile)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, DefaultRecipientParts, cfg.TransferRecipientParts)

	for _, chainId := range []int64{1, 10, 137, 42161, 8453} {
		chain, ok := cfg.ChainById(chainId)
		require.True(t, ok)
		require.NotEmpty(t, chain.Platform)
	}

	_, ok := cfg.ChainById(999)
	require.False(t, ok)
}

func TestWriteSample(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batch.toml")
	err := WriteSample(path)
	require.Nil(t, err)

	// The generated file must load back cleanly.
	cfg, err := Load(path)
	require.Nil(t, err)
	require.Equal(t, DefaultTransactionsFile, cfg.TransactionsFile)

	_, ok := cfg.ChainById(1)
	require.True(t, ok)
}
