package config

import (
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTransactionsFile = "transactions.json"

	// DefaultRecipientParts is the arity of the stealth-address tuple
	// (randomization, stealth address, encryption key). Newer pool
	// deployments use a 5-part tuple; the arity is configurable for that
	// reason.
	DefaultRecipientParts = 3
)

type Chain struct {
	Chain      string `toml:"chain" json:"chain"`
	ChainId    int64  `toml:"chain_id" json:"chain_id"`
	RpcUrl     string `toml:"rpc_url" json:"rpc_url"`
	NodeUrl    string `toml:"node_url" json:"node_url"`
	Platform   string `toml:"platform" json:"platform"`
	NativeCoin string `toml:"native_coin" json:"native_coin"`
}

type Token struct {
	Symbol      string `toml:"symbol" json:"symbol"`
	Address     string `toml:"address" json:"address"`
	ChainId     int64  `toml:"chain_id" json:"chain_id"`
	Decimals    int    `toml:"decimals" json:"decimals"`
	CoincapName string `toml:"coincap_name" json:"coincap_name"`
}

type PriceProvider struct {
	Url     string `toml:"url" json:"url"`
	Secrets string `toml:"secrets" json:"secrets"`
}

type Config struct {
	TransactionsFile string   `toml:"transactions_file"`
	LogLevel         string   `toml:"log_level"`
	SuppressedLogs   []string `toml:"suppressed_logs"`

	TransferRecipientParts int `toml:"transfer_recipient_parts"`
	SyncCooldownMs         int `toml:"sync_cooldown_ms"`

	DbHost     string `toml:"db_host"`
	DbPort     int    `toml:"db_port"`
	DbUsername string `toml:"db_username"`
	DbPassword string `toml:"db_password"`
	DbSchema   string `toml:"db_schema"`
	InMemory   bool   `toml:"in_memory"`

	Chains         map[string]Chain         `toml:"chains"`
	Tokens         []Token                  `toml:"tokens"`
	PriceProviders map[string]PriceProvider `toml:"price_providers"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.TransactionsFile == "" {
		c.TransactionsFile = DefaultTransactionsFile
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.TransferRecipientParts == 0 {
		c.TransferRecipientParts = DefaultRecipientParts
	}
	if len(c.Chains) == 0 {
		c.Chains = DefaultChains()
	}
}

// ChainById returns the registered chain for an id. Supported chains come
// from the config file, falling back to the built-in registry.
func (c *Config) ChainById(chainId int64) (Chain, bool) {
	for _, chain := range c.Chains {
		if chain.ChainId == chainId {
			return chain, true
		}
	}

	return Chain{}, false
}

// TokenByAddress looks up a token in the registry by address and chain.
func (c *Config) TokenByAddress(address string, chainId int64) (Token, bool) {
	for _, token := range c.Tokens {
		if token.ChainId == chainId && strings.EqualFold(token.Address, address) {
			return token, true
		}
	}

	return Token{}, false
}

// DefaultChains lists the chains the pool is deployed on, with their
// coingecko asset platform ids.
func DefaultChains() map[string]Chain {
	return map[string]Chain{
		"ethereum": {
			Chain:      "ethereum",
			ChainId:    1,
			Platform:   "ethereum",
			NativeCoin: "ethereum",
		},
		"optimism": {
			Chain:      "optimism",
			ChainId:    10,
			Platform:   "optimistic-ethereum",
			NativeCoin: "ethereum",
		},
		"polygon": {
			Chain:      "polygon",
			ChainId:    137,
			Platform:   "polygon-pos",
			NativeCoin: "matic-network",
		},
		"arbitrum": {
			Chain:      "arbitrum",
			ChainId:    42161,
			Platform:   "arbitrum-one",
			NativeCoin: "ethereum",
		},
		"base": {
			Chain:      "base",
			ChainId:    8453,
			Platform:   "base",
			NativeCoin: "ethereum",
		},
	}
}
