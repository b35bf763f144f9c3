package oracle

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/network"
	"github.com/hinkal-protocol/batch-node/utils"
)

func testProviderConfigs() map[string]config.PriceProvider {
	return map[string]config.PriceProvider{
		"coingecko": {Url: "https://api.coingecko.com/api/v3"},
	}
}

func testChain() config.Chain {
	return config.Chain{
		Chain:      "ethereum",
		ChainId:    1,
		Platform:   "ethereum",
		NativeCoin: "ethereum",
	}
}

func TestTokenPriceManager(t *testing.T) {
	t.Parallel()

	t.Run("native price success", func(t *testing.T) {
		t.Parallel()

		mockHttp := &network.MockHttp{
			GetFunc: func(req *http.Request) ([]byte, error) {
				require.Contains(t, req.URL.String(), "simple/price")
				require.Contains(t, req.URL.String(), "ids=ethereum")

				return []byte(`{"ethereum":{"usd":2000}}`), nil
			},
		}

		manager := NewTokenPriceManager(testProviderConfigs(), mockHttp)
		price, err := manager.GetPrice(testChain(), config.Token{Address: utils.ZeroAddress, Decimals: 18})

		require.Nil(t, err)
		require.Equal(t, "2000000000000000000000", price.String())
	})

	t.Run("erc20 price uses platform endpoint", func(t *testing.T) {
		t.Parallel()

		address := "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
		mockHttp := &network.MockHttp{
			GetFunc: func(req *http.Request) ([]byte, error) {
				require.Contains(t, req.URL.String(), "simple/token_price/ethereum")
				require.Contains(t, req.URL.String(), strings.ToLower(address))

				return []byte(fmt.Sprintf(`{"%s":{"usd":1}}`, strings.ToLower(address))), nil
			},
		}

		manager := NewTokenPriceManager(testProviderConfigs(), mockHttp)
		price, err := manager.GetPrice(testChain(), config.Token{Address: address, Decimals: 6})

		require.Nil(t, err)
		require.Equal(t, "1000000000000000000", price.String())
	})

	t.Run("price is cached", func(t *testing.T) {
		t.Parallel()

		callCount := 0
		mockHttp := &network.MockHttp{
			GetFunc: func(req *http.Request) ([]byte, error) {
				callCount++
				return []byte(`{"ethereum":{"usd":2000}}`), nil
			},
		}

		manager := NewTokenPriceManager(testProviderConfigs(), mockHttp)
		token := config.Token{Address: utils.ZeroAddress, Decimals: 18}

		_, err := manager.GetPrice(testChain(), token)
		require.Nil(t, err)
		_, err = manager.GetPrice(testChain(), token)
		require.Nil(t, err)

		require.Equal(t, 1, callCount)
	})

	t.Run("all providers fail", func(t *testing.T) {
		t.Parallel()

		mockHttp := &network.MockHttp{
			GetFunc: func(req *http.Request) ([]byte, error) {
				return nil, fmt.Errorf("api is down")
			},
		}

		manager := NewTokenPriceManager(testProviderConfigs(), mockHttp)
		_, err := manager.GetPrice(testChain(), config.Token{Address: utils.ZeroAddress})

		require.NotNil(t, err)
	})

	t.Run("zero price is rejected", func(t *testing.T) {
		t.Parallel()

		mockHttp := &network.MockHttp{
			GetFunc: func(req *http.Request) ([]byte, error) {
				return []byte(`{"ethereum":{"usd":0}}`), nil
			},
		}

		manager := NewTokenPriceManager(testProviderConfigs(), mockHttp)
		_, err := manager.GetPrice(testChain(), config.Token{Address: utils.ZeroAddress})

		require.NotNil(t, err)
	})
}

func TestCoinCapProvider(t *testing.T) {
	t.Parallel()

	mockHttp := &network.MockHttp{
		GetFunc: func(req *http.Request) ([]byte, error) {
			require.Contains(t, req.URL.String(), "assets/ethereum")

			return []byte(`{"data":{"priceUsd":"1850.25"}}`), nil
		},
	}

	provider := NewCoinCapProvider(mockHttp, config.PriceProvider{Url: "https://api.coincap.io/v2/assets"})
	price, err := provider.GetPrice(testChain(), config.Token{Address: utils.ZeroAddress})

	require.Nil(t, err)
	require.Equal(t, "1850250000000000000000", price.String())
}
