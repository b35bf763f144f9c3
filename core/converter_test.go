package core

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/core/oracle"
	"github.com/hinkal-protocol/batch-node/types"
	"github.com/hinkal-protocol/batch-node/utils"
)

func getTestConfig() *config.Config {
	cfg := &config.Config{
		Tokens: []config.Token{
			{
				Symbol:   "USDC",
				Address:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
				ChainId:  1,
				Decimals: 6,
			},
		},
	}
	cfg.ApplyDefaults()

	return cfg
}

func fixedPrice(usd string) *big.Int {
	price, err := utils.UsdToFixedPoint(usd)
	if err != nil {
		panic(err)
	}

	return price
}

func TestUsdToTokenUnits(t *testing.T) {
	t.Parallel()

	t.Run("truncates fractional units", func(t *testing.T) {
		t.Parallel()

		tpm := &oracle.MockTokenPriceManager{
			GetPriceFunc: func(chain config.Chain, token config.Token) (*big.Int, error) {
				return fixedPrice("2000"), nil
			},
		}

		converter := NewAmountConverter(getTestConfig(), tpm)
		units, err := converter.UsdToTokenUnits("100", utils.ZeroAddress, 1, 18)

		require.Nil(t, err)
		require.Equal(t, "50000000000000000", units)
	})

	t.Run("six decimal token", func(t *testing.T) {
		t.Parallel()

		tpm := &oracle.MockTokenPriceManager{
			GetPriceFunc: func(chain config.Chain, token config.Token) (*big.Int, error) {
				return fixedPrice("1"), nil
			},
		}

		converter := NewAmountConverter(getTestConfig(), tpm)
		units, err := converter.UsdToTokenUnits("25.5", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", 1, 6)

		require.Nil(t, err)
		require.Equal(t, "25500000", units)
	})

	t.Run("rejects non-positive usd amount", func(t *testing.T) {
		t.Parallel()

		converter := NewAmountConverter(getTestConfig(), &oracle.MockTokenPriceManager{})

		// Malformed amounts are the caller's mistake, not a market-data
		// failure.
		for _, usd := range []string{"0", "-5", "abc"} {
			_, err := converter.UsdToTokenUnits(usd, utils.ZeroAddress, 1, 18)
			require.NotNil(t, err)

			var validationErr *types.ValidationError
			require.ErrorAs(t, err, &validationErr)
		}
	})

	t.Run("rejects unsupported chain", func(t *testing.T) {
		t.Parallel()

		converter := NewAmountConverter(getTestConfig(), &oracle.MockTokenPriceManager{})

		_, err := converter.UsdToTokenUnits("100", utils.ZeroAddress, 31337, 18)
		require.NotNil(t, err)

		var conversionErr *types.ConversionError
		require.ErrorAs(t, err, &conversionErr)
	})

	t.Run("rejects failed or non-positive price", func(t *testing.T) {
		t.Parallel()

		tpm := &oracle.MockTokenPriceManager{
			GetPriceFunc: func(chain config.Chain, token config.Token) (*big.Int, error) {
				return nil, fmt.Errorf("provider down")
			},
		}

		converter := NewAmountConverter(getTestConfig(), tpm)
		_, err := converter.UsdToTokenUnits("100", utils.ZeroAddress, 1, 18)
		require.NotNil(t, err)

		var conversionErr *types.ConversionError
		require.ErrorAs(t, err, &conversionErr)

		tpm.GetPriceFunc = func(chain config.Chain, token config.Token) (*big.Int, error) {
			return big.NewInt(0), nil
		}

		_, err = converter.UsdToTokenUnits("100", utils.ZeroAddress, 1, 18)
		require.NotNil(t, err)
	})
}

func TestDecimalsOf(t *testing.T) {
	t.Parallel()

	converter := NewAmountConverter(getTestConfig(), &oracle.MockTokenPriceManager{})

	require.Equal(t, 18, converter.DecimalsOf(utils.ZeroAddress, 1))
	require.Equal(t, 6, converter.DecimalsOf("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", 1))
	require.Equal(t, 18, converter.DecimalsOf("0x1111111111111111111111111111111111111111", 1))
}
