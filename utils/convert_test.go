package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsdToFixedPoint(t *testing.T) {
	t.Parallel()

	fixed, err := UsdToFixedPoint("100")
	require.Nil(t, err)
	require.Equal(t, "100000000000000000000", fixed.String())

	fixed, err = UsdToFixedPoint("0.5")
	require.Nil(t, err)
	require.Equal(t, "500000000000000000", fixed.String())

	fixed, err = UsdToFixedPoint("1999.99")
	require.Nil(t, err)
	require.Equal(t, "1999990000000000000000", fixed.String())

	_, err = UsdToFixedPoint("not-a-number")
	require.NotNil(t, err)

	_, err = UsdToFixedPoint("")
	require.NotNil(t, err)
}

func TestFormatUnits(t *testing.T) {
	t.Parallel()

	wei, ok := new(big.Int).SetString("1500000000000000000", 10)
	require.True(t, ok)
	require.Equal(t, "1.5", FormatUnits(wei, 18))

	require.Equal(t, "0.01", FormatUnits(big.NewInt(10_000_000_000_000_000), 18))
	require.Equal(t, "25", FormatUnits(big.NewInt(25_000_000), 6))
	require.Equal(t, "0", FormatUnits(big.NewInt(0), 18))
}

func TestIsNativeToken(t *testing.T) {
	t.Parallel()

	require.True(t, IsNativeToken(ZeroAddress))
	require.True(t, IsNativeToken("0x0000000000000000000000000000000000000000"))
	require.False(t, IsNativeToken("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"))
}
