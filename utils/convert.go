package utils

import (
	"fmt"
	"math/big"
	"strings"
)

const ZeroAddress = "0x0000000000000000000000000000000000000000"

var (
	OneEtherInWei = int64(1_000_000_000_000_000_000)

	// FixedPointUnit is the scale used for USD prices (18 decimals).
	FixedPointUnit = int64(1_000_000_000_000_000_000)
)

// IsNativeToken reports whether an address denotes the chain's native asset.
func IsNativeToken(address string) bool {
	return strings.EqualFold(address, ZeroAddress)
}

// Pow10 returns 10^decimals as a big integer.
func Pow10(decimals int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// UsdToFixedPoint converts a decimal USD string (e.g. "68.382") to an integer
// scaled by 18 decimals.
func UsdToFixedPoint(s string) (*big.Int, error) {
	bigVal, ok := new(big.Float).SetPrec(236).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal value %s", s)
	}

	coff := new(big.Float).SetInt64(FixedPointUnit)
	bigVal = bigVal.Mul(bigVal, coff)
	result := new(big.Int)
	bigVal.Int(result)

	return result, nil
}

// FormatUnits renders an atomic amount as a decimal string with up to 6
// fractional digits, for logging and quoting.
func FormatUnits(amount *big.Int, decimals int) string {
	f := new(big.Float).SetPrec(236).SetInt(amount)
	f = f.Quo(f, new(big.Float).SetInt(Pow10(decimals)))

	s := f.Text('f', 6)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")

	return s
}
