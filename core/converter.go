package core

import (
	"fmt"
	"math/big"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/core/oracle"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/types"
	"github.com/hinkal-protocol/batch-node/utils"
)

// AmountConverter resolves USD-denominated amounts into atomic token units
// using live market prices.
type AmountConverter interface {
	// UsdToTokenUnits converts a decimal USD string into the token's atomic
	// units, truncating any fractional unit.
	UsdToTokenUnits(usdAmount, tokenAddress string, chainId int64, decimals int) (string, error)

	// DecimalsOf reports the decimals of a token, falling back to 18 when
	// the token is not in the registry.
	DecimalsOf(tokenAddress string, chainId int64) int
}

type defaultAmountConverter struct {
	cfg *config.Config
	tpm oracle.TokenPriceManager
}

func NewAmountConverter(cfg *config.Config, tpm oracle.TokenPriceManager) AmountConverter {
	return &defaultAmountConverter{
		cfg: cfg,
		tpm: tpm,
	}
}

func (c *defaultAmountConverter) UsdToTokenUnits(usdAmount, tokenAddress string, chainId int64,
	decimals int) (string, error) {

	usdFixed, err := utils.UsdToFixedPoint(usdAmount)
	if err != nil {
		return "", types.NewValidationError("",
			fmt.Sprintf("invalid USD amount '%s': %v", usdAmount, err))
	}

	if usdFixed.Sign() <= 0 {
		return "", types.NewValidationError("",
			fmt.Sprintf("USD amount must be positive, got '%s'", usdAmount))
	}

	chain, ok := c.cfg.ChainById(chainId)
	if !ok || chain.Platform == "" {
		return "", types.NewConversionError("chain %d is not supported for price lookups", chainId)
	}

	token, ok := c.cfg.TokenByAddress(tokenAddress, chainId)
	if !ok {
		token = config.Token{
			Address:  tokenAddress,
			ChainId:  chainId,
			Decimals: decimals,
		}
	}

	price, err := c.tpm.GetPrice(chain, token)
	if err != nil {
		return "", types.NewConversionError("cannot fetch price for token %s on chain %d: %v",
			tokenAddress, chainId, err)
	}

	if price == nil || price.Sign() <= 0 {
		return "", types.NewConversionError("received non-positive price for token %s on chain %d",
			tokenAddress, chainId)
	}

	// Both the USD amount and the price are 1e18 fixed point, so the scale
	// factors cancel and integer division truncates toward zero.
	units := new(big.Int).Mul(usdFixed, utils.Pow10(decimals))
	units.Div(units, price)

	return units.String(), nil
}

func (c *defaultAmountConverter) DecimalsOf(tokenAddress string, chainId int64) int {
	if utils.IsNativeToken(tokenAddress) {
		return 18
	}

	if token, ok := c.cfg.TokenByAddress(tokenAddress, chainId); ok {
		return token.Decimals
	}

	logger.Warnf("Unknown token %s on chain %d, assuming 18 decimals", tokenAddress, chainId)
	return 18
}
