package uniswap

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/daoleno/uniswapv3-sdk/examples/contract"
	"github.com/daoleno/uniswapv3-sdk/examples/helper"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/hinkal-protocol/batch-node/config"
	oracleutils "github.com/hinkal-protocol/batch-node/core/oracle/utils"
)

// Uniswap v3 pool fee tiers, in hundredths of a bip.
var feeTiers = []int64{500, 3000, 10000}

// SwapRoute is the instruction payload for a pool-internal swap: the fee
// tier whose quoter returned the best output for the requested input.
type SwapRoute struct {
	TokenIn      string `json:"tokenIn"`
	TokenOut     string `json:"tokenOut"`
	FeeTier      int64  `json:"feeTier"`
	AmountOutMin string `json:"amountOutMin"`
}

// Encode renders the route as the opaque string the wallet backend expects.
func (r *SwapRoute) Encode() string {
	bz, _ := json.Marshal(r)

	return string(bz)
}

type QuoteManager interface {
	// QuoteExactInput quotes amountIn (a human-readable decimal amount of
	// tokenIn) against every fee tier and returns the best route.
	QuoteExactInput(tokenIn, tokenOut config.Token, amountIn string) (*SwapRoute, error)
}

type defaultQuoteManager struct {
	rpcs []string
}

func NewQuoteManager(rpcs []string) QuoteManager {
	return &defaultQuoteManager{
		rpcs: rpcs,
	}
}

func (m *defaultQuoteManager) QuoteExactInput(tokenIn, tokenOut config.Token,
	amountIn string) (*SwapRoute, error) {

	clients := make([]*ethclient.Client, 0)
	for _, rpc := range m.rpcs {
		ec, err := ethclient.Dial(rpc)
		if err != nil {
			return nil, err
		}
		clients = append(clients, ec)
	}

	return oracleutils.ExecuteWithClients(clients, func(client *ethclient.Client) (*SwapRoute, bool, error) {
		quoterContract, err := contract.NewUniswapv3Quoter(common.HexToAddress(helper.ContractV3Quoter),
			client)
		if err != nil {
			return nil, false, err
		}

		token0 := common.HexToAddress(tokenIn.Address)
		token1 := common.HexToAddress(tokenOut.Address)
		amount := helper.FloatStringToBigInt(amountIn, tokenIn.Decimals)
		sqrtPriceLimitX96 := big.NewInt(0)
		rawCaller := &contract.Uniswapv3QuoterRaw{Contract: quoterContract}

		var best *SwapRoute
		for _, tier := range feeTiers {
			var out []interface{}
			err = rawCaller.Call(nil, &out, "quoteExactInputSingle", token0, token1,
				big.NewInt(tier), amount, sqrtPriceLimitX96)
			if err != nil {
				continue
			}

			amountOut := out[0].(*big.Int)
			if amountOut.Sign() <= 0 {
				continue
			}

			if best == nil || mustBig(best.AmountOutMin).Cmp(amountOut) < 0 {
				best = &SwapRoute{
					TokenIn:      tokenIn.Address,
					TokenOut:     tokenOut.Address,
					FeeTier:      tier,
					AmountOutMin: amountOut.String(),
				}
			}
		}

		if best == nil {
			return nil, false, fmt.Errorf("no uniswap v3 pool quotes %s -> %s", tokenIn.Address, tokenOut.Address)
		}

		return best, true, nil
	})
}

func mustBig(s string) *big.Int {
	v, _ := new(big.Int).SetString(s, 10)
	if v == nil {
		v = big.NewInt(0)
	}

	return v
}
