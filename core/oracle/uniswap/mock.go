package uniswap

import "github.com/hinkal-protocol/batch-node/config"

type MockQuoteManager struct {
	QuoteExactInputFunc func(tokenIn, tokenOut config.Token, amountIn string) (*SwapRoute, error)
}

func (m *MockQuoteManager) QuoteExactInput(tokenIn, tokenOut config.Token, amountIn string) (*SwapRoute, error) {
	if m.QuoteExactInputFunc != nil {
		return m.QuoteExactInputFunc(tokenIn, tokenOut, amountIn)
	}

	return nil, nil
}
