package oracle

import (
	"math/big"

	"github.com/hinkal-protocol/batch-node/config"
)

type MockTokenPriceManager struct {
	GetPriceFunc func(chain config.Chain, token config.Token) (*big.Int, error)
}

func (m *MockTokenPriceManager) GetPrice(chain config.Chain, token config.Token) (*big.Int, error) {
	if m.GetPriceFunc != nil {
		return m.GetPriceFunc(chain, token)
	}

	return nil, nil
}
