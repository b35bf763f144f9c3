package oracle

import (
	"math/big"

	"github.com/hinkal-protocol/batch-node/config"
)

// Provider fetches a token's USD unit price, scaled by 18 decimals.
type Provider interface {
	GetPrice(chain config.Chain, token config.Token) (*big.Int, error)
}
