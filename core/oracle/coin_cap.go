package oracle

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/network"
	"github.com/hinkal-protocol/batch-node/utils"
)

type CoinCapProvider struct {
	providerCfg config.PriceProvider
	networkHttp network.Http
}

func NewCoinCapProvider(networkHttp network.Http, providerCfg config.PriceProvider) Provider {
	return &CoinCapProvider{
		networkHttp: networkHttp,
		providerCfg: providerCfg,
	}
}

// GetPrice only serves tokens with a configured coincap asset name; the
// manager skips this provider for the rest.
func (p *CoinCapProvider) GetPrice(chain config.Chain, token config.Token) (*big.Int, error) {
	name := token.CoincapName
	if utils.IsNativeToken(token.Address) {
		name = chain.NativeCoin
	}
	if name == "" {
		return nil, fmt.Errorf("empty coincap asset name, symbol = %s", token.Symbol)
	}

	baseUrl := fmt.Sprintf("%s/%s", p.providerCfg.Url, name)
	req, err := http.NewRequest("GET", baseUrl, nil)
	if err != nil {
		return nil, err
	}

	type Response struct {
		Data struct {
			PriceUsd string `json:"priceUsd"`
		} `json:"data"`
	}

	data, err := p.networkHttp.Get(req)
	if err != nil {
		return nil, err
	}

	response := &Response{}
	err = json.Unmarshal(data, &response)
	if err != nil {
		return nil, err
	}

	if response.Data.PriceUsd == "" {
		return nil, fmt.Errorf("coincap has no usd price for asset %s", name)
	}

	return utils.UsdToFixedPoint(response.Data.PriceUsd)
}
