package oracle

import (
	"encoding/json"
	"fmt"
	"math/big"
	"math/rand"
	"net/http"
	"strings"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/network"
	"github.com/hinkal-protocol/batch-node/utils"
)

type CoingeckoProvider struct {
	providerCfg config.PriceProvider
	networkHttp network.Http
}

func NewCoingeckoProvider(networkHttp network.Http, providerCfg config.PriceProvider) Provider {
	return &CoingeckoProvider{
		networkHttp: networkHttp,
		providerCfg: providerCfg,
	}
}

// GetPrice queries the simple-price endpoint for native assets and the
// per-platform token-price endpoint for ERC20s.
func (p *CoingeckoProvider) GetPrice(chain config.Chain, token config.Token) (*big.Int, error) {
	var baseUrl, key string
	if utils.IsNativeToken(token.Address) {
		if chain.NativeCoin == "" {
			return nil, fmt.Errorf("no native coin id configured for chain %s", chain.Chain)
		}

		key = chain.NativeCoin
		baseUrl = fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", p.providerCfg.Url, key)
	} else {
		if chain.Platform == "" {
			return nil, fmt.Errorf("no asset platform configured for chain %s", chain.Chain)
		}

		key = strings.ToLower(token.Address)
		baseUrl = fmt.Sprintf("%s/simple/token_price/%s?contract_addresses=%s&vs_currencies=usd",
			p.providerCfg.Url, chain.Platform, key)
	}

	req, err := http.NewRequest("GET", baseUrl, nil)
	if err != nil {
		return nil, err
	}

	if secret := p.randomSecret(); secret != "" {
		req.Header.Set("x-cg-pro-api-key", secret)
	}

	data, err := p.networkHttp.Get(req)
	if err != nil {
		return nil, err
	}

	type Response struct {
		USD float64 `json:"usd"`
	}

	response := map[string]Response{}
	err = json.Unmarshal(data, &response)
	if err != nil {
		return nil, err
	}

	usd := response[key].USD
	if usd <= 0 {
		return nil, fmt.Errorf("coingecko has no usd price for %s on %s", key, chain.Chain)
	}

	return utils.UsdToFixedPoint(fmt.Sprintf("%f", usd))
}

func (p *CoingeckoProvider) randomSecret() string {
	if p.providerCfg.Secrets == "" {
		return ""
	}

	secrets := strings.Split(p.providerCfg.Secrets, ",")

	return secrets[rand.Intn(len(secrets))]
}
