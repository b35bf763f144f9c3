package oracle

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"

	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/network"
)

const (
	// UpdateFrequency is how long a cached price stays fresh (1 hour).
	UpdateFrequency = 1000 * 60 * 60

	PriceCacheSize = 256
)

type priceCache struct {
	price      *big.Int
	updateTime int64
}

type TokenPriceManager interface {
	GetPrice(chain config.Chain, token config.Token) (*big.Int, error)
}

type defaultTokenPriceManager struct {
	providers       map[string]Provider
	cache           *lru.Cache
	lock            *sync.Mutex
	updateFrequency int64
}

func NewTokenPriceManager(providerCfgs map[string]config.PriceProvider,
	networkHttp network.Http) TokenPriceManager {

	providers := make(map[string]Provider)
	for name, providerCfg := range providerCfgs {
		switch name {
		case "coingecko":
			providers[name] = NewCoingeckoProvider(networkHttp, providerCfg)

		case "coin_cap":
			providers[name] = NewCoinCapProvider(networkHttp, providerCfg)

		default:
			logger.Errorf("Unknown price provider %s", name)
		}
	}

	return &defaultTokenPriceManager{
		providers:       providers,
		cache:           lru.New(PriceCacheSize),
		lock:            &sync.Mutex{},
		updateFrequency: UpdateFrequency,
	}
}

func (m *defaultTokenPriceManager) getTokenPrices(chain config.Chain, token config.Token) (*big.Int, error) {
	priceMap := &sync.Map{}
	wg := &sync.WaitGroup{}
	for name, provider := range m.providers {
		wg.Add(1)
		go func(name string, provider Provider) {
			defer wg.Done()

			price, err := provider.GetPrice(chain, token)
			if err != nil {
				logger.Warnf("Failed to get token price from provider %s, err = %s", name, err)
				return
			}

			priceMap.Store(name, price)
		}(name, provider)
	}
	wg.Wait()

	prices := make([]*big.Int, 0)
	priceMap.Range(func(key, value interface{}) bool {
		prices = append(prices, value.(*big.Int))

		return true
	})

	if len(prices) == 0 {
		return nil, fmt.Errorf("cannot find price from any provider for token %s on chain %d",
			token.Address, chain.ChainId)
	}

	// Use the median across providers.
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Cmp(prices[j]) < 0
	})

	return prices[len(prices)/2], nil
}

func (m *defaultTokenPriceManager) GetPrice(chain config.Chain, token config.Token) (*big.Int, error) {
	key := fmt.Sprintf("%d-%s", chain.ChainId, token.Address)

	m.lock.Lock()
	value, ok := m.cache.Get(key)
	m.lock.Unlock()

	if ok {
		cache, ok := value.(*priceCache)
		if ok && cache.updateTime+m.updateFrequency > time.Now().UnixMilli() {
			return cache.price, nil
		}
	}

	price, err := m.getTokenPrices(chain, token)
	if err == nil {
		m.lock.Lock()
		m.cache.Add(key, &priceCache{
			price:      price,
			updateTime: time.Now().UnixMilli(),
		})
		m.lock.Unlock()
	}

	return price, err
}
