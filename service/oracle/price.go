package oracle

import (
	"context"
	"sync"

	"lending/core"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// StaticPriceOracle prices set by the operator, in wad
type StaticPriceOracle struct {
	mu     sync.RWMutex
	prices map[string]*uint256.Int
}

func NewStaticPriceOracle() *StaticPriceOracle {
	return &StaticPriceOracle{
		prices: make(map[string]*uint256.Int),
	}
}

func (o *StaticPriceOracle) SetAssetPrice(asset string, price *uint256.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.prices[asset] = new(uint256.Int).Set(price)
}

func (o *StaticPriceOracle) GetAssetPrice(ctx context.Context, asset string) (*uint256.Int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	price, ok := o.prices[asset]
	if !ok {
		return nil, errors.Wrapf(core.ErrInvalidPrice, "no price for %s", asset)
	}

	return new(uint256.Int).Set(price), nil
}
