package oracle

import (
	"context"
	"sync"

	"lending/pkg/wadray"

	"github.com/holiman/uint256"
)

// LendingRateOracle market borrow rates set by the operator, in ray.
// Unknown assets have a zero market rate.
type LendingRateOracle struct {
	mu    sync.RWMutex
	rates map[string]*uint256.Int
}

func NewLendingRateOracle() *LendingRateOracle {
	return &LendingRateOracle{
		rates: make(map[string]*uint256.Int),
	}
}

func (o *LendingRateOracle) SetMarketBorrowRate(asset string, rate *uint256.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.rates[asset] = new(uint256.Int).Set(rate)
}

func (o *LendingRateOracle) GetMarketBorrowRate(ctx context.Context, asset string) (*uint256.Int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if rate, ok := o.rates[asset]; ok {
		return new(uint256.Int).Set(rate), nil
	}

	return wadray.Zero(), nil
}
