package core

import (
	"context"

	"github.com/holiman/uint256"
)

// IPriceOracle asset prices in the common unit (wad)
type IPriceOracle interface {
	GetAssetPrice(ctx context.Context, asset string) (*uint256.Int, error)
}

// ILendingRateOracle reference market borrow rates (ray)
type ILendingRateOracle interface {
	GetMarketBorrowRate(ctx context.Context, asset string) (*uint256.Int, error)
}
