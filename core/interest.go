package core

import (
	"context"

	"github.com/holiman/uint256"
)

// RateParams inputs of an interest rate calculation
type RateParams struct {
	Asset              string
	AvailableLiquidity *uint256.Int
	TotalStableDebt    *uint256.Int
	TotalVariableDebt  *uint256.Int
	AvgStableRate      *uint256.Int
	// ReserveFactor bps
	ReserveFactor uint64
}

// Rates result of an interest rate calculation, all ray
type Rates struct {
	Liquidity     *uint256.Int `json:"liquidity"`
	Stable        *uint256.Int `json:"stable"`
	Variable      *uint256.Int `json:"variable"`
	Utilization   *uint256.Int `json:"utilization"`
	OverallBorrow *uint256.Int `json:"overall_borrow"`
}

// IInterestRateStrategy computes reserve rates from its debt and liquidity
type IInterestRateStrategy interface {
	CalculateInterestRates(ctx context.Context, params RateParams) (*Rates, error)
}
