package views

import (
	"lending/core"
	"lending/pkg/wadray"

	"github.com/shopspring/decimal"
)

// Reserve reserve view, ratios as decimals
type Reserve struct {
	ID                      uint16          `json:"id"`
	Asset                   string          `json:"asset"`
	Decimals                uint64          `json:"decimals"`
	LTV                     decimal.Decimal `json:"ltv"`
	LiquidationThreshold    decimal.Decimal `json:"liquidation_threshold"`
	LiquidationBonus        decimal.Decimal `json:"liquidation_bonus"`
	ReserveFactor           decimal.Decimal `json:"reserve_factor"`
	Active                  bool            `json:"active"`
	Frozen                  bool            `json:"frozen"`
	BorrowingEnabled        bool            `json:"borrowing_enabled"`
	StableBorrowRateEnabled bool            `json:"stable_borrow_rate_enabled"`
	Configuration           string          `json:"configuration"`

	LiquidityIndex      decimal.Decimal `json:"liquidity_index"`
	VariableBorrowIndex decimal.Decimal `json:"variable_borrow_index"`
	LiquidityRate       decimal.Decimal `json:"liquidity_rate"`
	VariableBorrowRate  decimal.Decimal `json:"variable_borrow_rate"`
	StableBorrowRate    decimal.Decimal `json:"stable_borrow_rate"`
	LastUpdateTimestamp uint64          `json:"last_update_timestamp"`

	AvailableLiquidity decimal.Decimal `json:"available_liquidity"`
	TotalStableDebt    decimal.Decimal `json:"total_stable_debt"`
	TotalVariableDebt  decimal.Decimal `json:"total_variable_debt"`
}

// Percent renders bps as a decimal ratio
func Percent(bps uint64) decimal.Decimal {
	return decimal.New(int64(bps), -4)
}

// ReserveView reserve view without liquidity figures
func ReserveView(r *core.Reserve) *Reserve {
	c := r.Configuration
	view := &Reserve{
		ID:                      r.ID,
		Asset:                   r.Asset,
		Decimals:                c.Decimals,
		LTV:                     Percent(c.LTV),
		LiquidationThreshold:    Percent(c.LiquidationThreshold),
		LiquidationBonus:        Percent(c.LiquidationBonus),
		ReserveFactor:           Percent(c.ReserveFactor),
		Active:                  c.Active,
		Frozen:                  c.Frozen,
		BorrowingEnabled:        c.BorrowingEnabled,
		StableBorrowRateEnabled: c.StableBorrowRateEnabled,
		LiquidityIndex:          wadray.RayToDecimal(r.LiquidityIndex),
		VariableBorrowIndex:     wadray.RayToDecimal(r.VariableBorrowIndex),
		LiquidityRate:           wadray.RayToDecimal(r.CurrentLiquidityRate),
		VariableBorrowRate:      wadray.RayToDecimal(r.CurrentVariableBorrowRate),
		StableBorrowRate:        wadray.RayToDecimal(r.CurrentStableBorrowRate),
		LastUpdateTimestamp:     r.LastUpdateTimestamp,
	}

	if word, err := c.Encode(); err == nil {
		view.Configuration = word.Hex()
	}

	return view
}
