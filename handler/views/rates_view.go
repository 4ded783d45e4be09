package views

import (
	"lending/core"
	"lending/pkg/wadray"

	"github.com/shopspring/decimal"
)

// Rates rates view, annual ratios as decimals
type Rates struct {
	Asset         string          `json:"asset"`
	Utilization   decimal.Decimal `json:"utilization"`
	Liquidity     decimal.Decimal `json:"liquidity_rate"`
	Variable      decimal.Decimal `json:"variable_borrow_rate"`
	Stable        decimal.Decimal `json:"stable_borrow_rate"`
	OverallBorrow decimal.Decimal `json:"overall_borrow_rate"`
}

func RatesView(asset string, r *core.Rates) *Rates {
	return &Rates{
		Asset:         asset,
		Utilization:   wadray.RayToDecimal(r.Utilization),
		Liquidity:     wadray.RayToDecimal(r.Liquidity),
		Variable:      wadray.RayToDecimal(r.Variable),
		Stable:        wadray.RayToDecimal(r.Stable),
		OverallBorrow: wadray.RayToDecimal(r.OverallBorrow),
	}
}
