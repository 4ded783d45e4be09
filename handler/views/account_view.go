package views

import (
	"lending/core"
	"lending/pkg/wadray"

	"github.com/shopspring/decimal"
)

// Account account risk view, values in the common price unit
type Account struct {
	User                    string          `json:"user"`
	TotalCollateral         decimal.Decimal `json:"total_collateral"`
	TotalDebt               decimal.Decimal `json:"total_debt"`
	AvailableBorrows        decimal.Decimal `json:"available_borrows"`
	AvgLTV                  decimal.Decimal `json:"avg_ltv"`
	AvgLiquidationThreshold decimal.Decimal `json:"avg_liquidation_threshold"`

	// HealthFactor empty when the account has no debt
	HealthFactor string   `json:"health_factor"`
	Collaterals  []uint16 `json:"collaterals"`
	Borrows      []uint16 `json:"borrows"`
}

func AccountView(user string, data *core.AccountData, config core.UserConfiguration, reserves int) *Account {
	view := &Account{
		User:                    user,
		TotalCollateral:         wadray.WadToDecimal(data.TotalCollateral),
		TotalDebt:               wadray.WadToDecimal(data.TotalDebt),
		AvailableBorrows:        wadray.WadToDecimal(data.AvailableBorrows),
		AvgLTV:                  Percent(data.AvgLTV.Uint64()),
		AvgLiquidationThreshold: Percent(data.AvgLiquidationThreshold.Uint64()),
		Collaterals:             []uint16{},
		Borrows:                 []uint16{},
	}

	if !data.HealthFactor.Eq(wadray.MaxUint256) {
		view.HealthFactor = wadray.WadToDecimal(data.HealthFactor).String()
	}

	for i := 0; i < reserves && i < core.MaxReserves; i++ {
		id := uint16(i)
		if config.IsUsingAsCollateral(id) {
			view.Collaterals = append(view.Collaterals, id)
		}

		if config.IsBorrowing(id) {
			view.Borrows = append(view.Borrows, id)
		}
	}

	return view
}
