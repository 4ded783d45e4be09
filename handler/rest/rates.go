package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"
	"lending/pkg/wadray"

	"github.com/shopspring/decimal"
)

// ratesHandler previews the rates of a reserve for the given liquidity and
// debt. Amounts are in units of the asset, rates are annual ratios.
func ratesHandler(reserveSrv core.IReserveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Asset              string          `json:"asset" valid:"required"`
			AvailableLiquidity decimal.Decimal `json:"available_liquidity"`
			TotalStableDebt    decimal.Decimal `json:"total_stable_debt"`
			TotalVariableDebt  decimal.Decimal `json:"total_variable_debt"`
			AvgStableRate      decimal.Decimal `json:"avg_stable_rate"`
			ReserveFactor      *uint64         `json:"reserve_factor"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		reserve, err := reserveSrv.Find(ctx, params.Asset)
		if err != nil {
			render.Err(w, err)
			return
		}

		decimals := int32(reserve.Configuration.Decimals)
		input := core.RateParams{
			Asset:         reserve.Asset,
			ReserveFactor: reserve.Configuration.ReserveFactor,
		}

		if params.ReserveFactor != nil {
			input.ReserveFactor = *params.ReserveFactor
		}

		if input.AvailableLiquidity, err = wadray.FromDecimal(params.AvailableLiquidity, decimals); err != nil {
			render.BadRequest(w, err)
			return
		}

		if input.TotalStableDebt, err = wadray.FromDecimal(params.TotalStableDebt, decimals); err != nil {
			render.BadRequest(w, err)
			return
		}

		if input.TotalVariableDebt, err = wadray.FromDecimal(params.TotalVariableDebt, decimals); err != nil {
			render.BadRequest(w, err)
			return
		}

		if input.AvgStableRate, err = wadray.FromDecimal(params.AvgStableRate, wadray.RayDecimals); err != nil {
			render.BadRequest(w, err)
			return
		}

		rates, err := reserve.InterestRateStrategy.CalculateInterestRates(ctx, input)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.RatesView(reserve.Asset, rates))
	}
}
