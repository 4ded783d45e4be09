package rest

import (
	"context"
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"
	"lending/pkg/wadray"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
)

func allReservesHandler(reserveSrv core.IReserveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reserves, err := reserveSrv.All(ctx)
		if err != nil {
			render.Err(w, err)
			return
		}

		reserveViews := make([]*views.Reserve, 0, len(reserves))
		for _, reserve := range reserves {
			view, err := getReserveView(ctx, reserveSrv, reserve)
			if err != nil {
				render.Err(w, err)
				return
			}

			reserveViews = append(reserveViews, view)
		}

		render.JSON(w, reserveViews)
	}
}

func reserveHandler(reserveSrv core.IReserveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reserve, err := reserveSrv.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.Err(w, err)
			return
		}

		view, err := getReserveView(ctx, reserveSrv, reserve)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, view)
	}
}

func getReserveView(ctx context.Context, reserveSrv core.IReserveService, reserve *core.Reserve) (*views.Reserve, error) {
	log := logger.FromContext(ctx).WithField("asset", reserve.Asset)
	view := views.ReserveView(reserve)
	decimals := int32(reserve.Configuration.Decimals)

	available, err := reserve.DepositToken.UnderlyingBalance(ctx)
	if err != nil {
		log.WithError(err).Errorln("UnderlyingBalance")
		return nil, err
	}

	stable, _, err := reserve.StableDebtToken.GetTotalSupplyAndAvgRate(ctx)
	if err != nil {
		log.WithError(err).Errorln("GetTotalSupplyAndAvgRate")
		return nil, err
	}

	scaled, err := reserve.VariableDebtToken.ScaledTotalSupply(ctx)
	if err != nil {
		log.WithError(err).Errorln("ScaledTotalSupply")
		return nil, err
	}

	index, err := reserveSrv.NormalizedDebt(ctx, reserve.Asset)
	if err != nil {
		return nil, err
	}

	variable, err := wadray.RayMul(scaled, index)
	if err != nil {
		return nil, err
	}

	view.AvailableLiquidity = wadray.ToDecimal(available, decimals)
	view.TotalStableDebt = wadray.ToDecimal(stable, decimals)
	view.TotalVariableDebt = wadray.ToDecimal(variable, decimals)
	return view, nil
}
