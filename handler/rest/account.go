package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/go-chi/chi"
)

func accountHandler(reserveSrv core.IReserveService, accountSrv core.IAccountService, userConfigs core.IUserConfigurationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := chi.URLParam(r, "user")

		config, err := userConfigs.Find(ctx, user)
		if err != nil {
			render.Err(w, err)
			return
		}

		data, err := accountSrv.CalculateUserAccountData(ctx, user, config)
		if err != nil {
			render.Err(w, err)
			return
		}

		reserves, err := reserveSrv.All(ctx)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.AccountView(user, data, config, len(reserves)))
	}
}
