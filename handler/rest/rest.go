package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	reserveSrv core.IReserveService,
	accountSrv core.IAccountService,
	userConfigs core.IUserConfigurationStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/reserves", allReservesHandler(reserveSrv))
	router.Get("/reserves/{asset}", reserveHandler(reserveSrv))
	router.Get("/accounts/{user}", accountHandler(reserveSrv, accountSrv, userConfigs))
	router.Get("/rates", ratesHandler(reserveSrv))

	return router
}
