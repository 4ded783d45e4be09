package handler

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/hc"
	"lending/handler/render"
	"lending/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	version     string
	reserves    core.IReserveStore
	reserveSrv  core.IReserveService
	accountSrv  core.IAccountService
	userConfigs core.IUserConfigurationStore
}

// New new server function
func New(
	version string,
	reserves core.IReserveStore,
	reserveSrv core.IReserveService,
	accountSrv core.IAccountService,
	userConfigs core.IUserConfigurationStore,
) Server {
	return Server{
		version:     version,
		reserves:    reserves,
		reserveSrv:  reserveSrv,
		accountSrv:  accountSrv,
		userConfigs: userConfigs,
	}
}

// Handler api mux with hc and restful apis mounted
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	mux.Mount("/hc", hc.Handle(s.version, s.reserves))
	mux.Mount("/api", rest.Handle(s.reserveSrv, s.accountSrv, s.userConfigs))
	return mux
}
