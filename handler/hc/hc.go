package hc

import (
	"net/http"
	"time"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request
func Handle(ver string, reserves core.IReserveStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, reserves))
	return r
}

func handle(version string, reserves core.IReserveStore) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := reserves.Count(r.Context())
		if err != nil {
			render.Error(w, http.StatusServiceUnavailable, int(core.ErrUnknown), err)
			return
		}

		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":   uptime.String(),
			"version":  version,
			"reserves": count,
		})
	}
}
