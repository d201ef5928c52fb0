package api

import (
	_ "parcels/docs"
	"parcels/internal/metrics"
	"parcels/internal/parcel/handler"
	"parcels/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler, sessionCfg session.Config) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.Middleware)

		r.Group(func(r chi.Router) {
			r.Use(session.Middleware(sessionCfg))
			r.Post("/packages", h.CreatePackage)
			r.Get("/packages", h.ListPackages)
			r.Get("/packages/{id}", h.GetPackage)
			r.Delete("/packages/{id}", h.DeletePackage)
			r.Post("/packages/{id}/company", h.AssignCompany)
		})

		r.Get("/package-types", h.ListPackageTypes)
		r.Get("/package-types/{id}", h.GetPackageType)

		r.Get("/companies", h.ListCompanies)
		r.Post("/companies", h.CreateCompany)
		r.Get("/companies/{id}", h.GetCompany)

		r.Post("/jobs/rate-refresh", h.TriggerRateRefresh)
		r.Post("/jobs/recalculation", h.TriggerRecalculation)
	})
	return router
}
