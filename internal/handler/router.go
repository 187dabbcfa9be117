// Package handler exposes the trip service as a JSON HTTP API.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/service"
)

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.TripService, tokens *auth.TokenManager, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/healthz", healthzHandler)
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/trips", createTripHandler(svc))
		r.Post("/trips/{tripID}/enter", enterTripHandler(svc))

		// Everything below needs a token for the trip in the URL
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTripAccess(tokens))

			r.Get("/trips/{tripID}", getTripHandler(svc))
			r.Delete("/trips/{tripID}", deleteTripHandler(svc))
			r.Get("/trips/{tripID}/settlements", getSettlementsHandler(svc))
			r.Post("/trips/{tripID}/members", addMemberHandler(svc))
			r.Delete("/trips/{tripID}/members/{name}", deleteMemberHandler(svc))
			r.Post("/trips/{tripID}/expenses", addExpenseHandler(svc))
			r.Delete("/trips/{tripID}/expenses/{expenseID}", deleteExpenseHandler(svc))
		})

		r.Get("/summary", summaryHandler(svc))

		r.Post("/admin/login", adminLoginHandler(svc))
		r.With(middleware.RequireAdmin(tokens)).Get("/admin/trips", adminTripsHandler(svc))
	})

	return r
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
