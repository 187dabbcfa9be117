package handler

import (
	"net/http"

	"github.com/mmynk/tripsplit/internal/service"
)

type adminLoginRequest struct {
	Passkey string `json:"passkey"`
}

func adminLoginHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminLoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		token, err := svc.AdminLogin(r.Context(), req.Passkey)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"token":  token,
		})
	}
}

func adminTripsHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overviews, stats, err := svc.AdminDashboard(r.Context())
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"trips": overviews,
			"stats": stats,
		})
	}
}
