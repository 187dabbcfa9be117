package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/service"
)

type createTripRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

type enterTripRequest struct {
	EnteredID string `json:"entered_id"`
}

type memberRequest struct {
	Name string `json:"name"`
}

type addExpenseRequest struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	PaidBy      string   `json:"paid_by"`
	SplitAmong  []string `json:"split_among"`
}

func tripID(r *http.Request) string {
	return chi.URLParam(r, middleware.TripIDParam)
}

// pathParam returns an unescaped URL parameter. chi matches on r.URL.RawPath when it is
// set (the path holds escapes such as %2F or %25), so only then is the value still escaped.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if v, err := url.PathUnescape(value); err == nil {
		return v
	}
	return value
}

func createTripHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTripRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		trip, err := svc.CreateTrip(r.Context(), req.Name, req.Description, req.Members)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"status":        "success",
			"trip_id":       trip.ID,
			"authorize_url": "/api/trips/" + trip.ID + "/enter",
		})
	}
}

func enterTripHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enterTripRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		id := tripID(r)
		token, err := svc.EnterTrip(r.Context(), id, req.EnteredID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"trip_id": id,
			"token":   token,
		})
	}
}

func getTripHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := svc.GetTripDetails(r.Context(), tripID(r))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, details)
	}
}

func getSettlementsHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlements, total, err := svc.GetSettlements(r.Context(), tripID(r))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "success",
			"settlements": settlements,
			"total":       total,
		})
	}
}

func addMemberHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req memberRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		members, err := svc.AddMember(r.Context(), tripID(r), req.Name)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"members": members,
		})
	}
}

func deleteMemberHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.DeleteMember(r.Context(), tripID(r), pathParam(r, "name"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"members": members,
		})
	}
}

func addExpenseHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addExpenseRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		expense, err := svc.AddExpense(r.Context(), service.AddExpenseInput{
			TripID:      tripID(r),
			Description: req.Description,
			Amount:      req.Amount,
			PaidBy:      req.PaidBy,
			SplitAmong:  req.SplitAmong,
		})
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"status":  "success",
			"expense": expense,
		})
	}
}

func deleteExpenseHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteExpense(r.Context(), tripID(r), pathParam(r, "expenseID")); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, success)
	}
}

func deleteTripHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteTrip(r.Context(), tripID(r)); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, success)
	}
}

func summaryHandler(svc *service.TripService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overviews, err := svc.Summary(r.Context())
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"trips": overviews,
		})
	}
}
