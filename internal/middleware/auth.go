package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/tripsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ClaimsKey is the context key for storing the validated token claims.
const ClaimsKey contextKey = "claims"

// TripIDParam is the chi URL parameter holding the trip ID.
const TripIDParam = "tripID"

// GetClaims extracts the token claims from the context.
// Returns nil if not found.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// authenticate validates the bearer token and stores its claims in the request context.
// allow decides whether the claims grant access to the request.
func authenticate(tokens *auth.TokenManager, allow func(*http.Request, *auth.Claims) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				slog.Warn("auth: missing or malformed token",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				slog.Warn("auth: invalid or expired token",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				writeError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}

			if !allow(r, claims) {
				slog.Warn("auth: token does not grant access",
					"path", r.URL.Path,
					"trip_id", claims.TripID,
				)
				writeError(w, http.StatusForbidden, "access denied")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTripAccess requires a trip token matching the {tripID} URL parameter.
func RequireTripAccess(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return authenticate(tokens, func(r *http.Request, claims *auth.Claims) bool {
		return claims.CanAccessTrip(chi.URLParam(r, TripIDParam))
	})
}

// RequireAdmin requires an admin token.
func RequireAdmin(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return authenticate(tokens, func(_ *http.Request, claims *auth.Claims) bool {
		return claims.Admin
	})
}
