package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/acadpages/homepage-be/internal/auth"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, map[string]string{"error": msg, "code": code})
}

// respondAuthError maps a login failure to its 4xx response. Anything that
// is not a *auth.Reason is an infrastructure fault.
func respondAuthError(w http.ResponseWriter, err error) {
	var reason *auth.Reason
	if errors.As(err, &reason) {
		respondError(w, reason.Status, reason.Code, reason.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
