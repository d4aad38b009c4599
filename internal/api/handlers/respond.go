package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR [handlers.respondJSON] encode failed: %v", err)
	}
}

// respondError writes the failure envelope {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain error kinds onto HTTP statuses:
// missing things are 404, duplicates and state conflicts 409, bad input
// 400, bad credentials 401.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNoActiveSession),
		errors.Is(err, domain.ErrRequestNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrSessionActive),
		errors.Is(err, domain.ErrAlreadyFriends),
		errors.Is(err, domain.ErrRequestPending):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrSelfFriendRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("ERROR [handlers] unexpected: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
