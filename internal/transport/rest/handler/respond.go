package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medipred/internal/risk"
	"medipred/internal/service"
)

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields []risk.FieldError `json:"fields"`
}

// writeServiceError maps service and scoring errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *risk.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
