package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/store"
	"rentalops-backend/internal/workflow"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Step  string `json:"step,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("response encoding failed", "error", err)
		}
	}
}

// writeError maps the error taxonomy onto HTTP statuses: missing records are
// 404, rejected input 400, rule conflicts 409, backend trouble 502.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		deleteErr     *service.DeleteFailedError
		stepErr       *workflow.StepError
		storeErr      *store.StoreError
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Message, Field: validationErr.Field})
	case errors.As(err, &stepErr):
		// A validation failure inside the saga is still the client's fault.
		if errors.As(stepErr.Err, &validationErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: validationErr.Message, Field: validationErr.Field, Step: stepErr.Step})
			return
		}
		writeJSON(w, http.StatusConflict, errorResponse{Error: stepErr.Error(), Step: stepErr.Step})
	case errors.As(err, &deleteErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: deleteErr.Error()})
	case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.As(err, &storeErr):
		logger.Error("store failure", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "store unavailable"})
	default:
		logger.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON payload")
	}
	return nil
}
