package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/atlashaul/portal/internal/shared/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondAppError maps an application error to an HTTP status code. Upstream
// failures keep the backend's message so the portal can show it inline.
func respondAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest:
		status = http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		status = http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeRateLimited:
		status = http.StatusServiceUnavailable
	case apperrors.ErrCodeUpstream, apperrors.ErrCodeMalformedRecord:
		status = http.StatusBadGateway
	}

	respondWithError(w, status, appErr.Message)
}
