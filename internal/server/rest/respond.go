package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/irccwatch/internal/shared"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body; a malformed body is answered with 400.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return false
	}
	return true
}

// writeError maps service errors to HTTP answers.
func (s *RESTServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *shared.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, shared.ErrorValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, shared.ErrorForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "Admin permission required"})
	case errors.Is(err, shared.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Already exists"})
	case errors.Is(err, shared.ErrorInvalidLoginPassword):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Incorrect email or password"})
	case errors.Is(err, shared.ErrorInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Token is invalid"})
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}
