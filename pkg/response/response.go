// Package response provides JSON response helpers for HTTP handlers.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Message string `json:"message"`
}

// SuccessResponse writes data as a JSON body with the given status code.
func SuccessResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// ErrorResponse writes a {"message": ...} JSON body with the given status code.
func ErrorResponse(w http.ResponseWriter, code int, message string) {
	SuccessResponse(w, code, errorBody{Message: message})
}
