package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkovac/refuge/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// jsonValidationError writes a 400 with the per-field error map as the body,
// e.g. {"offered_items": ["..."]}. Returns false if err is not a validation
// error so the caller can fall through to its generic handling.
func jsonValidationError(w http.ResponseWriter, err error) bool {
	var fe model.FieldErrors
	if !errors.As(err, &fe) {
		return false
	}
	jsonResponse(w, http.StatusBadRequest, fe)
	return true
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
