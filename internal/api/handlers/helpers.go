// Handler helper functions shared by all endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matiasleandrokruk/promptrelay/internal/domain/audit"
)

const (
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"

	// maxBodyBytes bounds JSON request bodies.
	maxBodyBytes = 1 << 20
)

var errEmptyBody = errors.New("empty request body")

// decodeJSON decodes the request body into dst. An absent body yields errEmptyBody.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set(headerContentType, mimeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response: {"error": message}.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// parseLimit reads ?limit=N, clamped to [1, audit.MaxListLimit].
func parseLimit(r *http.Request) int {
	lim, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || lim <= 0 {
		return audit.DefaultListLimit
	}
	if lim > audit.MaxListLimit {
		return audit.MaxListLimit
	}
	return lim
}
