package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// getPathID extracts the named path parameter as is. The value is only
// checked for presence; whether it names a stored task is up to the store.
func getPathID(r *http.Request, paramName string) (string, error) {
	id := chi.URLParam(r, paramName)
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	return id, nil
}

// handlePathID writes an error response and returns false when the path
// parameter is missing.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (string, bool) {
	id, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("missing path parameter", slog.String("param_name", paramName))
		HandleAPIError(w, r, err, "")
		return "", false
	}
	return id, true
}
