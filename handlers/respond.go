// Package handlers provides HTTP request handlers for the FDA drugs API
// endpoints: openFDA label search, application histories, Orange Book
// patents, advisory-committee materials, guidance documents, review links,
// and health checks.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/openfda-labs/fdadrugs-api/logging"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error envelope
func RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"success": false,
		"error":   message,
		"code":    code,
	}
	RespondWithJSON(w, code, errorResponse)
}
