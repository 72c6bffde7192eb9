package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		payload      any
		expectedJSON string
	}{
		{
			name:         "map payload",
			code:         http.StatusOK,
			payload:      map[string]string{"message": "success"},
			expectedJSON: `{"message":"success"}`,
		},
		{
			name:         "nil payload",
			code:         http.StatusOK,
			payload:      nil,
			expectedJSON: `null`,
		},
		{
			name:         "array payload",
			code:         http.StatusOK,
			payload:      []string{"item1", "item2"},
			expectedJSON: `["item1","item2"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			RespondWithJSON(rr, tt.code, tt.payload)

			if rr.Code != tt.code {
				t.Errorf("Expected status %d, got %d", tt.code, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("Expected Content-Type application/json; charset=utf-8, got %s", ct)
			}
			if rr.Header().Get("Last-Modified") == "" {
				t.Error("Expected Last-Modified header to be set")
			}
			if !strings.Contains(rr.Body.String(), tt.expectedJSON) {
				t.Errorf("Expected body to contain %s, got %s", tt.expectedJSON, rr.Body.String())
			}
		})
	}
}

func TestRespondWithError(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondWithError(rr, http.StatusBadRequest, "Invalid input")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != "Invalid input" {
		t.Errorf("error = %v, want Invalid input", body["error"])
	}
	if body["code"] != float64(http.StatusBadRequest) {
		t.Errorf("code = %v, want 400", body["code"])
	}
}
