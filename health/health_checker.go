// Package health provides health checking for the FDA drugs API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/openfda-labs/fdadrugs-api/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore: dataStore,
	}
}

// HealthCheck reports the state of the locally cached datasets. The openFDA
// endpoints proxy live queries, so health tracks only what this service
// owns: the review-links index and the guidance cache.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	reviewRecords := h.dataStore.GetReviewRecords()
	guidanceDocs := h.dataStore.GetGuidanceDocuments()
	reviewsUpdated := h.dataStore.GetReviewsUpdated()
	guidanceUpdated := h.dataStore.GetGuidanceUpdated()
	isUpdating := h.dataStore.IsUpdating()

	guidanceAge := time.Since(guidanceUpdated)

	// The review index loads from CSV at startup, so an empty index means a
	// broken deployment. The guidance cache fills on the first refresh and
	// goes stale when refreshes keep failing.
	switch {
	case len(reviewRecords) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case !guidanceUpdated.IsZero() && guidanceAge > 72*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case guidanceUpdated.IsZero() || guidanceAge > 36*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"review_records":     len(reviewRecords),
		"guidance_documents": len(guidanceDocs),
		"reviews_updated":    reviewsUpdated.Format(time.RFC3339),
		"guidance_updated":   guidanceUpdated.Format(time.RFC3339),
		"guidance_age_hours": math.Round(guidanceAge.Hours()*10) / 10,
		"is_updating":        isUpdating,
	}

	return status, data, httpStatus
}
