// Package interfaces defines the core abstractions of the FDA drugs API
// so handlers, scheduler, and health checks can be tested against stubs.
package interfaces

import (
	"context"
	"time"

	"github.com/openfda-labs/fdadrugs-api/fdaclient"
	"github.com/openfda-labs/fdadrugs-api/reviews"
	"github.com/openfda-labs/fdadrugs-api/scraper"
)

// DataStore defines the contract for the locally cached datasets: the
// review-links index and the guidance-document feed. Implementations must
// be safe for concurrent readers during updates.
type DataStore interface {
	// Data retrieval methods
	GetReviewRecords() []reviews.Record
	GetGuidanceDocuments() []scraper.GuidanceDocument
	GetReviewsUpdated() time.Time
	GetGuidanceUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateReviews(records []reviews.Record)
	UpdateGuidance(docs []scraper.GuidanceDocument)
	BeginUpdate() bool
	EndUpdate()
}

// DrugSearcher defines the contract for openFDA queries. The label
// endpoints return raw openFDA records as maps; normalization happens in
// the processor package.
type DrugSearcher interface {
	SearchByName(ctx context.Context, drugName string, limit int, includeGenerics bool) ([]map[string]any, error)
	SearchByIndication(ctx context.Context, indication string, limit int, includeGenerics bool) ([]map[string]any, error)
	DrugBySetID(ctx context.Context, setID string) (map[string]any, error)
	SimilarDrugs(ctx context.Context, reference map[string]any, similarityType string, limit int) ([]map[string]any, error)
	ApplicationHistory(ctx context.Context, applicationNumber string) (map[string]any, error)
	ReviewInfoBySetID(ctx context.Context, setID string) (fdaclient.ReviewInfo, error)
}

// SearcherProvider hands out a DrugSearcher for a request, honoring a
// per-request API key override when one is supplied.
type SearcherProvider interface {
	SearcherFor(apiKey string) DrugSearcher
}

// WebScraper defines the contract for the FDA web-page scrapers.
type WebScraper interface {
	PatentInfoFor(ctx context.Context, applicationNumber, productNo string) (scraper.PatentInfo, error)
	AdvisoryCommitteeMaterials(ctx context.Context, query scraper.MaterialsQuery) ([]scraper.Meeting, error)
	GuidanceDocuments(ctx context.Context) ([]scraper.GuidanceDocument, error)
	ReviewPDFs(ctx context.Context, pageURL string) ([]string, error)
}

// Scheduler defines the contract for the background refresh jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health monitoring.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}
