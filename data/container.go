// Package data provides thread-safe storage for the locally cached
// datasets: the review-links index and the guidance-document feed. The
// DataContainer uses atomic operations so readers never block while the
// scheduler swaps in fresh data.
package data

import (
	"sync/atomic"
	"time"

	"github.com/openfda-labs/fdadrugs-api/interfaces"
	"github.com/openfda-labs/fdadrugs-api/logging"
	"github.com/openfda-labs/fdadrugs-api/reviews"
	"github.com/openfda-labs/fdadrugs-api/scraper"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the cached datasets behind atomic pointers for
// zero-downtime updates.
type DataContainer struct {
	reviewRecords   atomic.Value // []reviews.Record
	guidanceDocs    atomic.Value // []scraper.GuidanceDocument
	reviewsUpdated  atomic.Value // time.Time
	guidanceUpdated atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a DataContainer with empty datasets.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.reviewRecords.Store(make([]reviews.Record, 0))
	dc.guidanceDocs.Store(make([]scraper.GuidanceDocument, 0))
	dc.reviewsUpdated.Store(time.Time{})
	dc.guidanceUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetReviewRecords returns the current review-links index.
func (dc *DataContainer) GetReviewRecords() []reviews.Record {
	if v := dc.reviewRecords.Load(); v != nil {
		if records, ok := v.([]reviews.Record); ok {
			return records
		}
	}

	logging.Warn("Review records list is empty or invalid")
	return []reviews.Record{}
}

// GetGuidanceDocuments returns the cached guidance-document feed.
func (dc *DataContainer) GetGuidanceDocuments() []scraper.GuidanceDocument {
	if v := dc.guidanceDocs.Load(); v != nil {
		if docs, ok := v.([]scraper.GuidanceDocument); ok {
			return docs
		}
	}

	logging.Warn("Guidance documents list is empty or invalid")
	return []scraper.GuidanceDocument{}
}

// GetReviewsUpdated returns when the review index was last refreshed.
func (dc *DataContainer) GetReviewsUpdated() time.Time {
	if v := dc.reviewsUpdated.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the reviews updated value")
	return time.Time{}
}

// GetGuidanceUpdated returns when the guidance cache was last refreshed.
func (dc *DataContainer) GetGuidanceUpdated() time.Time {
	if v := dc.guidanceUpdated.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the guidance updated value")
	return time.Time{}
}

// IsUpdating returns true if a refresh is currently in progress.
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time.
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time.
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateReviews atomically replaces the review-links index.
func (dc *DataContainer) UpdateReviews(records []reviews.Record) {
	dc.reviewRecords.Store(records)
	dc.reviewsUpdated.Store(time.Now())
}

// UpdateGuidance atomically replaces the guidance cache.
func (dc *DataContainer) UpdateGuidance(docs []scraper.GuidanceDocument) {
	dc.guidanceDocs.Store(docs)
	dc.guidanceUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a refresh.
// Returns true if the refresh can proceed, false if another is in progress.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a refresh.
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
