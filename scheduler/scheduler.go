// Package scheduler provides automated refresh scheduling for the FDA drugs
// API. It handles the daily review-link backfill, the guidance-feed refresh,
// and staleness monitoring, coordinating with the data container using
// dependency injection.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/openfda-labs/fdadrugs-api/interfaces"
	"github.com/openfda-labs/fdadrugs-api/logging"
	"github.com/openfda-labs/fdadrugs-api/reviews"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// ReviewRefresher backfills missing review URLs and returns the refreshed
// index.
type ReviewRefresher interface {
	Refresh(ctx context.Context) ([]reviews.Record, int, error)
}

// Scheduler handles dataset refreshes using dependency injection
type Scheduler struct {
	dataStore  interfaces.DataStore
	updater    ReviewRefresher
	webScraper interfaces.WebScraper
	scheduler  *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, updater ReviewRefresher, webScraper interfaces.WebScraper) *Scheduler {
	return &Scheduler{
		dataStore:  dataStore,
		updater:    updater,
		webScraper: webScraper,
		scheduler:  gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial refresh and schedules the daily ones
func (s *Scheduler) Start() error {
	// Initial load. The live openFDA endpoints work without the local
	// caches, so a failed first refresh degrades service instead of
	// blocking startup.
	if err := s.refresh(); err != nil {
		logging.Error("Initial data load failed, continuing with empty caches", "error", err)
	}

	// Refresh once a day, early morning US Eastern where FDA publishes
	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.refresh(); err != nil {
			logging.Error("Failed to refresh data", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule refreshes", "error", err)
		return fmt.Errorf("failed to schedule refreshes: %w", err)
	}

	s.scheduler.StartAsync()

	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// refresh backfills the review-link index and re-fetches the guidance feed.
// The two datasets update independently so one failing upstream doesn't
// block the other.
func (s *Scheduler) refresh() error {
	// Prevent concurrent refreshes
	if !s.dataStore.BeginUpdate() {
		logging.Info("Refresh already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info(fmt.Sprintf("Starting dataset refresh at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var firstErr error

	records, added, err := s.updater.Refresh(ctx)
	if err != nil {
		logging.Error("Failed to refresh review links", "error", err)
		firstErr = fmt.Errorf("review-link refresh failed: %w", err)
	} else {
		s.dataStore.UpdateReviews(records)
		logging.Info("Review-link index refreshed", "total", len(records), "added", added)
	}

	docs, err := s.webScraper.GuidanceDocuments(ctx)
	if err != nil {
		logging.Error("Failed to refresh guidance documents", "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("guidance refresh failed: %w", err)
		}
	} else {
		s.dataStore.UpdateGuidance(docs)
		logging.Info("Guidance cache refreshed", "total", len(docs))
	}

	elapsed := time.Since(start)
	logging.Info("Dataset refresh completed", "duration", elapsed.String())

	return firstErr
}

// startStalenessMonitoring warns when the daily refresh stops landing
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if time.Since(s.dataStore.GetGuidanceUpdated()) > 25*time.Hour {
				logging.Warn("Guidance cache hasn't been refreshed in over 25 hours")
			}
			if time.Since(s.dataStore.GetReviewsUpdated()) > 25*time.Hour {
				logging.Warn("Review-link index hasn't been refreshed in over 25 hours")
			}
		}
	}()
}
