package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openfda-labs/fdadrugs-api/config"
	"github.com/openfda-labs/fdadrugs-api/data"
	"github.com/openfda-labs/fdadrugs-api/fdaclient"
	"github.com/openfda-labs/fdadrugs-api/handlers"
	"github.com/openfda-labs/fdadrugs-api/health"
	"github.com/openfda-labs/fdadrugs-api/logging"
	"github.com/openfda-labs/fdadrugs-api/reviews"
	"github.com/openfda-labs/fdadrugs-api/scheduler"
	"github.com/openfda-labs/fdadrugs-api/scraper"
	"github.com/openfda-labs/fdadrugs-api/server"
)

func main() {
	// A missing .env is fine in prod where the environment is set directly
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogLevel, cfg.LogRetentionWeeks, cfg.MaxLogFileSize)

	// Wire the dependency graph
	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	client := fdaclient.New(cfg.FDAAPIKey)
	fetcher := scraper.NewFetcher(nil)
	updater := reviews.NewUpdater(client, fetcher, cfg.ReviewsCSVPath)

	handler := handlers.NewHTTPHandler(
		dataContainer,
		handlers.NewClientProvider(client),
		fetcher,
		health.NewHealthChecker(dataContainer),
	)

	sched := scheduler.NewScheduler(dataContainer, updater, fetcher)
	if err := sched.Start(); err != nil {
		logging.Error("Scheduler failed to start", "error", err.Error())
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err.Error())
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err.Error())
	}
}
