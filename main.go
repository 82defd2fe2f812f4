// The hydracat-meds-api service backs the HydraCat app's medication entry
// flow: it loads the bundled CKD medication catalog once at startup and
// serves offline-style search, exact lookup, and catalog listing over HTTP.
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
	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog"
	"github.com/marcantoine-malacquis/hydracat-meds-api/config"
	"github.com/marcantoine-malacquis/hydracat-meds-api/data"
	"github.com/marcantoine-malacquis/hydracat-meds-api/health"
	"github.com/marcantoine-malacquis/hydracat-meds-api/logging"
	"github.com/marcantoine-malacquis/hydracat-meds-api/scheduler"
	"github.com/marcantoine-malacquis/hydracat-meds-api/search"
	"github.com/marcantoine-malacquis/hydracat-meds-api/server"
	"github.com/marcantoine-malacquis/hydracat-meds-api/validation"
	_ "net/http/pprof"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs")

	container := data.NewCatalogContainer()
	parser := catalog.NewParser(cfg.CatalogPath)

	// One-time catalog load; a bad dataset degrades to empty suggestions
	// instead of aborting startup
	loader := catalog.NewLoader(container, parser)
	loader.Initialize()

	sched := scheduler.NewScheduler(container, parser)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start catalog monitoring", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	resolver := search.NewResolver(container)
	checker := health.NewHealthChecker(container)
	validator := validation.NewCatalogValidator()

	srv := server.NewServer(cfg, container, resolver, checker, validator)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
	}
}
