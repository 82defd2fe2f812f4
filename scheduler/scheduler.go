// Package scheduler provides background monitoring for the medication
// catalog service. The catalog itself is loaded once and immutable, so the
// scheduler never swaps data: it re-parses the bundled dataset on a daily
// cadence to detect drift between the file on disk and the loaded catalog
// (an app update replaced the asset, a restart is needed) and keeps an eye
// on degraded loads.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
	"github.com/marcantoine-malacquis/hydracat-meds-api/logging"
	"github.com/marcantoine-malacquis/hydracat-meds-api/metrics"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles catalog monitoring using dependency injection
type Scheduler struct {
	store     interfaces.CatalogStore
	parser    interfaces.CatalogParser
	scheduler *gocron.Scheduler
	done      chan struct{}
	stopOnce  sync.Once
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(store interfaces.CatalogStore, parser interfaces.CatalogParser) *Scheduler {
	return &Scheduler{
		store:     store,
		parser:    parser,
		scheduler: gocron.NewScheduler(time.Local),
		done:      make(chan struct{}),
	}
}

// Start publishes catalog metrics and schedules the daily drift check
func (s *Scheduler) Start() error {
	s.publishCatalogMetrics()

	// Check for dataset drift once a day, off the morning peak
	_, err := s.scheduler.Every(1).Days().At("04:30").Do(func() {
		s.checkCatalogDrift()
	})

	if err != nil {
		logging.Error("Failed to schedule drift checks", "error", err)
		return fmt.Errorf("failed to schedule drift checks: %w", err)
	}

	s.scheduler.StartAsync()

	s.startDegradedMonitoring()

	return nil
}

// Stop stops the scheduled jobs and the degraded-catalog monitor
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.scheduler.Stop()
}

// publishCatalogMetrics feeds the catalog gauges from the loaded store
func (s *Scheduler) publishCatalogMetrics() {
	entryCount := s.store.EntryCount()
	metrics.CatalogEntriesTotal.Set(float64(entryCount))

	if s.store.IsInitialized() && entryCount == 0 {
		metrics.CatalogDegraded.Set(1)
	} else {
		metrics.CatalogDegraded.Set(0)
	}
}

// checkCatalogDrift re-parses the bundled dataset and compares it to the
// loaded catalog. The catalog stays immutable either way; drift only means
// the next restart will serve different data, which is worth a log line.
func (s *Scheduler) checkCatalogDrift() {
	current, _, err := s.parser.ParseCatalog()
	if err != nil {
		logging.Warn("Drift check could not parse dataset", "error", err)
		return
	}

	loaded := s.store.GetMedications()
	if len(current) != len(loaded) {
		logging.Warn("Catalog dataset drifted from loaded catalog",
			"loaded_entries", len(loaded),
			"dataset_entries", len(current),
			"loaded_at", s.store.GetLoadedAt().Format(time.RFC3339),
		)
		return
	}

	for i := range current {
		if current[i].NameNormalized != loaded[i].NameNormalized {
			logging.Warn("Catalog dataset drifted from loaded catalog",
				"first_changed_entry", current[i].Name,
				"loaded_at", s.store.GetLoadedAt().Format(time.RFC3339),
			)
			return
		}
	}
}

// startDegradedMonitoring periodically re-logs a degraded catalog so the
// condition does not vanish into a single startup line. The goroutine exits
// when Stop closes the done channel.
func (s *Scheduler) startDegradedMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				if s.store.IsInitialized() && s.store.EntryCount() == 0 {
					logging.Warn("Catalog is still empty, suggestions are disabled until restart")
				}
			}
		}
	}()
}
