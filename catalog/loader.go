package catalog

import (
	"time"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
	"github.com/marcantoine-malacquis/hydracat-meds-api/logging"
)

// Loader performs the one-time catalog load into a CatalogStore.
//
// Initialize never returns an error to the caller: a missing or corrupt
// dataset degrades to an empty catalog so the consuming application keeps
// working with manual medication entry instead of crashing or retry-looping.
type Loader struct {
	store  interfaces.CatalogStore
	parser interfaces.CatalogParser
}

// NewLoader creates a loader with injected dependencies
func NewLoader(store interfaces.CatalogStore, parser interfaces.CatalogParser) *Loader {
	return &Loader{
		store:  store,
		parser: parser,
	}
}

// Initialize loads the catalog exactly once. It is idempotent: once the
// store is initialized, later calls return immediately. Concurrent callers
// during the loading window lose the CAS race and return without a duplicate
// load; they observe uninitialized-catalog semantics until the winner
// finishes.
func (l *Loader) Initialize() {
	if l.store.IsInitialized() {
		return
	}

	if !l.store.BeginLoad() {
		logging.Info("Catalog load already in progress, skipping")
		return
	}
	defer l.store.EndLoad()

	start := time.Now()

	medications, report, err := l.parser.ParseCatalog()
	if err != nil {
		// Degrade to an empty catalog rather than failing initialization
		logging.Error("Catalog load failed, continuing with empty catalog", "error", err)
		l.store.SetCatalog([]entities.Medication{}, map[string]entities.Medication{})
		l.store.MarkInitialized()
		return
	}

	l.store.SetCatalog(medications, BuildNameIndex(medications))
	l.store.MarkInitialized()

	logQuality(report)
	logging.Info("Catalog loaded",
		"entry_count", len(medications),
		"duration", time.Since(start).String(),
	)
}

// logQuality writes quality report findings to the application log
func logQuality(report *interfaces.CatalogQualityReport) {
	if report == nil {
		return
	}
	if report.DroppedEntries > 0 {
		logging.Warn("Dropped invalid catalog entries", "count", report.DroppedEntries)
	}
	if len(report.DuplicateNames) > 0 {
		logging.Warn("Duplicate generic names in catalog", "names", report.DuplicateNames)
	}
	if report.PlaceholderOnlyBrands > 0 {
		logging.Warn("Entries with only placeholder brands", "count", report.PlaceholderOnlyBrands)
	}
	if report.MalformedRecords > 0 {
		logging.Warn("Pruned malformed brand and alias records", "count", report.MalformedRecords)
	}
}
