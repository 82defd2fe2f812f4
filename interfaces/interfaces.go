// Package interfaces defines core abstractions for the medication catalog
// service to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
)

// CatalogQualityReport summarizes data quality issues found while loading
// the bundled medication dataset.
type CatalogQualityReport struct {
	DroppedEntries        int      // Entries that failed structural validation
	DuplicateNames        []string // Generic names appearing more than once (first wins)
	EntriesWithoutBrands  int      // Entries with no brand records at all
	PlaceholderOnlyBrands int      // Entries whose every brand is a placeholder
	MalformedRecords      int      // Brand/alias records pruned for empty text or unknown type
}

// CatalogStore defines the contract for catalog storage. It provides
// thread-safe read access to the immutable in-memory medication catalog and
// the one-time swap performed at initialization.
type CatalogStore interface {
	// Read side
	GetMedications() []entities.Medication
	GetNameIndex() map[string]entities.Medication
	GetLoadedAt() time.Time
	IsInitialized() bool
	EntryCount() int

	// Initialization side
	SetCatalog(medications []entities.Medication, nameIndex map[string]entities.Medication)
	MarkInitialized()
	BeginLoad() bool
	EndLoad()
	IsLoading() bool
}

// CatalogParser defines the contract for reading and validating the bundled
// medication dataset.
type CatalogParser interface {
	// ParseCatalog reads the dataset, drops invalid entries, and returns the
	// surviving medications with a quality report.
	ParseCatalog() ([]entities.Medication, *CatalogQualityReport, error)
}

// Searcher defines the query surface of the relevance and intent resolver.
type Searcher interface {
	// Search resolves a free-text query into a ranked, bounded result list.
	// It never returns an error: degraded states yield an empty slice.
	Search(query string) []entities.SearchResult

	// FindByExactName does a case-insensitive exact lookup on generic names.
	FindByExactName(name string) (entities.Medication, bool)
}

// Scheduler defines the contract for background catalog monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current catalog health status
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// CatalogValidator defines the contract for validation operations on catalog
// entries and on user-supplied search input.
type CatalogValidator interface {
	// ValidateMedication checks if a catalog entry is structurally valid
	ValidateMedication(m *entities.Medication) error

	// SanitizeMedication prunes malformed brands and aliases from a valid
	// entry, returning the number of aliases dropped
	SanitizeMedication(m *entities.Medication) int

	// ReportCatalogQuality generates a quality report over loaded entries
	ReportCatalogQuality(medications []entities.Medication, dropped int) *CatalogQualityReport

	// ValidateInput validates user input strings arriving over HTTP
	ValidateInput(input string) error
}
