// Package data provides thread-safe storage for the medication catalog.
// It includes the CatalogContainer struct with atomic operations so the
// one-time catalog load never blocks or races concurrent readers.
package data

import (
	"sync/atomic"
	"time"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
	"github.com/marcantoine-malacquis/hydracat-meds-api/logging"
)

// Compile-time check to ensure CatalogContainer implements CatalogStore
var _ interfaces.CatalogStore = (*CatalogContainer)(nil)

// CatalogContainer holds the loaded catalog behind atomic pointers.
// The catalog is written exactly once, at initialization; readers never lock.
type CatalogContainer struct {
	medications atomic.Value // []entities.Medication
	nameIndex   atomic.Value // map[string]entities.Medication, keyed by normalized name
	loadedAt    atomic.Value // time.Time
	initialized atomic.Bool
	loading     atomic.Bool
}

// NewCatalogContainer creates a new CatalogContainer with empty data
func NewCatalogContainer() *CatalogContainer {
	cc := &CatalogContainer{}
	cc.medications.Store(make([]entities.Medication, 0))
	cc.nameIndex.Store(make(map[string]entities.Medication))
	cc.loadedAt.Store(time.Time{})
	return cc
}

// Thread-safe getters with type check

// GetMedications returns the loaded medication entries
func (cc *CatalogContainer) GetMedications() []entities.Medication {
	if v := cc.medications.Load(); v != nil {
		if medications, ok := v.([]entities.Medication); ok {
			return medications
		}
	}

	logging.Warn("Medication list is empty or invalid")
	return []entities.Medication{}
}

// GetNameIndex returns the normalized-name index for O(1) exact lookups
func (cc *CatalogContainer) GetNameIndex() map[string]entities.Medication {
	if v := cc.nameIndex.Load(); v != nil {
		if nameIndex, ok := v.(map[string]entities.Medication); ok {
			return nameIndex
		}
	}

	logging.Warn("Name index is empty or invalid")
	return make(map[string]entities.Medication)
}

// GetLoadedAt returns the timestamp of the catalog load
func (cc *CatalogContainer) GetLoadedAt() time.Time {
	if v := cc.loadedAt.Load(); v != nil {
		if loadedAt, ok := v.(time.Time); ok {
			return loadedAt
		}
	}

	logging.Warn("Could not get the catalog load time")
	return time.Time{}
}

// IsInitialized reports whether initialization has completed. A degraded
// load (empty catalog) still counts as initialized.
func (cc *CatalogContainer) IsInitialized() bool {
	return cc.initialized.Load()
}

// IsLoading reports whether a catalog load is currently in progress
func (cc *CatalogContainer) IsLoading() bool {
	return cc.loading.Load()
}

// EntryCount returns the number of loaded catalog entries
func (cc *CatalogContainer) EntryCount() int {
	return len(cc.GetMedications())
}

// SetCatalog atomically swaps in the loaded catalog
func (cc *CatalogContainer) SetCatalog(medications []entities.Medication, nameIndex map[string]entities.Medication) {
	cc.medications.Store(medications)
	cc.nameIndex.Store(nameIndex)
	cc.loadedAt.Store(time.Now())
}

// MarkInitialized records that initialization finished, degraded or not
func (cc *CatalogContainer) MarkInitialized() {
	cc.initialized.Store(true)
}

// BeginLoad marks the start of the catalog load.
// Returns true if the load can proceed, false if another caller won the race
// or initialization already completed.
func (cc *CatalogContainer) BeginLoad() bool {
	if cc.initialized.Load() {
		return false
	}
	return cc.loading.CompareAndSwap(false, true)
}

// EndLoad marks the end of the catalog load
func (cc *CatalogContainer) EndLoad() {
	cc.loading.Store(false)
}
