// Package health provides health checking functionality for the medication
// catalog service.
package health

import (
	"net/http"
	"time"

	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store interfaces.CatalogStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(store interfaces.CatalogStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		store: store,
	}
}

// HealthCheck returns catalog health data for the /health HTTP endpoint.
// The catalog is loaded once and immutable, so health reduces to three
// states: not yet initialized, initialized but empty (degraded load), and
// initialized with entries.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	initialized := h.store.IsInitialized()
	loading := h.store.IsLoading()
	entryCount := h.store.EntryCount()
	loadedAt := h.store.GetLoadedAt()

	switch {
	case !initialized:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case entryCount == 0:
		// Dataset failed to load; search degrades to no suggestions but the
		// service itself keeps answering
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"initialized": initialized,
		"loading":     loading,
		"entry_count": entryCount,
		"loaded_at":   loadedAt.Format(time.RFC3339),
	}

	return status, data, httpStatus
}
