package scheduler

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog"
	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
	"github.com/marcantoine-malacquis/hydracat-meds-api/data"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
	"github.com/marcantoine-malacquis/hydracat-meds-api/metrics"
)

// stubParser returns canned parse results
type stubParser struct {
	medications []entities.Medication
	err         error
}

func (p *stubParser) ParseCatalog() ([]entities.Medication, *interfaces.CatalogQualityReport, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.medications, &interfaces.CatalogQualityReport{}, nil
}

func loadedStore(medications []entities.Medication) *data.CatalogContainer {
	for i := range medications {
		medications[i].Normalize()
	}
	store := data.NewCatalogContainer()
	store.SetCatalog(medications, catalog.BuildNameIndex(medications))
	store.MarkInitialized()
	return store
}

func TestStartAndStop(t *testing.T) {
	store := loadedStore([]entities.Medication{{Name: "Benazepril"}})
	s := NewScheduler(store, &stubParser{})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Stop()

	select {
	case <-s.done:
	default:
		t.Error("Stop should signal the monitoring goroutine to exit")
	}

	// Stop must be safe to call more than once
	s.Stop()
}

func TestPublishCatalogMetricsHealthy(t *testing.T) {
	store := loadedStore([]entities.Medication{
		{Name: "Benazepril"},
		{Name: "Telmisartan"},
	})
	s := NewScheduler(store, &stubParser{})

	s.publishCatalogMetrics()

	if got := testutil.ToFloat64(metrics.CatalogEntriesTotal); got != 2 {
		t.Errorf("CatalogEntriesTotal = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogDegraded); got != 0 {
		t.Errorf("CatalogDegraded = %v, want 0", got)
	}
}

func TestPublishCatalogMetricsDegraded(t *testing.T) {
	store := loadedStore([]entities.Medication{})
	s := NewScheduler(store, &stubParser{})

	s.publishCatalogMetrics()

	if got := testutil.ToFloat64(metrics.CatalogEntriesTotal); got != 0 {
		t.Errorf("CatalogEntriesTotal = %v, want 0", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogDegraded); got != 1 {
		t.Errorf("CatalogDegraded = %v, want 1", got)
	}
}

// Drift checks only log; these tests just make sure every branch runs
// without touching the loaded catalog.
func TestCheckCatalogDrift(t *testing.T) {
	loaded := []entities.Medication{{Name: "Benazepril"}, {Name: "Telmisartan"}}
	store := loadedStore(loaded)

	t.Run("no drift", func(t *testing.T) {
		same := []entities.Medication{{Name: "Benazepril"}, {Name: "Telmisartan"}}
		for i := range same {
			same[i].Normalize()
		}
		s := NewScheduler(store, &stubParser{medications: same})
		s.checkCatalogDrift()
	})

	t.Run("entry count drift", func(t *testing.T) {
		fewer := []entities.Medication{{Name: "Benazepril"}}
		for i := range fewer {
			fewer[i].Normalize()
		}
		s := NewScheduler(store, &stubParser{medications: fewer})
		s.checkCatalogDrift()
	})

	t.Run("name drift", func(t *testing.T) {
		renamed := []entities.Medication{{Name: "Benazepril"}, {Name: "Amlodipine"}}
		for i := range renamed {
			renamed[i].Normalize()
		}
		s := NewScheduler(store, &stubParser{medications: renamed})
		s.checkCatalogDrift()
	})

	t.Run("parse failure", func(t *testing.T) {
		s := NewScheduler(store, &stubParser{err: errors.New("dataset unreadable")})
		s.checkCatalogDrift()
	})

	if store.EntryCount() != 2 {
		t.Errorf("drift checks must not modify the loaded catalog, EntryCount = %d", store.EntryCount())
	}
}
