package catalog

import (
	"path/filepath"
	"testing"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
	"github.com/marcantoine-malacquis/hydracat-meds-api/logging"
)

func TestParseCatalogValid(t *testing.T) {
	logging.InitLogger("")

	parser := NewParser(filepath.Join("testdata", "valid.json"))

	medications, report, err := parser.ParseCatalog()
	if err != nil {
		t.Fatalf("ParseCatalog returned error: %v", err)
	}

	if len(medications) != 3 {
		t.Fatalf("parsed %d medications, want 3", len(medications))
	}

	if report.DroppedEntries != 0 {
		t.Errorf("dropped %d entries, want 0", report.DroppedEntries)
	}

	// Normalized fields must be pre-computed for every entry
	for _, med := range medications {
		if med.NameNormalized == "" {
			t.Errorf("entry %q has no normalized name", med.Name)
		}
		for _, b := range med.Brands {
			if b.NameNormalized == "" {
				t.Errorf("brand %q of %q has no normalized name", b.Name, med.Name)
			}
		}
	}

	// Entries with no brands are valid
	if medications[2].Name != "Calcitriol" {
		t.Errorf("medications[2] = %q, want Calcitriol", medications[2].Name)
	}
}

func TestParseCatalogDropsInvalidEntries(t *testing.T) {
	logging.InitLogger("")

	parser := NewParser(filepath.Join("testdata", "mixed.json"))

	medications, report, err := parser.ParseCatalog()
	if err != nil {
		t.Fatalf("ParseCatalog returned error: %v", err)
	}

	// Two empty-name entries dropped, two Benazepril entries kept
	if len(medications) != 2 {
		t.Fatalf("parsed %d medications, want 2", len(medications))
	}

	if report.DroppedEntries != 2 {
		t.Errorf("dropped %d entries, want 2", report.DroppedEntries)
	}

	// The empty brand and the malformed aliases were pruned, not fatal
	first := medications[0]
	if len(first.Brands) != 1 {
		t.Errorf("first entry has %d brands, want 1", len(first.Brands))
	}
	if len(first.SearchAliases) != 1 {
		t.Errorf("first entry has %d aliases, want 1", len(first.SearchAliases))
	}
	if report.MalformedRecords != 3 {
		t.Errorf("report.MalformedRecords = %d, want 3", report.MalformedRecords)
	}

	// Duplicate generic names survive loading; lookup resolves first-wins
	if len(report.DuplicateNames) != 1 {
		t.Errorf("report.DuplicateNames = %v, want one entry", report.DuplicateNames)
	}
}

func TestParseCatalogMissingFile(t *testing.T) {
	logging.InitLogger("")

	parser := NewParser(filepath.Join("testdata", "does-not-exist.json"))

	if _, _, err := parser.ParseCatalog(); err == nil {
		t.Error("expected error for missing dataset")
	}
}

func TestParseCatalogCorruptContainer(t *testing.T) {
	logging.InitLogger("")

	parser := NewParser(filepath.Join("testdata", "corrupt.json"))

	if _, _, err := parser.ParseCatalog(); err == nil {
		t.Error("expected error for corrupt dataset")
	}
}

func TestBuildNameIndex(t *testing.T) {
	first := entities.Medication{Name: "Benazepril"}
	first.Normalize()
	first.Brands = []entities.Brand{{Name: "Fortekor", IsReal: true}}

	duplicate := entities.Medication{Name: "BENAZEPRIL"}
	duplicate.Normalize()

	other := entities.Medication{Name: "Telmisartan"}
	other.Normalize()

	index := BuildNameIndex([]entities.Medication{first, duplicate, other})

	if len(index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(index))
	}

	// First entry wins on duplicate names
	if got := index["benazepril"]; len(got.Brands) != 1 {
		t.Errorf("duplicate name lookup returned the wrong entry: %+v", got)
	}

	if _, ok := index["telmisartan"]; !ok {
		t.Error("telmisartan missing from index")
	}
}
