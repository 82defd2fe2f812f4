package search

import (
	"testing"
	"time"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
)

// mockStore implements interfaces.CatalogStore and counts reads so tests can
// assert the resolver short-circuits without touching the catalog
type mockStore struct {
	medications []entities.Medication
	nameIndex   map[string]entities.Medication
	initialized bool
	reads       int
}

func (m *mockStore) GetMedications() []entities.Medication {
	m.reads++
	return m.medications
}

func (m *mockStore) GetNameIndex() map[string]entities.Medication {
	m.reads++
	if m.nameIndex == nil {
		return map[string]entities.Medication{}
	}
	return m.nameIndex
}

func (m *mockStore) GetLoadedAt() time.Time { return time.Time{} }
func (m *mockStore) IsInitialized() bool    { return m.initialized }
func (m *mockStore) EntryCount() int        { return len(m.medications) }
func (m *mockStore) SetCatalog(medications []entities.Medication, nameIndex map[string]entities.Medication) {
	m.medications = medications
	m.nameIndex = nameIndex
}
func (m *mockStore) MarkInitialized() { m.initialized = true }
func (m *mockStore) BeginLoad() bool  { return !m.initialized }
func (m *mockStore) EndLoad()         {}
func (m *mockStore) IsLoading() bool  { return false }

func newTestStore(medications ...entities.Medication) *mockStore {
	index := make(map[string]entities.Medication, len(medications))
	for i := range medications {
		if _, exists := index[medications[i].NameNormalized]; !exists {
			index[medications[i].NameNormalized] = medications[i]
		}
	}
	return &mockStore{
		medications: medications,
		nameIndex:   index,
		initialized: true,
	}
}

func TestSearchEmptyQueryTouchesNothing(t *testing.T) {
	store := newTestStore(
		buildMedication("Benazepril", []entities.Brand{{Name: "Fortekor", IsPrimary: true, IsReal: true}}, nil),
	)
	resolver := NewResolver(store)

	for _, query := range []string{"", "   ", "\t"} {
		results := resolver.Search(query)
		if len(results) != 0 {
			t.Errorf("Search(%q) returned %d results, want 0", query, len(results))
		}
	}

	if store.reads != 0 {
		t.Errorf("empty queries performed %d catalog reads, want 0", store.reads)
	}
}

func TestSearchUninitializedCatalog(t *testing.T) {
	store := &mockStore{initialized: false}
	resolver := NewResolver(store)

	results := resolver.Search("benazepril")
	if len(results) != 0 {
		t.Errorf("Search on uninitialized catalog returned %d results, want 0", len(results))
	}
}

func TestSearchNoMatches(t *testing.T) {
	store := newTestStore(
		buildMedication("Benazepril", []entities.Brand{{Name: "Fortekor", IsPrimary: true, IsReal: true}}, nil),
		buildMedication("Telmisartan", []entities.Brand{{Name: "Semintra", IsPrimary: true, IsReal: true}}, nil),
	)
	resolver := NewResolver(store)

	results := resolver.Search("xyz-nonexistent")
	if len(results) != 0 {
		t.Errorf("Search returned %d results, want 0", len(results))
	}
}

// The "mir" scenario: brand and generic of the same entry match in different
// prefix bands, so the match is not ambiguous and the brand form wins.
func TestSearchBrandOutranksGenericSameEntry(t *testing.T) {
	store := newTestStore(
		buildMedication("Mirtazapine", []entities.Brand{{Name: "Mirataz", IsPrimary: true, IsReal: true}}, nil),
	)
	resolver := NewResolver(store)

	results := resolver.Search("mir")
	if len(results) != 1 {
		t.Fatalf("Search(\"mir\") returned %d results, want 1", len(results))
	}

	r := results[0]
	if r.Intent != entities.IntentBrand {
		t.Errorf("intent = %q, want brand", r.Intent)
	}
	if r.MatchedBrand != "Mirataz" {
		t.Errorf("matchedBrand = %q, want Mirataz", r.MatchedBrand)
	}
	if r.Relevance != 700 {
		t.Errorf("relevance = %d, want 700", r.Relevance)
	}
}

// Ambiguous matches must surface both interpretations with the same rank.
// A non-primary brand and the generic name matching in the same prefix band
// is the ambiguous shape; a primary brand's prefix sits in a higher band.
func TestSearchAmbiguousEmitsBothIntents(t *testing.T) {
	store := newTestStore(
		buildMedication("Benazepril", []entities.Brand{{Name: "Benazecare", IsPrimary: false, IsReal: true}}, nil),
	)
	resolver := NewResolver(store)

	results := resolver.Search("bena")
	if len(results) != 2 {
		t.Fatalf("Search(\"bena\") returned %d results, want 2", len(results))
	}

	brand, generic := results[0], results[1]
	if brand.Intent != entities.IntentBrand {
		t.Errorf("first result intent = %q, want brand", brand.Intent)
	}
	if brand.MatchedBrand != "Benazecare" {
		t.Errorf("matchedBrand = %q, want Benazecare", brand.MatchedBrand)
	}
	if generic.Intent != entities.IntentGeneric {
		t.Errorf("second result intent = %q, want generic", generic.Intent)
	}
	if generic.MatchedBrand != "" {
		t.Errorf("generic result matchedBrand = %q, want empty", generic.MatchedBrand)
	}
	if brand.Relevance != generic.Relevance {
		t.Errorf("ambiguous pair relevance differs: %d vs %d", brand.Relevance, generic.Relevance)
	}
	if brand.Medication.Name != generic.Medication.Name {
		t.Errorf("ambiguous pair references different entries: %q vs %q",
			brand.Medication.Name, generic.Medication.Name)
	}
}

// Brand name identical to the generic name is never ambiguous
func TestSearchIdenticalBrandAndGenericSingleResult(t *testing.T) {
	store := newTestStore(
		buildMedication("Azodyl", []entities.Brand{{Name: "Azodyl", IsPrimary: true, IsReal: true}}, nil),
	)
	resolver := NewResolver(store)

	results := resolver.Search("azodyl")
	if len(results) != 1 {
		t.Fatalf("Search(\"azodyl\") returned %d results, want 1", len(results))
	}
}

func TestSearchSortingAndTieBreak(t *testing.T) {
	store := newTestStore(
		buildMedication("Omeprazole", []entities.Brand{{Name: "Prilosec", IsPrimary: true, IsReal: true}}, nil),
		buildMedication("Ondansetron", []entities.Brand{{Name: "Zofran", IsPrimary: true, IsReal: true}}, nil),
		buildMedication("Oclacitinib", nil, nil),
	)
	resolver := NewResolver(store)

	// All three generic names start with "o" and score 600; ties break
	// alphabetically on the generic name
	results := resolver.Search("o")
	if len(results) != 3 {
		t.Fatalf("Search(\"o\") returned %d results, want 3", len(results))
	}

	wantOrder := []string{"Oclacitinib", "Omeprazole", "Ondansetron"}
	for i, want := range wantOrder {
		if results[i].Medication.Name != want {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Medication.Name, want)
		}
	}

	for i := 1; i < len(results); i++ {
		if results[i-1].Relevance < results[i].Relevance {
			t.Errorf("results not sorted descending at index %d", i)
		}
	}
}

func TestSearchTruncatesAtMaxResults(t *testing.T) {
	medications := make([]entities.Medication, 0, 15)
	names := []string{
		"Alphadine", "Alphazole", "Alphapril", "Alphatan", "Alphacillin",
		"Alphamycin", "Alphasone", "Alphaxime", "Alphazepam", "Alphatriol",
		"Alphacaine", "Alphaphen", "Alphavir", "Alphamab", "Alphanib",
	}
	for _, name := range names {
		medications = append(medications, buildMedication(name, nil, nil))
	}

	resolver := NewResolver(newTestStore(medications...))

	results := resolver.Search("alpha")
	if len(results) != MaxResults {
		t.Errorf("Search returned %d results, want %d", len(results), MaxResults)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	store := newTestStore(
		buildMedication("Benazepril", []entities.Brand{{Name: "Fortekor", IsPrimary: true, IsReal: true}}, nil),
	)
	resolver := NewResolver(store)

	for _, query := range []string{"FORTEKOR", "Fortekor", "  fortekor  "} {
		results := resolver.Search(query)
		if len(results) != 1 {
			t.Errorf("Search(%q) returned %d results, want 1", query, len(results))
			continue
		}
		if results[0].Relevance != 1100 {
			t.Errorf("Search(%q) relevance = %d, want 1100", query, results[0].Relevance)
		}
	}
}

func TestFindByExactName(t *testing.T) {
	store := newTestStore(
		buildMedication("Benazepril", []entities.Brand{{Name: "Fortekor", IsPrimary: true, IsReal: true}}, nil),
	)
	resolver := NewResolver(store)

	t.Run("case-insensitive hit", func(t *testing.T) {
		med, found := resolver.FindByExactName("BENAZEPRIL")
		if !found {
			t.Fatal("expected a match")
		}
		if med.Name != "Benazepril" {
			t.Errorf("name = %q, want Benazepril", med.Name)
		}
	})

	t.Run("brand names do not match", func(t *testing.T) {
		if _, found := resolver.FindByExactName("Fortekor"); found {
			t.Error("brand name matched, want miss")
		}
	})

	t.Run("partial names do not match", func(t *testing.T) {
		if _, found := resolver.FindByExactName("benaz"); found {
			t.Error("partial name matched, want miss")
		}
	})

	t.Run("uninitialized store always misses", func(t *testing.T) {
		uninit := &mockStore{
			nameIndex:   map[string]entities.Medication{"benazepril": {Name: "Benazepril"}},
			initialized: false,
		}
		if _, found := NewResolver(uninit).FindByExactName("Benazepril"); found {
			t.Error("uninitialized catalog returned a match")
		}
	})
}
