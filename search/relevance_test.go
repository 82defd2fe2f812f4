package search

import (
	"testing"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
)

// buildMedication builds a normalized entry the way the loader would
func buildMedication(name string, brands []entities.Brand, aliases []entities.Alias) entities.Medication {
	med := entities.Medication{
		Name:          name,
		Brands:        brands,
		SearchAliases: aliases,
	}
	med.Normalize()
	return med
}

func TestCalculateRelevanceExactTier(t *testing.T) {
	med := buildMedication("Mirtazapine",
		[]entities.Brand{
			{Name: "Mirataz", IsPrimary: true, IsReal: true},
			{Name: "Remeron", IsPrimary: false, IsReal: true},
		},
		[]entities.Alias{
			{Text: "mirtaz", Type: entities.AliasGeneric},
		},
	)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"primary brand exact", "mirataz", 1100},
		{"non-primary brand exact", "remeron", 1050},
		{"generic exact", "mirtazapine", 1000},
		{"alias exact", "mirtaz", 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateRelevance(&med, tt.query)
			if got != tt.want {
				t.Errorf("calculateRelevance(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestCalculateRelevanceLowerTiers(t *testing.T) {
	med := buildMedication("Lanthanum carbonate",
		[]entities.Brand{
			{Name: "Fosrenol", IsPrimary: true, IsReal: true},
			{Name: "Renalzin", IsPrimary: false, IsReal: true},
		},
		[]entities.Alias{
			{Text: "lanthanum binder", Type: entities.AliasGeneric},
		},
	)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"primary brand prefix", "fosr", 700},
		{"non-primary brand prefix", "renal", 650},
		{"generic prefix", "lanth", 600},
		{"primary brand contains", "srenol", 400},
		{"non-primary brand contains", "alzin", 350},
		{"generic contains", "num carb", 300},
		{"alias contains", "um bind", 250},
		// A word-boundary match inside the generic name is already a generic
		// substring, so the contains tier catches it first
		{"second word prefix caught by contains tier", "carb", 300},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateRelevance(&med, tt.query)
			if got != tt.want {
				t.Errorf("calculateRelevance(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

// An exact generic match must outrank any starts-with match, and an exact
// brand match outranks an exact generic match.
func TestCalculateRelevanceTierPrecedence(t *testing.T) {
	exactGeneric := buildMedication("Gabapentin", nil, nil)
	prefixGeneric := buildMedication("Gabapentinoid", nil, nil)

	if got := calculateRelevance(&exactGeneric, "gabapentin"); got < 900 {
		t.Errorf("exact generic match scored %d, want >= 900", got)
	}

	exactScore := calculateRelevance(&exactGeneric, "gabapentin")
	prefixScore := calculateRelevance(&prefixGeneric, "gabapentin")
	if exactScore <= prefixScore {
		t.Errorf("exact tier (%d) should outrank prefix tier (%d)", exactScore, prefixScore)
	}

	brandExact := buildMedication("Maropitant",
		[]entities.Brand{{Name: "Cerenia", IsPrimary: true, IsReal: true}}, nil)
	genericExact := buildMedication("Cerenia", nil, nil)

	if got := calculateRelevance(&brandExact, "cerenia"); got != 1100 {
		t.Errorf("brand exact = %d, want 1100", got)
	}
	if got := calculateRelevance(&genericExact, "cerenia"); got != 1000 {
		t.Errorf("generic exact = %d, want 1000", got)
	}
}

// Placeholder brands must never participate in brand matching
func TestCalculateRelevanceIgnoresPlaceholderBrands(t *testing.T) {
	med := buildMedication("Prednisolone",
		[]entities.Brand{
			{Name: "compounded", IsPrimary: false, IsReal: false},
		}, nil)

	if got := calculateRelevance(&med, "compounded"); got != 0 {
		t.Errorf("placeholder brand matched with score %d, want 0", got)
	}

	if got := calculateRelevance(&med, "prednisolone"); got != 1000 {
		t.Errorf("generic exact = %d, want 1000", got)
	}
}

// A higher tier for any field must win over a lower tier for another field:
// a brand prefix match (700) beats the generic name's contains band even
// though brands are checked first in every tier.
func TestCalculateRelevanceNoTierFallthrough(t *testing.T) {
	// Query is a prefix of the brand and a substring of the generic name
	med := buildMedication("Xylaratol",
		[]entities.Brand{{Name: "Arato", IsPrimary: true, IsReal: true}}, nil)

	if got := calculateRelevance(&med, "arat"); got != 700 {
		t.Errorf("calculateRelevance = %d, want 700 (brand prefix outranks generic contains)", got)
	}
}

func TestCalculateRelevanceAccentFolding(t *testing.T) {
	med := buildMedication("Bénazépril",
		[]entities.Brand{{Name: "Fortekor", IsPrimary: true, IsReal: true}}, nil)

	if got := calculateRelevance(&med, "benazepril"); got != 1000 {
		t.Errorf("accented generic exact = %d, want 1000", got)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"aluminium hydroxide", []string{"aluminium", "hydroxide"}},
		{"phos-bind", []string{"phos", "bind"}},
		{"single", []string{"single"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitWords(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitWords(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitWords(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}
