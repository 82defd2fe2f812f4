// Package entities defines the medication catalog data structures shared
// between the catalog loader and the search resolver.
package entities

// AliasType tells whether a search alias stands in for a brand name or for
// the generic name of a medication.
type AliasType string

const (
	AliasBrand   AliasType = "brand"
	AliasGeneric AliasType = "generic"
)

// Intent is the inferred display form for a search result: the user was
// most likely typing a brand name, or the generic name.
type Intent string

const (
	IntentBrand   Intent = "brand"
	IntentGeneric Intent = "generic"
)

// Brand is one commercial product name for a generic medication.
// IsReal distinguishes genuine marketed brands from placeholder rows in the
// source dataset; placeholders never participate in brand matching.
type Brand struct {
	Name      string `json:"name"`
	IsPrimary bool   `json:"isPrimary"`
	IsReal    bool   `json:"isReal"`

	// Pre-computed at load time: lowercased, trimmed, diacritics folded
	NameNormalized string `json:"-"`
}

// Alias is an informal or regional name not covered by the generic name or
// the brand list.
type Alias struct {
	Text string    `json:"text"`
	Type AliasType `json:"type"`

	TextNormalized string `json:"-"` // Pre-computed, same form as Brand.NameNormalized
}

// Medication is one canonical catalog entry: a generic name plus its known
// brands and search aliases. Entries are immutable after loading.
type Medication struct {
	Name          string  `json:"name"`
	Brands        []Brand `json:"brands"`
	SearchAliases []Alias `json:"searchAliases,omitempty"`

	NameNormalized string `json:"-"` // Pre-computed, see Normalize
}

// SearchResult is one ranked candidate for a query. An ambiguous query can
// produce two results for the same medication, one per intent.
type SearchResult struct {
	Medication   Medication `json:"medication"`
	Intent       Intent     `json:"intent"`
	MatchedBrand string     `json:"matchedBrand,omitempty"`
	Relevance    int        `json:"relevance"`
}

// RealBrands returns the marketed brands of m, skipping placeholders.
func (m *Medication) RealBrands() []Brand {
	brands := make([]Brand, 0, len(m.Brands))
	for _, b := range m.Brands {
		if b.IsReal {
			brands = append(brands, b)
		}
	}
	return brands
}
