// Package search implements the offline medication search engine: a
// deterministic, rule-based relevance scorer over the in-memory catalog that
// resolves partial text queries into ranked candidates and decides, per
// match, whether the user most likely means the brand or the generic name.
package search

import (
	"sort"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
)

// MaxResults caps the result list. Ambiguous entries contribute two results,
// so fewer than MaxResults distinct medications can be shown.
const MaxResults = 10

// Compile-time check to ensure Resolver implements Searcher
var _ interfaces.Searcher = (*Resolver)(nil)

// Resolver scores catalog entries against free-text queries. It performs no
// I/O and has no failure modes: every degraded state yields empty results.
type Resolver struct {
	store interfaces.CatalogStore
}

// NewResolver creates a resolver reading from the given catalog store
func NewResolver(store interfaces.CatalogStore) *Resolver {
	return &Resolver{store: store}
}

// Search resolves query into a ranked, deduplicated, size-bounded result
// list. An empty or whitespace-only query returns an empty list before any
// catalog read; an uninitialized catalog also returns an empty list.
func (r *Resolver) Search(query string) []entities.SearchResult {
	normalized := entities.NormalizeText(query)
	if normalized == "" {
		return []entities.SearchResult{}
	}

	if !r.store.IsInitialized() {
		return []entities.SearchResult{}
	}

	medications := r.store.GetMedications()
	results := make([]entities.SearchResult, 0, MaxResults)

	for i := range medications {
		med := &medications[i]

		relevance := calculateRelevance(med, normalized)
		if relevance == 0 {
			continue
		}

		if isAmbiguousMatch(med, normalized) {
			// Surface both interpretations with the same rank
			results = append(results,
				entities.SearchResult{
					Medication:   *med,
					Intent:       entities.IntentBrand,
					MatchedBrand: matchedBrandName(med, normalized),
					Relevance:    relevance,
				},
				entities.SearchResult{
					Medication: *med,
					Intent:     entities.IntentGeneric,
					Relevance:  relevance,
				},
			)
			continue
		}

		result := entities.SearchResult{
			Medication: *med,
			Intent:     detectIntent(med, normalized),
			Relevance:  relevance,
		}
		if result.Intent == entities.IntentBrand {
			result.MatchedBrand = matchedBrandName(med, normalized)
		}
		results = append(results, result)
	}

	// Relevance descending, generic name ascending on ties. The stable sort
	// keeps brand-before-generic order for ambiguous pairs.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Relevance != results[j].Relevance {
			return results[i].Relevance > results[j].Relevance
		}
		return results[i].Medication.NameNormalized < results[j].Medication.NameNormalized
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	return results
}

// FindByExactName does a case-insensitive exact lookup against generic names
// only, never brands or aliases. Misses unconditionally while the catalog is
// uninitialized.
func (r *Resolver) FindByExactName(name string) (entities.Medication, bool) {
	if !r.store.IsInitialized() {
		return entities.Medication{}, false
	}

	normalized := entities.NormalizeText(name)
	if normalized == "" {
		return entities.Medication{}, false
	}

	med, found := r.store.GetNameIndex()[normalized]
	return med, found
}
