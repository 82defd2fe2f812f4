package search

import (
	"strings"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
)

// Match score tiers for intent and ambiguity comparison. These deliberately
// differ from the relevance tiers: relevance ranks entries against each
// other, while match scores compare a single entry's brand side against its
// generic side. The two scales are not interchangeable.
const (
	matchExact         = 1000
	matchPrefixPrimary = 700
	matchPrefix        = 600
	matchContains      = 300
	matchWordPrefix    = 150
	matchWordContains  = 100
)

// matchScore rates how well one normalized text matches the query
func matchScore(text, query string) int {
	if text == "" {
		return 0
	}
	if text == query {
		return matchExact
	}
	if strings.HasPrefix(text, query) {
		return matchPrefix
	}
	if strings.Contains(text, query) {
		return matchContains
	}

	words := splitWords(text)
	for _, w := range words {
		if strings.HasPrefix(w, query) {
			return matchWordPrefix
		}
	}
	for _, w := range words {
		if strings.Contains(w, query) {
			return matchWordContains
		}
	}
	return 0
}

// brandMatchScore rates one brand against the query. A primary brand's
// starts-with match sits in its own band above a generic starts-with, so an
// entry like Mirtazapine/Mirataz resolves to a single brand-intent result
// instead of a spurious tie.
func brandMatchScore(b *entities.Brand, query string) int {
	s := matchScore(b.NameNormalized, query)
	if s == matchPrefix && b.IsPrimary {
		return matchPrefixPrimary
	}
	return s
}

// bestBrandMatch returns the best-scoring real brand of med for query.
// Ties keep the first brand in catalog order. ok is false when med has no
// real brands at all.
func bestBrandMatch(med *entities.Medication, query string) (brand entities.Brand, score int, ok bool) {
	for i := range med.Brands {
		b := med.Brands[i]
		if !b.IsReal {
			continue
		}
		if !ok {
			brand, score, ok = b, brandMatchScore(&b, query), true
			continue
		}
		if s := brandMatchScore(&b, query); s > score {
			brand, score = b, s
		}
	}
	return brand, score, ok
}

// bestAliasMatch returns the best match score among aliases of the given type
func bestAliasMatch(med *entities.Medication, query string, aliasType entities.AliasType) int {
	best := 0
	for i := range med.SearchAliases {
		a := &med.SearchAliases[i]
		if a.Type != aliasType {
			continue
		}
		if s := matchScore(a.TextNormalized, query); s > best {
			best = s
		}
	}
	return best
}

// brandVsGeneric computes the two sides compared by intent detection and
// ambiguity detection: the best brand-related score (brand names and brand
// aliases) and the best generic-related score (generic name and generic
// aliases).
func brandVsGeneric(med *entities.Medication, query string) (bestBrandRelated, bestGenericRelated int) {
	_, brandNameScore, _ := bestBrandMatch(med, query)

	bestBrandRelated = brandNameScore
	if s := bestAliasMatch(med, query, entities.AliasBrand); s > bestBrandRelated {
		bestBrandRelated = s
	}

	bestGenericRelated = matchScore(med.NameNormalized, query)
	if s := bestAliasMatch(med, query, entities.AliasGeneric); s > bestGenericRelated {
		bestGenericRelated = s
	}

	return bestBrandRelated, bestGenericRelated
}

// detectIntent decides which name form to display for a match. Generic is
// the default: brand intent needs a strictly better brand-side score.
func detectIntent(med *entities.Medication, query string) entities.Intent {
	bestBrandRelated, bestGenericRelated := brandVsGeneric(med, query)
	if bestBrandRelated > bestGenericRelated {
		return entities.IntentBrand
	}
	return entities.IntentGeneric
}

// isAmbiguousMatch decides whether both a brand-intent and a generic-intent
// result should be shown for med. True only when the entry has a real brand,
// both sides match equally well with a non-zero score, and the best-matching
// brand name is not literally the generic name (showing both forms of the
// same word would be redundant).
func isAmbiguousMatch(med *entities.Medication, query string) bool {
	bestBrand, _, ok := bestBrandMatch(med, query)
	if !ok {
		return false
	}

	bestBrandRelated, bestGenericRelated := brandVsGeneric(med, query)
	if bestBrandRelated != bestGenericRelated || bestBrandRelated == 0 {
		return false
	}

	return !strings.EqualFold(bestBrand.Name, med.Name)
}

// matchedBrandName picks the brand to surface on a brand-intent result:
// the first real brand whose name contains the query, else the first real
// brand, else (entry has no real brands) the first brand of any kind.
func matchedBrandName(med *entities.Medication, query string) string {
	var firstReal string
	for i := range med.Brands {
		b := &med.Brands[i]
		if !b.IsReal {
			continue
		}
		if firstReal == "" {
			firstReal = b.Name
		}
		if strings.Contains(b.NameNormalized, query) {
			return b.Name
		}
	}
	if firstReal != "" {
		return firstReal
	}
	if len(med.Brands) > 0 {
		return med.Brands[0].Name
	}
	return ""
}
