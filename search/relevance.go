package search

import (
	"strings"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
)

// Relevance score tiers, in strict priority order. A higher tier always
// outranks a lower tier regardless of which field matched, and within a tier
// brands outrank the generic name, which outranks aliases. Brand exact match
// outranks generic exact match: a user who typed a full brand name is most
// likely browsing that specific product.
const (
	scoreBrandExactPrimary = 1100
	scoreBrandExact        = 1050
	scoreGenericExact      = 1000
	scoreAliasExact        = 900

	scoreBrandPrefixPrimary = 700
	scoreBrandPrefix        = 650
	scoreGenericPrefix      = 600
	scoreAliasPrefix        = 550

	scoreBrandContainsPrimary = 400
	scoreBrandContains        = 350
	scoreGenericContains      = 300
	scoreAliasContains        = 250

	scoreWordPrefix   = 150
	scoreWordContains = 100
)

// calculateRelevance scores med against the normalized query for ranking.
// Returns 0 when nothing matches; entries scoring 0 are excluded from
// results. Only real brands participate in brand matching.
func calculateRelevance(med *entities.Medication, query string) int {
	// Tier 1: exact matches
	if score := brandTier(med, query, exactMatch, scoreBrandExactPrimary, scoreBrandExact); score > 0 {
		return score
	}
	if med.NameNormalized == query {
		return scoreGenericExact
	}
	if aliasTier(med, query, exactMatch) {
		return scoreAliasExact
	}

	// Tier 2: starts-with
	if score := brandTier(med, query, prefixMatch, scoreBrandPrefixPrimary, scoreBrandPrefix); score > 0 {
		return score
	}
	if strings.HasPrefix(med.NameNormalized, query) {
		return scoreGenericPrefix
	}
	if aliasTier(med, query, prefixMatch) {
		return scoreAliasPrefix
	}

	// Tier 3: substring anywhere
	if score := brandTier(med, query, containsMatch, scoreBrandContainsPrimary, scoreBrandContains); score > 0 {
		return score
	}
	if strings.Contains(med.NameNormalized, query) {
		return scoreGenericContains
	}
	if aliasTier(med, query, containsMatch) {
		return scoreAliasContains
	}

	// Tier 4: word boundaries within the generic name
	words := splitWords(med.NameNormalized)
	for _, w := range words {
		if strings.HasPrefix(w, query) {
			return scoreWordPrefix
		}
	}
	for _, w := range words {
		if strings.Contains(w, query) {
			return scoreWordContains
		}
	}

	return 0
}

func exactMatch(text, query string) bool    { return text == query }
func prefixMatch(text, query string) bool   { return strings.HasPrefix(text, query) }
func containsMatch(text, query string) bool { return strings.Contains(text, query) }

// brandTier evaluates one tier's match predicate over the real brands of
// med. A primary brand match takes the primary score even when a non-primary
// brand matches too.
func brandTier(med *entities.Medication, query string, match func(string, string) bool, primaryScore, regularScore int) int {
	matched := 0
	for i := range med.Brands {
		b := &med.Brands[i]
		if !b.IsReal || b.NameNormalized == "" {
			continue
		}
		if !match(b.NameNormalized, query) {
			continue
		}
		if b.IsPrimary {
			return primaryScore
		}
		matched = regularScore
	}
	return matched
}

// aliasTier reports whether any alias of med satisfies the tier predicate.
// Relevance scoring treats brand and generic aliases alike; the intent
// scorer is the one that tells them apart.
func aliasTier(med *entities.Medication, query string, match func(string, string) bool) bool {
	for i := range med.SearchAliases {
		a := &med.SearchAliases[i]
		if a.TextNormalized == "" {
			continue
		}
		if match(a.TextNormalized, query) {
			return true
		}
	}
	return false
}

// splitWords splits a normalized name on whitespace and hyphens
func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-'
	})
}
