package entities

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so accented dataset text matches
// plain ASCII queries ("Bénazépril" -> "benazepril" after lowering).
// Compiled once at package initialization and reused for all normalizations.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText lowercases, trims and accent-folds s. All catalog matching
// happens over this form, on both the query and the catalog side.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}

	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Fold failures keep the lowered form, matching just loses accent
		// insensitivity for this string
		return s
	}
	return folded
}

// Normalize fills the pre-computed normalized fields of m and its brands and
// aliases. The loader calls this once per entry so the query path never
// re-normalizes catalog text.
func (m *Medication) Normalize() {
	m.NameNormalized = NormalizeText(m.Name)
	for i := range m.Brands {
		m.Brands[i].NameNormalized = NormalizeText(m.Brands[i].Name)
	}
	for i := range m.SearchAliases {
		m.SearchAliases[i].TextNormalized = NormalizeText(m.SearchAliases[i].Text)
	}
}
