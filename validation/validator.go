// Package validation provides data validation for the medication catalog
// and for user-supplied search input.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
)

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all validations
var (
	// Input validation: alphanumeric + accented latin + safe punctuation.
	// Medication names carry accents (Bénazépril, Sémintra), so both cases
	// of the accented range stay in the allowed set.
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'àâäéèêëïîôöùûüÿçÀÂÄÉÈÊËÏÎÔÖÙÛÜŸÇ]+$`)

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	// strings.Contains is 5-10x faster than regex for these patterns
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// maxNameLength caps generic, brand and alias text. Anything longer is not a
// plausible medication name and gets dropped.
const maxNameLength = 200

// CatalogValidatorImpl implements the interfaces.CatalogValidator interface
type CatalogValidatorImpl struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() interfaces.CatalogValidator {
	return &CatalogValidatorImpl{}
}

// ValidateMedication checks if a catalog entry is structurally valid.
// Invalid entries are dropped at load time and never reach the resolver.
func (v *CatalogValidatorImpl) ValidateMedication(m *entities.Medication) error {
	if m == nil {
		return fmt.Errorf("medication is nil")
	}

	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("empty generic name")
	}

	if len(m.Name) > maxNameLength {
		return fmt.Errorf("generic name too long: %d characters", len(m.Name))
	}

	return nil
}

// SanitizeMedication prunes malformed brand and alias records from an
// otherwise valid entry, so a single bad sub-record does not cost the whole
// entry. Returns the number of records dropped.
func (v *CatalogValidatorImpl) SanitizeMedication(m *entities.Medication) int {
	dropped := 0

	brands := m.Brands[:0]
	for _, b := range m.Brands {
		if strings.TrimSpace(b.Name) == "" || len(b.Name) > maxNameLength {
			dropped++
			continue
		}
		brands = append(brands, b)
	}
	m.Brands = brands

	aliases := m.SearchAliases[:0]
	for _, a := range m.SearchAliases {
		if strings.TrimSpace(a.Text) == "" || len(a.Text) > maxNameLength {
			dropped++
			continue
		}
		if a.Type != entities.AliasBrand && a.Type != entities.AliasGeneric {
			dropped++
			continue
		}
		aliases = append(aliases, a)
	}
	m.SearchAliases = aliases

	return dropped
}

// ReportCatalogQuality generates a quality report over the loaded entries.
// Findings are informational: the load already happened, this only feeds logs.
func (v *CatalogValidatorImpl) ReportCatalogQuality(medications []entities.Medication, dropped int) *interfaces.CatalogQualityReport {
	report := &interfaces.CatalogQualityReport{
		DroppedEntries: dropped,
		DuplicateNames: []string{},
	}

	// Duplicate generic names (case-insensitive, first wins at lookup time)
	seen := make(map[string]bool)
	for i := range medications {
		key := medications[i].NameNormalized
		if key == "" {
			key = strings.ToLower(medications[i].Name)
		}
		if seen[key] {
			report.DuplicateNames = append(report.DuplicateNames, medications[i].Name)
		}
		seen[key] = true
	}

	for i := range medications {
		if len(medications[i].Brands) == 0 {
			report.EntriesWithoutBrands++
			continue
		}
		if len(medications[i].RealBrands()) == 0 {
			report.PlaceholderOnlyBrands++
		}
	}

	return report
}

// ValidateInput validates user input strings with enhanced security.
// This guards the HTTP surface only: the resolver itself never errors on any
// input.
func (v *CatalogValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > 50 {
		return fmt.Errorf("input too long: maximum 50 characters")
	}

	// Word count validation to prevent DoS attacks with many short words
	words := strings.Fields(input)
	if len(words) > 6 {
		return fmt.Errorf("search query too complex: maximum 6 words allowed")
	}

	// Check for potentially dangerous patterns using string matching (5-10x faster than regex)
	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	// Allow only alphanumeric characters, spaces, and safe punctuation
	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods, plus sign, and common accented characters are allowed")
	}

	// Additional checks for repeated characters (potential DoS)
	if v.hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// hasExcessiveRepetition checks for potential DoS patterns with excessive character repetition
func (v *CatalogValidatorImpl) hasExcessiveRepetition(input string) bool {
	// Check for the same character repeated more than 10 times consecutively
	for i := 0; i < len(input)-10; i++ {
		allSame := true
		for j := 1; j <= 10; j++ {
			if input[i] != input[i+j] {
				allSame = false
				break
			}
		}
		if allSame {
			return true
		}
	}
	return false
}
