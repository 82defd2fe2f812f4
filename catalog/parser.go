// Package catalog provides loading and parsing of the bundled medication
// dataset. The dataset is a JSON array of medication entries shipped with
// the application; it is read once at startup and never modified.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/marcantoine-malacquis/hydracat-meds-api/catalog/entities"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
	"github.com/marcantoine-malacquis/hydracat-meds-api/logging"
	"github.com/marcantoine-malacquis/hydracat-meds-api/validation"
)

// Compile-time check to ensure Parser implements CatalogParser
var _ interfaces.CatalogParser = (*Parser)(nil)

// Parser reads and validates the bundled medication dataset.
type Parser struct {
	path      string
	validator interfaces.CatalogValidator
}

// NewParser creates a new Parser for the dataset at path
func NewParser(path string) *Parser {
	return &Parser{
		path:      path,
		validator: validation.NewCatalogValidator(),
	}
}

// ParseCatalog reads the dataset file, filters out entries failing
// structural validation, prunes malformed brand and alias records, and
// pre-computes normalized text for matching. A malformed container is an
// error; malformed individual entries are not.
func (p *Parser) ParseCatalog() ([]entities.Medication, *interfaces.CatalogQualityReport, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog dataset: %w", err)
	}

	var candidates []entities.Medication
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog dataset: %w", err)
	}

	medications := make([]entities.Medication, 0, len(candidates))
	dropped := 0
	malformedRecords := 0

	for i := range candidates {
		med := candidates[i]

		if err := p.validator.ValidateMedication(&med); err != nil {
			logging.Debug("Dropping invalid catalog entry", "index", i, "error", err)
			dropped++
			continue
		}

		malformedRecords += p.validator.SanitizeMedication(&med)
		med.Normalize()
		medications = append(medications, med)
	}

	report := p.validator.ReportCatalogQuality(medications, dropped)
	report.MalformedRecords = malformedRecords

	return medications, report, nil
}

// BuildNameIndex builds the normalized-name lookup map used by exact name
// search. The first entry wins on duplicate names.
func BuildNameIndex(medications []entities.Medication) map[string]entities.Medication {
	index := make(map[string]entities.Medication, len(medications))
	for i := range medications {
		key := medications[i].NameNormalized
		if key == "" {
			continue
		}
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = medications[i]
	}
	return index
}
