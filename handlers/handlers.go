// Package handlers provides HTTP request handlers for the medication catalog
// API endpoints. It includes handlers for medication search, exact-name
// lookup, catalog listing, health checks, and response formatting with
// proper input validation and error handling.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/marcantoine-malacquis/hydracat-meds-api/interfaces"
	"github.com/marcantoine-malacquis/hydracat-meds-api/logging"
	"github.com/marcantoine-malacquis/hydracat-meds-api/metrics"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	RespondWithJSON(w, code, errorResponse)
}

// SearchMedications resolves a free-text query into ranked candidates.
// Empty result sets are still 200: the mobile client falls back to manual
// entry, not to an error state.
func SearchMedications(searcher interfaces.Searcher, validator interfaces.CatalogValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := chi.URLParam(r, "query")
		if query == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing search term")
			return
		}

		if err := validator.ValidateInput(query); err != nil {
			logging.Warn("Unusual user input", "query", query)
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		results := searcher.Search(query)
		metrics.SearchResultsReturned.Observe(float64(len(results)))

		RespondWithJSON(w, http.StatusOK, results)
	}
}

// FindMedicationByName does a case-insensitive exact lookup on generic names
func FindMedicationByName(searcher interfaces.Searcher, validator interfaces.CatalogValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing medication name")
			return
		}

		if err := validator.ValidateInput(name); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		med, found := searcher.FindByExactName(name)
		if !found {
			RespondWithError(w, http.StatusNotFound, "Medication not found")
			return
		}

		RespondWithJSON(w, http.StatusOK, med)
	}
}

// ServeAllMedications returns the full catalog
func ServeAllMedications(store interfaces.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medications := store.GetMedications()
		RespondWithJSON(w, http.StatusOK, medications)
	}
}

// ServePagedMedications returns one page of the catalog
func ServePagedMedications(store interfaces.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber := chi.URLParam(r, "pageNumber")
		page, err := strconv.Atoi(pageNumber)
		if err != nil || page < 1 {
			logging.Warn("Unusual user input", "pageNumber", pageNumber)
			RespondWithError(w, http.StatusBadRequest, "Invalid page number")
			return
		}

		medications := store.GetMedications()
		pageSize := 25
		start := (page - 1) * pageSize
		end := start + pageSize

		if start >= len(medications) {
			RespondWithError(w, http.StatusNotFound, "Page not found")
			return
		}

		if end > len(medications) {
			end = len(medications)
		}

		pagedMedications := medications[start:end]
		totalItems := len(medications)
		maxPage := (totalItems + pageSize - 1) / pageSize

		response := map[string]interface{}{
			"data":       pagedMedications,
			"page":       page,
			"pageSize":   pageSize,
			"totalItems": totalItems,
			"maxPage":    maxPage,
		}

		RespondWithJSON(w, http.StatusOK, response)
	}
}

// HealthCheck returns catalog health information
func HealthCheck(checker interfaces.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, details, httpStatus := checker.HealthCheck()

		response := map[string]interface{}{
			"status": status,
		}
		for k, v := range details {
			response[k] = v
		}

		RespondWithJSON(w, httpStatus, response)
	}
}
