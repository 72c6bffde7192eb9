package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openfda-labs/fdadrugs-api/fdaclient"
	"github.com/openfda-labs/fdadrugs-api/interfaces"
	"github.com/openfda-labs/fdadrugs-api/logging"
	"github.com/openfda-labs/fdadrugs-api/processor"
	"github.com/openfda-labs/fdadrugs-api/reviews"
	"github.com/openfda-labs/fdadrugs-api/scraper"
	"github.com/openfda-labs/fdadrugs-api/validation"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	apiKeyHeader       = "X-Api-Key"
)

// HTTPHandler groups the endpoint handlers with their injected
// dependencies.
type HTTPHandler struct {
	dataStore     interfaces.DataStore
	searchers     interfaces.SearcherProvider
	webScraper    interfaces.WebScraper
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates an HTTP handler with injected dependencies
func NewHTTPHandler(
	dataStore interfaces.DataStore,
	searchers interfaces.SearcherProvider,
	webScraper interfaces.WebScraper,
	healthChecker interfaces.HealthChecker,
) *HTTPHandler {
	return &HTTPHandler{
		dataStore:     dataStore,
		searchers:     searchers,
		webScraper:    webScraper,
		healthChecker: healthChecker,
	}
}

// searcher resolves the openFDA client for a request. An X-Api-Key header
// overrides the configured default key.
func (h *HTTPHandler) searcher(r *http.Request) interfaces.DrugSearcher {
	return h.searchers.SearcherFor(strings.TrimSpace(r.Header.Get(apiKeyHeader)))
}

// respondUpstreamError maps openFDA client errors onto HTTP status codes.
func respondUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fdaclient.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "No matching record found")
	case errors.Is(err, fdaclient.ErrInvalidSimilarityType):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		logging.Error("openFDA request failed", "error", err.Error())
		RespondWithError(w, http.StatusBadGateway, "Upstream openFDA request failed")
	}
}

// SearchDrugs handles GET /drugs/search
func (h *HTTPHandler) SearchDrugs(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := validation.ValidateSearchTerm(name); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, err := validation.ValidateLimit(r.URL.Query().Get("limit"), defaultSearchLimit, maxSearchLimit)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	includeGenerics := r.URL.Query().Get("include_generics") == "true"

	rawResults, err := h.searcher(r).SearchByName(r.Context(), name, limit, includeGenerics)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	drugs := processor.ProcessSearchResults(rawResults, processor.PairKey)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"query": map[string]any{
			"name":             name,
			"limit":            limit,
			"include_generics": includeGenerics,
		},
		"total_results": len(drugs),
		"results":       drugs,
	})
}

// SearchByIndication handles GET /drugs/indication/{indication}
func (h *HTTPHandler) SearchByIndication(w http.ResponseWriter, r *http.Request) {
	indication := chi.URLParam(r, "indication")
	if err := validation.ValidateSearchTerm(indication); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, err := validation.ValidateLimit(r.URL.Query().Get("limit"), defaultSearchLimit, maxSearchLimit)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	includeGenerics := r.URL.Query().Get("include_generics") == "true"

	rawResults, err := h.searcher(r).SearchByIndication(r.Context(), indication, limit, includeGenerics)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	drugs := processor.ProcessSearchResults(rawResults, processor.PairKey)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"query": map[string]any{
			"indication":       indication,
			"limit":            limit,
			"include_generics": includeGenerics,
		},
		"total_results": len(drugs),
		"results":       drugs,
	})
}

// DrugDetails handles GET /drugs/{setID}
func (h *HTTPHandler) DrugDetails(w http.ResponseWriter, r *http.Request) {
	setID, err := validation.ValidateSetID(chi.URLParam(r, "setID"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := h.searcher(r).DrugBySetID(r.Context(), setID)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	details := processor.NormalizeDrugDetails(raw)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"set_id":  setID,
		"drug":    details,
	})
}

// SimilarDrugs handles GET /drugs/{setID}/similar
func (h *HTTPHandler) SimilarDrugs(w http.ResponseWriter, r *http.Request) {
	setID, err := validation.ValidateSetID(chi.URLParam(r, "setID"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	similarityType := r.URL.Query().Get("type")
	if similarityType == "" {
		similarityType = fdaclient.SimilarityMechanism
	}

	limit, err := validation.ValidateLimit(r.URL.Query().Get("limit"), defaultSearchLimit, maxSearchLimit)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	searcher := h.searcher(r)
	reference, err := searcher.DrugBySetID(r.Context(), setID)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	rawResults, err := searcher.SimilarDrugs(r.Context(), reference, similarityType, limit)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	drugs := processor.ProcessSearchResults(rawResults, processor.PairKey)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"set_id":          setID,
		"similarity_type": similarityType,
		"total_results":   len(drugs),
		"results":         drugs,
	})
}

// ApplicationHistory handles GET /applications/{applicationNumber}
func (h *HTTPHandler) ApplicationHistory(w http.ResponseWriter, r *http.Request) {
	applicationNumber, err := validation.ValidateApplicationNumber(chi.URLParam(r, "applicationNumber"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := h.searcher(r).ApplicationHistory(r.Context(), applicationNumber)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	history := processor.NormalizeApplicationHistory(raw)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":            history.Error == "",
		"application_number": applicationNumber,
		"application":        history,
	})
}

// PatentInfo handles GET /patents/{applicationNumber}
func (h *HTTPHandler) PatentInfo(w http.ResponseWriter, r *http.Request) {
	applicationNumber, err := validation.ValidateApplicationNumber(chi.URLParam(r, "applicationNumber"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The Orange Book lists NDAs only, keyed by the bare digits
	if strings.HasPrefix(applicationNumber, "BLA") || strings.HasPrefix(applicationNumber, "ANDA") {
		RespondWithError(w, http.StatusBadRequest, "Orange Book patent data exists for NDA applications only")
		return
	}
	digits := strings.TrimPrefix(applicationNumber, "NDA")

	productNo := r.URL.Query().Get("product_no")
	if productNo == "" {
		productNo = "001"
	}
	productNumber, err := strconv.Atoi(productNo)
	if err != nil || productNumber < 1 {
		RespondWithError(w, http.StatusBadRequest, "product_no must be a positive number")
		return
	}
	productNo = fmt.Sprintf("%03d", productNumber)

	info, err := h.webScraper.PatentInfoFor(r.Context(), digits, productNo)
	if err != nil {
		logging.Error("Orange Book scrape failed", "application_number", applicationNumber, "error", err.Error())
		RespondWithError(w, http.StatusBadGateway, "Orange Book page could not be fetched")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"application_number": applicationNumber,
		"product_no":         productNo,
		"patents":            info.Patents,
		"exclusivities":      info.Exclusivities,
	})
}

// SearchReviews handles GET /reviews/search
func (h *HTTPHandler) SearchReviews(w http.ResponseWriter, r *http.Request) {
	query := reviews.Query{
		DrugName:          strings.TrimSpace(r.URL.Query().Get("drug_name")),
		ApplicationNumber: strings.TrimSpace(r.URL.Query().Get("application_number")),
		SetID:             strings.TrimSpace(r.URL.Query().Get("set_id")),
	}

	if query.IsEmpty() {
		RespondWithError(w, http.StatusBadRequest, "Provide drug_name, application_number or set_id")
		return
	}
	if query.DrugName != "" {
		if err := validation.ValidateSearchTerm(query.DrugName); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if query.ApplicationNumber != "" {
		appNo, err := validation.ValidateApplicationNumber(query.ApplicationNumber)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		query.ApplicationNumber = appNo
	}
	if query.SetID != "" {
		setID, err := validation.ValidateSetID(query.SetID)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		query.SetID = setID
	}

	matches := reviews.Search(h.dataStore.GetReviewRecords(), query)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"query": map[string]any{
			"drug_name":          query.DrugName,
			"application_number": query.ApplicationNumber,
			"set_id":             query.SetID,
		},
		"total_results": len(matches),
		"results":       matches,
	})
}

// AdvisoryMaterials handles GET /adcom/materials
func (h *HTTPHandler) AdvisoryMaterials(w http.ResponseWriter, r *http.Request) {
	startDate, err := validation.ValidateDate(r.URL.Query().Get("start_date"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := validation.ValidateDate(r.URL.Query().Get("end_date"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := validation.ValidateLimit(r.URL.Query().Get("limit"), 10, 100)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := scraper.MaterialsQuery{
		Committee: strings.TrimSpace(r.URL.Query().Get("committee")),
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
	}

	meetings, err := h.webScraper.AdvisoryCommitteeMaterials(r.Context(), query)
	if err != nil {
		logging.Error("Advisory calendar fetch failed", "error", err.Error())
		RespondWithError(w, http.StatusBadGateway, "FDA meetings calendar could not be fetched")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"query": map[string]any{
			"committee":  query.Committee,
			"start_date": query.StartDate,
			"end_date":   query.EndDate,
			"limit":      query.Limit,
		},
		"total_results": len(meetings),
		"meetings":      meetings,
	})
}

// GuidanceDocuments handles GET /guidance
func (h *HTTPHandler) GuidanceDocuments(w http.ResponseWriter, r *http.Request) {
	filter := scraper.GuidanceFilter{
		Center:  strings.TrimSpace(r.URL.Query().Get("center")),
		DocType: strings.TrimSpace(r.URL.Query().Get("type")),
		Topic:   strings.TrimSpace(r.URL.Query().Get("topic")),
	}

	docs := h.dataStore.GetGuidanceDocuments()
	if len(docs) == 0 {
		// Cache not primed yet, fetch the feed directly
		fetched, err := h.webScraper.GuidanceDocuments(r.Context())
		if err != nil {
			logging.Error("Guidance feed fetch failed", "error", err.Error())
			RespondWithError(w, http.StatusBadGateway, "FDA guidance feed could not be fetched")
			return
		}
		docs = fetched
	}

	matches := scraper.FilterGuidance(docs, filter)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"query": map[string]any{
			"center": filter.Center,
			"type":   filter.DocType,
			"topic":  filter.Topic,
		},
		"total_results": len(matches),
		"results":       matches,
	})
}

// HealthCheck handles GET /health
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	uptime := time.Since(h.dataStore.GetServerStartTime())
	response := map[string]any{
		"status":         status,
		"uptime_seconds": uptime.Seconds(),
		"uptime_human":   formatUptimeHuman(uptime),
		"data":           details,
	}

	RespondWithJSON(w, httpStatus, response)
}

// formatUptimeHuman formats a duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
