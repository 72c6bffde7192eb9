package fdaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/openfda-labs/fdadrugs-api/logging"
)

// Similarity selectors accepted by SimilarDrugs.
const (
	SimilarityMechanism  = "mechanism"
	SimilarityIndication = "indication"
)

// ErrInvalidSimilarityType signals a caller contract violation: an
// unrecognized similarity selector is rejected, never defaulted.
var ErrInvalidSimilarityType = fmt.Errorf("similarity type must be %q or %q", SimilarityMechanism, SimilarityIndication)

// applicationFilter restricts label queries to approved application types.
// Generics (ANDA) are excluded unless explicitly requested.
func applicationFilter(includeGenerics bool) string {
	if includeGenerics {
		return `(openfda.application_number:BLA* OR openfda.application_number:NDA* OR openfda.application_number:ANDA*)`
	}
	return `(openfda.application_number:BLA* OR openfda.application_number:NDA*) AND NOT openfda.application_number:ANDA*`
}

// SearchByName searches drug labels by brand or generic name.
func (c *Client) SearchByName(ctx context.Context, drugName string, limit int, includeGenerics bool) ([]map[string]any, error) {
	query := fmt.Sprintf(`(openfda.brand_name:%q OR openfda.generic_name:%q) AND %s`,
		drugName, drugName, applicationFilter(includeGenerics))

	logging.Debug("Searching OpenFDA labels by name", "query", query)

	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(clampLimit(limit)))

	return c.search(ctx, labelPath, params)
}

// SearchByIndication searches drug labels by medical indication.
func (c *Client) SearchByIndication(ctx context.Context, indication string, limit int, includeGenerics bool) ([]map[string]any, error) {
	query := fmt.Sprintf(`indications_and_usage:%q AND %s`, indication, applicationFilter(includeGenerics))

	logging.Debug("Searching OpenFDA labels by indication", "query", query)

	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(clampLimit(limit)))

	return c.search(ctx, labelPath, params)
}

// DrugBySetID fetches the label record for a set ID. Returns ErrNotFound
// when the set ID is unknown.
func (c *Client) DrugBySetID(ctx context.Context, setID string) (map[string]any, error) {
	params := url.Values{}
	params.Set("search", fmt.Sprintf("set_id:%q", setID))
	params.Set("limit", "1")

	results, err := c.search(ctx, labelPath, params)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("set_id %q: %w", setID, ErrNotFound)
	}
	return results[0], nil
}

// SimilarDrugs finds labels similar to the reference record by mechanism of
// action or by indication.
func (c *Client) SimilarDrugs(ctx context.Context, reference map[string]any, similarityType string, limit int) ([]map[string]any, error) {
	switch similarityType {
	case SimilarityMechanism:
		return c.findSimilar(ctx, reference, "mechanism_of_action", limit)
	case SimilarityIndication:
		return c.findSimilar(ctx, reference, "indications_and_usage", limit)
	default:
		return nil, ErrInvalidSimilarityType
	}
}

func (c *Client) findSimilar(ctx context.Context, reference map[string]any, field string, limit int) ([]map[string]any, error) {
	text := joinTextField(reference[field])
	if text == "" {
		return []map[string]any{}, nil
	}

	var terms []string
	if field == "mechanism_of_action" {
		terms = extractMechanismTerms(text)
	} else {
		terms = extractIndicationTerms(text)
	}
	if len(terms) == 0 {
		return []map[string]any{}, nil
	}
	if len(terms) > 3 {
		terms = terms[:3]
	}

	query := ""
	for i, term := range terms {
		if i > 0 {
			query += " OR "
		}
		query += fmt.Sprintf("%s:%q", field, term)
	}
	query = "(" + query + ") AND " + applicationFilter(false)

	// Keep the reference drug itself out of its own similarity results
	if setID, _ := reference["set_id"].(string); setID != "" {
		query += fmt.Sprintf(" AND NOT set_id:%q", setID)
	}

	logging.Debug("Searching OpenFDA for similar drugs", "field", field, "query", query)

	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(clampLimit(limit)))

	return c.search(ctx, labelPath, params)
}

// ApplicationHistory fetches the Drugs@FDA record for an application number.
func (c *Client) ApplicationHistory(ctx context.Context, applicationNumber string) (map[string]any, error) {
	params := url.Values{}
	params.Set("search", fmt.Sprintf("application_number:%q", applicationNumber))
	params.Set("limit", "1")

	results, err := c.search(ctx, drugsFDAPath, params)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("application %q: %w", applicationNumber, ErrNotFound)
	}
	return results[0], nil
}

// ReviewInfo is the review-document pointer extracted from a Drugs@FDA
// record for a label set ID.
type ReviewInfo struct {
	ApplicationNumber string
	ReviewURL         string
}

// ReviewInfoBySetID looks up the Drugs@FDA record for an SPL set ID and
// returns the first review-type application document URL, when present.
func (c *Client) ReviewInfoBySetID(ctx context.Context, setID string) (ReviewInfo, error) {
	params := url.Values{}
	params.Set("search", fmt.Sprintf("openfda.spl_set_id:%q", setID))
	params.Set("limit", "1")

	results, err := c.search(ctx, drugsFDAPath, params)
	if err != nil {
		return ReviewInfo{}, err
	}
	if len(results) == 0 {
		return ReviewInfo{}, nil
	}

	record := results[0]
	info := ReviewInfo{}
	if appNo, ok := record["application_number"].(string); ok {
		info.ApplicationNumber = appNo
	}

	submissions, _ := record["submissions"].([]any)
	for _, s := range submissions {
		submission, ok := s.(map[string]any)
		if !ok {
			continue
		}
		docs, _ := submission["application_docs"].([]any)
		for _, d := range docs {
			doc, ok := d.(map[string]any)
			if !ok {
				continue
			}
			docType, _ := doc["type"].(string)
			docURL, _ := doc["url"].(string)
			if strings.EqualFold(docType, "review") && docURL != "" {
				info.ReviewURL = docURL
				return info, nil
			}
		}
	}

	return info, nil
}
