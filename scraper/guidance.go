package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const guidanceFeedURL = fdaBaseURL + "/files/api/datatables/static/search-for-guidance.json"

// GuidanceDocument is one cleaned entry of the FDA guidance-document feed.
type GuidanceDocument struct {
	Title            string `json:"title"`
	Link             string `json:"link"`
	PDFLink          string `json:"pdf_link"`
	Date             string `json:"date"`
	Type             string `json:"type"`
	Center           string `json:"center"`
	DocketNumber     string `json:"docket_number"`
	Topics           string `json:"topics"`
	RegulatedProduct string `json:"regulated_product"`
}

// guidanceEntry mirrors the raw feed row; several fields are HTML fragments.
type guidanceEntry struct {
	Title            string `json:"title"`
	PDFField         string `json:"field_associated_media_2"`
	IssueDate        string `json:"field_issue_datetime"`
	FinalGuidance    string `json:"field_final_guidance_1"`
	Center           string `json:"field_center"`
	DocketNumber     string `json:"field_docket_number"`
	Topics           string `json:"term_node_tid"`
	RegulatedProduct string `json:"field_regulated_product_field"`
}

// GuidanceDocuments fetches and cleans the full guidance-document feed.
func (f *Fetcher) GuidanceDocuments(ctx context.Context) ([]GuidanceDocument, error) {
	return f.guidanceDocumentsFrom(ctx, guidanceFeedURL)
}

func (f *Fetcher) guidanceDocumentsFrom(ctx context.Context, feedURL string) ([]GuidanceDocument, error) {
	body, err := f.fetchJSON(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("guidance feed fetch failed: %w", err)
	}

	var entries []guidanceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode guidance feed: %w", err)
	}

	docs := make([]GuidanceDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, GuidanceDocument{
			Title:            htmlText(entry.Title),
			Link:             extractFragmentURL(entry.Title),
			PDFLink:          extractFragmentURL(entry.PDFField),
			Date:             entry.IssueDate,
			Type:             entry.FinalGuidance,
			Center:           htmlText(entry.Center),
			DocketNumber:     htmlText(entry.DocketNumber),
			Topics:           htmlText(entry.Topics),
			RegulatedProduct: entry.RegulatedProduct,
		})
	}

	return docs, nil
}

// GuidanceFilter narrows a guidance-document list. Center and topic are
// case-insensitive substring matches (topic also checks the title);
// docType matches "Final"/"Draft" exactly, ignoring case.
type GuidanceFilter struct {
	Center  string
	DocType string
	Topic   string
}

// FilterGuidance applies a filter to an already-fetched document list.
func FilterGuidance(docs []GuidanceDocument, filter GuidanceFilter) []GuidanceDocument {
	out := []GuidanceDocument{}
	for _, doc := range docs {
		if filter.Center != "" && !strings.Contains(strings.ToLower(doc.Center), strings.ToLower(filter.Center)) {
			continue
		}
		if filter.DocType != "" && !strings.EqualFold(doc.Type, filter.DocType) {
			continue
		}
		if filter.Topic != "" {
			topic := strings.ToLower(filter.Topic)
			if !strings.Contains(strings.ToLower(doc.Topics), topic) &&
				!strings.Contains(strings.ToLower(doc.Title), topic) {
				continue
			}
		}
		out = append(out, doc)
	}
	return out
}

// extractFragmentURL pulls the first anchor href out of an HTML fragment,
// resolving site-relative paths against the FDA origin.
func extractFragmentURL(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	href := doc.Find("a").First().AttrOr("href", "")
	if href == "" {
		return ""
	}
	return absoluteFDAURL(href)
}
