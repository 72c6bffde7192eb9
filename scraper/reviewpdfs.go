package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReviewPDFs extracts review-document PDF URLs from a drugs@fda .cfm
// table-of-contents page. Only links whose text mentions "review" count;
// approval letters, labeling and administrative documents are excluded.
func (f *Fetcher) ReviewPDFs(ctx context.Context, cfmURL string) ([]string, error) {
	doc, err := f.fetchDocument(ctx, cfmURL)
	if err != nil {
		return nil, err
	}
	return parseReviewPDFLinks(doc, cfmURL), nil
}

func parseReviewPDFLinks(doc *goquery.Document, pageURL string) []string {
	base, baseErr := url.Parse(pageURL)

	seen := map[string]struct{}{}
	pdfs := []string{}

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return
		}
		if !strings.Contains(strings.ToLower(link.Text()), "review") {
			return
		}

		absolute := href
		if baseErr == nil {
			if ref, err := url.Parse(href); err == nil {
				absolute = base.ResolveReference(ref).String()
			}
		}

		if _, dup := seen[absolute]; dup {
			return
		}
		seen[absolute] = struct{}{}
		pdfs = append(pdfs, absolute)
	})

	return pdfs
}
