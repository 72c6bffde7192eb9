package scraper

import (
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const reviewTOCHTML = `
<html><body>
<a href="Anda.pdf">Approval Letter</a>
<a href="medr.pdf">Medical Review(s)</a>
<a href="chemr.pdf">Chemistry Review(s)</a>
<a href="/drugsatfda_docs/nda/2020/pharmr.pdf">Pharmacology Review(s)</a>
<a href="medr.pdf">Medical Review(s)</a>
<a href="label.pdf">Printed Labeling</a>
<a href="https://www.fda.gov/overview.cfm">Review overview page</a>
</body></html>`

func TestParseReviewPDFLinks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(reviewTOCHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	pageURL := "https://www.accessdata.fda.gov/drugsatfda_docs/nda/2020/toc.cfm"
	pdfs := parseReviewPDFLinks(doc, pageURL)

	expected := []string{
		"https://www.accessdata.fda.gov/drugsatfda_docs/nda/2020/medr.pdf",
		"https://www.accessdata.fda.gov/drugsatfda_docs/nda/2020/chemr.pdf",
		"https://www.accessdata.fda.gov/drugsatfda_docs/nda/2020/pharmr.pdf",
	}
	if !slices.Equal(pdfs, expected) {
		t.Errorf("parseReviewPDFLinks = %v, want %v", pdfs, expected)
	}
}

func TestParseReviewPDFLinks_NoMatches(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<a href="letter.pdf">Approval Letter</a>`))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	if got := parseReviewPDFLinks(doc, "https://example.com/toc.cfm"); len(got) != 0 {
		t.Errorf("expected no PDFs, got %v", got)
	}
}
