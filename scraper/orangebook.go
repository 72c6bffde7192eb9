package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/openfda-labs/fdadrugs-api/logging"
)

const orangeBookPatentURL = "https://www.accessdata.fda.gov/scripts/cder/ob/patent_info.cfm"

// Patent is one row of the Orange Book patent table. The page hides the
// columns past patent expiration behind expandable child rows.
type Patent struct {
	ProductNo            string `json:"product_no"`
	PatentNo             string `json:"patent_no"`
	PatentExpiration     string `json:"patent_expiration"`
	DrugSubstance        string `json:"drug_substance"`
	DrugProduct          string `json:"drug_product"`
	PatentUseCode        string `json:"patent_use_code"`
	PatentUseDescription string `json:"patent_use_description"`
	DelistRequested      string `json:"delist_requested"`
	SubmissionDate       string `json:"submission_date"`
}

// Exclusivity is one row of the Orange Book exclusivity table.
type Exclusivity struct {
	ProductNo              string `json:"product_no"`
	ExclusivityCode        string `json:"exclusivity_code"`
	ExclusivityDescription string `json:"exclusivity_description"`
	ExclusivityExpiration  string `json:"exclusivity_expiration"`
}

// PatentInfo is the scraped patent and exclusivity data for one NDA product.
type PatentInfo struct {
	ApplicationNumber string        `json:"application_number"`
	ProductNo         string        `json:"product_no"`
	Patents           []Patent      `json:"patents"`
	Exclusivities     []Exclusivity `json:"exclusivities"`
}

// PatentInfoFor scrapes the Orange Book patent page for an NDA application
// and product number.
func (f *Fetcher) PatentInfoFor(ctx context.Context, applicationNumber, productNo string) (PatentInfo, error) {
	params := url.Values{}
	params.Set("Product_No", productNo)
	params.Set("Appl_No", applicationNumber)
	params.Set("Appl_type", "N") // Orange Book patent pages exist for NDAs only

	logging.Info("Scraping Orange Book patent info", "application_number", applicationNumber, "product_no", productNo)

	doc, err := f.fetchDocument(ctx, orangeBookPatentURL+"?"+params.Encode())
	if err != nil {
		return PatentInfo{}, fmt.Errorf("orange book fetch failed: %w", err)
	}

	return PatentInfo{
		ApplicationNumber: applicationNumber,
		ProductNo:         productNo,
		Patents:           parsePatentTable(doc),
		Exclusivities:     parseExclusivityTable(doc),
	}, nil
}

// parsePatentTable reads the patent table (id "example0"). Rows with class
// "child" are expansion placeholders, not data.
func parsePatentTable(doc *goquery.Document) []Patent {
	patents := []Patent{}

	doc.Find("table#example0 tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("child") {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		patent := Patent{
			ProductNo:        cellText(cells, 0),
			PatentNo:         cellText(cells, 1),
			PatentExpiration: cellText(cells, 2),
			DrugSubstance:    cellText(cells, 3),
			DrugProduct:      cellText(cells, 4),
			DelistRequested:  cellText(cells, 6),
			SubmissionDate:   cellText(cells, 7),
		}

		// The use-code cell carries its description in the link title
		if useCell := cells.Eq(5); useCell.Length() > 0 {
			if link := useCell.Find("a"); link.Length() > 0 {
				patent.PatentUseCode = strings.TrimSpace(link.Text())
				patent.PatentUseDescription = strings.TrimSpace(link.AttrOr("title", ""))
			} else {
				patent.PatentUseCode = strings.TrimSpace(useCell.Text())
			}
		}

		patents = append(patents, patent)
	})

	return patents
}

// parseExclusivityTable reads the exclusivity table (id "example1"). A cell
// can hold several code links; codes are comma-joined, descriptions
// pipe-joined.
func parseExclusivityTable(doc *goquery.Document) []Exclusivity {
	exclusivities := []Exclusivity{}

	doc.Find("table#example1 tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		codeCell := cells.Eq(1)
		codes := []string{}
		descriptions := []string{}
		codeCell.Find("a").Each(func(_ int, link *goquery.Selection) {
			if code := strings.TrimSpace(link.Text()); code != "" {
				codes = append(codes, code)
			}
			if desc := strings.TrimSpace(link.AttrOr("title", "")); desc != "" {
				descriptions = append(descriptions, desc)
			}
		})
		if len(codes) == 0 {
			codes = append(codes, strings.TrimSpace(codeCell.Text()))
		}

		exclusivities = append(exclusivities, Exclusivity{
			ProductNo:              cellText(cells, 0),
			ExclusivityCode:        strings.Join(codes, ", "),
			ExclusivityDescription: strings.Join(descriptions, " | "),
			ExclusivityExpiration:  cellText(cells, 2),
		})
	})

	return exclusivities
}

func cellText(cells *goquery.Selection, index int) string {
	return strings.TrimSpace(cells.Eq(index).Text())
}
