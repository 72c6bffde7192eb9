// Package reviews maintains the CSV-backed index of FDA review-document
// PDF links and serves lookups against it.
package reviews

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Record is one row of the review-links CSV: a drug approval paired with a
// review-document URL (possibly empty when no review has been located yet).
type Record struct {
	Year              string `json:"year"`
	BrandName         string `json:"brand_name"`
	GenericName       string `json:"generic_name"`
	ApplicationNumber string `json:"application_number"`
	SPLSetID          string `json:"spl_set_id"`
	ReviewURL         string `json:"review_document_url"`
	ReviewTitle       string `json:"review_document_title"`
}

var csvHeader = []string{
	"Year", "Brand Name", "Generic Name", "Application Number",
	"SPL Set ID", "Review Document URL", "Review Document Title",
}

// Load reads the review-links CSV. A missing file yields an empty index,
// matching the first run before any refresh has happened.
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to open reviews CSV %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	// Map header names to positions so column order doesn't matter
	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, Record{
			Year:              field(row, "Year"),
			BrandName:         field(row, "Brand Name"),
			GenericName:       field(row, "Generic Name"),
			ApplicationNumber: field(row, "Application Number"),
			SPLSetID:          field(row, "SPL Set ID"),
			ReviewURL:         field(row, "Review Document URL"),
			ReviewTitle:       field(row, "Review Document Title"),
		})
	}

	return records, nil
}

// Append adds records to the CSV, creating it with a header when absent.
func Append(path string, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open reviews CSV %s for append: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if newFile {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write reviews CSV header: %w", err)
		}
	}
	for _, r := range records {
		row := []string{r.Year, r.BrandName, r.GenericName, r.ApplicationNumber, r.SPLSetID, r.ReviewURL, r.ReviewTitle}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write reviews CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Query filters the review index. DrugName is a case-insensitive partial
// match against brand and generic name; the other two are exact.
type Query struct {
	DrugName          string
	ApplicationNumber string
	SetID             string
}

// IsEmpty reports whether no filter criterion is set.
func (q Query) IsEmpty() bool {
	return q.DrugName == "" && q.ApplicationNumber == "" && q.SetID == ""
}

// Search returns the records matching every set criterion, preserving
// index order.
func Search(records []Record, q Query) []Record {
	name := strings.ToLower(q.DrugName)

	matches := []Record{}
	for _, r := range records {
		if name != "" &&
			!strings.Contains(strings.ToLower(r.BrandName), name) &&
			!strings.Contains(strings.ToLower(r.GenericName), name) {
			continue
		}
		if q.ApplicationNumber != "" && r.ApplicationNumber != q.ApplicationNumber {
			continue
		}
		if q.SetID != "" && r.SPLSetID != q.SetID {
			continue
		}
		matches = append(matches, r)
	}
	return matches
}
