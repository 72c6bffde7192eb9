package reviews

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/openfda-labs/fdadrugs-api/fdaclient"
	"github.com/openfda-labs/fdadrugs-api/logging"
)

// ReviewSource resolves an SPL set ID to its Drugs@FDA review document.
type ReviewSource interface {
	ReviewInfoBySetID(ctx context.Context, setID string) (fdaclient.ReviewInfo, error)
}

// PDFExtractor pulls review PDF links out of a table-of-contents page.
type PDFExtractor interface {
	ReviewPDFs(ctx context.Context, pageURL string) ([]string, error)
}

// Updater backfills review-document URLs for recently approved drugs that
// don't have one yet and appends the findings to the CSV index.
type Updater struct {
	source    ReviewSource
	extractor PDFExtractor
	csvPath   string
	now       func() time.Time
}

func NewUpdater(source ReviewSource, extractor PDFExtractor, csvPath string) *Updater {
	return &Updater{
		source:    source,
		extractor: extractor,
		csvPath:   csvPath,
		now:       time.Now,
	}
}

// Refresh scans rows from the last year that lack a review URL, resolves
// each set ID through Drugs@FDA, expands .cfm table-of-contents pages into
// their PDF links, and appends the discovered rows to the CSV. It returns
// the full post-refresh index and the number of rows added.
func (u *Updater) Refresh(ctx context.Context) ([]Record, int, error) {
	records, err := Load(u.csvPath)
	if err != nil {
		return nil, 0, err
	}

	cutoffYear := u.now().Year() - 1
	setIDs := pendingSetIDs(records, cutoffYear)
	if len(setIDs) == 0 {
		return records, 0, nil
	}

	logging.Info("refreshing review links", "pending_set_ids", len(setIDs))

	added := []Record{}
	for _, setID := range setIDs {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		info, err := u.source.ReviewInfoBySetID(ctx, setID)
		if err != nil {
			logging.Warn("review lookup failed", "set_id", setID, "error", err.Error())
			continue
		}
		if info.ReviewURL == "" {
			continue
		}

		urls, err := u.expand(ctx, info.ReviewURL)
		if err != nil {
			logging.Warn("review page scrape failed", "set_id", setID, "url", info.ReviewURL, "error", err.Error())
			continue
		}

		template := templateFor(records, setID)
		for _, pdfURL := range urls {
			row := template
			row.ApplicationNumber = firstNonEmpty(info.ApplicationNumber, template.ApplicationNumber)
			row.ReviewURL = pdfURL
			row.ReviewTitle = ""
			added = append(added, row)
		}
	}

	if err := Append(u.csvPath, added); err != nil {
		return nil, 0, err
	}

	return append(records, added...), len(added), nil
}

// expand turns a review-document pointer into concrete PDF URLs. Drugs@FDA
// links either a PDF directly or a .cfm index page listing several.
func (u *Updater) expand(ctx context.Context, reviewURL string) ([]string, error) {
	lower := strings.ToLower(reviewURL)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return []string{reviewURL}, nil
	case strings.Contains(lower, ".cfm"):
		return u.extractor.ReviewPDFs(ctx, reviewURL)
	default:
		return []string{reviewURL}, nil
	}
}

// pendingSetIDs returns the distinct set IDs of rows at or after the cutoff
// year that are still missing a review URL, preserving index order.
func pendingSetIDs(records []Record, cutoffYear int) []string {
	seen := map[string]bool{}
	ids := []string{}
	for _, r := range records {
		if r.SPLSetID == "" || r.ReviewURL != "" {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(r.Year))
		if err != nil || year < cutoffYear {
			continue
		}
		if seen[r.SPLSetID] {
			continue
		}
		seen[r.SPLSetID] = true
		ids = append(ids, r.SPLSetID)
	}
	return ids
}

// templateFor copies identifying fields from the first row carrying the
// set ID, so appended rows keep the drug's name and year.
func templateFor(records []Record, setID string) Record {
	for _, r := range records {
		if r.SPLSetID == setID {
			return Record{
				Year:              r.Year,
				BrandName:         r.BrandName,
				GenericName:       r.GenericName,
				ApplicationNumber: r.ApplicationNumber,
				SPLSetID:          r.SPLSetID,
			}
		}
	}
	return Record{SPLSetID: setID}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
