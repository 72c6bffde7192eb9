package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/openfda-labs/fdadrugs-api/logging"
)

const (
	fdaBaseURL       = "https://www.fda.gov"
	adcomCalendarURL = fdaBaseURL + "/datatables-json/advisory-committee-calendar-json"
)

// Material is a single PDF document linked from a meeting page.
type Material struct {
	Title    string `json:"title"`
	PDFURL   string `json:"pdf_url"`
	FileSize string `json:"file_size"`
	Source   string `json:"source"`
}

// Meeting is an advisory-committee meeting with its scraped materials.
type Meeting struct {
	Date       string     `json:"date"`
	Committee  string     `json:"committee"`
	Title      string     `json:"title"`
	MeetingURL string     `json:"meeting_url"`
	Materials  []Material `json:"materials"`
}

// MaterialsQuery filters advisory-committee meetings. Committee matches
// case-insensitively against committee name and title; dates are YYYY-MM-DD.
type MaterialsQuery struct {
	Committee string
	StartDate string
	EndDate   string
	Limit     int
}

// calendarEntry mirrors one row of the FDA calendar JSON feed. The title
// field is an HTML fragment containing the meeting link.
type calendarEntry struct {
	Title     string `json:"title"`
	Center    string `json:"field_center"`
	StartDate string `json:"field_start_date"`
}

var fileSizeRe = regexp.MustCompile(`\((.*?)\)`)

// AdvisoryCommitteeMaterials fetches the meeting calendar, applies the
// query filters and scrapes each surviving meeting page for PDF materials.
// Meetings whose page fails to scrape are skipped, not fatal.
func (f *Fetcher) AdvisoryCommitteeMaterials(ctx context.Context, query MaterialsQuery) ([]Meeting, error) {
	body, err := f.fetchJSON(ctx, adcomCalendarURL)
	if err != nil {
		return nil, fmt.Errorf("advisory committee calendar fetch failed: %w", err)
	}

	var entries []calendarEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode advisory committee calendar: %w", err)
	}

	selected := filterCalendar(entries, query)

	meetings := []Meeting{}
	for _, entry := range selected {
		meetingPath := extractMeetingURL(entry.Title)
		if meetingPath == "" {
			continue
		}
		meetingURL := absoluteFDAURL(meetingPath)

		doc, err := f.fetchDocument(ctx, meetingURL)
		if err != nil {
			logging.Warn("Skipping advisory committee meeting page", "url", meetingURL, "error", err)
			continue
		}

		meetings = append(meetings, Meeting{
			Date:       parseMeetingDate(entry.StartDate),
			Committee:  entry.Center,
			Title:      htmlText(entry.Title),
			MeetingURL: meetingURL,
			Materials:  parseMeetingMaterials(doc),
		})
	}

	return meetings, nil
}

// filterCalendar applies committee and date-range filters and truncates to
// the query limit.
func filterCalendar(entries []calendarEntry, query MaterialsQuery) []calendarEntry {
	limit := query.Limit
	if limit <= 0 {
		limit = 100
	}

	selected := []calendarEntry{}
	for _, entry := range entries {
		if query.Committee != "" {
			needle := strings.ToLower(query.Committee)
			if !strings.Contains(strings.ToLower(entry.Center), needle) &&
				!strings.Contains(strings.ToLower(entry.Title), needle) {
				continue
			}
		}

		date := parseMeetingDate(entry.StartDate)
		if query.StartDate != "" && date < query.StartDate {
			continue
		}
		if query.EndDate != "" && date > query.EndDate {
			continue
		}

		selected = append(selected, entry)
		if len(selected) >= limit {
			break
		}
	}
	return selected
}

// parseMeetingMaterials pulls the PDF rows from a meeting page's materials
// table. Non-PDF rows are dropped.
func parseMeetingMaterials(doc *goquery.Document) []Material {
	materials := []Material{}

	doc.Find("table").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		link := cells.Eq(0).Find("a[href]").First()
		href := link.AttrOr("href", "")
		if href == "" {
			return
		}

		fileInfo := strings.TrimSpace(cells.Eq(1).Text())
		if !strings.Contains(strings.ToLower(fileInfo), "pdf") {
			return
		}

		fileSize := ""
		if m := fileSizeRe.FindStringSubmatch(fileInfo); m != nil {
			fileSize = m[1]
		}

		source := ""
		if cells.Length() > 2 {
			source = strings.TrimSpace(cells.Eq(2).Text())
		}

		materials = append(materials, Material{
			Title:    strings.TrimSpace(link.Text()),
			PDFURL:   absoluteFDAURL(href),
			FileSize: fileSize,
			Source:   source,
		})
	})

	return materials
}

// parseMeetingDate converts calendar dates like "02/25/2016 03:00 AM EST"
// to YYYY-MM-DD, returning the input unchanged when it doesn't parse.
func parseMeetingDate(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return raw
	}
	t, err := time.Parse("01/02/2006", fields[0])
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

// extractMeetingURL pulls the href out of the calendar title HTML fragment.
func extractMeetingURL(titleHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(titleHTML))
	if err != nil {
		return ""
	}
	return doc.Find("a").First().AttrOr("href", "")
}

// htmlText strips tags from an HTML fragment.
func htmlText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}

func absoluteFDAURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return fdaBaseURL + href
	}
	return href
}
