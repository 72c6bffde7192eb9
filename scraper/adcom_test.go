package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestParseMeetingDate(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"02/25/2016 03:00 AM EST", "2016-02-25"},
		{"11/07/2024", "2024-11-07"},
		{"sometime soon", "sometime soon"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := parseMeetingDate(tc.input); got != tc.expected {
			t.Errorf("parseMeetingDate(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestExtractMeetingURL(t *testing.T) {
	title := `<a href="/advisory-committees/oncologic-drugs-advisory-committee-march-meeting">March Meeting</a>`

	got := extractMeetingURL(title)
	if got != "/advisory-committees/oncologic-drugs-advisory-committee-march-meeting" {
		t.Errorf("extractMeetingURL = %q", got)
	}

	if got := extractMeetingURL("no link here"); got != "" {
		t.Errorf("expected empty URL, got %q", got)
	}
}

func TestHTMLText(t *testing.T) {
	if got := htmlText(`<a href="/x">Oncologic Drugs <b>Advisory</b></a>`); got != "Oncologic Drugs Advisory" {
		t.Errorf("htmlText = %q", got)
	}
}

func TestAbsoluteFDAURL(t *testing.T) {
	if got := absoluteFDAURL("/media/12345/download"); got != "https://www.fda.gov/media/12345/download" {
		t.Errorf("absoluteFDAURL = %q", got)
	}
	if got := absoluteFDAURL("https://example.com/x.pdf"); got != "https://example.com/x.pdf" {
		t.Errorf("absolute URL should pass through, got %q", got)
	}
}

func TestFilterCalendar(t *testing.T) {
	entries := []calendarEntry{
		{Title: `<a href="/a">Oncologic Drugs Advisory Committee</a>`, Center: "CDER", StartDate: "03/15/2024 09:00 AM EST"},
		{Title: `<a href="/b">Vaccines Committee</a>`, Center: "CBER", StartDate: "05/20/2024 09:00 AM EST"},
		{Title: `<a href="/c">Oncologic follow-up</a>`, Center: "CDER", StartDate: "07/01/2024 09:00 AM EST"},
	}

	t.Run("committee filter", func(t *testing.T) {
		got := filterCalendar(entries, MaterialsQuery{Committee: "oncologic"})
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
	})

	t.Run("date range", func(t *testing.T) {
		got := filterCalendar(entries, MaterialsQuery{StartDate: "2024-04-01", EndDate: "2024-06-30"})
		if len(got) != 1 || got[0].Center != "CBER" {
			t.Fatalf("expected only the May meeting, got %v", got)
		}
	})

	t.Run("limit", func(t *testing.T) {
		got := filterCalendar(entries, MaterialsQuery{Limit: 1})
		if len(got) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(got))
		}
	})
}

const meetingPageHTML = `
<html><body>
<table>
<tr><th>Material</th><th>File info</th><th>Source</th></tr>
<tr>
  <td><a href="/media/100/download">Briefing Document</a></td>
  <td>PDF (2.5 MB)</td>
  <td>FDA</td>
</tr>
<tr>
  <td><a href="/media/101/download">Webcast Link</a></td>
  <td>HTML</td>
  <td>FDA</td>
</tr>
<tr>
  <td><a href="/media/102/download">Sponsor Presentation</a></td>
  <td>pdf (800 KB)</td>
  <td>Sponsor</td>
</tr>
</table>
</body></html>`

func TestParseMeetingMaterials(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(meetingPageHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	materials := parseMeetingMaterials(doc)

	if len(materials) != 2 {
		t.Fatalf("expected 2 PDF materials (HTML row dropped), got %d", len(materials))
	}

	first := materials[0]
	if first.Title != "Briefing Document" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.PDFURL != "https://www.fda.gov/media/100/download" {
		t.Errorf("PDFURL = %q", first.PDFURL)
	}
	if first.FileSize != "2.5 MB" {
		t.Errorf("FileSize = %q", first.FileSize)
	}
	if first.Source != "FDA" {
		t.Errorf("Source = %q", first.Source)
	}

	if materials[1].Source != "Sponsor" {
		t.Errorf("second material source = %q", materials[1].Source)
	}
}
