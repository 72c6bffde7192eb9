package processor

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openfda-labs/fdadrugs-api/processor/entities"
)

var (
	nctIDRe = regexp.MustCompile(`\bNCT\d{8}\b`)

	// "5 mg", "10 mg/kg", "0.5 mL"
	dosageAmountRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(mg|g|mL|L|units?|mcg|µg)(?:/\w+)?\b`)

	// Checked in priority order; the first matching pattern wins.
	frequencyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(once|twice|three times?|four times?)\s*(daily|per day|a day)\b`),
		regexp.MustCompile(`(?i)\b(daily|bid|tid|qid|q\d+h)\b`),
		regexp.MustCompile(`(?i)\bevery\s+(\d+)\s+(hours?|days?|weeks?)\b`),
	}

	administrationRoutes = []string{
		"oral", "intravenous", "intramuscular", "subcutaneous", "topical",
		"inhalation", "rectal", "vaginal", "ophthalmic", "otic", "nasal",
	}

	titleCaser = cases.Title(language.English)
)

// ExtractNCTIDs returns the distinct clinical-trial registry identifiers
// found in text, sorted for determinism. Empty text yields an empty slice.
func ExtractNCTIDs(text string) []string {
	matches := nctIDRe.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		ids = append(ids, m)
	}
	sort.Strings(ids)
	return ids
}

// ExtractDosageDetails pulls dosage amount, frequency and administration
// route hints out of free dosage text. Every field is a heuristic guess;
// callers must not treat it as validated structured data.
func ExtractDosageDetails(dosageText string) entities.DosageDetails {
	return entities.DosageDetails{
		Dosage:              extractDosageAmount(dosageText),
		Frequency:           extractDosageFrequency(dosageText),
		AdministrationRoute: extractAdministrationRoute(dosageText),
	}
}

func extractDosageAmount(text string) string {
	m := dosageAmountRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}

func extractDosageFrequency(text string) string {
	for _, re := range frequencyRes {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

func extractAdministrationRoute(text string) string {
	lower := strings.ToLower(text)
	for _, route := range administrationRoutes {
		if strings.Contains(lower, route) {
			return titleCaser.String(route)
		}
	}
	return ""
}
