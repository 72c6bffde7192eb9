package processor

import (
	"regexp"
	"strings"
)

var (
	// Trailing salt/form suffixes that OpenFDA appends to generic names.
	saltSuffixRe = regexp.MustCompile(`(?i)\s*(hydrochloride|acetate|sulfate|tartrate|maleate|succinate|recombinant)\s*$`)
	// Manufacturer/lot suffix pattern, e.g. "trastuzumab-anns".
	trailingCodeRe = regexp.MustCompile(`-\w{4}$`)
)

// CleanGenericName strips a trailing salt/form suffix, then a trailing
// 4-character hyphenated code, from a generic drug name.
func CleanGenericName(name string) string {
	if name == "" {
		return ""
	}
	cleaned := strings.TrimSpace(saltSuffixRe.ReplaceAllString(name, ""))
	return trailingCodeRe.ReplaceAllString(cleaned, "")
}

// CleanTextField collapses a narrative field into a single trimmed string.
// Multi-paragraph list content is joined with ". " to keep sentence
// boundaries intact.
func CleanTextField(field any) string {
	switch v := field.(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		return strings.TrimSpace(strings.Join(v, ". "))
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.TrimSpace(strings.Join(parts, ". "))
	}
	return ""
}
