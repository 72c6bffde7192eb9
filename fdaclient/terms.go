package fdaclient

import (
	"regexp"
	"sort"
	"strings"
)

// Known pharmacology vocabulary used to seed mechanism similarity queries.
var mechanismVocabulary = []string{
	"receptor", "inhibitor", "agonist", "antagonist", "blocker",
	"enzyme", "protein", "channel", "transporter", "binding",
	"kinase", "phosphatase", "antibody", "monoclonal",
}

var (
	capitalizedTermRe  = regexp.MustCompile(`\b[A-Z][A-Za-z]+\b`)
	twoWordConditionRe = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	oneWordConditionRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "in": {}, "of": {},
	"to": {}, "for": {}, "with": {}, "by": {}, "from": {},
}

// extractMechanismTerms pulls key terms from mechanism-of-action text:
// known pharmacology vocabulary plus capitalized tokens, which are usually
// targets or pathways.
func extractMechanismTerms(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}

	for _, term := range mechanismVocabulary {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}

	capitalized := capitalizedTermRe.FindAllString(text, -1)
	if len(capitalized) > 5 {
		capitalized = capitalized[:5]
	}
	found = append(found, capitalized...)

	return dedupeSorted(found)
}

// extractIndicationTerms pulls likely condition names from indication text:
// capitalized one- and two-word phrases, minus common stopwords.
func extractIndicationTerms(text string) []string {
	found := twoWordConditionRe.FindAllString(text, -1)
	found = append(found, oneWordConditionRe.FindAllString(text, -1)...)

	terms := []string{}
	for _, term := range found {
		if _, stop := stopwords[strings.ToLower(term)]; stop {
			continue
		}
		if len(term) > 3 {
			terms = append(terms, term)
		}
	}

	terms = dedupeSorted(terms)
	if len(terms) > 10 {
		terms = terms[:10]
	}
	return terms
}

// joinTextField flattens a narrative field that may be a string or a list
// of paragraph strings.
func joinTextField(field any) string {
	switch v := field.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ". ")
	case []string:
		return strings.Join(v, ". ")
	}
	return ""
}

func dedupeSorted(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
