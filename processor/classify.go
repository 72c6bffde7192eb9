package processor

import "strings"

// Application type values derived from the application number prefix.
const (
	TypeBLA   = "BLA"
	TypeNDA   = "NDA"
	TypeANDA  = "ANDA"
	TypeOther = "Other"
)

// ApplicationType classifies an FDA application number by its prefix.
// Empty input yields "". This is the single classification rule shared by
// drug records and application histories.
func ApplicationType(applicationNumber string) string {
	switch {
	case applicationNumber == "":
		return ""
	case strings.HasPrefix(applicationNumber, TypeBLA):
		return TypeBLA
	case strings.HasPrefix(applicationNumber, TypeANDA):
		return TypeANDA
	case strings.HasPrefix(applicationNumber, TypeNDA):
		return TypeNDA
	default:
		return TypeOther
	}
}

// IsGenericDrug reports whether an application number denotes an ANDA
// generic. Consumers use this to exclude generics from default results.
func IsGenericDrug(applicationNumber string) bool {
	return strings.HasPrefix(applicationNumber, TypeANDA)
}

// DailyMedURL derives the DailyMed label URL for a set ID. The format is a
// fixed external contract and must not change.
func DailyMedURL(setID string) string {
	if setID == "" {
		return ""
	}
	return "https://dailymed.nlm.nih.gov/dailymed/fda/fdaDrugXsl.cfm?setid=" + setID + "&type=display"
}
