package processor

import "testing"

func TestApplicationType(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"BLA125514", "BLA"},
		{"NDA020702", "NDA"},
		{"ANDA076155", "ANDA"},
		{"EUA0001", "Other"},
		{"020702", "Other"},
		{"", ""},
	}

	for _, tc := range testCases {
		got := ApplicationType(tc.input)
		if got != tc.expected {
			t.Errorf("ApplicationType(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestIsGenericDrug(t *testing.T) {
	if !IsGenericDrug("ANDA076155") {
		t.Error("ANDA application should be generic")
	}
	if IsGenericDrug("NDA020702") {
		t.Error("NDA application should not be generic")
	}
	if IsGenericDrug("") {
		t.Error("empty application number should not be generic")
	}
}

func TestDailyMedURL(t *testing.T) {
	setID := "b2e929b9-9828-4e8c-80d5-3728b9e1a2e7"
	expected := "https://dailymed.nlm.nih.gov/dailymed/fda/fdaDrugXsl.cfm?setid=b2e929b9-9828-4e8c-80d5-3728b9e1a2e7&type=display"

	if got := DailyMedURL(setID); got != expected {
		t.Errorf("DailyMedURL(%q) = %q, want %q", setID, got, expected)
	}

	if got := DailyMedURL(""); got != "" {
		t.Errorf("DailyMedURL(\"\") = %q, want empty", got)
	}
}
