package validation

import (
	"strings"
	"testing"
)

func TestValidateSearchTerm_Valid(t *testing.T) {
	valid := []string{
		"Lipitor",
		"type 2 diabetes",
		"atorvastatin calcium",
		"Paxlovid (nirmatrelvir)",
		"co-trimoxazole",
	}
	for _, term := range valid {
		if err := ValidateSearchTerm(term); err != nil {
			t.Errorf("ValidateSearchTerm(%q) = %v, want nil", term, err)
		}
	}
}

func TestValidateSearchTerm_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "a"},
		{"too long", strings.Repeat("a", 101)},
		{"too many words", "one two three four five six seven eight nine"},
		{"script tag", "<script>alert(1)</script>"},
		{"sql injection", "' or 1=1 --"},
		{"path traversal", "../../etc/passwd"},
		{"invalid characters", "drug; DROP TABLE"},
		{"excessive repetition", "aaaaaaaaaaaaaaaaaaaa"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateSearchTerm(tc.input); err == nil {
				t.Errorf("expected error for %q", tc.input)
			}
		})
	}
}

func TestValidateSetID(t *testing.T) {
	got, err := ValidateSetID("B2E929B9-9828-4E8C-80D5-3728B9E1A2E7")
	if err != nil {
		t.Fatalf("ValidateSetID: %v", err)
	}
	if got != "b2e929b9-9828-4e8c-80d5-3728b9e1a2e7" {
		t.Errorf("set id should be lowercased, got %q", got)
	}

	invalid := []string{"", "not-a-uuid", "b2e929b9982848c80d53728b9e1a2e7", "b2e929b9-9828-4e8c-80d5-3728b9e1a2g7"}
	for _, input := range invalid {
		if _, err := ValidateSetID(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestValidateApplicationNumber(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"NDA020702", "NDA020702", false},
		{"nda020702", "NDA020702", false},
		{"BLA125514", "BLA125514", false},
		{"ANDA076155", "ANDA076155", false},
		{"020702", "020702", false},
		{"", "", true},
		{"XYZ123456", "", true},
		{"NDA", "", true},
		{"NDA1", "", true},
	}

	for _, tc := range testCases {
		got, err := ValidateApplicationNumber(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("expected error for %q", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateApplicationNumber(%q) = %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ValidateApplicationNumber(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestValidateLimit(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"empty uses default", "", 10, false},
		{"valid", "25", 25, false},
		{"above max clamps", "500", 50, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "ten", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateLimit(tc.input, 10, 50)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateLimit(%q) = %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ValidateLimit(%q) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	if got, err := ValidateDate("2024-03-15"); err != nil || got != "2024-03-15" {
		t.Errorf("ValidateDate(2024-03-15) = %q, %v", got, err)
	}
	if got, err := ValidateDate(""); err != nil || got != "" {
		t.Errorf("empty date should be allowed, got %q, %v", got, err)
	}

	invalid := []string{"03/15/2024", "2024-13-01", "2024-02-30", "yesterday"}
	for _, input := range invalid {
		if _, err := ValidateDate(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
