// Package validation provides request input validation for the FDA drugs API.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pre-compiled regex patterns, compiled once at package initialization
var (
	// Input validation: alphanumeric plus safe punctuation
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+',\(\)/]+$`)

	// SPL set IDs are UUIDs
	setIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// Drugs@FDA application numbers: optional BLA/NDA/ANDA prefix plus digits
	applicationNumberRegex = regexp.MustCompile(`^(?i)(BLA|NDA|ANDA)?\d{4,7}$`)

	// Dangerous patterns as strings, faster than regex for substring checks
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// ValidateSearchTerm validates a drug name or indication query string.
func ValidateSearchTerm(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("search term cannot be empty")
	}

	if len(input) < 2 {
		return fmt.Errorf("search term too short: minimum 2 characters")
	}

	if len(input) > 100 {
		return fmt.Errorf("search term too long: maximum 100 characters")
	}

	// Word count cap to keep openFDA query construction bounded
	words := strings.Fields(input)
	if len(words) > 8 {
		return fmt.Errorf("search term too complex: maximum 8 words allowed")
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("search term contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("search term contains invalid characters. Only letters, numbers, spaces, and common punctuation are allowed")
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("search term contains excessive character repetition")
	}

	return nil
}

// ValidateSetID validates an SPL set ID (a UUID).
func ValidateSetID(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("set id cannot be empty")
	}
	if !setIDRegex.MatchString(trimmed) {
		return "", fmt.Errorf("set id must be a UUID")
	}
	return strings.ToLower(trimmed), nil
}

// ValidateApplicationNumber validates a Drugs@FDA application number and
// returns it uppercased.
func ValidateApplicationNumber(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("application number cannot be empty")
	}
	if !applicationNumberRegex.MatchString(trimmed) {
		return "", fmt.Errorf("application number must be digits with an optional BLA, NDA or ANDA prefix")
	}
	return strings.ToUpper(trimmed), nil
}

// ValidateLimit parses a limit query parameter, applying a default when
// absent and clamping bounds.
func ValidateLimit(input string, defaultLimit, maxLimit int) (int, error) {
	if strings.TrimSpace(input) == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(input)
	if err != nil {
		return -1, fmt.Errorf("limit must be a number")
	}
	if limit < 1 {
		return -1, fmt.Errorf("limit must be at least 1")
	}
	if limit > maxLimit {
		return maxLimit, nil
	}
	return limit, nil
}

// ValidateDate validates a YYYY-MM-DD query parameter. Empty input is
// allowed and returns an empty string.
func ValidateDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", fmt.Errorf("date must use the YYYY-MM-DD format")
	}
	return trimmed, nil
}

// hasExcessiveRepetition checks for the same character repeated more than
// 10 times consecutively.
func hasExcessiveRepetition(input string) bool {
	for i := 0; i < len(input)-10; i++ {
		allSame := true
		for j := 1; j <= 10; j++ {
			if input[i] != input[i+j] {
				allSame = false
				break
			}
		}
		if allSame {
			return true
		}
	}
	return false
}
