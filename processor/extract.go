// Package processor normalizes raw OpenFDA drug records into the canonical
// shapes defined in the entities subpackage. The upstream schema is
// inconsistent about scalar-vs-list field representation, so every
// extraction here defaults to the empty value instead of failing.
package processor

// ExtractListValue returns the first element of a string list field, the
// string itself, or "" for anything else. OpenFDA represents most scalar
// fields as single-element lists, but not always.
func ExtractListValue(field any) string {
	switch v := field.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// stringValue passes a field through verbatim when it is a string, "" otherwise.
// Used for fields that must not take first-of-list semantics.
func stringValue(field any) string {
	if s, ok := field.(string); ok {
		return s
	}
	return ""
}

// mapValue returns a nested mapping field, or an empty map when the field
// is absent or mis-shaped.
func mapValue(field any) map[string]any {
	if m, ok := field.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// sliceValue returns a list field's elements, or nil when absent or mis-shaped.
func sliceValue(field any) []any {
	if s, ok := field.([]any); ok {
		return s
	}
	return nil
}
