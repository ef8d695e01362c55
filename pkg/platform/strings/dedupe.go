// Package strings provides string-slice helpers for the bounded list fields
// (skills, competencies, criteria) carried by registry records.
package strings

import (
	"strings"
	"unicode/utf8"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  go ", "sql", "go", "", "  "})
//	// Returns: []string{"go", "sql"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// LongestEntry returns the rune length of the longest element. Callers use it
// to enforce per-entry limits with a single comparison.
func LongestEntry(values []string) int {
	longest := 0
	for _, v := range values {
		if n := utf8.RuneCountInString(v); n > longest {
			longest = n
		}
	}
	return longest
}
