package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil slice", nil, nil},
		{"empty slice", []string{}, []string{}},
		{"trims whitespace", []string{"  go ", "\tsql\n"}, []string{"go", "sql"}},
		{"drops empties", []string{"go", "", "   ", "sql"}, []string{"go", "sql"}},
		{"dedupes preserving order", []string{"go", "sql", "go", "redis", "sql"}, []string{"go", "sql", "redis"}},
		{"dedupes after trim", []string{" go", "go "}, []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.input))
		})
	}
}

func TestLongestEntry(t *testing.T) {
	assert.Equal(t, 0, LongestEntry(nil))
	assert.Equal(t, 5, LongestEntry([]string{"go", "redis", "sql"}))
	// rune count, not byte count
	assert.Equal(t, 3, LongestEntry([]string{"日本語"}))
}
