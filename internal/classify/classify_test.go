package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyParseThroughput(t *testing.T) {
	for _, entries := range []int{10, 50, 100, 500, 1000, 5000} {
		name := fmt.Sprintf("bibtex_parser/parse/%d", entries)
		m := Classify(name, 1000)
		assert.Equal(t, ParseThroughput, m.Category, name)
		assert.Equal(t, entries, m.Entries, name)
	}
}

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		name     string
		bench    string
		category Category
		entries  int
		variant  string
		method   string
		ref      bool
	}{
		{"candidate variant", "parser_comparison/bibtex-parser/1000", ComparisonVariant, 1000, "bibtex-parser", "", false},
		{"reference variant", "parser_comparison/nom-bibtex/500", ComparisonVariant, 500, "nom-bibtex", "", true},
		{"parsing group", "parsing/500", ParseThroughput, 500, "", "", false},
		{"operation", "operations/find_by_key_hit", QueryOperation, 0, "", "", false},
		{"operation miss", "operations/find_by_key_miss", QueryOperation, 0, "", "", false},
		{"memory group", "memory_usage/string_expansion", MemoryUsage, 0, "", "", false},
		{"delimiter", "delimiter_throughput/two_pass_memchr/1000", DelimiterMethod, 1000, "", "two_pass_memchr", false},
		{"delimiter scalar", "delimiter_throughput/scalar/100", DelimiterMethod, 100, "", "scalar", false},
		{"bare integer", "5000", ParseThroughput, 5000, "", "", false},
		{"find_by fallback", "standalone/find_by_type", QueryOperation, 0, "", "", false},
		{"memory fallback", "peak_memory_growth", MemoryUsage, 0, "", "", false},
		{"expansion fallback", "string_expansion_deep", MemoryUsage, 0, "", "", false},
		{"unmatched", "pathological_cases/all_delimiters", Unclassified, 0, "", "", false},
		{"empty", "", Unclassified, 0, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Classify(tt.bench, 42)
			assert.Equal(t, tt.category, m.Category)
			assert.Equal(t, tt.bench, m.Raw)
			assert.Equal(t, float64(42), m.NsPerOp)
			if tt.entries > 0 {
				assert.Equal(t, tt.entries, m.Entries)
			}
			if tt.variant != "" {
				assert.Equal(t, tt.variant, m.Variant)
				assert.Equal(t, tt.ref, m.Reference)
			}
			if tt.method != "" {
				assert.Equal(t, tt.method, m.Method)
			}
			if tt.category == QueryOperation || tt.category == MemoryUsage {
				assert.Equal(t, tt.bench, m.Key)
			}
		})
	}
}

// A malformed trailing segment means the comparison rule must not fire; the
// name then falls through the remaining rules in order.
func TestClassifyMalformedComparisonFallsThrough(t *testing.T) {
	m := Classify("parser_comparison/nom-bibtex/warmup", 10)
	assert.Equal(t, Unclassified, m.Category)

	// Same shape but with an operation keyword further down the rule list.
	m = Classify("parser_comparison/find_by_key/warmup", 10)
	assert.Equal(t, QueryOperation, m.Category)
}

// Rule order is load-bearing: a memory_usage benchmark whose leaf mentions
// find_by must still classify by its group marker, not the keyword fallback.
func TestClassifyRuleOrder(t *testing.T) {
	m := Classify("memory_usage/find_by_key_after_parse", 10)
	assert.Equal(t, MemoryUsage, m.Category)

	m = Classify("operations/memory_expansion_probe", 10)
	assert.Equal(t, QueryOperation, m.Category)
}

func TestClassifyRoundTrip(t *testing.T) {
	names := []string{
		"bibtex_parser/parse/1000",
		"parser_comparison/nom-bibtex/500",
		"parser_comparison/bibtex-parser/50",
		"operations/find_by_field",
		"memory_usage/parse_and_query",
		"delimiter_throughput/naive_memchr/5000",
	}
	for _, name := range names {
		m := Classify(name, 123)
		require.NotEqual(t, Unclassified, m.Category, name)
		again := Classify(m.Name(), 123)
		assert.Equal(t, m.Category, again.Category, name)
		assert.Equal(t, m.Entries, again.Entries, name)
		assert.Equal(t, m.Key, again.Key, name)
		assert.Equal(t, m.Variant, again.Variant, name)
		assert.Equal(t, m.Method, again.Method, name)
	}
}

func TestAllSortedAndTotal(t *testing.T) {
	raw := map[string]float64{
		"bibtex_parser/parse/1000": 5_000_000,
		"anything_else":            1,
		"operations/find_by_field": 900,
	}
	ms := All(raw)
	require.Len(t, ms, 3)
	assert.Equal(t, "anything_else", ms[0].Raw)
	assert.Equal(t, "bibtex_parser/parse/1000", ms[1].Raw)
	assert.Equal(t, "operations/find_by_field", ms[2].Raw)
	assert.Equal(t, Unclassified, ms[0].Category)
}
